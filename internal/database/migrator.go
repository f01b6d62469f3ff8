package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The binary carries its own schema.
//
//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema at dsn to the latest embedded version using
// jackc/tern. The applied version is kept in the schema_version table.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	// A single connection is enough for a one-time action.
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}
	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Info().
			Int32("sequence", sequence).
			Str("migration", name).
			Str("direction", direction).
			Msg("applying migration")
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}
	latest := int32(len(m.Migrations))

	if from > latest {
		return fmt.Errorf("database schema version %d is newer than this binary (%d)", from, latest)
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating from version %d: %w", from, err)
	}

	logger.Info().
		Int32("from", from).
		Int32("to", latest).
		Bool("changed", from != latest).
		Msg("database schema migrated")
	return nil
}
