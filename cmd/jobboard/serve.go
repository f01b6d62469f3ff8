package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/jobboard/internal/database"
	"github.com/deppfellow/jobboard/internal/handler"
	"github.com/deppfellow/jobboard/internal/repository"
	"github.com/deppfellow/jobboard/internal/router"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if migrateOnStart {
			if err := database.Migrate(ctx, &log, database.DSN(cfg.Database)); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
		}

		srv, err := server.New(cfg, &log, loggerService)
		if err != nil {
			return err
		}

		repos := repository.NewRepositories(srv)
		services := service.NewServices(srv, repos)
		handlers := handler.NewHandlers(srv, services)
		srv.SetupHTTPServer(router.NewRouter(srv, handlers))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			log.Info().Msg("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		log.Info().Msg("server exited properly")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply schema migrations before serving")
}
