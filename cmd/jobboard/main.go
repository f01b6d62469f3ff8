package main

import (
	"fmt"
	"os"

	"github.com/deppfellow/jobboard/internal/config"
	"github.com/deppfellow/jobboard/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
)

var rootCmd = &cobra.Command{
	Use:           "jobboard",
	Short:         "Job board API over PostgreSQL",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		loggerService, err = logger.NewLoggerService(cfg.Observability)
		if err != nil {
			return err
		}
		log = logger.NewLoggerWithService(cfg.Observability, loggerService)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		loggerService.Shutdown()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "jobboard:", err)
		os.Exit(1)
	}
}
