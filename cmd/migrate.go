package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phishguard/internal/config"
	"phishguard/pkg/logger"
)

// migrateCommand applies the schema of the configured storage driver. For
// PostgreSQL this includes the river job tables.
func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrates database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			if cfg.Blacklist.Driver == config.DriverSQLite {
				// sqlite storage migrates itself on open
				_, closeStrg := getSQLite(ctx, cfg)
				closeStrg()
				logger.Info(ctx, "sqlite database migrated", zap.String("path", cfg.Blacklist.SQLitePath))

				return
			}

			pg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()
			if err := pg.Migrate(ctx); err != nil {
				logger.Fatal(ctx, "could not migrate postgres", zap.Error(err))
			}
			logger.Info(ctx, "postgres database migrated")
		},
	}
}
