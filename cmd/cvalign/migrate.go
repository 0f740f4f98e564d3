package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cvalign-lens/internal/shared/storage/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply run ledger database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().String("database-url", "", "Postgres URL (env DATABASE_URL)")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := cmd.Context()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions(), logger)
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts, logger)
	if err != nil {
		logger.Error("failed to connect database", zap.Error(err))
		return err
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, logger); err != nil {
		logger.Error("failed to run migrations", zap.Error(err))
		return err
	}
	logger.Info("migrations applied")
	return nil
}
