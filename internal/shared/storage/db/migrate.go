package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"cvalign-lens/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.sugar.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, logger *zap.Logger) error {
	if database == nil {
		return nil
	}
	goose.SetLogger(gooseLogger{sugar: telemetry.OrNop(logger).Sugar()})
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
