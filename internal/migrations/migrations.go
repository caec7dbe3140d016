// Package migrations holds the schema, embedded so the server can apply it at startup.
package migrations

import (
	"embed"
	"fmt"
	"net/url"

	"github.com/amacneil/dbmate/v2/pkg/dbmate"
	_ "github.com/amacneil/dbmate/v2/pkg/driver/postgres"
	"go.uber.org/zap"
)

//go:embed schema
var schema embed.FS

// Up creates the database named by dsn if needed and applies every pending
// migration. Applied versions are recorded in schema_migrations, so running
// it again is a no-op.
func Up(dsn string, logger *zap.Logger) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("invalid DSN: %w", err)
	}

	db := newDBMate(u, logger)
	if err := db.CreateAndMigrate(); err != nil {
		return fmt.Errorf("db.CreateAndMigrate: %w", err)
	}
	return nil
}

// Down rolls back the most recently applied migration.
func Down(dsn string, logger *zap.Logger) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("invalid DSN: %w", err)
	}

	db := newDBMate(u, logger)
	if err := db.Rollback(); err != nil {
		return fmt.Errorf("db.Rollback: %w", err)
	}
	return nil
}

func newDBMate(u *url.URL, logger *zap.Logger) *dbmate.DB {
	if logger == nil {
		logger = zap.NewNop()
	}

	db := dbmate.New(u)
	db.FS = schema
	db.MigrationsDir = []string{"schema"}
	db.AutoDumpSchema = false
	db.Log = zap.NewStdLog(logger.Named("migrate")).Writer()
	return db
}
