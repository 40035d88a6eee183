package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"tutorhub.backend/pkg/logger"
)

//go:embed sql/*.sql
var migrationFS embed.FS

const migrationDir = "sql"

// goose keeps dialect and filesystem in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded schema migrations with goose.
type Migrator struct {
	db      *sql.DB
	dialect string
}

// NewMigrator creates a migrator for db. dialect is a goose dialect name
// such as "postgres" or "sqlite3".
func NewMigrator(db *sql.DB, dialect string) *Migrator {
	return &Migrator{db: db, dialect: dialect}
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.prepare(); err != nil {
		return err
	}
	logger.Info(ctx, "Applying database migrations", zap.String("dialect", m.dialect))
	if err := goose.UpContext(ctx, m.db, migrationDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.prepare(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

func (m *Migrator) prepare() error {
	goose.SetBaseFS(migrationFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
