package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/repository"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// NewSQLiteDB opens the meeting database named in the configuration
func NewSQLiteDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := table.CreateDatabase(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if logger != nil {
		logger.Info("database.connected", zap.String("path", cfg.Path))
	}
	return db, nil
}

// Migrations returns the embedded migration source.
func Migrations() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// AutoMigrate creates the meeting tables and applies the embedded
// migrations on top of them. Migrations reference the tables, so the schema
// is always ensured first.
func AutoMigrate(ctx context.Context, db *sql.DB, logger *zap.Logger) (int, error) {
	if err := repository.EnsureSchema(ctx, db); err != nil {
		return 0, fmt.Errorf("failed to ensure schema: %w", err)
	}

	n, err := migrate.ExecContext(ctx, db, "sqlite3", Migrations(), migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migration, error: %w", err)
	}
	if logger != nil {
		logger.Info("database.migrated", zap.Int("applied", n))
	}
	return n, nil
}

// CloseDB closes the database connection
func CloseDB(db *sql.DB, logger *zap.Logger) error {
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if logger != nil {
		logger.Info("database.closed")
	}
	return nil
}
