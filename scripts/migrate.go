//go:build ignore

// Applies the meeting schema and embedded migrations to the configured
// database. Run with: go run scripts/migrate.go [up|down]
package main

import (
	"context"
	"log"
	"os"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/database"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewSQLiteDB(&cfg.Database, nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db, nil)

	ctx := context.Background()
	if len(os.Args) > 1 && os.Args[1] == "down" {
		n, err := migrate.ExecContext(ctx, db, "sqlite3", database.Migrations(), migrate.Down)
		if err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
		log.Printf("Rolled back %d migration(s)", n)
		return
	}

	n, err := database.AutoMigrate(ctx, db, nil)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Printf("Successfully applied %d migration(s)", n)
}
