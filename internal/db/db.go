// Package db is the PostgreSQL backend for persisted preferences.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	DB *sqlx.DB
)

const (
	connectAttempts = 10
	connectInterval = 2 * time.Second
)

// Init opens a PostgreSQL connection and assigns it to DB. The database
// usually starts alongside the server, so connecting is retried.
func Init(databaseURL string) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		DB, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", connectInterval)
		time.Sleep(connectInterval)
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
}

// RunMigrations executes every "*.up.sql" file in migrationsPath that has
// not been applied yet, in file name order, each inside its own
// transaction. Applied files are recorded in schema_migrations.
func RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	sort.Strings(files)

	if _, err := DB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []string
	if err := DB.Select(&applied, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, name := range applied {
		done[name] = true
	}

	for _, file := range files {
		name := filepath.Base(file)
		if done[name] {
			continue
		}
		stmt, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if err := apply(name, string(stmt)); err != nil {
			return err
		}
		log.Info().Str("migration", name).Msg("migration applied")
	}
	return nil
}

func apply(name, stmt string) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if stmt != "" {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", name, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("record migration %q: %w", name, err)
	}
	return tx.Commit()
}
