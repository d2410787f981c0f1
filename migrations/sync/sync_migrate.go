package sync

import (
	"database/sql"
	"fmt"
	"log"
)

type CreateMigrationsInfra struct{}

func (m *CreateMigrationsInfra) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS migrations;
	CREATE TABLE IF NOT EXISTS migrations.migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
	);`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations infrastructure: %w", err)
	}
	return nil
}

type CreateSyncSchema struct{}

func (m *CreateSyncSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS sync;`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create schema sync: %w", err)
	}
	return nil
}

type CreateSyncRunsTable struct{}

func (m *CreateSyncRunsTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "sync.runs"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS sync.runs (
		run_id UUID PRIMARY KEY,
		target VARCHAR(64) NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		total_updates INT NOT NULL,
		non_zero_updates INT NOT NULL,
		status VARCHAR(16) NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);`
	if err := executeAndMarkMigration(db, query, "sync.runs"); err != nil {
		return err
	}
	log.Println("Migration 'sync.runs' completed successfully.")
	return nil
}

type CreateStockHistoryTable struct{}

func (m *CreateStockHistoryTable) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, "sync.stock_history"); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE TABLE IF NOT EXISTS sync.stock_history (
		id SERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES sync.runs(run_id),
		sku VARCHAR(255) NOT NULL,
		quantity INT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS stock_history_run_id_idx ON sync.stock_history(run_id);`
	if err := executeAndMarkMigration(db, query, "sync.stock_history"); err != nil {
		return err
	}
	log.Println("Migration 'sync.stock_history' completed successfully.")
	return nil
}

func checkAndSkipMigration(db *sql.DB, migrationName string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", migrationName).Scan(&migrationExists)
	if err != nil {
		return migrationExists, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.\n", migrationName)
		return migrationExists, nil
	}
	return migrationExists, nil
}

func executeAndMarkMigration(db *sql.DB, query string, migrationName string) error {
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to execute migration '%s': %w", migrationName, err)
	}
	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", migrationName)
	if err != nil {
		return fmt.Errorf("failed to mark migration '%s' as complete: %w", migrationName, err)
	}
	return nil
}
