package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations holds the embedded schema history. The cache schema ships
// with the binary; there is no migrations directory to scan.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_traffic_counts",
		SQL: `
			CREATE TABLE IF NOT EXISTS traffic_counts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp TEXT NOT NULL,
				year INTEGER NOT NULL,
				station_id TEXT NOT NULL,
				lane TEXT NOT NULL,
				direction TEXT NOT NULL,
				class_id INTEGER NOT NULL,
				count INTEGER NOT NULL,
				status TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_counts_year ON traffic_counts(year);
			CREATE INDEX IF NOT EXISTS idx_counts_timestamp ON traffic_counts(timestamp);
		`,
	},
	{
		Version: 2,
		Name:    "create_dataset_meta",
		SQL: `
			CREATE TABLE IF NOT EXISTS dataset_meta (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`,
	},
}

// Migrate applies all pending embedded migrations.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	return Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
		return err
	})
}
