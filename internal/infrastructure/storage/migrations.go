package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order.
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "create_cards_table",
		Up:      migration001CreateCardsTable,
	},
	{
		Version: 2,
		Name:    "create_transactions_table",
		Up:      migration002CreateTransactionsTable,
	},
}

// runMigrations executes all pending migrations.
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO schema_migrations (version, name) VALUES (?, ?)
		`, migration.Version, migration.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migration001CreateCardsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE cards (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			issuer TEXT NOT NULL,
			credit_limit REAL NOT NULL DEFAULT 0,
			used_amount REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`)
	return err
}

func migration002CreateTransactionsTable(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			card_id TEXT NOT NULL,
			merchant TEXT NOT NULL,
			category TEXT NOT NULL,
			amount REAL NOT NULL,
			rate REAL NOT NULL DEFAULT 0,
			rate_type TEXT NOT NULL DEFAULT 'percent',
			reason TEXT NOT NULL DEFAULT '',
			fallback BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := tx.Exec(`CREATE INDEX idx_transactions_card_id ON transactions(card_id)`)
	return err
}
