package outbox

import (
	"database/sql"
	_ "embed"

	"github.com/ederavila/focal/internal/domain"
)

//go:embed migrations/001_initial_schema.sql
var migration001 string

// runMigrations executes all pending migrations
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return &domain.OutboxError{Op: "migrate", Err: err}
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{version: 1, sql: migration001},
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return &domain.OutboxError{Op: "migrate", Err: err}
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return &domain.OutboxError{Op: "migrate", Err: err}
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return &domain.OutboxError{Op: "migrate", Err: err}
		}
		if err := tx.Commit(); err != nil {
			return &domain.OutboxError{Op: "migrate", Err: err}
		}
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version int) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count)
	if err != nil {
		return false, &domain.OutboxError{Op: "migrate", Err: err}
	}
	return count > 0, nil
}
