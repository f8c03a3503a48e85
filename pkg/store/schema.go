package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createInputsTable(db); err != nil {
		return fmt.Errorf("creating inputs table: %w", err)
	}

	if err := createSolutionsTable(db); err != nil {
		return fmt.Errorf("creating solutions table: %w", err)
	}

	return nil
}

// ReadSchemaVersion returns the version recorded in the database.
func ReadSchemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	version, err := ReadSchemaVersion(db)
	if err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d (want %d)", version, SchemaVersion)
	}
	return nil
}

func createInputsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS inputs (
			id TEXT PRIMARY KEY NOT NULL,
			size INTEGER NOT NULL
		)
	`)
	return err
}

func createSolutionsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS solutions (
			id TEXT PRIMARY KEY NOT NULL,
			puzzle TEXT NOT NULL,
			part INTEGER NOT NULL,
			input_id TEXT NOT NULL,
			answer TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			solved_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_solutions_input ON solutions(input_id, puzzle, part)
	`)
	return err
}
