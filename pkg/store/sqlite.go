package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/praetorian-inc/almanac/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: SQLite serializes writers, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddInput records a puzzle input. Repeated adds are ignored.
func (s *SQLiteStore) AddInput(id types.InputID, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO inputs (id, size) VALUES (?, ?)", id.Hex(), size)
	if err != nil {
		return fmt.Errorf("inserting input: %w", err)
	}
	return nil
}

// InputExists checks if an input has been recorded.
func (s *SQLiteStore) InputExists(id types.InputID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM inputs WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking input existence: %w", err)
	}
	return count > 0, nil
}

// AddSolution stores a solution record. A solution with an ID already
// present is ignored.
func (s *SQLiteStore) AddSolution(sol *types.Solution) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO solutions (id, puzzle, part, input_id, answer, duration_ns, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sol.ID,
		sol.Puzzle,
		sol.Part,
		sol.InputID.Hex(),
		sol.Answer,
		int64(sol.Duration),
		sol.SolvedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting solution: %w", err)
	}
	return nil
}

// GetSolutions retrieves all solutions, oldest first.
func (s *SQLiteStore) GetSolutions() ([]*types.Solution, error) {
	return s.querySolutions(`
		SELECT id, puzzle, part, input_id, answer, duration_ns, solved_at
		FROM solutions
		ORDER BY solved_at, rowid
	`)
}

// GetSolutionsForInput retrieves solutions for one input, oldest first.
func (s *SQLiteStore) GetSolutionsForInput(id types.InputID) ([]*types.Solution, error) {
	return s.querySolutions(`
		SELECT id, puzzle, part, input_id, answer, duration_ns, solved_at
		FROM solutions
		WHERE input_id = ?
		ORDER BY solved_at, rowid
	`, id.Hex())
}

// SolutionExists checks if this puzzle part was already solved for input.
func (s *SQLiteStore) SolutionExists(puzzle string, part int, id types.InputID) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM solutions WHERE input_id = ? AND puzzle = ? AND part = ?",
		id.Hex(), puzzle, part,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking solution existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) querySolutions(query string, args ...any) ([]*types.Solution, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying solutions: %w", err)
	}
	defer rows.Close()

	solutions := []*types.Solution{}
	for rows.Next() {
		var sol types.Solution
		var durationNS, solvedAtNS int64

		err := rows.Scan(
			&sol.ID,
			&sol.Puzzle,
			&sol.Part,
			&sol.InputID,
			&sol.Answer,
			&durationNS,
			&solvedAtNS,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning solution: %w", err)
		}
		sol.Duration = time.Duration(durationNS)
		sol.SolvedAt = time.Unix(0, solvedAtNS).UTC()

		solutions = append(solutions, &sol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating solutions: %w", err)
	}

	return solutions, nil
}
