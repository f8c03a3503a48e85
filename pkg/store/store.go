package store

import (
	"fmt"

	"github.com/praetorian-inc/almanac/pkg/types"
)

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// Store provides persistence for solve results.
type Store interface {
	// AddInput records a puzzle input by content hash.
	AddInput(id types.InputID, size int64) error

	// InputExists checks if an input has been recorded.
	InputExists(id types.InputID) (bool, error)

	// AddSolution stores a solution record.
	AddSolution(s *types.Solution) error

	// GetSolutions retrieves all solutions, oldest first.
	GetSolutions() ([]*types.Solution, error)

	// GetSolutionsForInput retrieves solutions for one input, oldest first.
	GetSolutionsForInput(id types.InputID) ([]*types.Solution, error)

	// SolutionExists checks if this puzzle part was already solved for input.
	SolutionExists(puzzle string, part int, id types.InputID) (bool, error)

	// Close releases the underlying resources.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store: MemoryStore for ":memory:", SQLite otherwise.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
