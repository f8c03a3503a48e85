package store

import (
	"sort"
	"sync"

	"github.com/praetorian-inc/almanac/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu        sync.RWMutex
	inputs    map[types.InputID]int64
	solutions []*types.Solution
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		inputs: make(map[types.InputID]int64),
	}
}

// AddInput records a puzzle input. Repeated adds are ignored.
func (m *MemoryStore) AddInput(id types.InputID, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.inputs[id]; !exists {
		m.inputs[id] = size
	}
	return nil
}

// InputExists checks if an input has been recorded.
func (m *MemoryStore) InputExists(id types.InputID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.inputs[id]
	return exists, nil
}

// AddSolution stores a solution record. A solution with an ID already
// present is ignored.
func (m *MemoryStore) AddSolution(s *types.Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.solutions {
		if existing.ID == s.ID {
			return nil
		}
	}

	cp := *s
	m.solutions = append(m.solutions, &cp)
	return nil
}

// GetSolutions retrieves all solutions, oldest first.
func (m *MemoryStore) GetSolutions() ([]*types.Solution, error) {
	return m.filter(func(*types.Solution) bool { return true }), nil
}

// GetSolutionsForInput retrieves solutions for one input, oldest first.
func (m *MemoryStore) GetSolutionsForInput(id types.InputID) ([]*types.Solution, error) {
	return m.filter(func(s *types.Solution) bool { return s.InputID == id }), nil
}

// SolutionExists checks if this puzzle part was already solved for input.
func (m *MemoryStore) SolutionExists(puzzle string, part int, id types.InputID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.solutions {
		if s.Puzzle == puzzle && s.Part == part && s.InputID == id {
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) filter(keep func(*types.Solution) bool) []*types.Solution {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*types.Solution{}
	for _, s := range m.solutions {
		if keep(s) {
			cp := *s
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SolvedAt.Before(result[j].SolvedAt)
	})
	return result
}
