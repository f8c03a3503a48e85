// Package fixture loads puzzle inputs paired with their known answers and
// checks solvers against them.
package fixture

import (
	"fmt"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
)

// Fixture is a puzzle input with the answers it must produce.
type Fixture struct {
	Name        string        `json:"name"`
	Puzzle      string        `json:"puzzle"`
	Description string        `json:"description,omitempty"`
	Input       string        `json:"-"`
	Expect      []Expectation `json:"expect"`
}

// Expectation is the answer expected for one part.
type Expectation struct {
	Part   puzzle.Part `json:"part"`
	Answer string      `json:"answer"`
}

// Validate checks required fields.
func Validate(f *Fixture) error {
	if f == nil {
		return fmt.Errorf("fixture is nil")
	}
	if f.Name == "" {
		return fmt.Errorf("fixture name is required")
	}
	if f.Puzzle == "" {
		return fmt.Errorf("fixture %s: puzzle is required", f.Name)
	}
	if f.Input == "" {
		return fmt.Errorf("fixture %s: input is required", f.Name)
	}
	if len(f.Expect) == 0 {
		return fmt.Errorf("fixture %s must expect at least one answer", f.Name)
	}

	seen := make(map[puzzle.Part]bool, len(f.Expect))
	for _, e := range f.Expect {
		if err := e.Part.Validate(); err != nil {
			return fmt.Errorf("fixture %s: %w", f.Name, err)
		}
		if seen[e.Part] {
			return fmt.Errorf("fixture %s: duplicate expectation for part %d", f.Name, e.Part)
		}
		seen[e.Part] = true
		if e.Answer == "" {
			return fmt.Errorf("fixture %s: empty answer for part %d", f.Name, e.Part)
		}
	}
	return nil
}
