// Package puzzle defines the solver contract and the engine that dispatches
// puzzle inputs to registered solvers.
package puzzle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Part selects which half of a puzzle to solve.
type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

// ParsePart parses "1" or "2".
func ParsePart(s string) (Part, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unknown part: %q", s)
	}
	p := Part(n)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

// Validate rejects anything but Part1 and Part2.
func (p Part) Validate() error {
	if p != Part1 && p != Part2 {
		return fmt.Errorf("unknown part: %d", int(p))
	}
	return nil
}

func (p Part) String() string {
	return strconv.Itoa(int(p))
}

// Solver computes the answer for one puzzle.
type Solver interface {
	// Name returns the identifier used to select this solver.
	Name() string

	// Solve parses input and returns the answer as decimal text.
	Solve(ctx context.Context, part Part, input string) (string, error)
}
