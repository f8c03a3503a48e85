package fixture

import (
	"context"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
)

// CheckResult is the outcome of one expectation.
type CheckResult struct {
	Fixture string      `json:"fixture"`
	Puzzle  string      `json:"puzzle"`
	Part    puzzle.Part `json:"part"`
	Want    string      `json:"want"`
	Got     string      `json:"got,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Passed reports whether the solver produced the expected answer.
func (r CheckResult) Passed() bool {
	return r.Error == "" && r.Got == r.Want
}

// Check solves every expectation of every fixture, in order.
func Check(ctx context.Context, engine *puzzle.Engine, fixtures []*Fixture) []CheckResult {
	var results []CheckResult
	for _, f := range fixtures {
		for _, e := range f.Expect {
			r := CheckResult{Fixture: f.Name, Puzzle: f.Puzzle, Part: e.Part, Want: e.Answer}
			res, err := engine.Solve(ctx, f.Puzzle, e.Part, f.Input)
			if err != nil {
				r.Error = err.Error()
			} else {
				r.Got = res.Answer
			}
			results = append(results, r)
		}
	}
	return results
}
