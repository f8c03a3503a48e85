package types

import (
	"time"

	"github.com/google/uuid"
)

// Solution is one recorded solve of a puzzle part against an input.
type Solution struct {
	ID       string        `json:"id"`
	Puzzle   string        `json:"puzzle"`
	Part     int           `json:"part"`
	InputID  InputID       `json:"input_id"`
	Answer   string        `json:"answer"`
	Duration time.Duration `json:"duration_ns"`
	SolvedAt time.Time     `json:"solved_at"`
}

// NewSolution creates a solution record stamped with a fresh ID and the
// current time.
func NewSolution(puzzle string, part int, input InputID, answer string, took time.Duration) *Solution {
	return &Solution{
		ID:       uuid.NewString(),
		Puzzle:   puzzle,
		Part:     part,
		InputID:  input,
		Answer:   answer,
		Duration: took,
		SolvedAt: time.Now().UTC(),
	}
}
