package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/almanac/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "solve" | "solve_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// SolvePayload is the payload for "solve" requests. Puzzle defaults to
// "almanac" and Part to 1.
type SolvePayload struct {
	ID     string `json:"id,omitempty"` // echoed back for correlation
	Puzzle string `json:"puzzle,omitempty"`
	Part   int    `json:"part,omitempty"`
	Input  string `json:"input"`
}

// SolveBatchPayload is the payload for "solve_batch" requests
type SolveBatchPayload struct {
	Items []SolvePayload `json:"items"`
}

// SolveData is the data field for "solve" responses and batch items
type SolveData struct {
	ID         string        `json:"id,omitempty"`
	Puzzle     string        `json:"puzzle"`
	Part       int           `json:"part"`
	InputID    types.InputID `json:"input_id"`
	Answer     string        `json:"answer,omitempty"`
	Cached     bool          `json:"cached,omitempty"`
	DurationMS float64       `json:"duration_ms"`
	Error      string        `json:"error,omitempty"`
}

// BatchData is the data field for "solve_batch" responses
type BatchData struct {
	Results []SolveData `json:"results"`
	Total   int         `json:"total"`
	Failed  int         `json:"failed"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "solve" | "solve_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string   `json:"version"`
	Puzzles []string `json:"puzzles"`
}
