//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/almanac/pkg/fixture"
	"github.com/praetorian-inc/almanac/pkg/puzzle"
)

var (
	engines   = make(map[int]*puzzle.Engine)
	enginesMu sync.RWMutex
	nextID    int
)

// batchItem is one entry of an AlmanacSolveBatch request.
type batchItem struct {
	Puzzle string `json:"puzzle,omitempty"`
	Part   int    `json:"part"`
	Input  string `json:"input"`
}

// batchResult is one entry of an AlmanacSolveBatch response.
type batchResult struct {
	Result *puzzle.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// newSolver creates a solver engine. The optional argument bounds resolver
// workers; wasm runs single-threaded so the default is 1.
// JS: AlmanacNewSolver([workers]) -> handle (int) or error string
func newSolver(this js.Value, args []js.Value) interface{} {
	workers := 1
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		workers = args[0].Int()
	}

	engine := puzzle.NewEngine(1, puzzle.NewAlmanacSolver(workers, nil))

	enginesMu.Lock()
	id := nextID
	nextID++
	engines[id] = engine
	enginesMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// solve solves one input.
// JS: AlmanacSolve(handle, part, input) -> JSON result or error
func solve(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return map[string]interface{}{"error": "handle, part and input arguments required"}
	}

	engine, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid solver handle"}
	}

	res, err := engine.Solve(context.Background(), puzzle.AlmanacName, puzzle.Part(args[1].Int()), args[2].String())
	if err != nil {
		return map[string]interface{}{"error": "solve failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(res)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}

	return string(jsonBytes)
}

// solveBatch solves several inputs, keeping their order.
// JS: AlmanacSolveBatch(handle, itemsJSON) -> JSON results or error
func solveBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	engine, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid solver handle"}
	}

	var items []batchItem
	if err := json.Unmarshal([]byte(args[1].String()), &items); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}

	return marshalBatch(runBatch(engine, items))
}

// closeSolver releases a solver engine.
// JS: AlmanacCloseSolver(handle)
func closeSolver(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	enginesMu.Lock()
	_, ok := engines[handle]
	if ok {
		delete(engines, handle)
	}
	enginesMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid solver handle"}
	}

	return nil
}

// getFixtures returns the built-in fixtures as JSON.
// JS: AlmanacGetFixtures() -> JSON fixtures array
func getFixtures(this js.Value, args []js.Value) interface{} {
	fixtures, err := fixture.NewLoader().LoadBuiltin()
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin fixtures: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(fixtures)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal fixtures: " + err.Error()}
	}

	return string(jsonBytes)
}

func lookup(handle int) (*puzzle.Engine, bool) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	engine, ok := engines[handle]
	return engine, ok
}

func runBatch(engine *puzzle.Engine, items []batchItem) []batchResult {
	ctx := context.Background()
	pending := make([]<-chan puzzle.Outcome, len(items))
	for i, item := range items {
		name := item.Puzzle
		if name == "" {
			name = puzzle.AlmanacName
		}
		pending[i] = engine.SolveAsync(ctx, name, puzzle.Part(item.Part), item.Input)
	}

	results := make([]batchResult, len(items))
	for i, ch := range pending {
		out := <-ch
		if out.Err != nil {
			results[i].Error = out.Err.Error()
			continue
		}
		results[i].Result = out.Result
	}
	return results
}

func marshalBatch(results []batchResult) interface{} {
	jsonBytes, err := json.Marshal(results)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}
	return string(jsonBytes)
}
