//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
)

const exampleInput = "seeds: 79 14 55 13\n\n" +
	"seed-to-soil map:\n50 98 2\n52 50 48\n\n" +
	"soil-to-fertilizer map:\n0 15 37\n37 52 2\n39 0 15\n\n" +
	"fertilizer-to-water map:\n49 53 8\n0 11 42\n42 0 7\n57 7 4\n\n" +
	"water-to-light map:\n88 18 7\n18 25 70\n\n" +
	"light-to-temperature map:\n45 77 23\n81 45 19\n68 64 13\n\n" +
	"temperature-to-humidity map:\n0 69 1\n1 0 69\n\n" +
	"humidity-to-location map:\n60 56 37\n56 93 4\n"

func newHandle(t *testing.T) int {
	t.Helper()
	result := newSolver(js.Value{}, []js.Value{js.ValueOf(1)})
	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create solver: %v", errMsg)
	}
	return resultMap["handle"].(int)
}

// TestSolve tests solving both parts of the worked example
func TestSolve(t *testing.T) {
	handle := newHandle(t)
	defer closeSolver(js.Value{}, []js.Value{js.ValueOf(handle)})

	for part, want := range map[int]string{1: "35", 2: "46"} {
		result := solve(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(part), js.ValueOf(exampleInput)})
		jsonStr, ok := result.(string)
		if !ok {
			t.Fatalf("Expected JSON string, got %T: %v", result, result)
		}

		var res puzzle.Result
		if err := json.Unmarshal([]byte(jsonStr), &res); err != nil {
			t.Fatalf("Failed to parse result: %v", err)
		}
		if res.Answer != want {
			t.Errorf("part %d: expected %s, got %s", part, want, res.Answer)
		}
	}
}

// TestSolveBatch tests that batch results keep request order
func TestSolveBatch(t *testing.T) {
	handle := newHandle(t)
	defer closeSolver(js.Value{}, []js.Value{js.ValueOf(handle)})

	items, _ := json.Marshal([]batchItem{
		{Part: 2, Input: exampleInput},
		{Part: 1, Input: "seeds: x\n"},
	})
	result := solveBatch(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(string(items))})

	var results []batchResult
	if err := json.Unmarshal([]byte(result.(string)), &results); err != nil {
		t.Fatalf("Failed to parse results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Result == nil || results[0].Result.Answer != "46" {
		t.Errorf("Expected first answer 46, got %+v", results[0])
	}
	if results[1].Error == "" {
		t.Error("Expected second item to fail")
	}
}

// TestInvalidHandle tests calls with an unknown handle
func TestInvalidHandle(t *testing.T) {
	result := solve(js.Value{}, []js.Value{js.ValueOf(9999), js.ValueOf(1), js.ValueOf(exampleInput)})
	resultMap, ok := result.(map[string]interface{})
	if !ok || resultMap["error"] != "invalid solver handle" {
		t.Errorf("Expected invalid handle error, got %v", result)
	}

	result = closeSolver(js.Value{}, []js.Value{js.ValueOf(9999)})
	if result == nil {
		t.Error("Expected error closing unknown handle")
	}
}

// TestGetFixtures tests the builtin fixture listing
func TestGetFixtures(t *testing.T) {
	result := getFixtures(js.Value{}, nil)
	jsonStr, ok := result.(string)
	if !ok {
		t.Fatalf("Expected JSON string, got %T", result)
	}

	var fixtures []map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &fixtures); err != nil {
		t.Fatalf("Failed to parse fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Error("Expected builtin fixtures")
	}
}
