package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
	"github.com/praetorian-inc/almanac/pkg/store"
	"github.com/praetorian-inc/almanac/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSolve(t *testing.T) {
	input := writeInput(t, exampleInput)
	dbPath := filepath.Join(t.TempDir(), "almanac.db")

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	resetSolveFlags(dbPath)

	err := runSolve(cmd, []string{input})
	require.NoError(t, err)

	assert.Equal(t, "35\n", out.String())
	assert.Contains(t, errOut.String(), "almanac part 1")
	assert.Contains(t, errOut.String(), "Results stored in: "+dbPath)

	// Verify the solution was recorded
	s, err := store.New(store.Config{Path: dbPath})
	require.NoError(t, err)
	defer s.Close()

	id := types.ComputeInputID([]byte(exampleInput))
	exists, err := s.InputExists(id)
	require.NoError(t, err)
	assert.True(t, exists)

	solutions, err := s.GetSolutionsForInput(id)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, "35", solutions[0].Answer)
	assert.Equal(t, 1, solutions[0].Part)
}

func TestRunSolvePart2JSON(t *testing.T) {
	input := writeInput(t, exampleInput)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	resetSolveFlags("")
	solvePart = 2
	solveFormat = "json"

	err := runSolve(cmd, []string{input})
	require.NoError(t, err)

	var res puzzle.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "46", res.Answer)
	assert.Equal(t, puzzle.Part2, res.Part)
	assert.Equal(t, "almanac", res.Puzzle)
	assert.Equal(t, types.ComputeInputID([]byte(exampleInput)), res.InputID)
}

func TestRunSolveNoOutputSkipsStore(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, exampleInput)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	resetSolveFlags("")
	require.NoError(t, runSolve(cmd, []string{input}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no database should be created")
}

func TestRunSolveReuse(t *testing.T) {
	input := writeInput(t, exampleInput)
	dbPath := filepath.Join(t.TempDir(), "almanac.db")

	run := func() string {
		var out, errOut bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		require.NoError(t, runSolve(cmd, []string{input}))
		return out.String() + errOut.String()
	}

	resetSolveFlags(dbPath)
	solveReuse = true

	first := run()
	assert.Contains(t, first, "solved in")

	second := run()
	assert.Contains(t, second, "35")
	assert.Contains(t, second, "recorded answer")

	// The reused answer is not stored twice
	s, err := store.New(store.Config{Path: dbPath})
	require.NoError(t, err)
	defer s.Close()
	solutions, err := s.GetSolutions()
	require.NoError(t, err)
	assert.Len(t, solutions, 1)
}

func TestRunSolveErrors(t *testing.T) {
	valid := writeInput(t, exampleInput)

	tests := []struct {
		name  string
		setup func()
		path  string
		want  string
	}{
		{"missing file", func() {}, "/nonexistent/input.txt", "reading input"},
		{"bad part", func() { solvePart = 3 }, valid, "unknown part: 3"},
		{"bad format", func() { solveFormat = "xml" }, valid, "unknown output format: xml"},
		{"unknown puzzle", func() { solvePuzzle = "cards" }, valid, `unknown puzzle: "cards"`},
		{"invalid input", func() {}, writeInput(t, "seeds: 1 two\n"), "invalid seeds line"},
		{"odd seed ranges", func() { solvePart = 2 }, writeInput(t, "seeds: 1 2 3\n\nseed-to-location map:\n0 0 1\n"), "even number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			resetSolveFlags("")
			tt.setup()

			err := runSolve(cmd, []string{tt.path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
