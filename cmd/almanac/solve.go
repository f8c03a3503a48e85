package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
	"github.com/praetorian-inc/almanac/pkg/store"
	"github.com/praetorian-inc/almanac/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	solvePart       int
	solvePuzzle     string
	solveOutputPath string
	solveFormat     string
	solveWorkers    int
	solveReuse      bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <input-file>",
	Short: "Solve a puzzle input",
	Long: `Solve a puzzle input file and print the answer.

The answer is recorded in the output datastore together with the input's
content hash. Pass --output "" to skip recording.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solvePart, "part", 1, "Puzzle part: 1 or 2")
	solveCmd.Flags().StringVar(&solvePuzzle, "puzzle", puzzle.AlmanacName, "Puzzle to solve")
	solveCmd.Flags().StringVar(&solveOutputPath, "output", "almanac.db", "Output database path (empty to disable)")
	solveCmd.Flags().StringVar(&solveFormat, "format", "human", "Output format: human, json")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "Resolver workers (0 uses GOMAXPROCS)")
	solveCmd.Flags().BoolVar(&solveReuse, "reuse", false, "Print a recorded answer for the same input instead of solving again")
}

func runSolve(cmd *cobra.Command, args []string) error {
	path := args[0]

	if solveFormat != "human" && solveFormat != "json" {
		return fmt.Errorf("unknown output format: %s", solveFormat)
	}
	part := puzzle.Part(solvePart)
	if err := part.Validate(); err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	inputID := types.ComputeInputID(content)

	// Open store (optional)
	var s store.Store
	if solveOutputPath != "" {
		s, err = store.New(store.Config{Path: solveOutputPath})
		if err != nil {
			return fmt.Errorf("creating store: %w", err)
		}
		defer s.Close()
	}

	if solveReuse && s != nil {
		sol, err := recordedSolution(s, solvePuzzle, part, inputID)
		if err != nil {
			return err
		}
		if sol != nil {
			logger.Debug("reusing recorded answer",
				zap.String("input", inputID.Short()),
				zap.String("solution", sol.ID))
			return outputSolve(cmd, &puzzle.Result{
				Puzzle:   sol.Puzzle,
				Part:     puzzle.Part(sol.Part),
				InputID:  sol.InputID,
				Answer:   sol.Answer,
				Duration: sol.Duration,
				Cached:   true,
			})
		}
	}

	engine := newEngine(solveWorkers)
	res, err := engine.Solve(context.Background(), solvePuzzle, part, string(content))
	if err != nil {
		return fmt.Errorf("solving %s: %w", path, err)
	}

	if s != nil {
		if err := s.AddInput(inputID, int64(len(content))); err != nil {
			return fmt.Errorf("storing input: %w", err)
		}
		if err := s.AddSolution(res.Solution()); err != nil {
			return fmt.Errorf("storing solution: %w", err)
		}
	}

	return outputSolve(cmd, res)
}

// =============================================================================
// HELPERS
// =============================================================================

// newEngine registers every known solver.
func newEngine(workers int) *puzzle.Engine {
	engine := puzzle.NewEngine(0, puzzle.NewAlmanacSolver(workers, logger))
	engine.SetLogger(logger)
	return engine
}

// recordedSolution returns the most recent stored answer for this puzzle
// part and input, or nil.
func recordedSolution(s store.Store, name string, part puzzle.Part, id types.InputID) (*types.Solution, error) {
	exists, err := s.SolutionExists(name, int(part), id)
	if err != nil || !exists {
		return nil, err
	}
	solutions, err := s.GetSolutionsForInput(id)
	if err != nil {
		return nil, fmt.Errorf("retrieving solutions: %w", err)
	}
	for i := len(solutions) - 1; i >= 0; i-- {
		if solutions[i].Puzzle == name && solutions[i].Part == int(part) {
			return solutions[i], nil
		}
	}
	return nil, nil
}

func outputSolve(cmd *cobra.Command, res *puzzle.Result) error {
	out := cmd.OutOrStdout()
	switch solveFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	default:
		fmt.Fprintf(out, "%s\n", res.Answer)
		status := fmt.Sprintf("solved in %s", res.Duration)
		if res.Cached {
			status = "recorded answer"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s part %s, input %s: %s\n", res.Puzzle, res.Part, res.InputID.Short(), status)
		if solveOutputPath != "" && !res.Cached {
			fmt.Fprintf(cmd.ErrOrStderr(), "Results stored in: %s\n", solveOutputPath)
		}
		return nil
	}
}
