package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/praetorian-inc/almanac/pkg/store"
	"github.com/praetorian-inc/almanac/pkg/types"
	"github.com/spf13/cobra"
)

var (
	historyDatastore string
	historyFormat    string
	historyColor     string
	historyInput     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded solutions",
	Long:  "Read solutions from a datastore and list them, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDatastore, "datastore", "almanac.db", "Path to datastore file")
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format: human, json")
	historyCmd.Flags().StringVar(&historyColor, "color", "auto", "Color output: auto, always, never")
	historyCmd.Flags().StringVar(&historyInput, "input", "", "Only list solutions for this input ID (hex)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyDatastore == store.MemoryPath {
		return fmt.Errorf("cannot read history from in-memory store")
	}
	if _, err := os.Stat(historyDatastore); err != nil {
		return fmt.Errorf("datastore not found: %s", historyDatastore)
	}

	s, err := store.New(store.Config{Path: historyDatastore})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	var solutions []*types.Solution
	if historyInput != "" {
		id, err := types.ParseInputID(historyInput)
		if err != nil {
			return fmt.Errorf("parsing input ID: %w", err)
		}
		solutions, err = s.GetSolutionsForInput(id)
		if err != nil {
			return fmt.Errorf("retrieving solutions: %w", err)
		}
	} else {
		solutions, err = s.GetSolutions()
		if err != nil {
			return fmt.Errorf("retrieving solutions: %w", err)
		}
	}

	switch historyFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(solutions)
	case "human":
		return outputHistoryHuman(cmd, solutions)
	default:
		return fmt.Errorf("unknown output format: %s", historyFormat)
	}
}

func outputHistoryHuman(cmd *cobra.Command, solutions []*types.Solution) error {
	enabled, err := colorEnabled(historyColor)
	if err != nil {
		return err
	}
	s := newStyles(enabled)
	out := cmd.OutOrStdout()

	if len(solutions) == 0 {
		fmt.Fprintf(out, "No solutions recorded.\n")
		return nil
	}

	total := len(solutions)
	for i, sol := range solutions {
		fmt.Fprintf(out, "%s (%s %s)\n",
			s.heading.Sprintf("Solution %d/%d", i+1, total),
			s.heading.Sprint("id"),
			s.id.Sprint(sol.ID))
		fmt.Fprintf(out, "%s %s part %d\n", s.heading.Sprint("Puzzle:"), sol.Puzzle, sol.Part)
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Input:"), sol.InputID.Short())
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Answer:"), s.answer.Sprint(sol.Answer))
		fmt.Fprintf(out, "%s %s %s\n",
			s.heading.Sprint("Solved:"),
			humanize.Time(sol.SolvedAt),
			s.muted.Sprintf("(took %s)", sol.Duration))
		if i < total-1 {
			fmt.Fprintln(out)
		}
	}
	return nil
}
