package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/almanac/pkg/fixture"
	"github.com/spf13/cobra"
)

var (
	checkFixturesPath string
	checkFormat       string
	checkColor        string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run solver fixtures",
	Long: `Solve every fixture and compare the answers with their expectations.

Without --fixtures the builtin fixtures are used. Exits non-zero when any
expectation fails.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFixturesPath, "fixtures", "", "Path to a fixtures YAML file")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format: human, json")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fixtures, err := loadFixtures(checkFixturesPath)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	results := fixture.Check(context.Background(), newEngine(0), fixtures)

	failed := 0
	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}

	switch checkFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	case "human":
		if err := outputCheckHuman(cmd, results, failed); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format: %s", checkFormat)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

func loadFixtures(path string) ([]*fixture.Fixture, error) {
	loader := fixture.NewLoader()
	if path != "" {
		return loader.LoadFile(path)
	}
	return loader.LoadBuiltin()
}

func outputCheckHuman(cmd *cobra.Command, results []fixture.CheckResult, failed int) error {
	enabled, err := colorEnabled(checkColor)
	if err != nil {
		return err
	}
	s := newStyles(enabled)
	out := cmd.OutOrStdout()

	for _, r := range results {
		label := fmt.Sprintf("%s part %s", r.Fixture, r.Part)
		switch {
		case r.Passed():
			fmt.Fprintf(out, "%s %s %s\n", s.pass.Sprint("PASS"), label, s.muted.Sprint(r.Got))
		case r.Error != "":
			fmt.Fprintf(out, "%s %s: %s\n", s.fail.Sprint("FAIL"), label, r.Error)
		default:
			fmt.Fprintf(out, "%s %s: want %s, got %s\n", s.fail.Sprint("FAIL"), label,
				s.answer.Sprint(r.Want), s.answer.Sprint(r.Got))
		}
	}

	fmt.Fprintf(out, "\n%s %d passed, %d failed\n", s.heading.Sprint("Summary:"), len(results)-failed, failed)
	return nil
}
