package main

import (
	"github.com/praetorian-inc/almanac/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	quiet   bool

	// logger is built per invocation in PersistentPreRunE.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Almanac - seed-to-location puzzle solver",
	Long: `Almanac solves puzzle inputs that map seed numbers through a chain of
category mappings (seed, soil, fertilizer, ... location) and reports the
lowest location reached.

Answers are recorded in a SQLite datastore so earlier runs can be reviewed
with the history command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(cmd.ErrOrStderr(), verbose, quiet)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
