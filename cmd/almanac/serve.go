package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/almanac/pkg/serve"
	"github.com/praetorian-inc/almanac/pkg/store"
	"github.com/spf13/cobra"
)

var (
	serveWorkers    int
	serveOutputPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming NDJSON solver",
	Long: `Run Almanac as a long-lived streaming server that accepts solve requests
via stdin and writes answers to stdout using NDJSON format.

Answers are cached by input content for the life of the process. The
server runs until stdin closes, a close request arrives, or SIGTERM is
received.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 0, "Resolver workers per solve (0 uses GOMAXPROCS)")
	serveCmd.Flags().StringVar(&serveOutputPath, "output", "", "Record solutions in this database (empty to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(newEngine(serveWorkers), cmd.InOrStdin(), cmd.OutOrStdout())
	srv.SetLogger(logger)

	if serveOutputPath != "" {
		s, err := store.New(store.Config{Path: serveOutputPath})
		if err != nil {
			return fmt.Errorf("creating store: %w", err)
		}
		defer s.Close()
		srv.SetStore(s)
	}

	return srv.Run(ctx)
}
