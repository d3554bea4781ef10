package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conneroisu/watchfiles-go/internal/config"
	"github.com/conneroisu/watchfiles-go/internal/errors"
	"github.com/conneroisu/watchfiles-go/internal/filters"
	"github.com/conneroisu/watchfiles-go/internal/logging"
	"github.com/conneroisu/watchfiles-go/internal/watcher"
)

var watchVerbose bool

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch paths for changes and print batches as they arrive",
	Long: `Watch one or more paths and print each debounced batch of changes to
stdout as it is delivered.

Examples:
  watchfiles-go watch .                  # Watch the current directory
  watchfiles-go watch -v ./src ./assets  # Watch two directories, verbosely`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "print every change record, not just batch counts")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.DefaultConfig())

	cfg, params, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	session, err := watcher.Open(cfg, filters.NewDefaultFilter().FilterFunc(), logger)
	if err != nil {
		return fmt.Errorf("failed to open watch session: %w", err)
	}

	it := watcher.NewSyncIterator(session, watcher.IteratorOptions{
		DebounceMs: params.DebounceMs,
		StepMs:     params.StepMs,
		TimeoutMs:  params.TimeoutMs,
	}, logger)
	defer it.Close()

	fmt.Fprintf(os.Stderr, "watching %d path(s) (recursive=%v, force-polling=%v)\n", len(cfg.Roots), cfg.Recursive, cfg.ForcePolling)

	handler := errors.NewHandler(logger, nil)

	for {
		batch, err, ok := it.Next()
		if err != nil {
			handler.Handle(context.Background(), err)
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "stopped")
			return nil
		}
		printBatch(batch, watchVerbose)
	}
}

func printBatch(batch watcher.ChangeBatch, verbose bool) {
	records := batch.Slice()
	if verbose {
		for _, r := range records {
			fmt.Printf("%s: %s\n", r.Kind, r.Path)
		}
		return
	}
	fmt.Printf("%d change(s) detected\n", len(records))
}
