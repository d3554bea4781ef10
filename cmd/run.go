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
	"github.com/conneroisu/watchfiles-go/internal/runner"
	"github.com/conneroisu/watchfiles-go/internal/watcher"
)

var runCmd = &cobra.Command{
	Use:   "run [paths...] -- command [args...]",
	Short: "Watch paths for changes and restart a command on every batch",
	Long: `Watch one or more paths and, on every debounced batch of changes, send
an interrupt to the currently running command, wait briefly, escalate to a
kill if it hasn't exited, then start a fresh instance.

The child process can read which files changed from the WATCHFILES_CHANGES
environment variable, a JSON array of [kind, path] pairs.

Example:
  watchfiles-go run . -- go run .`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: false,
	RunE:               runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	dashIdx := cmd.ArgsLenAtDash()
	if dashIdx < 0 || dashIdx >= len(args) {
		return fmt.Errorf("usage: watchfiles-go run [paths...] -- command [args...]")
	}

	paths := args[:dashIdx]
	command := args[dashIdx]
	commandArgs := args[dashIdx+1:]
	if len(paths) == 0 {
		return fmt.Errorf("at least one path to watch is required")
	}

	if err := runner.ValidateCommand(command, commandArgs); err != nil {
		return fmt.Errorf("refusing to run %q: %w", command, err)
	}

	logger := logging.New(logging.DefaultConfig())

	cfg, params, err := config.Load(paths)
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

	r := runner.New(runner.Config{Command: command, Args: commandArgs}, logger)

	ctx := context.Background()
	if err := r.Start(ctx); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}
	defer r.Stop()

	fmt.Fprintf(os.Stderr, "running %q, reloading on changes under %d path(s)\n", command, len(cfg.Roots))

	handler := errors.NewHandler(logger, nil)

	for {
		batch, err, ok := it.Next()
		if err != nil {
			handler.Handle(ctx, err)
			return err
		}
		if !ok {
			return nil
		}
		fmt.Fprintf(os.Stderr, "%d change(s) detected, reloading\n", len(batch.Slice()))
		if err := r.Reload(ctx, batch); err != nil {
			handler.Handle(ctx, err)
		}
	}
}
