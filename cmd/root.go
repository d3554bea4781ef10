// Package cmd provides the command-line front-end for watchfiles-go.
//
// Configuration System:
//
//	Flags take precedence over WATCHFILES_* environment variables, which
//	take precedence over the package defaults. There is no configuration
//	file: every setting is either a flag or an environment variable,
//	following the upstream watchfiles CLI rather than the teacher's
//	config-file-centric approach, since this tool has far fewer knobs.
//
// Environment Variables:
//
//	WATCHFILES_FORCE_POLLING: force the polling backend.
//	WATCHFILES_POLL_DELAY_MS: default poll-delay-ms.
//	WATCHFILES_IGNORE_PERMISSION_DENIED: default ignore-permission-denied.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "watchfiles-go",
	Short: "Watch directories for changes and react to them",
	Long: `watchfiles-go watches one or more directories for filesystem changes,
debounces bursts of activity into batches, and either prints the batches or
reloads a subprocess on every batch.

Quick start:
  watchfiles-go watch .                  Watch the current directory
  watchfiles-go run . -- go run .        Reload "go run ." on every change`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Bool("recursive", true, "watch subdirectories of each root")
	rootCmd.PersistentFlags().Bool("force-polling", false, "force the polling backend (also: WATCHFILES_FORCE_POLLING)")
	rootCmd.PersistentFlags().Int("poll-delay-ms", 300, "polling backend sample interval in milliseconds")
	rootCmd.PersistentFlags().Bool("ignore-permission-denied", false, "skip permission-denied subtrees instead of failing")
	rootCmd.PersistentFlags().Bool("debug", false, "trace every raw event before filtering")
	rootCmd.PersistentFlags().Int("debounce", 1600, "maximum quiescence window in milliseconds before delivering a batch")
	rootCmd.PersistentFlags().Int("step", 50, "poll granularity in milliseconds")
	rootCmd.PersistentFlags().Int("timeout", 0, "absolute bound in milliseconds on each watch call; 0 means no bound")

	for _, name := range []string{
		"recursive", "force-polling", "poll-delay-ms", "ignore-permission-denied",
		"debug", "debounce", "step", "timeout",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig enables automatic environment variable binding with the
// WATCHFILES_ prefix, e.g. WATCHFILES_POLL_DELAY_MS maps to the
// poll-delay-ms flag.
func initConfig() {
	viper.SetEnvPrefix("WATCHFILES")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}
