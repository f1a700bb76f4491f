package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-thresholds/internal/logger"
	"github.com/oshokin/alarm-thresholds/internal/version"
)

var (
	// logLevel is the minimum level of log messages written to stderr.
	logLevel string
	// envFile is an optional YAML file layered over the process environment.
	envFile string

	// rootCmd represents the base command for threshold resolution.
	rootCmd = &cobra.Command{
		Use:   "alarm-thresholds",
		Short: "Resolve alarm thresholds from the environment.",
		Long: `Resolves alarm thresholds from environment variables into per-kind settings.

Every alarm kind is enabled by setting its name (for example CPU_UPPER_LIMIT_VCPUS=4).
PERIOD_MINUTES, DATA_POINTS and DATA_POINTS_TO_ALARM set global defaults (1, 5 and 3
when unset); <KIND>_PERIOD_MINUTES, <KIND>_DATA_POINTS and <KIND>_DATA_POINTS_TO_ALARM
override them per kind. Values below 1 are raised to 1 with a warning, malformed values
abort with an error naming the key.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}
)

// Execute runs the alarm-thresholds CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		StringVarP(&envFile, "env-file", "e", "", "YAML file of keys taking precedence over the environment")

	rootCmd.AddCommand(newResolveCommand(), newWatchCommand(), newRegisterCommand(), newKindsCommand())
}
