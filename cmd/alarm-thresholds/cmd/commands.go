package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-thresholds/internal/config"
	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/render"
	"github.com/oshokin/alarm-thresholds/internal/service/register"
	"github.com/oshokin/alarm-thresholds/internal/service/resolve"
	"github.com/oshokin/alarm-thresholds/internal/service/watch"
)

// formatUsage describes the --format flag.
func formatUsage() string {
	names := make([]string, 0, len(render.Formats()))
	for _, format := range render.Formats() {
		names = append(names, string(format))
	}

	return "output format (" + strings.Join(names, ", ") + ")"
}

// newResolveCommand prints the resolved thresholds once.
func newResolveCommand() *cobra.Command {
	var format string

	command := &cobra.Command{
		Use:   "resolve [kind...]",
		Short: "Print resolved thresholds.",
		Long: `Resolves thresholds for every configured alarm kind and prints them.

Kind names restrict the output to those kinds. Kinds without a configured value are omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			kinds, err := kindsByName(args)
			if err != nil {
				return err
			}

			return resolve.Run(cmd.Context(), &resolve.Options{
				EnvFile: envFile,
				Format:  outputFormat,
				Kinds:   kinds,
				Output:  cmd.OutOrStdout(),
			})
		},
	}

	command.Flags().StringVarP(&format, "format", "f", string(render.FormatYAML), formatUsage())

	return command
}

// newWatchCommand re-resolves thresholds whenever the env file changes.
func newWatchCommand() *cobra.Command {
	var format string

	command := &cobra.Command{
		Use:   "watch",
		Short: "Resolve thresholds again whenever the env file changes.",
		Long: `Resolves thresholds from --env-file, prints them, and repeats on every change to the file.

A change that fails to resolve is logged and the previous thresholds stay in effect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return watch.Run(ctx, &watch.Options{
				EnvFile: envFile,
				Format:  outputFormat,
				Output:  cmd.OutOrStdout(),
			})
		},
	}

	command.Flags().StringVarP(&format, "format", "f", string(render.FormatYAML), formatUsage())

	return command
}

// newRegisterCommand creates or updates CloudWatch metric alarms.
func newRegisterCommand() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	command := &cobra.Command{
		Use:   "register",
		Short: "Register resolved thresholds as CloudWatch metric alarms.",
		Long: `Creates or updates one CloudWatch metric alarm per configured kind.

Namespace, dimensions and actions come from the settings file. Credentials and region
come from the default AWS chain unless the settings file sets a region.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return register.Run(ctx, &register.Options{
				ConfigPath: configPath,
				EnvFile:    envFile,
				DryRun:     dryRun,
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	command.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	command.Flags().BoolVar(&dryRun, "dry-run", false, "print planned alarms without registering them")

	return command
}

// newKindsCommand lists the alarm catalog.
func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List known alarm kinds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

			_, _ = fmt.Fprintln(tw, "KIND\tCATEGORY\tMETRIC")
			for _, kind := range alarm.Kinds() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", kind.Name, kind.Category, kind.Metric)
			}

			return tw.Flush()
		},
	}
}

// kindsByName maps command arguments to catalog kinds; no arguments selects the whole catalog.
func kindsByName(names []string) ([]alarm.Kind, error) {
	kinds := make([]alarm.Kind, 0, len(names))

	for _, name := range names {
		kind, ok := alarm.KindByName(strings.ToUpper(name))
		if !ok {
			return nil, fmt.Errorf("unknown alarm kind %q", name)
		}

		kinds = append(kinds, kind)
	}

	return kinds, nil
}
