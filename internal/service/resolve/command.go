package resolve

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/alarm-thresholds/internal/config"
	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/logger"
	"github.com/oshokin/alarm-thresholds/internal/render"
	"github.com/oshokin/alarm-thresholds/internal/resolver"
)

// Options controls the resolve command.
type Options struct {
	// EnvFile is an optional YAML file whose keys take precedence over the environment.
	EnvFile string
	// Format selects the output encoding, YAML by default.
	Format render.Format
	// Kinds restricts resolution to these kinds, the full catalog by default.
	Kinds []alarm.Kind
	// Output receives the rendered thresholds, stdout by default.
	Output io.Writer
}

// Run resolves thresholds and renders them to the configured output.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "resolve")

	thresholds, err := Thresholds(ctx, opts.EnvFile, opts.Kinds)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Resolved alarm thresholds", "count", len(thresholds), "kinds", thresholds.Names())

	format := opts.Format
	if format == "" {
		format = render.FormatYAML
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	return render.Write(output, format, thresholds)
}

// Thresholds builds the lookup for envFile and resolves kinds, or the whole catalog when kinds is empty.
func Thresholds(ctx context.Context, envFile string, kinds []alarm.Kind) (alarm.Thresholds, error) {
	lookup, err := config.NewLookup(envFile)
	if err != nil {
		return nil, fmt.Errorf("open configuration source: %w", err)
	}

	if len(kinds) == 0 {
		kinds = alarm.Kinds()
	}

	thresholds, err := resolver.Resolve(ctx, lookup, kinds)
	if err != nil {
		return nil, fmt.Errorf("resolve thresholds: %w", err)
	}

	return thresholds, nil
}
