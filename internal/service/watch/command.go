package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/logger"
	"github.com/oshokin/alarm-thresholds/internal/render"
	"github.com/oshokin/alarm-thresholds/internal/service/resolve"
)

// Options controls the watch command.
type Options struct {
	// EnvFile is the YAML file to watch. It is required.
	EnvFile string
	// Format selects the output encoding used by the default OnChange.
	Format render.Format
	// Output receives rendered thresholds when OnChange is not set, stdout by default.
	Output io.Writer
	// OnChange is called with every successful resolution, including the initial one.
	OnChange func(ctx context.Context, thresholds alarm.Thresholds) error
}

// ErrEnvFileRequired is returned when no file to watch is configured.
var ErrEnvFileRequired = errors.New("env file must be provided")

// Run resolves the env file once, then again on every write until ctx is canceled.
// A failed initial resolution is returned; later failures are logged and the
// previous thresholds stay in effect.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "watch")

	if opts.EnvFile == "" {
		return ErrEnvFileRequired
	}

	onChange := opts.OnChange
	if onChange == nil {
		onChange = renderTo(opts.Output, opts.Format)
	}

	path := filepath.Clean(opts.EnvFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory so atomic saves (write to temp file, rename) are seen.
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	current, err := resolve.Thresholds(ctx, path, nil)
	if err != nil {
		return err
	}

	if err = onChange(ctx, current); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Watching env file for changes", "path", path, "kinds", current.Names())

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != path || (!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create)) {
				continue
			}

			thresholds, err := resolve.Thresholds(ctx, path, nil)
			if err != nil {
				logger.ErrorKV(ctx, "Reload failed, keeping previous thresholds", "path", path, "error", err)
				continue
			}

			current = thresholds
			logger.InfoKV(ctx, "Thresholds reloaded", "path", path, "kinds", current.Names())

			if err = onChange(ctx, current); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.ErrorKV(ctx, "Watcher error", "error", err)
		}
	}
}

// renderTo returns an OnChange that renders every resolution to output.
func renderTo(output io.Writer, format render.Format) func(context.Context, alarm.Thresholds) error {
	if output == nil {
		output = os.Stdout
	}

	if format == "" {
		format = render.FormatYAML
	}

	return func(_ context.Context, thresholds alarm.Thresholds) error {
		return render.Write(output, format, thresholds)
	}
}
