package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-thresholds/internal/domain/alarm"
	"github.com/oshokin/alarm-thresholds/internal/render"
)

// recorder collects every resolution passed to OnChange.
type recorder struct {
	// mu protects results.
	mu sync.Mutex
	// results are the thresholds received so far.
	results []alarm.Thresholds
}

// record is used as the OnChange callback.
func (r *recorder) record(_ context.Context, thresholds alarm.Thresholds) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, thresholds)

	return nil
}

// last returns the most recent resolution and the number of calls.
func (r *recorder) last() (alarm.Thresholds, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.results) == 0 {
		return nil, 0
	}

	return r.results[len(r.results)-1], len(r.results)
}

// replaceFile atomically replaces path with contents, the way editors save.
func replaceFile(t *testing.T, path, contents string) {
	t.Helper()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(contents), 0o600))
	require.NoError(t, os.Rename(tmp, path))
}

// TestRun_RequiresEnvFile rejects a missing env file option.
func TestRun_RequiresEnvFile(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Run(context.Background(), new(Options)), ErrEnvFileRequired)
}

// TestRun_InitialFailure returns the error of the first resolution.
func TestRun_InitialFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DATA_POINTS: a\n"), 0o600))

	require.Error(t, Run(context.Background(), &Options{EnvFile: path, Output: new(bytes.Buffer)}))
}

// TestRun_ReloadsOnChange re-resolves on write and keeps the last good result on failure.
func TestRun_ReloadsOnChange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CPU_LOWER_LIMIT_VCPUS: 1\n"), 0o600))

	rec := new(recorder)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{EnvFile: path, OnChange: rec.record})
	}()

	require.Eventually(t, func() bool {
		_, calls := rec.last()
		return calls == 1
	}, 2*time.Second, 10*time.Millisecond)

	// A broken file is logged and ignored.
	replaceFile(t, path, "CPU_LOWER_LIMIT_VCPUS: a\n")
	time.Sleep(100 * time.Millisecond)

	_, calls := rec.last()
	require.Equal(t, 1, calls)

	replaceFile(t, path, "CPU_LOWER_LIMIT_VCPUS: 1\nCPU_UPPER_LIMIT_VCPUS: 4\n")

	require.Eventually(t, func() bool {
		thresholds, _ := rec.last()
		return len(thresholds) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

// TestRun_DefaultRenders writes the initial resolution to the output.
func TestRun_DefaultRenders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("HEALTH_CHECK_FAILED: \"on\"\n"), 0o600))

	var (
		mu  sync.Mutex
		out bytes.Buffer
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, &Options{
			EnvFile: path,
			OnChange: func(ctx context.Context, thresholds alarm.Thresholds) error {
				mu.Lock()
				defer mu.Unlock()

				return renderTo(&out, render.FormatTable)(ctx, thresholds)
			},
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return bytes.Contains(out.Bytes(), []byte("HEALTH_CHECK_FAILED"))
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
