package pulse_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/darkhz/audiohub/pulse"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed stdout", func(t *testing.T) {
		t.Parallel()
		r := pulse.NewExecRunner("sh", time.Second, zerolog.Nop())
		out, err := r.Run(context.Background(), "-c", "echo '  hello  '")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("non-zero exit carries code and stderr", func(t *testing.T) {
		t.Parallel()
		r := pulse.NewExecRunner("sh", time.Second, zerolog.Nop())
		_, err := r.Run(context.Background(), "-c", "echo 'Failure: Module initialization failed' >&2; exit 3")

		var exitErr *pulse.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.Code)
		assert.Equal(t, "Failure: Module initialization failed", exitErr.Stderr)
		assert.Contains(t, exitErr.Error(), "exit status 3")
	})

	t.Run("missing executable", func(t *testing.T) {
		t.Parallel()
		r := pulse.NewExecRunner("/nonexistent/pactl", time.Second, zerolog.Nop())
		_, err := r.Run(context.Background(), "info")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot run")
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		r := pulse.NewExecRunner("sh", 50*time.Millisecond, zerolog.Nop())
		_, err := r.Run(context.Background(), "-c", "exec sleep 5")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
