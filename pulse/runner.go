// Package pulse invokes the sound server's command-line tool.
package pulse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultPath is the sound server tool that is run when no other path is configured.
	DefaultPath = "pactl"

	// DefaultTimeout bounds a single invocation of the sound server tool.
	DefaultTimeout = 10 * time.Second
)

// Runner runs the sound server tool once with the given arguments,
// and returns its trimmed standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExitError is returned when the sound server tool exits with a non-zero status.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
}

// Error returns the formatted error as string.
func (e *ExitError) Error() string {
	message := fmt.Sprintf("%s: exit status %d", strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		message += ": " + e.Stderr
	}

	return message
}

// ExecRunner runs the sound server tool as a subprocess.
type ExecRunner struct {
	path    string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewExecRunner returns a runner for the tool at path.
func NewExecRunner(path string, timeout time.Duration, logger zerolog.Logger) *ExecRunner {
	if path == "" {
		path = DefaultPath
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ExecRunner{path: path, timeout: timeout, logger: logger}
}

// Run runs the tool and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	r.logger.Debug().Strs("args", args).AnErr("error", err).Msg(r.path)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return strings.TrimSpace(stdout.String()), &ExitError{
				Args:   append([]string{r.path}, args...),
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s %s: %w", r.path, strings.Join(args, " "), ctx.Err())
		}

		return "", fmt.Errorf("cannot run %s: %w", r.path, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
