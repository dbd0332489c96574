package ctl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Driver runs command sequences against the control tool,
// starting a fresh interactive session for every sequence.
type Driver struct {
	spawn Spawner

	pacing       time.Duration
	closeTimeout time.Duration

	logger zerolog.Logger
}

// Option configures a Driver.
type Option func(d *Driver)

// WithSpawner sets the function that starts the control tool.
func WithSpawner(spawn Spawner) Option {
	return func(d *Driver) {
		d.spawn = spawn
	}
}

// WithPacing sets the pause after each command. A zero value disables it.
func WithPacing(pacing time.Duration) Option {
	return func(d *Driver) {
		d.pacing = pacing
	}
}

// WithCloseTimeout sets how long the control tool may take to exit.
func WithCloseTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.closeTimeout = timeout
	}
}

// WithLogger sets the debug logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver returns a driver for the control tool at path.
func NewDriver(path string, options ...Option) *Driver {
	if path == "" {
		path = DefaultPath
	}

	d := &Driver{
		spawn:        PtySpawner(path),
		pacing:       DefaultPacing,
		closeTimeout: DefaultCloseTimeout,
		logger:       zerolog.Nop(),
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// Run starts a session, waits for the first prompt and then sends each command,
// waiting up to timeout for the prompt that follows it. The output of every
// command is appended to the transcript. The session is closed with an exit
// command once all commands are sent.
//
// If the tool ends its output early, the transcript gathered so far is
// returned without an error. If a prompt does not arrive in time, the
// remaining commands are skipped and the partial transcript is returned
// together with an error matching ErrPromptTimeout.
func (d *Driver) Run(ctx context.Context, commands []string, timeout time.Duration) (string, error) {
	logger := d.logger.With().Str("session", uuid.NewString()).Logger()

	proc, err := d.spawn(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSessionStart, err)
	}

	s := newSession(proc, logger)

	var transcript strings.Builder
	err = d.converse(ctx, s, commands, timeout, &transcript)

	if closeErr := s.close(d.closeTimeout); closeErr != nil {
		logger.Debug().Err(closeErr).Msg("close")
	}

	switch {
	case err == nil, errors.Is(err, errEnded):
		logger.Debug().Int("commands", len(commands)).Msg("session finished")
		return transcript.String(), nil

	case errors.Is(err, ErrPromptTimeout):
		logger.Debug().Dur("timeout", timeout).Msg("prompt timeout")
		return transcript.String(), fmt.Errorf("%w (%s)", ErrPromptTimeout, timeout)
	}

	return transcript.String(), err
}

// converse sends the commands one after the other and collects their output.
func (d *Driver) converse(ctx context.Context, s *session, commands []string, timeout time.Duration, transcript *strings.Builder) error {
	if _, err := s.waitForPrompt(ctx, timeout); err != nil {
		return err
	}

	for _, command := range commands {
		if err := s.send(command); err != nil {
			return errEnded
		}

		output, err := s.waitForPrompt(ctx, timeout)
		if output != "" || err == nil {
			transcript.WriteString(output)
			transcript.WriteString("\n")
		}
		if err != nil {
			return err
		}

		if err := d.settle(ctx); err != nil {
			return err
		}
	}

	return nil
}

// settle is the synchronization point between two commands: it gives the
// control tool time to flush its output before the next command is sent.
func (d *Driver) settle(ctx context.Context) error {
	if d.pacing <= 0 {
		return nil
	}

	timer := time.NewTimer(d.pacing)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil

	case <-ctx.Done():
		return ctx.Err()
	}
}
