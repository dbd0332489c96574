package bluetooth

import (
	"context"
	"time"
)

// The default session timeouts.
const (
	DefaultCommandTimeout = 15 * time.Second
	DefaultConnectTimeout = 25 * time.Second
)

// Runner runs a sequence of commands within a single control daemon
// session, and returns everything the daemon printed in between.
// A non-nil error may be returned together with a partial transcript.
type Runner interface {
	Run(ctx context.Context, commands []string, timeout time.Duration) (string, error)
}

// Controller performs device operations through a control daemon session.
// Only this type knows that devices are scraped from text output.
type Controller struct {
	runner Runner

	commandTimeout time.Duration
	connectTimeout time.Duration

	warn func(error)
}

// ControllerOption configures a Controller.
type ControllerOption func(c *Controller)

// WithTimeouts sets the timeout for general commands and for the
// pair, trust and connect sequence.
func WithTimeouts(command, connect time.Duration) ControllerOption {
	return func(c *Controller) {
		if command > 0 {
			c.commandTimeout = command
		}
		if connect > 0 {
			c.connectTimeout = connect
		}
	}
}

// WithWarningHandler sets the function that is called when a session
// ends abnormally and only a partial transcript could be gathered.
func WithWarningHandler(warn func(error)) ControllerOption {
	return func(c *Controller) {
		if warn != nil {
			c.warn = warn
		}
	}
}

// NewController returns a new controller.
func NewController(runner Runner, options ...ControllerOption) *Controller {
	c := &Controller{
		runner:         runner,
		commandTimeout: DefaultCommandTimeout,
		connectTimeout: DefaultConnectTimeout,
		warn:           func(error) {},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// PairedDevices returns the list of paired devices.
func (c *Controller) PairedDevices(ctx context.Context) ([]Device, error) {
	transcript, err := c.session(ctx, c.commandTimeout, "devices Paired")
	if err != nil {
		return nil, err
	}

	return ParseDevices(transcript), nil
}

// Devices returns the list of all devices known to the daemon,
// including the ones found by a discovery.
func (c *Controller) Devices(ctx context.Context) ([]Device, error) {
	transcript, err := c.session(ctx, c.commandTimeout, "devices")
	if err != nil {
		return nil, err
	}

	return ParseDevices(transcript), nil
}

// StartDiscovery starts a device discovery.
func (c *Controller) StartDiscovery(ctx context.Context) error {
	_, err := c.session(ctx, c.commandTimeout, "scan on")

	return err
}

// StopDiscovery stops a device discovery.
func (c *Controller) StopDiscovery(ctx context.Context) error {
	_, err := c.session(ctx, c.commandTimeout, "scan off")

	return err
}

// Connect pairs, trusts and connects to the device, in that order,
// within one session.
func (c *Controller) Connect(ctx context.Context, address Address) (ConnectResult, error) {
	transcript, err := c.session(ctx, c.connectTimeout,
		"pair "+address.String(),
		"trust "+address.String(),
		"connect "+address.String(),
	)
	if err != nil {
		return ConnectResult{}, err
	}

	return ConnectResult{
		Connected:  ConnectSucceeded(transcript),
		Transcript: transcript,
	}, nil
}

// session runs the commands and returns the transcript. Session errors
// are only reported as warnings, a cancelled context is returned.
func (c *Controller) session(ctx context.Context, timeout time.Duration, commands ...string) (string, error) {
	transcript, err := c.runner.Run(ctx, commands, timeout)
	if ctx.Err() != nil {
		return transcript, ctx.Err()
	}
	if err != nil {
		c.warn(err)
	}

	return transcript, nil
}
