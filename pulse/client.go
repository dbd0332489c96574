package pulse

import (
	"context"
	"strconv"
	"strings"

	"github.com/darkhz/audiohub/bluetooth"
)

const (
	// DefaultSinkAlias refers to whichever sink is currently the default output.
	DefaultSinkAlias = "@DEFAULT_SINK@"

	// LoopbackModule copies audio from a source directly to a sink.
	LoopbackModule = "module-loopback"

	// DefaultLoopbackLatency is the loopback latency, in milliseconds.
	DefaultLoopbackLatency = 1

	defaultSinkPrefix = "Default Sink:"
)

// SinkName returns the sound server's sink name for a Bluetooth
// audio device, for example "bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink".
func SinkName(address bluetooth.Address) string {
	return "bluez_sink." + address.Underscored() + ".a2dp_sink"
}

// Client issues commands to the sound server.
type Client struct {
	runner Runner
}

// NewClient returns a new client.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Info returns the server information.
func (c *Client) Info(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, "info")
}

// DefaultSink returns the name of the current default sink.
func (c *Client) DefaultSink(ctx context.Context) (string, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(info, "\n") {
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), defaultSinkPrefix); ok {
			return strings.TrimSpace(name), nil
		}
	}

	return "", nil
}

// ListSinks returns the short sink list.
func (c *Client) ListSinks(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, "list", "sinks", "short")
}

// ListSources returns the short source list.
func (c *Client) ListSources(ctx context.Context) (string, error) {
	return c.runner.Run(ctx, "list", "sources", "short")
}

// Sources returns the parsed short source list.
func (c *Client) Sources(ctx context.Context) ([]Source, error) {
	output, err := c.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	return ParseSources(output), nil
}

// SetDefaultSink sets the default output.
func (c *Client) SetDefaultSink(ctx context.Context, sink string) error {
	_, err := c.runner.Run(ctx, "set-default-sink", sink)

	return err
}

// SetSourceVolume sets the volume of a source, in percent.
func (c *Client) SetSourceVolume(ctx context.Context, source string, percent int) error {
	_, err := c.runner.Run(ctx, "set-source-volume", source, volume(percent))

	return err
}

// SetSinkVolume sets the volume of a sink, in percent.
func (c *Client) SetSinkVolume(ctx context.Context, sink string, percent int) error {
	_, err := c.runner.Run(ctx, "set-sink-volume", sink, volume(percent))

	return err
}

// LoadModule loads a server module with its arguments.
func (c *Client) LoadModule(ctx context.Context, module string, args ...string) error {
	_, err := c.runner.Run(ctx, append([]string{"load-module", module}, args...)...)

	return err
}

// LoadLoopback loads the loopback module with the given latency in milliseconds.
func (c *Client) LoadLoopback(ctx context.Context, latencyMsec int) error {
	return c.LoadModule(ctx, LoopbackModule, "latency_msec="+strconv.Itoa(latencyMsec))
}

func volume(percent int) string {
	return strconv.Itoa(percent) + "%"
}
