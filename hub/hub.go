// Package hub combines Bluetooth device handling and the sound server
// into the operations of the audio bridge.
package hub

import (
	"context"
	"io"
	"time"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/pulse"
)

// DefaultScanTime is how long a discovery runs before devices are listed.
const DefaultScanTime = 12 * time.Second

// Bluetooth describes the device operations of the Bluetooth control daemon.
type Bluetooth interface {
	PairedDevices(ctx context.Context) ([]bluetooth.Device, error)
	Devices(ctx context.Context) ([]bluetooth.Device, error)
	StartDiscovery(ctx context.Context) error
	StopDiscovery(ctx context.Context) error
	Connect(ctx context.Context, address bluetooth.Address) (bluetooth.ConnectResult, error)
}

// Mixer describes the sound server operations.
type Mixer interface {
	DefaultSink(ctx context.Context) (string, error)
	ListSinks(ctx context.Context) (string, error)
	ListSources(ctx context.Context) (string, error)
	Sources(ctx context.Context) ([]pulse.Source, error)
	SetDefaultSink(ctx context.Context, sink string) error
	SetSourceVolume(ctx context.Context, source string, percent int) error
	SetSinkVolume(ctx context.Context, sink string, percent int) error
	LoadLoopback(ctx context.Context, latencyMsec int) error
}

// Reporter describes where progress and results of operations are printed.
type Reporter interface {
	Info(format string, a ...any)
	Success(format string, a ...any)
	Warn(format string, a ...any)
	Heading(text string)
	Text(text string)
}

// Hub holds the audio bridge operations. It keeps no state of its own
// between operations; all state lives in the daemon and the sound server.
type Hub struct {
	bt     Bluetooth
	mixer  Mixer
	report Reporter

	scanTime        time.Duration
	loopbackLatency int

	progress      io.Writer
	progressColor string
}

// Option configures a Hub.
type Option func(h *Hub)

// WithScanTime sets how long a discovery runs.
func WithScanTime(scanTime time.Duration) Option {
	return func(h *Hub) {
		if scanTime > 0 {
			h.scanTime = scanTime
		}
	}
}

// WithLoopbackLatency sets the loopback latency, in milliseconds.
func WithLoopbackLatency(latencyMsec int) Option {
	return func(h *Hub) {
		if latencyMsec >= 0 {
			h.loopbackLatency = latencyMsec
		}
	}
}

// WithProgress sets where the discovery progress bar is drawn, and its color.
func WithProgress(w io.Writer, colorName string) Option {
	return func(h *Hub) {
		if w != nil {
			h.progress = w
		}
		h.progressColor = colorName
	}
}

// New returns a new hub.
func New(bt Bluetooth, mixer Mixer, report Reporter, options ...Option) *Hub {
	h := &Hub{
		bt:              bt,
		mixer:           mixer,
		report:          report,
		scanTime:        DefaultScanTime,
		loopbackLatency: pulse.DefaultLoopbackLatency,
		progress:        io.Discard,
	}

	for _, option := range options {
		option(h)
	}

	return h
}
