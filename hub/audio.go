package hub

import (
	"context"
	"fmt"

	"github.com/darkhz/audiohub/pulse"
)

// SetVolumes sets the volume of the USB input, if one is present, and of
// the default output. The percentages are passed on as they are.
func (h *Hub) SetVolumes(ctx context.Context, inputPercent, outputPercent int) error {
	sources, err := h.mixer.Sources(ctx)
	if err != nil {
		h.report.Warn("Could not list audio sources: %v", err)
	}

	if source, ok := pulse.FindInputSource(sources); ok {
		if err := h.mixer.SetSourceVolume(ctx, source.Index, inputPercent); err != nil {
			return fmt.Errorf("failed to set input volume: %w", err)
		}

		h.report.Success("Set input volume to %d%%", inputPercent)
	} else {
		h.report.Warn("Could not find USB audio input source")
	}

	if err := h.mixer.SetSinkVolume(ctx, pulse.DefaultSinkAlias, outputPercent); err != nil {
		return fmt.Errorf("failed to set output volume: %w", err)
	}

	h.report.Success("Set output volume to %d%%", outputPercent)

	return nil
}

// Status prints the default sink, and the available sinks and sources.
// Failures are reported in place of the output, and empty output as "(none)".
func (h *Hub) Status(ctx context.Context) {
	h.report.Heading("Current status:")

	for _, query := range []struct {
		title string
		run   func(context.Context) (string, error)
	}{
		{"Default sink:", h.mixer.DefaultSink},
		{"Available sinks:", h.mixer.ListSinks},
		{"Available sources:", h.mixer.ListSources},
	} {
		h.report.Heading(query.title)

		output, err := query.run(ctx)
		if err != nil {
			h.report.Warn("%v", err)
			continue
		}

		if output == "" {
			output = "(none)"
		}

		h.report.Text(output)
	}
}

// EnsureLoopback loads the loopback from the analog input to the current output.
// The sound server refuses to load it twice, which is only reported.
func (h *Hub) EnsureLoopback(ctx context.Context) {
	if err := h.mixer.LoadLoopback(ctx, h.loopbackLatency); err != nil {
		h.report.Warn("Loopback module not loaded, it may already be active: %v", err)
		return
	}

	h.report.Success("Loopback module loaded (analog input → current output)")
}
