package hub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/pulse"
	"github.com/schollz/progressbar/v3"
)

// PairedDevices returns the paired devices.
func (h *Hub) PairedDevices(ctx context.Context) ([]bluetooth.Device, error) {
	return h.bt.PairedDevices(ctx)
}

// Scan runs a discovery for the configured scan time, and returns all devices
// known afterwards. The discovery always runs for the full duration.
func (h *Hub) Scan(ctx context.Context) ([]bluetooth.Device, error) {
	h.report.Info("Scanning for devices... (please make sure your speaker is in pairing mode)")

	if err := h.bt.StartDiscovery(ctx); err != nil {
		return nil, err
	}

	waitErr := h.waitForDiscovery(ctx)

	if err := h.bt.StopDiscovery(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}

	return h.bt.Devices(ctx)
}

// waitForDiscovery blocks for the scan time, drawing a progress bar.
func (h *Hub) waitForDiscovery(ctx context.Context) error {
	seconds := max(int(h.scanTime/time.Second), 1)

	saucer := "="
	if h.progressColor != "" {
		saucer = "[" + h.progressColor + "]=[reset]"
	}

	bar := progressbar.NewOptions(seconds,
		progressbar.OptionSetWriter(h.progress),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionEnableColorCodes(h.progressColor != ""),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        saucer,
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	start := time.Now()

	deadline := time.NewTimer(h.scanTime)
	defer deadline.Stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = bar.Set(min(int(time.Since(start)/time.Second), seconds))

		case <-deadline.C:
			_ = bar.Finish()
			return nil

		case <-ctx.Done():
			_ = bar.Exit()
			return ctx.Err()
		}
	}
}

// Connect pairs, trusts and connects to the device. If the connection
// could not be verified, the daemon output is printed for diagnosis.
func (h *Hub) Connect(ctx context.Context, address bluetooth.Address) (bool, error) {
	h.report.Info("Connecting to %s...", address)

	result, err := h.bt.Connect(ctx, address)
	if err != nil {
		return false, err
	}

	if !result.Connected {
		h.report.Warn("Connection may have failed. Output:")
		h.report.Text(result.Transcript)

		return false, nil
	}

	h.report.Success("Connection successful!")

	return true, nil
}

// ConnectAndSelect connects to the device, and makes it the default
// output once the connection succeeded.
func (h *Hub) ConnectAndSelect(ctx context.Context, address bluetooth.Address) (bool, error) {
	connected, err := h.Connect(ctx, address)
	if err != nil || !connected {
		return connected, err
	}

	return true, h.SetDefaultOutput(ctx, address)
}

// ConnectAndUseOutput connects to the device, and makes it the default output
// even if the connection could not be verified. If it was not verified, a
// failure to set the default output is only reported.
func (h *Hub) ConnectAndUseOutput(ctx context.Context, address bluetooth.Address) error {
	connected, err := h.Connect(ctx, address)
	if err != nil {
		return err
	}

	err = h.SetDefaultOutput(ctx, address)
	if err != nil && !connected && !errors.Is(err, context.Canceled) {
		h.report.Warn("%v", err)
		return nil
	}

	return err
}

// SetDefaultOutput makes the device's audio sink the default output.
func (h *Hub) SetDefaultOutput(ctx context.Context, address bluetooth.Address) error {
	sink := pulse.SinkName(address)

	if err := h.mixer.SetDefaultSink(ctx, sink); err != nil {
		return fmt.Errorf("failed to set default sink %s: %w", sink, err)
	}

	h.report.Success("Set default sink to: %s", sink)

	return nil
}
