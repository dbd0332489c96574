package config

import (
	"fmt"
	"time"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/bluetooth/ctl"
	"github.com/darkhz/audiohub/hub"
	"github.com/darkhz/audiohub/pulse"
	"github.com/darkhz/audiohub/ui/theme"
)

// The default volumes suggested by the menu, in percent.
const (
	DefaultInputVolume  = 30
	DefaultOutputVolume = 80
)

// Values describes the possible configuration values that a user can
// modify and supply to the application.
type Values struct {
	Bluetoothctl    string            `koanf:"bluetoothctl"`
	Pactl           string            `koanf:"pactl"`
	ScanTime        time.Duration     `koanf:"scan-time"`
	CommandTimeout  time.Duration     `koanf:"command-timeout"`
	ConnectTimeout  time.Duration     `koanf:"connect-timeout"`
	Pacing          time.Duration     `koanf:"pacing"`
	LoopbackLatency int               `koanf:"loopback-latency"`
	InputVolume     int               `koanf:"input-volume"`
	OutputVolume    int               `koanf:"output-volume"`
	ConnectAddr     string            `koanf:"connect-bdaddr"`
	DebugLog        string            `koanf:"debug-log"`
	NoWarning       bool              `koanf:"no-warning"`
	Theme           map[string]string `koanf:"theme"`

	AutoConnectDeviceAddr bluetooth.Address

	isSet func(key string) bool
}

// validateValues validates all configuration values.
func (v *Values) validateValues() error {
	for _, validate := range []func() error{
		v.validateDurations,
		v.validateNumbers,
		v.validateConnectBDAddr,
		v.validateTheme,
	} {
		if err := validate(); err != nil {
			return err
		}
	}

	v.applyDefaults()

	return nil
}

// defaults returns the default value of every setting, keyed by its name.
func (v *Values) defaults() map[string]any {
	return map[string]any{
		"bluetoothctl":     ctl.DefaultPath,
		"pactl":            pulse.DefaultPath,
		"scan-time":        hub.DefaultScanTime.String(),
		"command-timeout":  bluetooth.DefaultCommandTimeout.String(),
		"connect-timeout":  bluetooth.DefaultConnectTimeout.String(),
		"pacing":           ctl.DefaultPacing.String(),
		"loopback-latency": pulse.DefaultLoopbackLatency,
		"input-volume":     DefaultInputVolume,
		"output-volume":    DefaultOutputVolume,
	}
}

// applyDefaults replaces unset values with their defaults.
// Zero timeouts and a zero scan time always select the default.
func (v *Values) applyDefaults() {
	setString := func(value *string, def string) {
		if *value == "" {
			*value = def
		}
	}
	setDuration := func(value *time.Duration, def time.Duration) {
		if *value == 0 {
			*value = def
		}
	}
	setUnlessExplicit := func(key string, apply func()) {
		if v.isSet == nil || !v.isSet(key) {
			apply()
		}
	}
	setInt := func(key string, value *int, def int) {
		if *value == 0 {
			setUnlessExplicit(key, func() { *value = def })
		}
	}

	setString(&v.Bluetoothctl, ctl.DefaultPath)
	setString(&v.Pactl, pulse.DefaultPath)
	setDuration(&v.ScanTime, hub.DefaultScanTime)
	setDuration(&v.CommandTimeout, bluetooth.DefaultCommandTimeout)
	setDuration(&v.ConnectTimeout, bluetooth.DefaultConnectTimeout)
	if v.Pacing == 0 {
		setUnlessExplicit("pacing", func() { v.Pacing = ctl.DefaultPacing })
	}
	setInt("loopback-latency", &v.LoopbackLatency, pulse.DefaultLoopbackLatency)
	setInt("input-volume", &v.InputVolume, DefaultInputVolume)
	setInt("output-volume", &v.OutputVolume, DefaultOutputVolume)
}

// validateDurations validates the scan time, the session timeouts and the pacing.
func (v *Values) validateDurations() error {
	for name, duration := range map[string]time.Duration{
		"scan-time":       v.ScanTime,
		"command-timeout": v.CommandTimeout,
		"connect-timeout": v.ConnectTimeout,
		"pacing":          v.Pacing,
	} {
		if duration < 0 {
			return fmt.Errorf("%s: %s cannot be negative", name, duration)
		}
	}

	return nil
}

// validateNumbers validates the loopback latency and the default volumes.
func (v *Values) validateNumbers() error {
	for name, number := range map[string]int{
		"loopback-latency": v.LoopbackLatency,
		"input-volume":     v.InputVolume,
		"output-volume":    v.OutputVolume,
	} {
		if number < 0 {
			return fmt.Errorf("%s: %d cannot be negative", name, number)
		}
	}

	return nil
}

// validateConnectBDAddr validates the device address that has to be automatically connected to on application
// launch.
func (v *Values) validateConnectBDAddr() error {
	if v.ConnectAddr == "" {
		return nil
	}

	deviceAddr, err := bluetooth.ParseAddress(v.ConnectAddr)
	if err != nil {
		return fmt.Errorf("invalid address format: %s", v.ConnectAddr)
	}

	v.AutoConnectDeviceAddr = deviceAddr

	return nil
}

// validateTheme validates the theme configuration.
func (v *Values) validateTheme() error {
	if len(v.Theme) == 0 {
		return nil
	}

	return theme.ParseThemeConfig(v.Theme)
}
