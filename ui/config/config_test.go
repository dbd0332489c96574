package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkhz/audiohub/ui/config"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// loadConfig runs a bare command-line application that loads the configuration
// from a temporary configuration directory with the given file contents.
func loadConfig(t *testing.T, contents string, after func(*koanf.Koanf, *config.Config) error) *config.Config {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	if contents != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "audiohub"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "audiohub", "audiohub.conf"), []byte(contents), 0o644))
	}

	var cfg *config.Config

	app := &cli.App{
		Name: "audiohub",
		Action: func(cliCtx *cli.Context) error {
			cliCtx.Command.Name = "global"

			k := koanf.New(".")
			cfg = config.NewConfig()
			if err := cfg.Load(k, cliCtx); err != nil {
				return err
			}
			if err := cfg.ValidateValues(); err != nil {
				return err
			}
			if after != nil {
				return after(k, cfg)
			}

			return nil
		},
	}
	require.NoError(t, app.Run([]string{"audiohub"}))

	return cfg
}

func TestLoad(t *testing.T) {
	t.Run("creates the configuration file and applies defaults", func(t *testing.T) {
		cfg := loadConfig(t, "", nil)

		assert.FileExists(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "audiohub", "audiohub.conf"))
		assert.Equal(t, "bluetoothctl", cfg.Values.Bluetoothctl)
		assert.Equal(t, "pactl", cfg.Values.Pactl)
		assert.Equal(t, 12*time.Second, cfg.Values.ScanTime)
		assert.Equal(t, 15*time.Second, cfg.Values.CommandTimeout)
		assert.Equal(t, 25*time.Second, cfg.Values.ConnectTimeout)
		assert.Equal(t, 400*time.Millisecond, cfg.Values.Pacing)
		assert.Equal(t, 1, cfg.Values.LoopbackLatency)
		assert.Equal(t, config.DefaultInputVolume, cfg.Values.InputVolume)
		assert.Equal(t, config.DefaultOutputVolume, cfg.Values.OutputVolume)
		assert.True(t, cfg.Values.AutoConnectDeviceAddr.IsNil())
	})

	t.Run("reads values from the file", func(t *testing.T) {
		cfg := loadConfig(t, `{
			"scan-time": "5s"
			"pactl": "/usr/local/bin/pactl"
			"input-volume": 25
			"connect-bdaddr": "AA:BB:CC:DD:EE:FF"
		}`, nil)

		assert.Equal(t, 5*time.Second, cfg.Values.ScanTime)
		assert.Equal(t, "/usr/local/bin/pactl", cfg.Values.Pactl)
		assert.Equal(t, 25, cfg.Values.InputVolume)
		assert.Equal(t, config.DefaultOutputVolume, cfg.Values.OutputVolume)
		assert.Equal(t, "AA:BB:CC:DD:EE:FF", cfg.Values.AutoConnectDeviceAddr.String())
	})

	t.Run("keeps explicit zero values", func(t *testing.T) {
		cfg := loadConfig(t, `{
			"pacing": "0s"
			"loopback-latency": 0
			"input-volume": 0
			"output-volume": 0
			"command-timeout": "0s"
		}`, nil)

		assert.Zero(t, cfg.Values.Pacing)
		assert.Zero(t, cfg.Values.LoopbackLatency)
		assert.Zero(t, cfg.Values.InputVolume)
		assert.Zero(t, cfg.Values.OutputVolume)
		assert.Equal(t, 15*time.Second, cfg.Values.CommandTimeout)
	})

	t.Run("generates a configuration file with defaults", func(t *testing.T) {
		loadConfig(t, `{"scan-time": "20s"}`, func(k *koanf.Koanf, cfg *config.Config) error {
			return cfg.GenerateAndSave(k)
		})

		data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "audiohub", "audiohub.conf"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "20s")
		assert.Contains(t, string(data), "connect-timeout")
		assert.Contains(t, string(data), "loopback-latency")
	})
}

func TestValidateValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values config.Values
		err    string
	}{
		{"negative scan time", config.Values{ScanTime: -time.Second}, "scan-time"},
		{"negative pacing", config.Values{Pacing: -time.Millisecond}, "pacing"},
		{"negative volume", config.Values{OutputVolume: -1}, "output-volume"},
		{"malformed address", config.Values{ConnectAddr: "AA:BB:CC"}, "invalid address format: AA:BB:CC"},
		{"unknown theme element", config.Values{Theme: map[string]string{"Border": "red"}}, "unknown element Border"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Config{Values: tt.values}
			assert.ErrorContains(t, cfg.ValidateValues(), tt.err)
		})
	}

	t.Run("volumes above one hundred are kept", func(t *testing.T) {
		t.Parallel()
		cfg := config.Config{Values: config.Values{InputVolume: 150}}
		require.NoError(t, cfg.ValidateValues())
		assert.Equal(t, 150, cfg.Values.InputVolume)
	})
}
