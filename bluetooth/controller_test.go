package bluetooth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runCall struct {
	commands []string
	timeout  time.Duration
}

// fakeRunner returns canned transcripts keyed by the first command.
type fakeRunner struct {
	transcripts map[string]string
	err         error
	calls       []runCall
}

func (f *fakeRunner) Run(_ context.Context, commands []string, timeout time.Duration) (string, error) {
	f.calls = append(f.calls, runCall{commands: commands, timeout: timeout})

	return f.transcripts[commands[0]], f.err
}

func TestControllerDevices(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{transcripts: map[string]string{
		"devices":        "Device 11:22:33:44:55:66 My Speaker\n",
		"devices Paired": "Device AA:BB:CC:DD:EE:FF Paired One\n",
	}}
	c := bluetooth.NewController(runner, bluetooth.WithTimeouts(time.Second, 2*time.Second))

	devices, err := c.Devices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bluetooth.Device{{Address: "11:22:33:44:55:66", Name: "My Speaker"}}, devices)

	paired, err := c.PairedDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bluetooth.Device{{Address: "AA:BB:CC:DD:EE:FF", Name: "Paired One"}}, paired)

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"devices"}, runner.calls[0].commands)
	assert.Equal(t, []string{"devices Paired"}, runner.calls[1].commands)
	assert.Equal(t, time.Second, runner.calls[0].timeout)
}

func TestControllerDiscovery(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	c := bluetooth.NewController(runner)

	require.NoError(t, c.StartDiscovery(context.Background()))
	require.NoError(t, c.StopDiscovery(context.Background()))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"scan on"}, runner.calls[0].commands)
	assert.Equal(t, []string{"scan off"}, runner.calls[1].commands)
	assert.Equal(t, bluetooth.DefaultCommandTimeout, runner.calls[0].timeout)
}

func TestControllerConnect(t *testing.T) {
	t.Parallel()

	t.Run("issues pair, trust and connect in one session", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{transcripts: map[string]string{
			"pair AA:BB:CC:DD:EE:FF": "Pairing successful\n...\nConnection successful\n",
		}}
		c := bluetooth.NewController(runner)

		result, err := c.Connect(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		assert.True(t, result.Connected)
		assert.Contains(t, result.Transcript, "Pairing successful")

		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{
			"pair AA:BB:CC:DD:EE:FF",
			"trust AA:BB:CC:DD:EE:FF",
			"connect AA:BB:CC:DD:EE:FF",
		}, runner.calls[0].commands)
		assert.Equal(t, bluetooth.DefaultConnectTimeout, runner.calls[0].timeout)
	})

	t.Run("reports failure with transcript", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{transcripts: map[string]string{
			"pair AA:BB:CC:DD:EE:FF": "Failed to pair: org.bluez.Error.AuthenticationFailed\n",
		}}
		c := bluetooth.NewController(runner)

		result, err := c.Connect(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		assert.False(t, result.Connected)
		assert.Contains(t, result.Transcript, "AuthenticationFailed")
	})

	t.Run("session errors become warnings", func(t *testing.T) {
		t.Parallel()
		sessionErr := errors.New("timeout waiting for prompt")
		runner := &fakeRunner{
			transcripts: map[string]string{"pair AA:BB:CC:DD:EE:FF": "Connection successful\n"},
			err:         sessionErr,
		}

		var warnings []error
		c := bluetooth.NewController(runner, bluetooth.WithWarningHandler(func(err error) {
			warnings = append(warnings, err)
		}))

		result, err := c.Connect(context.Background(), "AA:BB:CC:DD:EE:FF")
		require.NoError(t, err)
		assert.True(t, result.Connected)
		assert.Equal(t, []error{sessionErr}, warnings)
	})

	t.Run("cancelled context is returned", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := bluetooth.NewController(&fakeRunner{err: context.Canceled})
		_, err := c.Connect(ctx, "AA:BB:CC:DD:EE:FF")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
