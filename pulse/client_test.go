package pulse_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/pulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and answers them from a table keyed by the joined arguments.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")

	return f.outputs[key], f.errs[key]
}

func TestSinkName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink", pulse.SinkName("AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "bluez_sink.0a_1b_2c_3d_4e_5f.a2dp_sink", pulse.SinkName(bluetooth.Address("0a:1b:2c:3d:4e:5f")))
}

func TestClientCommands(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	c := pulse.NewClient(runner)
	ctx := context.Background()

	require.NoError(t, c.SetDefaultSink(ctx, "bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink"))
	require.NoError(t, c.SetSourceVolume(ctx, "3", 30))
	require.NoError(t, c.SetSinkVolume(ctx, pulse.DefaultSinkAlias, 80))
	require.NoError(t, c.LoadLoopback(ctx, pulse.DefaultLoopbackLatency))
	_, err := c.ListSinks(ctx)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"set-default-sink", "bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink"},
		{"set-source-volume", "3", "30%"},
		{"set-sink-volume", "@DEFAULT_SINK@", "80%"},
		{"load-module", "module-loopback", "latency_msec=1"},
		{"list", "sinks", "short"},
	}, runner.calls)
}

func TestClientDefaultSink(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{outputs: map[string]string{
			"info": "Server Name: pulseaudio\nDefault Sink: bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink\nDefault Source: alsa_input.usb",
		}}
		sink, err := pulse.NewClient(runner).DefaultSink(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "bluez_sink.AA_BB_CC_DD_EE_FF.a2dp_sink", sink)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{outputs: map[string]string{"info": "Server Name: pulseaudio"}}
		sink, err := pulse.NewClient(runner).DefaultSink(context.Background())
		require.NoError(t, err)
		assert.Empty(t, sink)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		infoErr := errors.New("connection refused")
		runner := &fakeRunner{errs: map[string]error{"info": infoErr}}
		_, err := pulse.NewClient(runner).DefaultSink(context.Background())
		assert.ErrorIs(t, err, infoErr)
	})
}

func TestClientSources(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{outputs: map[string]string{
		"list sources short": "0\talsa_output.platform-bcm2835.monitor\tmodule-alsa-card.c\ts16le 2ch 44100Hz\tSUSPENDED\n" +
			"1\talsa_input.usb-C-Media_USB_Audio_Device-00.analog-mono\tmodule-alsa-card.c\ts16le 1ch 44100Hz\tRUNNING",
	}}

	sources, err := pulse.NewClient(runner).Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "1", sources[1].Index)
	assert.Equal(t, "alsa_input.usb-C-Media_USB_Audio_Device-00.analog-mono", sources[1].Name)
	assert.Equal(t, "RUNNING", sources[1].State)
}
