package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/bluetooth/ctl"
	"github.com/darkhz/audiohub/hub"
	"github.com/darkhz/audiohub/pulse"
	"github.com/darkhz/audiohub/ui/config"
	"github.com/darkhz/audiohub/ui/console"
	"github.com/darkhz/audiohub/ui/menu"
	"github.com/darkhz/audiohub/ui/theme"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// These values are set at compile-time.
var (
	Version  = ""
	Revision = ""
)

// cmdOnlyFlags are flags which select what the application does on this run,
// and are never stored in the configuration file.
var cmdOnlyFlags = []string{"generate", "list-paired", "status"}

// Run runs the commandline application.
func Run() error {
	return newApp().Run(os.Args)
}

// newApp returns a new commandline application.
func newApp() *cli.App {
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Fprintf(cCtx.App.Writer, "%s (%s)\n", Version, Revision)
	}

	return &cli.App{
		Name:                   "audiohub",
		Usage:                  "Analog to Bluetooth audio router.",
		Version:                Version + " (" + Revision + ")",
		Description:            "Route an analog USB sound card input to a Bluetooth speaker.",
		DefaultCommand:         "audiohub",
		Compiled:               time.Now(),
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Suggest:                true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bluetoothctl",
				EnvVars: []string{"AUDIOHUB_BLUETOOTHCTL"},
				Usage:   "Specify the path to bluetoothctl.",
			},
			&cli.StringFlag{
				Name:    "pactl",
				EnvVars: []string{"AUDIOHUB_PACTL"},
				Usage:   "Specify the path to pactl.",
			},
			&cli.StringFlag{
				Name:    "scan-time",
				Aliases: []string{"s"},
				EnvVars: []string{"AUDIOHUB_SCAN_TIME"},
				Usage:   "Specify how long to scan for devices. (For example, '12s')",
			},
			&cli.StringFlag{
				Name:    "command-timeout",
				EnvVars: []string{"AUDIOHUB_COMMAND_TIMEOUT"},
				Usage:   "Specify how long to wait for bluetoothctl to answer a command. (For example, '15s')",
			},
			&cli.StringFlag{
				Name:    "connect-timeout",
				EnvVars: []string{"AUDIOHUB_CONNECT_TIMEOUT"},
				Usage:   "Specify how long to wait for bluetoothctl to answer a connection command. (For example, '25s')",
			},
			&cli.StringFlag{
				Name:    "pacing",
				EnvVars: []string{"AUDIOHUB_PACING"},
				Usage:   "Specify the pause between bluetoothctl commands. (For example, '400ms')",
			},
			&cli.IntFlag{
				Name:    "loopback-latency",
				Aliases: []string{"L"},
				EnvVars: []string{"AUDIOHUB_LOOPBACK_LATENCY"},
				Usage:   "Specify the loopback latency in milliseconds.",
			},
			&cli.IntFlag{
				Name:    "input-volume",
				Aliases: []string{"i"},
				EnvVars: []string{"AUDIOHUB_INPUT_VOLUME"},
				Usage:   "Specify the default input volume in percent.",
			},
			&cli.IntFlag{
				Name:    "output-volume",
				Aliases: []string{"o"},
				EnvVars: []string{"AUDIOHUB_OUTPUT_VOLUME"},
				Usage:   "Specify the default output volume in percent.",
			},
			&cli.StringFlag{
				Name:    "connect-bdaddr",
				Aliases: []string{"t"},
				EnvVars: []string{"AUDIOHUB_CONNECT_BDADDR"},
				Usage:   "Specify device address to connect and use as output on launch (For example, 'AA:BB:CC:DD:EE:FF')",
			},
			&cli.StringFlag{
				Name:    "debug-log",
				Aliases: []string{"d"},
				EnvVars: []string{"AUDIOHUB_DEBUG_LOG"},
				Usage:   "Specify a file to write debug messages to.",
			},
			&cli.BoolFlag{
				Name:    "no-warning",
				Aliases: []string{"w"},
				EnvVars: []string{"AUDIOHUB_NO_WARNING"},
				Usage:   "Do not display warnings when the application has initialized.",
			},
			&cli.BoolFlag{
				Name:    "list-paired",
				Aliases: []string{"l"},
				Usage:   "List paired devices and exit.",
			},
			&cli.BoolFlag{
				Name:    "status",
				Aliases: []string{"S"},
				Usage:   "Show the current audio status and exit.",
			},
			&cli.BoolFlag{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Generate configuration.",
				Action: func(cliCtx *cli.Context, _ bool) error {
					k := koanf.New(".")

					cliCtx.Command.Name = "global"

					conf := config.NewConfig()
					if err := conf.Load(k, cliCtx); err != nil {
						return err
					}

					for _, key := range cmdOnlyFlags {
						k.Delete(key)
					}

					if err := conf.GenerateAndSave(k); err != nil {
						return err
					}

					path, err := conf.FilePath("audiohub.conf")
					if err != nil {
						return err
					}

					newPrinter().Success("Configuration written to %s", path)

					return nil
				},
			},
		},
		Action: func(cliCtx *cli.Context) error {
			if cliCtx.Bool("generate") {
				return nil
			}

			// required for koanf to merge all global flags under the root namespace.
			cliCtx.Command.Name = "global"

			k, cfg := koanf.New("."), config.NewConfig()
			if err := cfg.Load(k, cliCtx); err != nil {
				return err
			}
			if err := cfg.ValidateValues(); err != nil {
				return err
			}

			logger, closeLog, err := newLogger(cfg.Values.DebugLog)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			printer := newPrinter()
			audioHub := newHub(cfg, printer, logger)

			switch {
			case cliCtx.Bool("list-paired"):
				return listPaired(ctx, audioHub, printer)

			case cliCtx.Bool("status"):
				audioHub.Status(ctx)
				return nil
			}

			printer.Text("RPi Audio Hub CLI – Analog to Bluetooth Audio Router")
			printer.Info("Make sure your USB sound card is connected and PulseAudio is running.")
			printMissingTools(cfg, printer)

			if address := cfg.Values.AutoConnectDeviceAddr; !address.IsNil() {
				if _, err := audioHub.ConnectAndSelect(ctx, address); err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}

					return err
				}
			}

			return menu.New(audioHub, os.Stdin, printer, menu.Defaults{
				InputVolume:  cfg.Values.InputVolume,
				OutputVolume: cfg.Values.OutputVolume,
			}).Run(ctx)
		},
		ExitErrHandler: func(_ *cli.Context, err error) {
			if err == nil {
				return
			}

			printError(err)
		},
	}
}

// newHub wires the Bluetooth controller and the sound server client into a hub.
func newHub(cfg *config.Config, printer *console.Printer, logger zerolog.Logger) *hub.Hub {
	driver := ctl.NewDriver(cfg.Values.Bluetoothctl,
		ctl.WithPacing(cfg.Values.Pacing),
		ctl.WithLogger(logger.With().Str("component", "bluetoothctl").Logger()),
	)

	controller := bluetooth.NewController(driver,
		bluetooth.WithTimeouts(cfg.Values.CommandTimeout, cfg.Values.ConnectTimeout),
		bluetooth.WithWarningHandler(func(err error) {
			printer.Warn("bluetoothctl: %v", err)
		}),
	)

	mixer := pulse.NewClient(
		pulse.NewExecRunner(cfg.Values.Pactl, pulse.DefaultTimeout, logger.With().Str("component", "pactl").Logger()),
	)

	return hub.New(controller, mixer, printer,
		hub.WithScanTime(cfg.Values.ScanTime),
		hub.WithLoopbackLatency(cfg.Values.LoopbackLatency),
		hub.WithProgress(printer.Writer(), theme.ProgressColor(theme.ThemeProgressBar)),
	)
}

// listPaired prints the paired devices.
func listPaired(ctx context.Context, audioHub *hub.Hub, printer *console.Printer) error {
	devices, err := audioHub.PairedDevices(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	}

	if len(devices) == 0 {
		printer.Text("No paired devices found.")
		return nil
	}

	printer.Heading("Paired devices:")
	menu.PrintDevices(printer, devices)

	return nil
}

// printMissingTools warns about external tools that cannot be found.
func printMissingTools(cfg *config.Config, printer *console.Printer) {
	if cfg.Values.NoWarning {
		return
	}

	for _, tool := range []string{cfg.Values.Bluetoothctl, cfg.Values.Pactl} {
		if _, err := exec.LookPath(tool); err != nil {
			printer.Warn("%s is not available: %v", tool, err)
		}
	}
}
