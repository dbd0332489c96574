// Package menu implements the numbered text menu of the application.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/darkhz/audiohub/bluetooth"
	"github.com/darkhz/audiohub/ui/console"
	"github.com/darkhz/audiohub/ui/theme"
	"github.com/mattn/go-runewidth"
)

// Operations describes the actions that can be selected from the menu.
type Operations interface {
	Scan(ctx context.Context) ([]bluetooth.Device, error)
	PairedDevices(ctx context.Context) ([]bluetooth.Device, error)
	ConnectAndSelect(ctx context.Context, address bluetooth.Address) (bool, error)
	ConnectAndUseOutput(ctx context.Context, address bluetooth.Address) error
	SetVolumes(ctx context.Context, inputPercent, outputPercent int) error
	Status(ctx context.Context)
	EnsureLoopback(ctx context.Context)
}

// Defaults holds the volumes that are used when a volume prompt is left empty.
type Defaults struct {
	InputVolume  int
	OutputVolume int
}

// Menu displays the menu and runs the selected operations until the
// user exits, or the input ends.
type Menu struct {
	ops      Operations
	input    io.Reader
	printer  *console.Printer
	defaults Defaults

	lines chan string
	done  chan struct{}
}

// errExit is returned by a menu handler when the menu should exit.
var errExit = errors.New("exit")

const header = "=== RPi Audio Hub (CLI) ==="

var items = []string{
	"1. Scan for Bluetooth devices",
	"2. List paired devices and connect",
	"3. Connect to a specific MAC address",
	"4. Set volumes",
	"5. Show current audio status",
	"6. Ensure loopback is loaded (input → output)",
	"0. Exit",
}

// New returns a new menu, which reads the selections from input.
func New(ops Operations, input io.Reader, printer *console.Printer, defaults Defaults) *Menu {
	return &Menu{
		ops:      ops,
		input:    input,
		printer:  printer,
		defaults: defaults,
	}
}

// Run shows the menu until the user selects the exit option, the input
// ends or the context is cancelled, in which case nil is returned.
// An error is returned only if an operation failed fatally.
func (m *Menu) Run(ctx context.Context) error {
	m.lines, m.done = make(chan string), make(chan struct{})
	defer close(m.done)

	go m.readLines()

	for {
		err := m.show(ctx)
		if err == nil {
			continue
		}

		if errors.Is(err, errExit) || errors.Is(err, context.Canceled) {
			m.printer.Text("Goodbye!")
			return nil
		}

		return err
	}
}

// show displays the menu once, and handles the selected option.
func (m *Menu) show(ctx context.Context) error {
	m.printer.Heading(header)
	for _, item := range items {
		m.printer.Item(item)
	}

	choice, err := m.ask(ctx, "Choose an option: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return m.scan(ctx)

	case "2":
		return m.connectPaired(ctx)

	case "3":
		return m.connectAddress(ctx)

	case "4":
		return m.setVolumes(ctx)

	case "5":
		m.ops.Status(ctx)

	case "6":
		m.ops.EnsureLoopback(ctx)

	case "0":
		return errExit

	default:
		m.printer.Text("Invalid option.")
	}

	return ctx.Err()
}

// scan scans for devices and lists them.
func (m *Menu) scan(ctx context.Context) error {
	devices, err := m.ops.Scan(ctx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		m.printer.Text("No devices found.")
		return nil
	}

	m.printer.Heading("Found devices:")
	PrintDevices(m.printer, devices)

	return nil
}

// connectPaired lists the paired devices, and connects to the selected one.
func (m *Menu) connectPaired(ctx context.Context) error {
	devices, err := m.ops.PairedDevices(ctx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		m.printer.Text("No paired devices found. Try scanning and connecting first.")
		return nil
	}

	m.printer.Heading("Paired devices:")
	PrintDevices(m.printer, devices)

	answer, err := m.ask(ctx, "Select number to connect (or 0 to cancel): ")
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(answer)
	if err != nil {
		m.printer.Text("Invalid number.")
		return nil
	}
	if index <= 0 || index > len(devices) {
		return nil
	}

	_, err = m.ops.ConnectAndSelect(ctx, devices[index-1].Address)

	return err
}

// connectAddress connects to a device whose address is entered by the user.
func (m *Menu) connectAddress(ctx context.Context) error {
	answer, err := m.ask(ctx, "Enter Bluetooth MAC address (XX:XX:XX:XX:XX:XX): ")
	if err != nil {
		return err
	}

	address, err := bluetooth.ParseAddress(answer)
	if err != nil {
		m.printer.Text("Invalid MAC format.")
		return nil
	}

	return m.ops.ConnectAndUseOutput(ctx, address)
}

// setVolumes asks for the input and output volumes, and applies them.
func (m *Menu) setVolumes(ctx context.Context) error {
	input, ok, err := m.askVolume(ctx, "Input volume % (USB card, recommended 20–40)", m.defaults.InputVolume)
	if err != nil || !ok {
		return err
	}

	output, ok, err := m.askVolume(ctx, "Output volume % (Bluetooth speaker, 50–90)", m.defaults.OutputVolume)
	if err != nil || !ok {
		return err
	}

	return m.ops.SetVolumes(ctx, input, output)
}

// askVolume asks for a volume. An empty answer selects the default volume.
func (m *Menu) askVolume(ctx context.Context, question string, def int) (int, bool, error) {
	answer, err := m.ask(ctx, fmt.Sprintf("%s [%d]: ", question, def))
	if err != nil {
		return 0, false, err
	}

	if answer == "" {
		return def, true, nil
	}

	volume, err := strconv.Atoi(answer)
	if err != nil {
		m.printer.Text("Please enter numbers.")
		return 0, false, nil
	}

	return volume, true, nil
}

// PrintDevices prints the devices as numbered, aligned columns.
func PrintDevices(printer *console.Printer, devices []bluetooth.Device) {
	var width int
	for _, device := range devices {
		width = max(width, runewidth.StringWidth(device.Name))
	}

	for i, device := range devices {
		fmt.Fprintf(printer.Writer(), "%d. %s  %s\n",
			i+1,
			theme.ColorWrap(theme.ThemeDevice, runewidth.FillRight(device.Name, width)),
			theme.ColorWrap(theme.ThemeDeviceAddress, "("+device.Address.String()+")"),
		)
	}
}

// ask prints the question, and returns the trimmed answer.
// If the input has ended, errExit is returned.
func (m *Menu) ask(ctx context.Context, question string) (string, error) {
	m.printer.Prompt(question)

	select {
	case line, ok := <-m.lines:
		if !ok {
			m.printer.Text("\n")
			return "", errExit
		}

		return strings.TrimSpace(line), nil

	case <-ctx.Done():
		m.printer.Text("\n")
		return "", ctx.Err()
	}
}

// readLines sends each line of the input to the lines channel,
// until the input ends or the menu exits.
func (m *Menu) readLines() {
	defer close(m.lines)

	scanner := bufio.NewScanner(m.input)
	for scanner.Scan() {
		select {
		case m.lines <- scanner.Text():
		case <-m.done:
			return
		}
	}
}
