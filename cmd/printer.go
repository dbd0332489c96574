package cmd

import (
	"github.com/darkhz/audiohub/ui/console"
	"github.com/fatih/color"
)

// newPrinter returns a printer for the terminal.
func newPrinter() *console.Printer {
	return console.New(color.Output, color.Error)
}

// printError prints an error to the screen.
func printError(err error) {
	newPrinter().Error(err)
}
