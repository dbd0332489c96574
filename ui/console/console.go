// Package console prints status lines to the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/darkhz/audiohub/ui/theme"
)

// Printer prints messages, coloured according to the theme.
// Errors are printed to a separate writer.
type Printer struct {
	out, err io.Writer
}

// New returns a new printer.
func New(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

// Writer returns the writer for regular output.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Info prints an informational message.
func (p *Printer) Info(format string, a ...any) {
	p.status(p.out, theme.ThemeStatusInfo, "[*] ", format, a...)
}

// Success prints a message about a completed operation.
func (p *Printer) Success(format string, a ...any) {
	p.status(p.out, theme.ThemeStatusSuccess, "[+] ", format, a...)
}

// Warn prints a warning.
func (p *Printer) Warn(format string, a ...any) {
	p.status(p.out, theme.ThemeStatusWarning, "[-] ", format, a...)
}

// Error prints an error.
func (p *Printer) Error(err error) {
	p.status(p.err, theme.ThemeStatusError, "[!] ", "%s", err.Error())
}

// Heading prints a section heading, preceded by an empty line.
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.out)
	theme.GetColor(theme.ThemeHeading).Fprintln(p.out, text)
}

// Item prints a single menu or list entry.
func (p *Printer) Item(text string) {
	theme.GetColor(theme.ThemeMenuItem).Fprintln(p.out, text)
}

// Text prints raw text as it is, followed by a newline if it has none.
func (p *Printer) Text(text string) {
	if text == "" {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	theme.GetColor(theme.ThemeText).Fprint(p.out, text)
}

// Prompt prints a question without a trailing newline.
func (p *Printer) Prompt(text string) {
	theme.GetColor(theme.ThemePrompt).Fprint(p.out, text)
}

func (p *Printer) status(w io.Writer, themeContext theme.Context, prefix, format string, a ...any) {
	theme.GetColor(themeContext).Fprintln(w, prefix+fmt.Sprintf(format, a...))
}
