package pulse

import (
	"strings"

	"golang.org/x/text/cases"
)

// Source describes a single row of the short source list.
type Source struct {
	Index      string
	Name       string
	Driver     string
	SampleSpec string
	State      string

	// Line is the complete row, as printed by the tool.
	Line string
}

// ParseSources parses the tab-separated output of "list sources short".
func ParseSources(output string) []Source {
	var sources []Source

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		field := func(i int) string {
			if i < len(fields) {
				return fields[i]
			}

			return ""
		}

		sources = append(sources, Source{
			Index:      field(0),
			Name:       field(1),
			Driver:     field(2),
			SampleSpec: field(3),
			State:      field(4),
			Line:       line,
		})
	}

	return sources
}

// FindInputSource returns the first source whose row mentions both
// "usb" and "input", in any case. This is the analog input of a USB sound card.
func FindInputSource(sources []Source) (Source, bool) {
	for _, source := range sources {
		line := cases.Fold().String(source.Line)
		if strings.Contains(line, "usb") && strings.Contains(line, "input") {
			return source, true
		}
	}

	return Source{}, false
}
