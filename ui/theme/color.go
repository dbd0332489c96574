package theme

import (
	"strings"

	"github.com/fatih/color"
)

// colorNames maps the color names accepted in the configuration
// to terminal foreground attributes.
var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"grey":    color.FgHiBlack,
	"gray":    color.FgHiBlack,

	"brightred":     color.FgHiRed,
	"brightgreen":   color.FgHiGreen,
	"brightyellow":  color.FgHiYellow,
	"brightblue":    color.FgHiBlue,
	"brightmagenta": color.FgHiMagenta,
	"brightcyan":    color.FgHiCyan,
	"brightwhite":   color.FgHiWhite,
}

// GetColor returns the color of the modifier element.
// Status and heading elements are additionally drawn in bold.
func GetColor(themeContext Context) *color.Color {
	c := color.New()

	if attribute, ok := colorNames[strings.ToLower(ThemeConfig[themeContext])]; ok {
		c.Add(attribute)
	}

	switch themeContext {
	case ThemeHeading, ThemeStatusSuccess, ThemeStatusWarning, ThemeStatusError:
		c.Add(color.Bold)
	}

	return c
}

// ColorWrap wraps the text content with the modifier element's color.
func ColorWrap(themeContext Context, elementContent string) string {
	return GetColor(themeContext).Sprint(elementContent)
}

// ProgressColor returns the name of the modifier element's color in the
// "[color]" notation understood by the progress bar, or an empty string.
func ProgressColor(themeContext Context) string {
	name := strings.ToLower(ThemeConfig[themeContext])
	if _, ok := colorNames[name]; !ok || strings.HasPrefix(name, "bright") || name == "grey" || name == "gray" {
		return ""
	}

	return name
}

// isValidElementColor returns whether the modifier-value pair is valid.
func isValidElementColor(name string) bool {
	name = strings.ToLower(name)
	if name == "default" || name == "transparent" {
		return true
	}

	_, ok := colorNames[name]

	return ok
}
