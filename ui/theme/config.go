package theme

import (
	"fmt"
)

// Context describes the type of context to apply the color into.
type Context string

// The different context types for themes.
const (
	ThemeText          Context = "Text"
	ThemeHeading       Context = "Heading"
	ThemeMenuItem      Context = "MenuItem"
	ThemePrompt        Context = "Prompt"
	ThemeStatusInfo    Context = "StatusInfo"
	ThemeStatusSuccess Context = "StatusSuccess"
	ThemeStatusWarning Context = "StatusWarning"
	ThemeStatusError   Context = "StatusError"
	ThemeDevice        Context = "Device"
	ThemeDeviceAddress Context = "DeviceAddress"
	ThemeProgressBar   Context = "ProgressBar"
)

// ThemeConfig stores a list of color for the modifier elements.
var ThemeConfig = map[Context]string{
	ThemeText:     "default",
	ThemeHeading:  "cyan",
	ThemeMenuItem: "default",
	ThemePrompt:   "white",

	ThemeStatusInfo:    "default",
	ThemeStatusSuccess: "green",
	ThemeStatusWarning: "yellow",
	ThemeStatusError:   "red",

	ThemeDevice:        "white",
	ThemeDeviceAddress: "grey",

	ThemeProgressBar: "cyan",
}

// ParseThemeConfig parses the theme configuration.
func ParseThemeConfig(themeConfig map[string]string) error {
	for context, color := range themeConfig {
		if _, ok := ThemeConfig[Context(context)]; !ok {
			return fmt.Errorf("theme configuration has an unknown element %s", context)
		}

		if !isValidElementColor(color) {
			return fmt.Errorf("theme configuration is incorrect for %s (%s)", context, color)
		}

		if color == "transparent" {
			color = "default"
		}

		ThemeConfig[Context(context)] = color
	}

	return nil
}
