package theme

import (
	"strings"

	"github.com/pterm/pterm"
)

const (
	NameDefault = "default"
	NameDark    = "dark"
	NameLight   = "light"
)

// Theme is the pterm side of a theme, used by the logger and the banner
type Theme struct {
	Info  *pterm.Style
	Muted *pterm.Style

	Counts   pterm.Color
	Numbers  pterm.Color
	Record   pterm.Color
	Source   pterm.Color
	Favorite pterm.Color
	Path     pterm.Color
}

// Default is tuned for the usual dark terminal with a 16 colour palette
func Default() *Theme {
	return &Theme{
		Info:  pterm.NewStyle(pterm.FgGreen),
		Muted: pterm.NewStyle(pterm.FgGray),

		Counts:   pterm.FgLightCyan,
		Numbers:  pterm.FgLightYellow,
		Record:   pterm.FgLightMagenta,
		Source:   pterm.FgLightBlue,
		Favorite: pterm.FgYellow,
		Path:     pterm.FgCyan,
	}
}

func Dark() *Theme {
	t := Default()
	t.Info = pterm.NewStyle(pterm.FgLightGreen)
	t.Favorite = pterm.FgLightYellow
	t.Path = pterm.FgLightCyan
	return t
}

// Light avoids the pale variants, they vanish on a white background
func Light() *Theme {
	return &Theme{
		Info:  pterm.NewStyle(pterm.FgBlack),
		Muted: pterm.NewStyle(pterm.FgGray),

		Counts:   pterm.FgBlue,
		Numbers:  pterm.FgMagenta,
		Record:   pterm.FgMagenta,
		Source:   pterm.FgBlue,
		Favorite: pterm.FgRed,
		Path:     pterm.FgBlue,
	}
}

// GetTheme resolves a configured theme name, unknown names get Default
func GetTheme(name string) *Theme {
	switch strings.ToLower(name) {
	case NameDark:
		return Dark()
	case NameLight:
		return Light()
	default:
		return Default()
	}
}

// ColourSplash is the banner colour
func ColourSplash(message ...any) string {
	return pterm.LightYellow(message...)
}

func ColourVersion(message ...any) string {
	return pterm.LightCyan(message...)
}

func StyleUrl(message ...any) string {
	return pterm.LightBlue(message...)
}

// Hyperlink wraps text in an OSC 8 link for terminals that support it
func Hyperlink(uri string, text string) string {
	return "\x1b]8;;" + uri + "\x07" + text + "\x1b]8;;\x07" + "\u001b[0m"
}
