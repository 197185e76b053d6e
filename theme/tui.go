package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the lipgloss side of a theme, used by the terminal UI
type Palette struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Good      lipgloss.AdaptiveColor
	Favorite  lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
}

// Styles are the rendered styles for each TUI element
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Badge       lipgloss.Style
	Muted       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Page        lipgloss.Style
	ActivePage  lipgloss.Style
	Favorite    lipgloss.Style
	Panel       lipgloss.Style
	FocusedItem lipgloss.Style
	ToastError  lipgloss.Style
	ToastInfo   lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Selected    lipgloss.Style
	Spinner     lipgloss.Style
}

func defaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#facc15"},
		Secondary: lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#22d3ee"},
		Muted:     lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"},
		Danger:    lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"},
		Warning:   lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"},
		Good:      lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"},
		Favorite:  lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#fde047"},
		Border:    lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#4b5563"},
	}
}

// GetPalette mirrors GetTheme for the terminal UI
func GetPalette(name string) Palette {
	p := defaultPalette()
	switch strings.ToLower(name) {
	case NameDark:
		p.Primary = lipgloss.AdaptiveColor{Light: "#facc15", Dark: "#facc15"}
		p.Muted = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#9ca3af"}
	case NameLight:
		p.Primary = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#1d4ed8"}
		p.Muted = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#6b7280"}
	}
	return p
}

// NewStyles builds the TUI styles for a named theme
func NewStyles(name string) Styles {
	p := GetPalette(name)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Subtitle:    lipgloss.NewStyle().Foreground(p.Secondary),
		Tab:         lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted),
		ActiveTab:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(p.Primary),
		Badge:       lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#111827")).Background(p.Secondary),
		Muted:       lipgloss.NewStyle().Foreground(p.Muted),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(p.Secondary).Width(12),
		Value:       lipgloss.NewStyle(),
		Page:        lipgloss.NewStyle().Padding(0, 1).Foreground(p.Muted),
		ActivePage:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true).Foreground(p.Primary),
		Favorite:    lipgloss.NewStyle().Foreground(p.Favorite),
		Panel:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		FocusedItem: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		ToastError:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Danger).Foreground(p.Danger).Padding(0, 1),
		ToastInfo:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Good).Foreground(p.Good).Padding(0, 1),
		TableHeader: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(p.Primary).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(p.Border),
		TableCell:   lipgloss.NewStyle().Padding(0, 1),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")).Background(p.Primary),
		Spinner:     lipgloss.NewStyle().Foreground(p.Secondary),
	}
}
