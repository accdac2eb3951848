// Package theme holds the color palette and base styles shared by the
// log formatter and the demo TUI component.
package theme

import "github.com/charmbracelet/lipgloss"

const (
	Green  = lipgloss.Color("#98BB6C")
	Yellow = lipgloss.Color("#FF9E3B")
	Red    = lipgloss.Color("#FF5D62")
	Cyan   = lipgloss.Color("#7E9CD8")
	Violet = lipgloss.Color("#957FB8")
	Blue   = lipgloss.Color("#7FB4CA")
	Orange = lipgloss.Color("#FFA066")

	LightText = lipgloss.Color("#DCD7BA")
	MutedText = lipgloss.Color("#727169")

	Border           = lipgloss.Color("#363646")
	SubtleBackground = lipgloss.Color("#1F1F28")
)

// Colors exposes the raw palette for callers that need to compose their
// own styles (e.g. the CLI help renderer, which colors different parts
// of a usage line independently rather than applying one fixed style).
type Colors struct {
	Green, Yellow, Red, Cyan, Violet, Blue, Orange lipgloss.Color
}

// Theme is the set of named styles applied across log output, the demo
// TUI, and CLI help rendering.
type Theme struct {
	Colors Colors

	Accent  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Border  lipgloss.Style
}

// DefaultTheme is the single palette this module renders with.
var DefaultTheme = Theme{
	Colors: Colors{
		Green:  Green,
		Yellow: Yellow,
		Red:    Red,
		Cyan:   Cyan,
		Violet: Violet,
		Blue:   Blue,
		Orange: Orange,
	},
	Accent:  lipgloss.NewStyle().Foreground(Violet).Bold(true),
	Success: lipgloss.NewStyle().Foreground(Green),
	Error:   lipgloss.NewStyle().Foreground(Red).Bold(true),
	Warning: lipgloss.NewStyle().Foreground(Yellow),
	Muted:   lipgloss.NewStyle().Foreground(MutedText),
	Italic:  lipgloss.NewStyle().Italic(true).Foreground(LightText),
	Border:  lipgloss.NewStyle().Foreground(Border),
}
