package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qkariin/queendom/internal/domain"
)

// Gruvbox-inspired color palette. Gold marks rank and reward elements.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorGold   = lipgloss.Color("#d79921")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleGold   = lipgloss.NewStyle().Foreground(ColorGold).Bold(true)
)

// GateIndicator renders a gate check as "✔ VERIFIED" or "✖ MISSING".
func GateIndicator(met bool) string {
	if met {
		return StyleGreen.Render("✔ VERIFIED")
	}
	return StyleRed.Render("✖ MISSING")
}

// PresenceIndicator colors a presence label: green online, yellow recently
// seen, dim offline.
func PresenceIndicator(p domain.Presence) string {
	switch p {
	case domain.PresenceOnline:
		return StyleGreen.Render("● " + string(p))
	case domain.PresenceOffline, "":
		return StyleDim.Render("○ OFFLINE")
	default:
		return StyleYellow.Render("◐ " + string(p))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
