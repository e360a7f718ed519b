package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qkariin/queendom/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%.
// Colors: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampFraction(pct)
	return fmt.Sprintf("[%s] %3.0f%%", progressStyle(pct).Render(blocks(pct, width)), pct*100)
}

// RenderRequirement renders one promotion bar:
//
//	LABOR        [███░░] 3 / 5
//
// A met requirement is always drawn green.
func RenderRequirement(r domain.RequirementProgress, width int) string {
	pct := clampFraction(r.Fraction)
	style := progressStyle(pct)
	if r.Met {
		style = StyleGreen
	}
	label := fmt.Sprintf("%-12s", r.Label)
	counts := fmt.Sprintf("%s / %s", FormatCount(r.Current), FormatCount(r.Required))
	if r.Met {
		counts += " " + StyleGreen.Render("✔")
	}
	return fmt.Sprintf("%s [%s] %s", Bold(label), style.Render(blocks(pct, width)), counts)
}

func blocks(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func progressStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}

func clampFraction(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}
