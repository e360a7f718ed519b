package formatter

import (
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/service"
	"github.com/qkariin/queendom/internal/streak"
)

// FormatStreak renders the routine streak card.
func FormatStreak(r *service.StreakReport) string {
	var b strings.Builder

	days := StyleGold.Render(fmt.Sprintf("🔥 %s", FormatStreakValue(r.Current)))
	if r.Current.Source == streak.SourceNone {
		days = Dim("no routine history")
	}
	b.WriteString(days)
	b.WriteString("\n\n")

	if r.Routine != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Routine    "), r.Routine)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Duty day   "), r.DutyDay)
	fmt.Fprintf(&b, "%s %s\n", Dim("Longest    "), pluralDays(r.Longest))
	if r.DoneToday {
		fmt.Fprintf(&b, "%s %s", Dim("Today      "), StyleGreen.Render("✔ submitted"))
	} else {
		fmt.Fprintf(&b, "%s %s", Dim("Today      "), StyleYellow.Render("○ pending"))
	}
	return RenderBox("Routine Streak", b.String())
}
