package formatter

import (
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/domain"
)

// FormatLadder renders the ladder as a table. current marks the member's
// tier; pass -1 to mark none.
func FormatLadder(ladder domain.Ladder, current int) string {
	if len(ladder) == 0 {
		return Dim("The ladder is empty.") + "\n"
	}
	headers := []string{"", "#", "TIER", "SPEAK", "REQUIREMENTS"}
	rows := make([][]string, 0, len(ladder))
	for i, t := range ladder {
		marker := " "
		name := t.Name
		if i == current {
			marker = StyleGold.Render("▶")
			name = StyleGold.Render(name)
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", i+1),
			strings.TrimSpace(t.Icon + " " + name),
			FormatCount(t.SpeakCost),
			RequirementSummary(t.Requirements),
		})
	}
	return RenderTable(headers, rows)
}

// RequirementSummary lists a tier's thresholds in evaluation order,
// e.g. "5 tasks · 10 kneels · name · photo".
func RequirementSummary(r domain.Requirements) string {
	var parts []string
	for _, g := range []struct {
		on    bool
		label string
	}{
		{r.RequiresDisplayName, "name"},
		{r.RequiresPhoto, "photo"},
		{r.RequiresLimitsDisclosed, "limits"},
		{r.RequiresKinksDisclosed, "kinks"},
	} {
		if g.on {
			parts = append(parts, g.label)
		}
	}
	for _, n := range []struct {
		v    int
		unit string
	}{
		{r.TasksCompleted, "tasks"},
		{r.KneelCount, "kneels"},
		{r.Points, "points"},
		{r.TotalSpent, "spent"},
		{r.StreakDays, "day streak"},
	} {
		if n.v > 0 {
			parts = append(parts, FormatCount(n.v)+" "+n.unit)
		}
	}
	if len(parts) == 0 {
		return Dim("none")
	}
	return strings.Join(parts, " · ")
}

// FormatTrophyCase renders one badge per tier. Tiers up to and including
// current are unlocked; the rest show a lock.
func FormatTrophyCase(ladder domain.Ladder, current int) string {
	var b strings.Builder
	for i, t := range ladder {
		if i <= current {
			fmt.Fprintf(&b, "%s %s\n", StyleGold.Render(t.Icon), Bold(t.Name))
		} else {
			fmt.Fprintf(&b, "%s %s\n", Dim("🔒"), Dim(t.Name))
		}
	}
	return b.String()
}

// FormatTier renders one tier with its benefits.
func FormatTier(t domain.RankTier) string {
	var b strings.Builder
	b.WriteString(TierLabel(t))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("Speak cost:"), FormatCount(t.SpeakCost))
	fmt.Fprintf(&b, "%s %s\n", Dim("Requires:"), RequirementSummary(t.Requirements))
	for _, benefit := range t.Benefits {
		fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("•"), benefit)
	}
	return b.String()
}
