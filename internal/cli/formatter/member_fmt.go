package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/qkariin/queendom/internal/domain"
)

// FormatMemberList renders members as a table.
func FormatMemberList(members []*domain.Member, now time.Time) string {
	if len(members) == 0 {
		return Dim("No members yet. Add one with 'queendom member add'.") + "\n"
	}
	headers := []string{"ID", "NAME", "RANK", "POINTS", "COINS", "KNEELS", "STATUS"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			TruncID(m.ID),
			m.DisplayName(),
			StyleGold.Render(m.Hierarchy),
			FormatCount(m.Points),
			FormatCount(m.Coins),
			FormatCount(m.KneelCount),
			PresenceIndicator(m.Presence(now)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatMember renders a profile card.
func FormatMember(m *domain.Member, now time.Time) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-11s", label)), value)
	}

	fmt.Fprintf(&b, "%s  %s\n", Bold(m.DisplayName()), PresenceIndicator(m.Presence(now)))
	if m.Title != "" && m.Title != m.DisplayName() {
		b.WriteString(Dim(m.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	line("ID", m.ID)
	line("Rank", StyleGold.Render(m.Hierarchy))
	line("Points", FormatCount(m.Points))
	line("Coins", FormatCount(m.Coins))
	line("Kneels", fmt.Sprintf("%s (%s)", FormatCount(m.KneelCount), FormatHours(m.KneelHours())))
	line("Spent", FormatCount(m.TotalSpent))
	line("Tasks", FormatCount(m.CompletedTasks))
	if m.Routine != "" {
		line("Routine", m.Routine)
	}
	line("Last kneel", HumanTimestamp(m.LastKneelAt, now))
	line("Last seen", HumanTimestamp(m.LastSeenAt, now))
	line("Joined", m.JoinedAt.Format("Jan 2, 2006"))

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s %s",
		Dim("name"), checkMark(m.HasDisplayName()),
		Dim("photo"), checkMark(m.HasPhoto()),
		Dim("limits"), checkMark(m.HasLimitsDisclosed()),
		Dim("kinks"), checkMark(m.HasKinksDisclosed()),
	)
	return RenderBox("Member", b.String())
}

// FormatBalance is the one-line result of a points, coins or kneel adjustment.
func FormatBalance(m *domain.Member) string {
	return fmt.Sprintf("%s  %s %s  %s %s  %s %s\n",
		Bold(m.DisplayName()),
		Dim("points"), FormatCount(m.Points),
		Dim("coins"), FormatCount(m.Coins),
		Dim("kneels"), FormatCount(m.KneelCount),
	)
}

func checkMark(ok bool) string {
	if ok {
		return StyleGreen.Render("✔")
	}
	return StyleRed.Render("✖")
}
