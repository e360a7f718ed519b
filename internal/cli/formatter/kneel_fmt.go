package formatter

import (
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
)

// FormatKneelStatus renders the cooldown state and daily code.
func FormatKneelStatus(s *service.KneelStatus) string {
	var b strings.Builder
	if s.Locked {
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("🔒 LOCKED"), Dim(fmt.Sprintf("%d min left", s.MinutesLeft)))
		fmt.Fprintf(&b, "%s\n", RenderProgress(s.Remaining, requirementBarWidth))
	} else {
		b.WriteString(StyleGreen.Render("● READY TO KNEEL"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s (%s)\n", Dim("Kneels    "), FormatCount(s.KneelCount), FormatHours(s.KneelHours))
	fmt.Fprintf(&b, "%s %s", Dim("Daily code"), StyleGold.Render(s.DailyCode))
	if s.RewardPending {
		b.WriteString("\n\n")
		b.WriteString(StyleYellow.Render("★ Reward waiting: run 'queendom kneel claim'"))
	}
	return RenderBox("Kneeling", b.String())
}

// FormatReward is the one-line confirmation after a reward is claimed.
func FormatReward(m *domain.Member, choice domain.RewardChoice, amount int) string {
	return fmt.Sprintf("%s %s %s  %s\n",
		StyleGreen.Render("★ Claimed"),
		FormatCount(amount),
		string(choice),
		Dim(fmt.Sprintf("(points %s, coins %s)", FormatCount(m.Points), FormatCount(m.Coins))),
	)
}
