package formatter

import (
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
	"github.com/qkariin/queendom/internal/streak"
)

const requirementBarWidth = 20

// FormatPromotion renders the promotion panel: current tier, the gates and
// bars of the next tier, and a readiness line.
func FormatPromotion(r *service.PromotionReport) string {
	st := r.Status
	var b strings.Builder

	if r.Member != nil {
		b.WriteString(Bold(r.Member.DisplayName()))
		b.WriteString("  ")
	}
	b.WriteString(TierLabel(st.CurrentTier))
	b.WriteString("\n")
	b.WriteString(Dim("Streak: " + FormatStreakValue(r.Streak)))
	b.WriteString("\n\n")

	if st.IsAtMaxTier {
		b.WriteString(StyleGold.Render("♛ MAXIMUM RANK"))
		b.WriteString("\n")
		b.WriteString(Dim("Every tier of the court has been earned."))
		return RenderBox("Promotion", b.String())
	}

	b.WriteString(StyleHeader.Render("NEXT: "))
	b.WriteString(TierLabel(st.NextTier))
	b.WriteString("\n\n")

	if len(st.Gates) > 0 {
		for _, g := range st.Gates {
			fmt.Fprintf(&b, "%s %s\n", Bold(fmt.Sprintf("%-12s", g.Label)), GateIndicator(g.Met))
		}
		b.WriteString("\n")
	}
	for _, req := range st.Requirements {
		b.WriteString(RenderRequirement(req, requirementBarWidth))
		b.WriteString("\n")
	}
	if len(st.Gates) == 0 && len(st.Requirements) == 0 {
		b.WriteString(Dim("No requirements."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case r.Qualified > st.CurrentTierIndex:
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("▲ Qualifies for"), TierLabel(r.QualifiedTier))
		b.WriteString(Dim("Run 'queendom promote' to raise the stored rank."))
	case st.Ready():
		b.WriteString(StyleGreen.Render("▲ READY FOR PROMOTION"))
	default:
		b.WriteString(Dim(fmt.Sprintf("%d of %d requirements met", metCount(st), len(st.Gates)+len(st.Requirements))))
	}
	return RenderBox("Promotion", b.String())
}

// FormatPromoted summarizes the outcome of a promote command.
func FormatPromoted(r *service.PromotionReport) string {
	name := ""
	if r.Member != nil {
		name = r.Member.DisplayName() + ": "
	}
	if !r.Promoted {
		return fmt.Sprintf("%s%s %s\n", name, Dim("remains"), TierLabel(r.Status.CurrentTier))
	}
	return fmt.Sprintf("%s%s %s %s\n", name, Dim(r.PreviousTier), StyleGreen.Render("→"), TierLabel(r.Status.CurrentTier))
}

// TierLabel renders "icon NAME" in gold.
func TierLabel(t domain.RankTier) string {
	if t.Name == "" {
		return Dim("unranked")
	}
	if t.Icon == "" {
		return StyleGold.Render(t.Name)
	}
	return StyleGold.Render(t.Icon + " " + t.Name)
}

// FormatStreakValue renders "5 days" with its source, or "none".
func FormatStreakValue(r streak.Result) string {
	switch r.Source {
	case streak.SourceNone, "":
		return "none"
	case streak.SourceStored:
		return pluralDays(r.Days) + " (stored)"
	default:
		return pluralDays(r.Days)
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func metCount(st domain.PromotionStatus) int {
	n := 0
	for _, g := range st.Gates {
		if g.Met {
			n++
		}
	}
	for _, r := range st.Requirements {
		if r.Met {
			n++
		}
	}
	return n
}
