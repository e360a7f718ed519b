// Package rank evaluates a member's position on the promotion ladder.
package rank

import "github.com/qkariin/queendom/internal/domain"

// Evaluate reports the member's current tier and the progress toward the
// next one. It is total: unknown tier names fall back to the lowest tier,
// negative stats count as zero, and an empty ladder yields a zero status
// marked as max tier.
func Evaluate(ladder domain.Ladder, stats domain.UserStats) domain.PromotionStatus {
	if len(ladder) == 0 {
		return domain.PromotionStatus{IsAtMaxTier: true}
	}

	current := IndexOf(ladder, stats.CurrentTierName)
	if current < 0 {
		current = 0
	}
	atMax := current == len(ladder)-1
	next := current
	if !atMax {
		next = current + 1
	}

	req := ladder[next].Requirements
	status := domain.PromotionStatus{
		CurrentTierIndex: current,
		NextTierIndex:    next,
		IsAtMaxTier:      atMax,
		CurrentTier:      ladder[current],
		NextTier:         ladder[next],
		Gates:            gates(req, stats, atMax),
		Requirements:     bars(req, stats, atMax),
	}
	return status
}

type numericField struct {
	kind     domain.RequirementKind
	required int
	current  int
}

func numericFields(req domain.Requirements, stats domain.UserStats) []numericField {
	return []numericField{
		{domain.RequireTasks, req.TasksCompleted, stats.TasksCompleted},
		{domain.RequireKneels, req.KneelCount, stats.KneelCount},
		{domain.RequirePoints, req.Points, stats.Points},
		{domain.RequireSpent, req.TotalSpent, stats.TotalSpent},
		{domain.RequireStreak, req.StreakDays, stats.StreakDays},
	}
}

func bars(req domain.Requirements, stats domain.UserStats, atMax bool) []domain.RequirementProgress {
	var out []domain.RequirementProgress
	for _, f := range numericFields(req, stats) {
		if f.required <= 0 {
			continue
		}
		cur := domain.NonNegative(f.current)
		p := domain.RequirementProgress{
			Kind:     f.kind,
			Label:    f.kind.Label(),
			Required: f.required,
			Current:  cur,
		}
		if atMax {
			p.Required = cur
			p.Met = true
			p.Fraction = 1
		} else {
			p.Met, p.Fraction = progress(cur, f.required)
		}
		out = append(out, p)
	}
	return out
}

type gateField struct {
	kind     domain.GateKind
	required bool
	met      bool
}

func gates(req domain.Requirements, stats domain.UserStats, atMax bool) []domain.GateCheck {
	fields := []gateField{
		{domain.GateIdentity, req.RequiresDisplayName, stats.HasDisplayName},
		{domain.GatePhoto, req.RequiresPhoto, stats.HasPhoto},
		{domain.GateLimits, req.RequiresLimitsDisclosed, stats.HasLimitsDisclosed},
		{domain.GateKinks, req.RequiresKinksDisclosed, stats.HasKinksDisclosed},
	}
	var out []domain.GateCheck
	for _, f := range fields {
		if !f.required {
			continue
		}
		out = append(out, domain.GateCheck{
			Kind:  f.kind,
			Label: f.kind.Label(),
			Met:   f.met || atMax,
		})
	}
	return out
}

// progress returns whether current reaches required and the clamped
// completion fraction. A non-positive requirement is always satisfied.
func progress(current, required int) (bool, float64) {
	if required <= 0 {
		return true, 1
	}
	if current <= 0 {
		return false, 0
	}
	if current >= required {
		return true, 1
	}
	return false, float64(current) / float64(required)
}
