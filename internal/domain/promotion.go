package domain

// UserStats is the snapshot the rank evaluator reads.
type UserStats struct {
	TasksCompleted int
	KneelCount     int
	Points         int
	TotalSpent     int
	StreakDays     int

	HasDisplayName     bool
	HasPhoto           bool
	HasLimitsDisclosed bool
	HasKinksDisclosed  bool

	CurrentTierName string
}

// RequirementProgress is one numeric promotion bar.
type RequirementProgress struct {
	Kind     RequirementKind `json:"kind"`
	Label    string          `json:"label"`
	Required int             `json:"required"`
	Current  int             `json:"current"`
	Met      bool            `json:"met"`
	Fraction float64         `json:"fraction"`
}

// GateCheck is one pass/fail promotion gate.
type GateCheck struct {
	Kind  GateKind `json:"kind"`
	Label string   `json:"label"`
	Met   bool     `json:"met"`
}

// PromotionStatus describes where a member sits on the ladder and what the
// next tier still asks of them.
type PromotionStatus struct {
	CurrentTierIndex int                   `json:"current_tier_index"`
	NextTierIndex    int                   `json:"next_tier_index"`
	IsAtMaxTier      bool                  `json:"is_at_max_tier"`
	CurrentTier      RankTier              `json:"current_tier"`
	NextTier         RankTier              `json:"next_tier"`
	Requirements     []RequirementProgress `json:"requirements"`
	Gates            []GateCheck           `json:"gates"`
}

// Ready reports whether every requirement and gate of the next tier is met.
func (p PromotionStatus) Ready() bool {
	if p.IsAtMaxTier {
		return false
	}
	for _, r := range p.Requirements {
		if !r.Met {
			return false
		}
	}
	for _, g := range p.Gates {
		if !g.Met {
			return false
		}
	}
	return true
}

// Requirement returns the bar for kind, if the next tier asks for it.
func (p PromotionStatus) Requirement(kind RequirementKind) (RequirementProgress, bool) {
	for _, r := range p.Requirements {
		if r.Kind == kind {
			return r, true
		}
	}
	return RequirementProgress{}, false
}

// Gate returns the check for kind, if the next tier asks for it.
func (p PromotionStatus) Gate(kind GateKind) (GateCheck, bool) {
	for _, g := range p.Gates {
		if g.Kind == kind {
			return g, true
		}
	}
	return GateCheck{}, false
}
