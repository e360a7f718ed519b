package rank

import "github.com/qkariin/queendom/internal/domain"

// Meets reports whether stats satisfy every numeric threshold and gate in req.
func Meets(req domain.Requirements, stats domain.UserStats) bool {
	for _, f := range numericFields(req, stats) {
		if met, _ := progress(domain.NonNegative(f.current), f.required); !met {
			return false
		}
	}
	switch {
	case req.RequiresDisplayName && !stats.HasDisplayName,
		req.RequiresPhoto && !stats.HasPhoto,
		req.RequiresLimitsDisclosed && !stats.HasLimitsDisclosed,
		req.RequiresKinksDisclosed && !stats.HasKinksDisclosed:
		return false
	}
	return true
}

// Qualify climbs the ladder from the bottom and returns the highest tier
// index whose requirements, and those of every tier below it, are met. The
// stored tier name is ignored. An empty ladder returns -1.
func Qualify(ladder domain.Ladder, stats domain.UserStats) int {
	if len(ladder) == 0 {
		return -1
	}
	idx := 0
	for i := 1; i < len(ladder); i++ {
		if !Meets(ladder[i].Requirements, stats) {
			break
		}
		idx = i
	}
	return idx
}
