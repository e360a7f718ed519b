package domain

// Requirements holds the thresholds a member must reach to enter a tier.
// Zero numeric values and false gates mean "no requirement".
type Requirements struct {
	TasksCompleted int `yaml:"tasks" json:"tasks"`
	KneelCount     int `yaml:"kneels" json:"kneels"`
	Points         int `yaml:"points" json:"points"`
	TotalSpent     int `yaml:"spent" json:"spent"`
	StreakDays     int `yaml:"streak" json:"streak"`

	RequiresDisplayName     bool `yaml:"name" json:"name"`
	RequiresPhoto           bool `yaml:"photo" json:"photo"`
	RequiresLimitsDisclosed bool `yaml:"limits" json:"limits"`
	RequiresKinksDisclosed  bool `yaml:"kinks" json:"kinks"`
}

// RankTier is one step of the promotion ladder.
type RankTier struct {
	Name         string       `yaml:"name" json:"name"`
	Icon         string       `yaml:"icon" json:"icon"`
	SpeakCost    int          `yaml:"speak_cost" json:"speak_cost"`
	Benefits     []string     `yaml:"benefits" json:"benefits"`
	Requirements Requirements `yaml:"requirements" json:"requirements"`
}

// Ladder is ordered from the lowest tier to the highest.
type Ladder []RankTier

// Names returns tier names in ladder order.
func (l Ladder) Names() []string {
	names := make([]string, len(l))
	for i, t := range l {
		names[i] = t.Name
	}
	return names
}

// Clone returns a deep copy so callers can hand out ladders without sharing benefit slices.
func (l Ladder) Clone() Ladder {
	out := make(Ladder, len(l))
	for i, t := range l {
		t.Benefits = append([]string(nil), t.Benefits...)
		out[i] = t
	}
	return out
}
