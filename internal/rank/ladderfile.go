package rank

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qkariin/queendom/internal/domain"
)

// LadderFile is the on-disk shape of a custom ladder. JSON files parse too,
// since JSON is a subset of YAML.
type LadderFile struct {
	Tiers []domain.RankTier `yaml:"tiers"`
}

// LoadLadder reads and validates a ladder file.
func LoadLadder(path string) (domain.Ladder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ladder: %w", err)
	}
	ladder, err := ParseLadder(data)
	if err != nil {
		return nil, fmt.Errorf("ladder %s: %w", path, err)
	}
	return ladder, nil
}

// ParseLadder decodes a ladder document and validates it.
func ParseLadder(data []byte) (domain.Ladder, error) {
	var f LadderFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing ladder: %w", err)
	}
	ladder := domain.Ladder(f.Tiers)
	if err := Validate(ladder); err != nil {
		return nil, err
	}
	return ladder, nil
}

// Validate checks that a ladder is usable: at least one tier, named tiers
// with unique normalized names, and no negative thresholds.
func Validate(ladder domain.Ladder) error {
	if len(ladder) == 0 {
		return errors.New("ladder has no tiers")
	}
	seen := make(map[string]int, len(ladder))
	var errs []error
	for i, t := range ladder {
		key := NormalizeName(t.Name)
		if key == "" {
			errs = append(errs, fmt.Errorf("tier %d: name is required", i))
			continue
		}
		if prev, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("tier %d (%s): duplicates tier %d", i, t.Name, prev))
		}
		seen[key] = i
		if t.SpeakCost < 0 {
			errs = append(errs, fmt.Errorf("tier %d (%s): speak_cost must be non-negative", i, t.Name))
		}
		for _, f := range numericFields(t.Requirements, domain.UserStats{}) {
			if f.required < 0 {
				errs = append(errs, fmt.Errorf("tier %d (%s): %s must be non-negative", i, t.Name, f.kind))
			}
		}
	}
	return errors.Join(errs...)
}
