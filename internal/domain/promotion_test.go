package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromotionStatusReady(t *testing.T) {
	p := PromotionStatus{
		Requirements: []RequirementProgress{{Kind: RequireTasks, Met: true}},
		Gates:        []GateCheck{{Kind: GatePhoto, Met: true}},
	}
	assert.True(t, p.Ready())

	p.Gates[0].Met = false
	assert.False(t, p.Ready())

	p.Gates[0].Met = true
	p.IsAtMaxTier = true
	assert.False(t, p.Ready(), "nothing to be ready for at the top")
}

func TestPromotionStatusLookup(t *testing.T) {
	p := PromotionStatus{
		Requirements: []RequirementProgress{{Kind: RequireKneels, Current: 3}},
		Gates:        []GateCheck{{Kind: GateIdentity, Met: true}},
	}
	r, ok := p.Requirement(RequireKneels)
	assert.True(t, ok)
	assert.Equal(t, 3, r.Current)

	_, ok = p.Requirement(RequireSpent)
	assert.False(t, ok)

	g, ok := p.Gate(GateIdentity)
	assert.True(t, ok)
	assert.True(t, g.Met)
}

func TestRequirementLabels(t *testing.T) {
	assert.Equal(t, "SACRIFICE", RequireSpent.Label())
	assert.Equal(t, "CONSISTENCY", RequireStreak.Label())
	assert.Equal(t, "IDENTITY", GateIdentity.Label())
}

func TestLadderClone_DoesNotShareBenefits(t *testing.T) {
	l := Ladder{{Name: "A", Benefits: []string{"x"}}}
	c := l.Clone()
	c[0].Benefits[0] = "y"
	assert.Equal(t, "x", l[0].Benefits[0])
	assert.Equal(t, []string{"A"}, l.Names())
}
