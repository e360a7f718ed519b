package service

import (
	"math/rand/v2"
	"time"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/rank"
)

// Settings carries the tunables shared by the services.
type Settings struct {
	Ladder        domain.Ladder
	Location      *time.Location
	KneelCooldown time.Duration
	RewardCoins   int
	RewardPoints  int

	// TaskPool is drawn from when a member's queue is empty.
	TaskPool []string

	// Now is the clock; nil means time.Now.
	Now func() time.Time
	// Pick returns an index in [0, n); nil means rand.IntN.
	Pick func(n int) int
}

func DefaultSettings() Settings {
	return Settings{
		Ladder:        rank.DefaultLadder(),
		Location:      time.Local,
		KneelCooldown: time.Hour,
		RewardCoins:   10,
		RewardPoints:  50,
	}
}

// now returns the current instant in the configured duty-day zone.
func (s Settings) now() time.Time {
	clock := s.Now
	if clock == nil {
		clock = time.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return clock().In(loc)
}

func (s Settings) ladder() domain.Ladder {
	if len(s.Ladder) == 0 {
		return rank.DefaultLadder()
	}
	return s.Ladder
}

// poolTask picks a task text from the pool, or the placeholder when the
// pool is empty.
func (s Settings) poolTask() string {
	if len(s.TaskPool) == 0 {
		return domain.AwaitingDirective
	}
	pick := s.Pick
	if pick == nil {
		pick = rand.IntN
	}
	return s.TaskPool[pick(len(s.TaskPool))]
}
