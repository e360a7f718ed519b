package domain

import (
	"fmt"
	"strings"
	"time"
)

// defaultName is the placeholder the host assigns before a member picks a name.
const defaultName = "Slave"

// Member is a single user record as mirrored from the host platform.
type Member struct {
	ID             string
	Name           string
	Title          string
	Avatar         string
	ProfilePicture string
	Limits         string
	Kinks          string
	Hierarchy      string
	Routine        string

	Points         int
	Coins          int
	KneelCount     int
	TotalSpent     int
	CompletedTasks int
	RoutineStreak  int

	LastKneelAt  *time.Time
	LastRewardAt *time.Time
	LastSeenAt   *time.Time
	JoinedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the name shown in headers, falling back to the title
// and finally to the host placeholder.
func (m *Member) DisplayName() string {
	return CoalesceStr(strings.TrimSpace(m.Name), strings.TrimSpace(m.Title), defaultName)
}

// HasDisplayName reports whether the member chose a name or title of their own.
func (m *Member) HasDisplayName() bool {
	return isChosenName(m.Name) || isChosenName(m.Title)
}

func isChosenName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != defaultName
}

// HasPhoto checks the raw profile picture only; the avatar fallback does not count.
func (m *Member) HasPhoto() bool {
	return m.ProfilePicture != "" && !strings.Contains(m.ProfilePicture, "default")
}

func (m *Member) HasLimitsDisclosed() bool {
	return len(strings.TrimSpace(m.Limits)) > 2
}

func (m *Member) HasKinksDisclosed() bool {
	return len(strings.TrimSpace(m.Kinks)) > 2
}

// KneelHours converts the kneel counter to hours; one kneel is fifteen minutes.
func (m *Member) KneelHours() float64 {
	return float64(NonNegative(m.KneelCount)) * 0.25
}

// Presence reports ONLINE when seen within two minutes, "N MIN AGO" when
// seen earlier, and OFFLINE when never seen.
func (m *Member) Presence(now time.Time) Presence {
	if m.LastSeenAt == nil || m.LastSeenAt.IsZero() {
		return PresenceOffline
	}
	diff := int(now.Sub(*m.LastSeenAt).Minutes())
	if diff < 2 {
		return PresenceOnline
	}
	return Presence(fmt.Sprintf("%d MIN AGO", diff))
}

// AdjustPoints applies a signed delta. Points may go negative, matching the host.
func (m *Member) AdjustPoints(delta int, now time.Time) error {
	if delta == 0 {
		return ErrInvalidAmount
	}
	m.Points += delta
	m.UpdatedAt = now
	return nil
}

func (m *Member) AdjustCoins(delta int, now time.Time) error {
	if delta == 0 {
		return ErrInvalidAmount
	}
	m.Coins += delta
	m.UpdatedAt = now
	return nil
}

// Spend pays cost from the balance and counts it towards TotalSpent.
func (m *Member) Spend(cost int, now time.Time) error {
	if cost <= 0 {
		return ErrInvalidAmount
	}
	if err := m.RequireCoins(cost); err != nil {
		return err
	}
	m.Coins -= cost
	m.TotalSpent += cost
	m.UpdatedAt = now
	return nil
}

// Penalize takes up to amount coins; the balance never drops below zero.
func (m *Member) Penalize(amount int, now time.Time) {
	m.Coins = NonNegative(m.Coins - amount)
	m.UpdatedAt = now
}

// RequireCoins fails unless the balance covers cost. Nothing is taken.
func (m *Member) RequireCoins(cost int) error {
	if m.Coins < cost {
		return fmt.Errorf("need %d coins, have %d: %w", cost, m.Coins, ErrInsufficientCoins)
	}
	return nil
}

// AdjustKneel applies a signed delta to the kneel counter, clamped at zero.
func (m *Member) AdjustKneel(delta int, now time.Time) error {
	if delta == 0 {
		return ErrInvalidAmount
	}
	m.KneelCount = NonNegative(m.KneelCount + delta)
	m.UpdatedAt = now
	return nil
}

// RecordKneel counts one completed kneel and starts the cooldown clock.
func (m *Member) RecordKneel(now time.Time) {
	m.KneelCount = NonNegative(m.KneelCount) + 1
	m.LastKneelAt = &now
	m.UpdatedAt = now
}

// RewardPending reports whether the latest kneel has not been rewarded yet.
func (m *Member) RewardPending() bool {
	if m.LastKneelAt == nil {
		return false
	}
	return m.LastRewardAt == nil || m.LastRewardAt.Before(*m.LastKneelAt)
}

// ClaimReward pays the reward for the latest kneel, once.
func (m *Member) ClaimReward(choice RewardChoice, coins, points int, now time.Time) error {
	if !m.RewardPending() {
		return ErrNothingToClaim
	}
	switch choice {
	case RewardCoins:
		m.Coins += coins
	case RewardPoints:
		m.Points += points
	default:
		return fmt.Errorf("reward %q: %w", choice, ErrUnknownReward)
	}
	m.LastRewardAt = &now
	m.UpdatedAt = now
	return nil
}

// Snapshot builds the evaluator input from the record and a computed streak.
func (m *Member) Snapshot(streakDays int) UserStats {
	return UserStats{
		TasksCompleted:     NonNegative(m.CompletedTasks),
		KneelCount:         NonNegative(m.KneelCount),
		Points:             NonNegative(m.Points),
		TotalSpent:         NonNegative(m.TotalSpent),
		StreakDays:         NonNegative(streakDays),
		HasDisplayName:     m.HasDisplayName(),
		HasPhoto:           m.HasPhoto(),
		HasLimitsDisclosed: m.HasLimitsDisclosed(),
		HasKinksDisclosed:  m.HasKinksDisclosed(),
		CurrentTierName:    m.Hierarchy,
	}
}
