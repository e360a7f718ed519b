package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/qkariin/queendom/internal/domain"
)

// Member options
type MemberOption func(*domain.Member)

func WithTitle(title string) MemberOption {
	return func(m *domain.Member) { m.Title = title }
}

func WithHierarchy(tier string) MemberOption {
	return func(m *domain.Member) { m.Hierarchy = tier }
}

func WithProfilePicture(url string) MemberOption {
	return func(m *domain.Member) { m.ProfilePicture = url }
}

// WithDisclosures fills limits and kinks with enough text to pass the gates.
func WithDisclosures() MemberOption {
	return func(m *domain.Member) {
		m.Limits = "no marks"
		m.Kinks = "service"
	}
}

// WithStats sets the numeric counters used by the rank evaluator.
func WithStats(tasks, kneels, points, spent int) MemberOption {
	return func(m *domain.Member) {
		m.CompletedTasks = tasks
		m.KneelCount = kneels
		m.Points = points
		m.TotalSpent = spent
	}
}

func WithCoins(coins int) MemberOption {
	return func(m *domain.Member) { m.Coins = coins }
}

func WithStoredStreak(days int) MemberOption {
	return func(m *domain.Member) { m.RoutineStreak = days }
}

func WithLastKneel(t time.Time) MemberOption {
	return func(m *domain.Member) { m.LastKneelAt = &t }
}

func WithLastSeen(t time.Time) MemberOption {
	return func(m *domain.Member) { m.LastSeenAt = &t }
}

func NewTestMember(name string, opts ...MemberOption) *domain.Member {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Member{
		ID:        uuid.New().String(),
		Name:      name,
		Hierarchy: "HALL BOY",
		JoinedAt:  now.AddDate(0, -1, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Submission options
type SubmissionOption func(*domain.Submission)

func WithKind(k domain.SubmissionKind) SubmissionOption {
	return func(s *domain.Submission) { s.Kind = k }
}

func WithStatus(st domain.SubmissionStatus) SubmissionOption {
	return func(s *domain.Submission) { s.Status = st }
}

func WithProof(url string) SubmissionOption {
	return func(s *domain.Submission) { s.ProofURL = url }
}

// NewTestSubmission builds a pending routine submission at the given instant.
func NewTestSubmission(memberID string, at time.Time, opts ...SubmissionOption) *domain.Submission {
	s := &domain.Submission{
		ID:          uuid.New().String(),
		MemberID:    memberID,
		Kind:        domain.SubmissionRoutine,
		Status:      domain.SubmissionPending,
		SubmittedAt: at.UTC().Truncate(time.Second),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
