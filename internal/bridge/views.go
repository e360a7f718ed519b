package bridge

import (
	"time"

	"github.com/qkariin/queendom/internal/domain"
)

// memberView is the wire form of a member record.
type memberView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	DisplayName    string     `json:"display_name"`
	Title          string     `json:"title,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Hierarchy      string     `json:"hierarchy"`
	Routine        string     `json:"routine,omitempty"`
	Points         int        `json:"points"`
	Coins          int        `json:"coins"`
	KneelCount     int        `json:"kneel_count"`
	KneelHours     float64    `json:"kneel_hours"`
	TotalSpent     int        `json:"total_spent"`
	CompletedTasks int        `json:"completed_tasks"`
	RoutineStreak  int        `json:"routine_streak"`
	Presence       string     `json:"presence"`
	LastKneelAt    *time.Time `json:"last_kneel_at,omitempty"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
	JoinedAt       time.Time  `json:"joined_at"`
}

func newMemberView(m *domain.Member, now time.Time) memberView {
	return memberView{
		ID:             m.ID,
		Name:           m.Name,
		DisplayName:    m.DisplayName(),
		Title:          m.Title,
		ProfilePicture: m.ProfilePicture,
		Hierarchy:      m.Hierarchy,
		Routine:        m.Routine,
		Points:         m.Points,
		Coins:          m.Coins,
		KneelCount:     m.KneelCount,
		KneelHours:     m.KneelHours(),
		TotalSpent:     m.TotalSpent,
		CompletedTasks: m.CompletedTasks,
		RoutineStreak:  m.RoutineStreak,
		Presence:       string(m.Presence(now)),
		LastKneelAt:    m.LastKneelAt,
		LastSeenAt:     m.LastSeenAt,
		JoinedAt:       m.JoinedAt,
	}
}

type submissionView struct {
	ID          string     `json:"id"`
	MemberID    string     `json:"member_id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ProofURL    string     `json:"proof_url,omitempty"`
	Note        string     `json:"note,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
}

func newSubmissionView(s *domain.Submission) submissionView {
	return submissionView{
		ID:          s.ID,
		MemberID:    s.MemberID,
		Kind:        string(s.Kind),
		Status:      string(s.Status),
		SubmittedAt: s.SubmittedAt,
		ProofURL:    s.ProofURL,
		Note:        s.Note,
		ReviewedAt:  s.ReviewedAt,
	}
}

func newSubmissionViews(subs []*domain.Submission) []submissionView {
	out := make([]submissionView, 0, len(subs))
	for _, s := range subs {
		out = append(out, newSubmissionView(s))
	}
	return out
}

type taskView struct {
	ID           string     `json:"id"`
	MemberID     string     `json:"member_id"`
	Text         string     `json:"text"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	FailReason   string     `json:"fail_reason,omitempty"`
	SubmissionID string     `json:"submission_id,omitempty"`
	AssignedAt   time.Time  `json:"assigned_at"`
	Deadline     time.Time  `json:"deadline"`
	SecondsLeft  int        `json:"seconds_left"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

func newTaskView(t *domain.Task, now time.Time) taskView {
	return taskView{
		ID:           t.ID,
		MemberID:     t.MemberID,
		Text:         t.Text,
		Category:     string(t.Category),
		Status:       string(t.Status),
		FailReason:   string(t.FailReason),
		SubmissionID: t.SubmissionID,
		AssignedAt:   t.AssignedAt,
		Deadline:     t.Deadline,
		SecondsLeft:  int(t.Remaining(now) / time.Second),
		ClosedAt:     t.ClosedAt,
	}
}

type queueItemView struct {
	ID        string    `json:"id"`
	Position  int       `json:"position"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func newQueueItemView(it *domain.QueueItem) queueItemView {
	return queueItemView{ID: it.ID, Position: it.Position, Text: it.Text, CreatedAt: it.CreatedAt}
}

type purchaseView struct {
	ID        string    `json:"id"`
	Item      string    `json:"item"`
	Cost      int       `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

func newPurchaseView(p *domain.Purchase) purchaseView {
	return purchaseView{ID: p.ID, Item: p.Item, Cost: p.Cost, CreatedAt: p.CreatedAt}
}
