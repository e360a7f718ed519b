package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TaskCost is the balance a member must hold to draw or skip a task.
	TaskCost = 300
	// TaskPenalty is taken when a task times out or is skipped.
	TaskPenalty = 300
	// AtoneCost buys a second attempt at a failed task.
	AtoneCost = 100
	// TaskWindow is how long a member has to send proof.
	TaskWindow = 24 * time.Hour

	// AtoneItem names the purchase recorded for an atonement.
	AtoneItem = "Redemption"
	// AwaitingDirective stands in when neither the queue nor the pool has a task.
	AwaitingDirective = "AWAITING DIRECTIVE..."
)

type TaskStatus string

const (
	TaskActive    TaskStatus = "active"
	TaskSubmitted TaskStatus = "submitted"
	TaskFailed    TaskStatus = "failed"
	TaskAtoned    TaskStatus = "atoned"
)

type TaskCategory string

const (
	TaskGeneral    TaskCategory = "general"
	TaskRedemption TaskCategory = "redemption"
)

type FailReason string

const (
	FailTimeout FailReason = "timeout"
	FailSkipped FailReason = "skipped"
)

// Task is one assignment with a deadline. A member has at most one active task.
type Task struct {
	ID           string
	MemberID     string
	Text         string
	Category     TaskCategory
	Status       TaskStatus
	FailReason   FailReason
	SubmissionID string
	AssignedAt   time.Time
	Deadline     time.Time
	ClosedAt     *time.Time
}

// NewTask assigns text to a member with the standard window.
func NewTask(id, memberID, text string, category TaskCategory, now time.Time) *Task {
	return &Task{
		ID:         id,
		MemberID:   memberID,
		Text:       text,
		Category:   category,
		Status:     TaskActive,
		AssignedAt: now,
		Deadline:   now.Add(TaskWindow),
	}
}

func (t *Task) IsActive() bool {
	return t.Status == TaskActive
}

// Overdue reports whether an active task has reached its deadline.
func (t *Task) Overdue(now time.Time) bool {
	return t.IsActive() && !now.Before(t.Deadline)
}

// Remaining is the time left before the deadline, never negative.
func (t *Task) Remaining(now time.Time) time.Duration {
	if !t.IsActive() || !now.Before(t.Deadline) {
		return 0
	}
	return t.Deadline.Sub(now)
}

// Fail closes an active task. The caller applies the coin penalty.
func (t *Task) Fail(reason FailReason, now time.Time) error {
	if !t.IsActive() {
		return fmt.Errorf("task %s is %s: %w", t.ID, t.Status, ErrNoActiveTask)
	}
	t.Status = TaskFailed
	t.FailReason = reason
	t.ClosedAt = &now
	return nil
}

// Submit closes an active task against the proof that answers it.
func (t *Task) Submit(submissionID string, now time.Time) error {
	if !t.IsActive() {
		return fmt.Errorf("task %s is %s: %w", t.ID, t.Status, ErrNoActiveTask)
	}
	t.Status = TaskSubmitted
	t.SubmissionID = submissionID
	t.ClosedAt = &now
	return nil
}

// Atone marks a failed task as redeemed and returns the retry that replaces it.
func (t *Task) Atone(retryID string, now time.Time) (*Task, error) {
	if t.Status != TaskFailed {
		return nil, fmt.Errorf("task %s is %s: %w", t.ID, t.Status, ErrNotAtonable)
	}
	t.Status = TaskAtoned
	return NewTask(retryID, t.MemberID, t.Text, TaskRedemption, now), nil
}

// QueueItem is a task text waiting to be drawn. Lower positions draw first.
type QueueItem struct {
	ID        string
	MemberID  string
	Position  int
	Text      string
	CreatedAt time.Time
}

// NormalizeTaskText trims text and rejects an empty result.
func NormalizeTaskText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTask
	}
	return text, nil
}

// Purchase is one coin spend, kept for the member's ledger.
type Purchase struct {
	ID        string
	MemberID  string
	Item      string
	Cost      int
	CreatedAt time.Time
}
