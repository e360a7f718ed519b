package domain

import (
	"fmt"
	"time"
)

// Submission is one proof-of-activity record. Routine submissions feed the
// daily streak; task submissions feed the completed-task counter once approved.
type Submission struct {
	ID          string
	MemberID    string
	Kind        SubmissionKind
	Status      SubmissionStatus
	SubmittedAt time.Time
	ProofURL    string
	Note        string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}

func (s *Submission) IsReviewed() bool {
	return s.Status != SubmissionPending
}

// Review moves a pending submission to a terminal status.
func (s *Submission) Review(status SubmissionStatus, now time.Time) error {
	if !ValidReviewStatuses[string(status)] {
		return fmt.Errorf("invalid review status %q", status)
	}
	if s.IsReviewed() {
		return fmt.Errorf("submission %s (%s): %w", s.ID, s.Status, ErrAlreadyReviewed)
	}
	s.Status = status
	s.ReviewedAt = &now
	return nil
}
