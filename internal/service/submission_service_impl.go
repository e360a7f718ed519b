package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

type submissionService struct {
	submissions repository.SubmissionRepo
	uow         db.UnitOfWork
	settings    Settings
	observer    UseCaseObserver
}

func NewSubmissionService(
	submissions repository.SubmissionRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		uow:         uow,
		settings:    settings,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Record stores a new proof. Missing ids, timestamps and status are filled
// in; the member must exist. A task proof closes the member's active task
// unless its deadline has passed.
func (s *submissionService) Record(ctx context.Context, sub *domain.Submission) (err error) {
	done := observe(ctx, s.observer, "submission-record", map[string]any{
		"member_id": sub.MemberID,
		"kind":      string(sub.Kind),
	})
	defer func() { done(err) }()

	if !domain.ValidSubmissionKinds[string(sub.Kind)] {
		return fmt.Errorf("invalid submission kind %q", sub.Kind)
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := s.settings.now().UTC()
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = now
	}
	if sub.Status == "" {
		sub.Status = domain.SubmissionPending
	}
	sub.CreatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteMemberRepo(tx).GetByID(ctx, sub.MemberID); err != nil {
			return err
		}
		if err := repository.NewSQLiteSubmissionRepo(tx).Create(ctx, sub); err != nil {
			return err
		}
		if sub.Kind != domain.SubmissionTask {
			return nil
		}
		return closeActiveTask(ctx, repository.NewSQLiteTaskRepo(tx), sub.MemberID, sub.ID, now)
	})
}

func closeActiveTask(ctx context.Context, tasks repository.TaskRepo, memberID, submissionID string, now time.Time) error {
	t, err := tasks.GetActive(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if t.Overdue(now) {
		return nil
	}
	if err := t.Submit(submissionID, now); err != nil {
		return err
	}
	return tasks.Update(ctx, t)
}

func (s *submissionService) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	return s.submissions.GetByID(ctx, id)
}

func (s *submissionService) ListByMember(ctx context.Context, memberID string, f repository.SubmissionFilter) ([]*domain.Submission, error) {
	return s.submissions.ListByMember(ctx, memberID, f)
}

func (s *submissionService) ListPending(ctx context.Context) ([]*domain.Submission, error) {
	return s.submissions.ListPending(ctx)
}

// Review settles a pending submission. An approved task proof also bumps the
// member's completed-task counter in the same transaction.
func (s *submissionService) Review(ctx context.Context, id string, status domain.SubmissionStatus) (reviewed *domain.Submission, err error) {
	fields := map[string]any{"submission_id": id, "status": string(status)}
	done := observe(ctx, s.observer, "submission-review", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSubs := repository.NewSQLiteSubmissionRepo(tx)
		txMembers := repository.NewSQLiteMemberRepo(tx)

		sub, err := txSubs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["member_id"] = sub.MemberID
		now := s.settings.now().UTC()
		if err := sub.Review(status, now); err != nil {
			return err
		}
		if err := txSubs.Update(ctx, sub); err != nil {
			return err
		}

		if sub.Kind == domain.SubmissionTask && sub.Status == domain.SubmissionApproved {
			m, err := txMembers.GetByID(ctx, sub.MemberID)
			if err != nil {
				return err
			}
			m.CompletedTasks++
			m.UpdatedAt = now
			if err := txMembers.Update(ctx, m); err != nil {
				return err
			}
		}
		reviewed = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}
