package repository

import (
	"context"
	"time"

	"github.com/qkariin/queendom/internal/domain"
)

type MemberRepo interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// FindByIDPrefix returns members whose id starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Member, error)
	// FindByName matches name or title, case-insensitively.
	FindByName(ctx context.Context, name string) ([]*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Delete(ctx context.Context, id string) error
}

// SubmissionFilter narrows a submission listing. Zero values match everything.
type SubmissionFilter struct {
	Kind   domain.SubmissionKind
	Status domain.SubmissionStatus
	Since  time.Time
}

type SubmissionRepo interface {
	Create(ctx context.Context, s *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	// ListByMember returns submissions newest first.
	ListByMember(ctx context.Context, memberID string, f SubmissionFilter) ([]*domain.Submission, error)
	ListPending(ctx context.Context) ([]*domain.Submission, error)
	Update(ctx context.Context, s *domain.Submission) error
	Delete(ctx context.Context, id string) error
}

type PurchaseRepo interface {
	Create(ctx context.Context, p *domain.Purchase) error
	// ListByMember returns purchases newest first.
	ListByMember(ctx context.Context, memberID string) ([]*domain.Purchase, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// GetActive returns ErrNotFound when the member has no active task.
	GetActive(ctx context.Context, memberID string) (*domain.Task, error)
	// ListByMember returns tasks newest first.
	ListByMember(ctx context.Context, memberID string) ([]*domain.Task, error)
	// ListOverdue returns active tasks whose deadline is at or before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}

type QueueRepo interface {
	Push(ctx context.Context, item *domain.QueueItem) error
	List(ctx context.Context, memberID string) ([]*domain.QueueItem, error)
	Delete(ctx context.Context, memberID, id string) error
}
