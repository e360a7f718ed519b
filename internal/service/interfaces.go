package service

import (
	"context"

	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/repository"
)

type MemberService interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// Resolve accepts a full id, an id prefix or an exact name/title.
	Resolve(ctx context.Context, ref string) (*domain.Member, error)
	List(ctx context.Context) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Delete(ctx context.Context, id string) error
	AdjustPoints(ctx context.Context, id string, delta int) (*domain.Member, error)
	AdjustCoins(ctx context.Context, id string, delta int) (*domain.Member, error)
	AdjustKneel(ctx context.Context, id string, delta int) (*domain.Member, error)
	Touch(ctx context.Context, id string) error
	// Purchase pays cost for item from the balance and counts it as spent.
	Purchase(ctx context.Context, id, item string, cost int) (*domain.Member, error)
	Purchases(ctx context.Context, id string) ([]*domain.Purchase, error)
}

type SubmissionService interface {
	Record(ctx context.Context, s *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	ListByMember(ctx context.Context, memberID string, f repository.SubmissionFilter) ([]*domain.Submission, error)
	ListPending(ctx context.Context) ([]*domain.Submission, error)
	Review(ctx context.Context, id string, status domain.SubmissionStatus) (*domain.Submission, error)
}

type KneelService interface {
	Status(ctx context.Context, memberID string) (*KneelStatus, error)
	Finish(ctx context.Context, memberID string) (*domain.Member, error)
	ClaimReward(ctx context.Context, memberID string, choice domain.RewardChoice) (*domain.Member, error)
}

type PromotionService interface {
	Ladder() domain.Ladder
	Streak(ctx context.Context, memberID string) (*StreakReport, error)
	GetPromotion(ctx context.Context, memberID string) (*PromotionReport, error)
	Promote(ctx context.Context, memberID string) (*PromotionReport, error)
}

// TaskService runs the task lifecycle: a per-member queue, one active task
// with a deadline, penalties for timeouts and skips, and paid atonement.
type TaskService interface {
	Enqueue(ctx context.Context, memberID, text string) (*domain.QueueItem, error)
	Queue(ctx context.Context, memberID string) ([]*domain.QueueItem, error)
	Dequeue(ctx context.Context, memberID, itemID string) error

	// Current returns the active task, or ErrNoActiveTask.
	Current(ctx context.Context, memberID string) (*domain.Task, error)
	Draw(ctx context.Context, memberID string) (*domain.Task, error)
	Skip(ctx context.Context, memberID string) (*domain.Task, error)
	// Atone retries a failed task; an empty taskID picks the latest failure.
	Atone(ctx context.Context, memberID, taskID string) (*domain.Task, error)
	History(ctx context.Context, memberID string) ([]*domain.Task, error)
	// ExpireOverdue fails every task past its deadline.
	ExpireOverdue(ctx context.Context) ([]*domain.Task, error)
}
