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

type taskService struct {
	tasks    repository.TaskRepo
	queue    repository.QueueRepo
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	queue repository.QueueRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		queue:    queue,
		uow:      uow,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Enqueue(ctx context.Context, memberID, text string) (item *domain.QueueItem, err error) {
	done := observe(ctx, s.observer, "task-enqueue", map[string]any{"member_id": memberID})
	defer func() { done(err) }()

	text, err = domain.NormalizeTaskText(text)
	if err != nil {
		return nil, err
	}
	item = &domain.QueueItem{
		ID:        uuid.New().String(),
		MemberID:  memberID,
		Text:      text,
		CreatedAt: s.settings.now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteMemberRepo(tx).GetByID(ctx, memberID); err != nil {
			return err
		}
		return repository.NewSQLiteQueueRepo(tx).Push(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *taskService) Queue(ctx context.Context, memberID string) ([]*domain.QueueItem, error) {
	return s.queue.List(ctx, memberID)
}

func (s *taskService) Dequeue(ctx context.Context, memberID, itemID string) (err error) {
	done := observe(ctx, s.observer, "task-dequeue", map[string]any{"member_id": memberID, "item_id": itemID})
	defer func() { done(err) }()

	return s.queue.Delete(ctx, memberID, itemID)
}

func (s *taskService) Current(ctx context.Context, memberID string) (*domain.Task, error) {
	if err := s.settle(ctx, memberID); err != nil {
		return nil, err
	}
	t, err := s.tasks.GetActive(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActiveTask
	}
	return t, err
}

// Draw assigns the head of the member's queue, or a pool task when the
// queue is empty. The member must hold TaskCost coins; nothing is charged.
func (s *taskService) Draw(ctx context.Context, memberID string) (task *domain.Task, err error) {
	fields := map[string]any{"member_id": memberID}
	done := observe(ctx, s.observer, "task-draw", fields)
	defer func() { done(err) }()

	if err := s.settle(ctx, memberID); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txQueue := repository.NewSQLiteQueueRepo(tx)

		m, err := repository.NewSQLiteMemberRepo(tx).GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		if err := requireNoActive(ctx, txTasks, memberID); err != nil {
			return err
		}
		if err := m.RequireCoins(domain.TaskCost); err != nil {
			return err
		}

		text := s.settings.poolTask()
		fields["source"] = "pool"
		queued, err := txQueue.List(ctx, memberID)
		if err != nil {
			return err
		}
		if len(queued) > 0 {
			text = queued[0].Text
			fields["source"] = "queue"
			if err := txQueue.Delete(ctx, memberID, queued[0].ID); err != nil {
				return err
			}
		}

		t := domain.NewTask(uuid.New().String(), memberID, text, domain.TaskGeneral, s.settings.now().UTC())
		if err := txTasks.Create(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Skip abandons the active task for the TaskPenalty. Skipping needs a
// balance of at least TaskCost.
func (s *taskService) Skip(ctx context.Context, memberID string) (task *domain.Task, err error) {
	done := observe(ctx, s.observer, "task-skip", map[string]any{"member_id": memberID})
	defer func() { done(err) }()

	if err := s.settle(ctx, memberID); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMembers := repository.NewSQLiteMemberRepo(tx)
		t, err := repository.NewSQLiteTaskRepo(tx).GetActive(ctx, memberID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoActiveTask
		}
		if err != nil {
			return err
		}
		m, err := txMembers.GetByID(ctx, memberID)
		if err != nil {
			return err
		}
		if err := m.RequireCoins(domain.TaskCost); err != nil {
			return err
		}
		now := s.settings.now().UTC()
		if err := failTask(ctx, tx, t, m, domain.FailSkipped, now); err != nil {
			return err
		}
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Atone buys a retry of a failed task for AtoneCost coins. The cost is a
// purchase and counts towards TotalSpent.
func (s *taskService) Atone(ctx context.Context, memberID, taskID string) (task *domain.Task, err error) {
	fields := map[string]any{"member_id": memberID, "task_id": taskID}
	done := observe(ctx, s.observer, "task-atone", fields)
	defer func() { done(err) }()

	if err := s.settle(ctx, memberID); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txMembers := repository.NewSQLiteMemberRepo(tx)

		failed, err := failedTask(ctx, txTasks, memberID, taskID)
		if err != nil {
			return err
		}
		fields["task_id"] = failed.ID
		if err := requireNoActive(ctx, txTasks, memberID); err != nil {
			return err
		}
		m, err := txMembers.GetByID(ctx, memberID)
		if err != nil {
			return err
		}

		now := s.settings.now().UTC()
		retry, err := failed.Atone(uuid.New().String(), now)
		if err != nil {
			return err
		}
		if err := spend(ctx, tx, m, domain.AtoneItem, domain.AtoneCost, now); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, failed); err != nil {
			return err
		}
		if err := txTasks.Create(ctx, retry); err != nil {
			return err
		}
		if err := txMembers.Update(ctx, m); err != nil {
			return err
		}
		task = retry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) History(ctx context.Context, memberID string) ([]*domain.Task, error) {
	if err := s.settle(ctx, memberID); err != nil {
		return nil, err
	}
	return s.tasks.ListByMember(ctx, memberID)
}

func (s *taskService) ExpireOverdue(ctx context.Context) (expired []*domain.Task, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "task-expire", fields)
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		expired, err = expireOverdue(ctx, tx, "", s.settings.now().UTC())
		return err
	})
	fields["expired"] = len(expired)
	if err != nil {
		return nil, err
	}
	return expired, nil
}

// settle applies the timeout penalty to the member's task when its deadline
// has passed. Every task use case settles first, in its own transaction.
func (s *taskService) settle(ctx context.Context, memberID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := expireOverdue(ctx, tx, memberID, s.settings.now().UTC())
		return err
	})
}

// expireOverdue fails overdue tasks, all of them or only memberID's. A
// timed-out task closes at its deadline.
func expireOverdue(ctx context.Context, tx db.DBTX, memberID string, now time.Time) ([]*domain.Task, error) {
	txMembers := repository.NewSQLiteMemberRepo(tx)
	due, err := repository.NewSQLiteTaskRepo(tx).ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	var expired []*domain.Task
	for _, t := range due {
		if memberID != "" && t.MemberID != memberID {
			continue
		}
		m, err := txMembers.GetByID(ctx, t.MemberID)
		if err != nil {
			return nil, err
		}
		if err := failTask(ctx, tx, t, m, domain.FailTimeout, t.Deadline); err != nil {
			return nil, err
		}
		m.UpdatedAt = now
		if err := txMembers.Update(ctx, m); err != nil {
			return nil, err
		}
		expired = append(expired, t)
	}
	return expired, nil
}

// failTask closes t and takes the penalty from m. The caller saves m.
func failTask(ctx context.Context, tx db.DBTX, t *domain.Task, m *domain.Member, reason domain.FailReason, at time.Time) error {
	if err := t.Fail(reason, at); err != nil {
		return err
	}
	m.Penalize(domain.TaskPenalty, at)
	return repository.NewSQLiteTaskRepo(tx).Update(ctx, t)
}

func requireNoActive(ctx context.Context, tasks repository.TaskRepo, memberID string) error {
	active, err := tasks.GetActive(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%q due %s: %w", active.Text, active.Deadline.Format(time.RFC3339), ErrTaskActive)
}

// failedTask loads the named task, or the member's latest failed task when
// taskID is empty. Tasks of other members are not found.
func failedTask(ctx context.Context, tasks repository.TaskRepo, memberID, taskID string) (*domain.Task, error) {
	if taskID != "" {
		t, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return nil, err
		}
		if t.MemberID != memberID {
			return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
		}
		if t.Status != domain.TaskFailed {
			return nil, fmt.Errorf("task %s is %s: %w", t.ID, t.Status, ErrNotAtonable)
		}
		return t, nil
	}
	all, err := tasks.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.Status == domain.TaskFailed {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no failed task to atone: %w", ErrNotAtonable)
}
