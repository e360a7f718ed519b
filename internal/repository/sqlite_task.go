package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, member_id, text, category, status, fail_reason, submission_id, assigned_at, deadline, closed_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.MemberID,
		t.Text,
		string(t.Category),
		string(t.Status),
		string(t.FailReason),
		t.SubmissionID,
		formatTime(t.AssignedAt),
		formatTime(t.Deadline),
		nullableTimeToString(t.ClosedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) GetActive(ctx context.Context, memberID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE member_id = ? AND status = 'active'`
	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, memberID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active task for %s: %w", memberID, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByMember(ctx context.Context, memberID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE member_id = ? ORDER BY assigned_at DESC, rowid DESC`
	return r.queryTasks(ctx, query, memberID)
}

func (r *SQLiteTaskRepo) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE status = 'active' AND deadline <= ? ORDER BY deadline`
	return r.queryTasks(ctx, query, formatTime(now))
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET status = ?, fail_reason = ?, submission_id = ?, closed_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(t.Status),
		string(t.FailReason),
		t.SubmissionID,
		nullableTimeToString(t.ClosedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var category, status, reason, assignedStr, deadlineStr string
	var closed sql.NullString

	err := row.Scan(&t.ID, &t.MemberID, &t.Text, &category, &status, &reason, &t.SubmissionID,
		&assignedStr, &deadlineStr, &closed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Category = domain.TaskCategory(category)
	t.Status = domain.TaskStatus(status)
	t.FailReason = domain.FailReason(reason)
	t.ClosedAt = parseNullableTime(closed)
	if t.AssignedAt, err = parseTime(assignedStr); err != nil {
		return nil, fmt.Errorf("parsing assigned_at: %w", err)
	}
	if t.Deadline, err = parseTime(deadlineStr); err != nil {
		return nil, fmt.Errorf("parsing deadline: %w", err)
	}
	return &t, nil
}

// SQLiteQueueRepo implements QueueRepo using a SQLite database.
type SQLiteQueueRepo struct {
	db db.DBTX
}

func NewSQLiteQueueRepo(conn db.DBTX) *SQLiteQueueRepo {
	return &SQLiteQueueRepo{db: conn}
}

// Push appends item behind the member's existing queue and sets its position.
func (r *SQLiteQueueRepo) Push(ctx context.Context, item *domain.QueueItem) error {
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM task_queue WHERE member_id = ?`, item.MemberID,
	).Scan(&item.Position)
	if err != nil {
		return fmt.Errorf("reading queue tail: %w", err)
	}
	query := `INSERT INTO task_queue (id, member_id, position, text, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		item.ID, item.MemberID, item.Position, item.Text, formatTime(item.CreatedAt),
	); err != nil {
		return fmt.Errorf("inserting queue item: %w", err)
	}
	return nil
}

// List returns the member's queue in draw order.
func (r *SQLiteQueueRepo) List(ctx context.Context, memberID string) ([]*domain.QueueItem, error) {
	query := `SELECT id, member_id, position, text, created_at FROM task_queue
		WHERE member_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing queue: %w", err)
	}
	defer rows.Close()

	var items []*domain.QueueItem
	for rows.Next() {
		var it domain.QueueItem
		var createdStr string
		if err := rows.Scan(&it.ID, &it.MemberID, &it.Position, &it.Text, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning queue item: %w", err)
		}
		if it.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating queue: %w", err)
	}
	return items, nil
}

// Delete removes one item owned by memberID.
func (r *SQLiteQueueRepo) Delete(ctx context.Context, memberID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_queue WHERE id = ? AND member_id = ?`, id, memberID)
	if err != nil {
		return fmt.Errorf("deleting queue item: %w", err)
	}
	return requireAffected(res, "queue item", id)
}
