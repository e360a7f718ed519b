package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
)

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	db db.DBTX
}

func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: conn}
}

const memberColumns = `id, name, title, avatar, profile_picture, limits, kinks, hierarchy, routine,
	points, coins, kneel_count, total_spent, completed_tasks, routine_streak,
	last_kneel_at, last_reward_at, last_seen_at, joined_at, created_at, updated_at`

func (r *SQLiteMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (` + memberColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		m.Title,
		m.Avatar,
		m.ProfilePicture,
		m.Limits,
		m.Kinks,
		m.Hierarchy,
		m.Routine,
		m.Points,
		m.Coins,
		m.KneelCount,
		m.TotalSpent,
		m.CompletedTasks,
		m.RoutineStreak,
		nullableTimeToString(m.LastKneelAt),
		nullableTimeToString(m.LastRewardAt),
		nullableTimeToString(m.LastSeenAt),
		formatTime(m.JoinedAt),
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	m, err := r.scanMember(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, err
}

// FindByIDPrefix matches the prefix literally; LIKE wildcards in it carry no
// special meaning.
func (r *SQLiteMemberRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Member, error) {
	if prefix == "" {
		return nil, nil
	}
	query := `SELECT ` + memberColumns + ` FROM members WHERE substr(id, 1, length(?)) = ? ORDER BY id`
	return r.queryMembers(ctx, query, prefix, prefix)
}

func (r *SQLiteMemberRepo) FindByName(ctx context.Context, name string) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members
		WHERE lower(name) = ? OR lower(title) = ?
		ORDER BY created_at`
	key := strings.ToLower(strings.TrimSpace(name))
	return r.queryMembers(ctx, query, key, key)
}

func (r *SQLiteMemberRepo) List(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY points DESC, created_at`
	return r.queryMembers(ctx, query)
}

func (r *SQLiteMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name = ?, title = ?, avatar = ?, profile_picture = ?,
		limits = ?, kinks = ?, hierarchy = ?, routine = ?,
		points = ?, coins = ?, kneel_count = ?, total_spent = ?, completed_tasks = ?, routine_streak = ?,
		last_kneel_at = ?, last_reward_at = ?, last_seen_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		m.Title,
		m.Avatar,
		m.ProfilePicture,
		m.Limits,
		m.Kinks,
		m.Hierarchy,
		m.Routine,
		m.Points,
		m.Coins,
		m.KneelCount,
		m.TotalSpent,
		m.CompletedTasks,
		m.RoutineStreak,
		nullableTimeToString(m.LastKneelAt),
		nullableTimeToString(m.LastRewardAt),
		nullableTimeToString(m.LastSeenAt),
		formatTime(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return requireAffected(res, "member", m.ID)
}

func (r *SQLiteMemberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return requireAffected(res, "member", id)
}

func (r *SQLiteMemberRepo) queryMembers(ctx context.Context, query string, args ...any) ([]*domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return members, nil
}

// scanMember returns sql.ErrNoRows unwrapped so GetByID can map it.
func (r *SQLiteMemberRepo) scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	var lastKneel, lastReward, lastSeen sql.NullString
	var joinedStr, createdStr, updatedStr string

	err := row.Scan(
		&m.ID, &m.Name, &m.Title, &m.Avatar, &m.ProfilePicture, &m.Limits, &m.Kinks, &m.Hierarchy, &m.Routine,
		&m.Points, &m.Coins, &m.KneelCount, &m.TotalSpent, &m.CompletedTasks, &m.RoutineStreak,
		&lastKneel, &lastReward, &lastSeen, &joinedStr, &createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}
	m.LastKneelAt = parseNullableTime(lastKneel)
	m.LastRewardAt = parseNullableTime(lastReward)
	m.LastSeenAt = parseNullableTime(lastSeen)
	return populateMember(&m, joinedStr, createdStr, updatedStr)
}

func populateMember(m *domain.Member, joinedStr, createdStr, updatedStr string) (*domain.Member, error) {
	var err error
	if m.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if m.JoinedAt, err = parseTime(joinedStr); err != nil {
		m.JoinedAt = m.CreatedAt
	}
	return m, nil
}

func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return nil
}
