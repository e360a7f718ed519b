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

// SQLiteSubmissionRepo implements SubmissionRepo using a SQLite database.
type SQLiteSubmissionRepo struct {
	db db.DBTX
}

func NewSQLiteSubmissionRepo(conn db.DBTX) *SQLiteSubmissionRepo {
	return &SQLiteSubmissionRepo{db: conn}
}

const submissionColumns = `id, member_id, kind, status, submitted_at, proof_url, note, reviewed_at, created_at`

func (r *SQLiteSubmissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	query := `INSERT INTO submissions (` + submissionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.MemberID,
		string(s.Kind),
		string(s.Status),
		formatTime(s.SubmittedAt),
		s.ProofURL,
		s.Note,
		nullableTimeToString(s.ReviewedAt),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

func (r *SQLiteSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`
	s, err := r.scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSubmissionRepo) ListByMember(ctx context.Context, memberID string, f SubmissionFilter) ([]*domain.Submission, error) {
	var (
		where = []string{"member_id = ?"}
		args  = []any{memberID}
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if !f.Since.IsZero() {
		where = append(where, "submitted_at >= ?")
		args = append(args, formatTime(f.Since))
	}
	query := `SELECT ` + submissionColumns + ` FROM submissions
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY submitted_at DESC, created_at DESC`
	return r.querySubmissions(ctx, query, args...)
}

func (r *SQLiteSubmissionRepo) ListPending(ctx context.Context) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
		WHERE status = 'pending' ORDER BY submitted_at`
	return r.querySubmissions(ctx, query)
}

func (r *SQLiteSubmissionRepo) Update(ctx context.Context, s *domain.Submission) error {
	query := `UPDATE submissions SET status = ?, proof_url = ?, note = ?, reviewed_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		s.ProofURL,
		s.Note,
		nullableTimeToString(s.ReviewedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating submission: %w", err)
	}
	return requireAffected(res, "submission", s.ID)
}

func (r *SQLiteSubmissionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting submission: %w", err)
	}
	return requireAffected(res, "submission", id)
}

func (r *SQLiteSubmissionRepo) querySubmissions(ctx context.Context, query string, args ...any) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		s, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return subs, nil
}

func (r *SQLiteSubmissionRepo) scanSubmission(row rowScanner) (*domain.Submission, error) {
	var s domain.Submission
	var kind, status, submittedStr, createdStr string
	var reviewed sql.NullString

	err := row.Scan(&s.ID, &s.MemberID, &kind, &status, &submittedStr, &s.ProofURL, &s.Note, &reviewed, &createdStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning submission: %w", err)
	}
	s.Kind = domain.SubmissionKind(kind)
	s.Status = domain.SubmissionStatus(status)
	s.ReviewedAt = parseNullableTime(reviewed)
	if s.SubmittedAt, err = parseTime(submittedStr); err != nil {
		return nil, fmt.Errorf("parsing submitted_at: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
