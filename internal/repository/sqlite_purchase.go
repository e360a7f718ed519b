package repository

import (
	"context"
	"fmt"

	"github.com/qkariin/queendom/internal/db"
	"github.com/qkariin/queendom/internal/domain"
)

// SQLitePurchaseRepo implements PurchaseRepo using a SQLite database.
type SQLitePurchaseRepo struct {
	db db.DBTX
}

func NewSQLitePurchaseRepo(conn db.DBTX) *SQLitePurchaseRepo {
	return &SQLitePurchaseRepo{db: conn}
}

func (r *SQLitePurchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	query := `INSERT INTO purchases (id, member_id, item, cost, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.MemberID, p.Item, p.Cost, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}
	return nil
}

func (r *SQLitePurchaseRepo) ListByMember(ctx context.Context, memberID string) ([]*domain.Purchase, error) {
	query := `SELECT id, member_id, item, cost, created_at FROM purchases
		WHERE member_id = ? ORDER BY created_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		var createdStr string
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Item, &p.Cost, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchases: %w", err)
	}
	return out, nil
}
