package repository

import (
	"context"
	"database/sql"
)

// ExpiryRepo handles the expiry journal.
type ExpiryRepo struct {
	db *sql.DB
}

func NewExpiryRepo(db *sql.DB) *ExpiryRepo { return &ExpiryRepo{db: db} }

// Record inserts e and returns its row id.
func (r *ExpiryRepo) Record(ctx context.Context, e Expiry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO expiries(timer_id, label, expired_at) VALUES (?, ?, ?);
	`, e.TimerID, e.Label, e.ExpiredAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns the newest rows first. limit <= 0 returns everything.
func (r *ExpiryRepo) List(ctx context.Context, limit int) ([]Expiry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, timer_id, label, expired_at FROM expiries
	ORDER BY expired_at DESC, id DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Expiry
	for rows.Next() {
		var e Expiry
		if err := rows.Scan(&e.ID, &e.TimerID, &e.Label, &e.ExpiredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpiryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expiries`).Scan(&n)
	return n, err
}

// Clear deletes every row and returns how many were removed.
func (r *ExpiryRepo) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expiries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
