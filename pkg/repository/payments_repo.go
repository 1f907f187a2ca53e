package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// PaymentsRepository handles payment persistence. Payments are
// append-only: there is no update or delete.
type PaymentsRepository struct {
	db *sql.DB
}

// NewPaymentsRepository creates a new payments repository.
func NewPaymentsRepository(db *sql.DB) *PaymentsRepository {
	return &PaymentsRepository{db: db}
}

// Create records a payment.
func (r *PaymentsRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, username, amount, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.Username, payment.Amount, payment.Method, payment.Status, payment.CreatedAt,
	)
	return err
}

// ListByUsername returns all payments for a tenant, newest first.
func (r *PaymentsRepository) ListByUsername(ctx context.Context, username string) ([]domain.Payment, error) {
	query := `
		SELECT id, username, amount, method, status, created_at
		FROM payments
		WHERE username = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, username)
}

// ListRecentForUsernames returns the most recent payments across a set
// of tenants, for the landlord's payment feed.
func (r *PaymentsRepository) ListRecentForUsernames(ctx context.Context, usernames []string, limit int) ([]domain.Payment, error) {
	query := `
		SELECT id, username, amount, method, status, created_at
		FROM payments
		WHERE username = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(ctx, query, pq.Array(usernames), limit)
}

func (r *PaymentsRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Username, &p.Amount, &p.Method, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
