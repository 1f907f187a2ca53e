package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// RepairRequestsRepository handles repair request persistence.
type RepairRequestsRepository struct {
	db *sql.DB
}

// NewRepairRequestsRepository creates a new repair requests repository.
func NewRepairRequestsRepository(db *sql.DB) *RepairRequestsRepository {
	return &RepairRequestsRepository{db: db}
}

// Create files a repair request.
func (r *RepairRequestsRepository) Create(ctx context.Context, req *domain.RepairRequest) error {
	query := `
		INSERT INTO repair_requests (id, username, description, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Username, req.Description, req.Status, req.SubmittedAt,
	)
	return err
}

// ListByUsername returns a tenant's repair requests, newest first.
func (r *RepairRequestsRepository) ListByUsername(ctx context.Context, username string) ([]domain.RepairRequest, error) {
	query := `
		SELECT id, username, description, status, submitted_at
		FROM repair_requests
		WHERE username = $1
		ORDER BY submitted_at DESC
	`
	return r.list(ctx, query, username)
}

// ListForUsernames returns repair requests across a set of tenants,
// optionally filtered by status ("" or "all" means no filter).
func (r *RepairRequestsRepository) ListForUsernames(ctx context.Context, usernames []string, status string) ([]domain.RepairRequest, error) {
	if status == "" || status == "all" {
		query := `
			SELECT id, username, description, status, submitted_at
			FROM repair_requests
			WHERE username = ANY($1)
			ORDER BY submitted_at DESC
		`
		return r.list(ctx, query, pq.Array(usernames))
	}
	query := `
		SELECT id, username, description, status, submitted_at
		FROM repair_requests
		WHERE username = ANY($1) AND status = $2
		ORDER BY submitted_at DESC
	`
	return r.list(ctx, query, pq.Array(usernames), status)
}

// UpdateStatus transitions a repair request's status.
func (r *RepairRequestsRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.RepairRequest, error) {
	query := `
		UPDATE repair_requests
		SET status = $2
		WHERE id = $1
		RETURNING id, username, description, status, submitted_at
	`
	var req domain.RepairRequest
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&req.ID, &req.Username, &req.Description, &req.Status, &req.SubmittedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RepairRequestsRepository) list(ctx context.Context, query string, args ...any) ([]domain.RepairRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RepairRequest
	for rows.Next() {
		var req domain.RepairRequest
		if err := rows.Scan(&req.ID, &req.Username, &req.Description, &req.Status, &req.SubmittedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
