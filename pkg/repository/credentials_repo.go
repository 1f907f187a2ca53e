package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// CredentialsRepository stores password hashes separately from user
// profiles.
type CredentialsRepository struct {
	db *sql.DB
}

// NewCredentialsRepository creates a new credentials repository.
func NewCredentialsRepository(db *sql.DB) *CredentialsRepository {
	return &CredentialsRepository{db: db}
}

// Set inserts or replaces a user's password hash.
func (r *CredentialsRepository) Set(ctx context.Context, creds *domain.UserCredentials) error {
	return r.SetTx(ctx, r.db, creds)
}

// SetTx inserts or replaces a user's password hash within a transaction.
func (r *CredentialsRepository) SetTx(ctx context.Context, q Querier, creds *domain.UserCredentials) error {
	query := `
		INSERT INTO user_credentials (user_id, password_hash, password_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    password_updated_at = EXCLUDED.password_updated_at
	`
	_, err := q.ExecContext(ctx, query, creds.UserID, creds.PasswordHash, creds.PasswordUpdatedAt)
	return err
}

// Get retrieves a user's password hash.
func (r *CredentialsRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.UserCredentials, error) {
	query := `
		SELECT user_id, password_hash, password_updated_at
		FROM user_credentials
		WHERE user_id = $1
	`
	creds := &domain.UserCredentials{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&creds.UserID, &creds.PasswordHash, &creds.PasswordUpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return creds, nil
}
