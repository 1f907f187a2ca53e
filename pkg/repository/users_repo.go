package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// UsersRepository handles user persistence.
type UsersRepository struct {
	db *sql.DB
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

const userColumns = `
	id, username, role, email, name,
	monthly_rent, lease_start, lease_end,
	street, city, state, zip_code, normalized_address, unit_number,
	assigned_landlord_id, assigned_property_id,
	is_active, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*domain.User, error) {
	var (
		user        domain.User
		rent        decimal.NullDecimal
		street      sql.NullString
		city        sql.NullString
		state       sql.NullString
		zip         sql.NullString
		normalized  sql.NullString
	)
	err := s.Scan(
		&user.ID, &user.Username, &user.Role, &user.Email, &user.Name,
		&rent, &user.LeaseStart, &user.LeaseEnd,
		&street, &city, &state, &zip, &normalized, &user.UnitNumber,
		&user.AssignedLandlordID, &user.AssignedPropertyID,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rent.Valid {
		user.MonthlyRent = &rent.Decimal
	}
	if street.Valid && city.Valid && state.Valid && zip.Valid {
		user.Address = &domain.Address{
			Street:  street.String,
			City:    city.String,
			State:   state.String,
			ZipCode: zip.String,
		}
	}
	if normalized.Valid {
		user.NormalizedAddress = &normalized.String
	}
	return &user, nil
}

// Create creates a new user.
func (r *UsersRepository) Create(ctx context.Context, user *domain.User) error {
	return r.CreateTx(ctx, r.db, user)
}

// CreateTx creates a new user within a transaction.
func (r *UsersRepository) CreateTx(ctx context.Context, q Querier, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, username, role, email, name,
			monthly_rent, lease_start, lease_end,
			street, city, state, zip_code, normalized_address, unit_number,
			assigned_landlord_id, assigned_property_id,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	var rent decimal.NullDecimal
	if user.MonthlyRent != nil {
		rent = decimal.NullDecimal{Decimal: *user.MonthlyRent, Valid: true}
	}
	var street, city, state, zip *string
	if user.Address != nil {
		street, city, state, zip = &user.Address.Street, &user.Address.City, &user.Address.State, &user.Address.ZipCode
	}
	_, err := q.ExecContext(ctx, query,
		user.ID, user.Username, user.Role, user.Email, user.Name,
		rent, user.LeaseStart, user.LeaseEnd,
		street, city, state, zip, user.NormalizedAddress, user.UnitNumber,
		user.AssignedLandlordID, user.AssignedPropertyID,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID.
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ExistsByUsername checks if a user exists by username.
func (r *UsersRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

// ListTenantsByLandlord returns all active tenants assigned to a landlord.
func (r *UsersRepository) ListTenantsByLandlord(ctx context.Context, landlordID uuid.UUID) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'tenant' AND assigned_landlord_id = $1 AND is_active = TRUE
		ORDER BY username
	`
	return r.list(ctx, query, landlordID)
}

// ListUnassignedTenantsByAddressKey returns all active tenants with the
// given normalized address key and no assigned landlord. This is the
// property-side matcher query.
func (r *UsersRepository) ListUnassignedTenantsByAddressKey(ctx context.Context, key string) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'tenant' AND normalized_address = $1
		  AND assigned_landlord_id IS NULL AND is_active = TRUE
	`
	return r.list(ctx, query, key)
}

// ListUnassignedTenants returns all active tenants awaiting assignment,
// the manual-assignment pool.
func (r *UsersRepository) ListUnassignedTenants(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'tenant' AND assigned_landlord_id IS NULL AND is_active = TRUE
		ORDER BY created_at
	`
	return r.list(ctx, query)
}

// CountTenantsByProperty counts active tenants assigned to a property.
func (r *UsersRepository) CountTenantsByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM users
		WHERE role = 'tenant' AND assigned_property_id = $1 AND is_active = TRUE
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, propertyID).Scan(&count)
	return count, err
}

// Assign sets a tenant's landlord and property references if and only
// if no landlord is currently assigned. The WHERE clause makes the
// transition a compare-and-set: a second trigger for the same tenant
// affects zero rows and returns false.
func (r *UsersRepository) Assign(ctx context.Context, tenantID, landlordID, propertyID uuid.UUID) (bool, error) {
	query := `
		UPDATE users
		SET assigned_landlord_id = $2, assigned_property_id = $3, updated_at = NOW()
		WHERE id = $1 AND role = 'tenant' AND assigned_landlord_id IS NULL AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query, tenantID, landlordID, propertyID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// AssignOverride sets a tenant's landlord and property references
// unconditionally. Used by the landlord's manual assignment action.
func (r *UsersRepository) AssignOverride(ctx context.Context, tenantID, landlordID, propertyID uuid.UUID) error {
	query := `
		UPDATE users
		SET assigned_landlord_id = $2, assigned_property_id = $3, updated_at = NOW()
		WHERE id = $1 AND role = 'tenant'
	`
	result, err := r.db.ExecContext(ctx, query, tenantID, landlordID, propertyID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLease updates a tenant's lease terms.
func (r *UsersRepository) UpdateLease(ctx context.Context, tenantID uuid.UUID, monthlyRent *decimal.Decimal, leaseStart, leaseEnd *time.Time) error {
	query := `
		UPDATE users
		SET monthly_rent = $2, lease_start = $3, lease_end = $4, updated_at = NOW()
		WHERE id = $1 AND role = 'tenant'
	`
	var rent decimal.NullDecimal
	if monthlyRent != nil {
		rent = decimal.NullDecimal{Decimal: *monthlyRent, Valid: true}
	}
	result, err := r.db.ExecContext(ctx, query, tenantID, rent, leaseStart, leaseEnd)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UsersRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
