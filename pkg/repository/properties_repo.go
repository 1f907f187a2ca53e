package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// PropertiesRepository handles property persistence.
type PropertiesRepository struct {
	db *sql.DB
}

// NewPropertiesRepository creates a new properties repository.
func NewPropertiesRepository(db *sql.DB) *PropertiesRepository {
	return &PropertiesRepository{db: db}
}

const propertyColumns = `
	id, street, city, state, zip_code, normalized_address,
	name, type, landlord_id, landlord_username,
	total_units, available_units, base_rent,
	is_active, created_at, updated_at
`

func scanProperty(s rowScanner) (*domain.Property, error) {
	var (
		property domain.Property
		baseRent decimal.NullDecimal
	)
	err := s.Scan(
		&property.ID,
		&property.Address.Street, &property.Address.City, &property.Address.State, &property.Address.ZipCode,
		&property.NormalizedAddress,
		&property.Name, &property.Type,
		&property.LandlordID, &property.LandlordUsername,
		&property.TotalUnits, &property.AvailableUnits, &baseRent,
		&property.IsActive, &property.CreatedAt, &property.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if baseRent.Valid {
		property.BaseRent = &baseRent.Decimal
	}
	return &property, nil
}

// Create creates a new property.
func (r *PropertiesRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (
			id, street, city, state, zip_code, normalized_address,
			name, type, landlord_id, landlord_username,
			total_units, available_units, base_rent,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	var baseRent decimal.NullDecimal
	if property.BaseRent != nil {
		baseRent = decimal.NullDecimal{Decimal: *property.BaseRent, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		property.ID,
		property.Address.Street, property.Address.City, property.Address.State, property.Address.ZipCode,
		property.NormalizedAddress,
		property.Name, property.Type,
		property.LandlordID, property.LandlordUsername,
		property.TotalUnits, property.AvailableUnits, baseRent,
		property.IsActive, property.CreatedAt, property.UpdatedAt,
	)
	return err
}

// GetForLandlord retrieves a property by ID, scoped to its owner.
func (r *PropertiesRepository) GetForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND landlord_id = $2`
	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id, landlordID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return property, nil
}

// FindActiveByAddressKey returns one active property with the given
// normalized address key, or domain.ErrPropertyNotFound. This is the
// tenant-side matcher query.
func (r *PropertiesRepository) FindActiveByAddressKey(ctx context.Context, key string) (*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE normalized_address = $1 AND is_active = TRUE
		LIMIT 1
	`
	property, err := scanProperty(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return property, nil
}

// ListByLandlord returns a landlord's active properties, newest first.
func (r *PropertiesRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE landlord_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, rows.Err()
}

// ExistsForLandlord checks whether the landlord already has a property
// with the given normalized address key.
func (r *PropertiesRepository) ExistsForLandlord(ctx context.Context, landlordID uuid.UUID, key string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM properties WHERE landlord_id = $1 AND normalized_address = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, landlordID, key).Scan(&exists)
	return exists, err
}
