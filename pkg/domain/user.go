package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role values for User.Role.
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
)

// User represents an account: a tenant bound to a lease, or a landlord
// owning properties. Tenant-only fields are pointers and stay nil for
// landlords.
type User struct {
	ID       uuid.UUID
	Username string
	Role     string
	Email    *string
	Name     *string

	// Lease terms (tenant only).
	MonthlyRent *decimal.Decimal
	LeaseStart  *time.Time
	LeaseEnd    *time.Time

	// Postal address and its derived matching key.
	Address           *Address
	NormalizedAddress *string
	UnitNumber        *string

	// Auto- or manually-assigned landlord/property references.
	AssignedLandlordID *uuid.UUID
	AssignedPropertyID *uuid.UUID

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address holds the postal address components used for matching.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// IsTenant returns true for tenant accounts.
func (u *User) IsTenant() bool {
	return u.Role == RoleTenant
}

// IsLandlord returns true for landlord accounts.
func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}

// HasCompleteLease reports whether both lease start and monthly rent
// are set. Balance calculation requires both.
func (u *User) HasCompleteLease() bool {
	return u.LeaseStart != nil && u.MonthlyRent != nil
}

// IsAssigned reports whether the tenant has already been matched to a landlord.
func (u *User) IsAssigned() bool {
	return u.AssignedLandlordID != nil
}

// FullAddress renders the address as a single display string.
func (u *User) FullAddress() string {
	if u.Address == nil {
		return ""
	}
	return u.Address.Street + ", " + u.Address.City + ", " + u.Address.State + " " + u.Address.ZipCode
}

// UserCredentials stores the password hash separately from the user profile.
type UserCredentials struct {
	UserID            uuid.UUID
	PasswordHash      string
	PasswordUpdatedAt time.Time
}
