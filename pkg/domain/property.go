package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property types.
const (
	PropertyTypeHouse     = "house"
	PropertyTypeApartment = "apartment"
	PropertyTypeCondo     = "condo"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeDuplex    = "duplex"
	PropertyTypeOther     = "other"
)

// Property is a rental property owned by a landlord. NormalizedAddress
// is derived from Address before persistence and is the sole matching
// key for tenant auto-assignment; it is unique per landlord.
type Property struct {
	ID                uuid.UUID
	Address           Address
	NormalizedAddress string

	Name *string
	Type string

	LandlordID       uuid.UUID
	LandlordUsername string

	TotalUnits     int
	AvailableUnits int
	BaseRent       *decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullAddress renders the address as a single display string.
func (p *Property) FullAddress() string {
	return p.Address.Street + ", " + p.Address.City + ", " + p.Address.State + " " + p.Address.ZipCode
}

// ValidPropertyType reports whether t is one of the known property types.
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCondo,
		PropertyTypeTownhouse, PropertyTypeDuplex, PropertyTypeOther:
		return true
	}
	return false
}
