// Package assignment matches tenants to landlords and properties by
// normalized address key. Matching is exact on the key, with no
// geocoding or fuzzy matching.
package assignment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rentdesk/rentdesk/pkg/address"
	"github.com/rentdesk/rentdesk/pkg/domain"
)

// PropertyStore is the property lookup the matcher needs.
type PropertyStore interface {
	// FindActiveByAddressKey returns one active property with the given
	// normalized address key, or domain.ErrPropertyNotFound.
	FindActiveByAddressKey(ctx context.Context, key string) (*domain.Property, error)
}

// UserStore is the tenant lookup and mutation surface the matcher needs.
type UserStore interface {
	// ListUnassignedTenantsByAddressKey returns all active tenants with
	// the given normalized address key and no assigned landlord.
	ListUnassignedTenantsByAddressKey(ctx context.Context, key string) ([]domain.User, error)
	// Assign sets the tenant's landlord and property references if and
	// only if they are currently unset. Returns false when the tenant
	// was already assigned (a no-op, not an error).
	Assign(ctx context.Context, tenantID, landlordID, propertyID uuid.UUID) (bool, error)
}

// Failure records one tenant that could not be persisted during a
// batch assignment.
type Failure struct {
	Username string
	Err      error
}

// Report summarizes a property-side assignment run. Partial success is
// normal: each tenant is assigned independently.
type Report struct {
	Assigned []string
	Failed   []Failure
}

// Matcher runs the two assignment triggers.
type Matcher struct {
	users      UserStore
	properties PropertyStore
	logger     *slog.Logger
}

// NewMatcher creates a matcher. logger may be nil.
func NewMatcher(users UserStore, properties PropertyStore, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{users: users, properties: properties, logger: logger}
}

// AssignNewTenant runs the tenant-side trigger: look up an active
// property matching the tenant's address and, if found, assign the
// tenant to its landlord. Returns true when an assignment was made.
//
// A tenant with no complete address, or with no matching property, is
// left unassigned: the normal steady state, not an error. Tenants
// whose assignment fields are already set are never overwritten.
func (m *Matcher) AssignNewTenant(ctx context.Context, tenant *domain.User) (bool, error) {
	if !tenant.IsTenant() {
		return false, domain.ErrNotAssignable
	}
	if tenant.IsAssigned() {
		return false, nil
	}
	if tenant.Address == nil {
		return false, nil
	}

	key, err := address.Key(*tenant.Address)
	if err != nil {
		// Incomplete address: the tenant stays unassigned.
		return false, nil
	}

	property, err := m.properties.FindActiveByAddressKey(ctx, key)
	if errors.Is(err, domain.ErrPropertyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	assigned, err := m.users.Assign(ctx, tenant.ID, property.LandlordID, property.ID)
	if err != nil {
		m.logger.Error("failed to assign tenant to property",
			"tenant", tenant.Username,
			"property_id", property.ID,
			"landlord_id", property.LandlordID,
			"error", err,
		)
		return false, err
	}
	if assigned {
		tenant.AssignedLandlordID = &property.LandlordID
		tenant.AssignedPropertyID = &property.ID
		m.logger.Info("assigned new tenant to property",
			"tenant", tenant.Username,
			"property", property.FullAddress(),
		)
	}
	return assigned, nil
}

// AssignTenantsToProperty runs the property-side trigger: find all
// active unassigned tenants sharing the new property's address key and
// assign each to the property's landlord. Each tenant is independent;
// a persistence failure on one is recorded in the report and does not
// abort the rest.
func (m *Matcher) AssignTenantsToProperty(ctx context.Context, property *domain.Property) (Report, error) {
	var report Report

	tenants, err := m.users.ListUnassignedTenantsByAddressKey(ctx, property.NormalizedAddress)
	if err != nil {
		return report, err
	}

	for i := range tenants {
		tenant := &tenants[i]
		assigned, err := m.users.Assign(ctx, tenant.ID, property.LandlordID, property.ID)
		if err != nil {
			m.logger.Error("failed to assign existing tenant to property",
				"tenant", tenant.Username,
				"property_id", property.ID,
				"landlord_id", property.LandlordID,
				"error", err,
			)
			report.Failed = append(report.Failed, Failure{Username: tenant.Username, Err: err})
			continue
		}
		if !assigned {
			// Lost a race to another trigger; nothing to do.
			continue
		}
		report.Assigned = append(report.Assigned, tenant.Username)
		m.logger.Info("assigned existing tenant to property",
			"tenant", tenant.Username,
			"property", property.FullAddress(),
		)
	}

	return report, nil
}
