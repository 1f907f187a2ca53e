package domain

import (
	"time"

	"github.com/google/uuid"
)

// Repair request statuses.
const (
	RepairStatusPending    = "pending"
	RepairStatusInProgress = "in progress"
	RepairStatusResolved   = "resolved"
)

// RepairRequest is a maintenance request filed by a tenant and worked
// by the tenant's landlord.
type RepairRequest struct {
	ID          uuid.UUID
	Username    string
	Description string
	Status      string
	SubmittedAt time.Time
}

// ValidRepairStatus reports whether s is a known repair status.
func ValidRepairStatus(s string) bool {
	switch s {
	case RepairStatusPending, RepairStatusInProgress, RepairStatusResolved:
		return true
	}
	return false
}
