package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods. Card and PayPal rows are recorded as the ledger
// effect of an external checkout; manual covers checks and cash
// entered directly.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
	PaymentMethodManual = "manual"
)

// Payment statuses.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// Payment is one rent payment by a tenant. Payments are append-only:
// created once, never edited or deleted.
type Payment struct {
	ID        uuid.UUID
	Username  string
	Amount    decimal.Decimal
	Method    string
	Status    string
	CreatedAt time.Time
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodManual:
		return true
	}
	return false
}
