package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

// PaymentLister loads a tenant's full payment history.
type PaymentLister interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Payment, error)
}

// BalanceView is the dashboard-facing balance for one tenant.
type BalanceView struct {
	Balance     decimal.Decimal
	MonthsOwed  int
	TotalOwed   decimal.Decimal
	TotalPaid   decimal.Decimal
	MonthlyRent decimal.Decimal
	LeaseStart  time.Time
	LeaseEnd    *time.Time
	NextDueDate time.Time
	Payments    []domain.Payment
}

// Service computes balance views from persisted records.
type Service struct {
	payments PaymentLister
	now      func() time.Time
}

// NewService creates a balance service. now may be nil, in which case
// time.Now is used.
func NewService(payments PaymentLister, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{payments: payments, now: now}
}

// BalanceFor produces the balance view for a tenant. If the tenant's
// lease start or monthly rent is unset it returns
// domain.ErrIncompleteLease; callers must surface that condition
// distinctly rather than show a zero balance.
func (s *Service) BalanceFor(ctx context.Context, tenant *domain.User) (*BalanceView, error) {
	if !tenant.HasCompleteLease() {
		return nil, domain.ErrIncompleteLease
	}

	payments, err := s.payments.ListByUsername(ctx, tenant.Username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	st := Compute(*tenant.LeaseStart, *tenant.MonthlyRent, payments, now)

	return &BalanceView{
		Balance:     st.Balance,
		MonthsOwed:  st.MonthsOwed,
		TotalOwed:   st.TotalOwed,
		TotalPaid:   st.TotalPaid,
		MonthlyRent: *tenant.MonthlyRent,
		LeaseStart:  *tenant.LeaseStart,
		LeaseEnd:    tenant.LeaseEnd,
		NextDueDate: st.NextDueDate,
		Payments:    payments,
	}, nil
}
