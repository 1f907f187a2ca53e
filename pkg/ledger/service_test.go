package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/domain"
)

type fakePayments struct {
	payments []domain.Payment
	err      error
}

func (f *fakePayments) ListByUsername(ctx context.Context, username string) ([]domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Payment
	for _, p := range f.payments {
		if p.Username == username {
			out = append(out, p)
		}
	}
	return out, nil
}

func tenantWithLease(username, rent string, leaseStart time.Time) *domain.User {
	r := decimal.RequireFromString(rent)
	return &domain.User{
		Username:    username,
		Role:        domain.RoleTenant,
		MonthlyRent: &r,
		LeaseStart:  &leaseStart,
	}
}

func TestService_BalanceFor(t *testing.T) {
	payments := &fakePayments{payments: []domain.Payment{
		{Username: "tenant1", Amount: decimal.RequireFromString("1200")},
		{Username: "tenant1", Amount: decimal.RequireFromString("1200")},
		{Username: "other", Amount: decimal.RequireFromString("9999")},
	}}
	now := date(2024, time.March, 15)
	svc := NewService(payments, func() time.Time { return now })

	view, err := svc.BalanceFor(context.Background(), tenantWithLease("tenant1", "1200", date(2024, time.January, 1)))
	if err != nil {
		t.Fatalf("BalanceFor failed: %v", err)
	}

	if !view.Balance.Equal(decimal.RequireFromString("1200")) {
		t.Errorf("Balance = %s, want 1200", view.Balance)
	}
	if view.MonthsOwed != 3 {
		t.Errorf("MonthsOwed = %d, want 3", view.MonthsOwed)
	}
	if len(view.Payments) != 2 {
		t.Errorf("Payments count = %d, want 2", len(view.Payments))
	}
	if want := date(2024, time.April, 1); !view.NextDueDate.Equal(want) {
		t.Errorf("NextDueDate = %v, want %v", view.NextDueDate, want)
	}
}

func TestService_BalanceFor_IncompleteLease(t *testing.T) {
	svc := NewService(&fakePayments{}, nil)

	tests := []struct {
		name   string
		tenant *domain.User
	}{
		{
			name:   "no lease data at all",
			tenant: &domain.User{Username: "tenant1", Role: domain.RoleTenant},
		},
		{
			name: "rent without lease start",
			tenant: func() *domain.User {
				r := decimal.RequireFromString("1200")
				return &domain.User{Username: "tenant1", Role: domain.RoleTenant, MonthlyRent: &r}
			}(),
		},
		{
			name: "lease start without rent",
			tenant: func() *domain.User {
				start := date(2024, time.January, 1)
				return &domain.User{Username: "tenant1", Role: domain.RoleTenant, LeaseStart: &start}
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BalanceFor(context.Background(), tt.tenant)
			if !errors.Is(err, domain.ErrIncompleteLease) {
				t.Errorf("err = %v, want ErrIncompleteLease", err)
			}
		})
	}
}

func TestService_BalanceFor_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&fakePayments{err: storeErr}, nil)

	_, err := svc.BalanceFor(context.Background(), tenantWithLease("tenant1", "1200", date(2024, time.January, 1)))
	if !errors.Is(err, storeErr) {
		t.Errorf("err = %v, want store error propagated", err)
	}
}
