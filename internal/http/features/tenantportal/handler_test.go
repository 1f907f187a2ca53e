package tenantportal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/internal/http/middleware"
	"github.com/rentdesk/rentdesk/pkg/domain"
	"github.com/rentdesk/rentdesk/pkg/ledger"
)

type fakeUsers struct {
	byUsername map[string]*domain.User
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeBalances struct {
	view *ledger.BalanceView
	err  error
}

func (f *fakeBalances) BalanceFor(ctx context.Context, tenant *domain.User) (*ledger.BalanceView, error) {
	return f.view, f.err
}

type fakePayments struct {
	created []domain.Payment
	listed  []domain.Payment
	err     error
}

func (f *fakePayments) Create(ctx context.Context, payment *domain.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *payment)
	return nil
}

func (f *fakePayments) ListByUsername(ctx context.Context, username string) ([]domain.Payment, error) {
	return f.listed, f.err
}

type fakeRepairs struct {
	created []domain.RepairRequest
	listed  []domain.RepairRequest
	err     error
}

func (f *fakeRepairs) Create(ctx context.Context, req *domain.RepairRequest) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *req)
	return nil
}

func (f *fakeRepairs) ListByUsername(ctx context.Context, username string) ([]domain.RepairRequest, error) {
	return f.listed, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTenant() *domain.User {
	rent := decimal.NewFromInt(1200)
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:          uuid.New(),
		Username:    "alice",
		Role:        domain.RoleTenant,
		MonthlyRent: &rent,
		LeaseStart:  &start,
		IsActive:    true,
	}
}

func authedRequest(method, path, body, username string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), middleware.UsernameKey, username)
	return r.WithContext(ctx)
}

func TestBalance(t *testing.T) {
	tenant := testTenant()
	view := &ledger.BalanceView{
		Balance:     decimal.NewFromInt(1200),
		MonthsOwed:  3,
		TotalOwed:   decimal.NewFromInt(3600),
		TotalPaid:   decimal.NewFromInt(2400),
		MonthlyRent: *tenant.MonthlyRent,
		LeaseStart:  *tenant.LeaseStart,
		NextDueDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Payments:    []domain.Payment{},
	}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{view: view},
		&fakePayments{}, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.Balance(w, authedRequest(http.MethodGet, "/v1/tenant/balance", "", "alice"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp BalanceResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("balance = %s, want 1200", resp.Balance)
	}
	if resp.MonthsOwed != 3 {
		t.Errorf("monthsOwed = %d, want 3", resp.MonthsOwed)
	}
	if resp.NextDueDate != "2025-04-01" {
		t.Errorf("nextDueDate = %q, want 2025-04-01", resp.NextDueDate)
	}
	if resp.Payments == nil {
		t.Error("payments should be an empty array, not null")
	}
}

func TestBalance_IncompleteLease(t *testing.T) {
	tenant := testTenant()
	tenant.LeaseStart = nil
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{err: domain.ErrIncompleteLease},
		&fakePayments{}, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.Balance(w, authedRequest(http.MethodGet, "/v1/tenant/balance", "", "alice"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "lease start date or monthly rent not set") {
		t.Errorf("body = %s, want incomplete lease message", w.Body.String())
	}
}

func TestBalance_UnknownUser(t *testing.T) {
	h := NewHandler(testLogger(), &fakeUsers{}, &fakeBalances{}, &fakePayments{}, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.Balance(w, authedRequest(http.MethodGet, "/v1/tenant/balance", "", "ghost"))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestBalance_MissingContext(t *testing.T) {
	h := NewHandler(testLogger(), &fakeUsers{}, &fakeBalances{}, &fakePayments{}, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.Balance(w, httptest.NewRequest(http.MethodGet, "/v1/tenant/balance", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSubmitPayment(t *testing.T) {
	tenant := testTenant()
	payments := &fakePayments{}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, payments, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.SubmitPayment(w, authedRequest(http.MethodPost, "/v1/tenant/payments",
		`{"amount": "1200.00", "method": "card"}`, "alice"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if len(payments.created) != 1 {
		t.Fatalf("created %d payments, want 1", len(payments.created))
	}
	got := payments.created[0]
	if got.Username != "alice" {
		t.Errorf("username = %q, want alice", got.Username)
	}
	if !got.Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("amount = %s, want 1200", got.Amount)
	}
	if got.Method != domain.PaymentMethodCard {
		t.Errorf("method = %q, want %q", got.Method, domain.PaymentMethodCard)
	}
	if got.Status != domain.PaymentStatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, domain.PaymentStatusCompleted)
	}
}

func TestSubmitPayment_DefaultsToManual(t *testing.T) {
	tenant := testTenant()
	payments := &fakePayments{}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, payments, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.SubmitPayment(w, authedRequest(http.MethodPost, "/v1/tenant/payments",
		`{"amount": "50"}`, "alice"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if payments.created[0].Method != domain.PaymentMethodManual {
		t.Errorf("method = %q, want %q", payments.created[0].Method, domain.PaymentMethodManual)
	}
}

func TestSubmitPayment_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero amount", `{"amount": "0"}`},
		{"negative amount", `{"amount": "-50"}`},
		{"unknown method", `{"amount": "100", "method": "barter"}`},
		{"malformed json", `{`},
	}

	tenant := testTenant()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := &fakePayments{}
			h := NewHandler(testLogger(),
				&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
				&fakeBalances{}, payments, &fakeRepairs{})

			w := httptest.NewRecorder()
			h.SubmitPayment(w, authedRequest(http.MethodPost, "/v1/tenant/payments", tt.body, "alice"))

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if len(payments.created) != 0 {
				t.Error("no payment should be recorded")
			}
		})
	}
}

func TestListPayments(t *testing.T) {
	tenant := testTenant()
	payments := &fakePayments{listed: []domain.Payment{
		{ID: uuid.New(), Username: "alice", Amount: decimal.NewFromInt(1200), Method: domain.PaymentMethodCard, Status: domain.PaymentStatusCompleted, CreatedAt: time.Now()},
		{ID: uuid.New(), Username: "alice", Amount: decimal.NewFromInt(1200), Method: domain.PaymentMethodManual, Status: domain.PaymentStatusCompleted, CreatedAt: time.Now()},
	}}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, payments, &fakeRepairs{})

	w := httptest.NewRecorder()
	h.ListPayments(w, authedRequest(http.MethodGet, "/v1/tenant/payments", "", "alice"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var got []PaymentPayload
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d payments, want 2", len(got))
	}
}

func TestSubmitRepairRequest(t *testing.T) {
	tenant := testTenant()
	repairs := &fakeRepairs{}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, &fakePayments{}, repairs)

	w := httptest.NewRecorder()
	h.SubmitRepairRequest(w, authedRequest(http.MethodPost, "/v1/tenant/repair-requests",
		`{"description": "leaking faucet"}`, "alice"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if len(repairs.created) != 1 {
		t.Fatalf("created %d requests, want 1", len(repairs.created))
	}
	got := repairs.created[0]
	if got.Description != "leaking faucet" {
		t.Errorf("description = %q, want leaking faucet", got.Description)
	}
	if got.Status != domain.RepairStatusPending {
		t.Errorf("status = %q, want %q", got.Status, domain.RepairStatusPending)
	}
}

func TestSubmitRepairRequest_EmptyDescription(t *testing.T) {
	tenant := testTenant()
	repairs := &fakeRepairs{}
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, &fakePayments{}, repairs)

	w := httptest.NewRecorder()
	h.SubmitRepairRequest(w, authedRequest(http.MethodPost, "/v1/tenant/repair-requests",
		`{"description": ""}`, "alice"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(repairs.created) != 0 {
		t.Error("no request should be filed")
	}
}

func TestListRepairRequests_StoreError(t *testing.T) {
	tenant := testTenant()
	h := NewHandler(testLogger(),
		&fakeUsers{byUsername: map[string]*domain.User{"alice": tenant}},
		&fakeBalances{}, &fakePayments{}, &fakeRepairs{err: errors.New("db down")})

	w := httptest.NewRecorder()
	h.ListRepairRequests(w, authedRequest(http.MethodGet, "/v1/tenant/repair-requests", "", "alice"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
