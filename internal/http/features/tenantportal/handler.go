package tenantportal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/internal/http/middleware"
	"github.com/rentdesk/rentdesk/internal/httputil"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/pkg/domain"
	"github.com/rentdesk/rentdesk/pkg/ledger"
)

// UserGetter loads the authenticated tenant's record.
type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BalanceService computes the tenant's balance view.
type BalanceService interface {
	BalanceFor(ctx context.Context, tenant *domain.User) (*ledger.BalanceView, error)
}

// PaymentStore records and lists the tenant's payments.
type PaymentStore interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByUsername(ctx context.Context, username string) ([]domain.Payment, error)
}

// RepairStore files and lists the tenant's repair requests.
type RepairStore interface {
	Create(ctx context.Context, req *domain.RepairRequest) error
	ListByUsername(ctx context.Context, username string) ([]domain.RepairRequest, error)
}

// Handler handles the tenant portal endpoints.
type Handler struct {
	logger   *slog.Logger
	users    UserGetter
	balances BalanceService
	payments PaymentStore
	repairs  RepairStore
}

// NewHandler creates a new tenant portal handler.
func NewHandler(logger *slog.Logger, users UserGetter, balances BalanceService, payments PaymentStore, repairs RepairStore) *Handler {
	return &Handler{
		logger:   logger,
		users:    users,
		balances: balances,
		payments: payments,
		repairs:  repairs,
	}
}

// BalanceResponse is the tenant-facing balance view.
type BalanceResponse struct {
	Balance     decimal.Decimal  `json:"balance"`
	MonthsOwed  int              `json:"monthsOwed"`
	TotalOwed   decimal.Decimal  `json:"totalOwed"`
	TotalPaid   decimal.Decimal  `json:"totalPaid"`
	MonthlyRent decimal.Decimal  `json:"monthlyRent"`
	LeaseStart  string           `json:"leaseStart"`
	LeaseEnd    *string          `json:"leaseEnd,omitempty"`
	NextDueDate string           `json:"nextDueDate"`
	Payments    []PaymentPayload `json:"payments"`
}

// PaymentPayload is one payment in JSON responses.
type PaymentPayload struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
	Status   string          `json:"status"`
	Date     time.Time       `json:"date"`
}

// RepairPayload is one repair request in JSON responses.
type RepairPayload struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func paymentPayloads(payments []domain.Payment) []PaymentPayload {
	out := make([]PaymentPayload, 0, len(payments))
	for _, p := range payments {
		out = append(out, PaymentPayload{
			ID:       p.ID,
			Username: p.Username,
			Amount:   p.Amount,
			Method:   p.Method,
			Status:   p.Status,
			Date:     p.CreatedAt,
		})
	}
	return out
}

func (h *Handler) tenant(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return nil, false
	}
	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusUnauthorized, "unknown user")
			return nil, false
		}
		h.logger.Error("failed to load tenant", "username", username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to load user")
		return nil, false
	}
	return user, true
}

// Balance returns the tenant's current rent balance and due date.
// GET /v1/tenant/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.tenant(w, r)
	if !ok {
		return
	}

	view, err := h.balances.BalanceFor(r.Context(), tenant)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteLease) {
			// Distinct from a zero balance: the lease data is missing.
			httputil.Error(w, http.StatusBadRequest, "lease start date or monthly rent not set")
			return
		}
		h.logger.Error("failed to calculate balance", "username", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to calculate balance")
		return
	}

	metrics.BalanceQueries.Inc()

	resp := BalanceResponse{
		Balance:     view.Balance,
		MonthsOwed:  view.MonthsOwed,
		TotalOwed:   view.TotalOwed,
		TotalPaid:   view.TotalPaid,
		MonthlyRent: view.MonthlyRent,
		LeaseStart:  view.LeaseStart.Format("2006-01-02"),
		NextDueDate: view.NextDueDate.Format("2006-01-02"),
		Payments:    paymentPayloads(view.Payments),
	}
	if view.LeaseEnd != nil {
		end := view.LeaseEnd.Format("2006-01-02")
		resp.LeaseEnd = &end
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// PaymentRequest represents a payment submission. Method defaults to
// manual; card and paypal rows record the ledger effect of an external
// checkout.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
}

// SubmitPayment records a rent payment.
// POST /v1/tenant/payments
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.tenant(w, r)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Amount.IsPositive() {
		httputil.Error(w, http.StatusBadRequest, "payment amount must be positive")
		return
	}
	method := req.Method
	if method == "" {
		method = domain.PaymentMethodManual
	}
	if !domain.ValidPaymentMethod(method) {
		httputil.Error(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		Username:  tenant.Username,
		Amount:    req.Amount,
		Method:    method,
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: time.Now(),
	}
	if err := h.payments.Create(r.Context(), payment); err != nil {
		h.logger.Error("failed to record payment", "username", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to submit payment")
		return
	}

	metrics.PaymentsRecorded.WithLabelValues(method).Inc()

	httputil.JSON(w, http.StatusCreated, paymentPayloads([]domain.Payment{*payment})[0])
}

// ListPayments returns the tenant's payment history, newest first.
// GET /v1/tenant/payments
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.tenant(w, r)
	if !ok {
		return
	}

	payments, err := h.payments.ListByUsername(r.Context(), tenant.Username)
	if err != nil {
		h.logger.Error("failed to fetch payments", "username", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}

	httputil.JSON(w, http.StatusOK, paymentPayloads(payments))
}

// RepairRequestBody represents a repair request submission.
type RepairRequestBody struct {
	Description string `json:"description"`
}

// SubmitRepairRequest files a repair request.
// POST /v1/tenant/repair-requests
func (h *Handler) SubmitRepairRequest(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.tenant(w, r)
	if !ok {
		return
	}

	var req RepairRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Description == "" {
		httputil.Error(w, http.StatusBadRequest, "description is required")
		return
	}

	repair := &domain.RepairRequest{
		ID:          uuid.New(),
		Username:    tenant.Username,
		Description: req.Description,
		Status:      domain.RepairStatusPending,
		SubmittedAt: time.Now(),
	}
	if err := h.repairs.Create(r.Context(), repair); err != nil {
		h.logger.Error("failed to submit repair request", "username", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to submit repair request")
		return
	}

	httputil.JSON(w, http.StatusCreated, RepairPayload{
		ID:          repair.ID,
		Username:    repair.Username,
		Description: repair.Description,
		Status:      repair.Status,
		SubmittedAt: repair.SubmittedAt,
	})
}

// ListRepairRequests returns the tenant's repair requests, newest first.
// GET /v1/tenant/repair-requests
func (h *Handler) ListRepairRequests(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.tenant(w, r)
	if !ok {
		return
	}

	requests, err := h.repairs.ListByUsername(r.Context(), tenant.Username)
	if err != nil {
		h.logger.Error("failed to fetch repair requests", "username", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch repair requests")
		return
	}

	payloads := make([]RepairPayload, 0, len(requests))
	for _, req := range requests {
		payloads = append(payloads, RepairPayload{
			ID:          req.ID,
			Username:    req.Username,
			Description: req.Description,
			Status:      req.Status,
			SubmittedAt: req.SubmittedAt,
		})
	}
	httputil.JSON(w, http.StatusOK, payloads)
}
