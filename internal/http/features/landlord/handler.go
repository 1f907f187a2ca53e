package landlord

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/internal/http/middleware"
	"github.com/rentdesk/rentdesk/internal/httputil"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/pkg/address"
	"github.com/rentdesk/rentdesk/pkg/assignment"
	"github.com/rentdesk/rentdesk/pkg/domain"
	"github.com/rentdesk/rentdesk/pkg/ledger"
)

// UserStore is the tenant surface the landlord endpoints need.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListTenantsByLandlord(ctx context.Context, landlordID uuid.UUID) ([]domain.User, error)
	ListUnassignedTenants(ctx context.Context) ([]domain.User, error)
	CountTenantsByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
	AssignOverride(ctx context.Context, tenantID, landlordID, propertyID uuid.UUID) error
	UpdateLease(ctx context.Context, tenantID uuid.UUID, monthlyRent *decimal.Decimal, leaseStart, leaseEnd *time.Time) error
}

// PropertyStore is the property surface the landlord endpoints need.
type PropertyStore interface {
	Create(ctx context.Context, property *domain.Property) error
	GetForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*domain.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]domain.Property, error)
	ExistsForLandlord(ctx context.Context, landlordID uuid.UUID, key string) (bool, error)
}

// BalanceService computes per-tenant balance views.
type BalanceService interface {
	BalanceFor(ctx context.Context, tenant *domain.User) (*ledger.BalanceView, error)
}

// PaymentStore lists recent payments across tenants.
type PaymentStore interface {
	ListRecentForUsernames(ctx context.Context, usernames []string, limit int) ([]domain.Payment, error)
}

// RepairStore lists and updates repair requests across tenants.
type RepairStore interface {
	ListForUsernames(ctx context.Context, usernames []string, status string) ([]domain.RepairRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.RepairRequest, error)
}

// Matcher runs the property-side assignment trigger.
type Matcher interface {
	AssignTenantsToProperty(ctx context.Context, property *domain.Property) (assignment.Report, error)
}

const recentPaymentsLimit = 20

// Handler handles the landlord dashboard endpoints.
type Handler struct {
	logger     *slog.Logger
	users      UserStore
	properties PropertyStore
	balances   BalanceService
	payments   PaymentStore
	repairs    RepairStore
	matcher    Matcher
}

// NewHandler creates a new landlord handler.
func NewHandler(logger *slog.Logger, users UserStore, properties PropertyStore, balances BalanceService, payments PaymentStore, repairs RepairStore, matcher Matcher) *Handler {
	return &Handler{
		logger:     logger,
		users:      users,
		properties: properties,
		balances:   balances,
		payments:   payments,
		repairs:    repairs,
		matcher:    matcher,
	}
}

// PropertyPayload is one property in JSON responses.
type PropertyPayload struct {
	ID             uuid.UUID        `json:"id"`
	Street         string           `json:"street"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	ZipCode        string           `json:"zipCode"`
	Name           *string          `json:"propertyName,omitempty"`
	Type           string           `json:"propertyType"`
	TotalUnits     int              `json:"totalUnits"`
	AvailableUnits int              `json:"availableUnits"`
	BaseRent       *decimal.Decimal `json:"baseRent,omitempty"`
	TenantCount    int              `json:"tenantCount"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func (h *Handler) propertyPayload(ctx context.Context, p *domain.Property) PropertyPayload {
	count, err := h.users.CountTenantsByProperty(ctx, p.ID)
	if err != nil {
		h.logger.Error("failed to count tenants for property", "property_id", p.ID, "error", err)
	}
	return PropertyPayload{
		ID:             p.ID,
		Street:         p.Address.Street,
		City:           p.Address.City,
		State:          p.Address.State,
		ZipCode:        p.Address.ZipCode,
		Name:           p.Name,
		Type:           p.Type,
		TotalUnits:     p.TotalUnits,
		AvailableUnits: p.AvailableUnits,
		BaseRent:       p.BaseRent,
		TenantCount:    count,
		CreatedAt:      p.CreatedAt,
	}
}

// ListProperties returns the landlord's properties with tenant counts.
// GET /v1/landlord/properties
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	properties, err := h.properties.ListByLandlord(r.Context(), landlordID)
	if err != nil {
		h.logger.Error("failed to fetch properties", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch properties")
		return
	}

	payloads := make([]PropertyPayload, 0, len(properties))
	for i := range properties {
		payloads = append(payloads, h.propertyPayload(r.Context(), &properties[i]))
	}
	httputil.JSON(w, http.StatusOK, payloads)
}

// CreatePropertyRequest represents a new-property submission.
type CreatePropertyRequest struct {
	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zipCode"`
	} `json:"address"`
	PropertyName *string          `json:"propertyName,omitempty"`
	PropertyType string           `json:"propertyType,omitempty"`
	TotalUnits   int              `json:"totalUnits,omitempty"`
	BaseRent     *decimal.Decimal `json:"baseRent,omitempty"`
}

// CreatePropertyResponse returns the new property and the auto-assignment
// outcome: which tenants were matched and which failed to persist.
type CreatePropertyResponse struct {
	Property        PropertyPayload `json:"property"`
	AssignedTenants []string        `json:"assignedTenants"`
	FailedTenants   []string        `json:"failedTenants,omitempty"`
}

// CreateProperty adds a property and assigns any waiting tenants at the
// same address.
// POST /v1/landlord/properties
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}
	claims, _ := middleware.GetClaims(r.Context())

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	addr := domain.Address{
		Street:  req.Address.Street,
		City:    req.Address.City,
		State:   req.Address.State,
		ZipCode: req.Address.ZipCode,
	}
	key, err := address.Key(addr)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "complete address required (street, city, state, zipCode)")
		return
	}

	exists, err := h.properties.ExistsForLandlord(r.Context(), landlordID, key)
	if err != nil {
		h.logger.Error("failed to check for existing property", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	if exists {
		httputil.Error(w, http.StatusConflict, "property already exists")
		return
	}

	propertyType := req.PropertyType
	if propertyType == "" {
		propertyType = domain.PropertyTypeApartment
	}
	if !domain.ValidPropertyType(propertyType) {
		httputil.Error(w, http.StatusBadRequest, "unknown property type")
		return
	}
	totalUnits := req.TotalUnits
	if totalUnits < 1 {
		totalUnits = 1
	}

	now := time.Now()
	property := &domain.Property{
		ID:                uuid.New(),
		Address:           addr,
		NormalizedAddress: key,
		Name:              req.PropertyName,
		Type:              propertyType,
		LandlordID:        landlordID,
		LandlordUsername:  claims.Username,
		TotalUnits:        totalUnits,
		AvailableUnits:    totalUnits,
		BaseRent:          req.BaseRent,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := h.properties.Create(r.Context(), property); err != nil {
		h.logger.Error("failed to create property", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create property")
		return
	}

	// Assign any unassigned tenants already waiting at this address.
	// Per-tenant failures are reported, not fatal.
	report, err := h.matcher.AssignTenantsToProperty(r.Context(), property)
	if err != nil {
		h.logger.Error("failed to query unassigned tenants for new property",
			"property_id", property.ID, "error", err)
	}
	metrics.TenantsAssigned.WithLabelValues("property_created").Add(float64(len(report.Assigned)))
	if len(report.Failed) > 0 {
		metrics.AssignmentFailures.Add(float64(len(report.Failed)))
	}

	resp := CreatePropertyResponse{
		Property:        h.propertyPayload(r.Context(), property),
		AssignedTenants: report.Assigned,
	}
	if resp.AssignedTenants == nil {
		resp.AssignedTenants = []string{}
	}
	for _, f := range report.Failed {
		resp.FailedTenants = append(resp.FailedTenants, f.Username)
	}

	httputil.JSON(w, http.StatusCreated, resp)
}

// TenantPayload is one tenant row in listings.
type TenantPayload struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      *string   `json:"email,omitempty"`
	Address    string    `json:"address"`
	UnitNumber *string   `json:"unitNumber,omitempty"`
}

func tenantPayloads(tenants []domain.User) []TenantPayload {
	out := make([]TenantPayload, 0, len(tenants))
	for i := range tenants {
		t := &tenants[i]
		out = append(out, TenantPayload{
			ID:         t.ID,
			Username:   t.Username,
			Email:      t.Email,
			Address:    t.FullAddress(),
			UnitNumber: t.UnitNumber,
		})
	}
	return out
}

// ListTenants returns the tenants assigned to this landlord.
// GET /v1/landlord/tenants
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	tenants, err := h.users.ListTenantsByLandlord(r.Context(), landlordID)
	if err != nil {
		h.logger.Error("failed to fetch tenants", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch tenants")
		return
	}
	httputil.JSON(w, http.StatusOK, tenantPayloads(tenants))
}

// UnassignedTenants returns active tenants awaiting assignment, the
// pool for manual assignment.
// GET /v1/landlord/unassigned-tenants
func (h *Handler) UnassignedTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.users.ListUnassignedTenants(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch unassigned tenants", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch unassigned tenants")
		return
	}
	httputil.JSON(w, http.StatusOK, tenantPayloads(tenants))
}

// TenantBalanceRow is one tenant's balance in the landlord dashboard.
// Tenants with incomplete lease data carry a null balance and an error
// string instead of a misleading zero.
type TenantBalanceRow struct {
	Username    string           `json:"username"`
	Email       *string          `json:"email,omitempty"`
	Address     string           `json:"address"`
	UnitNumber  *string          `json:"unitNumber,omitempty"`
	Balance     *decimal.Decimal `json:"balance"`
	MonthlyRent decimal.Decimal  `json:"monthlyRent"`
	LeaseStart  *string          `json:"leaseStart,omitempty"`
	LeaseEnd    *string          `json:"leaseEnd,omitempty"`
	NextDueDate *string          `json:"nextDueDate,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// TenantBalances returns balances for every tenant assigned to this
// landlord. One tenant's failure does not abort the listing.
// GET /v1/landlord/tenants/balances
func (h *Handler) TenantBalances(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	tenants, err := h.users.ListTenantsByLandlord(r.Context(), landlordID)
	if err != nil {
		h.logger.Error("failed to fetch tenants", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch tenant balances")
		return
	}

	rows := make([]TenantBalanceRow, 0, len(tenants))
	for i := range tenants {
		tenant := &tenants[i]
		row := TenantBalanceRow{
			Username:   tenant.Username,
			Email:      tenant.Email,
			Address:    tenant.FullAddress(),
			UnitNumber: tenant.UnitNumber,
		}
		if tenant.MonthlyRent != nil {
			row.MonthlyRent = *tenant.MonthlyRent
		}
		if tenant.LeaseStart != nil {
			start := tenant.LeaseStart.Format("2006-01-02")
			row.LeaseStart = &start
		}
		if tenant.LeaseEnd != nil {
			end := tenant.LeaseEnd.Format("2006-01-02")
			row.LeaseEnd = &end
		}

		view, err := h.balances.BalanceFor(r.Context(), tenant)
		if err != nil {
			if errors.Is(err, domain.ErrIncompleteLease) {
				row.Error = "Lease start date or monthly rent not set."
			} else {
				h.logger.Error("failed to calculate tenant balance",
					"tenant", tenant.Username, "error", err)
				row.Error = "Failed to calculate balance."
			}
			rows = append(rows, row)
			continue
		}

		row.Balance = &view.Balance
		due := view.NextDueDate.Format("2006-01-02")
		row.NextDueDate = &due
		rows = append(rows, row)
	}

	metrics.BalanceQueries.Add(float64(len(rows)))
	httputil.JSON(w, http.StatusOK, rows)
}

// AssignTenantRequest represents a manual assignment.
type AssignTenantRequest struct {
	TenantID   uuid.UUID `json:"tenantId"`
	PropertyID uuid.UUID `json:"propertyId"`
}

// AssignTenant manually assigns a tenant to one of the landlord's
// properties, overriding any previous assignment.
// POST /v1/landlord/assign-tenant
func (h *Handler) AssignTenant(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	var req AssignTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TenantID == uuid.Nil || req.PropertyID == uuid.Nil {
		httputil.Error(w, http.StatusBadRequest, "tenantId and propertyId are required")
		return
	}

	// The landlord must own the target property.
	property, err := h.properties.GetForLandlord(r.Context(), req.PropertyID, landlordID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			httputil.Error(w, http.StatusNotFound, "tenant or property not found")
			return
		}
		h.logger.Error("failed to load property", "property_id", req.PropertyID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign tenant")
		return
	}

	tenant, err := h.users.GetByID(r.Context(), req.TenantID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "tenant or property not found")
			return
		}
		h.logger.Error("failed to load tenant", "tenant_id", req.TenantID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign tenant")
		return
	}
	if !tenant.IsTenant() {
		httputil.Error(w, http.StatusBadRequest, "invalid tenant")
		return
	}

	if err := h.users.AssignOverride(r.Context(), tenant.ID, landlordID, property.ID); err != nil {
		h.logger.Error("failed to assign tenant",
			"tenant", tenant.Username, "property_id", property.ID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign tenant")
		return
	}

	metrics.TenantsAssigned.WithLabelValues("manual").Inc()

	httputil.JSON(w, http.StatusOK, map[string]string{
		"message":  "Tenant assigned successfully",
		"tenant":   tenant.Username,
		"property": property.FullAddress(),
	})
}

// UpdateLeaseRequest represents a lease-terms update for one tenant.
type UpdateLeaseRequest struct {
	MonthlyRent *decimal.Decimal `json:"monthlyRent,omitempty"`
	LeaseStart  *string          `json:"leaseStart,omitempty"`
	LeaseEnd    *string          `json:"leaseEnd,omitempty"`
}

// UpdateTenantLease sets a tenant's rent and lease dates. Omitted
// fields keep their current values. Balance calculation needs both
// rent and a start date; either may be set here after signup.
// PUT /v1/landlord/tenants/{id}/lease
func (h *Handler) UpdateTenantLease(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	var req UpdateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MonthlyRent != nil && req.MonthlyRent.IsNegative() {
		httputil.Error(w, http.StatusBadRequest, "monthlyRent must not be negative")
		return
	}

	leaseStart, err := parseDate(req.LeaseStart)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "leaseStart must be YYYY-MM-DD")
		return
	}
	leaseEnd, err := parseDate(req.LeaseEnd)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "leaseEnd must be YYYY-MM-DD")
		return
	}

	tenant, err := h.users.GetByID(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "tenant not found")
			return
		}
		h.logger.Error("failed to load tenant", "tenant_id", tenantID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update lease")
		return
	}
	// Only the tenant's own landlord may edit their lease.
	if !tenant.IsTenant() || tenant.AssignedLandlordID == nil || *tenant.AssignedLandlordID != landlordID {
		httputil.Error(w, http.StatusNotFound, "tenant not found")
		return
	}

	// Fields omitted from the request keep their stored values.
	rent := tenant.MonthlyRent
	if req.MonthlyRent != nil {
		rent = req.MonthlyRent
	}
	if leaseStart == nil {
		leaseStart = tenant.LeaseStart
	}
	if leaseEnd == nil {
		leaseEnd = tenant.LeaseEnd
	}

	if err := h.users.UpdateLease(r.Context(), tenantID, rent, leaseStart, leaseEnd); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(w, http.StatusNotFound, "tenant not found")
			return
		}
		h.logger.Error("failed to update lease", "tenant", tenant.Username, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update lease")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"message": "Lease updated successfully",
		"tenant":  tenant.Username,
	})
}

func (h *Handler) tenantUsernames(ctx context.Context, landlordID uuid.UUID) ([]string, error) {
	tenants, err := h.users.ListTenantsByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(tenants))
	for i := range tenants {
		usernames = append(usernames, tenants[i].Username)
	}
	return usernames, nil
}

// ListRequests returns repair requests across the landlord's tenants,
// optionally filtered by status.
// GET /v1/landlord/requests?status=
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	usernames, err := h.tenantUsernames(r.Context(), landlordID)
	if err != nil {
		h.logger.Error("failed to fetch tenants", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch requests")
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && status != "all" && !domain.ValidRepairStatus(status) {
		httputil.Error(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	requests, err := h.repairs.ListForUsernames(r.Context(), usernames, status)
	if err != nil {
		h.logger.Error("failed to fetch requests", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch requests")
		return
	}

	payloads := make([]RepairPayload, 0, len(requests))
	for _, req := range requests {
		payloads = append(payloads, repairPayload(&req))
	}
	httputil.JSON(w, http.StatusOK, payloads)
}

// RepairPayload is one repair request in JSON responses.
type RepairPayload struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func repairPayload(req *domain.RepairRequest) RepairPayload {
	return RepairPayload{
		ID:          req.ID,
		Username:    req.Username,
		Description: req.Description,
		Status:      req.Status,
		SubmittedAt: req.SubmittedAt,
	}
}

// ResolveRequest marks a repair request resolved.
// POST /v1/landlord/requests/{id}/resolve
func (h *Handler) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := h.repairs.UpdateStatus(r.Context(), id, domain.RepairStatusResolved)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			httputil.Error(w, http.StatusNotFound, "repair request not found")
			return
		}
		h.logger.Error("failed to update request", "request_id", id, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to update request")
		return
	}
	httputil.JSON(w, http.StatusOK, repairPayload(request))
}

// RecentPayments returns the latest payments across the landlord's
// tenants.
// GET /v1/landlord/payments
func (h *Handler) RecentPayments(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	usernames, err := h.tenantUsernames(r.Context(), landlordID)
	if err != nil {
		h.logger.Error("failed to fetch tenants", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}

	payments, err := h.payments.ListRecentForUsernames(r.Context(), usernames, recentPaymentsLimit)
	if err != nil {
		h.logger.Error("failed to fetch payments", "landlord_id", landlordID, "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}

	payloads := make([]PaymentPayload, 0, len(payments))
	for _, p := range payments {
		payloads = append(payloads, PaymentPayload{
			ID:       p.ID,
			Username: p.Username,
			Amount:   p.Amount,
			Method:   p.Method,
			Status:   p.Status,
			Date:     p.CreatedAt,
		})
	}
	httputil.JSON(w, http.StatusOK, payloads)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
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
