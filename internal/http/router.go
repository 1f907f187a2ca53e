package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/internal/http/features/authn"
	"github.com/rentdesk/rentdesk/internal/http/features/landlord"
	"github.com/rentdesk/rentdesk/internal/http/features/tenantportal"
	"github.com/rentdesk/rentdesk/internal/http/middleware"
	"github.com/rentdesk/rentdesk/internal/httputil"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/pkg/assignment"
	"github.com/rentdesk/rentdesk/pkg/auth"
	"github.com/rentdesk/rentdesk/pkg/domain"
	"github.com/rentdesk/rentdesk/pkg/ledger"
	"github.com/rentdesk/rentdesk/pkg/repository"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger             *slog.Logger
	RegisterService    *auth.RegisterService
	SessionService     *auth.SessionService
	BalanceService     *ledger.Service
	Matcher            *assignment.Matcher
	UsersRepo          *repository.UsersRepository
	PropertiesRepo     *repository.PropertiesRepository
	PaymentsRepo       *repository.PaymentsRepository
	RepairsRepo        *repository.RepairRequestsRepository
	RateLimitConfig    config.RateLimitConfig
	SecurityHeaders    config.SecurityHeadersConfig
	MaxRequestBodySize int64
}

// NewRouter creates a new HTTP router with all routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.SecurityHeaders))
	r.Use(middleware.RequestSizeLimit(cfg.MaxRequestBodySize))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Register authentication routes
	authHandler := authn.NewHandler(cfg.Logger, cfg.RegisterService, cfg.SessionService)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthRateLimiter(cfg.RateLimitConfig, cfg.Logger))
		r.Post("/v1/auth/register", authHandler.Register)
		r.Post("/v1/auth/login", authHandler.Login)
	})
	r.Post("/v1/auth/logout", authHandler.Logout)

	// Register tenant portal routes
	tenantHandler := tenantportal.NewHandler(
		cfg.Logger,
		cfg.UsersRepo,
		cfg.BalanceService,
		cfg.PaymentsRepo,
		cfg.RepairsRepo,
	)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.SessionService))
		r.Use(middleware.RequireRole(domain.RoleTenant))
		r.Get("/v1/tenant/balance", tenantHandler.Balance)
		r.Get("/v1/tenant/payments", tenantHandler.ListPayments)
		r.Post("/v1/tenant/payments", tenantHandler.SubmitPayment)
		r.Get("/v1/tenant/repair-requests", tenantHandler.ListRepairRequests)
		r.Post("/v1/tenant/repair-requests", tenantHandler.SubmitRepairRequest)
	})

	// Register landlord dashboard routes
	landlordHandler := landlord.NewHandler(
		cfg.Logger,
		cfg.UsersRepo,
		cfg.PropertiesRepo,
		cfg.BalanceService,
		cfg.PaymentsRepo,
		cfg.RepairsRepo,
		cfg.Matcher,
	)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.SessionService))
		r.Use(middleware.RequireRole(domain.RoleLandlord))
		r.Get("/v1/landlord/properties", landlordHandler.ListProperties)
		r.Post("/v1/landlord/properties", landlordHandler.CreateProperty)
		r.Get("/v1/landlord/tenants", landlordHandler.ListTenants)
		r.Get("/v1/landlord/tenants/balances", landlordHandler.TenantBalances)
		r.Put("/v1/landlord/tenants/{id}/lease", landlordHandler.UpdateTenantLease)
		r.Get("/v1/landlord/unassigned-tenants", landlordHandler.UnassignedTenants)
		r.Post("/v1/landlord/assign-tenant", landlordHandler.AssignTenant)
		r.Get("/v1/landlord/requests", landlordHandler.ListRequests)
		r.Post("/v1/landlord/requests/{id}/resolve", landlordHandler.ResolveRequest)
		r.Get("/v1/landlord/payments", landlordHandler.RecentPayments)
	})

	return r
}
