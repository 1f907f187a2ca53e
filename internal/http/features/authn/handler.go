package authn

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/internal/httputil"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/pkg/auth"
	"github.com/rentdesk/rentdesk/pkg/domain"
)

const dateLayout = "2006-01-02"

// Handler handles registration and login.
type Handler struct {
	logger          *slog.Logger
	registerService *auth.RegisterService
	sessionService  *auth.SessionService
	cookieConfig    httputil.CookieConfig
}

// NewHandler creates a new authentication handler.
func NewHandler(logger *slog.Logger, registerService *auth.RegisterService, sessionService *auth.SessionService) *Handler {
	return &Handler{
		logger:          logger,
		registerService: registerService,
		sessionService:  sessionService,
		cookieConfig:    httputil.DefaultCookieConfig(),
	}
}

// AddressPayload is the postal address in request bodies.
type AddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// RegisterRequest represents a signup request. Lease and address
// fields apply to tenants only.
type RegisterRequest struct {
	Username    string           `json:"username"`
	Password    string           `json:"password"`
	Role        string           `json:"role"`
	Email       *string          `json:"email,omitempty"`
	Name        *string          `json:"name,omitempty"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent,omitempty"`
	LeaseStart  *string          `json:"leaseStart,omitempty"`
	LeaseEnd    *string          `json:"leaseEnd,omitempty"`
	Address     *AddressPayload  `json:"address,omitempty"`
	UnitNumber  *string          `json:"unitNumber,omitempty"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is returned on successful register/login.
type SessionResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	Assigned    bool   `json:"assigned"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// Register handles account signup.
// POST /v1/auth/register
//
// For web clients: sets an HttpOnly cookie. For mobile clients
// (X-Client-Type: mobile): returns the token in the response body.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		httputil.Error(w, http.StatusBadRequest, "username, password and role are required")
		return
	}

	params := auth.RegisterParams{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		Email:       req.Email,
		Name:        req.Name,
		MonthlyRent: req.MonthlyRent,
		UnitNumber:  req.UnitNumber,
	}
	if req.Address != nil {
		params.Address = &domain.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		}
	}

	var err error
	if params.LeaseStart, err = parseDate(req.LeaseStart); err != nil {
		httputil.Error(w, http.StatusBadRequest, "leaseStart must be YYYY-MM-DD")
		return
	}
	if params.LeaseEnd, err = parseDate(req.LeaseEnd); err != nil {
		httputil.Error(w, http.StatusBadRequest, "leaseEnd must be YYYY-MM-DD")
		return
	}

	user, err := h.registerService.Register(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			httputil.Error(w, http.StatusConflict, "user already exists")
		case errors.Is(err, domain.ErrInvalidUsername):
			httputil.Error(w, http.StatusBadRequest, "invalid username format")
		case errors.Is(err, domain.ErrWeakPassword):
			httputil.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidRole):
			httputil.Error(w, http.StatusBadRequest, "role must be tenant or landlord")
		case errors.Is(err, domain.ErrInvalidAmount):
			httputil.Error(w, http.StatusBadRequest, "monthlyRent must not be negative")
		default:
			h.logger.Error("registration failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	if user.IsAssigned() {
		metrics.TenantsAssigned.WithLabelValues("signup").Inc()
	}

	h.respondWithSession(w, r, user, http.StatusCreated)
}

// Login handles username/password login.
// POST /v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.registerService.VerifyLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.respondWithSession(w, r, user, http.StatusOK)
}

// Logout clears the auth cookie.
// POST /v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	httputil.ClearAuthCookie(w, h.cookieConfig)
	httputil.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) respondWithSession(w http.ResponseWriter, r *http.Request, user *domain.User, status int) {
	token, err := h.sessionService.IssueAccessToken(user)
	if err != nil {
		h.logger.Error("failed to issue access token", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	resp := SessionResponse{
		Username: user.Username,
		Role:     user.Role,
		Assigned: user.IsAssigned(),
	}

	if r.Header.Get("X-Client-Type") == "mobile" {
		resp.AccessToken = token
		resp.TokenType = "Bearer"
		resp.ExpiresIn = int(h.sessionService.AccessTokenTTL().Seconds())
	} else {
		httputil.SetAuthCookie(w, token, h.sessionService.AccessTokenTTL(), h.cookieConfig)
	}

	httputil.JSON(w, status, resp)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
