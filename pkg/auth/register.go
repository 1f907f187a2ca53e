package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentdesk/rentdesk/pkg/address"
	"github.com/rentdesk/rentdesk/pkg/assignment"
	"github.com/rentdesk/rentdesk/pkg/domain"
	"github.com/rentdesk/rentdesk/pkg/repository"
)

// usernameRegex: 3-30 characters, alphanumeric/underscore/hyphen,
// starting with an alphanumeric.
var usernameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,29}$`)

// ValidateUsername checks the (already lowercased) username format.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return domain.ErrInvalidUsername
	}
	return nil
}

// RegisterParams holds the signup input. Lease and address fields are
// optional; an incomplete address simply leaves the tenant unassigned.
type RegisterParams struct {
	Username    string
	Password    string
	Role        string
	Email       *string
	Name        *string
	MonthlyRent *decimal.Decimal
	LeaseStart  *time.Time
	LeaseEnd    *time.Time
	Address     *domain.Address
	UnitNumber  *string
}

// RegisterService creates accounts and runs the tenant-side assignment
// trigger for new tenants.
type RegisterService struct {
	db      *sql.DB
	users   *repository.UsersRepository
	creds   *repository.CredentialsRepository
	policy  *PasswordPolicy
	matcher *assignment.Matcher
	logger  *slog.Logger
}

// NewRegisterService creates a new registration service.
func NewRegisterService(db *sql.DB, users *repository.UsersRepository, creds *repository.CredentialsRepository, policy *PasswordPolicy, matcher *assignment.Matcher, logger *slog.Logger) *RegisterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegisterService{db: db, users: users, creds: creds, policy: policy, matcher: matcher, logger: logger}
}

// Register creates a new user with password credentials. For tenants
// with a complete address it derives the normalized address key and
// runs the auto-assignment matcher; no matching property is a normal
// outcome and the tenant stays unassigned.
func (s *RegisterService) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(p.Username))
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if s.policy != nil {
		if err := s.policy.ValidatePassword(p.Password); err != nil {
			return nil, err
		}
	}
	if p.Role != domain.RoleTenant && p.Role != domain.RoleLandlord {
		return nil, domain.ErrInvalidRole
	}
	if p.MonthlyRent != nil && p.MonthlyRent.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// Normalize the address on the write path, before persistence.
	var normalized *string
	if p.Address != nil {
		key, err := address.Key(*p.Address)
		if err == nil {
			normalized = &key
		} else if !errors.Is(err, domain.ErrIncompleteAddress) {
			return nil, err
		}
	}

	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:                uuid.New(),
		Username:          username,
		Role:              p.Role,
		Email:             p.Email,
		Name:              p.Name,
		MonthlyRent:       p.MonthlyRent,
		LeaseStart:        p.LeaseStart,
		LeaseEnd:          p.LeaseEnd,
		Address:           p.Address,
		NormalizedAddress: normalized,
		UnitNumber:        p.UnitNumber,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// Create user and credentials in a transaction. A failed credential
	// write must not leave an orphan user row holding the username.
	err = repository.Tx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.creds.SetTx(ctx, tx, &domain.UserCredentials{
			UserID:            user.ID,
			PasswordHash:      hash,
			PasswordUpdatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	if user.IsTenant() && normalized != nil {
		if _, err := s.matcher.AssignNewTenant(ctx, user); err != nil {
			// The account exists; a failed auto-assignment is recoverable
			// via the unassigned-tenant listing and manual assignment.
			s.logger.Error("auto-assignment failed during signup",
				"tenant", user.Username, "error", err)
		}
	}

	return user, nil
}

// VerifyLogin checks a username/password pair and returns the user.
func (s *RegisterService) VerifyLogin(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	creds, err := s.creds.Get(ctx, user.ID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !VerifyPassword(password, creds.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
