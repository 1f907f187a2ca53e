package auth

import (
	"fmt"
	"unicode"

	"github.com/rentdesk/rentdesk/internal/config"
	"github.com/rentdesk/rentdesk/pkg/domain"
)

// PasswordPolicy defines password complexity requirements.
type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
	RequireSpecial   bool
}

// NewPasswordPolicy creates a PasswordPolicy from config.
func NewPasswordPolicy(cfg config.PasswordPolicyConfig) *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:        cfg.MinLength,
		RequireUppercase: cfg.RequireUppercase,
		RequireLowercase: cfg.RequireLowercase,
		RequireNumber:    cfg.RequireNumber,
		RequireSpecial:   cfg.RequireSpecial,
	}
}

// ValidatePassword checks if a password meets the policy requirements.
// Violations wrap domain.ErrWeakPassword so callers can map them to a
// client error.
func (p *PasswordPolicy) ValidatePassword(password string) error {
	if p.MinLength > 0 && len(password) < p.MinLength {
		return fmt.Errorf("%w: must be at least %d characters long", domain.ErrWeakPassword, p.MinLength)
	}
	if p.RequireUppercase && !containsClass(password, unicode.IsUpper) {
		return fmt.Errorf("%w: must contain at least one uppercase letter", domain.ErrWeakPassword)
	}
	if p.RequireLowercase && !containsClass(password, unicode.IsLower) {
		return fmt.Errorf("%w: must contain at least one lowercase letter", domain.ErrWeakPassword)
	}
	if p.RequireNumber && !containsClass(password, unicode.IsDigit) {
		return fmt.Errorf("%w: must contain at least one number", domain.ErrWeakPassword)
	}
	if p.RequireSpecial && !containsClass(password, isSpecial) {
		return fmt.Errorf("%w: must contain at least one special character", domain.ErrWeakPassword)
	}
	return nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
