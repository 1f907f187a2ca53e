package domain

import "errors"

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrInvalidRole        = errors.New("role must be tenant or landlord")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// Ledger errors
var (
	// ErrIncompleteLease means lease start or monthly rent is unset.
	// Callers must render this distinctly from a zero balance.
	ErrIncompleteLease = errors.New("lease start date or monthly rent not set")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
)

// Address and assignment errors
var (
	// ErrIncompleteAddress means street, city, state, or zip is missing.
	ErrIncompleteAddress = errors.New("complete address required (street, city, state, zip code)")
	ErrNotAssignable     = errors.New("user is not an assignable tenant")
)

// Property errors
var (
	ErrPropertyNotFound      = errors.New("property not found")
	ErrPropertyAlreadyExists = errors.New("property already exists for this landlord")
)

// Repair request errors
var (
	ErrRequestNotFound = errors.New("repair request not found")
)
