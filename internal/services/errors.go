package services

import "errors"

var (
	// ErrNotFound means an identifier resolves to no entity the caller is
	// allowed to know about.
	ErrNotFound = errors.New("resource not found")

	// ErrOwnershipViolation means the entity exists but its ownership
	// chain does not terminate at the authenticated user.
	ErrOwnershipViolation = errors.New("resource does not belong to the authenticated user")

	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAuthenticationMismatch means an authenticated principal carries
	// no resolvable user mapping. Upstream authentication should make
	// this impossible; the check is defensive.
	ErrAuthenticationMismatch = errors.New("principal resolves to no user")

	ErrValidation = errors.New("invalid request")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)
