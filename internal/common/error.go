// Package common defines shared constants and sentinel errors used across
// client and server layers of authgate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Credential errors.
	ErrWeakCredential     = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Token lifecycle errors.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrMissingClaim   = errors.New("missing required claim")

	// Request-level auth errors.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidAuthHeader   = errors.New("invalid authorization header")
)
