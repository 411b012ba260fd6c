package models

import "time"

// RefreshToken is a stored refresh token. Presence in the store is what makes
// the token redeemable; ExpiresAt mirrors the embedded exp claim so operators
// can prune dead rows.
type RefreshToken struct {
	Token     string
	Username  string
	ProjectID string
	ExpiresAt time.Time
	CreatedAt time.Time
}
