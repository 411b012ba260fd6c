// Package refreshtokens declares the server-side repository contract for
// refresh token storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dpetrovs/authgate/internal/server/models"
)

// Repository defines operations for storing, inspecting, and consuming
// refresh tokens. A token exists in the store from Put until the first
// Consume; existence is what makes it redeemable.
type Repository interface {
	// Put stores token for username/projectID with an expiry of now+validity.
	Put(ctx context.Context, token, username, projectID string, validity time.Duration) error

	// Find returns the stored record for token, or common.ErrNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Consume atomically removes token, returning common.ErrNotFound when it
	// is not present. Under concurrent calls for the same token exactly one
	// caller succeeds; the rest observe common.ErrNotFound.
	Consume(ctx context.Context, token string) error
}
