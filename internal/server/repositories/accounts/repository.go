// Package accounts declares the server-side repository contract for account
// storage.
package accounts

import (
	"context"

	"github.com/dpetrovs/authgate/internal/server/models"
)

// Repository defines operations over stored accounts.
//
// Implementations enforce the (username, project) uniqueness invariant
// atomically inside Create; callers never pre-check for duplicates.
type Repository interface {
	// Create persists a new account and fills in its generated fields. When
	// an account with the same username already exists in the project, it
	// returns common.ErrDuplicateAccount.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// Find returns the account for username within projectID, or
	// common.ErrNotFound when there is none.
	Find(ctx context.Context, username, projectID string) (*models.Account, error)
}
