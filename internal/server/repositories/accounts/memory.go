package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/server/models"
)

type accountKey struct {
	projectID string
	username  string
}

// MemoryRepository keeps accounts in process memory, for development mode
// and tests. The mutex makes the exists-check and insert in Create a single
// atomic step.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[accountKey]models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[accountKey]models.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	key := accountKey{projectID: account.ProjectID, username: account.Username}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[key]; exists {
		return nil, common.ErrDuplicateAccount
	}

	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	r.accounts[key] = *account

	return account, nil
}

func (r *MemoryRepository) Find(_ context.Context, username, projectID string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountKey{projectID: projectID, username: username}]
	if !ok {
		return nil, common.ErrNotFound
	}

	return &account, nil
}
