package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/server/models"
)

// MemoryRepository keeps refresh tokens in process memory, for development
// mode and tests. One mutex guards the map; Consume's check-and-delete runs
// under it, which is what keeps concurrent consumers to a single winner.
type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *MemoryRepository) Put(_ context.Context, token, username, projectID string, validity time.Duration) error {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = models.RefreshToken{
		Token:     token,
		Username:  username,
		ProjectID: projectID,
		ExpiresAt: now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refreshToken, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &refreshToken, nil
}

func (r *MemoryRepository) Consume(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return common.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}
