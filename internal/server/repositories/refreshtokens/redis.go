package refreshtokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/server/models"
)

const redisKeyPrefix = "refresh:"

// redisRecord is the JSON blob stored per token. The token string itself is
// the key, so it is not repeated in the value.
type redisRecord struct {
	Username  string    `json:"username"`
	ProjectID string    `json:"project_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisRepository keeps refresh tokens in Redis under a server-side TTL, so
// expired tokens disappear without a sweeper.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository constructs a repository over an existing client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Put stores the token with TTL = validity.
func (r *RedisRepository) Put(ctx context.Context, token, username, projectID string, validity time.Duration) error {
	now := time.Now()
	payload, err := json.Marshal(redisRecord{
		Username:  username,
		ProjectID: projectID,
		ExpiresAt: now.Add(validity),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("marshal refresh token: %w", err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+token, payload, validity).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Find returns the stored record for token, or common.ErrNotFound.
func (r *RedisRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	record := redisRecord{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal refresh token: %w", err)
	}

	return &models.RefreshToken{
		Token:     token,
		Username:  record.Username,
		ProjectID: record.ProjectID,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Consume removes the token with a single DEL; concurrent callers for one
// token see at most one success.
func (r *RedisRepository) Consume(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if deleted == 0 {
		return common.ErrNotFound
	}
	return nil
}
