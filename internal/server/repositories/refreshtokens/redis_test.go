package refreshtokens

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dpetrovs/authgate/internal/common"
)

func newRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client), mr
}

func TestRedis_PutAndFind(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "tok123", "alice", "project_a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Find(ctx, "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Token != "tok123" || got.Username != "alice" || got.ProjectID != "project_a" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.ExpiresAt.Before(time.Now().Add(50 * time.Minute)) {
		t.Fatalf("expected expiry about an hour out, got %v", got.ExpiresAt)
	}
}

func TestRedis_Put_SetsTTL(t *testing.T) {
	repo, mr := newRedisRepo(t)

	if err := repo.Put(context.Background(), "tok123", "alice", "project_a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ttl := mr.TTL(redisKeyPrefix + "tok123")
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("expected TTL within (0, 1h], got %v", ttl)
	}
}

func TestRedis_Find_NotFound(t *testing.T) {
	repo, _ := newRedisRepo(t)

	_, err := repo.Find(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestRedis_Find_AfterExpiry(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "tok123", "alice", "project_a", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := repo.Find(ctx, "tok123")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound after expiry, got %v", err)
	}
}

func TestRedis_Consume_RemovesToken(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "tok123", "alice", "project_a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Consume(ctx, "tok123"); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if _, err := repo.Find(ctx, "tok123"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected token gone after consume, got %v", err)
	}
	if err := repo.Consume(ctx, "tok123"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound on second consume, got %v", err)
	}
}

func TestRedis_Consume_Missing(t *testing.T) {
	repo, _ := newRedisRepo(t)

	err := repo.Consume(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestRedis_ConcurrentConsume_OneWinner(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "tok123", "alice", "project_a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 16
	start := make(chan struct{})
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- repo.Consume(ctx, "tok123")
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	var wins, misses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, common.ErrNotFound):
			misses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if misses != workers-1 {
		t.Fatalf("expected %d misses, got %d", workers-1, misses)
	}
}
