package refreshtokens

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dpetrovs/authgate/internal/common"
)

func TestMemory_PutFindConsume(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Put(ctx, "tok123", "alice", "project_a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Find(ctx, "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "alice" || got.ProjectID != "project_a" {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := repo.Consume(ctx, "tok123"); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if _, err := repo.Find(ctx, "tok123"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected token gone after consume, got %v", err)
	}
}

func TestMemory_Consume_Missing(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()

	err := repo.Consume(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestMemory_ConcurrentConsume_OneWinner(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
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

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}
