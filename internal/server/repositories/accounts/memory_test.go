package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/server/models"
)

func TestMemory_CreateAndFind(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Account{
		Username:     "alice",
		ProjectID:    "project_a",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected generated fields, got %+v", created)
	}

	found, err := repo.Find(ctx, "alice", "project_a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" {
		t.Fatalf("unexpected account: %+v", found)
	}
}

func TestMemory_Find_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()

	_, err := repo.Find(context.Background(), "missing", "project_a")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestMemory_Create_Duplicate(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Account{Username: "alice", ProjectID: "project_a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.Create(ctx, &models.Account{Username: "alice", ProjectID: "project_a"})
	if !errors.Is(err, common.ErrDuplicateAccount) {
		t.Fatalf("want common.ErrDuplicateAccount, got %v", err)
	}
}

func TestMemory_SameUsernameAcrossProjects(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.Account{Username: "alice", ProjectID: "project_a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := repo.Create(ctx, &models.Account{Username: "alice", ProjectID: "project_b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == b.ID {
		t.Fatal("expected distinct accounts per project")
	}

	if _, err := repo.Find(ctx, "alice", "project_a"); err != nil {
		t.Fatalf("project_a lookup failed: %v", err)
	}
	if _, err := repo.Find(ctx, "alice", "project_b"); err != nil {
		t.Fatalf("project_b lookup failed: %v", err)
	}
}

func TestMemory_ConcurrentCreate_OneWinner(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository()
	ctx := context.Background()

	const workers = 16
	start := make(chan struct{})
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			<-start
			_, err := repo.Create(ctx, &models.Account{
				Username:     "alice",
				ProjectID:    "project_a",
				PasswordHash: fmt.Sprintf("hash-%d", n),
			})
			results <- err
		}(i)
	}

	close(start)
	wg.Wait()
	close(results)

	var wins, duplicates int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, common.ErrDuplicateAccount):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if duplicates != workers-1 {
		t.Fatalf("expected %d duplicates, got %d", workers-1, duplicates)
	}
}
