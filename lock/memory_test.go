package lock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_SetIfAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.SetIfAbsent(ctx, "k", "v1")
	if err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if !created {
		t.Fatal("expected first SetIfAbsent to create the key")
	}

	created, err = store.SetIfAbsent(ctx, "k", "v2")
	if err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if created {
		t.Fatal("expected second SetIfAbsent to report the key as existing")
	}
}

func TestMemoryStore_DeleteAllowsReacquire(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.SetIfAbsent(ctx, "k", "v"); err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// 删除不存在的键也应成功
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("repeated Delete failed: %v", err)
	}

	created, err := store.SetIfAbsent(ctx, "k", "v")
	if err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if !created {
		t.Fatal("expected SetIfAbsent to succeed after Delete")
	}
}

func TestMemoryStore_Expire(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.SetIfAbsent(ctx, "k", "v"); err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if err := store.Expire(ctx, "k", 20*time.Millisecond); err != nil {
		t.Fatalf("Expire failed: %v", err)
	}

	// 过期前仍被占用
	created, _ := store.SetIfAbsent(ctx, "k", "v2")
	if created {
		t.Fatal("key should still exist before the ttl elapses")
	}

	time.Sleep(40 * time.Millisecond)

	created, err := store.SetIfAbsent(ctx, "k", "v2")
	if err != nil {
		t.Fatalf("SetIfAbsent failed: %v", err)
	}
	if !created {
		t.Fatal("expected expired key to be reclaimable")
	}
}

func TestMemoryStore_ExpireAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Expire(context.Background(), "missing", time.Second); err != nil {
		t.Fatalf("Expire on absent key should be a no-op, got: %v", err)
	}
}

func TestMemoryStore_ContextCanceled(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.SetIfAbsent(ctx, "k", "v"); err != context.Canceled {
		t.Errorf("SetIfAbsent: expected context.Canceled, got: %v", err)
	}
	if err := store.Expire(ctx, "k", time.Second); err != context.Canceled {
		t.Errorf("Expire: expected context.Canceled, got: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != context.Canceled {
		t.Errorf("Delete: expected context.Canceled, got: %v", err)
	}
}

// 并发场景：同一把锁只能被一个协程获取
func TestMemoryStore_MutualExclusion(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			created, err := store.SetIfAbsent(ctx, "contested", fmt.Sprintf("holder-%d", id))
			if err != nil {
				t.Errorf("SetIfAbsent failed: %v", err)
				return
			}
			if created {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
}
