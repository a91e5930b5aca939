package lock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/ceyewan/rplock/lock"
	"github.com/ceyewan/rplock/testkit"
)

// ============================================================================
// Helper Functions
// ============================================================================

func newRedisManager(t *testing.T) lock.Manager {
	t.Helper()

	conn := testkit.GetRedisConnector(t)
	mgr, err := lock.NewRedis(conn, &lock.Config{
		RetryLimit: 3,
		RetryDelay: 50 * time.Millisecond,
		TTL:        10 * time.Second,
	}, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create redis manager: %v", err)
	}
	return mgr
}

func newEtcdManager(t *testing.T) lock.Manager {
	t.Helper()

	conn := testkit.GetEtcdConnector(t)
	mgr, err := lock.NewEtcd(conn, &lock.Config{
		RetryLimit: 3,
		RetryDelay: 50 * time.Millisecond,
		TTL:        10 * time.Second,
	}, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create etcd manager: %v", err)
	}
	return mgr
}

// ============================================================================
// Redis 集成测试
// ============================================================================

func TestRedisManager_AcquireRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	mgr := newRedisManager(t)
	name := "it-" + testkit.NewID()

	ok, err := mgr.Acquire(ctx, name)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !ok {
		t.Fatal("expected Acquire to succeed")
	}

	if err := mgr.Release(ctx, name); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	// 释放后应可再次获取
	ok, err = mgr.Acquire(ctx, name)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	if !ok {
		t.Fatal("expected Acquire to succeed after release")
	}
	_ = mgr.Release(ctx, name)
}

func TestRedisManager_Contention(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	conn := testkit.GetRedisConnector(t)
	cfg := &lock.Config{RetryLimit: 2, RetryDelay: 20 * time.Millisecond, TTL: 10 * time.Second}

	mgr1, err := lock.NewRedis(conn, cfg, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create manager 1: %v", err)
	}
	mgr2, err := lock.NewRedis(conn, cfg, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create manager 2: %v", err)
	}

	name := "it-" + testkit.NewID()

	ok, err := mgr1.Acquire(ctx, name)
	if err != nil || !ok {
		t.Fatalf("mgr1 Acquire = (%v, %v), want (true, nil)", ok, err)
	}

	// mgr2 重试耗尽后返回 false，不报错
	ok, err = mgr2.Acquire(ctx, name)
	if err != nil {
		t.Fatalf("mgr2 Acquire returned error: %v", err)
	}
	if ok {
		t.Fatal("expected mgr2 Acquire to fail while mgr1 holds the lock")
	}

	if err := mgr1.Release(ctx, name); err != nil {
		t.Fatalf("mgr1 Release failed: %v", err)
	}

	ok, err = mgr2.Acquire(ctx, name)
	if err != nil || !ok {
		t.Fatalf("mgr2 Acquire after release = (%v, %v), want (true, nil)", ok, err)
	}
	_ = mgr2.Release(ctx, name)
}

func TestRedisManager_TTLExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	mgr := newRedisManager(t)
	name := "it-" + testkit.NewID()

	ok, err := mgr.Acquire(ctx, name, lock.WithTTL(time.Second))
	if err != nil || !ok {
		t.Fatalf("Acquire = (%v, %v), want (true, nil)", ok, err)
	}

	time.Sleep(1500 * time.Millisecond)

	// TTL 到期后锁自动失效，可再次获取
	ok, err = mgr.Acquire(ctx, name, lock.WithRetryLimit(1), lock.WithRetryDelay(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Acquire after expiry failed: %v", err)
	}
	if !ok {
		t.Fatal("expected lock to be reclaimable after ttl expiry")
	}
	_ = mgr.Release(ctx, name)
}

func TestRedisManager_MutualExclusion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 60*time.Second)
	defer cancel()

	conn := testkit.GetRedisConnector(t)
	name := "it-" + testkit.NewID()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		max     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			mgr, err := lock.NewRedis(conn, &lock.Config{
				RetryLimit: 50,
				RetryDelay: 20 * time.Millisecond,
				TTL:        10 * time.Second,
			}, lock.WithLogger(testkit.NewLogger()))
			if err != nil {
				t.Errorf("failed to create manager: %v", err)
				return
			}

			ok, err := mgr.Acquire(ctx, name)
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			if !ok {
				return
			}

			mu.Lock()
			holders++
			if holders > max {
				max = holders
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()

			if err := mgr.Release(ctx, name); err != nil {
				t.Errorf("Release failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if max > 1 {
		t.Errorf("concurrent holders = %d, want at most 1", max)
	}
}

// ============================================================================
// Etcd 集成测试
// ============================================================================

func TestEtcdManager_AcquireRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	mgr := newEtcdManager(t)
	name := "it-" + testkit.NewID()

	ok, err := mgr.Acquire(ctx, name)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !ok {
		t.Fatal("expected Acquire to succeed")
	}

	if err := mgr.Release(ctx, name); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	ok, err = mgr.Acquire(ctx, name)
	if err != nil || !ok {
		t.Fatalf("Acquire after release = (%v, %v), want (true, nil)", ok, err)
	}
	_ = mgr.Release(ctx, name)
}

func TestEtcdManager_Contention(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	conn := testkit.GetEtcdConnector(t)
	cfg := &lock.Config{RetryLimit: 2, RetryDelay: 20 * time.Millisecond, TTL: 10 * time.Second}

	mgr1, err := lock.NewEtcd(conn, cfg, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create manager 1: %v", err)
	}
	mgr2, err := lock.NewEtcd(conn, cfg, lock.WithLogger(testkit.NewLogger()))
	if err != nil {
		t.Fatalf("failed to create manager 2: %v", err)
	}

	name := "it-" + testkit.NewID()

	ok, err := mgr1.Acquire(ctx, name)
	if err != nil || !ok {
		t.Fatalf("mgr1 Acquire = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = mgr2.Acquire(ctx, name)
	if err != nil {
		t.Fatalf("mgr2 Acquire returned error: %v", err)
	}
	if ok {
		t.Fatal("expected mgr2 Acquire to fail while mgr1 holds the lock")
	}

	if err := mgr1.Release(ctx, name); err != nil {
		t.Fatalf("mgr1 Release failed: %v", err)
	}

	ok, err = mgr2.Acquire(ctx, name)
	if err != nil || !ok {
		t.Fatalf("mgr2 Acquire after release = (%v, %v), want (true, nil)", ok, err)
	}
	_ = mgr2.Release(ctx, name)
}

func TestEtcdManager_TTLExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := testkit.NewContext(t, 30*time.Second)
	defer cancel()

	mgr := newEtcdManager(t)
	name := "it-" + testkit.NewID()

	ok, err := mgr.Acquire(ctx, name, lock.WithTTL(time.Second))
	if err != nil || !ok {
		t.Fatalf("Acquire = (%v, %v), want (true, nil)", ok, err)
	}

	// 租约粒度为秒，多等一会确保键已被回收
	time.Sleep(2500 * time.Millisecond)

	ok, err = mgr.Acquire(ctx, name, lock.WithRetryLimit(1), lock.WithRetryDelay(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Acquire after expiry failed: %v", err)
	}
	if !ok {
		t.Fatal("expected lock to be reclaimable after lease expiry")
	}
	_ = mgr.Release(ctx, name)
}
