package lock

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // 零值表示不过期
}

// memoryStore 内存 Store 实现（非导出，仅用于单机和测试）
//
// 过期采用惰性清理：在每次访问键时检查并移除已过期的记录。
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore 创建进程内 Store
//
// 仅在单进程内提供互斥，适合测试和示例；跨进程场景请使用
// Redis 或 Etcd 后端。
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (ms *memoryStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.purgeLocked(key, time.Now())
	if _, ok := ms.entries[key]; ok {
		return false, nil
	}

	ms.entries[key] = memoryEntry{value: value}
	return true, nil
}

func (ms *memoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	ms.purgeLocked(key, now)
	entry, ok := ms.entries[key]
	if !ok {
		return nil
	}

	entry.expiresAt = now.Add(ttl)
	ms.entries[key] = entry
	return nil
}

func (ms *memoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	delete(ms.entries, key)
	ms.mu.Unlock()
	return nil
}

// purgeLocked 移除已过期的记录，调用方必须持有 ms.mu
func (ms *memoryStore) purgeLocked(key string, now time.Time) {
	if entry, ok := ms.entries[key]; ok {
		if !entry.expiresAt.IsZero() && entry.expiresAt.Before(now) {
			delete(ms.entries, key)
		}
	}
}
