package lock

import (
	"context"
	"time"
)

// Store 定义锁所依赖的键值存储契约
//
// Manager 只消费这三个原子操作，不关心存储的副本一致性或连接管理。
// 实现必须保证 SetIfAbsent 的原子性，互斥语义完全建立在它之上。
type Store interface {
	// SetIfAbsent 仅当键不存在时原子地创建键值对，返回是否创建成功
	SetIfAbsent(ctx context.Context, key, value string) (bool, error)

	// Expire 为已存在的键设置生命周期，到期后由存储自动删除
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Delete 删除键；键不存在时为 no-op，不返回错误
	Delete(ctx context.Context, key string) error
}
