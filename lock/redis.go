package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/rplock/connector"
)

// redisStore Redis 后端的 Store 实现（内部使用）
//
// SetIfAbsent 映射为 SETNX，不附带过期时间：过期由独立的 Expire
// 调用设置，与存储契约的两步结构保持一致。
type redisStore struct {
	client *redis.Client
}

// NewRedisStore 基于 Redis 连接器创建 Store
//
// Store 仅借用连接器的客户端，不负责其生命周期。
func NewRedisStore(conn connector.RedisConnector) (Store, error) {
	if conn == nil {
		return nil, ErrConnectorNil
	}
	return &redisStore{client: conn.GetClient()}, nil
}

func (s *redisStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	return s.client.SetNX(ctx, key, value, 0).Result()
}

func (s *redisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	// DEL 不存在的键返回 0，不是错误
	return s.client.Del(ctx, key).Err()
}
