// Package lock 提供基于键值存储的分布式互斥锁。
//
// 多个独立进程通过共享存储协调对命名资源的独占访问，无需中心化的锁服务。
// 互斥性完全由存储的原子 SetIfAbsent 操作保证，进程内不做任何串行化。
//
// 获取流程：
//   - SetIfAbsent 创建锁记录（值为获取时间戳，仅用于排障，锁逻辑不解析它）
//   - 创建成功且 TTL 不为 0 时，立即调用 Expire 限定记录生命周期
//   - 记录已存在视为锁被他人持有，等待 RetryDelay 后重试，
//     总尝试次数为 RetryLimit+1；重试耗尽返回 false，不是错误
//
// 释放是无条件的幂等删除：没有持有者校验，任何知道锁名的调用方都可以释放。
// 需要防止误释放的场景应在存储侧引入 compare-and-delete 支持后再扩展。
//
// 基本使用：
//
//	conn, _ := connector.NewRedis(&connector.RedisConfig{Addr: "127.0.0.1:6379"})
//	mgr, _ := lock.NewRedis(conn, &lock.Config{TTL: 5 * time.Second})
//
//	ok, err := mgr.Acquire(ctx, "beer")
//	if err != nil {
//	    // 存储故障，重试循环已中止
//	}
//	if ok {
//	    defer mgr.Release(ctx, "beer")
//	    // 独占使用资源
//	}
package lock

import (
	"context"
	"time"

	"github.com/ceyewan/rplock/clog"
	"github.com/ceyewan/rplock/connector"
)

// Namespace 锁键的固定命名空间前缀，用于与存储中的其他键隔离。
// 最终的存储键为 "<Namespace>:<锁名>"。
const Namespace = "redis-promise-lock"

// Manager 定义分布式锁的核心行为
type Manager interface {
	// Acquire 尝试获取命名锁，带有界重试。
	//
	// 锁被他人持有不是错误：重试耗尽返回 (false, nil)。
	// 存储操作失败会立即中止重试并返回错误。
	// 上下文取消会中止重试等待，返回 ctx.Err()。
	//
	// opts 支持的选项:
	//   - WithTTL(d): 本次获取的锁超时时间，0 表示不过期
	//   - WithRetryLimit(n): 额外重试次数，总尝试次数为 n+1
	//   - WithRetryDelay(d): 重试间隔
	Acquire(ctx context.Context, name string, opts ...AcquireOption) (bool, error)

	// Release 释放命名锁。
	//
	// 删除是无条件且幂等的：不校验调用方是否为当前持有者，
	// 删除不存在的键也不是错误。
	Release(ctx context.Context, name string) error

	// ResolveOptions 将每次调用的选项与实例默认值合并并验证。
	// 纯函数，无副作用，可用于预览最终生效的选项。
	ResolveOptions(opts ...AcquireOption) (Options, error)

	// KeyFor 返回锁名对应的存储键。
	// 锁名为空时返回 ErrLockNameEmpty。确定性：相同输入返回相同结果。
	KeyFor(name string) (string, error)
}

// New 基于任意 Store 实现创建锁管理器
//
// store 为共享引用而非独占资源：Manager 不会关闭或重连它，
// 同一个 store 上可以安全地创建任意多个 Manager。
//
// cfg 为 nil 时使用内置默认值。配置验证失败会在构造期返回错误。
func New(store Store, cfg *Config, opts ...Option) (Manager, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := &options{}
	for _, o := range opts {
		o(opt)
	}
	if opt.logger == nil {
		opt.logger = clog.Default()
	}

	tel, err := newTelemetry(opt.meter)
	if err != nil {
		return nil, err
	}

	return &manager{
		store: store,
		defaults: Options{
			RetryLimit: cfg.RetryLimit,
			RetryDelay: cfg.RetryDelay,
			TTL:        cfg.TTL,
		},
		logger:    opt.logger.WithNamespace("lock"),
		telemetry: tel,
		sleep:     sleepContext,
	}, nil
}

// NewRedis 创建 Redis 后端的锁管理器
//
// 使用示例:
//
//	redisConn, _ := connector.NewRedis(redisConfig)
//	mgr, _ := lock.NewRedis(redisConn, &lock.Config{
//	    TTL:        3 * time.Second,
//	    RetryDelay: 100 * time.Millisecond,
//	}, lock.WithLogger(logger))
func NewRedis(conn connector.RedisConnector, cfg *Config, opts ...Option) (Manager, error) {
	store, err := NewRedisStore(conn)
	if err != nil {
		return nil, err
	}
	return New(store, cfg, opts...)
}

// NewEtcd 创建 Etcd 后端的锁管理器
func NewEtcd(conn connector.EtcdConnector, cfg *Config, opts ...Option) (Manager, error) {
	store, err := NewEtcdStore(conn)
	if err != nil {
		return nil, err
	}
	return New(store, cfg, opts...)
}

// sleepContext 默认的重试等待实现：可被上下文取消的定时挂起
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
