package lock

import (
	"context"
	"time"

	"github.com/ceyewan/rplock/clog"
)

// manager Manager 的标准实现（内部使用）
//
// 除 store 引用和已解析的默认选项外没有任何状态：
// 不持有互斥量，不在进程内做任何串行化，互斥性完全由存储保证。
type manager struct {
	store     Store
	defaults  Options
	logger    clog.Logger
	telemetry *telemetry

	// sleep 重试等待函数，测试中可替换为零延迟或模拟时钟
	sleep func(ctx context.Context, d time.Duration) error
}

func (m *manager) Acquire(ctx context.Context, name string, opts ...AcquireOption) (bool, error) {
	o, err := m.ResolveOptions(opts...)
	if err != nil {
		return false, err
	}
	key, err := m.KeyFor(name)
	if err != nil {
		return false, err
	}

	// 锁记录的值为获取时间戳，仅用于排障，锁逻辑从不解析它
	payload := time.Now().UTC().Format(time.RFC3339Nano)

	start := time.Now()
	attempts := o.RetryLimit + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := m.sleep(ctx, o.RetryDelay); err != nil {
				return false, err
			}
		}

		acquired, err := m.tryAcquire(ctx, key, payload, o.TTL)
		if err != nil {
			return false, err
		}
		if acquired {
			m.telemetry.onAcquired(ctx, name, time.Since(start))
			m.logger.DebugContext(ctx, "lock acquired",
				clog.String("key", key),
				clog.Int("attempt", attempt),
				clog.Duration("ttl", o.TTL))
			return true, nil
		}

		m.telemetry.onContended(ctx, name)
	}

	// 重试耗尽是正常结果而不是错误
	m.telemetry.onExhausted(ctx, name)
	m.logger.DebugContext(ctx, "lock attempts exhausted",
		clog.String("key", key),
		clog.Int("attempts", attempts))
	return false, nil
}

// tryAcquire 执行单次获取尝试
//
// 仅当本次调用创建了锁记录且 TTL 不为 0 时才设置过期时间。
// 键已存在时绝不能触碰过期时间：否则新的竞争者会悄悄延长
// 他人持有的锁，破坏"锁在首次获取 ttl 秒后过期"的保证。
func (m *manager) tryAcquire(ctx context.Context, key, payload string, ttl time.Duration) (bool, error) {
	created, err := m.store.SetIfAbsent(ctx, key, payload)
	if err != nil {
		return false, storeError("set if absent", err)
	}
	if !created {
		return false, nil
	}

	if ttl != 0 {
		if err := m.store.Expire(ctx, key, ttl); err != nil {
			return false, storeError("expire", err)
		}
	}
	return true, nil
}

func (m *manager) Release(ctx context.Context, name string) error {
	key, err := m.KeyFor(name)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, key); err != nil {
		return storeError("delete", err)
	}

	m.telemetry.onReleased(ctx, name)
	m.logger.DebugContext(ctx, "lock released", clog.String("key", key))
	return nil
}

func (m *manager) ResolveOptions(opts ...AcquireOption) (Options, error) {
	o := m.defaults
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (m *manager) KeyFor(name string) (string, error) {
	if name == "" {
		return "", ErrLockNameEmpty
	}
	return Namespace + ":" + name, nil
}
