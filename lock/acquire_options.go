package lock

import "time"

// Options 单次获取操作的完整选项集
//
// 由实例默认值与调用方显式提供的选项合并而来，合并后不可变。
type Options struct {
	RetryLimit int
	RetryDelay time.Duration
	TTL        time.Duration
}

// validate 按字段验证选项取值范围
func (o Options) validate() error {
	if o.RetryLimit <= 0 {
		return invalidOption("retryLimit", "must be a positive integer")
	}
	if o.RetryDelay <= 0 {
		return invalidOption("retryDelay", "must be a positive duration")
	}
	if o.TTL < 0 {
		return invalidOption("ttl", "must not be negative")
	}
	return nil
}

// AcquireOption 单次获取操作的选项函数
type AcquireOption func(*Options)

// WithTTL 设置本次获取的锁生命周期
//
// 显式传 0 表示锁不过期（与"未设置"不同，不会回退到默认值），
// 此时锁会一直存在直到显式 Release。
func WithTTL(d time.Duration) AcquireOption {
	return func(o *Options) {
		o.TTL = d
	}
}

// WithRetryLimit 设置本次获取的额外重试次数
func WithRetryLimit(n int) AcquireOption {
	return func(o *Options) {
		o.RetryLimit = n
	}
}

// WithRetryDelay 设置本次获取的重试间隔
func WithRetryDelay(d time.Duration) AcquireOption {
	return func(o *Options) {
		o.RetryDelay = d
	}
}
