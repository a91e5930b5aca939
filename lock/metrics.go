package lock

import (
	"context"
	"time"

	"github.com/ceyewan/rplock/metrics"
)

// 指标常量定义
const (
	// MetricAcquired 锁获取成功次数 (Counter)
	MetricAcquired = "lock_acquired_total"

	// MetricContended 单次尝试因锁被持有而失败的次数 (Counter)
	MetricContended = "lock_contended_total"

	// MetricExhausted 重试耗尽次数 (Counter)
	MetricExhausted = "lock_exhausted_total"

	// MetricReleased 锁释放次数 (Counter)
	MetricReleased = "lock_released_total"

	// MetricAcquireWait 从首次尝试到获取成功的等待时长 (Histogram)
	MetricAcquireWait = "lock_acquire_wait_seconds"

	// LabelName 锁名标签
	LabelName = "name"
)

// telemetry 聚合锁操作的指标记录（内部使用）
type telemetry struct {
	acquired  metrics.Counter
	contended metrics.Counter
	exhausted metrics.Counter
	released  metrics.Counter
	wait      metrics.Histogram
}

func newTelemetry(meter metrics.Meter) (*telemetry, error) {
	if meter == nil {
		meter = metrics.Discard()
	}

	var (
		t   telemetry
		err error
	)
	if t.acquired, err = meter.Counter(MetricAcquired, "Number of successful lock acquisitions"); err != nil {
		return nil, err
	}
	if t.contended, err = meter.Counter(MetricContended, "Number of attempts that found the lock held"); err != nil {
		return nil, err
	}
	if t.exhausted, err = meter.Counter(MetricExhausted, "Number of acquisitions that ran out of retries"); err != nil {
		return nil, err
	}
	if t.released, err = meter.Counter(MetricReleased, "Number of lock releases"); err != nil {
		return nil, err
	}
	if t.wait, err = meter.Histogram(MetricAcquireWait, "Wait time until successful acquisition in seconds"); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *telemetry) onAcquired(ctx context.Context, name string, wait time.Duration) {
	t.acquired.Inc(ctx, metrics.L(LabelName, name))
	t.wait.Record(ctx, wait.Seconds(), metrics.L(LabelName, name))
}

func (t *telemetry) onContended(ctx context.Context, name string) {
	t.contended.Inc(ctx, metrics.L(LabelName, name))
}

func (t *telemetry) onExhausted(ctx context.Context, name string) {
	t.exhausted.Inc(ctx, metrics.L(LabelName, name))
}

func (t *telemetry) onReleased(ctx context.Context, name string) {
	t.released.Inc(ctx, metrics.L(LabelName, name))
}
