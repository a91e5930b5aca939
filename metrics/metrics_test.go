package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNewDisabled(t *testing.T) {
	meter, err := New(&Config{Enabled: false})
	require.NoError(t, err)

	// 禁用时返回 noop 实现，所有操作安全
	counter, err := meter.Counter("noop_total", "noop")
	require.NoError(t, err)
	counter.Inc(context.Background(), L("k", "v"))
	require.NoError(t, meter.Shutdown(context.Background()))
}

func TestMeterInstruments(t *testing.T) {
	meter, err := New(&Config{Enabled: true, ServiceName: "test"})
	require.NoError(t, err)
	defer meter.Shutdown(context.Background())

	ctx := context.Background()

	counter, err := meter.Counter("test_counter_total", "测试计数器")
	require.NoError(t, err)
	counter.Inc(ctx)
	counter.Add(ctx, 2, L("key", "beer"))

	gauge, err := meter.Gauge("test_gauge", "测试仪表盘")
	require.NoError(t, err)
	gauge.Set(ctx, 42)

	histogram, err := meter.Histogram("test_histogram_seconds", "测试直方图")
	require.NoError(t, err)
	histogram.Record(ctx, 0.1, L("op", "acquire"))
}

func TestDiscard(t *testing.T) {
	meter := Discard()
	counter, err := meter.Counter("x", "y")
	require.NoError(t, err)
	counter.Inc(context.Background())
	assert.NoError(t, meter.Shutdown(context.Background()))
}
