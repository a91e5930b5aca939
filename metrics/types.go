// Package metrics 为 rplock 提供统一的指标收集能力。
// 基于 OpenTelemetry 标准构建，提供简洁的 Counter、Gauge、Histogram 指标接口，
// 并通过 Prometheus Exporter 暴露指标。
//
// 快速开始：
//
//	meter, err := metrics.New(&metrics.Config{
//	    Enabled:     true,
//	    ServiceName: "my-service",
//	    Port:        9090,
//	    Path:        "/metrics",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer meter.Shutdown(ctx)
//
//	counter, _ := meter.Counter("lock_acquired_total", "锁获取成功次数")
//	counter.Inc(ctx, metrics.L("key", "beer"))
package metrics

import "context"

// Counter 计数器接口，用于记录只增的累计值
type Counter interface {
	// Inc 将计数器增加 1
	Inc(ctx context.Context, labels ...Label)

	// Add 将计数器增加给定的值
	Add(ctx context.Context, val float64, labels ...Label)
}

// Gauge 仪表盘接口，用于记录可任意增减的瞬时值
type Gauge interface {
	// Set 设置当前值
	Set(ctx context.Context, val float64, labels ...Label)
}

// Histogram 直方图接口，用于记录数值分布（如耗时）
type Histogram interface {
	// Record 记录一个观测值
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标工厂接口
type Meter interface {
	Counter(name, description string) (Counter, error)
	Gauge(name, description string) (Gauge, error)
	Histogram(name, description string) (Histogram, error)

	// Shutdown 停止指标导出并释放资源
	Shutdown(ctx context.Context) error
}

// Label 指标标签
type Label struct {
	Key   string
	Value string
}

// L 创建标签的快捷函数
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}
