package metrics

import "context"

// noopMeter 是一个什么都不做的 Meter 实现（内部使用）
type noopMeter struct{}

// Discard 创建一个静默的 Meter 实例
//
// 所有指标操作都是空操作，适合测试或禁用指标的场景。
func Discard() Meter {
	return &noopMeter{}
}

func (m *noopMeter) Counter(name, description string) (Counter, error) {
	return &noopInstrument{}, nil
}

func (m *noopMeter) Gauge(name, description string) (Gauge, error) {
	return &noopInstrument{}, nil
}

func (m *noopMeter) Histogram(name, description string) (Histogram, error) {
	return &noopInstrument{}, nil
}

func (m *noopMeter) Shutdown(ctx context.Context) error {
	return nil
}

type noopInstrument struct{}

func (n *noopInstrument) Inc(ctx context.Context, labels ...Label)                  {}
func (n *noopInstrument) Add(ctx context.Context, val float64, labels ...Label)     {}
func (n *noopInstrument) Set(ctx context.Context, val float64, labels ...Label)     {}
func (n *noopInstrument) Record(ctx context.Context, val float64, labels ...Label)  {}
