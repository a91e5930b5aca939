package metrics

// Option Meter 初始化选项函数
type Option func(*options)

type options struct {
	labels []Label
}

// WithLabels 附加到 Resource 上的固定标签
func WithLabels(labels ...Label) Option {
	return func(o *options) {
		o.labels = append(o.labels, labels...)
	}
}
