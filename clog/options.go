package clog

// Option Logger 初始化选项函数
type Option func(*options)

type options struct {
	namespace []string
}

// WithNamespace 创建时即附加命名空间
func WithNamespace(parts ...string) Option {
	return func(o *options) {
		o.namespace = append(o.namespace, parts...)
	}
}
