package lock

import "time"

// 内置默认值
const (
	DefaultRetryLimit = 10
	DefaultRetryDelay = 100 * time.Millisecond
	DefaultTTL        = 3 * time.Second
)

// Config 组件静态配置，作为实例级默认值
//
// 零值字段会回退到内置默认值；负值视为配置错误。
// 实例级默认可被每次 Acquire 调用的选项覆盖。
type Config struct {
	// RetryLimit 获取失败后的额外重试次数，总尝试次数为 RetryLimit+1 (默认: 10)
	RetryLimit int `json:"retry_limit" yaml:"retry_limit" mapstructure:"retry_limit"`

	// RetryDelay 两次尝试之间的等待时间 (默认: 100ms)
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay" mapstructure:"retry_delay"`

	// TTL 锁记录的默认生命周期 (默认: 3s)
	//
	// 实例级配置无法表达"默认不过期"：零值回退到内置默认值，
	// 需要不过期的锁请在调用时显式传 WithTTL(0)。
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

func (c *Config) setDefaults() {
	if c.RetryLimit == 0 {
		c.RetryLimit = DefaultRetryLimit
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

func (c *Config) validate() error {
	return Options{
		RetryLimit: c.RetryLimit,
		RetryDelay: c.RetryDelay,
		TTL:        c.TTL,
	}.validate()
}
