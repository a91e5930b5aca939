package metrics

// Config 指标配置
type Config struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"service_name" yaml:"service_name" mapstructure:"service_name"`
	Version     string `json:"version" yaml:"version" mapstructure:"version"`

	// Prometheus HTTP 服务配置，Port 为 0 时不启动 HTTP 服务
	Port int    `json:"port" yaml:"port" mapstructure:"port"`
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// NewDevDefaultConfig 返回适合本地开发的默认配置
// 不启动 HTTP 服务，指标仅在进程内可见
func NewDevDefaultConfig(service string) *Config {
	return &Config{
		Enabled:     true,
		ServiceName: service,
		Version:     "dev",
	}
}

func (c *Config) setDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "rplock"
	}
	if c.Path == "" {
		c.Path = "/metrics"
	}
}
