// Package config 提供统一的配置加载能力，基于 Viper 实现。
//
// 特性：
//   - 多源加载：YAML/JSON 文件、环境变量、.env 文件
//   - 优先级：环境变量 > .env > 环境特定配置 > 基础配置
//   - 热更新：监听配置文件变化并通知订阅者
//
// 基本使用：
//
//	loader := config.MustLoad(
//		config.WithConfigName("config"),
//		config.WithConfigPaths("./config"),
//		config.WithEnvPrefix("RPLOCK"),
//	)
//
//	var cfg lock.Config
//	if err := loader.UnmarshalKey("lock", &cfg); err != nil {
//		panic(err)
//	}
package config

import (
	"context"
	"strings"
	"time"

	"github.com/ceyewan/rplock/clog"
)

// Loader 定义配置加载器的核心行为
type Loader interface {
	// Load 加载配置并初始化内部状态
	Load(ctx context.Context) error

	// Get 获取原始配置值
	Get(key string) any

	// Unmarshal 将整个配置反序列化到结构体
	Unmarshal(v any) error

	// UnmarshalKey 将指定 Key 的配置反序列化到结构体
	UnmarshalKey(key string, v any) error

	// Watch 监听配置变化，通过 context 取消监听
	Watch(ctx context.Context, key string) (<-chan Event, error)
}

// Event 配置变更事件
type Event struct {
	Key       string // 配置 key
	Value     any    // 新值
	OldValue  any    // 旧值
	Source    string // "file" | "env"
	Timestamp time.Time
}

// Options 加载器参数
type Options struct {
	Name      string      // 配置文件名称（不含扩展名），默认 "config"
	Paths     []string    // 配置文件搜索路径，默认 ["." , "./config"]
	FileType  string      // 配置文件类型，默认 "yaml"
	EnvPrefix string      // 环境变量前缀，默认 "RPLOCK"
	Logger    clog.Logger // 可选日志器
}

func defaultOptions() *Options {
	return &Options{
		Name:      "config",
		Paths:     []string{".", "./config"},
		FileType:  "yaml",
		EnvPrefix: "RPLOCK",
		Logger:    clog.Discard(),
	}
}

// Option 配置选项模式
type Option func(*Options)

// WithConfigName 设置配置文件名称（不带扩展名）
func WithConfigName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithConfigPaths 设置配置文件搜索路径（覆盖默认值）
func WithConfigPaths(paths ...string) Option {
	return func(o *Options) {
		o.Paths = paths
	}
}

// WithConfigType 设置配置文件类型 (yaml, json, etc.)
func WithConfigType(typ string) Option {
	return func(o *Options) {
		o.FileType = typ
	}
}

// WithEnvPrefix 设置环境变量前缀
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) {
		o.EnvPrefix = strings.ToUpper(prefix)
	}
}

// WithLogger 设置日志器
func WithLogger(logger clog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// New 创建配置加载器
func New(opts ...Option) (Loader, error) {
	options := defaultOptions()
	for _, o := range opts {
		o(options)
	}
	return newLoader(options)
}

// MustLoad 创建加载器并立即加载配置，失败时 panic
//
// 适合在 main 的初始化阶段使用。
func MustLoad(opts ...Option) Loader {
	loader, err := New(opts...)
	if err != nil {
		panic(err)
	}
	if err := loader.Load(context.Background()); err != nil {
		panic(err)
	}
	return loader
}
