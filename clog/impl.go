package clog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// sLogger 基于 slog 的 Logger 实现（内部使用）
type sLogger struct {
	slog      *slog.Logger
	namespace string
}

// New 根据配置创建 Logger 实例
func New(cfg *Config, opts ...Option) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := &options{}
	for _, o := range opts {
		o(opt)
	}

	level, _ := parseLevel(cfg.Level)
	w, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	l := &sLogger{slog: slog.New(handler)}
	if len(opt.namespace) > 0 {
		return l.WithNamespace(opt.namespace...), nil
	}
	return l, nil
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	}
}

var (
	defaultLogger Logger = mustDefault()
	defaultMu     sync.RWMutex
)

func mustDefault() Logger {
	l, err := New(&Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		return Discard()
	}
	return l
}

// Default 返回全局默认 Logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault 替换全局默认 Logger
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func (l *sLogger) log(ctx context.Context, level slog.Level, msg string, fields ...Field) {
	l.slog.LogAttrs(ctx, level, msg, fields...)
}

func (l *sLogger) Debug(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelDebug, msg, fields...)
}

func (l *sLogger) Info(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelInfo, msg, fields...)
}

func (l *sLogger) Warn(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelWarn, msg, fields...)
}

func (l *sLogger) Error(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelError, msg, fields...)
}

func (l *sLogger) Fatal(msg string, fields ...Field) {
	l.log(context.Background(), slog.LevelError, msg, fields...)
	os.Exit(1)
}

func (l *sLogger) DebugContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields...)
}

func (l *sLogger) InfoContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields...)
}

func (l *sLogger) WarnContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields...)
}

func (l *sLogger) ErrorContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields...)
}

func (l *sLogger) FatalContext(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields...)
	os.Exit(1)
}

func (l *sLogger) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, f)
	}
	return &sLogger{slog: l.slog.With(args...), namespace: l.namespace}
}

func (l *sLogger) WithNamespace(parts ...string) Logger {
	ns := l.namespace
	for _, p := range parts {
		if p == "" {
			continue
		}
		if ns == "" {
			ns = p
		} else {
			ns = ns + "." + p
		}
	}
	if ns == l.namespace {
		return l
	}
	return &sLogger{
		slog:      l.slog.With(slog.String("namespace", ns)),
		namespace: ns,
	}
}
