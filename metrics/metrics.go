package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// otelMeter 基于 OpenTelemetry SDK 的 Meter 实现（内部使用）
type otelMeter struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
	server   *http.Server
}

// New 创建 Meter 实例
//
// cfg.Enabled 为 false 时返回 noop 实现。
// cfg.Port > 0 时启动 Prometheus HTTP 服务暴露指标。
func New(cfg *Config, opts ...Option) (Meter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("metrics: config is required")
	}
	if !cfg.Enabled {
		return Discard(), nil
	}
	cfg.setDefaults()

	opt := &options{}
	for _, o := range opts {
		o(opt)
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(cfg.Version),
	}
	attrs = append(attrs, toAttributes(opt.labels)...)

	res, err := resource.New(context.Background(),
		resource.WithAttributes(attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create resource: %w", err)
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	m := &otelMeter{
		provider: provider,
		meter:    provider.Meter(cfg.ServiceName),
	}

	if cfg.Port > 0 {
		mux := http.NewServeMux()
		mux.Handle(cfg.Path, promhttp.Handler())
		m.server = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: mux,
		}
		go func() {
			if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Printf("metrics: prometheus server error: %v\n", err)
			}
		}()
	}

	return m, nil
}

func (m *otelMeter) Counter(name, description string) (Counter, error) {
	c, err := m.meter.Float64Counter(name, metric.WithDescription(description))
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create counter %s: %w", name, err)
	}
	return &otelCounter{counter: c}, nil
}

func (m *otelMeter) Gauge(name, description string) (Gauge, error) {
	g, err := m.meter.Float64Gauge(name, metric.WithDescription(description))
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create gauge %s: %w", name, err)
	}
	return &otelGauge{gauge: g}, nil
}

func (m *otelMeter) Histogram(name, description string) (Histogram, error) {
	h, err := m.meter.Float64Histogram(name, metric.WithDescription(description))
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to create histogram %s: %w", name, err)
	}
	return &otelHistogram{histogram: h}, nil
}

func (m *otelMeter) Shutdown(ctx context.Context) error {
	if m.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = m.server.Shutdown(shutdownCtx)
	}
	return m.provider.Shutdown(ctx)
}

type otelCounter struct {
	counter metric.Float64Counter
}

func (c *otelCounter) Inc(ctx context.Context, labels ...Label) {
	c.counter.Add(ctx, 1, metric.WithAttributes(toAttributes(labels)...))
}

func (c *otelCounter) Add(ctx context.Context, val float64, labels ...Label) {
	c.counter.Add(ctx, val, metric.WithAttributes(toAttributes(labels)...))
}

type otelGauge struct {
	gauge metric.Float64Gauge
}

func (g *otelGauge) Set(ctx context.Context, val float64, labels ...Label) {
	g.gauge.Record(ctx, val, metric.WithAttributes(toAttributes(labels)...))
}

type otelHistogram struct {
	histogram metric.Float64Histogram
}

func (h *otelHistogram) Record(ctx context.Context, val float64, labels ...Label) {
	h.histogram.Record(ctx, val, metric.WithAttributes(toAttributes(labels)...))
}

func toAttributes(labels []Label) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		attrs = append(attrs, attribute.String(l.Key, l.Value))
	}
	return attrs
}
