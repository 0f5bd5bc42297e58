// Copyright 2026 The Pathtrie Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathtrie

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsProvider selects which OpenTelemetry metrics exporter backs a
// router's instrumentation.
type MetricsProvider string

const (
	// PrometheusProvider exposes an http.Handler the caller mounts
	// themselves; the router never opens a listening socket.
	PrometheusProvider MetricsProvider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider MetricsProvider = "otlp"
	// StdoutProvider prints metrics to stdout; development and testing only.
	StdoutProvider MetricsProvider = "stdout"
)

// MetricsConfig holds the OpenTelemetry metrics wiring for a Router:
// insert/delete/search counters, a search-latency histogram, and a
// constraint-failure counter, all tagged with the router's service name.
type MetricsConfig struct {
	serviceName    string
	serviceVersion string
	provider       MetricsProvider
	endpoint       string
	exportInterval time.Duration

	meter             metric.Meter
	meterProvider     metric.MeterProvider
	prometheusHandler http.Handler

	insertCount        metric.Int64Counter
	deleteCount        metric.Int64Counter
	searchCount        metric.Int64Counter
	searchDuration     metric.Float64Histogram
	constraintFailures metric.Int64Counter
}

// MetricsOption configures a MetricsConfig built by WithMetrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsProvider selects the exporter backend. Default: PrometheusProvider.
func WithMetricsProvider(provider MetricsProvider) MetricsOption {
	return func(m *MetricsConfig) { m.provider = provider }
}

// WithMetricsServiceName tags every emitted metric with service name.
func WithMetricsServiceName(name string) MetricsOption {
	return func(m *MetricsConfig) { m.serviceName = name }
}

// WithMetricsEndpoint sets the collector endpoint for the OTLP provider.
func WithMetricsEndpoint(endpoint string) MetricsOption {
	return func(m *MetricsConfig) { m.endpoint = endpoint }
}

// WithMetricsExportInterval sets the periodic-reader export interval used
// by the OTLP and stdout providers. The Prometheus provider ignores it;
// Prometheus is scraped, not pushed.
func WithMetricsExportInterval(interval time.Duration) MetricsOption {
	return func(m *MetricsConfig) { m.exportInterval = interval }
}

// newMetricsConfig builds and initializes a metrics configuration. It
// panics on initialization failure, matching the functional-options
// convention used throughout this package: a misconfigured exporter is a
// programming error to surface at startup.
func newMetricsConfig(serviceName string, opts ...MetricsOption) *MetricsConfig {
	m := &MetricsConfig{
		serviceName:    serviceName,
		serviceVersion: "0.1.0",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.initializeProvider(); err != nil {
		panic(fmt.Sprintf("pathtrie: failed to initialize metrics: %v", err))
	}
	return m
}

func (m *MetricsConfig) initializeProvider() error {
	switch m.provider {
	case PrometheusProvider:
		return m.initPrometheusProvider()
	case OTLPProvider:
		return m.initOTLPProvider()
	case StdoutProvider:
		return m.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", m.provider)
	}
}

func (m *MetricsConfig) initPrometheusProvider() error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	m.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	m.prometheusHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	otel.SetMeterProvider(m.meterProvider)
	m.meter = m.meterProvider.Meter("rivaas.dev/pathtrie")

	return m.initInstruments()
}

func (m *MetricsConfig) initOTLPProvider() error {
	opts := []otlpmetrichttp.Option{}
	if m.endpoint != "" {
		opts = append(opts, otlpmetrichttp.WithEndpoint(m.endpoint))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("create otlp exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(m.exportInterval))
	m.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(m.meterProvider)
	m.meter = m.meterProvider.Meter("rivaas.dev/pathtrie")

	return m.initInstruments()
}

func (m *MetricsConfig) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("create stdout exporter: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(m.exportInterval))
	m.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(m.meterProvider)
	m.meter = m.meterProvider.Meter("rivaas.dev/pathtrie")

	return m.initInstruments()
}

func (m *MetricsConfig) initInstruments() error {
	var err error

	m.insertCount, err = m.meter.Int64Counter(
		"pathtrie_insert_total",
		metric.WithDescription("Total number of Insert calls"),
	)
	if err != nil {
		return fmt.Errorf("create insert counter: %w", err)
	}

	m.deleteCount, err = m.meter.Int64Counter(
		"pathtrie_delete_total",
		metric.WithDescription("Total number of Delete calls"),
	)
	if err != nil {
		return fmt.Errorf("create delete counter: %w", err)
	}

	m.searchCount, err = m.meter.Int64Counter(
		"pathtrie_search_total",
		metric.WithDescription("Total number of Search calls"),
	)
	if err != nil {
		return fmt.Errorf("create search counter: %w", err)
	}

	m.searchDuration, err = m.meter.Float64Histogram(
		"pathtrie_search_duration_seconds",
		metric.WithDescription("Duration of Search calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("create search duration histogram: %w", err)
	}

	m.constraintFailures, err = m.meter.Int64Counter(
		"pathtrie_constraint_failures_total",
		metric.WithDescription("Total number of constraint predicate rejections during Search"),
	)
	if err != nil {
		return fmt.Errorf("create constraint failures counter: %w", err)
	}

	return nil
}

func (m *MetricsConfig) attrs() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", m.serviceName),
		attribute.String("service.version", m.serviceVersion),
	}
}

func (m *MetricsConfig) recordInsert(matched bool) {
	m.insertCount.Add(context.Background(), 1, metric.WithAttributes(
		append(m.attrs(), attribute.Bool("ok", matched))...))
}

func (m *MetricsConfig) recordDelete(matched bool) {
	m.deleteCount.Add(context.Background(), 1, metric.WithAttributes(
		append(m.attrs(), attribute.Bool("ok", matched))...))
}

func (m *MetricsConfig) recordSearch(start time.Time, matched bool) {
	duration := time.Since(start).Seconds()
	attrs := append(m.attrs(), attribute.Bool("matched", matched))
	m.searchCount.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.searchDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

func (m *MetricsConfig) recordConstraintFailure() {
	m.constraintFailures.Add(context.Background(), 1, metric.WithAttributes(m.attrs()...))
}

// MetricsHandler returns the Prometheus metrics HTTP handler for mounting
// into the caller's own server; the router itself never listens. It
// panics if metrics are disabled or the configured provider is not
// Prometheus.
func (r *Router) MetricsHandler() http.Handler {
	if r.metrics == nil {
		panic("pathtrie: metrics not enabled, use WithMetrics()")
	}
	if r.metrics.provider != PrometheusProvider || r.metrics.prometheusHandler == nil {
		panic("pathtrie: MetricsHandler is only available with the Prometheus provider")
	}
	return r.metrics.prometheusHandler
}
