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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracingProvider selects which OpenTelemetry trace exporter backs a
// router's spans.
type TracingProvider string

const (
	// OTLPTracingProvider pushes spans to an OTLP HTTP collector.
	OTLPTracingProvider TracingProvider = "otlp"
	// StdoutTracingProvider prints spans to stdout; development and testing only.
	StdoutTracingProvider TracingProvider = "stdout"
	// NoopTracingProvider sets up no exporter of its own and traces
	// through the global otel.Tracer, so spans are discarded unless the
	// application has installed a global TracerProvider. It is the default.
	NoopTracingProvider TracingProvider = "noop"
)

// TracingConfig holds the OpenTelemetry tracing configuration for a
// Router. Every Insert, Delete, and Search call becomes one span.
type TracingConfig struct {
	serviceName    string
	serviceVersion string
	provider       TracingProvider
	endpoint       string

	tracer         trace.Tracer
	tracerProvider trace.TracerProvider
}

// TracingOption configures a TracingConfig built by WithTracing.
type TracingOption func(*TracingConfig)

// WithTracingProvider selects the exporter backend. Default: NoopTracingProvider,
// which traces through the global otel.Tracer so the caller's own
// provider (if any) receives the spans.
func WithTracingProvider(provider TracingProvider) TracingOption {
	return func(t *TracingConfig) { t.provider = provider }
}

// WithTracingServiceName tags every emitted span with service name.
func WithTracingServiceName(name string) TracingOption {
	return func(t *TracingConfig) { t.serviceName = name }
}

// WithTracingServiceVersion tags every emitted span with service version.
func WithTracingServiceVersion(version string) TracingOption {
	return func(t *TracingConfig) { t.serviceVersion = version }
}

// WithTracingEndpoint sets the collector endpoint for the OTLP provider.
func WithTracingEndpoint(endpoint string) TracingOption {
	return func(t *TracingConfig) { t.endpoint = endpoint }
}

// WithCustomTracer overrides the otel.Tracer used to start spans, e.g. to
// share a tracer already wired up by the embedding application. Setting
// this takes precedence over the configured provider.
func WithCustomTracer(tracer trace.Tracer) TracingOption {
	return func(t *TracingConfig) { t.tracer = tracer }
}

func newTracingConfig(serviceName string, opts ...TracingOption) *TracingConfig {
	t := &TracingConfig{
		serviceName:    serviceName,
		serviceVersion: "0.1.0",
		provider:       NoopTracingProvider,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		if err := t.initializeProvider(); err != nil {
			panic(fmt.Sprintf("pathtrie: failed to initialize tracing: %v", err))
		}
	}
	return t
}

func (t *TracingConfig) initializeProvider() error {
	switch t.provider {
	case OTLPTracingProvider:
		return t.initOTLPProvider()
	case StdoutTracingProvider:
		return t.initStdoutProvider()
	case NoopTracingProvider:
		t.tracer = otel.Tracer("rivaas.dev/pathtrie")
		return nil
	default:
		return fmt.Errorf("unsupported tracing provider: %s", t.provider)
	}
}

func (t *TracingConfig) initOTLPProvider() error {
	opts := []otlptracehttp.Option{}
	if t.endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(t.endpoint))
	}

	client := otlptracehttp.NewClient(opts...)
	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return fmt.Errorf("create otlp trace exporter: %w", err)
	}

	t.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(t.tracerProvider)
	t.tracer = t.tracerProvider.Tracer("rivaas.dev/pathtrie")
	return nil
}

func (t *TracingConfig) initStdoutProvider() error {
	exporter, err := stdouttrace.New()
	if err != nil {
		return fmt.Errorf("create stdout trace exporter: %w", err)
	}

	t.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(t.tracerProvider)
	t.tracer = t.tracerProvider.Tracer("rivaas.dev/pathtrie")
	return nil
}

func (t *TracingConfig) startSpan(ctx context.Context, op, template string) trace.Span {
	_, span := t.tracer.Start(ctx, "pathtrie."+op, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String("service.name", t.serviceName),
		attribute.String("service.version", t.serviceVersion),
		attribute.String("pathtrie.operation", op),
	)
	if template != "" {
		span.SetAttributes(attribute.String("pathtrie.template", template))
	}
	return span
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func finishSearchSpan(span trace.Span, m *Match, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		span.End()
		return
	}
	span.SetAttributes(attribute.Bool("pathtrie.matched", m != nil))
	if m != nil {
		span.SetAttributes(attribute.String("pathtrie.template", m.Template))
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}
