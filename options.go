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
	"log/slog"

	"rivaas.dev/pathtrie/constraint"
)

// WithLogger sets the logger Insert and Delete use for Debug-level route
// lifecycle events (added, removed, conflict). Search never logs.
//
// Example:
//
//	r := pathtrie.MustNew(pathtrie.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDelimiter overrides the segment delimiter byte. The path flavor
// (New) uses '/'; the authority flavor (NewAuthority) uses '.'. Exposed
// directly so callers needing a third flavor are not forced through
// NewAuthority's fixed choice.
func WithDelimiter(delim byte) Option {
	return func(r *Router) {
		r.delim = delim
	}
}

// WithConstraint registers a named constraint predicate at construction
// time, before any route is inserted. Equivalent to calling
// Router.RegisterConstraint immediately after New, but composes with the
// other functional options.
//
// Example:
//
//	r := pathtrie.MustNew(pathtrie.WithConstraint("slug", "string", isSlug))
func WithConstraint(name, typeTag string, predicate constraint.Predicate) Option {
	return func(r *Router) {
		r.pendingConstraints = append(r.pendingConstraints, pendingConstraint{
			name: name, typeTag: typeTag, predicate: predicate,
		})
	}
}

// WithMetrics enables OpenTelemetry metrics instrumentation: counters for
// Insert/Delete/Search calls and constraint-predicate failures, plus a
// search-latency histogram. Defaults to the Prometheus provider; pass
// WithMetricsProvider to select OTLP or stdout instead.
//
// Example:
//
//	r := pathtrie.MustNew(pathtrie.WithMetrics())
//	http.Handle("/metrics", r.MetricsHandler())
func WithMetrics(opts ...MetricsOption) Option {
	return func(r *Router) {
		r.metrics = newMetricsConfig(r.serviceName, opts...)
	}
}

// WithTracing enables OpenTelemetry tracing: every Insert, Delete, and
// Search call becomes one span named pathtrie.insert/delete/search.
// Defaults to tracing through the global otel.Tracer; pass
// WithTracingProvider to have the router set up its own OTLP or stdout
// exporter, or WithCustomTracer to supply one directly.
//
// Example:
//
//	r := pathtrie.MustNew(pathtrie.WithTracing())
func WithTracing(opts ...TracingOption) Option {
	return func(r *Router) {
		r.tracing = newTracingConfig(r.serviceName, opts...)
	}
}

// WithServiceName sets the service name attached to every metric and
// span this router produces. Must be applied before WithMetrics /
// WithTracing to take effect, since those options snapshot it.
func WithServiceName(name string) Option {
	return func(r *Router) {
		r.serviceName = name
	}
}
