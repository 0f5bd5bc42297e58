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
	"io"
	"log/slog"
	"time"

	"rivaas.dev/pathtrie/constraint"
)

// noopLogger is the singleton used when no logger is configured via
// WithLogger.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option configures a Router built by New or NewAuthority.
type Option func(*Router)

// pendingConstraint defers constraint registration until after the
// Router's registry exists, so WithConstraint can be passed to New
// alongside every other option.
type pendingConstraint struct {
	name      string
	typeTag   string
	predicate constraint.Predicate
}

// RouteInfo describes one template registered with Insert: enough to
// introspect a populated Router without walking the trie by hand.
type RouteInfo struct {
	Template   string   // the template exactly as passed to Insert
	Expansions []string // every concrete spelling the template expanded to
	Value      any
}

// Router holds one trie and its configuration. The zero value is not
// usable; construct with New or NewAuthority.
//
// Router is meant to be built, populated, and then held read-only:
// Insert and Delete require exclusive access, Search is safe
// for any number of concurrent callers once no writer is active. Router
// does not internally serialize callers beyond that; callers running
// Insert/Delete concurrently with Search must provide their own
// synchronization (a sync.RWMutex around the Router, or build-then-swap).
type Router struct {
	root     *node
	delim    byte
	registry *constraint.Registry

	logger  *slog.Logger
	metrics *MetricsConfig
	tracing *TracingConfig

	serviceName string

	pendingConstraints []pendingConstraint
	routes             map[string]*RouteInfo
}

// New constructs a path-flavored Router (delimiter '/'). Constraints
// passed via WithConstraint are registered before any configuration
// error is reported.
//
// Example:
//
//	r, err := pathtrie.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Insert("/users/{id:u64}", handler)
func New(opts ...Option) (*Router, error) {
	return newRouter('/', opts...)
}

// NewAuthority constructs an authority-flavored Router (delimiter '.'),
// for matching request hosts rather than paths. It shares the exact
// same built-in constraint set as the path flavor.
func NewAuthority(opts ...Option) (*Router, error) {
	return newRouter('.', opts...)
}

func newRouter(delim byte, opts ...Option) (*Router, error) {
	r := &Router{
		root:        &node{kind: kindRoot},
		delim:       delim,
		registry:    constraint.NewRegistry(),
		logger:      noopLogger,
		serviceName: "pathtrie",
		routes:      make(map[string]*RouteInfo),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, pc := range r.pendingConstraints {
		if err := r.registry.Register(pc.name, pc.typeTag, pc.predicate); err != nil {
			return nil, fmt.Errorf("router configuration validation failed: %w", err)
		}
	}
	r.pendingConstraints = nil

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}

	return r, nil
}

// MustNew creates a new path-flavored Router and panics if configuration
// is invalid.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("pathtrie.MustNew: %v", err))
	}
	return r
}

// validate checks the router configuration for common errors. Routes
// themselves are validated at Insert time, not here, since routes are
// added after construction.
func (r *Router) validate() error {
	if r.delim == 0 {
		return fmt.Errorf("delimiter must not be the zero byte")
	}
	return nil
}

// RegisterConstraint adds a named constraint predicate to the Router's
// registry. It fails if name is already registered, including against a
// built-in; the returned error matches both ErrDuplicateConstraintName
// and the underlying constraint.ErrDuplicateName via errors.Is.
func (r *Router) RegisterConstraint(name, typeTag string, predicate constraint.Predicate) error {
	if err := r.registry.Register(name, typeTag, predicate); err != nil {
		return fmt.Errorf("%w: %w: %q", ErrDuplicateConstraintName, err, name)
	}
	return nil
}

// Insert adds template to the trie with the given value, expanding any
// optional (...) groups into their concrete forms first and inserting
// each one. If any expansion collides with an existing
// route, Insert rolls back every expansion it had already inserted for
// this call, leaving the trie exactly as it was before the call.
//
// Returns *TemplateError for a malformed template, *UnknownConstraintError
// if a referenced constraint was never registered, or
// *DuplicateRouteError if a concrete expansion collides with an
// existing route.
func (r *Router) Insert(template string, value any) error {
	err := r.insert(template, value)
	if r.metrics != nil {
		r.metrics.recordInsert(err == nil)
	}
	if r.logger != nil {
		if err != nil {
			r.logger.Debug("insert failed", "template", template, "error", err)
		} else {
			r.logger.Debug("insert", "template", template)
		}
	}
	return err
}

func (r *Router) insert(template string, value any) error {
	if r.tracing != nil {
		span := r.tracing.startSpan(context.Background(), "insert", template)
		err := r.doInsert(template, value)
		finishSpan(span, err)
		return err
	}
	return r.doInsert(template, value)
}

func (r *Router) doInsert(template string, value any) error {
	elems, err := parseTemplate(template, r.delim)
	if err != nil {
		return err
	}

	expansions, err := expandTemplate(template, elems, r.delim)
	if err != nil {
		return err
	}

	for _, exp := range expansions {
		if err := r.checkConstraintsExist(template, exp.parts); err != nil {
			return err
		}
	}

	shared := &routeData{value: value, original: template}
	info := &RouteInfo{Template: template, Value: value}

	inserted := make([]*expandedTemplate, 0, len(expansions))
	for i := range expansions {
		exp := &expansions[i]
		leaf := &leafData{shared: shared, expanded: exp.source}
		stack := newPartStack(exp.parts)
		if err := insertInto(r.root, stack, leaf); err != nil {
			r.rollback(inserted, template)
			if ic, ok := err.(*insertConflict); ok {
				return &DuplicateRouteError{Route: exp.source, Conflict: ic.existing.data.shared.original}
			}
			return err
		}
		inserted = append(inserted, exp)
		info.Expansions = append(info.Expansions, exp.source)
	}

	optimize(r.root, r.delim)
	r.routes[template] = info
	return nil
}

// rollback removes every already-inserted expansion in inserted, used
// when a later expansion in the same Insert call collides.
func (r *Router) rollback(inserted []*expandedTemplate, template string) {
	for _, exp := range inserted {
		stack := newPartStack(exp.parts)
		_, _ = deleteFrom(r.root, stack, template)
	}
	if len(inserted) > 0 {
		optimize(r.root, r.delim)
	}
}

func (r *Router) checkConstraintsExist(template string, parts []part) error {
	for _, p := range parts {
		if p.kind == partStatic || p.constraint == "" {
			continue
		}
		if !r.registry.Has(p.constraint) {
			return &UnknownConstraintError{Template: template, Name: p.constraint}
		}
	}
	return nil
}

// Delete removes the route(s) template denotes: if template was passed to
// Insert verbatim (groups and all), Delete removes every expansion it
// produced; if template is one concrete expansion of a grouped insert, or
// any other spelling whose leaf was stored under a different original,
// Delete returns RouteMismatchError and makes no change. Returns the
// value that was stored there, or an error wrapping ErrNotFound if no
// such route exists.
func (r *Router) Delete(template string) (any, error) {
	if r.tracing != nil {
		span := r.tracing.startSpan(context.Background(), "delete", template)
		value, err := r.doDelete(template)
		finishSpan(span, err)
		return value, err
	}
	return r.doDelete(template)
}

func (r *Router) doDelete(template string) (value any, err error) {
	defer func() {
		if r.metrics != nil {
			r.metrics.recordDelete(err == nil)
		}
		if r.logger != nil {
			if err != nil {
				r.logger.Debug("delete failed", "template", template, "error", err)
			} else {
				r.logger.Debug("delete", "template", template)
			}
		}
	}()

	elems, perr := parseTemplate(template, r.delim)
	if perr != nil {
		return nil, perr
	}
	expansions, eerr := expandTemplate(template, elems, r.delim)
	if eerr != nil {
		return nil, eerr
	}

	removed := make([]*leafData, 0, len(expansions))
	for _, exp := range expansions {
		stack := newPartStack(exp.parts)
		leaf, derr := deleteFrom(r.root, stack, template)
		if derr != nil {
			r.restoreDeleted(removed, expansions)
			return nil, derr
		}
		removed = append(removed, leaf)
	}

	optimize(r.root, r.delim)
	delete(r.routes, template)
	return removed[0].shared.value, nil
}

// restoreDeleted re-inserts every already-removed leaf, used when a later
// expansion in the same multi-expansion Delete call fails, so that Delete
// makes no partial mutation on error.
func (r *Router) restoreDeleted(removed []*leafData, expansions []expandedTemplate) {
	for i, leaf := range removed {
		stack := newPartStack(expansions[i].parts)
		_ = insertInto(r.root, stack, leaf)
	}
	if len(removed) > 0 {
		optimize(r.root, r.delim)
	}
}

// Search matches input against the trie by ordered backtracking across
// static, dynamic, wildcard, and end-wildcard candidates, and returns
// the best match, or nil with no error if nothing matches.
func (r *Router) Search(input []byte) (*Match, error) {
	start := time.Now()
	var onReject func()
	if r.metrics != nil {
		onReject = r.metrics.recordConstraintFailure
	}

	var m *Match
	var err error
	if r.tracing != nil {
		span := r.tracing.startSpan(context.Background(), "search", "")
		m, err = search(r.root, input, r.delim, r.registry, onReject)
		finishSearchSpan(span, m, err)
	} else {
		m, err = search(r.root, input, r.delim, r.registry, onReject)
	}

	if r.metrics != nil {
		r.metrics.recordSearch(start, m != nil && err == nil)
	}

	return m, err
}

// Routes returns one RouteInfo per currently-inserted template, in no
// particular order.
func (r *Router) Routes() []RouteInfo {
	out := make([]RouteInfo, 0, len(r.routes))
	for _, info := range r.routes {
		out = append(out, *info)
	}
	return out
}
