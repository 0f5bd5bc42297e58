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
	"errors"
	"fmt"
	"strings"
)

// Static errors for conditions that carry no useful positional context.
// These should be compared with errors.Is.
var (
	// ErrDuplicateConstraintName is returned by Router.RegisterConstraint
	// when the name is already taken.
	ErrDuplicateConstraintName = errors.New("constraint name already registered")

	// ErrNotFound is returned by Router.Delete when no matching template exists.
	ErrNotFound = errors.New("route not found")
)

// TemplateError reports a malformed route template, identifying the
// failure by exact byte position so a caller can render an arrow under
// the offending span.
type TemplateError struct {
	Template string // The template string that failed to parse.
	Reason   string // Short machine-stable reason, e.g. "empty_braces".
	Message  string // Human-readable summary, e.g. "empty braces".
	Tip      string // Optional remediation hint.

	// Spans are byte offsets into Template, paired as (start, length).
	// Errors found while scanning braces, parentheses and escapes carry
	// exactly one span. The empty-template, missing-leading-delimiter,
	// touching_parameters and duplicate_parameter errors carry none.
	Spans [][2]int
}

func (e *TemplateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n    Template: %s", e.Message, e.Template)
	if len(e.Spans) > 0 {
		fmt.Fprintf(&b, "\n              %s", caretLine(e.Spans))
	}
	if e.Tip != "" {
		fmt.Fprintf(&b, "\n\ntip: %s", e.Tip)
	}
	return b.String()
}

// caretLine renders a line of spaces and carets under the given spans
// so a fixed-width rendering of TemplateError points directly at the
// offending span(s).
func caretLine(spans [][2]int) string {
	line := make([]byte, 0, 16)
	pos := 0
	for _, span := range spans {
		start, length := span[0], span[1]
		for pos < start {
			line = append(line, ' ')
			pos++
		}
		for range length {
			line = append(line, '^')
			pos++
		}
	}
	return string(line)
}

func newTemplateError(template, reason, message, tip string, spans ...[2]int) *TemplateError {
	return &TemplateError{Template: template, Reason: reason, Message: message, Tip: tip, Spans: spans}
}

// UnknownConstraintError is returned by Insert when a template references
// a constraint name absent from the Router's registry.
type UnknownConstraintError struct {
	Template string
	Name     string
}

func (e *UnknownConstraintError) Error() string {
	return fmt.Sprintf("unknown constraint %q referenced by template %q", e.Name, e.Template)
}

// DuplicateRouteError is returned by Insert when the exact template (or,
// for an optional-group expansion, one of its concrete expansions) is
// already present in the trie. The error points at the colliding
// expansion rather than the original template.
type DuplicateRouteError struct {
	Route    string // The template (or expansion) that could not be inserted.
	Conflict string // The original template spelling already occupying that leaf.
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route %q conflicts with already-registered %q", e.Route, e.Conflict)
}

// RouteMismatchError is returned by Delete when a template is syntactically
// routable but the trie leaf it would reach carries a different original
// spelling (e.g. deleting one expansion of an optional-group template by
// name, or vice versa).
type RouteMismatchError struct {
	Route    string
	Inserted string
}

func (e *RouteMismatchError) Error() string {
	return fmt.Sprintf("route %q does not match the originally inserted template %q", e.Route, e.Inserted)
}

// DecodingError is returned by Search when a constraint predicate could
// not be applied because the candidate capture was not valid UTF-8.
type DecodingError struct {
	Input []byte
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("input %q is not valid UTF-8", e.Input)
}
