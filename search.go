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
	"bytes"
	"unicode/utf8"

	"rivaas.dev/pathtrie/constraint"
)

// Binding is one captured (name, value) pair. Value aliases the input
// slice passed to Search; callers that retain a Binding past the call
// that produced it should copy Value first.
type Binding struct {
	Name  string
	Value []byte
}

// Match is the result of a successful Search.
type Match struct {
	Value    any
	Template string // the template exactly as passed to Insert
	Expanded string // the concrete expansion that matched, "" if the template had no optional groups
	Bindings []Binding
}

// search walks root looking for the best match for input, trying child
// kinds in specificity order at every node: static, dynamic, wildcard,
// end-wildcard. onReject, if non-nil, is called once for every
// constraint predicate that runs and rejects a candidate; it backs the
// constraint-failure metric and is nil when metrics are disabled.
func search(root *node, input []byte, delim byte, registry *constraint.Registry, onReject func()) (*Match, error) {
	m, _, err := searchNode(root, input, delim, registry, onReject, nil)
	return m, err
}

// searchNode and its helpers return the matched node's own priority
// alongside the Match. The priority is meaningless on its own; it only
// matters to a caller choosing among several candidate capture lengths
// for the same dynamic/wildcard child (searchDynamicInline,
// searchWildcardInline), which keeps recursing into every candidate and
// returns whichever one bottoms out at the highest-priority node,
// breaking ties toward the longer capture.
func searchNode(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	if len(input) == 0 {
		if n.data != nil {
			return buildMatch(n, bindings), n.priority, nil
		}
		return nil, 0, nil
	}

	if m, p, err := searchStatic(n, input, delim, registry, onReject, bindings); m != nil || err != nil {
		return m, p, err
	}
	if m, p, err := searchDynamic(n, input, delim, registry, onReject, bindings); m != nil || err != nil {
		return m, p, err
	}
	if m, p, err := searchWildcard(n, input, delim, registry, onReject, bindings); m != nil || err != nil {
		return m, p, err
	}
	return searchEndWildcard(n, input, registry, onReject, bindings)
}

func searchStatic(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	if n.staticBloom != nil && !n.staticBloom.test(input[:1]) {
		return nil, 0, nil
	}

	for _, child := range n.staticChildren {
		if !bytes.HasPrefix(input, child.prefix) {
			continue
		}
		m, p, err := searchNode(child, input[len(child.prefix):], delim, registry, onReject, bindings)
		if err != nil {
			return nil, 0, err
		}
		if m != nil {
			return m, p, nil
		}
	}
	return nil, 0, nil
}

func searchDynamic(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	if len(n.dynamicChildren) == 0 {
		return nil, 0, nil
	}

	segEnd := bytes.IndexByte(input, delim)
	if segEnd < 0 {
		segEnd = len(input)
	}
	if segEnd == 0 {
		return nil, 0, nil
	}

	if n.dynamicShortcut {
		return searchDynamicSegment(n, input, segEnd, delim, registry, onReject, bindings)
	}
	return searchDynamicInline(n, input, segEnd, delim, registry, onReject, bindings)
}

// searchDynamicSegment handles the common case where every dynamic
// child is segment-bounded: there is exactly one candidate capture per
// child (the whole segment), so the first child whose constraint
// accepts it and whose subtree matches wins outright.
func searchDynamicSegment(n *node, input []byte, segEnd int, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	candidate := input[:segEnd]
	for _, child := range n.dynamicChildren {
		ok, err := checkConstraint(registry, child.constraint, candidate, onReject)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			continue
		}
		m, p, err := searchNode(child, input[segEnd:], delim, registry, onReject, withBinding(bindings, child.name, candidate))
		if err != nil {
			return nil, 0, err
		}
		if m != nil {
			return m, p, nil
		}
	}
	return nil, 0, nil
}

// searchDynamicInline handles dynamic children that are not
// segment-bounded (e.g. "{name}.tar.gz" sharing a segment with
// trailing static text), where a shorter capture can lead to a lower-
// priority leaf than a longer one. For each child, every candidate
// length is tried shortest to longest and the result is kept only if
// it bottoms out at a priority at least as high as the best seen so
// far, so a longer capture wins ties with an equal-priority shorter
// one. The first child to produce any match at all wins; later
// (lower-priority) sibling children are never consulted.
func searchDynamicInline(n *node, input []byte, segEnd int, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	boundaries := byteBoundaries(input[:segEnd])

	for _, child := range n.dynamicChildren {
		var best *Match
		var bestPriority int

		for i := len(boundaries) - 1; i >= 0; i-- {
			length := boundaries[i]
			candidate := input[:length]
			ok, err := checkConstraint(registry, child.constraint, candidate, onReject)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}

			m, p, err := searchNode(child, input[length:], delim, registry, onReject, withBinding(bindings, child.name, candidate))
			if err != nil {
				return nil, 0, err
			}
			if m == nil {
				continue
			}
			if best == nil || p >= bestPriority {
				best, bestPriority = m, p
			}
		}

		if best != nil {
			return best, bestPriority, nil
		}
	}
	return nil, 0, nil
}

func searchWildcard(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	if len(n.wildcardChildren) == 0 {
		return nil, 0, nil
	}

	if n.wildcardShortcut {
		return searchWildcardSegment(n, input, delim, registry, onReject, bindings)
	}
	return searchWildcardInline(n, input, delim, registry, onReject, bindings)
}

// searchWildcardSegment handles segment-bounded wildcard children by
// trying each whole-segment boundary longest first and returning the
// first child/boundary pair whose subtree matches.
func searchWildcardSegment(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	for _, child := range n.wildcardChildren {
		for _, length := range segmentBoundaries(input, delim) {
			if length == 0 {
				continue
			}
			candidate := input[:length]
			ok, err := checkConstraint(registry, child.constraint, candidate, onReject)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}

			m, p, err := searchNode(child, input[length:], delim, registry, onReject, withBinding(bindings, child.name, candidate))
			if err != nil {
				return nil, 0, err
			}
			if m != nil {
				return m, p, nil
			}
		}
	}
	return nil, 0, nil
}

// searchWildcardInline mirrors searchDynamicInline: every candidate
// length is tried shortest to longest and the highest-priority
// downstream result wins, with a longer capture breaking ties.
func searchWildcardInline(n *node, input []byte, delim byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	boundaries := byteBoundaries(input)

	for _, child := range n.wildcardChildren {
		var best *Match
		var bestPriority int

		for i := len(boundaries) - 1; i >= 0; i-- {
			length := boundaries[i]
			candidate := input[:length]
			ok, err := checkConstraint(registry, child.constraint, candidate, onReject)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}

			m, p, err := searchNode(child, input[length:], delim, registry, onReject, withBinding(bindings, child.name, candidate))
			if err != nil {
				return nil, 0, err
			}
			if m == nil {
				continue
			}
			if best == nil || p >= bestPriority {
				best, bestPriority = m, p
			}
		}

		if best != nil {
			return best, bestPriority, nil
		}
	}
	return nil, 0, nil
}

func searchEndWildcard(n *node, input []byte, registry *constraint.Registry, onReject func(), bindings []Binding) (*Match, int, error) {
	for _, child := range n.endWildcardChildren {
		if child.data == nil {
			continue
		}
		ok, err := checkConstraint(registry, child.constraint, input, onReject)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			continue
		}
		return buildMatch(child, withBinding(bindings, child.name, input)), child.priority, nil
	}
	return nil, 0, nil
}

// checkConstraint reports whether value satisfies the named constraint.
// An empty name means "unconstrained". A non-UTF-8 value presented to a
// real constraint is a DecodingError, not simply a non-match: every
// built-in predicate parses value as text.
func checkConstraint(registry *constraint.Registry, name string, value []byte, onReject func()) (bool, error) {
	if name == "" {
		return true, nil
	}
	if !utf8.Valid(value) {
		return false, &DecodingError{Input: value}
	}
	predicate, ok := registry.Lookup(name)
	if !ok {
		return false, nil
	}
	if !predicate(value) {
		if onReject != nil {
			onReject()
		}
		return false, nil
	}
	return true, nil
}

// withBinding appends to a fresh copy of bindings so that sibling search
// branches never observe each other's tentative captures through a
// shared backing array.
func withBinding(bindings []Binding, name string, value []byte) []Binding {
	next := make([]Binding, len(bindings), len(bindings)+1)
	copy(next, bindings)
	return append(next, Binding{Name: name, Value: value})
}

// byteBoundaries returns every candidate length for an inline (non
// segment-bounded) capture, longest first.
func byteBoundaries(segment []byte) []int {
	lengths := make([]int, len(segment))
	for i := range lengths {
		lengths[i] = len(segment) - i
	}
	return lengths
}

// segmentBoundaries returns every candidate length for a segment-bounded
// wildcard capture spanning one or more whole segments of input, longest
// first.
func segmentBoundaries(input []byte, delim byte) []int {
	bounds := []int{len(input)}
	for i := len(input) - 1; i > 0; i-- {
		if input[i] == delim {
			bounds = append(bounds, i)
		}
	}
	return bounds
}

func buildMatch(n *node, bindings []Binding) *Match {
	return &Match{
		Value:    n.data.shared.value,
		Template: n.data.shared.original,
		Expanded: n.data.expandedOrEmpty(),
		Bindings: bindings,
	}
}
