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

// nodeKind is the sum-type tag for a node's state: which kind-specific
// key fields (prefix, or name+constraint) are meaningful.
type nodeKind uint8

const (
	kindRoot nodeKind = iota
	kindStatic
	kindDynamic
	kindWildcard
	kindEndWildcard
)

// routeData is the payload shared by every leaf an optional-group
// expansion produced from one original Insert call. Go's garbage
// collector gives this "longest holder wins" lifetime for free: every
// leaf simply keeps a pointer to the same instance.
type routeData struct {
	value    any
	original string // the template exactly as passed to Insert
}

// leafData is the per-leaf data slot. expanded is the concrete spelling
// this particular leaf was reached by; it equals original's single
// expansion when the template had no optional groups.
type leafData struct {
	shared   *routeData
	expanded string
}

func (d *leafData) template() string {
	if d.expanded != "" && d.expanded != d.shared.original {
		return d.expanded
	}
	return d.shared.original
}

// expandedOrEmpty returns the concrete expansion this leaf was reached
// by, or "" when the original template had no optional groups (so the
// expansion is identical to the original spelling).
func (d *leafData) expandedOrEmpty() string {
	if d.expanded != "" && d.expanded != d.shared.original {
		return d.expanded
	}
	return ""
}

// node is a single vertex of the trie. Static, dynamic, wildcard, and
// end-wildcard matches each follow different rules, so each kind gets
// its own child list below rather than a single list of variants.
type node struct {
	kind       nodeKind
	prefix     []byte // kindStatic
	name       string // kindDynamic, kindWildcard, kindEndWildcard
	constraint string // kindDynamic, kindWildcard, kindEndWildcard; "" if none

	data *leafData

	staticChildren      []*node
	dynamicChildren     []*node
	wildcardChildren    []*node
	endWildcardChildren []*node

	// staticBloom is a negative-lookup fast path over staticChildren's
	// lead bytes, built by the Optimizer once the list is wide enough
	// (bloomThreshold) to make a guaranteed-miss check worth the hash.
	staticBloom *bloomFilter

	// dynamicShortcut (resp. wildcardShortcut) is set by the Optimizer
	// iff every child in dynamicChildren (resp. wildcardChildren) is
	// segment-bounded -- i.e. every static child of it begins with the
	// delimiter, so no static text continues the parameter's segment
	// inline (as in "{name}.txt"). It lets Search skip the general
	// byte-by-byte candidate search.
	dynamicShortcut  bool
	wildcardShortcut bool

	priority          int
	needsOptimization bool
}

func newStaticNode(prefix []byte) *node {
	return &node{kind: kindStatic, prefix: prefix}
}

func newDynamicNode(name, constraint string) *node {
	return &node{kind: kindDynamic, name: name, constraint: constraint}
}

func newWildcardNode(name, constraint string) *node {
	return &node{kind: kindWildcard, name: name, constraint: constraint}
}

func newEndWildcardNode(name, constraint string) *node {
	return &node{kind: kindEndWildcard, name: name, constraint: constraint}
}

// isEmpty reports whether n carries no data and has no children of any
// kind, i.e. it is a candidate for removal during Delete.
func (n *node) isEmpty() bool {
	return n.data == nil &&
		len(n.staticChildren) == 0 &&
		len(n.dynamicChildren) == 0 &&
		len(n.wildcardChildren) == 0 &&
		len(n.endWildcardChildren) == 0
}

// isCompressible reports whether n is a data-less pass-through with
// exactly one static child and nothing else, making it eligible to
// merge with that child during Delete.
func (n *node) isCompressible() bool {
	return n.data == nil &&
		len(n.staticChildren) == 1 &&
		len(n.dynamicChildren) == 0 &&
		len(n.wildcardChildren) == 0 &&
		len(n.endWildcardChildren) == 0
}

// commonPrefixLen returns the length of the longest shared byte prefix
// of a and b.
func commonPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
