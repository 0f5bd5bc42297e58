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

import "sort"

// Priority weights. A constrained child always outranks an unconstrained
// sibling of the same kind. The kind bases are not separated from each
// other: the constraint bonus equals the wildcard base, so a constrained
// wildcard ties an unconstrained dynamic child and a constrained
// end-wildcard outranks an unconstrained wildcard. Sorting only compares
// children within one list; the inline searches also compare the
// priorities of whatever leaves their candidate captures reach.
const (
	priorityStaticUnit      = 10
	priorityDelimiterBonus  = 5
	priorityDynamicBase     = 1000
	priorityConstraintBonus = 500
	priorityWildcardBase    = 500
	priorityEndWildcardBase = 100
)

// optimize recomputes priorities and sort order for n and its entire
// subtree, and sets the shortcut bits. It is invoked from the
// router root after every Insert and Delete; it is pure in the sense
// that it only reorders children and recomputes derived bits, never
// drops a node.
func optimize(n *node, delim byte) {
	for _, c := range n.staticChildren {
		optimize(c, delim)
	}
	for _, c := range n.dynamicChildren {
		optimize(c, delim)
	}
	for _, c := range n.wildcardChildren {
		optimize(c, delim)
	}
	for _, c := range n.endWildcardChildren {
		optimize(c, delim)
	}

	for _, c := range n.staticChildren {
		c.priority = staticPriority(c, delim)
	}
	for _, c := range n.dynamicChildren {
		c.priority = dynamicPriority(c)
	}
	for _, c := range n.wildcardChildren {
		c.priority = wildcardPriority(c)
	}
	for _, c := range n.endWildcardChildren {
		c.priority = endWildcardPriority(c)
	}

	sortByPriorityDesc(n.staticChildren)
	sortByPriorityDesc(n.dynamicChildren)
	sortByPriorityDesc(n.wildcardChildren)
	sortByPriorityDesc(n.endWildcardChildren)

	n.dynamicShortcut = allSegmentBounded(n.dynamicChildren, delim)
	n.wildcardShortcut = allSegmentBounded(n.wildcardChildren, delim)

	if len(n.staticChildren) >= bloomThreshold {
		bf := newBloomFilter(len(n.staticChildren))
		for _, c := range n.staticChildren {
			bf.add(c.prefix[:1])
		}
		n.staticBloom = bf
	} else {
		n.staticBloom = nil
	}

	n.needsOptimization = false
}

func staticPriority(n *node, delim byte) int {
	p := len(n.prefix) * priorityStaticUnit
	for _, b := range n.prefix {
		if b == delim {
			p += priorityDelimiterBonus
		}
	}
	return p
}

func dynamicPriority(n *node) int {
	p := priorityDynamicBase
	if n.constraint != "" {
		p += priorityConstraintBonus
	}
	return p
}

func wildcardPriority(n *node) int {
	p := priorityWildcardBase
	if n.constraint != "" {
		p += priorityConstraintBonus
	}
	return p
}

func endWildcardPriority(n *node) int {
	p := priorityEndWildcardBase
	if n.constraint != "" {
		p += priorityConstraintBonus
	}
	return p
}

func sortByPriorityDesc(children []*node) {
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].priority > children[j].priority
	})
}

// allSegmentBounded reports whether every child in children occupies a
// full delimiter-bounded segment in every template that reaches it,
// i.e. none of its own static children continue the same segment
// inline. An empty list is vacuously segment-bounded.
func allSegmentBounded(children []*node, delim byte) bool {
	for _, c := range children {
		for _, sc := range c.staticChildren {
			if len(sc.prefix) == 0 || sc.prefix[0] != delim {
				return false
			}
		}
	}
	return true
}
