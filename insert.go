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

// insertConflict is returned internally when a concrete template collides
// with an already-occupied leaf. Router.Insert turns it into a
// DuplicateRouteError carrying both spellings.
type insertConflict struct {
	existing *node
}

func (e *insertConflict) Error() string { return "duplicate route" }

// insertInto walks or grows root to place the template described by
// stack, attaching leaf at the terminal node. Parts pop off stack in
// forward template order: the first pop is the part nearest the root.
func insertInto(root *node, stack *partStack, leaf *leafData) error {
	return insertNode(root, stack, leaf)
}

func insertNode(n *node, stack *partStack, leaf *leafData) error {
	p, ok := stack.pop()
	if !ok {
		if n.data != nil {
			return &insertConflict{existing: n}
		}
		n.data = leaf
		n.needsOptimization = true
		return nil
	}

	switch p.kind {
	case partStatic:
		return insertStatic(n, p.prefix, stack, leaf)
	case partDynamic:
		return insertDynamic(n, p, stack, leaf)
	case partWildcard:
		if stack.empty() {
			return insertEndWildcard(n, p, leaf)
		}
		return insertWildcardChild(n, p, stack, leaf)
	default:
		panic("pathtrie: unreachable part kind")
	}
}

// insertStatic places prefix under n, splitting an existing static child
// at the point the two byte sequences diverge if necessary.
func insertStatic(n *node, prefix []byte, stack *partStack, leaf *leafData) error {
	for _, child := range n.staticChildren {
		if child.prefix[0] != prefix[0] {
			continue
		}

		common := commonPrefixLen(child.prefix, prefix)

		switch {
		case common == len(child.prefix) && common == len(prefix):
			n.needsOptimization = true
			return insertNode(child, stack, leaf)

		case common == len(child.prefix):
			n.needsOptimization = true
			return insertStatic(child, prefix[common:], stack, leaf)

		default:
			// Split child at the common prefix. The former tail and its
			// whole subtree move onto a fresh node; the truncated child
			// keeps only the shared prefix.
			tail := newStaticNode(append([]byte(nil), child.prefix[common:]...))
			tail.data = child.data
			tail.staticChildren = child.staticChildren
			tail.dynamicChildren = child.dynamicChildren
			tail.wildcardChildren = child.wildcardChildren
			tail.endWildcardChildren = child.endWildcardChildren
			tail.dynamicShortcut = child.dynamicShortcut
			tail.wildcardShortcut = child.wildcardShortcut

			child.prefix = child.prefix[:common]
			child.data = nil
			child.staticChildren = []*node{tail}
			child.dynamicChildren = nil
			child.wildcardChildren = nil
			child.endWildcardChildren = nil
			child.dynamicShortcut = false
			child.wildcardShortcut = false
			child.needsOptimization = true
			n.needsOptimization = true

			if common == len(prefix) {
				// The incoming prefix was fully absorbed by the common
				// portion; continue inserting straight into child.
				return insertNode(child, stack, leaf)
			}

			incoming := newStaticNode(append([]byte(nil), prefix[common:]...))
			child.staticChildren = append(child.staticChildren, incoming)
			return insertNode(incoming, stack, leaf)
		}
	}

	newChild := newStaticNode(append([]byte(nil), prefix...))
	n.staticChildren = append(n.staticChildren, newChild)
	n.needsOptimization = true
	return insertNode(newChild, stack, leaf)
}

func insertDynamic(n *node, p part, stack *partStack, leaf *leafData) error {
	for _, child := range n.dynamicChildren {
		if child.name == p.name && child.constraint == p.constraint {
			return insertNode(child, stack, leaf)
		}
	}

	newChild := newDynamicNode(p.name, p.constraint)
	n.dynamicChildren = append(n.dynamicChildren, newChild)
	n.needsOptimization = true
	return insertNode(newChild, stack, leaf)
}

func insertWildcardChild(n *node, p part, stack *partStack, leaf *leafData) error {
	for _, child := range n.wildcardChildren {
		if child.name == p.name && child.constraint == p.constraint {
			return insertNode(child, stack, leaf)
		}
	}

	newChild := newWildcardNode(p.name, p.constraint)
	n.wildcardChildren = append(n.wildcardChildren, newChild)
	n.needsOptimization = true
	return insertNode(newChild, stack, leaf)
}

func insertEndWildcard(n *node, p part, leaf *leafData) error {
	for _, child := range n.endWildcardChildren {
		if child.name == p.name && child.constraint == p.constraint {
			if child.data != nil {
				return &insertConflict{existing: child}
			}
			child.data = leaf
			return nil
		}
	}

	newChild := newEndWildcardNode(p.name, p.constraint)
	newChild.data = leaf
	n.endWildcardChildren = append(n.endWildcardChildren, newChild)
	n.needsOptimization = true
	return nil
}
