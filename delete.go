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

// deleteFrom removes the template described by stack from root, checking
// that the leaf it reaches was inserted under expectedOriginal. On
// success it returns the removed leaf so the caller can hand the user data
// back, and the caller re-runs the Optimizer from root.
func deleteFrom(root *node, stack *partStack, expectedOriginal string) (*leafData, error) {
	return deleteNode(root, stack, expectedOriginal)
}

func deleteNode(n *node, stack *partStack, expectedOriginal string) (*leafData, error) {
	p, ok := stack.pop()
	if !ok {
		if n.data == nil {
			return nil, ErrNotFound
		}
		if n.data.shared.original != expectedOriginal {
			return nil, &RouteMismatchError{Route: expectedOriginal, Inserted: n.data.shared.original}
		}
		removed := n.data
		n.data = nil
		n.needsOptimization = true
		return removed, nil
	}

	switch p.kind {
	case partStatic:
		return deleteStatic(n, p.prefix, stack, expectedOriginal)
	case partDynamic:
		return deleteDynamic(n, p, stack, expectedOriginal)
	case partWildcard:
		if stack.empty() {
			return deleteEndWildcard(n, p, expectedOriginal)
		}
		return deleteWildcardChild(n, p, stack, expectedOriginal)
	default:
		panic("pathtrie: unreachable part kind")
	}
}

func deleteStatic(n *node, prefix []byte, stack *partStack, expectedOriginal string) (*leafData, error) {
	for i, child := range n.staticChildren {
		if child.prefix[0] != prefix[0] {
			continue
		}

		common := commonPrefixLen(child.prefix, prefix)

		switch {
		case common == len(child.prefix) && common == len(prefix):
			removed, err := deleteNode(child, stack, expectedOriginal)
			if err != nil {
				return nil, err
			}
			n.needsOptimization = true
			if collapseStaticChild(child) {
				n.staticChildren = removeNodeAt(n.staticChildren, i)
			}
			return removed, nil

		case common == len(child.prefix):
			removed, err := deleteStatic(child, prefix[common:], stack, expectedOriginal)
			if err != nil {
				return nil, err
			}
			n.needsOptimization = true
			if collapseStaticChild(child) {
				n.staticChildren = removeNodeAt(n.staticChildren, i)
			}
			return removed, nil

		default:
			return nil, ErrNotFound
		}
	}

	return nil, ErrNotFound
}

func deleteDynamic(n *node, p part, stack *partStack, expectedOriginal string) (*leafData, error) {
	for i, child := range n.dynamicChildren {
		if child.name != p.name || child.constraint != p.constraint {
			continue
		}
		removed, err := deleteNode(child, stack, expectedOriginal)
		if err != nil {
			return nil, err
		}
		n.needsOptimization = true
		if child.isEmpty() {
			n.dynamicChildren = removeNodeAt(n.dynamicChildren, i)
		}
		return removed, nil
	}
	return nil, ErrNotFound
}

func deleteWildcardChild(n *node, p part, stack *partStack, expectedOriginal string) (*leafData, error) {
	for i, child := range n.wildcardChildren {
		if child.name != p.name || child.constraint != p.constraint {
			continue
		}
		removed, err := deleteNode(child, stack, expectedOriginal)
		if err != nil {
			return nil, err
		}
		n.needsOptimization = true
		if child.isEmpty() {
			n.wildcardChildren = removeNodeAt(n.wildcardChildren, i)
		}
		return removed, nil
	}
	return nil, ErrNotFound
}

func deleteEndWildcard(n *node, p part, expectedOriginal string) (*leafData, error) {
	for i, child := range n.endWildcardChildren {
		if child.name != p.name || child.constraint != p.constraint {
			continue
		}
		if child.data == nil {
			return nil, ErrNotFound
		}
		if child.data.shared.original != expectedOriginal {
			return nil, &RouteMismatchError{Route: expectedOriginal, Inserted: child.data.shared.original}
		}
		removed := child.data
		child.data = nil
		n.needsOptimization = true
		if child.isEmpty() {
			n.endWildcardChildren = removeNodeAt(n.endWildcardChildren, i)
		}
		return removed, nil
	}
	return nil, ErrNotFound
}

// collapseStaticChild folds child's single static grandchild into child
// (prefix concatenation) whenever child is compressible, cascading as
// long as the result is itself compressible. It reports whether child
// should now be pruned entirely (it became empty, which only happens
// when it had no grandchild to absorb).
func collapseStaticChild(child *node) bool {
	if child.isEmpty() {
		return true
	}
	for child.kind == kindStatic && child.isCompressible() {
		grandchild := child.staticChildren[0]
		child.prefix = append(child.prefix, grandchild.prefix...)
		child.data = grandchild.data
		child.staticChildren = grandchild.staticChildren
		child.dynamicChildren = grandchild.dynamicChildren
		child.wildcardChildren = grandchild.wildcardChildren
		child.endWildcardChildren = grandchild.endWildcardChildren
		child.dynamicShortcut = grandchild.dynamicShortcut
		child.wildcardShortcut = grandchild.wildcardShortcut
		child.needsOptimization = true
	}
	return false
}

func removeNodeAt(children []*node, i int) []*node {
	return append(children[:i], children[i+1:]...)
}
