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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimizeSortsConstrainedDynamicFirst(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users/{id}", "any")
	mustInsert(t, root, "/users/{id:u64}", "numeric")

	optimize(root, '/')

	usersNode := root.staticChildren[0]
	assert.Equal(t, "u64", usersNode.dynamicChildren[0].constraint, "constrained dynamic child should sort first")
	assert.Equal(t, "", usersNode.dynamicChildren[1].constraint)
}

func TestOptimizeDynamicShortcutSetWhenSegmentBounded(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users/{id}", "any")

	optimize(root, '/')

	usersNode := root.staticChildren[0]
	assert.True(t, usersNode.dynamicShortcut)
}

func TestOptimizeDynamicShortcutClearedForInlineAdjacentParams(t *testing.T) {
	root := &node{kind: kindRoot}
	// The static continuation "-suffix" shares the parameter's segment,
	// so the dynamic child is not segment-bounded.
	mustInsert(t, root, "/items/{a}-suffix", "x")

	optimize(root, '/')

	itemsNode := root.staticChildren[0]
	assert.False(t, itemsNode.dynamicShortcut, "inline static continuation within the segment disables the shortcut")
}

func TestOptimizeIsIdempotent(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/a/{id:u64}", "1")
	mustInsert(t, root, "/a/{id}", "2")
	mustInsert(t, root, "/a/{*rest}", "3")

	optimize(root, '/')
	first := (&Router{root: root, delim: '/'}).String()

	optimize(root, '/')
	second := (&Router{root: root, delim: '/'}).String()

	assert.Equal(t, first, second)
}

func TestAllSegmentBounded(t *testing.T) {
	bounded := []*node{newDynamicNode("id", "")}
	assert.True(t, allSegmentBounded(bounded, '/'))

	bounded[0].staticChildren = []*node{newStaticNode([]byte("/x"))}
	assert.True(t, allSegmentBounded(bounded, '/'))

	bounded[0].staticChildren = []*node{newStaticNode([]byte("-x"))}
	assert.False(t, allSegmentBounded(bounded, '/'))
}
