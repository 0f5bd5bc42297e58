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
	"github.com/stretchr/testify/require"
)

func mustInsert(t *testing.T, root *node, template string, value any) {
	t.Helper()
	elems, err := parseTemplate(template, '/')
	require.NoError(t, err)
	expansions, err := expandTemplate(template, elems, '/')
	require.NoError(t, err)
	require.Len(t, expansions, 1, "mustInsert only supports group-free templates")
	stack := newPartStack(expansions[0].parts)
	leaf := &leafData{shared: &routeData{value: value, original: template}, expanded: expansions[0].source}
	require.NoError(t, insertInto(root, stack, leaf))
}

func TestInsertIntoSplitsSharedStaticPrefix(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users", "list")
	mustInsert(t, root, "/user", "single")

	require.Len(t, root.staticChildren, 1)
	assert.Equal(t, "/user", string(root.staticChildren[0].prefix))
	require.Len(t, root.staticChildren[0].staticChildren, 1)
	assert.Equal(t, "s", string(root.staticChildren[0].staticChildren[0].prefix))
}

func TestInsertIntoDuplicateReturnsConflict(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users", "list")

	elems, err := parseTemplate("/users", '/')
	require.NoError(t, err)
	expansions, err := expandTemplate("/users", elems, '/')
	require.NoError(t, err)
	stack := newPartStack(expansions[0].parts)
	leaf := &leafData{shared: &routeData{value: "dup", original: "/users"}, expanded: "/users"}

	err = insertInto(root, stack, leaf)
	require.Error(t, err)
	var conflict *insertConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "list", conflict.existing.data.shared.value)
}

func TestInsertIntoDynamicAndWildcard(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users/{id}", "by-id")
	mustInsert(t, root, "/files/{*path}", "by-path")

	// The shared leading "/" is split off into one parent node.
	require.Len(t, root.staticChildren, 1)
	shared := root.staticChildren[0]
	require.Len(t, shared.staticChildren, 2)
	var usersNode, filesNode *node
	for _, c := range shared.staticChildren {
		switch string(c.prefix) {
		case "users/":
			usersNode = c
		case "files/":
			filesNode = c
		}
	}
	require.NotNil(t, usersNode)
	require.NotNil(t, filesNode)
	require.Len(t, usersNode.dynamicChildren, 1)
	assert.Equal(t, "id", usersNode.dynamicChildren[0].name)
	require.Len(t, filesNode.endWildcardChildren, 1)
	assert.Equal(t, "path", filesNode.endWildcardChildren[0].name)
}

func TestInsertIntoDistinctConstraintsCoexist(t *testing.T) {
	root := &node{kind: kindRoot}
	mustInsert(t, root, "/users/{id:u64}", "numeric")
	mustInsert(t, root, "/users/{id}", "any")

	usersNode := root.staticChildren[0]
	require.Len(t, usersNode.dynamicChildren, 2)
}
