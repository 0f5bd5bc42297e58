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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/pathtrie/constraint"
)

func TestNewDefaultsToPathDelimiter(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Insert("/users/{id}", "handler"))

	m, err := r.Search([]byte("/users/42"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "handler", m.Value)
}

func TestNewAuthorityUsesDotDelimiter(t *testing.T) {
	r, err := NewAuthority()
	require.NoError(t, err)
	require.NoError(t, r.Insert(".{*sub}.example.com", "host-handler"))

	m, err := r.Search([]byte(".api.example.com"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "host-handler", m.Value)
}

func TestMustNewPanicsOnInvalidDelimiter(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(WithDelimiter(0))
	})
}

func TestInsertSearchDeleteRoundTrip(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/posts/{id:u64}", "post-handler"))

	m, err := r.Search([]byte("/posts/7"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "post-handler", m.Value)

	value, err := r.Delete("/posts/{id:u64}")
	require.NoError(t, err)
	assert.Equal(t, "post-handler", value)

	m, err = r.Search([]byte("/posts/7"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestInsertDuplicateRouteFails(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a", "first"))

	err := r.Insert("/a", "second")
	require.Error(t, err)
	var dup *DuplicateRouteError
	require.ErrorAs(t, err, &dup)
}

func TestInsertUnknownConstraintFails(t *testing.T) {
	r := MustNew()
	err := r.Insert("/a/{id:not-a-real-constraint}", "x")
	require.Error(t, err)
	var unknown *UnknownConstraintError
	require.ErrorAs(t, err, &unknown)
}

func TestInsertGroupedTemplateExpandsAll(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a(/b)", "grouped"))

	for _, path := range []string{"/a", "/a/b"} {
		m, err := r.Search([]byte(path))
		require.NoError(t, err)
		require.NotNil(t, m, "expected %q to match", path)
		assert.Equal(t, "grouped", m.Value)
	}
}

func TestInsertRollsBackOnPartialExpansionConflict(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a", "existing"))

	// "/a(/b)" inserts its "/a/b" expansion first, then collides on "/a".
	err := r.Insert("/a(/b)", "grouped")
	require.Error(t, err)

	m, err := r.Search([]byte("/a/b"))
	require.NoError(t, err)
	assert.Nil(t, m, "the /a/b expansion must be rolled back on conflict")

	m, err = r.Search([]byte("/a"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "existing", m.Value, "the pre-existing route must be untouched")
}

func TestDeleteByGroupedTemplateRemovesAllExpansions(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a(/b)", "grouped"))

	_, err := r.Delete("/a(/b)")
	require.NoError(t, err)

	for _, path := range []string{"/a", "/a/b"} {
		m, err := r.Search([]byte(path))
		require.NoError(t, err)
		assert.Nil(t, m, "expected %q to be gone", path)
	}
}

func TestDeleteByConcreteExpansionOfGroupedTemplateMismatches(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a(/b)", "grouped"))

	_, err := r.Delete("/a/b")
	require.Error(t, err)
	var mismatch *RouteMismatchError
	require.ErrorAs(t, err, &mismatch)

	// No mutation should have occurred.
	m, err := r.Search([]byte("/a/b"))
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestDeleteGroupedSyntaxAgainstUngroupedInsertMismatches(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a/b", "plain"))

	_, err := r.Delete("/a(/b)")
	require.Error(t, err)
	var mismatch *RouteMismatchError
	require.ErrorAs(t, err, &mismatch)

	m, err := r.Search([]byte("/a/b"))
	require.NoError(t, err)
	require.NotNil(t, m, "failed delete must not mutate the trie")
}

func TestDeleteNotFound(t *testing.T) {
	r := MustNew()
	_, err := r.Delete("/missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRegisterConstraintThenUseInTemplate(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.RegisterConstraint("slug", "string", func(v []byte) bool {
		return len(v) > 0 && v[0] != '-'
	}))
	require.NoError(t, r.Insert("/posts/{slug:slug}", "by-slug"))

	m, err := r.Search([]byte("/posts/hello-world"))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "by-slug", m.Value)

	m, err = r.Search([]byte("/posts/-bad"))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRegisterConstraintDuplicateMatchesBothSentinels(t *testing.T) {
	r := MustNew()
	predicate := func(v []byte) bool { return true }
	require.NoError(t, r.RegisterConstraint("slug", "string", predicate))

	err := r.RegisterConstraint("slug", "string", predicate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateConstraintName)
	assert.ErrorIs(t, err, constraint.ErrDuplicateName)
}

func TestWithConstraintRegistersBeforeInsert(t *testing.T) {
	r := MustNew(WithConstraint("even", "custom", func(v []byte) bool {
		return len(v)%2 == 0
	}))
	require.NoError(t, r.Insert("/x/{v:even}", "ok"))

	m, err := r.Search([]byte("/x/ab"))
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestRoutesReturnsIntrospectionInfo(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a(/b)", "grouped"))
	require.NoError(t, r.Insert("/c", "plain"))

	routes := r.Routes()
	byTemplate := make(map[string]RouteInfo, len(routes))
	for _, info := range routes {
		byTemplate[info.Template] = info
	}

	require.Contains(t, byTemplate, "/a(/b)")
	assert.ElementsMatch(t, []string{"/a", "/a/b"}, byTemplate["/a(/b)"].Expansions)
	require.Contains(t, byTemplate, "/c")
	assert.Equal(t, "plain", byTemplate["/c"].Value)
}

func TestStringProducesTreeDiagram(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Insert("/a", "x"))
	require.NoError(t, r.Insert("/b/{id}", "y"))

	out := r.String()
	assert.Contains(t, out, "▼")
	assert.Contains(t, out, "[/a]")
	assert.Contains(t, out, "{id}")
}
