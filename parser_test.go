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

func TestParseTemplateStaticAndDynamic(t *testing.T) {
	elems, err := parseTemplate("/users/{id:u64}", '/')
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, elemStatic, elems[0].kind)
	assert.Equal(t, "/users/", string(elems[0].prefix))
	assert.Equal(t, elemDynamic, elems[1].kind)
	assert.Equal(t, "id", elems[1].name)
	assert.Equal(t, "u64", elems[1].constraint)
}

func TestParseTemplateWildcard(t *testing.T) {
	elems, err := parseTemplate("/files/{*path}", '/')
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, elemWildcard, elems[1].kind)
	assert.Equal(t, "path", elems[1].name)
}

func TestParseTemplateOptionalGroup(t *testing.T) {
	elems, err := parseTemplate("/a(/b)", '/')
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, elemStatic, elems[0].kind)
	assert.Equal(t, elemGroup, elems[1].kind)
	require.Len(t, elems[1].children, 1)
	assert.Equal(t, "/b", string(elems[1].children[0].prefix))
}

func TestParseTemplateEscapedBraces(t *testing.T) {
	elems, err := parseTemplate(`/a\{literal\}`, '/')
	require.NoError(t, err)
	require.Len(t, elems, 1)
	assert.Equal(t, "/a{literal}", string(elems[0].prefix))
}

func TestParseTemplateRejectsMissingLeadingDelimiter(t *testing.T) {
	_, err := parseTemplate("users/{id}", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "missing_leading_delimiter", terr.Reason)
}

func TestParseTemplateRejectsEmptyTemplate(t *testing.T) {
	_, err := parseTemplate("", '/')
	require.Error(t, err)
}

func TestParseTemplateRejectsUnbalancedParenthesis(t *testing.T) {
	_, err := parseTemplate("/a(/b", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "unbalanced_parenthesis", terr.Reason)
}

func TestParseTemplateRejectsUnbalancedBrace(t *testing.T) {
	_, err := parseTemplate("/a{id", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "unbalanced_brace", terr.Reason)
}

func TestParseTemplateRejectsEmptyBraces(t *testing.T) {
	_, err := parseTemplate("/a{}", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "empty_braces", terr.Reason)
}

func TestParseTemplateRejectsEmptyParentheses(t *testing.T) {
	_, err := parseTemplate("/a()", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "empty_parentheses", terr.Reason)
}

func TestParseTemplateRejectsInvalidParameterName(t *testing.T) {
	_, err := parseTemplate("/a{na/me}", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "invalid_parameter", terr.Reason)
}

func TestParseTemplateRejectsTouchingParameters(t *testing.T) {
	_, err := parseTemplate("/{a}{b}", '/')
	require.Error(t, err)
	var terr *TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "touching_parameters", terr.Reason)
}

func TestParseTemplateAuthorityFlavor(t *testing.T) {
	elems, err := parseTemplate(".api.{*sub}", '.')
	require.NoError(t, err)
	require.Len(t, elems, 2)
	assert.Equal(t, ".api.", string(elems[0].prefix))
}

func TestTemplateErrorRendersCaretUnderSpan(t *testing.T) {
	_, err := parseTemplate("/a{}", '/')
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "Template: /a{}")
	assert.Contains(t, msg, "^^")
}
