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

import "strings"

// elemKind distinguishes the parse-tree nodes the Parser emits. Unlike
// part, an elemGroup may still appear here: groups are only resolved
// into concrete parts by the Expander.
type elemKind uint8

const (
	elemStatic elemKind = iota
	elemDynamic
	elemWildcard
	elemGroup
)

// element is one node of the parsed, pre-expansion template tree.
type element struct {
	kind       elemKind
	prefix     []byte    // elemStatic
	name       string    // elemDynamic, elemWildcard
	constraint string    // elemDynamic, elemWildcard
	children   []element // elemGroup
}

// forbiddenNameChars are forbidden in a parameter or constraint name.
const forbiddenNameChars = ":*{}()/"

// parseTemplate tokenizes a raw template byte string into an ordered
// element tree. delim is '/' for the path flavor and '.'
// for the authority flavor.
func parseTemplate(template string, delim byte) ([]element, error) {
	if template == "" {
		return nil, &TemplateError{Template: template, Reason: "empty", Message: "empty template"}
	}
	if template[0] != delim {
		return nil, newTemplateError(template, "missing_leading_delimiter",
			"missing leading delimiter",
			"Routes must begin with '"+string(delim)+"'")
	}

	p := &templateParser{input: template, delim: delim}
	return p.parseGroup(0, len(template))
}

type templateParser struct {
	input string
	delim byte
}

// parseGroup parses the byte range [start, end) of the template as a
// flat run of static/parameter parts interleaved with nested groups.
func (p *templateParser) parseGroup(start, end int) ([]element, error) {
	var elems []element
	var staticStart = -1

	flushStatic := func(upto int) {
		if staticStart >= 0 && upto > staticStart {
			elems = append(elems, element{kind: elemStatic, prefix: []byte(unescape(p.input[staticStart:upto]))})
		}
		staticStart = -1
	}

	i := start
	for i < end {
		c := p.input[i]

		switch c {
		case '\\':
			if i+1 >= end {
				return nil, newTemplateError(p.input, "unbalanced_brace", "unbalanced brace", "", [2]int{i, 1})
			}
			if staticStart < 0 {
				staticStart = i
			}
			i += 2
			continue

		case '(':
			flushStatic(i)
			depth := 1
			j := i + 1
			for j < end && depth > 0 {
				switch p.input[j] {
				case '\\':
					j++
				case '(':
					depth++
				case ')':
					depth--
				}
				j++
			}
			if depth != 0 {
				return nil, newTemplateError(p.input, "unbalanced_parenthesis", "unbalanced parenthesis",
					"Use '\\(' and '\\)' to represent literal '(' and ')' characters in the template", [2]int{i, 1})
			}
			closeParen := j - 1
			if closeParen == i+1 {
				return nil, newTemplateError(p.input, "empty_parentheses", "empty parentheses", "", [2]int{i, 2})
			}
			children, err := p.parseGroup(i+1, closeParen)
			if err != nil {
				return nil, err
			}
			elems = append(elems, element{kind: elemGroup, children: children})
			i = j
			continue

		case ')':
			return nil, newTemplateError(p.input, "unbalanced_parenthesis", "unbalanced parenthesis",
				"Use '\\(' and '\\)' to represent literal '(' and ')' characters in the template", [2]int{i, 1})

		case '{':
			flushStatic(i)
			j := i + 1
			for j < end && p.input[j] != '}' {
				j++
			}
			if j >= end {
				return nil, newTemplateError(p.input, "unbalanced_brace", "unbalanced brace", "", [2]int{i, 1})
			}
			elem, err := p.parseParameter(i, j+1)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			i = j + 1
			continue

		case '}':
			return nil, newTemplateError(p.input, "unbalanced_brace", "unbalanced brace", "", [2]int{i, 1})

		default:
			if staticStart < 0 {
				staticStart = i
			}
			i++
		}
	}

	flushStatic(end)

	if err := checkTouching(p.input, elems); err != nil {
		return nil, err
	}

	return elems, nil
}

// parseParameter parses the span [start, end) which runs from the '{'
// to one past the matching '}'.
func (p *templateParser) parseParameter(start, end int) (element, error) {
	body := p.input[start+1 : end-1]
	length := end - start

	if body == "" {
		return element{}, newTemplateError(p.input, "empty_braces", "empty braces", "", [2]int{start, 2})
	}

	wildcard := false
	if body[0] == '*' {
		wildcard = true
		body = body[1:]
	}

	name, constraint, hasConstraint := strings.Cut(body, ":")

	if name == "" {
		if wildcard {
			return element{}, newTemplateError(p.input, "empty_wildcard", "empty wildcard name", "", [2]int{start, length})
		}
		return element{}, newTemplateError(p.input, "empty_parameter", "empty parameter name", "", [2]int{start, length})
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return element{}, newTemplateError(p.input, "invalid_parameter",
			"invalid parameter name",
			"Parameter names must not contain the characters: ':', '*', '{', '}', '(', ')', '/'", [2]int{start, length})
	}
	if hasConstraint {
		if constraint == "" {
			return element{}, newTemplateError(p.input, "empty_constraint", "empty constraint name", "", [2]int{start, length})
		}
		if strings.ContainsAny(constraint, forbiddenNameChars) {
			return element{}, newTemplateError(p.input, "invalid_constraint",
				"invalid constraint name",
				"Constraint names must not contain the characters: ':', '*', '{', '}', '(', ')', '/'", [2]int{start, length})
		}
	}

	if wildcard {
		return element{kind: elemWildcard, name: name, constraint: constraint}, nil
	}
	return element{kind: elemDynamic, name: name, constraint: constraint}, nil
}

// checkTouching rejects two adjacent parameter-like elements with no
// static separator between them, e.g. "{a}{b}". Groups are not
// parameter-like; what they contribute is checked after expansion.
func checkTouching(template string, elems []element) error {
	isParam := func(e element) bool { return e.kind == elemDynamic || e.kind == elemWildcard }
	for i := 0; i+1 < len(elems); i++ {
		if isParam(elems[i]) && isParam(elems[i+1]) {
			return newTemplateError(template, "touching_parameters", "touching parameters",
				"Touching parameters are not supported")
		}
	}
	return nil
}

// unescape turns the literal escape sequences \{ \} \( \) into their
// plain byte. Any other backslash-escaped byte is likewise kept without
// its backslash.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
