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

import "fmt"

// expandedTemplate is one concrete template produced by fully expanding
// the optional groups of an original template.
type expandedTemplate struct {
	parts  []part
	source string // the concrete, re-rendered spelling (for display/errors)
}

// expandTemplate turns a parsed element tree, possibly containing
// optional groups, into the non-empty set of concrete templates it
// denotes. Each concrete template is validated for unique
// parameter names and for no two parameter-like parts touching; both
// checks must run post-expansion, since two independent groups can
// only collide when simultaneously chosen.
func expandTemplate(original string, elems []element, delim byte) ([]expandedTemplate, error) {
	flats := expandElems(elems)

	seen := make(map[string]bool, len(flats))
	out := make([]expandedTemplate, 0, len(flats))

	for _, flat := range flats {
		parts := mergeStatic(flat)
		if len(parts) == 0 {
			parts = []part{staticPart([]byte{delim})}
		}

		if err := validateConcreteParts(original, parts); err != nil {
			return nil, err
		}

		source := renderParts(parts)
		if seen[source] {
			continue
		}
		seen[source] = true

		out = append(out, expandedTemplate{parts: parts, source: source})
	}

	return out, nil
}

// expandElems returns every flat (group-free) element sequence denoted
// by elems, via the cross product of each group's "present" and
// "absent" choices.
func expandElems(elems []element) [][]element {
	if len(elems) == 0 {
		return [][]element{{}}
	}

	head := elems[0]
	restExpansions := expandElems(elems[1:])

	if head.kind != elemGroup {
		out := make([][]element, 0, len(restExpansions))
		for _, r := range restExpansions {
			combined := make([]element, 0, 1+len(r))
			combined = append(combined, head)
			combined = append(combined, r...)
			out = append(out, combined)
		}
		return out
	}

	innerExpansions := expandElems(head.children)

	out := make([][]element, 0, len(innerExpansions)*len(restExpansions)+len(restExpansions))
	for _, inner := range innerExpansions {
		for _, r := range restExpansions {
			combined := make([]element, 0, len(inner)+len(r))
			combined = append(combined, inner...)
			combined = append(combined, r...)
			out = append(out, combined)
		}
	}
	// The group-absent branch.
	out = append(out, restExpansions...)

	return out
}

// mergeStatic converts a flat (group-free) element sequence into parts,
// coalescing adjacent static runs that originated from either side of a
// now-resolved group boundary.
func mergeStatic(elems []element) []part {
	parts := make([]part, 0, len(elems))
	for _, e := range elems {
		switch e.kind {
		case elemStatic:
			if n := len(parts); n > 0 && parts[n-1].kind == partStatic {
				parts[n-1].prefix = append(parts[n-1].prefix, e.prefix...)
				continue
			}
			parts = append(parts, staticPart(append([]byte(nil), e.prefix...)))
		case elemDynamic:
			parts = append(parts, dynamicPart(e.name, e.constraint))
		case elemWildcard:
			parts = append(parts, wildcardPart(e.name, e.constraint))
		}
	}
	return parts
}

// validateConcreteParts enforces the two invariants that can only be
// checked once optional groups have been resolved: unique parameter
// names, and no two parameter-like parts touching.
func validateConcreteParts(original string, parts []part) error {
	seen := make(map[string]bool, len(parts))
	for i, p := range parts {
		if p.kind != partStatic {
			if seen[p.name] {
				return newTemplateError(original, "duplicate_parameter",
					fmt.Sprintf("duplicate parameter name: %q", p.name),
					"Parameter names must be unique within a template")
			}
			seen[p.name] = true
		}
		if i > 0 && p.kind != partStatic && parts[i-1].kind != partStatic {
			return newTemplateError(original, "touching_parameters", "touching parameters",
				"Touching parameters are not supported")
		}
	}
	return nil
}

// renderParts reconstructs a concrete, canonical spelling for a fully
// expanded part sequence. It is used for display, for deduplicating
// expansions, and as the "expanded form" reported alongside a Search
// match.
func renderParts(parts []part) string {
	var out []byte
	for _, p := range parts {
		switch p.kind {
		case partStatic:
			out = append(out, p.prefix...)
		case partDynamic:
			out = append(out, '{')
			out = append(out, p.name...)
			if p.constraint != "" {
				out = append(out, ':')
				out = append(out, p.constraint...)
			}
			out = append(out, '}')
		case partWildcard:
			out = append(out, '{', '*')
			out = append(out, p.name...)
			if p.constraint != "" {
				out = append(out, ':')
				out = append(out, p.constraint...)
			}
			out = append(out, '}')
		}
	}
	return string(out)
}
