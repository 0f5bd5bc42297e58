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
	"fmt"
	"io"
	"strings"
)

// Dump writes a hierarchical tree diagram of the trie to w, static
// children before dynamic before wildcard before end-wildcard at every
// level, matching Search's own priority order. A node carrying data is
// annotated with the template that reached it.
//
// Example, after inserting /users, /users/{id}, /users/{id:u64} and
// /posts/{*slug}:
//
//	▼
//	╰─ /
//	   ├─ posts/
//	   │  ╰─ {*slug} [/posts/{*slug}]
//	   ╰─ users [/users]
//	      ╰─ /
//	         ├─ {id:u64} [/users/{id:u64}]
//	         ╰─ {id} [/users/{id}]
func (r *Router) Dump(w io.Writer) error {
	if w == nil {
		return fmt.Errorf("pathtrie: nil writer")
	}
	if _, err := fmt.Fprint(w, "▼\n"); err != nil {
		return err
	}
	return dumpChildren(w, r.root, "")
}

// String returns Dump's output as a string. Panics if Dump fails, which
// only happens when writing to the underlying strings.Builder fails --
// never, in practice.
func (r *Router) String() string {
	var b strings.Builder
	if err := r.Dump(&b); err != nil {
		panic(err)
	}
	return b.String()
}

// dumpEntry pairs a child node with the label its edge carries, so the
// four child lists can be merged into one ordered walk.
type dumpEntry struct {
	label string
	n     *node
}

func dumpChildren(w io.Writer, n *node, prefix string) error {
	entries := make([]dumpEntry, 0, len(n.staticChildren)+len(n.dynamicChildren)+len(n.wildcardChildren)+len(n.endWildcardChildren))
	for _, c := range n.staticChildren {
		entries = append(entries, dumpEntry{label: string(c.prefix), n: c})
	}
	for _, c := range n.dynamicChildren {
		entries = append(entries, dumpEntry{label: paramLabel("{", c), n: c})
	}
	for _, c := range n.wildcardChildren {
		entries = append(entries, dumpEntry{label: paramLabel("{*", c), n: c})
	}
	for _, c := range n.endWildcardChildren {
		entries = append(entries, dumpEntry{label: paramLabel("{*", c), n: c})
	}

	for i, e := range entries {
		last := i == len(entries)-1
		connector, childPrefix := "├─ ", prefix+"│  "
		if last {
			connector, childPrefix = "╰─ ", prefix+"   "
		}

		line := prefix + connector + e.label
		if e.n.data != nil {
			line += " [" + e.n.data.template() + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := dumpChildren(w, e.n, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func paramLabel(open string, n *node) string {
	if n.constraint != "" {
		return open + n.name + ":" + n.constraint + "}"
	}
	return open + n.name + "}"
}
