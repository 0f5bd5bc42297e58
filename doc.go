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

// Package pathtrie implements a URL routing trie: given a set of route
// templates bound to opaque data, it finds the single best-matching
// template for a request path and reports the captured parameters.
//
// Templates are composed of static bytes, single-segment dynamic
// parameters ("{name}"), multi-segment wildcards ("{*name}"), optional
// constraints on either ("{name:constraint}"), and optional groups
// ("(...)") that expand at Insert time into the cross product of
// concrete templates they denote.
//
// # Architecture
//
// A template string is tokenized by the Parser into an ordered sequence
// of Parts. The Expander turns any optional groups into the set of
// concrete part sequences they represent. Each concrete sequence is
// handed to Insert, which walks or grows the Router's trie, splitting
// shared static prefixes as needed. Search walks the same trie against
// a request path, trying child kinds in priority order (static before
// dynamic before wildcard before end-wildcard) and backtracking across
// ambiguous matches. Delete is the structural inverse of Insert. After
// every Insert or Delete, the Optimizer re-sorts affected child lists
// by specificity so Search can assume they are already ordered.
//
// # Concurrency
//
// A Router is built up front via Insert/Delete from a single goroutine,
// then treated as read-only. Search issues no I/O. Besides the Match and
// parameter slice it returns, it allocates a fresh copy of the bindings
// for every candidate capture it tries and a list of candidate lengths
// for every inline or wildcard search. It is safe for concurrent use
// once mutation has stopped. Insert and Delete require
// external synchronization against both each other and any concurrent
// Search.
package pathtrie
