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

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNumericConstraints(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		name string
		ok   string
		bad  []string
	}{
		{"u8", "255", []string{"256", "-1", "abc", ""}},
		{"u64", "18446744073709551615", []string{"-1", "abc"}},
		{"i8", "-128", []string{"128", "abc"}},
		{"i64", "-9223372036854775808", []string{"abc"}},
		{"f32", "3.14", []string{"abc"}},
		{"f64", "2.718281828", []string{"abc"}},
		{"bool", "true", []string{"maybe"}},
	}

	for _, tc := range cases {
		predicate, ok := r.Lookup(tc.name)
		require.True(t, ok, "missing built-in %q", tc.name)
		assert.True(t, predicate([]byte(tc.ok)), "%s: expected %q to pass", tc.name, tc.ok)
		for _, bad := range tc.bad {
			assert.False(t, predicate([]byte(bad)), "%s: expected %q to fail", tc.name, bad)
		}
	}
}

func TestBuiltinBigIntConstraints(t *testing.T) {
	r := NewRegistry()

	u128, ok := r.Lookup("u128")
	require.True(t, ok)
	assert.True(t, u128([]byte("340282366920938463463374607431768211455")))
	assert.False(t, u128([]byte("")))
	assert.False(t, u128([]byte("-1")))
	assert.False(t, u128([]byte("12a")))

	i128, ok := r.Lookup("i128")
	require.True(t, ok)
	assert.True(t, i128([]byte("-170141183460469231731687303715884105728")))
	assert.True(t, i128([]byte("170141183460469231731687303715884105727")))
	assert.False(t, i128([]byte("--1")))
	assert.False(t, i128([]byte("")))
}

func TestBuiltinIPConstraints(t *testing.T) {
	r := NewRegistry()

	ipv4, ok := r.Lookup("ipv4")
	require.True(t, ok)
	assert.True(t, ipv4([]byte("192.168.1.1")))
	assert.False(t, ipv4([]byte("::1")))
	assert.False(t, ipv4([]byte("not-an-ip")))

	ipv6, ok := r.Lookup("ipv6")
	require.True(t, ok)
	assert.True(t, ipv6([]byte("::1")))
	assert.True(t, ipv6([]byte("2001:db8::1")))
	assert.False(t, ipv6([]byte("192.168.1.1")))
}
