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
	"net/netip"
	"strconv"
)

// builtins is the constraint set every registry starts with: unsigned
// and signed integers at every standard bit width plus the
// platform-width aliases, the two floating point widths, bool, and the
// two IP address families.
var builtins = []Entry{
	{Name: "u8", Type: "uint", Predicate: uintPredicate(8)},
	{Name: "u16", Type: "uint", Predicate: uintPredicate(16)},
	{Name: "u32", Type: "uint", Predicate: uintPredicate(32)},
	{Name: "u64", Type: "uint", Predicate: uintPredicate(64)},
	{Name: "u128", Type: "uint", Predicate: bigUintPredicate},
	{Name: "usize", Type: "uint", Predicate: uintPredicate(64)},

	{Name: "i8", Type: "int", Predicate: intPredicate(8)},
	{Name: "i16", Type: "int", Predicate: intPredicate(16)},
	{Name: "i32", Type: "int", Predicate: intPredicate(32)},
	{Name: "i64", Type: "int", Predicate: intPredicate(64)},
	{Name: "i128", Type: "int", Predicate: bigIntPredicate},
	{Name: "isize", Type: "int", Predicate: intPredicate(64)},

	{Name: "f32", Type: "float", Predicate: floatPredicate(32)},
	{Name: "f64", Type: "float", Predicate: floatPredicate(64)},

	{Name: "bool", Type: "bool", Predicate: boolPredicate},

	{Name: "ipv4", Type: "ip", Predicate: ipv4Predicate},
	{Name: "ipv6", Type: "ip", Predicate: ipv6Predicate},
}

func uintPredicate(bitSize int) Predicate {
	return func(value []byte) bool {
		_, err := strconv.ParseUint(string(value), 10, bitSize)
		return err == nil
	}
}

func intPredicate(bitSize int) Predicate {
	return func(value []byte) bool {
		_, err := strconv.ParseInt(string(value), 10, bitSize)
		return err == nil
	}
}

func floatPredicate(bitSize int) Predicate {
	return func(value []byte) bool {
		_, err := strconv.ParseFloat(string(value), bitSize)
		return err == nil
	}
}

// bigUintPredicate backs u128: Go has no native 128-bit integer, so
// instead of parsing we accept any non-empty run of ASCII digits,
// leading zeros included.
func bigUintPredicate(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	for _, b := range value {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

func bigIntPredicate(value []byte) bool {
	if len(value) == 0 {
		return false
	}
	if value[0] == '-' || value[0] == '+' {
		value = value[1:]
	}
	return bigUintPredicate(value)
}

func boolPredicate(value []byte) bool {
	_, err := strconv.ParseBool(string(value))
	return err == nil
}

func ipv4Predicate(value []byte) bool {
	addr, err := netip.ParseAddr(string(value))
	return err == nil && addr.Is4()
}

func ipv6Predicate(value []byte) bool {
	addr, err := netip.ParseAddr(string(value))
	return err == nil && addr.Is6()
}
