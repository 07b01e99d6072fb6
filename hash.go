// Copyright 2019 Peter Mattis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

package intset

import "math/bits"

// fib64 is the Fibonacci hashing multiplier: the odd 64-bit integer nearest
// to 2^64/phi. Multiplying by it is a bijection on odd 64-bit words; homeOf
// then keeps the low bits of the product (hash & mask) as the home slot in a
// power-of-two table.
const fib64 = 11400714819323198485

// mix64 scrambles a 64-bit key. It is used directly for width-64 tables and
// as the base mixer for the narrower widths below.
func mix64(x uint64) uint64 {
	x |= 1
	return x * fib64
}

// mix32 scrambles a 32-bit key by widening it before applying the same
// 64-bit multiplicative mix used for width-64 keys.
func mix32(x uint32) uint64 {
	return mix64(uint64(x))
}

// mix16 scrambles a 16-bit key via a 32-bit intermediate mix before
// applying the final 64-bit mix.
func mix16(x uint16) uint64 {
	return mix64(uint64(x) * 2654435761)
}

// mix8 scrambles a byte key with the 32-bit golden-ratio multiplier plus
// one, so that every input byte maps to a distinct word; only determinism
// is required here, not any particular avalanche quality.
func mix8(x uint8) uint64 {
	return mix64(uint64(x)*2654435761 + 1)
}

// nextPow2 returns the smallest power of two that is >= n, with a floor of 1.
func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}

// rawCapacity implements the capacity-to-raw-capacity rule of invariant 3:
// the table's slot count is next_pow2(ceil(1.1 * desired_capacity)), which
// keeps the load factor at or below 10/11.
func rawCapacity(desired int) int {
	if desired < 1 {
		return 1
	}
	// ceil(1.1*n) == ceil(11*n/10) == (11*n+9)/10 in integer arithmetic.
	scaled := (11*uint64(desired) + 9) / 10
	return int(nextPow2(scaled))
}
