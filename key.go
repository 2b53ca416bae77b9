// Copyright 2016 Google Inc. All Rights Reserved.
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

package smt

import (
	"fmt"
	"math/big"
)

// keyBits is the tree depth: a Key identifies one of 2^256 leaf positions,
// interpreted MSB-first as a root-to-leaf path (spec.md §3).
const keyBits = 256

// Key is a 256-bit unsigned leaf position. It is backed by math/big.Int,
// the same representation trillian's own sparse-tree code threads through
// HStar2Nodes and NodeIDFromBigInt as *big.Int indices.
type Key struct {
	v *big.Int
}

// KeyFromBigInt wraps i as a Key. i must be non-negative and fit in 256
// bits; callers that can't guarantee that should use ParseKey instead.
func KeyFromBigInt(i *big.Int) Key {
	return Key{v: new(big.Int).Set(i)}
}

// KeyFromUint64 is a convenience constructor for small keys, heavily used
// in tests and examples.
func KeyFromUint64(i uint64) Key {
	return Key{v: new(big.Int).SetUint64(i)}
}

// ParseKey parses a base-10 string into a Key, the decimal-string key
// encoding used at language bindings that lack 256-bit integers (spec.md
// §6). It rejects negative values and values that don't fit in 256 bits.
func ParseKey(s string) (Key, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}
	if v.Sign() < 0 {
		return Key{}, fmt.Errorf("%w: %q is negative", ErrMalformedKey, s)
	}
	if v.BitLen() > keyBits {
		return Key{}, fmt.Errorf("%w: %q exceeds %d bits", ErrKeyOutOfRange, s, keyBits)
	}
	return Key{v: v}, nil
}

// BigInt returns the underlying big.Int. The caller must not mutate the
// result; it aliases the Key's internal state.
func (k Key) BigInt() *big.Int {
	return k.v
}

// String renders k in base 10.
func (k Key) String() string {
	return k.v.String()
}

// Cmp compares k and o numerically, matching the sparse leaf store's
// required ascending order (spec.md §3).
func (k Key) Cmp(o Key) int {
	return k.v.Cmp(o.v)
}

// bitAt returns bit i (0 = LSB) of k as 0 or 1.
func (k Key) bitAt(i int) uint {
	return k.v.Bit(i)
}

// sibling returns the key obtained by flipping bit 0 (k XOR 1), the
// sibling leaf at the bottom level.
func (k Key) sibling() Key {
	return Key{v: new(big.Int).Xor(k.v, big.NewInt(1))}
}

// parent returns k >> 1, the key of k's parent at the next level up.
func (k Key) parent() Key {
	return Key{v: new(big.Int).Rsh(k.v, 1)}
}

// isEven reports whether k's LSB is 0, i.e. k is the left child of its
// parent.
func (k Key) isEven() bool {
	return k.v.Bit(0) == 0
}
