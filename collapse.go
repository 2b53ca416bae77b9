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
	"github.com/golang/glog"
	"github.com/sparsetree/smt/hashers"
)

// collapseLevel produces M[level+1] from M[level], the single step of the
// level-collapse root-recomputation algorithm (spec.md §4.4): for every
// entry, look up its sibling (falling back to the ZeroLadder rung for this
// level when the sibling isn't materialized), hash the ordered pair, and
// write the parent -- once, regardless of which of the two siblings is
// visited first (the "pair-dedup" rule).
func collapseLevel(m *levelMap, level int, z *ZeroLadder, h hashers.Hasher) *levelMap {
	next := newLevelMap(m.len())
	m.ascend(func(k Key, d hashers.Digest) {
		parentKey := k.parent()
		if next.has(parentKey) {
			return // already written via the sibling
		}
		sibDigest, ok := m.get(k.sibling())
		if !ok {
			sibDigest = z.At(level)
		}
		left, right := d, sibDigest
		if !k.isEven() {
			left, right = sibDigest, d
		}
		combined := make([]byte, 0, len(left)+len(right))
		combined = append(combined, left...)
		combined = append(combined, right...)
		parentDigest := h.Sum(combined)
		glog.V(4).Infof("smt: collapse level %d: key=%s sibling=%s -> parent %s = %x",
			level, k, k.sibling(), parentKey, parentDigest)
		next.set(parentKey, parentDigest)
	})
	return next
}

// proofProgression is the cached sequence M0..M256 produced by collapsing
// the sparse store level by level exactly once. Reusing it to answer many
// GenerateProof calls turns the O(256^2 * n) naive algorithm spec.md §4.4
// describes into the O(256 * n) alternative spec.md §9 ("Proof-generation
// redundancy") explicitly sanctions.
type proofProgression struct {
	levels []*levelMap // levels[i] == M_i, i in [0, keyBits]
}

// buildProgression computes the full M0..M256 progression from store.
func buildProgression(store *leafStore, z *ZeroLadder, h hashers.Hasher) *proofProgression {
	levels := make([]*levelMap, keyBits+1)
	levels[0] = store.level0()
	for i := 0; i < keyBits; i++ {
		levels[i+1] = collapseLevel(levels[i], i, z, h)
	}
	return &proofProgression{levels: levels}
}

// root returns the digest at the top of the progression, or Z[256] if the
// tree is empty.
func (pp *proofProgression) root(z *ZeroLadder) hashers.Digest {
	top := pp.levels[keyBits]
	if top.len() == 0 {
		return z.Root()
	}
	var root hashers.Digest
	top.ascend(func(_ Key, d hashers.Digest) { root = d })
	return root
}

// proofFor builds the 256-sibling Proof for key by reading off the sibling
// digest at each depth from the cached progression, falling back to the
// ZeroLadder where the sibling subtree is empty (spec.md §4.4 "Proof
// generation").
func (pp *proofProgression) proofFor(key Key, z *ZeroLadder) *Proof {
	p := NewProof()
	cur := key
	for depth := 0; depth < keyBits; depth++ {
		sibDigest, ok := pp.levels[depth].get(cur.sibling())
		if !ok {
			sibDigest = z.At(depth)
		}
		p.Append(sibDigest)
		cur = cur.parent()
	}
	return p
}

// computeRoot recomputes the tree root from scratch by running the full
// level-collapse over store (spec.md §4.4). It is equivalent to, but
// cheaper than, building a full proofProgression when only the root is
// needed.
func computeRoot(store *leafStore, z *ZeroLadder, h hashers.Hasher) hashers.Digest {
	m := store.level0()
	if m.len() == 0 {
		return z.Root()
	}
	for level := 0; level < keyBits; level++ {
		m = collapseLevel(m, level, z, h)
		if m.len() == 0 {
			return z.Root()
		}
	}
	var root hashers.Digest
	m.ascend(func(_ Key, d hashers.Digest) { root = d })
	if root == nil {
		return z.Root()
	}
	return root
}
