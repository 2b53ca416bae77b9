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
	"math/big"
	"sort"

	"github.com/google/btree"
	"github.com/sparsetree/smt/hashers"
)

// btreeDegree is an arbitrary, reasonable branching factor; it has no
// bearing on the engine's observable behavior (spec.md invariant 5), only
// on the sparse store's constant factors.
const btreeDegree = 32

// leafItem is a (key, digest) pair stored in the sparse leaf store
// (spec.md §3). It implements btree.Item so the store can keep leaves in
// ascending numeric key order, the ordering the level-collapse algorithm's
// pair-dedup rule depends on (spec.md §4.4 "Ordering discipline").
type leafItem struct {
	key    Key
	digest hashers.Digest
}

func (a leafItem) Less(than btree.Item) bool {
	return a.key.Cmp(than.(leafItem).key) < 0
}

// leafStore is the sparse leaf store: an ordered key -> digest mapping
// holding only leaves whose digest differs from the empty-leaf digest
// (spec.md §3 invariant 1).
type leafStore struct {
	bt *btree.BTree
}

func newLeafStore() *leafStore {
	return &leafStore{bt: btree.New(btreeDegree)}
}

// set stores digest at key, overwriting any prior entry.
func (s *leafStore) set(key Key, digest hashers.Digest) {
	s.bt.ReplaceOrInsert(leafItem{key: key, digest: digest})
}

// remove erases key. It is a no-op if key was not present.
func (s *leafStore) remove(key Key) {
	s.bt.Delete(leafItem{key: key})
}

// get returns the digest stored at key and whether it was present.
func (s *leafStore) get(key Key) (hashers.Digest, bool) {
	item := s.bt.Get(leafItem{key: key})
	if item == nil {
		return nil, false
	}
	return item.(leafItem).digest, true
}

// has reports whether key is present in the store.
func (s *leafStore) has(key Key) bool {
	return s.bt.Get(leafItem{key: key}) != nil
}

// len returns the number of materialized leaves.
func (s *leafStore) len() int {
	return s.bt.Len()
}

// clear empties the store.
func (s *leafStore) clear() {
	s.bt = btree.New(btreeDegree)
}

// level0 returns a fresh level map (key -> digest, keyed internally by the
// key's hexadecimal text) seeded from every materialized leaf, in
// ascending key order. It is the M0 working map the level-collapse
// algorithm (spec.md §4.4) starts from.
func (s *leafStore) level0() *levelMap {
	m := newLevelMap(s.bt.Len())
	s.bt.Ascend(func(i btree.Item) bool {
		li := i.(leafItem)
		m.set(li.key, li.digest)
		return true
	})
	return m
}

// levelMap is the working map Mi used inside the level-collapse algorithm:
// an ordered key -> digest map, iterated ascending so pair-dedup behaves
// identically regardless of which sibling is visited first (spec.md §4.4
// "Tie-breaking / ordering contract").
type levelMap struct {
	keys   []*big.Int
	values map[string]hashers.Digest
}

func newLevelMap(capacityHint int) *levelMap {
	return &levelMap{
		keys:   make([]*big.Int, 0, capacityHint),
		values: make(map[string]hashers.Digest, capacityHint),
	}
}

func mapKey(k Key) string {
	return k.v.Text(16)
}

// get returns the digest at key, if present.
func (m *levelMap) get(k Key) (hashers.Digest, bool) {
	d, ok := m.values[mapKey(k)]
	return d, ok
}

// has reports whether key is present.
func (m *levelMap) has(k Key) bool {
	_, ok := m.values[mapKey(k)]
	return ok
}

// set inserts or overwrites key's digest. New keys are appended; the
// caller (collapseLevel) only ever appends a key once per level by
// construction, and the final sort restores ascending order.
func (m *levelMap) set(k Key, d hashers.Digest) {
	mk := mapKey(k)
	if _, exists := m.values[mk]; !exists {
		m.keys = append(m.keys, new(big.Int).Set(k.v))
	}
	m.values[mk] = d
}

// len returns the number of entries.
func (m *levelMap) len() int {
	return len(m.keys)
}

// ascend iterates entries in ascending key order.
func (m *levelMap) ascend(f func(k Key, d hashers.Digest)) {
	sort.Slice(m.keys, func(i, j int) bool { return m.keys[i].Cmp(m.keys[j]) < 0 })
	for _, k := range m.keys {
		key := Key{v: k}
		f(key, m.values[mapKey(key)])
	}
}
