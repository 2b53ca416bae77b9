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
	"math/rand"
	"testing"

	"github.com/sparsetree/smt/hashers"
)

// TestEmptyEngineRootIsZ256 covers spec.md §8 scenario 1.
func TestEmptyEngineRootIsZ256(t *testing.T) {
	e := NewEngine()
	if !e.Root().Equal(e.Ladder().Root()) {
		t.Errorf("empty Engine.Root() = %x, want Z[256] = %x", e.Root(), e.Ladder().Root())
	}
}

// TestEmptyEngineProofIsAllZeroRungs covers spec.md §8 "every generated
// proof consists entirely of {Z[0],...,Z[255]} in that order".
func TestEmptyEngineProofIsAllZeroRungs(t *testing.T) {
	e := NewEngine()
	p := e.GenerateProof(KeyFromUint64(42))
	if !p.Valid() {
		t.Fatal("proof from empty engine is not Valid()")
	}
	for d := 0; d < proofDepth; d++ {
		if !p.At(d).Equal(e.Ladder().At(d)) {
			t.Errorf("proof sibling at depth %d = %x, want Z[%d] = %x", d, p.At(d), d, e.Ladder().At(d))
		}
	}
}

// TestInsertThenValidate covers spec.md §8 scenario 2.
func TestInsertThenValidate(t *testing.T) {
	e := NewEngine()
	k := KeyFromUint64(0)
	e.SetLeafValue(k, []byte{0x01})

	p := e.GenerateProof(k)
	if !e.ValidateProof(k, []byte{0x01}, p) {
		t.Error("ValidateProof with the stored value returned false, want true")
	}
	if e.ValidateProof(k, []byte{0x04}, p) {
		t.Error("ValidateProof with a different value returned true, want false")
	}
}

// TestSecondInsertChangesFirstKeysProof covers spec.md §8 scenario 3.
func TestSecondInsertChangesFirstKeysProof(t *testing.T) {
	e := NewEngine()
	k0, k1 := KeyFromUint64(0), KeyFromUint64(1)
	e.SetLeafValue(k0, []byte{0x01})

	before := e.GenerateProof(k0)
	if got, want := before.At(0), e.Ladder().At(0); !got.Equal(want) {
		t.Fatalf("before inserting k1, proof(k0) depth-0 sibling = %x, want Z[0] = %x", got, want)
	}

	e.SetLeafValue(k1, []byte{0x02})
	after := e.GenerateProof(k0)
	wantSibling := hashers.SHA256.Sum([]byte{0x02})
	if got := after.At(0); !got.Equal(wantSibling) {
		t.Errorf("after inserting k1, proof(k0) depth-0 sibling = %x, want Digest({0x02}) = %x", got, wantSibling)
	}
	if before.At(0).Equal(after.At(0)) {
		t.Error("proof(k0) unchanged after inserting its sibling k1")
	}
}

// TestInsertThenRemoveRestoresEmptyRoot covers spec.md §8 scenario 4.
func TestInsertThenRemoveRestoresEmptyRoot(t *testing.T) {
	e := NewEngine()
	k := KeyFromUint64(0)
	e.SetLeafValue(k, []byte{0x01})
	e.RemoveLeaf(k)

	if !e.Root().Equal(e.Ladder().Root()) {
		t.Errorf("root after insert+remove = %x, want Z[256] = %x", e.Root(), e.Ladder().Root())
	}
	if !e.ValidateNonInclusion(k, e.GenerateProof(k)) {
		t.Error("ValidateNonInclusion false after insert+remove, want true")
	}
}

// TestBatchInsertMatchesOneByOneAndSamplesValidate covers spec.md §8
// scenario 5: batch-insert 1000 pairs, compare the root against applying
// the same inserts one at a time, and validate a random sample.
func TestBatchInsertMatchesOneByOneAndSamplesValidate(t *testing.T) {
	const n = 1000
	updates := make([]ValueKeyValue, n)
	values := make([][]byte, n)
	for i := 0; i < n; i++ {
		v := byte(i % 256)
		values[i] = []byte{v, v, v}
		updates[i] = ValueKeyValue{Key: KeyFromUint64(uint64(i)), Value: values[i]}
	}

	batched := NewEngine()
	batched.BatchSetValue(updates)

	oneByOne := NewEngine()
	for _, u := range updates {
		oneByOne.SetLeafValue(u.Key, u.Value)
	}

	if !batched.Root().Equal(oneByOne.Root()) {
		t.Fatalf("batch root = %x, one-by-one root = %x, want equal", batched.Root(), oneByOne.Root())
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 64; i++ {
		idx := rng.Intn(n)
		k := KeyFromUint64(uint64(idx))
		p := batched.GenerateProof(k)
		if !batched.ValidateProof(k, values[idx], p) {
			t.Errorf("sample %d: ValidateProof(key=%d) = false, want true", i, idx)
		}
	}
}

// TestCrossValidationMatrix covers spec.md §8 scenario 6.
func TestCrossValidationMatrix(t *testing.T) {
	e := NewEngine()
	k1, v1 := KeyFromUint64(1), []byte{0x01, 0x01, 0x01}
	k2, v2 := KeyFromUint64(999), []byte{0x02, 0x02, 0x02}
	e.SetLeafValue(k1, v1)
	e.SetLeafValue(k2, v2)

	keys := []Key{k1, k2}
	values := [][]byte{v1, v2}
	proofs := []*Proof{e.GenerateProof(k1), e.GenerateProof(k2)}

	for i, ki := range keys {
		for j, vj := range values {
			for k, pk := range proofs {
				got := e.ValidateProof(ki, vj, pk)
				want := i == j && j == k
				if got != want {
					t.Errorf("ValidateProof(key=%d, value=%d, proof=%d) = %v, want %v", i, j, k, got, want)
				}
			}
		}
	}
}

// TestSetLeafHashZeroIsRemove covers the spec.md §8 universal invariant
// "set_leaf_hash(K, Z[0]) is behaviorally identical to remove_leaf(K)".
func TestSetLeafHashZeroIsRemove(t *testing.T) {
	a := NewEngine()
	b := NewEngine()
	k := KeyFromUint64(5)
	a.SetLeafValue(k, []byte{0xAA})
	b.SetLeafValue(k, []byte{0xAA})

	a.SetLeafHash(k, a.Ladder().Null())
	b.RemoveLeaf(k)

	if !a.Root().Equal(b.Root()) {
		t.Errorf("SetLeafHash(K, Z[0]) root = %x, RemoveLeaf(K) root = %x, want equal", a.Root(), b.Root())
	}
	if a.HasLeaf(k) || b.HasLeaf(k) {
		t.Error("HasLeaf true after normalizing to the empty digest")
	}
}

// TestSetLeafValueEmptyNormalizesToRemove covers the "empty-value
// normalization" rule in spec.md §4.4: a set whose value's digest equals
// Z[0] removes the key.
func TestSetLeafValueEmptyNormalizesToRemove(t *testing.T) {
	e := NewEngine()
	k := KeyFromUint64(11)
	e.SetLeafValue(k, []byte{0x77})
	if !e.HasLeaf(k) {
		t.Fatal("setup: HasLeaf false after SetLeafValue")
	}
	// nil hashes to the same digest as SHA256(empty string) == Z[0].
	e.SetLeafValue(k, nil)
	if e.HasLeaf(k) {
		t.Error("SetLeafValue(K, nil) left K present; nil's digest equals Z[0] and should erase K")
	}
	if got := e.GetLeaf(k); !got.Equal(e.Ladder().Null()) {
		t.Errorf("GetLeaf after normalizing-to-empty = %x, want Z[0] = %x", got, e.Ladder().Null())
	}
}

func TestIdempotentSetLeafHash(t *testing.T) {
	e := NewEngine()
	k := KeyFromUint64(3)
	h := hashers.SHA256.Sum([]byte("value"))
	e.SetLeafHash(k, h)
	first := e.Root()
	e.SetLeafHash(k, h)
	second := e.Root()
	if !first.Equal(second) {
		t.Errorf("applying SetLeafHash twice changed the root: %x != %x", first, second)
	}
}

func TestInsertRemoveRoundTripRestoresRoot(t *testing.T) {
	e := NewEngine()
	empty := e.Root()

	keys := make([]Key, 50)
	for i := range keys {
		keys[i] = KeyFromUint64(uint64(i * 37))
		e.SetLeafValue(keys[i], []byte{byte(i)})
	}
	for _, k := range keys {
		e.RemoveLeaf(k)
	}

	if !e.Root().Equal(empty) {
		t.Errorf("root after full insert/remove round trip = %x, want Z[256] = %x", e.Root(), empty)
	}
}

func TestClearResetsToEmpty(t *testing.T) {
	e := NewEngine()
	e.SetLeafValue(KeyFromUint64(1), []byte{1})
	e.SetLeafValue(KeyFromUint64(2), []byte{2})
	e.Clear()

	if !e.Root().Equal(e.Ladder().Root()) {
		t.Errorf("root after Clear() = %x, want Z[256]", e.Root())
	}
	if e.HasLeaf(KeyFromUint64(1)) || e.HasLeaf(KeyFromUint64(2)) {
		t.Error("HasLeaf true after Clear()")
	}
}

func TestBatchSetHashDuplicateKeyLastWriteWins(t *testing.T) {
	e := NewEngine()
	k := KeyFromUint64(9)
	hashA := hashers.SHA256.Sum([]byte("a"))
	hashB := hashers.SHA256.Sum([]byte("b"))

	// spec.md §7: "a caller-supplied duplicate key within a batch
	// resolves to the last write wins by iteration order".
	e.BatchSetHash([]HashKeyValue{
		{Key: k, Digest: hashA},
		{Key: k, Digest: hashB},
	})
	if got := e.GetLeaf(k); !got.Equal(hashB) {
		t.Errorf("GetLeaf after duplicate-key batch = %x, want last write %x", got, hashB)
	}
}

func TestBatchSetThenBatchRemoveRestoresRoot(t *testing.T) {
	e := NewEngine()
	empty := e.Root()
	keys := make([]Key, 20)
	updates := make([]HashKeyValue, 20)
	for i := range keys {
		keys[i] = KeyFromUint64(uint64(i))
		updates[i] = HashKeyValue{Key: keys[i], Digest: hashers.SHA256.Sum([]byte{byte(i)})}
	}
	e.BatchSetHash(updates)
	e.BatchRemove(keys)
	if !e.Root().Equal(empty) {
		t.Errorf("root after BatchSetHash+BatchRemove = %x, want Z[256]", e.Root())
	}
}
