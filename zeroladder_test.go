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
	"sync"
	"testing"

	"github.com/sparsetree/smt/hashers"
)

func TestZeroLadderLaws(t *testing.T) {
	z := zeroLadderFor(hashers.SHA256)

	if got, want := z.Len(), 257; got != want {
		t.Fatalf("len(ZeroLadder) = %d, want %d", got, want)
	}
	if got, want := z.At(0), hashers.SHA256.Sum(nil); !got.Equal(want) {
		t.Errorf("Z[0] = %x, want %x", got, want)
	}
	for i := 1; i <= keyBits; i++ {
		prev := z.At(i - 1)
		combined := append(append([]byte{}, prev...), prev...)
		want := hashers.SHA256.Sum(combined)
		if got := z.At(i); !got.Equal(want) {
			t.Errorf("Z[%d] = %x, want %x", i, got, want)
		}
	}
}

func TestZeroLadderNullAndRoot(t *testing.T) {
	z := zeroLadderFor(hashers.SHA256)
	if !z.Null().Equal(z.At(0)) {
		t.Errorf("Null() != Z[0]")
	}
	if !z.Root().Equal(z.At(keyBits)) {
		t.Errorf("Root() != Z[256]")
	}
}

func TestZeroLadderIsCachedPerAlgorithm(t *testing.T) {
	a := zeroLadderFor(hashers.SHA256)
	b := zeroLadderFor(hashers.SHA256)
	if a != b {
		t.Error("zeroLadderFor(SHA256) returned distinct instances; want shared cache")
	}
	c := zeroLadderFor(hashers.Keccak256)
	if a == c {
		t.Error("zeroLadderFor(SHA256) and zeroLadderFor(Keccak256) returned the same instance")
	}
	if a.At(0).Equal(c.At(0)) {
		t.Error("SHA256 and Keccak256 zero ladders agree at level 0; want distinct algorithms to diverge immediately")
	}
}

func TestZeroLadderOutOfRangePanics(t *testing.T) {
	z := zeroLadderFor(hashers.SHA256)
	defer func() {
		if recover() == nil {
			t.Error("At(257) did not panic")
		}
	}()
	z.At(257)
}

// TestZeroLadderConcurrentFirstUse exercises spec.md §5's requirement that
// first-use initialization be safe under concurrent first callers.
func TestZeroLadderConcurrentFirstUse(t *testing.T) {
	h := fakeHasherForConcurrencyTest{}
	var wg sync.WaitGroup
	ladders := make([]*ZeroLadder, 32)
	for i := range ladders {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ladders[i] = zeroLadderFor(h)
		}()
	}
	wg.Wait()
	for i := 1; i < len(ladders); i++ {
		if ladders[i] != ladders[0] {
			t.Fatalf("concurrent zeroLadderFor returned distinct instances at index %d", i)
		}
	}
}

// fakeHasherForConcurrencyTest gives the concurrency test its own cache
// slot, independent of other tests' use of hashers.SHA256/Keccak256.
type fakeHasherForConcurrencyTest struct{}

func (fakeHasherForConcurrencyTest) Sum(data []byte) hashers.Digest {
	return hashers.SHA256.Sum(data)
}
func (fakeHasherForConcurrencyTest) Size() int      { return 32 }
func (fakeHasherForConcurrencyTest) Name() string   { return "fake-concurrency-test" }
