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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sparsetree/smt/hashers"
)

func TestProofEmptyIsNotValid(t *testing.T) {
	p := NewProof()
	if p.Valid() {
		t.Error("empty proof reports Valid() == true")
	}
	if got, want := p.Len(), 0; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestProofValidAtExactly256(t *testing.T) {
	p := NewProof()
	for i := 0; i < proofDepth-1; i++ {
		p.Append(hashers.Digest{byte(i)})
		if p.Valid() {
			t.Fatalf("proof with %d siblings reports Valid() == true, want false", i+1)
		}
	}
	p.Append(hashers.Digest{255})
	if !p.Valid() {
		t.Errorf("proof with %d siblings reports Valid() == false, want true", proofDepth)
	}
}

func TestProofAtOutOfRangePanics(t *testing.T) {
	p := NewProof()
	p.Append(hashers.Digest{1})
	defer func() {
		if recover() == nil {
			t.Error("At(5) on a 1-sibling proof did not panic")
		}
	}()
	p.At(5)
}

func TestProofAppendDoesNotAliasCaller(t *testing.T) {
	d := hashers.Digest{1, 2, 3}
	p := NewProof()
	p.Append(d)
	d[0] = 0xff
	if p.At(0)[0] == 0xff {
		t.Fatal("Proof.Append aliases the caller's digest backing array")
	}
}

func TestProofFromSiblingsRoundTrip(t *testing.T) {
	want := make([]hashers.Digest, proofDepth)
	for i := range want {
		want[i] = hashers.Digest{byte(i), byte(i + 1)}
	}
	p := ProofFromSiblings(want)
	if !p.Valid() {
		t.Fatal("ProofFromSiblings(256 siblings) not Valid()")
	}
	if diff := cmp.Diff(want, p.Siblings()); diff != "" {
		t.Errorf("Siblings() mismatch (-want +got):\n%s", diff)
	}
}

func TestProofSiblingsDoesNotAliasInternalState(t *testing.T) {
	p := NewProof()
	p.Append(hashers.Digest{9})
	got := p.Siblings()
	got[0][0] = 0xff
	if p.At(0)[0] == 0xff {
		t.Fatal("Siblings() aliases Proof's internal storage")
	}
}
