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

import "github.com/sparsetree/smt/hashers"

// proofDepth is the number of siblings a populated Proof carries.
const proofDepth = keyBits

// Proof is an ordered sequence of sibling digests, index i holding the
// sibling encountered at depth i from the leaf along a key's path to the
// root (spec.md §4.3). Proof values are owned by the caller: they carry no
// reference back into the Engine that produced them, so a proof remains
// meaningful against the root at the time of its generation even after the
// engine mutates (spec.md §9 "Ownership of proofs").
type Proof struct {
	siblings []hashers.Digest
	valid    bool
}

// NewProof returns an empty, not-yet-valid proof ready to be built up with
// Append.
func NewProof() *Proof {
	return &Proof{siblings: make([]hashers.Digest, 0, proofDepth)}
}

// Append adds a sibling digest to the proof. It clones d so the proof does
// not alias the caller's (or the engine's) backing array.
func (p *Proof) Append(d hashers.Digest) {
	p.siblings = append(p.siblings, d.Clone())
	p.valid = len(p.siblings) > 0
}

// At returns the sibling digest at index i. It panics if i is out of
// range, per spec.md §7 item 1 (out-of-range proof access is a programming
// error, not a recoverable one).
func (p *Proof) At(i int) hashers.Digest {
	if i < 0 || i >= len(p.siblings) {
		panic("smt: proof sibling index out of range")
	}
	return p.siblings[i]
}

// Len returns the number of siblings currently in the proof.
func (p *Proof) Len() int {
	return len(p.siblings)
}

// Valid reports whether the proof is eligible for validation: exactly 256
// siblings and the populated flag set (spec.md §3 invariant 3, §4.3).
func (p *Proof) Valid() bool {
	return p.valid && len(p.siblings) == proofDepth
}

// Siblings returns a defensive copy of the proof's sibling digests, for
// callers that want to inspect or serialize the whole proof.
func (p *Proof) Siblings() []hashers.Digest {
	out := make([]hashers.Digest, len(p.siblings))
	for i, d := range p.siblings {
		out[i] = d.Clone()
	}
	return out
}

// ProofFromSiblings builds a Proof from a pre-populated sibling list, e.g.
// one deserialized at a language boundary. The result is Valid() only if
// siblings has exactly 256 entries.
func ProofFromSiblings(siblings []hashers.Digest) *Proof {
	p := NewProof()
	for _, s := range siblings {
		p.Append(s)
	}
	return p
}
