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
	"context"
	"math/big"
	"runtime"
	"time"

	"github.com/golang/glog"
	"github.com/sparsetree/smt/hashers"
	"golang.org/x/sync/errgroup"
)

// GenerateProof returns a 256-sibling Proof for key (spec.md §4.4 "Proof
// generation"). For an empty tree every sibling is Z[d], which is a valid
// non-inclusion proof for any key.
//
// The returned Proof is an independent value; it does not alias the
// Engine's internal state and stays meaningful against the root at the
// time it was generated even if the Engine mutates afterward (spec.md §9
// "Ownership of proofs").
func (e *Engine) GenerateProof(key Key) *Proof {
	start := time.Now()
	pp := buildProgression(e.store, e.ladder, e.hasher)
	p := pp.proofFor(key, e.ladder)
	glog.V(2).Infof("smt: GenerateProof key=%s len=%d", key, p.Len())
	e.metrics.ObserveProof("generate_proof", time.Since(start))
	return p
}

// ProofBatchGenerator amortizes proof generation across many keys sharing
// the same root: it snapshots the level-collapse progression once
// (O(n*256)) and then serves Proof(key) for any number of keys in O(256)
// each, instead of recomputing the progression per key (spec.md §9
// "Proof-generation redundancy"). The snapshot is independent of the
// Engine: later mutations on the Engine do not affect proofs already
// produced by a live generator, nor does producing proofs mutate the
// Engine.
type ProofBatchGenerator struct {
	pp     *proofProgression
	ladder *ZeroLadder
}

// ProofBatchGenerator snapshots the current store and returns a generator
// that can answer many Proof requests cheaply.
func (e *Engine) ProofBatchGenerator() *ProofBatchGenerator {
	return &ProofBatchGenerator{
		pp:     buildProgression(e.store, e.ladder, e.hasher),
		ladder: e.ladder,
	}
}

// Proof returns the 256-sibling Proof for key against the snapshot this
// generator was built from.
func (g *ProofBatchGenerator) Proof(key Key) *Proof {
	return g.pp.proofFor(key, g.ladder)
}

// Root returns the root digest the snapshot this generator was built from
// corresponds to.
func (g *ProofBatchGenerator) Root() hashers.Digest {
	return g.pp.root(g.ladder)
}

// GenerateProofs fans a batch of GenerateProof calls for keys out across a
// bounded pool of goroutines, exercising the "multiple concurrent readers"
// contract of spec.md §5. It snapshots the progression once, so the work
// done per key is O(256) as in ProofBatchGenerator, and is safe to run
// concurrently with any other reader (GetLeaf, HasLeaf, Root,
// GenerateProof, ValidateProof, ValidateNonInclusion) on the same Engine,
// but not with a mutator.
func (e *Engine) GenerateProofs(ctx context.Context, keys []Key) ([]*Proof, error) {
	gen := e.ProofBatchGenerator()
	proofs := make([]*Proof, len(keys))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			proofs[i] = gen.Proof(key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return proofs, nil
}

// SubtreeRoot returns the digest of the subtree whose root sits at depth
// (keyBits - prefixBits) along prefix's path, i.e. the digest that would
// summarize every leaf whose key shares prefix's top prefixBits bits. This
// generalizes the level-collapse primitive to stop short of the full root,
// the "subtree-range queries" capability spec.md §3 names without
// defining (original_source's smt.h builds proofs over arbitrary prefix
// masks the same way).
//
// prefixBits must be in [0, 256]; prefixBits == 256 returns GetLeaf(prefix),
// and prefixBits == 0 returns Root().
func (e *Engine) SubtreeRoot(prefixBits int, prefix Key) hashers.Digest {
	if prefixBits < 0 || prefixBits > keyBits {
		panic("smt: SubtreeRoot prefixBits out of range")
	}
	if prefixBits == keyBits {
		return e.GetLeaf(prefix)
	}
	depth := keyBits - prefixBits // levels between the leaves and this subtree's root

	m := e.store.level0()
	if m.len() > 0 {
		for level := 0; level < depth; level++ {
			m = collapseLevel(m, level, e.ladder, e.hasher)
		}
	}

	ancestorKey := Key{v: new(big.Int).Rsh(prefix.v, uint(depth))}
	if d, ok := m.get(ancestorKey); ok {
		return d
	}
	return e.ladder.At(depth)
}
