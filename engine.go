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
	"time"

	"github.com/golang/glog"
	"github.com/sparsetree/smt/hashers"
)

// Engine is a Sparse Merkle Tree over 256-bit keys (spec.md §4.4). The
// zero value is not usable; construct one with NewEngine.
//
// Engine is single-threaded-mutator / multiple-reader by contract
// (spec.md §5): SetLeaf*, RemoveLeaf, Batch*, and Clear must not run
// concurrently with any other call on the same Engine. GetLeaf, HasLeaf,
// Root, GenerateProof, ValidateProof, and ValidateNonInclusion may run
// concurrently with each other when no mutator is active. Engine itself
// does not lock; see LockedEngine for an external-locking wrapper.
type Engine struct {
	hasher  hashers.Hasher
	ladder  *ZeroLadder
	store   *leafStore
	root    hashers.Digest
	metrics Metrics
}

// Option configures an Engine constructed with NewEngine.
type Option func(*Engine)

// WithHasher selects the Digest algorithm. The default is hashers.SHA256,
// the reference algorithm named in spec.md §4.1.
func WithHasher(h hashers.Hasher) Option {
	return func(e *Engine) { e.hasher = h }
}

// WithMetrics attaches a Metrics sink. The default is a no-op sink.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine returns an empty Engine: store = ∅, root = Z[256] (spec.md §3
// "Lifecycles").
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		hasher:  hashers.SHA256,
		store:   newLeafStore(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ladder = zeroLadderFor(e.hasher)
	e.root = e.ladder.Root()
	return e
}

// Ladder returns the Engine's ZeroLadder, mostly useful for callers that
// need Z[0] (the null/absence digest) outside the Engine, e.g. to compare
// a value's digest against it before calling SetLeafHash.
func (e *Engine) Ladder() *ZeroLadder {
	return e.ladder
}

// Root returns the current root digest (spec.md §4.4 "root()").
func (e *Engine) Root() hashers.Digest {
	return e.root.Clone()
}

// GetLeaf returns the digest stored at key, or Z[0] if key is absent
// (spec.md §4.4 "get_leaf").
func (e *Engine) GetLeaf(key Key) hashers.Digest {
	if d, ok := e.store.get(key); ok {
		return d.Clone()
	}
	return e.ladder.Null()
}

// HasLeaf reports whether key is present in the sparse store (spec.md
// §4.4 "has_leaf").
func (e *Engine) HasLeaf(key Key) bool {
	return e.store.has(key)
}

// Clear empties the store and resets the root to Z[256] (spec.md §4.4
// "clear()").
func (e *Engine) Clear() {
	glog.V(1).Infof("smt: Clear")
	e.store.clear()
	e.root = e.ladder.Root()
}

// SetLeafHash stores h at key, or erases key if h equals Z[0] (spec.md
// §4.4 "set_leaf_hash", §3 "Empty-leaf normalization"), then recomputes
// the root.
func (e *Engine) SetLeafHash(key Key, h hashers.Digest) {
	start := time.Now()
	e.applyOne(key, h)
	e.recomputeRoot()
	glog.V(2).Infof("smt: SetLeafHash key=%s -> root %x", key, e.root)
	e.metrics.ObserveMutation("set_leaf_hash", 1, time.Since(start))
}

// SetLeafValue hashes v and stores the digest at key, as SetLeafHash would
// (spec.md §4.4 "set_leaf_value").
func (e *Engine) SetLeafValue(key Key, v []byte) {
	e.SetLeafHash(key, e.hasher.Sum(v))
}

// RemoveLeaf erases key and recomputes the root (spec.md §4.4
// "remove_leaf").
func (e *Engine) RemoveLeaf(key Key) {
	start := time.Now()
	e.store.remove(key)
	e.recomputeRoot()
	glog.V(2).Infof("smt: RemoveLeaf key=%s -> root %x", key, e.root)
	e.metrics.ObserveMutation("remove_leaf", 1, time.Since(start))
}

// HashKeyValue is a single pre-hashed leaf update, used by BatchSetHash.
type HashKeyValue struct {
	Key    Key
	Digest hashers.Digest
}

// ValueKeyValue is a single raw-value leaf update, used by BatchSetValue.
type ValueKeyValue struct {
	Key   Key
	Value []byte
}

// BatchSetHash applies every update and recomputes the root exactly once
// (spec.md §4.4 "batch_set_hash", §7 "last write wins by iteration order").
func (e *Engine) BatchSetHash(updates []HashKeyValue) {
	start := time.Now()
	for _, u := range updates {
		e.applyOne(u.Key, u.Digest)
	}
	e.recomputeRoot()
	glog.V(1).Infof("smt: BatchSetHash %d updates -> root %x", len(updates), e.root)
	e.metrics.ObserveMutation("batch_set_hash", len(updates), time.Since(start))
}

// BatchSetValue hashes every value and applies the batch as BatchSetHash
// would (spec.md §4.4 "batch_set_value").
func (e *Engine) BatchSetValue(updates []ValueKeyValue) {
	start := time.Now()
	for _, u := range updates {
		e.applyOne(u.Key, e.hasher.Sum(u.Value))
	}
	e.recomputeRoot()
	glog.V(1).Infof("smt: BatchSetValue %d updates -> root %x", len(updates), e.root)
	e.metrics.ObserveMutation("batch_set_value", len(updates), time.Since(start))
}

// BatchRemove erases every key and recomputes the root exactly once
// (spec.md §4.4 "batch_remove").
func (e *Engine) BatchRemove(keys []Key) {
	start := time.Now()
	for _, k := range keys {
		e.store.remove(k)
	}
	e.recomputeRoot()
	glog.V(1).Infof("smt: BatchRemove %d keys -> root %x", len(keys), e.root)
	e.metrics.ObserveMutation("batch_remove", len(keys), time.Since(start))
}

// applyOne is the shared single-key mutation primitive SetLeafHash and the
// batch setters use: store h at key unless h is the empty-leaf digest, in
// which case key is erased (spec.md §3 "Empty-leaf normalization").
func (e *Engine) applyOne(key Key, h hashers.Digest) {
	if h.Equal(e.ladder.Null()) {
		e.store.remove(key)
		return
	}
	e.store.set(key, h.Clone())
}

// recomputeRoot runs the level-collapse algorithm over the current store
// (spec.md §4.4 "Root recomputation algorithm") and updates e.root.
func (e *Engine) recomputeRoot() {
	start := time.Now()
	e.root = computeRoot(e.store, e.ladder, e.hasher)
	e.metrics.ObserveRootRecompute(e.store.len(), time.Since(start))
}
