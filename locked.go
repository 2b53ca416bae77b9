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
	"sync"

	"github.com/sparsetree/smt/hashers"
)

// LockedEngine wraps an Engine with a sync.RWMutex, implementing the
// external locking discipline spec.md §5 calls out as optional but does
// not itself mandate: mutators take the write lock, readers take the read
// lock, so the single-mutator/multiple-reader contract holds even when
// multiple goroutines share one Engine. Engine itself stays lock-free for
// callers who already serialize access some other way (e.g. a single
// event-loop goroutine).
type LockedEngine struct {
	mu sync.RWMutex
	e  *Engine
}

// NewLockedEngine wraps a freshly constructed Engine.
func NewLockedEngine(opts ...Option) *LockedEngine {
	return &LockedEngine{e: NewEngine(opts...)}
}

func (l *LockedEngine) Root() hashers.Digest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.Root()
}

func (l *LockedEngine) GetLeaf(key Key) hashers.Digest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.GetLeaf(key)
}

func (l *LockedEngine) HasLeaf(key Key) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.HasLeaf(key)
}

func (l *LockedEngine) GenerateProof(key Key) *Proof {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.GenerateProof(key)
}

func (l *LockedEngine) ValidateProof(key Key, value []byte, p *Proof) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.ValidateProof(key, value, p)
}

func (l *LockedEngine) ValidateNonInclusion(key Key, p *Proof) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.ValidateNonInclusion(key, p)
}

func (l *LockedEngine) GenerateProofs(ctx context.Context, keys []Key) ([]*Proof, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.e.GenerateProofs(ctx, keys)
}

func (l *LockedEngine) SetLeafHash(key Key, h hashers.Digest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.SetLeafHash(key, h)
}

func (l *LockedEngine) SetLeafValue(key Key, v []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.SetLeafValue(key, v)
}

func (l *LockedEngine) RemoveLeaf(key Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.RemoveLeaf(key)
}

func (l *LockedEngine) BatchSetHash(updates []HashKeyValue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.BatchSetHash(updates)
}

func (l *LockedEngine) BatchSetValue(updates []ValueKeyValue) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.BatchSetValue(updates)
}

func (l *LockedEngine) BatchRemove(keys []Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.BatchRemove(keys)
}

func (l *LockedEngine) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.e.Clear()
}
