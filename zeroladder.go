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

	"github.com/golang/glog"
	"github.com/sparsetree/smt/hashers"
)

// ZeroLadder is the table Z[0..256] of empty-subtree digests (spec.md
// §4.2): Z[0] is the digest of the empty byte string, and Z[i] is the
// digest of Z[i-1] concatenated with itself. It is a pure function of the
// Hasher algorithm, built once and safe to share across engines using the
// same algorithm.
type ZeroLadder struct {
	rungs []hashers.Digest // len == keyBits+1
}

var (
	ladderCacheMu sync.Mutex
	ladderCache   = map[string]*ZeroLadder{}
)

// zeroLadderFor returns the cached ZeroLadder for h, building it on first
// use. spec.md §5 requires first-use initialization to be safe under
// concurrent first calls; a mutex-guarded map gives that directly (the
// "guard with a one-shot barrier" option named in the spec), and is
// cheaper to reason about here than a sync.Once per algorithm name since
// the cache itself is keyed dynamically by h.Name().
func zeroLadderFor(h hashers.Hasher) *ZeroLadder {
	ladderCacheMu.Lock()
	defer ladderCacheMu.Unlock()

	if z, ok := ladderCache[h.Name()]; ok {
		return z
	}

	glog.V(1).Infof("smt: building ZeroLadder for hasher %q", h.Name())
	z := &ZeroLadder{rungs: make([]hashers.Digest, keyBits+1)}
	z.rungs[0] = h.Sum(nil)
	for i := 1; i <= keyBits; i++ {
		prev := z.rungs[i-1]
		combined := make([]byte, 0, 2*len(prev))
		combined = append(combined, prev...)
		combined = append(combined, prev...)
		z.rungs[i] = h.Sum(combined)
	}
	ladderCache[h.Name()] = z
	return z
}

// At returns Z[level]. level must be in [0, 256]; anything else is a
// programming error and panics.
func (z *ZeroLadder) At(level int) hashers.Digest {
	if level < 0 || level >= len(z.rungs) {
		panic("smt: ZeroLadder level out of range")
	}
	return z.rungs[level]
}

// Null returns Z[0], the sentinel digest that means "this leaf is absent".
func (z *ZeroLadder) Null() hashers.Digest {
	return z.rungs[0]
}

// Root returns Z[256], the root of a fully empty tree.
func (z *ZeroLadder) Root() hashers.Digest {
	return z.rungs[keyBits]
}

// Len returns the number of rungs (always 257).
func (z *ZeroLadder) Len() int {
	return len(z.rungs)
}
