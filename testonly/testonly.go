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

// Package testonly holds fixtures shared across this module's test files,
// mirroring the role github.com/google/trillian/storage/testonly plays for
// trillian's own tests.
package testonly

import (
	"fmt"
	"math/rand"

	"github.com/sparsetree/smt"
)

// SeededKeys returns n deterministic pseudo-random Keys from rng, useful
// for large-batch tests (spec.md §8 scenario 5 uses exactly this shape:
// a uniformly sampled subset of a large batch).
func SeededKeys(rng *rand.Rand, n int) []smt.Key {
	keys := make([]smt.Key, n)
	for i := range keys {
		keys[i] = smt.KeyFromUint64(rng.Uint64())
	}
	return keys
}

// SequentialValue returns a small deterministic value for index i, used to
// build the {(i, {i%256,i%256,i%256}) : i=0..n-1} fixture from spec.md §8
// scenario 5.
func SequentialValue(i int) []byte {
	b := byte(i % 256)
	return []byte{b, b, b}
}

// RequireRootsEqual is a tiny comparison helper for table-driven tests that
// want a one-line failure message instead of repeating the %x formatting
// at every call site.
func RequireRootsEqual(t interface{ Errorf(string, ...interface{}) }, got, want []byte, ctx string) {
	if len(got) != len(want) {
		t.Errorf("%s: root length = %d, want %d", ctx, len(got), len(want))
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s: root = %x, want %x", ctx, got, want)
			return
		}
	}
}

// DebugKey renders a key for test failure messages.
func DebugKey(k smt.Key) string {
	return fmt.Sprintf("Key(%s)", k.String())
}
