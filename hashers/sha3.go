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

package hashers

import "golang.org/x/crypto/sha3"

// keccak256Hasher demonstrates that the engine is parametric in its Digest
// algorithm (spec.md §4.1, §6): any 32-byte collision-resistant hash works,
// not just SHA-256.
type keccak256Hasher struct{}

// Keccak256 is an alternate 32-byte Hasher, useful where a tree needs to
// interoperate with ecosystems (e.g. Ethereum-derived ones) that standardize
// on Keccak-256 rather than SHA-256.
var Keccak256 Hasher = keccak256Hasher{}

func (keccak256Hasher) Sum(data []byte) Digest {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return Digest(h.Sum(nil))
}

func (keccak256Hasher) Size() int { return 32 }

func (keccak256Hasher) Name() string { return "keccak256" }
