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

import "crypto/sha256"

// sha256Hasher is the reference Hasher implementation named throughout
// spec.md §4.1: 32-byte SHA-256 digests.
type sha256Hasher struct{}

// SHA256 is the reference Hasher: 32-byte SHA-256 digests.
var SHA256 Hasher = sha256Hasher{}

func (sha256Hasher) Sum(data []byte) Digest {
	h := sha256.Sum256(data)
	return Digest(h[:])
}

func (sha256Hasher) Size() int { return sha256.Size }

func (sha256Hasher) Name() string { return "sha256" }
