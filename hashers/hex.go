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

import (
	"encoding/hex"
	"fmt"
)

// DigestToHex renders d as lowercase hex, two characters per byte, in byte
// order, with no separators -- the rendering contract of spec.md §6.
func DigestToHex(d Digest) string {
	return hex.EncodeToString(d)
}

// DigestFromHex parses the inverse of DigestToHex. It is used at
// language-binding boundaries (spec.md §6); the core engine never calls it.
func DigestFromHex(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("hashers: malformed hex digest %q: %w", s, err)
	}
	return Digest(b), nil
}
