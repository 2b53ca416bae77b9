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

import "errors"

var (
	// ErrMalformedKey is returned by ParseKey when its input isn't a valid
	// base-10 integer.
	ErrMalformedKey = errors.New("smt: malformed key")

	// ErrKeyOutOfRange is returned by ParseKey when its input doesn't fit
	// in 256 bits.
	ErrKeyOutOfRange = errors.New("smt: key out of range")

	// ErrNegativeKey names a Key carrying a negative big.Int. No function in
	// this package returns it; ParseKey reports negative input as
	// ErrMalformedKey.
	ErrNegativeKey = errors.New("smt: negative key")
)
