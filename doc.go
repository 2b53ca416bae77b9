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

// Package smt implements an authenticated key-value store backed by a
// Sparse Merkle Tree (SMT) of fixed depth 256 over 256-bit keys.
//
// The tree never materializes its 2^256 virtual leaves. Only leaves whose
// digest differs from the canonical empty-leaf digest are stored; every
// other node is implied by the ZeroLadder, a precomputed table of empty
// subtree digests indexed by level. Root recomputation proceeds bottom-up
// over only the materialized leaves (see collapse.go), and proof
// generation/validation use the same ladder to fill in absent siblings.
//
// The Z[0] digest (the hash of the empty byte string) doubles as the
// "absent leaf" sentinel: storing a value whose digest equals Z[0] is
// equivalent to removing the leaf.
package smt
