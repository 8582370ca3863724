// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// Package rvecs contains functions to work with the reference vectors, the internal representation
// that's used by the heckel algorithm and is then translated to a user facing API. The internal
// representation is separate from the exported representation because it needs to be cheap to
// update in place while the algorithm resolves matches.
package rvecs

// Slot is a single cell of a reference vector. A slot is either unmatched, in which case it
// references a symbol table entry, or matched, in which case it holds the index of the
// corresponding element in the other input.
//
// Both variants are packed into an int: matched slots hold the index i >= 0, unmatched slots hold
// ^h < 0 for the entry handle h. A slot only ever transitions from unmatched to matched.
type Slot int

// Unmatched returns a slot that references the symbol table entry with handle h.
func Unmatched(h int) Slot { return Slot(^h) }

// Matched returns a slot that is matched to index i in the other input.
func Matched(i int) Slot { return Slot(i) }

// Index returns the index in the other input and true if the slot is matched.
func (s Slot) Index() (int, bool) { return int(s), s >= 0 }

// Entry returns the entry handle and true if the slot is unmatched.
func (s Slot) Entry() (int, bool) { return ^int(s), s < 0 }

// IsMatched reports whether the slot has been resolved.
func (s Slot) IsMatched() bool { return s >= 0 }

// Make allocates the reference vectors for inputs of length n and m from a single buffer.
func Make(n, m int) (rx, ry []Slot) {
	r := make([]Slot, n+m)
	rx = r[:n:n]
	ry = r[n:]
	return
}
