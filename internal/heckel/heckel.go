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

// Package heckel implements the matching phase of Paul Heckel's diff algorithm as described in
// "A technique for isolating differences between files", Communications of the ACM 21(4), 1978.
//
// The algorithm is built on two observations:
//
//  1. An element that occurs exactly once in each input must be the same element, although it
//     may have moved.
//  2. If two elements are known to be the same and their neighbors in both inputs are the same
//     element, then the neighbors must be the same element, too.
//
// The first observation finds anchors, the second one grows blocks of matching elements from the
// anchors. Elements that are neither anchors nor adjacent to a block remain unmatched, they
// become insertions and deletions.
//
// Time and space complexity are O(N) where N = len(x) + len(y), assuming O(1) map operations.
package heckel

import "znkr.io/listdiff/internal/rvecs"

// Diff matches the elements of x and y by the key of each element and returns the resolved
// reference vectors. A slot that is matched in rx points into ry and vice versa.
//
// key is called exactly once for every element. It must return the same key for elements that
// are considered to be the same element.
func Diff[T any, K comparable](x, y []T, key func(T) K) (rx, ry []rvecs.Slot) {
	rx, ry = rvecs.Make(len(x), len(y))
	if len(x) == 0 || len(y) == 0 {
		// Nothing can match. All slots reference the same (nonexistent) entry which is fine,
		// because no pass below ever runs.
		for s := range rx {
			rx[s] = rvecs.Unmatched(0)
		}
		for t := range ry {
			ry[t] = rvecs.Unmatched(0)
		}
		return rx, ry
	}

	st := newSymtab[K](len(x), len(y))
	build(st, x, y, rx, ry, key)
	resolveUnique(st, rx, ry)
	expandForward(rx, ry)
	expandBackward(rx, ry)
	return rx, ry
}

// build creates the symbol table and initializes the reference vectors (passes 1 and 2). y is
// read first, then x; positions in x are recorded in ascending order.
func build[T any, K comparable](st *symtab[K], x, y []T, rx, ry []rvecs.Slot, key func(T) K) {
	for t, e := range y {
		h := st.handle(key(e))
		st.entries[h].ny = st.entries[h].ny.inc()
		ry[t] = rvecs.Unmatched(h)
	}
	for s, e := range x {
		h := st.handle(key(e))
		st.entries[h].nx = st.entries[h].nx.inc()
		st.push(h, s)
		rx[s] = rvecs.Unmatched(h)
	}
}

// resolveUnique matches all elements that occur exactly once in both x and y (pass 3).
func resolveUnique[K comparable](st *symtab[K], rx, ry []rvecs.Slot) {
	for t, slot := range ry {
		h, ok := slot.Entry()
		if !ok || !st.entries[h].resolvable() {
			continue
		}
		s, ok := st.pop(h)
		if !ok {
			continue // can't happen for a resolvable entry, but must not fail either
		}
		ry[t] = rvecs.Matched(s)
		rx[s] = rvecs.Matched(t)
	}
}

// expandForward grows matched blocks towards the end of both inputs (pass 4).
func expandForward(rx, ry []rvecs.Slot) {
	for t := 0; t < len(ry)-1; t++ {
		s, ok := ry[t].Index()
		if !ok || s+1 >= len(rx) {
			continue
		}
		if sameEntry(rx[s+1], ry[t+1]) {
			ry[t+1] = rvecs.Matched(s + 1)
			rx[s+1] = rvecs.Matched(t + 1)
		}
	}
}

// expandBackward grows matched blocks towards the start of both inputs (pass 5).
func expandBackward(rx, ry []rvecs.Slot) {
	for t := len(ry) - 1; t > 0; t-- {
		s, ok := ry[t].Index()
		if !ok || s-1 < 0 {
			continue
		}
		if sameEntry(rx[s-1], ry[t-1]) {
			ry[t-1] = rvecs.Matched(s - 1)
			rx[s-1] = rvecs.Matched(t - 1)
		}
	}
}

// sameEntry reports if both slots are unmatched and reference the same entry.
func sameEntry(a, b rvecs.Slot) bool {
	ha, ok := a.Entry()
	if !ok {
		return false
	}
	hb, ok := b.Entry()
	return ok && ha == hb
}
