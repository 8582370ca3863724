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

package listdiff

import "fmt"

// Apply applies a change script to old and returns the result. For a change script returned by
// one of the comparison functions in this package, the result is equal to the new slice passed to
// that function.
//
// The changes are applied as a single batch, the same way list views apply batch updates:
//
//  1. All deleted and moved elements are removed from old. Their indices refer to old.
//  2. All inserted and moved elements are placed at their index in the result.
//  3. The remaining elements of old fill the free positions in the result in their original
//     order.
//  4. All updated elements replace the element at their index in the result.
//
// Apply returns an error if the change script is malformed, e.g. if an index is out of range or
// if two changes claim the same position. The order of changes in the script doesn't matter.
func Apply[T any](old []T, changes []Change[T]) ([]T, error) {
	src, err := Sources(len(old), changes)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(src))
	for t, s := range src {
		if s >= 0 {
			out[t] = old[s]
		}
	}
	for _, c := range changes {
		if c.Op == Insert || c.Op == Move {
			out[c.To] = c.Item
		}
	}
	for _, c := range changes {
		if c.Op == Update {
			out[c.To] = c.Item
		}
	}
	return out, nil
}

// Sources returns for every element of the result of applying changes to a slice of length n the
// index of the element in that slice it originates from, or -1 if it was inserted. See [Apply]
// for how changes are applied.
//
// Sources returns an error if the change script is malformed.
func Sources[T any](n int, changes []Change[T]) ([]int, error) {
	removed := make([]bool, n)
	nremoved, nplaced := 0, 0
	for _, c := range changes {
		switch c.Op {
		case Delete, Move:
			if c.From < 0 || c.From >= n {
				return nil, fmt.Errorf("%v: index %d out of range [0,%d)", c, c.From, n)
			}
			if removed[c.From] {
				return nil, fmt.Errorf("%v: element %d removed more than once", c, c.From)
			}
			removed[c.From] = true
			nremoved++
		case Insert, Update:
		default:
			return nil, fmt.Errorf("%v: unknown operation", c)
		}
		if c.Op == Insert || c.Op == Move {
			nplaced++
		}
	}

	src := make([]int, n-nremoved+nplaced)
	placed := make([]bool, len(src))
	for _, c := range changes {
		if c.Op != Insert && c.Op != Move {
			continue
		}
		if c.To < 0 || c.To >= len(src) {
			return nil, fmt.Errorf("%v: index %d out of range [0,%d)", c, c.To, len(src))
		}
		if placed[c.To] {
			return nil, fmt.Errorf("%v: position %d is already taken", c, c.To)
		}
		placed[c.To] = true
		if c.Op == Move {
			src[c.To] = c.From
		} else {
			src[c.To] = -1
		}
	}

	// The number of free positions is exactly the number of remaining elements.
	s := 0
	for t := range src {
		if placed[t] {
			continue
		}
		for s < n && removed[s] {
			s++
		}
		src[t] = s
		s++
	}

	for _, c := range changes {
		if c.Op == Update && (c.To < 0 || c.To >= len(src)) {
			return nil, fmt.Errorf("%v: index %d out of range [0,%d)", c, c.To, len(src))
		}
	}
	return src, nil
}

// IndexMove describes the source and destination of a moved element.
type IndexMove struct {
	From, To int
}

// Batch groups the indices of a change script by operation.
type Batch struct {
	Deletes []int       // Indices in old
	Inserts []int       // Indices in new
	Updates []int       // Indices in new
	Moves   []IndexMove // Index pairs from old to new
}

// Group groups the changes by operation. The indices in each group are in the order of the change
// script.
func Group[T any](changes []Change[T]) Batch {
	var b Batch
	for _, c := range changes {
		switch c.Op {
		case Delete:
			b.Deletes = append(b.Deletes, c.From)
		case Insert:
			b.Inserts = append(b.Inserts, c.To)
		case Update:
			b.Updates = append(b.Updates, c.To)
		case Move:
			b.Moves = append(b.Moves, IndexMove{c.From, c.To})
		}
	}
	return b
}
