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

package heckel

// counter is a saturating occurrence counter. Exact counts beyond one are never needed.
type counter uint8

const (
	zero counter = iota
	one
	many
)

var increments = [...]counter{
	zero: one,
	one:  many,
	many: many,
}

func (c counter) inc() counter { return increments[c] }

// entry is a symbol table entry, there is one for every distinct key in x and y.
type entry struct {
	nx, ny counter // occurrences in x and y

	// Positions in x where the key occurs, in ascending order. The positions form a linked list
	// threaded through symtab.next, head is the first unconsumed position or -1.
	head, tail int
}

// resolvable reports if the key occurs exactly once in both inputs.
func (e *entry) resolvable() bool { return e.nx == one && e.ny == one }

// symtab maps keys to entries. Entries are stored in an arena and referenced by their index (the
// handle), two slots reference the same entry iff their handles are equal.
type symtab[K comparable] struct {
	idx     map[K]int
	entries []entry
	next    []int // next[s] is the position after s in the list of positions for x[s]'s entry
}

func newSymtab[K comparable](n, m int) *symtab[K] {
	return &symtab[K]{
		idx:     make(map[K]int, max(n, m)),
		entries: make([]entry, 0, max(n, m)),
		next:    make([]int, n),
	}
}

// handle returns the handle for k, creating a new entry if k hasn't been seen before.
func (st *symtab[K]) handle(k K) int {
	h, ok := st.idx[k]
	if !ok {
		h = len(st.entries)
		st.idx[k] = h
		st.entries = append(st.entries, entry{head: -1, tail: -1})
	}
	return h
}

// push appends position s in x to the positions of entry h.
func (st *symtab[K]) push(h, s int) {
	e := &st.entries[h]
	st.next[s] = -1
	if e.tail < 0 {
		e.head = s
	} else {
		st.next[e.tail] = s
	}
	e.tail = s
}

// pop removes and returns the first unconsumed position in x of entry h. It returns false if
// there is none.
func (st *symtab[K]) pop(h int) (int, bool) {
	e := &st.entries[h]
	s := e.head
	if s < 0 {
		return -1, false
	}
	e.head = st.next[s]
	if e.head < 0 {
		e.tail = -1
	}
	return s, true
}
