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

package main

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
)

// item is a synthetic record. Items are identified by ID, Version changes on update.
type item struct {
	ID      uuid.UUID
	Version int
}

func (i item) String() string { return fmt.Sprintf("%s@%d", i.ID, i.Version) }

func key(i item) uuid.UUID { return i.ID }

// source is a deterministic random source that can also be used as an io.Reader for uuids.
type source struct {
	*rand.Rand
	cc *rand.ChaCha8
}

func newRand(seed uint64, id int) source {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	binary.LittleEndian.PutUint64(s[8:16], uint64(id))
	cc := rand.NewChaCha8(s)
	return source{rand.New(cc), cc}
}

func (s source) newID() uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(s.cc))
}

// generate creates a random list with up to size elements and a mutated copy of it. With
// probability dups, an element reuses the key of an earlier element.
func generate(rng source, size int, dups float64) (old, new []item) {
	newItem := func(prev []item) item {
		if len(prev) > 0 && rng.Float64() < dups {
			return item{ID: prev[rng.IntN(len(prev))].ID}
		}
		return item{ID: rng.newID()}
	}

	old = make([]item, rng.IntN(size+1))
	for i := range old {
		old[i] = newItem(old[:i])
	}

	new = slices.Clone(old)
	for range rng.IntN(max(1, len(old)/4) + 1) {
		switch rng.IntN(4) {
		case 0: // delete
			if len(new) > 0 {
				i := rng.IntN(len(new))
				new = slices.Delete(new, i, i+1)
			}
		case 1: // insert
			new = slices.Insert(new, rng.IntN(len(new)+1), newItem(new))
		case 2: // move
			if len(new) > 0 {
				i := rng.IntN(len(new))
				it := new[i]
				new = slices.Delete(new, i, i+1)
				new = slices.Insert(new, rng.IntN(len(new)+1), it)
			}
		case 3: // update
			if len(new) > 0 {
				new[rng.IntN(len(new))].Version++
			}
		}
	}
	return old, new
}
