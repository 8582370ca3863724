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

package rvecs

import (
	"iter"

	"znkr.io/listdiff/internal/config"
)

// Kind is the kind of a step.
type Kind uint8

const (
	Delete Kind = iota
	Insert
	Update
	Move
)

// Step describes a single edit operation in terms of indices.
type Step struct {
	Kind Kind
	S    int // Index in x, -1 for Insert and Update.
	T    int // Index in y, -1 for Delete.
}

// Steps translates resolved reference vectors into edit steps. All deletions are produced first
// in ascending order of s, followed by all insertions, updates, and moves in ascending order of t.
//
// If updated is non-nil, it's called for every matched pair to determine if the element needs to
// be reported as updated.
func Steps(rx, ry []Slot, updated func(s, t int) bool, cfg config.Config) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		// offsets[s] is the number of deletions in x[:s].
		offsets := make([]int, len(rx))
		del := 0
		for s, slot := range rx {
			offsets[s] = del
			if !slot.IsMatched() {
				del++
			}
		}

		// An element has moved if its index in x, adjusted for the deletions before it in x and
		// the insertions before it in y, is not its index in y.
		var moved []bool
		if cfg.DisableMoves {
			moved = make([]bool, len(rx))
			ins := 0
			for t, slot := range ry {
				s, ok := slot.Index()
				if !ok {
					ins++
					continue
				}
				moved[s] = s-offsets[s]+ins != t
			}
		}

		for s, slot := range rx {
			if !slot.IsMatched() || moved != nil && moved[s] {
				if !yield(Step{Delete, s, -1}) {
					return
				}
			}
		}

		ins := 0
		for t, slot := range ry {
			s, ok := slot.Index()
			if !ok {
				ins++
				if !yield(Step{Insert, -1, t}) {
					return
				}
				continue
			}
			if moved != nil && moved[s] {
				// Moves are reported as a delete and an insert, the insert carries the new
				// element which makes an update redundant.
				if !yield(Step{Insert, -1, t}) {
					return
				}
				continue
			}
			if updated != nil && !cfg.DisableUpdates && updated(s, t) {
				if !yield(Step{Update, -1, t}) {
					return
				}
			}
			if s-offsets[s]+ins != t {
				if !yield(Step{Move, s, t}) {
					return
				}
			}
		}
	}
}
