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

import (
	"fmt"

	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/heckel"
	"znkr.io/listdiff/internal/rvecs"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Insert Op = iota // An insertion of an element from the new slice
	Delete           // A deletion of an element from the old slice
	Update           // An element that is in both slices, but whose content changed
	Move             // An element that is in both slices, but whose relative position changed
)

// Change describes a single change of a change script.
//
//   - For Insert, To is the index in new and Item is the inserted element.
//   - For Delete, From is the index in old and Item is the deleted element.
//   - For Update, To is the index in new and Item is the element from new.
//   - For Move, From is the index in old, To is the index in new, and Item is the element from
//     new.
//
// Indices that don't apply to an operation are -1.
type Change[T any] struct {
	Op       Op
	From, To int
	Item     T
}

// String returns a compact description of the change: "+2@x" for an insertion of x at 2, "-2@x"
// for a deletion of x at 2, "!2@x" for an update of x at 2, and "1>2@x" for a move of x from 1 to
// 2.
func (c Change[T]) String() string {
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+%d@%v", c.To, c.Item)
	case Delete:
		return fmt.Sprintf("-%d@%v", c.From, c.Item)
	case Update:
		return fmt.Sprintf("!%d@%v", c.To, c.Item)
	case Move:
		return fmt.Sprintf("%d>%d@%v", c.From, c.To, c.Item)
	default:
		return fmt.Sprintf("%v(%d,%d)@%v", c.Op, c.From, c.To, c.Item)
	}
}

// Changes compares the contents of old and new and returns the changes necessary to convert from
// one to the other. Elements are identified by their value, consequently, Changes never reports
// updates.
//
// The output lists all deletions in ascending order of their index in old, followed by all
// insertions and moves in ascending order of their index in new. If old and new are identical, the
// output has length zero.
//
// The following option is supported: [listdiff.DisableMoves]
//
// Important: The output is minimal for inputs without duplicates. For inputs with duplicates, the
// output is correct but may contain more changes than necessary.
func Changes[T comparable](old, new []T, opts ...Option) []Change[T] {
	cfg := config.FromOptions(opts, config.DisableMoves)
	rx, ry := heckel.Diff(old, new, identity[T])
	return changes(old, new, rx, ry, nil, cfg)
}

// ChangesKey compares the contents of old and new and returns the changes necessary to convert
// from one to the other. Elements are identified by the key returned from key, two elements with
// the same key whose values differ are reported as an update.
//
// The output lists all deletions in ascending order of their index in old, followed by all
// insertions, updates, and moves in ascending order of their index in new. For an element that
// was both updated and moved, the update is listed before the move.
//
// The following options are supported: [listdiff.DisableMoves], [listdiff.DisableUpdates]
//
// The key function must be stable for the duration of the call. If it isn't, the result is
// undefined.
func ChangesKey[T, K comparable](old, new []T, key func(T) K, opts ...Option) []Change[T] {
	cfg := config.FromOptions(opts, config.DisableMoves|config.DisableUpdates)
	rx, ry := heckel.Diff(old, new, key)
	updated := func(s, t int) bool { return old[s] != new[t] }
	return changes(old, new, rx, ry, updated, cfg)
}

// ChangesFunc compares the contents of old and new and returns the changes necessary to convert
// from one to the other. Elements are identified by the key returned from key, two elements with
// the same key are reported as an update if eq returns false for them. If eq is nil, no updates
// are reported.
//
// The output is ordered in the same way as for [ChangesKey].
//
// The following options are supported: [listdiff.DisableMoves], [listdiff.DisableUpdates]
//
// The key and eq functions must be stable for the duration of the call. If they aren't, the result
// is undefined.
func ChangesFunc[T any, K comparable](old, new []T, key func(T) K, eq func(a, b T) bool, opts ...Option) []Change[T] {
	cfg := config.FromOptions(opts, config.DisableMoves|config.DisableUpdates)
	rx, ry := heckel.Diff(old, new, key)
	var updated func(s, t int) bool
	if eq != nil {
		updated = func(s, t int) bool { return !eq(old[s], new[t]) }
	}
	return changes(old, new, rx, ry, updated, cfg)
}

func identity[T any](v T) T { return v }

func changes[T any](old, new []T, rx, ry []rvecs.Slot, updated func(s, t int) bool, cfg config.Config) []Change[T] {
	var out []Change[T]
	for step := range rvecs.Steps(rx, ry, updated, cfg) {
		switch step.Kind {
		case rvecs.Delete:
			out = append(out, Change[T]{Op: Delete, From: step.S, To: -1, Item: old[step.S]})
		case rvecs.Insert:
			out = append(out, Change[T]{Op: Insert, From: -1, To: step.T, Item: new[step.T]})
		case rvecs.Update:
			out = append(out, Change[T]{Op: Update, From: -1, To: step.T, Item: new[step.T]})
		case rvecs.Move:
			out = append(out, Change[T]{Op: Move, From: step.S, To: step.T, Item: new[step.T]})
		default:
			panic("never reached")
		}
	}
	return out
}
