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

// Package jsonpatch converts a change script for a JSON array into a [JSON Patch].
//
// A change script describes all changes as a single batch, a JSON Patch is a sequence of
// operations that are applied one after the other. [Build] takes care of the translation.
//
// [JSON Patch]: https://datatracker.ietf.org/doc/html/rfc6902
package jsonpatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch"
	"znkr.io/listdiff"
)

// Kind is the kind of JSON Patch operation.
type Kind string

const (
	Add     Kind = "add"
	Remove  Kind = "remove"
	Replace Kind = "replace"
	Move    Kind = "move"
)

// Operation is a single JSON Patch operation on the top level array.
type Operation struct {
	Op    Kind
	Path  string
	From  string // Only for Move
	Value any    // Only for Add and Replace
}

// MarshalJSON encodes o as a JSON Patch operation object. A nil value is encoded as null for
// operations that carry a value.
func (o Operation) MarshalJSON() ([]byte, error) {
	switch o.Op {
	case Add, Replace:
		return json.Marshal(struct {
			Op    Kind   `json:"op"`
			Path  string `json:"path"`
			Value any    `json:"value"`
		}{o.Op, o.Path, o.Value})
	case Move:
		return json.Marshal(struct {
			Op   Kind   `json:"op"`
			From string `json:"from"`
			Path string `json:"path"`
		}{o.Op, o.From, o.Path})
	case Remove:
		return json.Marshal(struct {
			Op   Kind   `json:"op"`
			Path string `json:"path"`
		}{o.Op, o.Path})
	default:
		return nil, fmt.Errorf("unknown operation %q", o.Op)
	}
}

// Build translates changes, a change script from old to some new slice, into a sequence of JSON
// Patch operations that turns the JSON encoding of old into the JSON encoding of new.
//
// All removals come first, in descending order of their index, so that they don't affect each
// other. The remaining operations are produced in ascending order of the index in new. Every
// operation leaves the prefix of the array up to its path in its final state.
//
// Build returns an error if changes is malformed, see [listdiff.Sources].
func Build[T any](old []T, changes []listdiff.Change[T]) ([]Operation, error) {
	src, err := listdiff.Sources(len(old), changes)
	if err != nil {
		return nil, err
	}
	deleted := make([]bool, len(old))
	items := make([]T, len(src))
	updated := make([]bool, len(src))
	for _, c := range changes {
		switch c.Op {
		case listdiff.Delete:
			deleted[c.From] = true
		case listdiff.Insert, listdiff.Move:
			items[c.To] = c.Item
		case listdiff.Update:
			updated[c.To] = true
			items[c.To] = c.Item
		}
	}

	var ops []Operation
	for s, del := range slices.Backward(deleted) {
		if del {
			ops = append(ops, Operation{Op: Remove, Path: pointer(s)})
		}
	}

	// cur tracks the old indices of the elements in the patched array, -1 for inserted elements.
	cur := make([]int, 0, len(src))
	for s, del := range deleted {
		if !del {
			cur = append(cur, s)
		}
	}
	for t, s := range src {
		if s < 0 {
			path := pointer(t)
			if t == len(cur) {
				path = "/-"
			}
			ops = append(ops, Operation{Op: Add, Path: path, Value: items[t]})
			cur = slices.Insert(cur, t, -1)
			continue
		}
		p := t + slices.Index(cur[t:], s)
		if p != t {
			ops = append(ops, Operation{Op: Move, From: pointer(p), Path: pointer(t)})
			cur = slices.Delete(cur, p, p+1)
			cur = slices.Insert(cur, t, s)
		}
		if updated[t] {
			ops = append(ops, Operation{Op: Replace, Path: pointer(t), Value: items[t]})
		}
	}
	return ops, nil
}

func pointer(i int) string { return "/" + strconv.Itoa(i) }

// Marshal encodes ops as a JSON Patch document.
func Marshal(ops []Operation) ([]byte, error) {
	if ops == nil {
		ops = []Operation{}
	}
	return json.Marshal(ops)
}

// ErrMismatch is returned by [Verify] if the patched document isn't equal to the expected one.
var ErrMismatch = errors.New("patched document is different from expected document")

// Verify applies patch to the JSON document old and checks that the result is equal to the JSON
// document new.
func Verify(old, new, patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("decoding patch: %w", err)
	}
	got, err := p.Apply(old)
	if err != nil {
		return fmt.Errorf("applying patch: %w", err)
	}
	if !jsonpatch.Equal(got, new) {
		return fmt.Errorf("%w: got %s, want %s", ErrMismatch, got, new)
	}
	return nil
}
