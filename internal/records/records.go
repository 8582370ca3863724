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

// Package records compares documents that consist of a list of records, e.g. a YAML or JSON array
// of objects, where each record is identified by a key.
package records

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/listdiff"
)

// Record is a single record of a document.
type Record = map[string]any

// Decode decodes a YAML or JSON document containing a list of records.
func Decode(data []byte) ([]Record, error) {
	var recs []Record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return recs, nil
}

// KeyFunc returns the key of a record.
type KeyFunc func(Record) (string, error)

// CompileKey compiles a key expression. The expression is evaluated with the fields of a record as
// variables, e.g. "id" or `team + "/" + name`. Fields whose names aren't identifiers can be
// accessed with $env, e.g. `$env["first-name"]`.
//
// The key is the string representation of the result. It's an error if the result is nil.
func CompileKey(src string) (KeyFunc, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compiling key %q: %w", src, err)
	}
	return func(r Record) (string, error) {
		return evalKey(prg, src, r)
	}, nil
}

func evalKey(prg *vm.Program, src string, r Record) (string, error) {
	v, err := expr.Run(prg, r)
	if err != nil {
		return "", fmt.Errorf("evaluating key %q: %w", src, err)
	}
	if v == nil {
		return "", fmt.Errorf("key %q is nil for record %v", src, r)
	}
	return fmt.Sprint(v), nil
}

// Equal reports whether two records have the same content.
func Equal(a, b Record) bool {
	return cmp.Equal(a, b)
}

// Diff compares old and new and returns the changes to convert from one to the other. Records
// with the same key are reported as updated if their content is different.
//
// Keys are computed for all records before the comparison, the first error is returned.
func Diff(old, new []Record, key KeyFunc, opts ...listdiff.Option) ([]listdiff.Change[Record], error) {
	type keyed struct {
		key string
		rec Record
	}
	withKeys := func(recs []Record) ([]keyed, error) {
		out := make([]keyed, len(recs))
		for i, r := range recs {
			k, err := key(r)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			out[i] = keyed{k, r}
		}
		return out, nil
	}
	x, err := withKeys(old)
	if err != nil {
		return nil, fmt.Errorf("old: %w", err)
	}
	y, err := withKeys(new)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	changes := listdiff.ChangesFunc(x, y, func(k keyed) string { return k.key }, func(a, b keyed) bool {
		return Equal(a.rec, b.rec)
	}, opts...)

	out := make([]listdiff.Change[Record], len(changes))
	for i, c := range changes {
		out[i] = listdiff.Change[Record]{Op: c.Op, From: c.From, To: c.To, Item: c.Item.rec}
	}
	return out, nil
}

// Marker decorates deleted and inserted text in [Detail]. A nil function uses a word diff style
// marker, "[-text-]" for deletions and "{+text+}" for insertions.
type Marker struct {
	Delete func(string) string
	Insert func(string) string
}

// Detail describes the difference between the YAML encodings of a and b on the character level.
func Detail(a, b Record, m Marker) (string, error) {
	if m.Delete == nil {
		m.Delete = func(s string) string { return "[-" + s + "-]" }
	}
	if m.Insert == nil {
		m.Insert = func(s string) string { return "{+" + s + "+}" }
	}

	ya, err := yaml.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}
	yb, err := yaml.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMain(string(ya), string(yb), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffpatch.DiffDelete:
			sb.WriteString(m.Delete(d.Text))
		case diffpatch.DiffInsert:
			sb.WriteString(m.Insert(d.Text))
		}
	}
	return sb.String(), nil
}
