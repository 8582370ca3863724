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
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/records"
)

const (
	oldDoc = `
- {id: a, color: red}
- {id: b, color: green}
`
	newDoc = `[{"id": "b", "color": "blue"}, {"id": "c", "color": "black"}]`
)

func TestCommand(t *testing.T) {
	if cmd := Command(); cmd == nil {
		t.Fatal("Command() = nil")
	}
}

func TestDiffDocsText(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{Key: "id", Output: "text", Verify: true}
	if err := diffDocs(cfg, &out, []byte(oldDoc), []byte(newDoc), false); err != nil {
		t.Fatalf("diffDocs(...) failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	want := []struct{ prefix, contains string }{
		{"-0 ", "id: a"},
		{"!0 ", "color: blue"},
		{"+1 ", "id: c"},
	}
	if len(lines) != len(want) {
		t.Fatalf("diffDocs(...) wrote %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w.prefix) || !strings.Contains(lines[i], w.contains) {
			t.Errorf("line %d = %q, want prefix %q containing %q", i, lines[i], w.prefix, w.contains)
		}
	}
}

func TestDiffDocsDetails(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{Key: "id", Output: "text", Details: true}
	if err := diffDocs(cfg, &out, []byte(oldDoc), []byte(newDoc), false); err != nil {
		t.Fatalf("diffDocs(...) failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"    color: ", "[-", "{+", "    id: b\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("diffDocs(...) output doesn't contain %q:\n%s", want, got)
		}
	}
}

func TestDiffDocsColor(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{Key: "id", Output: "text"}
	if err := diffDocs(cfg, &out, []byte(oldDoc), []byte(newDoc), true); err != nil {
		t.Fatalf("diffDocs(...) failed: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b[31m-0 ") {
		t.Errorf("diffDocs(...) output isn't colored: %q", out.String())
	}
}

func TestDiffDocsStructured(t *testing.T) {
	zero, one := 0, 1
	want := []changeDoc{
		{Op: "delete", From: &zero},
		{Op: "update", To: &zero},
		{Op: "insert", To: &one},
	}
	ignoreItem := func(docs []changeDoc) []changeDoc {
		for i := range docs {
			docs[i].Item = nil
		}
		return docs
	}

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			cfg := &Config{Key: "id", Output: format}
			if err := diffDocs(cfg, &out, []byte(oldDoc), []byte(newDoc), false); err != nil {
				t.Fatalf("diffDocs(...) failed: %v", err)
			}
			var got []changeDoc
			var err error
			if format == "json" {
				err = json.Unmarshal(out.Bytes(), &got)
			} else {
				err = yaml.Unmarshal(out.Bytes(), &got)
			}
			if err != nil {
				t.Fatalf("failed to decode output: %v\n%s", err, out.String())
			}
			if diff := cmp.Diff(want, ignoreItem(got)); diff != "" {
				t.Errorf("diffDocs(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffDocsJSONPatch(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{Key: "id", Output: "jsonpatch", Verify: true}
	if err := diffDocs(cfg, &out, []byte(oldDoc), []byte(newDoc), false); err != nil {
		t.Fatalf("diffDocs(...) failed: %v", err)
	}
	var ops []map[string]any
	if err := json.Unmarshal(out.Bytes(), &ops); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, out.String())
	}
	var got []string
	for _, op := range ops {
		got = append(got, op["op"].(string))
	}
	if diff := cmp.Diff([]string{"remove", "replace", "add"}, got); diff != "" {
		t.Errorf("diffDocs(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestDiffDocsNoMoves(t *testing.T) {
	var out bytes.Buffer
	cfg := &Config{Key: "id", Output: "text", NoMoves: true, Verify: true}
	old := "[{id: a}, {id: b}, {id: c}]"
	new := "[{id: b}, {id: a}, {id: c}]"
	if err := diffDocs(cfg, &out, []byte(old), []byte(new), false); err != nil {
		t.Fatalf("diffDocs(...) failed: %v", err)
	}
	if strings.Contains(out.String(), ">") {
		t.Errorf("diffDocs(...) reported moves:\n%s", out.String())
	}
}

func TestDiffDocsErrors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		old, new string
		usage    bool
	}{
		{
			name:  "unknown-format",
			cfg:   Config{Key: "id", Output: "xml"},
			old:   oldDoc,
			new:   newDoc,
			usage: true,
		},
		{
			name:  "invalid-key",
			cfg:   Config{Key: "id +", Output: "text"},
			old:   oldDoc,
			new:   newDoc,
			usage: true,
		},
		{
			name: "missing-key",
			cfg:  Config{Key: "name", Output: "text"},
			old:  oldDoc,
			new:  newDoc,
		},
		{
			name: "invalid-document",
			cfg:  Config{Key: "id", Output: "text"},
			old:  `[{"id": "a"`,
			new:  newDoc,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := diffDocs(&tt.cfg, &bytes.Buffer{}, []byte(tt.old), []byte(tt.new), false)
			if err == nil {
				t.Fatal("diffDocs(...) succeeded, want error")
			}
			if got := errors.Is(err, cli.ErrUsage); got != tt.usage {
				t.Errorf("diffDocs(...) = %v, usage error: %t, want %t", err, got, tt.usage)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	old := []records.Record{{"id": "a"}}
	new := []records.Record{{"id": "b"}}
	changes := []listdiff.Change[records.Record]{
		{Op: listdiff.Update, From: -1, To: 0, Item: records.Record{"id": "c"}},
	}
	if err := verify(old, new, changes); err == nil {
		t.Error("verify(...) succeeded, want error")
	}
	if err := verifyPatch(old, new, []byte(`[]`)); err == nil {
		t.Error("verifyPatch(...) succeeded, want error")
	}
}
