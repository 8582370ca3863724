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

package records

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/listdiff"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string // names of the decoded records
	}{
		{
			name: "yaml",
			data: "- name: apple\n- name: banana\n",
			want: []string{"apple", "banana"},
		},
		{
			name: "json",
			data: `[{"name": "apple"}, {"name": "banana"}]`,
			want: []string{"apple", "banana"},
		},
		{
			name: "empty-list",
			data: "[]",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("Decode(...) failed: %v", err)
			}
			got := []string{}
			for _, r := range recs {
				got = append(got, r["name"].(string))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(...) result is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDecodeError(t *testing.T) {
	if _, err := Decode([]byte(`[{"name": "apple"`)); err == nil {
		t.Errorf("Decode(...) succeeded, want error")
	}
}

func TestCompileKey(t *testing.T) {
	rec := Record{"id": 7, "team": "core", "name": "ada", "first-name": "Ada"}
	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{src: "id", want: "7"},
		{src: "name", want: "ada"},
		{src: `team + "/" + name`, want: "core/ada"},
		{src: `$env["first-name"]`, want: "Ada"},
		{src: "missing", wantErr: true},
		{src: `name + 1 +`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			key, err := CompileKey(tt.src)
			if err == nil {
				var got string
				got, err = key(rec)
				if err == nil && got != tt.want {
					t.Errorf("key(...) = %q, want %q", got, tt.want)
				}
			}
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("CompileKey(%q) error = %v, want error: %t", tt.src, err, tt.wantErr)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Record{"name": "apple", "tags": []any{"red", "sweet"}}
	b := Record{"name": "apple", "tags": []any{"red", "sweet"}}
	c := Record{"name": "apple", "tags": []any{"green"}}
	if !Equal(a, b) {
		t.Errorf("Equal(%v, %v) = false, want true", a, b)
	}
	if Equal(a, c) {
		t.Errorf("Equal(%v, %v) = true, want false", a, c)
	}
}

func TestDetail(t *testing.T) {
	a := Record{"name": "apple"}
	b := Record{"name": "apricot"}
	got, err := Detail(a, b, Marker{})
	if err != nil {
		t.Fatalf("Detail(...) failed: %v", err)
	}
	if want := "name: ap[-ple-]{+ricot+}\n"; got != want {
		t.Errorf("Detail(...) = %q, want %q", got, want)
	}

	got, err = Detail(a, b, Marker{Delete: strings.ToUpper, Insert: strings.ToUpper})
	if err != nil {
		t.Fatalf("Detail(...) failed: %v", err)
	}
	if want := "name: apPLERICOT\n"; got != want {
		t.Errorf("Detail(...) = %q, want %q", got, want)
	}
}

func TestDiff(t *testing.T) {
	old, err := Decode([]byte(`
- {id: a, color: red}
- {id: b, color: green}
- {id: c, color: blue}
`))
	if err != nil {
		t.Fatal(err)
	}
	new, err := Decode([]byte(`
- {id: c, color: blue}
- {id: a, color: red}
- {id: d, color: black}
- {id: b, color: yellow}
`))
	if err != nil {
		t.Fatal(err)
	}
	key, err := CompileKey("id")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Diff(old, new, key)
	if err != nil {
		t.Fatalf("Diff(...) failed: %v", err)
	}
	want := []listdiff.Change[Record]{
		{Op: listdiff.Move, From: 2, To: 0, Item: new[0]},
		{Op: listdiff.Move, From: 0, To: 1, Item: new[1]},
		{Op: listdiff.Insert, From: -1, To: 2, Item: new[2]},
		{Op: listdiff.Update, From: -1, To: 3, Item: new[3]},
		{Op: listdiff.Move, From: 1, To: 3, Item: new[3]},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff(...) result is different [-want,+got]:\n%s", diff)
	}

	applied, err := listdiff.Apply(old, got)
	if err != nil {
		t.Fatalf("Apply(...) failed: %v", err)
	}
	if diff := cmp.Diff(new, applied); diff != "" {
		t.Errorf("Apply(...) result is different [-want,+got]:\n%s", diff)
	}
}

func TestDiffKeyError(t *testing.T) {
	old := []Record{{"id": "a"}}
	new := []Record{{"id": "a"}, {"name": "b"}}
	key, err := CompileKey("id")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Diff(old, new, key)
	if err == nil {
		t.Fatal("Diff(...) succeeded, want error")
	}
	if got, want := err.Error(), "new: record 1:"; !strings.HasPrefix(got, want) {
		t.Errorf("Diff(...) error = %q, want prefix %q", got, want)
	}
}
