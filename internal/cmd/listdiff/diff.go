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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/records"
	"znkr.io/listdiff/jsonpatch"
)

// palette colors the parts of the text output.
type palette struct {
	del, ins, upd, move *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		del:  color.New(color.FgRed),
		ins:  color.New(color.FgGreen),
		upd:  color.New(color.FgYellow),
		move: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.del, p.ins, p.upd, p.move} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// changeDoc is the encoding of a change in the yaml and json output formats.
type changeDoc struct {
	Op   string         `yaml:"op" json:"op"`
	From *int           `yaml:"from,omitempty" json:"from,omitempty"`
	To   *int           `yaml:"to,omitempty" json:"to,omitempty"`
	Item records.Record `yaml:"item" json:"item"`
}

func diffDocs(cfg *Config, w io.Writer, oldData, newData []byte, colorize bool) error {
	old, err := records.Decode(oldData)
	if err != nil {
		return fmt.Errorf("old document: %w", err)
	}
	new, err := records.Decode(newData)
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}
	key, err := records.CompileKey(cfg.Key)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	var opts []listdiff.Option
	if cfg.NoMoves {
		opts = append(opts, listdiff.DisableMoves())
	}
	changes, err := records.Diff(old, new, key, opts...)
	if err != nil {
		return err
	}
	if cfg.Verify {
		if err := verify(old, new, changes); err != nil {
			return err
		}
	}

	switch cfg.Output {
	case "text":
		return writeText(w, old, changes, cfg.Details, newPalette(colorize))
	case "yaml":
		data, err := yaml.Marshal(changeDocs(changes))
		if err != nil {
			return fmt.Errorf("encoding changes: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(changeDocs(changes), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding changes: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "jsonpatch":
		ops, err := jsonpatch.Build(old, changes)
		if err != nil {
			return err
		}
		data, err := jsonpatch.Marshal(ops)
		if err != nil {
			return fmt.Errorf("encoding patch: %w", err)
		}
		if cfg.Verify {
			if err := verifyPatch(old, new, data); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("%w: unknown output format %q", cli.ErrUsage, cfg.Output)
	}
}

func verify(old, new []records.Record, changes []listdiff.Change[records.Record]) error {
	got, err := listdiff.Apply(old, changes)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if len(got) != len(new) {
		return fmt.Errorf("verification failed: got %d records, want %d", len(got), len(new))
	}
	for i := range got {
		if !records.Equal(got[i], new[i]) {
			return fmt.Errorf("verification failed: record %d is different: got %v, want %v", i, got[i], new[i])
		}
	}
	return nil
}

func verifyPatch(old, new []records.Record, patch []byte) error {
	if old == nil {
		old = []records.Record{}
	}
	if new == nil {
		new = []records.Record{}
	}
	oldJSON, err := json.Marshal(old)
	if err != nil {
		return fmt.Errorf("encoding old document: %w", err)
	}
	newJSON, err := json.Marshal(new)
	if err != nil {
		return fmt.Errorf("encoding new document: %w", err)
	}
	if err := jsonpatch.Verify(oldJSON, newJSON, patch); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return nil
}

func changeDocs(changes []listdiff.Change[records.Record]) []changeDoc {
	docs := make([]changeDoc, len(changes))
	for i, c := range changes {
		docs[i] = changeDoc{Op: strings.ToLower(c.Op.String()), Item: c.Item}
		if c.From >= 0 {
			docs[i].From = &c.From
		}
		if c.To >= 0 {
			docs[i].To = &c.To
		}
	}
	return docs
}

// writeText writes one line per change, using the same notation as [listdiff.Change.String] with
// the record encoded as flow style YAML.
func writeText(w io.Writer, old []records.Record, changes []listdiff.Change[records.Record], details bool, p palette) error {
	var src []int
	if details {
		var err error
		src, err = listdiff.Sources(len(old), changes)
		if err != nil {
			return err
		}
	}
	for _, c := range changes {
		item, err := yaml.MarshalWithOptions(c.Item, yaml.Flow(true))
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		text := strings.TrimSpace(string(item))

		var line string
		switch c.Op {
		case listdiff.Delete:
			line = p.del.Sprintf("-%d %s", c.From, text)
		case listdiff.Insert:
			line = p.ins.Sprintf("+%d %s", c.To, text)
		case listdiff.Update:
			line = p.upd.Sprintf("!%d %s", c.To, text)
		case listdiff.Move:
			line = p.move.Sprintf("%d>%d %s", c.From, c.To, text)
		default:
			panic("never reached")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if details && c.Op == listdiff.Update {
			d, err := records.Detail(old[src[c.To]], c.Item, records.Marker{
				Delete: func(s string) string { return p.del.Sprint("[-" + s + "-]") },
				Insert: func(s string) string { return p.ins.Sprint("{+" + s + "+}") },
			})
			if err != nil {
				return err
			}
			for l := range strings.Lines(d) {
				if _, err := fmt.Fprintf(w, "    %s", l); err != nil {
					return err
				}
			}
			if !strings.HasSuffix(d, "\n") {
				fmt.Fprintln(w)
			}
		}
	}
	return nil
}
