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

// listdiff compares two YAML or JSON documents containing lists of records and prints the changes
// between them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type Config struct {
	Key     string `cli:"name=key aliases=k desc='expression computing the key of a record' default=id"`
	Output  string `cli:"name=o aliases=output desc='output format: text, yaml, json, jsonpatch' default=text"`
	Color   bool   `cli:"name=color desc='color the output'"`
	Details bool   `cli:"name=details aliases=d desc='show character level changes of updated records'"`
	NoMoves bool   `cli:"name=no-moves desc='report moved records as deletion and insertion'"`
	Verify  bool   `cli:"name=verify desc='verify the changes by applying them to the old document'"`

	Command *cli.Command
}

func main() {
	cli.MainContext(context.Background(), Command())
}

// Command returns the listdiff command.
func Command() *cli.Command {
	cfg := &Config{
		Key:    "id",
		Output: "text",
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "listdiff").
		WithSynopsis("listdiff [opts] old new").
		WithDescription("listdiff compares two lists of records and prints the insertions, deletions, updates, and moves. Use - to read a document from stdin.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return listdiffMain(cfg, cc, args)
		})
}

func listdiffMain(cfg *Config, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected 2 documents, got %d", cli.ErrUsage, len(args))
	}
	if args[0] == "-" && args[1] == "-" {
		return fmt.Errorf("%w: only one document can be read from stdin", cli.ErrUsage)
	}
	oldData, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	newData, err := readInput(cc, args[1])
	if err != nil {
		return err
	}
	return diffDocs(cfg, cc.Out, oldData, newData, cfg.colorize(cc.Out))
}

func readInput(cc *cli.Context, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(name)
}

// colorize reports whether to use colors. Unless -color is set explicitly, colors are used if w is
// a terminal.
func (cfg *Config) colorize(w io.Writer) bool {
	for _, opt := range cfg.Command.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return (*opt.Value).(bool)
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
