// diff is a small CLI to manually run and compare the diffing implementations used for
// benchmarking.
//
// Usage:
//
//	diff [-lib name] x y
//	diff -compare [-txtar file | x y]
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/tools/txtar"
	"znkr.io/listdiff/internal/benchmarks"
)

type config struct {
	lib     string
	compare bool
	x, y    string
	txtar   string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.lib, "lib", "listdiff", "library to use for diffing, see benchmarks.Impls")
	flag.BoolVar(&cfg.compare, "compare", false, "run all libraries and print the number of edits and the runtime")
	flag.StringVar(&cfg.txtar, "txtar", "", "use testdata txtar file instead of two input files")
	flag.Parse()

	switch {
	case cfg.txtar != "" && flag.NArg() != 0:
		fmt.Fprintf(os.Stderr, "error: usage: diff -txtar <file>\n")
		os.Exit(1)
	case cfg.txtar == "" && flag.NArg() != 2:
		fmt.Fprintf(os.Stderr, "error: usage: diff <x> <y>\n")
		os.Exit(1)
	case cfg.txtar == "":
		cfg.x, cfg.y = flag.Arg(0), flag.Arg(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	x, y, err := readInputs(cfg)
	if err != nil {
		return err
	}

	if cfg.compare {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "lib\tedits\ttime")
		for _, lib := range benchmarks.Impls {
			start := time.Now()
			out := lib.Diff(x, y)
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%s\t%d\t%v\n", lib.Name, benchmarks.CountEdits(out), elapsed)
		}
		return w.Flush()
	}

	for _, lib := range benchmarks.Impls {
		if lib.Name == cfg.lib {
			_, err := os.Stdout.Write(lib.Diff(x, y))
			return err
		}
	}
	return fmt.Errorf("lib not found %q", cfg.lib)
}

func readInputs(cfg config) (x, y []byte, err error) {
	if cfg.txtar == "" {
		if x, err = os.ReadFile(cfg.x); err != nil {
			return nil, nil, err
		}
		if y, err = os.ReadFile(cfg.y); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range ar.Files {
		switch f.Name {
		case "x":
			x = f.Data
		case "y":
			y = f.Data
		}
	}
	return x, y, nil
}
