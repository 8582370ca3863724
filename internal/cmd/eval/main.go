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

// eval provides a way to validate the comparison algorithm by applying the resulting change
// scripts to randomly generated lists and checking that they produce the new list again.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"znkr.io/listdiff"
)

type config struct {
	cases    int
	size     int
	dups     float64
	seed     uint64
	parallel int
	stats    string
	validate bool
	out      io.Writer // progress output, nil disables the progress bar
}

func main() {
	cfg := config{out: os.Stdout}
	flag.IntVar(&cfg.cases, "cases", 10000, "number of random cases to evaluate")
	flag.IntVar(&cfg.size, "size", 1000, "maximum number of elements per list")
	flag.Float64Var(&cfg.dups, "dups", 0.01, "probability that an element has a duplicate key")
	flag.Uint64Var(&cfg.seed, "seed", 1, "seed for the random number generator")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	logger, err := zap.NewProduction(zap.AddStacktrace(zapcore.PanicLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, &cfg, logger); err != nil {
		logger.Error("evaluation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type variant struct {
	name string
	opts []listdiff.Option
	// If set, only keys are compared during validation.
	keysOnly bool
}

var variants = []variant{
	{name: "default"},
	{name: "no-moves", opts: []listdiff.Option{listdiff.DisableMoves()}},
	{name: "no-updates", opts: []listdiff.Option{listdiff.DisableUpdates()}, keysOnly: true},
}

type result struct {
	id       int
	variant  string
	N, M     int
	changes  int
	moves    int
	duration time.Duration
}

func run(ctx context.Context, cfg *config, logger *zap.Logger) error {
	if cfg.cases < 0 || cfg.size < 1 || cfg.parallel < 1 || cfg.dups < 0 || cfg.dups > 1 {
		return fmt.Errorf("invalid configuration: cases=%d size=%d parallel=%d dups=%g", cfg.cases, cfg.size, cfg.parallel, cfg.dups)
	}

	start := time.Now()
	done := make(chan struct{})
	var processed, failures atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	logger.Info("evaluation started",
		zap.Int("cases", cfg.cases),
		zap.Int("size", cfg.size),
		zap.Float64("dups", cfg.dups),
		zap.Uint64("seed", cfg.seed),
		zap.Int("parallel", cfg.parallel),
	)

	var results chan result
	if stats != nil {
		results = make(chan result)
	}

	// Process cases.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallel)
	go func() {
		defer close(done)
		for id := range cfg.cases {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				old, new := generate(newRand(cfg.seed, id), cfg.size, cfg.dups)
				for _, v := range variants {
					start := time.Now()
					changes := listdiff.ChangesKey(old, new, key, v.opts...)
					duration := time.Since(start)

					if results != nil {
						moves := 0
						for _, c := range changes {
							if c.Op == listdiff.Move {
								moves++
							}
						}
						select {
						case results <- result{id, v.name, len(old), len(new), len(changes), moves, duration}:
						case <-gctx.Done():
							return gctx.Err()
						}
					}

					if cfg.validate {
						if err := validate(old, new, changes, v.keysOnly); err != nil {
							failures.Add(1)
							logger.Error("validation failed",
								zap.Int("case", id),
								zap.String("variant", v.name),
								zap.Error(err),
							)
						}
					}
				}
				processed.Add(1)
				return nil
			})
		}
	}()

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		processed := processed.Load()
		progress := 1.0
		if cfg.cases > 0 {
			progress = float64(processed) / float64(cfg.cases)
		}
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var procPerSec int
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Fprintf(cfg.out, "\r[%-*s] % 3.1f%% (%d evals/s, %d failures) ", width, bar, 100*progress, procPerSec, failures.Load())
	}
	progressDone := make(chan struct{})
	if cfg.out != nil {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			ticker := time.NewTicker(200 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					render()

				case <-progressDone:
					render()
					fmt.Fprintf(cfg.out, "\n")
					return
				}
			}
		}()
	}
	var statsErr error
	if results != nil {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			statsErr = writeStats(stats, results)
		}()
	}

	// Shutdown
	<-done
	err := g.Wait()
	close(progressDone)
	if results != nil {
		close(results)
	}
	ioWG.Wait()

	if err != nil {
		return err
	}
	if statsErr != nil {
		return fmt.Errorf("writing stats: %v", statsErr)
	}
	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d validation failures", n)
	}
	logger.Info("evaluation finished",
		zap.Int64("processed", processed.Load()),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func writeStats(f *os.File, results <-chan result) error {
	w := bufio.NewWriter(f)
	var err error
	write := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	write("case,variant,N,M,changes,moves,duration_ns\n")
	for r := range results {
		write("%d,%s,%d,%d,%d,%d,%d\n", r.id, r.variant, r.N, r.M, r.changes, r.moves, r.duration.Nanoseconds())
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// validate checks that applying changes to old results in new.
func validate(old, new []item, changes []listdiff.Change[item], keysOnly bool) error {
	got, err := listdiff.Apply(old, changes)
	if err != nil {
		return fmt.Errorf("applying changes: %w", err)
	}
	if len(got) != len(new) {
		return fmt.Errorf("length is different after applying changes: got %d, want %d", len(got), len(new))
	}
	for i := range got {
		if got[i].ID != new[i].ID || !keysOnly && got[i] != new[i] {
			return fmt.Errorf("element %d is different after applying changes: got %v, want %v", i, got[i], new[i])
		}
	}
	return nil
}
