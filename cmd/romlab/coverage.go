// Copyright 2025 Zintix Labs
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
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zintix-labs/romlab"
	"github.com/zintix-labs/romlab/errs"
	"github.com/zintix-labs/romlab/sdk/perf"
	"github.com/zintix-labs/romlab/stats"
)

type coverageCmd struct {
	From      string `help:"First date YYYY-MM-DD (default: today)."`
	Days      int    `default:"365" help:"Number of consecutive days."`
	N         int    `default:"0" help:"Synthetic catalog size (default: loaded catalog size)."`
	K         int    `default:"0" help:"Picks per day (default: config k)."`
	Generator string `help:"PRNG: mulberry32 | pcg32 (default: config)."`
	Format    string `short:"o" enum:"table,json,yaml" default:"table" help:"Output format: table, json or yaml."`
	Progress  bool   `short:"p" help:"Show a progress bar on stderr."`
	Pprof     string `enum:"none,cpu,heap,allocs" default:"none" help:"Profile the sweep: none, cpu, heap or allocs."`
	PprofDir  string `type:"path" default:"build/profiling" help:"Directory for profile files."`
}

func (c *coverageCmd) Run(ctx context.Context, g *Globals) error {
	var opts []romlab.Option
	if c.Generator != "" {
		opts = append(opts, romlab.WithGenerator(c.Generator))
	}
	lab, _, err := g.open(ctx, nil, opts...)
	if err != nil {
		return err
	}
	from, err := dateOr(c.From, lab.Today())
	if err != nil {
		return err
	}
	render := stats.RenderByName(c.Format)
	if render == nil {
		return errs.InvalidArgf("unknown format %q", c.Format)
	}

	mode := c.Pprof
	if mode == "none" {
		mode = perf.ModeNone
	}
	var (
		rep  *stats.CoverageReport
		used time.Duration
	)
	path, err := perf.Run(c.PprofDir, mode, func() error {
		r, d, err := lab.CoverageWith(stats.SweepConfig{
			N:            c.N,
			K:            c.K,
			From:         from,
			Days:         c.Days,
			ShowProgress: c.Progress,
			Progress:     progressWriter(c.Progress),
		})
		rep, used = r, d
		return err
	})
	if err != nil {
		return err
	}
	if c.Format == "table" {
		fmt.Fprint(g.out, stats.FormatDuration(used, rep.Summary.Days))
	}
	if err := rep.WriteWith(g.out, render); err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "profile written to %s\n", path)
	}
	return nil
}

func progressWriter(show bool) io.Writer {
	if show {
		return os.Stderr
	}
	return io.Discard
}
