package main

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/waypoints/internal/csvrows"
	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/loader"
)

// checkResult is the outcome of validating one file.
type checkResult struct {
	Path       string
	Columns    []string
	Waypoints  int
	Links      int
	Components int
	Dangling   int
	Err        error
}

// runCheck validates each file independently and in parallel, then prints one
// line per file in argument order. It fails if any file is invalid.
func runCheck(ctx context.Context, e env, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("usage: waypoints check <file.csv>...")
	}

	results := make([]checkResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.CheckConcurrency)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = checkFile(gctx, e, path)
			// Per-file failures are reported, not propagated.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(e.stdout, "FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(e.stdout, "ok   %s: %d waypoints, %d links, %d components [%s]",
			r.Path, r.Waypoints, r.Links, r.Components, strings.Join(r.Columns, ","))
		if r.Dangling > 0 {
			fmt.Fprintf(e.stdout, ", %d dangling", r.Dangling)
		}
		fmt.Fprintln(e.stdout)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func checkFile(ctx context.Context, e env, path string) checkResult {
	r := checkResult{Path: path}

	store := graph.NewMemStore()
	l := loader.New(nil, e.buildOptions())
	_, text, err := l.Read(loader.Selection{path})
	if err != nil {
		r.Err = err
		return r
	}
	res, err := l.LoadText(ctx, text, graph.NewStoreSink(store))
	if err != nil {
		r.Err = err
		return r
	}
	r.Dangling = len(res.Dangling)

	if r.Columns, err = csvrows.Header(text); err != nil {
		r.Err = err
		return r
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		r.Err = err
		return r
	}
	r.Waypoints, r.Links = stats.WaypointCount, stats.EdgeCount

	comps, err := graph.ComputeComponents(ctx, store)
	if err != nil {
		r.Err = err
		return r
	}
	r.Components = len(comps)
	return r
}
