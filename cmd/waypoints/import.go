package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/loader"
)

// runImport loads one CSV file into the scene graph, prints a summary, and
// persists the graph index unless --no-persist is set. Builds without cgo
// skip persisting with a warning.
func runImport(ctx context.Context, e env, args []string) error {
	store := graph.NewMemStore()
	l := loader.New(nil, e.buildOptions())

	res, err := l.Load(ctx, loader.Selection(args), graph.NewStoreSink(store))
	if err != nil {
		return err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Imported %d waypoints, %d links\n", stats.WaypointCount, stats.EdgeCount)
	for _, d := range res.Dangling {
		fmt.Fprintf(e.stdout, "  dangling: %s -> %s\n", d.NodeID, d.Neighbor)
	}

	if e.flags.NoPersist {
		return nil
	}
	graphPath := e.cfg.ResolveGraphPath(e.root)
	persist := persistFunc(graphPath)
	if persist == nil {
		e.log.Warn("graph index not written: built without cgo", "path", graphPath)
		return nil
	}
	if err := persist(ctx, store); err != nil {
		return fmt.Errorf("persist graph: %w", err)
	}
	fmt.Fprintf(e.stdout, "Graph written to %s\n", graphPath)
	return nil
}
