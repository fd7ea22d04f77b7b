//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/mcptools"
)

// openGraph opens the persisted KuzuDB graph index at graphPath.
func openGraph(graphPath string) (graph.Store, error) {
	if _, err := os.Stat(graphPath); err != nil {
		return nil, fmt.Errorf("no graph found at %s\nRun 'waypoints import <file.csv>' first", graphPath)
	}
	store, err := graph.NewKuzuFileStore(graphPath)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	if err := store.InitSchema(context.Background()); err != nil {
		store.Close()
		return nil, fmt.Errorf("open graph: %w", err)
	}
	return store, nil
}

// persistFunc returns a hook that replaces the graph index at graphPath with
// the contents of a store.
func persistFunc(graphPath string) mcptools.PersistFunc {
	return func(ctx context.Context, src graph.Store) error {
		// Remove old graph to avoid stale data.
		if err := os.RemoveAll(graphPath); err != nil {
			return fmt.Errorf("remove old graph: %w", err)
		}

		dst, err := graph.NewKuzuFileStore(graphPath)
		if err != nil {
			return fmt.Errorf("open file store: %w", err)
		}
		defer dst.Close()

		if err := dst.InitSchema(ctx); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
		return graph.CopyStore(ctx, src, dst)
	}
}
