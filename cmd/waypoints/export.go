package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dusk-indust/waypoints/internal/export"
)

func runExport(ctx context.Context, e env) error {
	graphPath := e.cfg.ResolveGraphPath(e.root)
	store, err := openGraph(graphPath)
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := export.ExportScene(ctx, store, graphPath)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	_, err = e.stdout.Write(append(out, '\n'))
	return err
}
