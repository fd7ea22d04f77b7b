package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/waypoints/internal/export"
)

func runDiagram(ctx context.Context, e env) error {
	store, err := openGraph(e.cfg.ResolveGraphPath(e.root))
	if err != nil {
		return err
	}
	defer store.Close()

	mermaid, err := export.GenerateMermaid(ctx, store)
	if err != nil {
		return err
	}

	fmt.Fprint(e.stdout, mermaid)
	return nil
}
