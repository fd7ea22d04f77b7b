package graph

import (
	"context"
	"fmt"
)

// CopyStore copies every waypoint and edge from src into dst. dst must have
// its schema initialized and must not already hold any of src's ids.
func CopyStore(ctx context.Context, src, dst Store) error {
	waypoints, err := src.ListWaypoints(ctx)
	if err != nil {
		return fmt.Errorf("list waypoints: %w", err)
	}
	for _, w := range waypoints {
		if err := dst.AddWaypoint(ctx, w); err != nil {
			return fmt.Errorf("add waypoint %s: %w", w.ID, err)
		}
	}

	edges, err := src.GetAllEdges(ctx)
	if err != nil {
		return fmt.Errorf("get edges: %w", err)
	}
	for _, e := range edges {
		if err := dst.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", e.SourceID, e.TargetID, err)
		}
	}
	return nil
}
