package graph

import (
	"context"
	"fmt"

	"github.com/dusk-indust/waypoints/internal/waypoint"
)

// StoreSink adapts a Store to waypoint.NodeSink so that a build populates
// the scene graph directly.
type StoreSink struct {
	store Store
}

var _ waypoint.NodeSink = (*StoreSink)(nil)

// NewStoreSink returns a sink writing into store.
func NewStoreSink(store Store) *StoreSink {
	return &StoreSink{store: store}
}

// Create stores the waypoint.
func (s *StoreSink) Create(ctx context.Context, node waypoint.Node) error {
	return s.store.AddWaypoint(ctx, node)
}

// SetNeighbors records the declared neighbor list and adds one LINKS edge per
// distinct neighbor that exists in the store. Unknown neighbors, repeats and
// self-references stay in the declared list only.
func (s *StoreSink) SetNeighbors(ctx context.Context, node waypoint.Node, neighbors []string) error {
	if err := s.store.SetNeighbors(ctx, node.ID, neighbors); err != nil {
		return err
	}
	linked := make(map[string]bool, len(neighbors))
	for _, nb := range neighbors {
		if nb == node.ID || linked[nb] {
			continue
		}
		linked[nb] = true
		target, err := s.store.GetWaypoint(ctx, nb)
		if err != nil {
			return fmt.Errorf("lookup neighbor %q: %w", nb, err)
		}
		if target == nil {
			continue
		}
		edge := Edge{SourceID: node.ID, TargetID: nb, Kind: EdgeKindLinks}
		if err := s.store.AddEdge(ctx, edge); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", node.ID, nb, err)
		}
	}
	return nil
}
