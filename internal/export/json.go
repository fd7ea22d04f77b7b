package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/waypoints/internal/graph"
)

// SceneExport is the top-level JSON export structure.
type SceneExport struct {
	ExportID   string               `json:"exportId"`
	Source     string               `json:"source,omitempty"`
	ExportedAt string               `json:"exportedAt"`
	Stats      graph.GraphStats     `json:"stats"`
	Waypoints  []graph.WaypointNode `json:"waypoints"`
	Links      []graph.Edge         `json:"links"`
	Components []graph.Component    `json:"components"`
}

// ExportScene snapshots the store into a SceneExport. source names where the
// waypoints came from and may be empty.
func ExportScene(ctx context.Context, store graph.Store, source string) (*SceneExport, error) {
	waypoints, err := store.ListWaypoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list waypoints: %w", err)
	}
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	components, err := graph.ComputeComponents(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("compute components: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	if waypoints == nil {
		waypoints = []graph.WaypointNode{}
	}
	if edges == nil {
		edges = []graph.Edge{}
	}
	if components == nil {
		components = []graph.Component{}
	}

	return &SceneExport{
		ExportID:   uuid.NewString(),
		Source:     source,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Stats:      *stats,
		Waypoints:  waypoints,
		Links:      edges,
		Components: components,
	}, nil
}
