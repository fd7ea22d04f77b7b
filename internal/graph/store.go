package graph

import (
	"context"
	"io"
)

// Store is the interface for the waypoint scene graph backend.
// Implementations: KuzuStore (persistent), MemStore (imports and tests).
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	AddWaypoint(ctx context.Context, node WaypointNode) error
	SetNeighbors(ctx context.Context, id string, neighbors []string) error
	AddEdge(ctx context.Context, edge Edge) error

	// Read operations. GetWaypoint returns nil, nil when id is unknown.
	GetWaypoint(ctx context.Context, id string) (*WaypointNode, error)
	QueryWaypoints(ctx context.Context, query string, limit int) ([]WaypointNode, error)
	ListWaypoints(ctx context.Context) ([]WaypointNode, error)
	GetNeighbors(ctx context.Context, id string) ([]string, error)
	GetAllEdges(ctx context.Context) ([]Edge, error)

	// Stats.
	Stats(ctx context.Context) (*GraphStats, error)
}
