package graph

import "github.com/dusk-indust/waypoints/internal/waypoint"

// --- Enums ---

// EdgeKind classifies relationships between waypoints.
type EdgeKind string

const (
	// EdgeKindLinks connects a waypoint to one of its declared neighbors.
	EdgeKindLinks EdgeKind = "LINKS"
)

// --- Models ---

// WaypointNode is a waypoint as stored in the scene graph.
type WaypointNode = waypoint.Node

// Edge represents a directed link from a waypoint to a declared neighbor.
type Edge struct {
	SourceID string   `json:"sourceId"`
	TargetID string   `json:"targetId"`
	Kind     EdgeKind `json:"kind"`
}

// Component is a set of waypoints connected by links, ignoring direction.
type Component struct {
	Name      string   `json:"name"`
	Members   []string `json:"members"` // waypoint ids, sorted
	LinkCount int      `json:"linkCount"`
}

// GraphStats summarizes a waypoint graph.
type GraphStats struct {
	WaypointCount int `json:"waypointCount"`
	EdgeCount     int `json:"edgeCount"`
}

// Chain is an ordered path of waypoint ids starting at the query origin.
type Chain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}
