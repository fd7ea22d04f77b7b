package mcptools

import (
	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/waypoint"
)

// --- MCP Tool Input/Output Types ---
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// LoadWaypointsInput is the input for the load_waypoints MCP tool.
type LoadWaypointsInput struct {
	CSV           string `json:"csv,omitempty" jsonschema:"CSV text with header id,x,y,z,description,neighbors. Mutually exclusive with path"`
	Path          string `json:"path,omitempty" jsonschema:"path to a CSV file to read. Mutually exclusive with csv"`
	AllowDangling bool   `json:"allowDangling,omitempty" jsonschema:"forward neighbor ids that match no waypoint instead of failing"`
}

// LoadWaypointsOutput is the result of the load_waypoints MCP tool.
type LoadWaypointsOutput struct {
	Stats    graph.GraphStats       `json:"stats"`
	Dangling []waypoint.DanglingRef `json:"dangling"`
}

// GetWaypointInput is the input for the get_waypoint MCP tool.
type GetWaypointInput struct {
	ID string `json:"id" jsonschema:"waypoint id"`
}

// GetWaypointOutput is the result of the get_waypoint MCP tool.
type GetWaypointOutput struct {
	Found    bool                `json:"found"`
	Waypoint *graph.WaypointNode `json:"waypoint,omitempty"`
}

// QueryWaypointsInput is the input for the query_waypoints MCP tool.
type QueryWaypointsInput struct {
	Query string `json:"query" jsonschema:"substring matched against waypoint id and description, case-insensitive"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryWaypointsOutput is the result of the query_waypoints MCP tool.
type QueryWaypointsOutput struct {
	Waypoints []graph.WaypointNode `json:"waypoints"`
	Total     int                  `json:"total"`
}

// FindRouteInput is the input for the find_route MCP tool.
type FindRouteInput struct {
	From string `json:"from" jsonschema:"starting waypoint id"`
	To   string `json:"to" jsonschema:"destination waypoint id"`
}

// FindRouteOutput is the result of the find_route MCP tool.
type FindRouteOutput struct {
	Found bool     `json:"found"`
	Route []string `json:"route"`
	Hops  int      `json:"hops"`
}

// GetReachableInput is the input for the get_reachable MCP tool.
type GetReachableInput struct {
	ID       string `json:"id" jsonschema:"waypoint id to start from"`
	MaxDepth int    `json:"maxDepth,omitempty" jsonschema:"maximum number of hops (default: 3)"`
}

// GetReachableOutput is the result of the get_reachable MCP tool.
type GetReachableOutput struct {
	Chains []graph.Chain `json:"chains"`
	Total  int           `json:"total"`
}

// GetComponentsInput is the input for the get_components MCP tool.
type GetComponentsInput struct{}

// GetComponentsOutput is the result of the get_components MCP tool.
type GetComponentsOutput struct {
	Components []graph.Component `json:"components"`
}

// GetStatsInput is the input for the get_stats MCP tool.
type GetStatsInput struct{}

// GetStatsOutput is the result of the get_stats MCP tool.
type GetStatsOutput struct {
	Stats graph.GraphStats `json:"stats"`
}
