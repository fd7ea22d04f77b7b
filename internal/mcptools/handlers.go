package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/loader"
	"github.com/dusk-indust/waypoints/internal/waypoint"
)

// PersistFunc copies a freshly loaded store somewhere durable.
type PersistFunc func(ctx context.Context, store graph.Store) error

// WaypointService holds the current scene graph used by MCP tool handlers.
// Each load_waypoints call replaces the graph with a new MemStore.
type WaypointService struct {
	mu      sync.RWMutex
	store   graph.Store
	reader  loader.Reader
	opts    waypoint.Options
	persist PersistFunc
	log     *slog.Logger

	// loadMu serializes the swap and persist of each load so the persisted
	// graph is always the one being served.
	loadMu sync.Mutex
}

// NewWaypointService creates a service with an empty graph. A nil reader
// reads from the local filesystem.
func NewWaypointService(reader loader.Reader, opts waypoint.Options) *WaypointService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &WaypointService{
		store:  graph.NewMemStore(),
		reader: reader,
		opts:   opts,
		log:    logger,
	}
}

// SetPersist installs a hook run after every successful load. Persist
// failures are logged, not returned.
func (s *WaypointService) SetPersist(fn PersistFunc) {
	s.persist = fn
}

// Store returns the current graph.
func (s *WaypointService) Store() graph.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// LoadWaypoints parses CSV text or a file and replaces the current graph.
func (s *WaypointService) LoadWaypoints(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadWaypointsInput,
) (*mcp.CallToolResult, LoadWaypointsOutput, error) {
	if (input.CSV == "") == (input.Path == "") {
		return nil, LoadWaypointsOutput{}, fmt.Errorf("exactly one of csv or path is required")
	}

	opts := s.opts
	opts.AllowDangling = opts.AllowDangling || input.AllowDangling
	l := loader.New(s.reader, opts)

	store := graph.NewMemStore()
	sink := graph.NewStoreSink(store)

	var (
		res *waypoint.Result
		err error
	)
	if input.Path != "" {
		res, err = l.Load(ctx, loader.Selection{input.Path}, sink)
	} else {
		res, err = l.LoadText(ctx, input.CSV, sink)
	}
	if err != nil {
		return nil, LoadWaypointsOutput{}, fmt.Errorf("load waypoints: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, LoadWaypointsOutput{}, fmt.Errorf("stats: %w", err)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	old := s.store
	s.store = store
	s.mu.Unlock()
	_ = old.Close()

	if s.persist != nil {
		if err := s.persist(ctx, store); err != nil {
			s.log.Warn("failed to persist graph", "error", err)
		}
	}

	dangling := res.Dangling
	if dangling == nil {
		dangling = []waypoint.DanglingRef{}
	}
	return nil, LoadWaypointsOutput{Stats: *stats, Dangling: dangling}, nil
}

// GetWaypoint returns one waypoint by id.
func (s *WaypointService) GetWaypoint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetWaypointInput,
) (*mcp.CallToolResult, GetWaypointOutput, error) {
	if input.ID == "" {
		return nil, GetWaypointOutput{}, fmt.Errorf("id is required")
	}
	w, err := s.Store().GetWaypoint(ctx, input.ID)
	if err != nil {
		return nil, GetWaypointOutput{}, fmt.Errorf("get waypoint: %w", err)
	}
	return nil, GetWaypointOutput{Found: w != nil, Waypoint: w}, nil
}

// QueryWaypoints searches waypoints by id or description substring.
func (s *WaypointService) QueryWaypoints(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryWaypointsInput,
) (*mcp.CallToolResult, QueryWaypointsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	found, err := s.Store().QueryWaypoints(ctx, input.Query, limit)
	if err != nil {
		return nil, QueryWaypointsOutput{}, fmt.Errorf("query waypoints: %w", err)
	}
	if found == nil {
		found = []graph.WaypointNode{}
	}
	return nil, QueryWaypointsOutput{Waypoints: found, Total: len(found)}, nil
}

// FindRoute returns the shortest hop path between two waypoints.
func (s *WaypointService) FindRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindRouteInput,
) (*mcp.CallToolResult, FindRouteOutput, error) {
	if input.From == "" || input.To == "" {
		return nil, FindRouteOutput{}, fmt.Errorf("from and to are required")
	}
	route, err := graph.FindRoute(ctx, s.Store(), input.From, input.To)
	if err != nil {
		return nil, FindRouteOutput{}, fmt.Errorf("find route: %w", err)
	}
	if route == nil {
		return nil, FindRouteOutput{Route: []string{}}, nil
	}
	return nil, FindRouteOutput{Found: true, Route: route, Hops: len(route) - 1}, nil
}

// GetReachable returns every waypoint within MaxDepth hops of a waypoint,
// each with the shortest path leading to it.
func (s *WaypointService) GetReachable(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReachableInput,
) (*mcp.CallToolResult, GetReachableOutput, error) {
	if input.ID == "" {
		return nil, GetReachableOutput{}, fmt.Errorf("id is required")
	}
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	store := s.Store()
	w, err := store.GetWaypoint(ctx, input.ID)
	if err != nil {
		return nil, GetReachableOutput{}, fmt.Errorf("get waypoint: %w", err)
	}
	if w == nil {
		return nil, GetReachableOutput{}, fmt.Errorf("%w: %q", graph.ErrNotFound, input.ID)
	}

	chains, err := graph.Reachable(ctx, store, input.ID, maxDepth)
	if err != nil {
		return nil, GetReachableOutput{}, fmt.Errorf("reachable: %w", err)
	}
	if chains == nil {
		chains = []graph.Chain{}
	}
	return nil, GetReachableOutput{Chains: chains, Total: len(chains)}, nil
}

// GetComponents returns the connected components of the current graph.
func (s *WaypointService) GetComponents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetComponentsInput,
) (*mcp.CallToolResult, GetComponentsOutput, error) {
	comps, err := graph.ComputeComponents(ctx, s.Store())
	if err != nil {
		return nil, GetComponentsOutput{}, fmt.Errorf("compute components: %w", err)
	}
	if comps == nil {
		comps = []graph.Component{}
	}
	return nil, GetComponentsOutput{Components: comps}, nil
}

// GetStats returns waypoint and link counts.
func (s *WaypointService) GetStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatsInput,
) (*mcp.CallToolResult, GetStatsOutput, error) {
	stats, err := s.Store().Stats(ctx)
	if err != nil {
		return nil, GetStatsOutput{}, fmt.Errorf("stats: %w", err)
	}
	return nil, GetStatsOutput{Stats: *stats}, nil
}
