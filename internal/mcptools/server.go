package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewWaypointMCPServer creates an MCP server with all waypoint tools registered.
func NewWaypointMCPServer(svc *WaypointService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "waypoints",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_waypoints",
		Description: "Import waypoints from CSV text or a CSV file, replacing the current graph. Every waypoint is created before neighbor links are attached.",
	}, svc.LoadWaypoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_waypoint",
		Description: "Return one waypoint by id with its position, description, model asset, and declared neighbors.",
	}, svc.GetWaypoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_waypoints",
		Description: "Search waypoints whose id or description contains a substring.",
	}, svc.QueryWaypoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_route",
		Description: "Find the shortest path, counted in hops, between two waypoints along neighbor links.",
	}, svc.FindRoute)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_reachable",
		Description: "List waypoints within a number of hops of a waypoint, each with the shortest path to it.",
	}, svc.GetReachable)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_components",
		Description: "Return the groups of waypoints connected by links. Isolated waypoints form their own group.",
	}, svc.GetComponents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_stats",
		Description: "Return the number of waypoints and links in the current graph.",
	}, svc.GetStats)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts an HTTP server exposing the waypoint MCP tools.
func RunHTTP(ctx context.Context, svc *WaypointService, addr string) error {
	server := NewWaypointMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
