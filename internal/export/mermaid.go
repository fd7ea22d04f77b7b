package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/dusk-indust/waypoints/internal/graph"
)

// GenerateMermaid produces a Mermaid "graph LR" diagram from a graph store.
// Waypoints become labelled nodes in insertion order; each link is drawn once
// regardless of how many endpoints declared it.
func GenerateMermaid(ctx context.Context, store graph.Store) (string, error) {
	waypoints, err := store.ListWaypoints(ctx)
	if err != nil {
		return "", fmt.Errorf("list waypoints: %w", err)
	}

	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return "", fmt.Errorf("get edges: %w", err)
	}

	// Build waypoint → ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string, len(waypoints))
	for i, w := range waypoints {
		nodeIDs[w.ID] = fmt.Sprintf("W%d", i)
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, w := range waypoints {
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", nodeIDs[w.ID], label(w)))
	}

	drawn := make(map[[2]string]bool)
	for _, e := range edges {
		if e.Kind != graph.EdgeKindLinks {
			continue
		}
		src, okS := nodeIDs[e.SourceID]
		tgt, okT := nodeIDs[e.TargetID]
		if !okS || !okT {
			continue
		}
		key := [2]string{src, tgt}
		if src > tgt {
			key = [2]string{tgt, src}
		}
		if drawn[key] {
			continue
		}
		drawn[key] = true
		sb.WriteString(fmt.Sprintf("  %s --- %s\n", src, tgt))
	}

	return sb.String(), nil
}

// label renders "id" or "id: description", escaping double quotes.
func label(w graph.WaypointNode) string {
	text := w.ID
	if w.Description != "" {
		text += ": " + w.Description
	}
	return strings.ReplaceAll(text, `"`, "#quot;")
}
