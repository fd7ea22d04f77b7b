package graph

import (
	"context"
	"fmt"
	"sort"
)

// ComputeComponents finds connected components of the waypoint graph,
// treating LINKS edges as undirected.
//
// Algorithm:
//  1. Build an undirected adjacency list from LINKS edges.
//  2. BFS from each unvisited waypoint in insertion order.
//  3. Name each component after its first-declared member and count the
//     distinct undirected links inside it.
//
// Isolated waypoints form single-member components.
func ComputeComponents(ctx context.Context, store Store) ([]Component, error) {
	waypoints, err := store.ListWaypoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list waypoints: %w", err)
	}
	adj, err := adjacency(ctx, store)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool, len(waypoints))
	var components []Component
	for _, w := range waypoints {
		if visited[w.ID] {
			continue
		}
		members := bfsComponent(w.ID, adj, visited)
		sort.Strings(members)
		components = append(components, Component{
			Name:      w.ID,
			Members:   members,
			LinkCount: countLinks(members, adj),
		})
	}
	return components, nil
}

// bfsComponent performs BFS from start on the adjacency list and returns
// all reachable nodes. It marks visited nodes as it goes.
func bfsComponent(start string, adj map[string][]string, visited map[string]bool) []string {
	var component []string
	queue := []string{start}
	visited[start] = true

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		component = append(component, node)
		for _, neighbor := range adj[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return component
}

// countLinks counts each undirected link once (when a < b).
func countLinks(members []string, adj map[string][]string) int {
	n := 0
	for _, m := range members {
		for _, nb := range adj[m] {
			if m < nb {
				n++
			}
		}
	}
	return n
}
