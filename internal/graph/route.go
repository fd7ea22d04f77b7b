package graph

import (
	"context"
	"fmt"
)

// adjacency builds an undirected adjacency list from LINKS edges. Neighbor
// order follows edge insertion order so traversals are deterministic.
func adjacency(ctx context.Context, store Store) (map[string][]string, error) {
	edges, err := store.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("get edges: %w", err)
	}
	adj := make(map[string][]string)
	seen := make(map[[2]string]bool)
	add := func(a, b string) {
		if seen[[2]string{a, b}] {
			return
		}
		seen[[2]string{a, b}] = true
		adj[a] = append(adj[a], b)
	}
	for _, e := range edges {
		if e.Kind != EdgeKindLinks {
			continue
		}
		add(e.SourceID, e.TargetID)
		add(e.TargetID, e.SourceID)
	}
	return adj, nil
}

// Reachable performs a BFS over links from id, up to maxDepth hops. It
// returns one Chain per reachable waypoint.
func Reachable(ctx context.Context, store Store, id string, maxDepth int) ([]Chain, error) {
	if maxDepth <= 0 {
		return nil, nil
	}
	adj, err := adjacency(ctx, store)
	if err != nil {
		return nil, err
	}

	// BFS state: each entry tracks the path from id to the current node.
	type bfsEntry struct {
		id   string
		path []string
	}

	visited := map[string]bool{id: true}
	queue := []bfsEntry{{id: id, path: []string{id}}}
	var chains []Chain

	for depth := 0; depth < maxDepth && len(queue) > 0; depth++ {
		var nextQueue []bfsEntry
		for _, entry := range queue {
			for _, nb := range adj[entry.id] {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				newPath := make([]string, len(entry.path), len(entry.path)+1)
				copy(newPath, entry.path)
				newPath = append(newPath, nb)
				chains = append(chains, Chain{Nodes: newPath, Depth: len(newPath) - 1})
				nextQueue = append(nextQueue, bfsEntry{id: nb, path: newPath})
			}
		}
		queue = nextQueue
	}
	return chains, nil
}

// FindRoute returns the shortest hop path from one waypoint to another, or
// nil if they are not connected. A route from a waypoint to itself is the
// single-element path.
func FindRoute(ctx context.Context, store Store, from, to string) ([]string, error) {
	for _, id := range []string{from, to} {
		w, err := store.GetWaypoint(ctx, id)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
	}
	if from == to {
		return []string{from}, nil
	}

	adj, err := adjacency(ctx, store)
	if err != nil {
		return nil, err
	}

	prev := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range adj[cur] {
			if _, ok := prev[nb]; ok {
				continue
			}
			prev[nb] = cur
			if nb == to {
				return walkBack(prev, from, to), nil
			}
			queue = append(queue, nb)
		}
	}
	return nil, nil
}

func walkBack(prev map[string]string, from, to string) []string {
	var rev []string
	for cur := to; cur != from; cur = prev[cur] {
		rev = append(rev, cur)
	}
	rev = append(rev, from)
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
