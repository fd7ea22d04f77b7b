package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned by write operations that target an unknown waypoint.
var ErrNotFound = errors.New("graph: waypoint not found")

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu        sync.RWMutex
	waypoints map[string]WaypointNode
	order     []string // insertion order of waypoint ids
	edges     []Edge
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{
		waypoints: make(map[string]WaypointNode),
	}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// AddWaypoint stores a waypoint keyed by its id. Re-adding an id replaces
// the stored node but keeps its original position in ListWaypoints.
func (m *MemStore) AddWaypoint(_ context.Context, node WaypointNode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.waypoints[node.ID]; !ok {
		m.order = append(m.order, node.ID)
	}
	node.Neighbors = cloneStrings(node.Neighbors)
	m.waypoints[node.ID] = node
	return nil
}

// SetNeighbors replaces the declared neighbor list of a waypoint.
func (m *MemStore) SetNeighbors(_ context.Context, id string, neighbors []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node, ok := m.waypoints[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	node.Neighbors = cloneStrings(neighbors)
	m.waypoints[id] = node
	return nil
}

// AddEdge appends an edge to the internal slice.
func (m *MemStore) AddEdge(_ context.Context, edge Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, edge)
	return nil
}

// GetWaypoint returns the waypoint with the given id, or nil if not found.
func (m *MemStore) GetWaypoint(_ context.Context, id string) (*WaypointNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.waypoints[id]
	if !ok {
		return nil, nil
	}
	w.Neighbors = cloneStrings(w.Neighbors)
	return &w, nil
}

// QueryWaypoints returns waypoints whose id or description contains query
// (case-insensitive), in insertion order, up to limit results. A limit <= 0
// returns all matches.
func (m *MemStore) QueryWaypoints(_ context.Context, query string, limit int) ([]WaypointNode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lowerQuery := strings.ToLower(query)
	var results []WaypointNode
	for _, id := range m.order {
		w := m.waypoints[id]
		if strings.Contains(strings.ToLower(w.ID), lowerQuery) ||
			strings.Contains(strings.ToLower(w.Description), lowerQuery) {
			w.Neighbors = cloneStrings(w.Neighbors)
			results = append(results, w)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// ListWaypoints returns every waypoint in insertion order.
func (m *MemStore) ListWaypoints(ctx context.Context) ([]WaypointNode, error) {
	return m.QueryWaypoints(ctx, "", 0)
}

// GetNeighbors returns the declared neighbor ids of a waypoint.
func (m *MemStore) GetNeighbors(_ context.Context, id string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.waypoints[id]
	if !ok {
		return nil, nil
	}
	return cloneStrings(w.Neighbors), nil
}

// GetAllEdges returns a copy of all edges in the store.
func (m *MemStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out, nil
}

// Stats returns counts of waypoints and edges.
func (m *MemStore) Stats(_ context.Context) (*GraphStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &GraphStats{
		WaypointCount: len(m.waypoints),
		EdgeCount:     len(m.edges),
	}, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	copy(out, ss)
	return out
}
