// Package waypoint builds a waypoint graph from parsed CSV rows and hands
// every node to a scene collaborator through the NodeSink interface.
package waypoint

import (
	"context"
	"errors"
	"fmt"
)

// DefaultModel is the model-asset reference attached to every created node
// unless the caller overrides it.
const DefaultModel = "#waypoint_model"

// Column names consumed by the builder. Other columns are ignored.
const (
	ColumnID          = "id"
	ColumnX           = "x"
	ColumnY           = "y"
	ColumnZ           = "z"
	ColumnDescription = "description"
	ColumnNeighbors   = "neighbors"
)

// RequiredColumns must be present in every row.
var RequiredColumns = []string{ColumnID, ColumnX, ColumnY, ColumnZ}

// Position holds the three coordinate components exactly as they appeared in
// the input. Interpretation is left to the scene collaborator.
type Position struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// String renders the position as space-separated components.
func (p Position) String() string {
	return p.X + " " + p.Y + " " + p.Z
}

// Node is one waypoint. Neighbors stays nil until the linking pass.
type Node struct {
	ID          string   `json:"id"`
	Position    Position `json:"position"`
	Description string   `json:"description"`
	Model       string   `json:"model"`
	Neighbors   []string `json:"neighbors,omitempty"`
}

// NodeSink receives created nodes and, after every node exists, their
// neighbor lists.
type NodeSink interface {
	Create(ctx context.Context, node Node) error
	SetNeighbors(ctx context.Context, node Node, neighbors []string) error
}

// --- Errors ---

var (
	ErrMissingColumn      = errors.New("waypoint: missing required column")
	ErrEmptyID            = errors.New("waypoint: empty id")
	ErrDuplicateID        = errors.New("waypoint: duplicate id")
	ErrUnresolvedNeighbor = errors.New("waypoint: unresolved neighbor")
)

// DuplicateIDError reports a second row declaring an id already in use.
type DuplicateIDError struct {
	ID  string
	Row int // 0-based row index of the duplicate
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("waypoint: row %d: duplicate id %q", e.Row, e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// UnresolvedNeighborError reports a neighbor reference with no matching node.
type UnresolvedNeighborError struct {
	NodeID   string
	Neighbor string
}

func (e *UnresolvedNeighborError) Error() string {
	return fmt.Sprintf("waypoint: %q references unknown neighbor %q", e.NodeID, e.Neighbor)
}

func (e *UnresolvedNeighborError) Is(target error) bool { return target == ErrUnresolvedNeighbor }

// DanglingRef is a neighbor reference forwarded unresolved when dangling
// references are allowed.
type DanglingRef struct {
	NodeID   string `json:"nodeId"`
	Neighbor string `json:"neighbor"`
}
