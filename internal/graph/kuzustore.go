//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
	seq  int64 // next insertion sequence number
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the directory itself for new databases.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	// Ensure parent directory exists (KuzuDB creates the leaf directory).
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Waypoint(
		id STRING,
		seq INT64,
		x STRING,
		y STRING,
		z STRING,
		description STRING,
		model STRING,
		neighbors STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS LINKS(FROM Waypoint TO Waypoint)`,
}

// InitSchema creates the tables if they do not exist and resumes the
// insertion sequence of an existing database.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	n, err := s.countWaypoints()
	if err != nil {
		return err
	}
	s.seq = int64(n)
	return nil
}

// ---------- Write operations ----------

// AddWaypoint inserts a Waypoint node. Inserting an existing id fails with
// a primary key violation.
func (s *KuzuStore) AddWaypoint(_ context.Context, node WaypointNode) error {
	err := s.exec(
		`CREATE (w:Waypoint {
			id: $id,
			seq: $seq,
			x: $x,
			y: $y,
			z: $z,
			description: $desc,
			model: $model,
			neighbors: $nb
		})`,
		map[string]any{
			"id":    node.ID,
			"seq":   s.seq,
			"x":     node.Position.X,
			"y":     node.Position.Y,
			"z":     node.Position.Z,
			"desc":  node.Description,
			"model": node.Model,
			"nb":    joinNeighbors(node.Neighbors),
		},
	)
	if err != nil {
		return err
	}
	s.seq++
	return nil
}

// SetNeighbors replaces the declared neighbor list of a waypoint.
func (s *KuzuStore) SetNeighbors(_ context.Context, id string, neighbors []string) error {
	rows, err := s.query(
		"MATCH (w:Waypoint {id: $id}) SET w.neighbors = $nb RETURN w.id",
		map[string]any{"id": id, "nb": joinNeighbors(neighbors)},
	)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

// AddEdge inserts a LINKS relationship. Edges whose endpoints do not exist
// match nothing and are not created.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	if edge.Kind != EdgeKindLinks {
		return fmt.Errorf("kuzu: unsupported edge kind: %s", edge.Kind)
	}
	return s.exec(
		`MATCH (a:Waypoint {id: $src}), (b:Waypoint {id: $dst})
		 CREATE (a)-[:LINKS]->(b)`,
		map[string]any{"src": edge.SourceID, "dst": edge.TargetID},
	)
}

// ---------- Read operations ----------

const waypointColumns = "w.id, w.x, w.y, w.z, w.description, w.model, w.neighbors"

// GetWaypoint retrieves a single Waypoint by id, or returns nil if not found.
func (s *KuzuStore) GetWaypoint(_ context.Context, id string) (*WaypointNode, error) {
	rows, err := s.query(
		"MATCH (w:Waypoint {id: $id}) RETURN "+waypointColumns,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	w := rowToWaypoint(rows[0])
	return &w, nil
}

// QueryWaypoints returns waypoints whose id or description contains the
// query string (case-insensitive), in insertion order. A limit <= 0 returns
// all matches.
func (s *KuzuStore) QueryWaypoints(_ context.Context, queryStr string, limit int) ([]WaypointNode, error) {
	cypher := `MATCH (w:Waypoint)
		WHERE lower(w.id) CONTAINS lower($q) OR lower(w.description) CONTAINS lower($q)
		RETURN ` + waypointColumns + `
		ORDER BY w.seq`
	params := map[string]any{"q": queryStr}
	if limit > 0 {
		cypher += " LIMIT $lim"
		params["lim"] = int64(limit)
	}
	rows, err := s.query(cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]WaypointNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToWaypoint(r))
	}
	return out, nil
}

// ListWaypoints returns every waypoint in insertion order.
func (s *KuzuStore) ListWaypoints(_ context.Context) ([]WaypointNode, error) {
	rows, err := s.query("MATCH (w:Waypoint) RETURN "+waypointColumns+" ORDER BY w.seq", nil)
	if err != nil {
		return nil, err
	}
	out := make([]WaypointNode, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowToWaypoint(r))
	}
	return out, nil
}

// GetNeighbors returns the declared neighbor ids of a waypoint.
func (s *KuzuStore) GetNeighbors(ctx context.Context, id string) ([]string, error) {
	w, err := s.GetWaypoint(ctx, id)
	if err != nil || w == nil {
		return nil, err
	}
	return w.Neighbors, nil
}

// GetAllEdges returns all LINKS edges in insertion order of their sources.
func (s *KuzuStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	rows, err := s.query(
		"MATCH (a:Waypoint)-[:LINKS]->(b:Waypoint) RETURN a.id, b.id ORDER BY a.seq, b.seq",
		nil,
	)
	if err != nil {
		return nil, err
	}
	edges := make([]Edge, 0, len(rows))
	for _, r := range rows {
		edges = append(edges, Edge{
			SourceID: toString(r[0]),
			TargetID: toString(r[1]),
			Kind:     EdgeKindLinks,
		})
	}
	return edges, nil
}

// ---------- Stats ----------

// Stats returns counts of waypoints and links.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	waypoints, err := s.countWaypoints()
	if err != nil {
		return nil, err
	}
	rows, err := s.query("MATCH ()-[r:LINKS]->() RETURN count(r)", nil)
	if err != nil {
		return nil, err
	}
	edges := 0
	if len(rows) > 0 && len(rows[0]) > 0 {
		edges = toInt(rows[0][0])
	}
	return &GraphStats{WaypointCount: waypoints, EdgeCount: edges}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func (s *KuzuStore) countWaypoints() (int, error) {
	rows, err := s.query("MATCH (w:Waypoint) RETURN count(w)", nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// rowToWaypoint converts a result row in waypointColumns order.
func rowToWaypoint(r []any) WaypointNode {
	var w WaypointNode
	w.ID = toString(r[0])
	w.Position.X = toString(r[1])
	w.Position.Y = toString(r[2])
	w.Position.Z = toString(r[3])
	w.Description = toString(r[4])
	w.Model = toString(r[5])
	w.Neighbors = splitNeighbors(toString(r[6]))
	return w
}

// Neighbor lists are stored comma-joined; ids never contain commas because
// the CSV format splits on them.
func joinNeighbors(nbs []string) string {
	return strings.Join(nbs, ",")
}

func splitNeighbors(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
