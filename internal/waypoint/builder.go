package waypoint

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dusk-indust/waypoints/internal/csvrows"
)

// Phase tracks which pass a Builder is in.
type Phase int

const (
	PhaseCreating Phase = iota
	PhaseLinking
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCreating:
		return "creating"
	case PhaseLinking:
		return "linking"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Options controls a Build.
type Options struct {
	// Model is the asset reference set on each node. Empty means DefaultModel.
	Model string

	// AllowDangling forwards neighbor ids that match no node instead of
	// failing with ErrUnresolvedNeighbor.
	AllowDangling bool

	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result is what a successful Build produced.
type Result struct {
	Nodes    []Node        `json:"nodes"`
	Dangling []DanglingRef `json:"dangling,omitempty"`
}

// Builder runs the two-pass construction. A Builder is single use.
type Builder struct {
	opts  Options
	log   *slog.Logger
	phase Phase
	used  bool
	index map[string]*Node
	order []string
}

// NewBuilder returns a Builder in PhaseCreating.
func NewBuilder(opts Options) *Builder {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		opts:  opts,
		log:   logger,
		phase: PhaseCreating,
		index: make(map[string]*Node),
	}
}

// Phase reports the builder's current pass.
func (b *Builder) Phase() Phase { return b.phase }

// Build is shorthand for NewBuilder(opts).Build(ctx, rows, sink).
func Build(ctx context.Context, rows []csvrows.Row, sink NodeSink, opts Options) (*Result, error) {
	return NewBuilder(opts).Build(ctx, rows, sink)
}

// Build creates one node per row, then attaches neighbor lists. Every
// sink.Create call happens before the first sink.SetNeighbors call, so a
// row may reference neighbors declared after it.
func (b *Builder) Build(ctx context.Context, rows []csvrows.Row, sink NodeSink) (*Result, error) {
	if b.used {
		return nil, fmt.Errorf("waypoint: builder already used (phase %s)", b.phase)
	}
	b.used = true
	if len(rows) > 0 {
		for _, col := range RequiredColumns {
			if _, ok := rows[0][col]; !ok {
				return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
			}
		}
	}

	// Pass 1: create.
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := nodeFromRow(row, b.opts.Model)
		if node.ID == "" {
			return nil, fmt.Errorf("%w: row %d", ErrEmptyID, i)
		}
		if _, exists := b.index[node.ID]; exists {
			return nil, &DuplicateIDError{ID: node.ID, Row: i}
		}
		if err := sink.Create(ctx, node); err != nil {
			return nil, fmt.Errorf("create %q: %w", node.ID, err)
		}
		b.index[node.ID] = &node
		b.order = append(b.order, node.ID)
	}
	b.log.Debug("waypoints created", "count", len(b.order))

	b.phase = PhaseLinking

	// Resolve every list before the first SetNeighbors so a bad reference
	// leaves no node half-linked.
	lists := make([][]string, len(rows))
	var dangling []DanglingRef
	for i, row := range rows {
		id := b.order[i]
		lists[i] = ParseNeighbors(row[ColumnNeighbors])
		for _, nb := range lists[i] {
			if _, ok := b.index[nb]; ok {
				continue
			}
			if !b.opts.AllowDangling {
				return nil, &UnresolvedNeighborError{NodeID: id, Neighbor: nb}
			}
			dangling = append(dangling, DanglingRef{NodeID: id, Neighbor: nb})
			b.log.Warn("forwarding unresolved neighbor", "waypoint", id, "neighbor", nb)
		}
	}

	// Pass 2: link.
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		node := b.index[b.order[i]]
		node.Neighbors = lists[i]
		if err := sink.SetNeighbors(ctx, *node, lists[i]); err != nil {
			return nil, fmt.Errorf("set neighbors of %q: %w", node.ID, err)
		}
	}
	b.phase = PhaseDone

	res := &Result{Nodes: make([]Node, 0, len(b.order)), Dangling: dangling}
	for _, id := range b.order {
		res.Nodes = append(res.Nodes, *b.index[id])
	}
	// The index only lives for one build.
	b.index = nil
	return res, nil
}

// ParseNeighbors normalizes ';' to ',' and splits the field on ','. Unlike a
// plain split, each token is trimmed and empty tokens are dropped, so "B,,C"
// and " B ; C " both yield [B C] and an empty field yields an empty list.
func ParseNeighbors(field string) []string {
	parts := strings.Split(strings.ReplaceAll(field, ";", ","), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nodeFromRow(row csvrows.Row, model string) Node {
	return Node{
		ID: row[ColumnID],
		Position: Position{
			X: row[ColumnX],
			Y: row[ColumnY],
			Z: row[ColumnZ],
		},
		Description: row[ColumnDescription],
		Model:       model,
	}
}
