package waypoint

import (
	"context"
	"errors"
	"testing"

	"github.com/dusk-indust/waypoints/internal/csvrows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures sink calls in order.
type recordingSink struct {
	calls     []string // "create:ID" or "link:ID"
	created   map[string]Node
	neighbors map[string][]string
	failOn    string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		created:   make(map[string]Node),
		neighbors: make(map[string][]string),
	}
}

func (s *recordingSink) Create(_ context.Context, node Node) error {
	if node.ID == s.failOn {
		return errors.New("sink refused")
	}
	s.calls = append(s.calls, "create:"+node.ID)
	s.created[node.ID] = node
	return nil
}

func (s *recordingSink) SetNeighbors(_ context.Context, node Node, neighbors []string) error {
	if _, ok := s.created[node.ID]; !ok {
		return errors.New("neighbor attached before node was created")
	}
	for _, nb := range neighbors {
		if _, ok := s.created[nb]; !ok {
			return errors.New("neighbor not yet created: " + nb)
		}
	}
	s.calls = append(s.calls, "link:"+node.ID)
	s.neighbors[node.ID] = neighbors
	return nil
}

func mustParse(t *testing.T, text string) []csvrows.Row {
	t.Helper()
	rows, err := csvrows.Parse(text)
	require.NoError(t, err)
	return rows
}

func TestBuild_TwoRowExample(t *testing.T) {
	rows := mustParse(t, "id,x,y,z,description,neighbors\nA,0,0,0,start,B\nB,1,0,0,,A")
	sink := newRecordingSink()

	res, err := Build(context.Background(), rows, sink, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"create:A", "create:B", "link:A", "link:B"}, sink.calls)

	a := sink.created["A"]
	assert.Equal(t, "start", a.Description)
	assert.Equal(t, Position{X: "0", Y: "0", Z: "0"}, a.Position)
	assert.Equal(t, DefaultModel, a.Model)
	assert.Nil(t, a.Neighbors, "node handed to Create has no neighbors yet")

	assert.Equal(t, "", sink.created["B"].Description)
	assert.Equal(t, []string{"B"}, sink.neighbors["A"])
	assert.Equal(t, []string{"A"}, sink.neighbors["B"])

	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "A", res.Nodes[0].ID)
	assert.Equal(t, []string{"B"}, res.Nodes[0].Neighbors)
	assert.Empty(t, res.Dangling)
}

func TestBuild_OrderIndependent(t *testing.T) {
	for _, text := range []string{
		"id,x,y,z,neighbors\nA,0,0,0,B\nB,1,1,1,A\n",
		"id,x,y,z,neighbors\nB,1,1,1,A\nA,0,0,0,B\n",
	} {
		sink := newRecordingSink()
		_, err := Build(context.Background(), mustParse(t, text), sink, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, sink.neighbors["A"])
		assert.Equal(t, []string{"A"}, sink.neighbors["B"])
		assert.Len(t, sink.calls, 4)
	}
}

func TestBuild_CreatesPrecedeLinks(t *testing.T) {
	rows := mustParse(t, "id,x,y,z,neighbors\nA,0,0,0,C\nB,0,0,0,A;C\nC,0,0,0,\n")
	sink := newRecordingSink()
	_, err := Build(context.Background(), rows, sink, Options{})
	require.NoError(t, err)

	lastCreate, firstLink := -1, len(sink.calls)
	for i, c := range sink.calls {
		if c[:6] == "create" {
			lastCreate = i
		} else if i < firstLink {
			firstLink = i
		}
	}
	assert.Less(t, lastCreate, firstLink)
	assert.Empty(t, sink.neighbors["C"])
}

func TestBuild_DelimiterNormalization(t *testing.T) {
	for _, field := range []string{"B;C", "B,C"} {
		t.Run(field, func(t *testing.T) {
			rows := []csvrows.Row{
				{"id": "A", "x": "0", "y": "0", "z": "0", "neighbors": field},
				{"id": "B", "x": "1", "y": "0", "z": "0", "neighbors": ""},
				{"id": "C", "x": "2", "y": "0", "z": "0", "neighbors": ""},
			}
			sink := newRecordingSink()
			_, err := Build(context.Background(), rows, sink, Options{})
			require.NoError(t, err)
			assert.Equal(t, []string{"B", "C"}, sink.neighbors["A"])
		})
	}
}

func TestBuild_CustomModel(t *testing.T) {
	rows := mustParse(t, "id,x,y,z\nA,1,2,3\n")
	sink := newRecordingSink()
	_, err := Build(context.Background(), rows, sink, Options{Model: "#beacon"})
	require.NoError(t, err)
	assert.Equal(t, "#beacon", sink.created["A"].Model)
	assert.Equal(t, "1 2 3", sink.created["A"].Position.String())
}

func TestBuild_PositionVerbatim(t *testing.T) {
	rows := mustParse(t, "id,x,y,z\nA,1e3,north,\"-0\"\n")
	sink := newRecordingSink()
	_, err := Build(context.Background(), rows, sink, Options{})
	require.NoError(t, err)
	assert.Equal(t, Position{X: "1e3", Y: "north", Z: "-0"}, sink.created["A"].Position)
}

func TestBuild_UnresolvedNeighbor(t *testing.T) {
	rows := mustParse(t, "id,x,y,z,neighbors\nA,0,0,0,B\nB,0,0,0,Z\n")

	t.Run("fail fast", func(t *testing.T) {
		sink := newRecordingSink()
		_, err := Build(context.Background(), rows, sink, Options{})
		require.ErrorIs(t, err, ErrUnresolvedNeighbor)

		var une *UnresolvedNeighborError
		require.True(t, errors.As(err, &une))
		assert.Equal(t, "B", une.NodeID)
		assert.Equal(t, "Z", une.Neighbor)

		// Nodes exist but nothing was linked.
		assert.Len(t, sink.created, 2)
		assert.Empty(t, sink.neighbors)
	})

	t.Run("allow dangling", func(t *testing.T) {
		sink := &forwardingSink{}
		res, err := Build(context.Background(), rows, sink, Options{AllowDangling: true})
		require.NoError(t, err)
		assert.Equal(t, []DanglingRef{{NodeID: "B", Neighbor: "Z"}}, res.Dangling)
		assert.Equal(t, [][]string{{"B"}, {"Z"}}, sink.lists)
	})
}

// forwardingSink accepts anything.
type forwardingSink struct {
	lists [][]string
}

func (s *forwardingSink) Create(context.Context, Node) error { return nil }

func (s *forwardingSink) SetNeighbors(_ context.Context, _ Node, nbs []string) error {
	s.lists = append(s.lists, nbs)
	return nil
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing column", func(t *testing.T) {
		rows := mustParse(t, "id,x,y\nA,0,0\n")
		sink := newRecordingSink()
		_, err := Build(ctx, rows, sink, Options{})
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Empty(t, sink.calls)
	})

	t.Run("empty id", func(t *testing.T) {
		rows := mustParse(t, "id,x,y,z\n,0,0,0\n")
		_, err := Build(ctx, rows, newRecordingSink(), Options{})
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		rows := mustParse(t, "id,x,y,z\nA,0,0,0\nA,1,1,1\n")
		sink := newRecordingSink()
		_, err := Build(ctx, rows, sink, Options{})
		require.ErrorIs(t, err, ErrDuplicateID)
		var dup *DuplicateIDError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, 1, dup.Row)
		assert.Equal(t, []string{"create:A"}, sink.calls)
	})

	t.Run("sink failure", func(t *testing.T) {
		rows := mustParse(t, "id,x,y,z\nA,0,0,0\nB,1,1,1\n")
		sink := newRecordingSink()
		sink.failOn = "B"
		_, err := Build(ctx, rows, sink, Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `create "B"`)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		rows := mustParse(t, "id,x,y,z\nA,0,0,0\n")
		_, err := Build(cctx, rows, newRecordingSink(), Options{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuilder_Phases(t *testing.T) {
	b := NewBuilder(Options{})
	assert.Equal(t, PhaseCreating, b.Phase())

	rows := mustParse(t, "id,x,y,z\nA,0,0,0\n")
	_, err := b.Build(context.Background(), rows, newRecordingSink())
	require.NoError(t, err)
	assert.Equal(t, PhaseDone, b.Phase())
	assert.Equal(t, "done", b.Phase().String())

	_, err = b.Build(context.Background(), rows, newRecordingSink())
	assert.Error(t, err, "a builder is single use")
}

func TestBuild_NoRows(t *testing.T) {
	sink := newRecordingSink()
	res, err := Build(context.Background(), nil, sink, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Nodes)
	assert.Empty(t, sink.calls)
}

func TestParseNeighbors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"B", []string{"B"}},
		{"B;C", []string{"B", "C"}},
		{"B,C", []string{"B", "C"}},
		{"B; C ;;D,", []string{"B", "C", "D"}},
		{"B,,C", []string{"B", "C"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNeighbors(tt.in), "input %q", tt.in)
	}
}
