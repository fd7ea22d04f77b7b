package graph

import (
	"context"
	"sort"
	"testing"

	"github.com/dusk-indust/waypoints/internal/csvrows"
	"github.com/dusk-indust/waypoints/internal/waypoint"
	"github.com/stretchr/testify/require"
)

// squareCSV describes two components:
//
//	A - B
//	|   |
//	D - C      E - F      G
const squareCSV = `id,x,y,z,description,neighbors
A,0,0,0,north west,B;D
B,1,0,0,north east,A;C
C,1,0,1,south east,B;D
D,0,0,1,south west,C;A
E,5,0,5,east pier,F
F,6,0,5,east pier end,E
G,9,9,9,lonely,
`

// populate parses csv and builds it into store through a StoreSink.
func populate(t *testing.T, store Store, csv string) *waypoint.Result {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.InitSchema(ctx))
	rows, err := csvrows.Parse(csv)
	require.NoError(t, err)
	res, err := waypoint.Build(ctx, rows, NewStoreSink(store), waypoint.Options{})
	require.NoError(t, err)
	return res
}

// sorted returns a sorted copy of the given string slice so that assertions
// are deterministic regardless of map iteration order.
func sorted(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Strings(out)
	return out
}

func chainEnds(chains []Chain) []string {
	out := make([]string, 0, len(chains))
	for _, c := range chains {
		out = append(out, c.Nodes[len(c.Nodes)-1])
	}
	return sorted(out)
}
