package csvrows

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sixColumnCSV = `id,x,y,z,description,neighbors
A,0,0,0,start,B
B,1,0,0,,A;C
C,2,0.5,-1,"end",B
`

func TestParse_SixColumns(t *testing.T) {
	rows, err := Parse(sixColumnCSV)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, r := range rows {
		assert.Len(t, r, 6)
		for _, key := range []string{"id", "x", "y", "z", "description", "neighbors"} {
			_, ok := r[key]
			assert.True(t, ok, "row %v missing key %q", r, key)
		}
	}

	want := []Row{
		{"id": "A", "x": "0", "y": "0", "z": "0", "description": "start", "neighbors": "B"},
		{"id": "B", "x": "1", "y": "0", "z": "0", "description": "", "neighbors": "A;C"},
		{"id": "C", "x": "2", "y": "0.5", "z": "-1", "description": "end", "neighbors": "B"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TrailingNewlineIgnored(t *testing.T) {
	withNL, err := Parse("id,x,y,z\n1,0,0,0\n")
	require.NoError(t, err)
	without, err := Parse("id,x,y,z\n1,0,0,0")
	require.NoError(t, err)

	if diff := cmp.Diff(without, withNL); diff != "" {
		t.Errorf("trailing newline changed result (-without +with):\n%s", diff)
	}
	assert.Len(t, withNL, 1)
}

func TestParse_TrailingWhitespaceLineIgnored(t *testing.T) {
	rows, err := Parse("id,x\n1,2\n   \t")
	require.NoError(t, err)
	assert.Equal(t, []Row{{"id": "1", "x": "2"}}, rows)
}

func TestParse_QuotesAndWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quoted", `"hello"`, "hello"},
		{"quoted with padding", `   "hello"  `, "hello"},
		{"unquoted trimmed", "  hello ", "hello"},
		{"one layer only", `""hi""`, `"hi"`},
		{"empty quotes", `""`, ""},
		{"lone quote", `"`, `"`},
		{"open quote only", `"abc`, `"abc`},
		{"inner spaces kept", `" a b "`, " a b "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse("v\n" + tt.in)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0]["v"])
		})
	}
}

func TestParse_HeaderTrimmed(t *testing.T) {
	rows, err := Parse(" id , x \r\nA,1\r\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"id": "A", "x": "1"}, rows[0])
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse("id,x,y,z\n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n", "   ", " \n \n"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", in)
	}
}

func TestParse_MalformedRow(t *testing.T) {
	t.Run("too few fields", func(t *testing.T) {
		_, err := Parse("id,x,y,z\nA,0,0,0\nB,1,1\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedRow)

		var mre *MalformedRowError
		require.True(t, errors.As(err, &mre))
		assert.Equal(t, 3, mre.Line)
		assert.Equal(t, 4, mre.Expected)
		assert.Equal(t, 3, mre.Got)
	})

	t.Run("too many fields", func(t *testing.T) {
		// Commas inside quotes are not supported and split the field.
		_, err := Parse("id,description\nA,\"one, two\"\n")
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("blank line in the middle", func(t *testing.T) {
		_, err := Parse("id,x\nA,1\n\nB,2\n")
		assert.ErrorIs(t, err, ErrMalformedRow)
	})
}

func TestHeader(t *testing.T) {
	h, err := Header("id , x,y,z,description,neighbors\nA,1,2,3,,\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "x", "y", "z", "description", "neighbors"}, h)

	_, err = Header("")
	assert.ErrorIs(t, err, ErrEmptyInput)
}
