//go:build !cgo

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ImportWithoutCgoSkipsPersist(t *testing.T) {
	root := t.TempDir()

	out, err := runCLI(t, "--project-root", root, "import", campusFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "Imported 5 waypoints, 6 links\n", out)

	_, err = os.Stat(filepath.Join(root, ".waypoints", "graph"))
	assert.True(t, os.IsNotExist(err), "no graph index is written")
}

func TestRun_DiagramWithoutCgo(t *testing.T) {
	_, err := runCLI(t, "--project-root", t.TempDir(), "diagram")
	assert.ErrorIs(t, err, errNoCgo)
}
