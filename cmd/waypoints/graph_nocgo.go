//go:build !cgo

package main

import (
	"errors"

	"github.com/dusk-indust/waypoints/internal/graph"
	"github.com/dusk-indust/waypoints/internal/mcptools"
)

var errNoCgo = errors.New("graph index requires a cgo build (KuzuDB)")

func openGraph(string) (graph.Store, error) {
	return nil, errNoCgo
}

// persistFunc returns nil: without cgo there is no graph index to write.
func persistFunc(string) mcptools.PersistFunc {
	return nil
}
