package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	content := "modelAsset: \"#beacon\"\nallowDangling: true\ngraphPath: out/graph\ncheckConcurrency: 2\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waypoints.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{
		ModelAsset:       "#beacon",
		AllowDangling:    true,
		GraphPath:        "out/graph",
		CheckConcurrency: 2,
		Verbose:          true,
	}, cfg)
}

func TestLoad_YmlPreferred(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waypoints.yml"), []byte("graphPath: a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waypoints.yaml"), []byte("graphPath: b\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.GraphPath)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waypoints.yml"), []byte("checkConcurrency: [oops\n"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	d := ProjectConfig{}.Defaults()
	assert.Equal(t, "#waypoint_model", d.ModelAsset)
	assert.Equal(t, DefaultGraphPath, d.GraphPath)
	assert.Equal(t, DefaultCheckConcurrency, d.CheckConcurrency)

	kept := ProjectConfig{ModelAsset: "#m", GraphPath: "/abs", CheckConcurrency: 9}.Defaults()
	assert.Equal(t, "#m", kept.ModelAsset)
	assert.Equal(t, "/abs", kept.ResolveGraphPath("/root"))
	assert.Equal(t, filepath.Join("/root", DefaultGraphPath), d.ResolveGraphPath("/root"))
}
