package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "hybrid", cfg.Verification.Level)
	assert.Equal(t, 0, cfg.Verification.TimeoutMS)
	assert.Equal(t, 2, cfg.Formatter.IndentWidth)
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".vbl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verification:\n  level: full\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Verification.Level)
	// formatter.indent_width was omitted, so it keeps the default.
	assert.Equal(t, 2, cfg.Formatter.IndentWidth)
}

func TestLoadOptionalMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDiscoverFindsDotVblYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".vbl.yaml"), []byte("formatter:\n  indent_width: 4\n"), 0o644))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Formatter.IndentWidth)
}

func TestDiscoverNoFilesReturnsDefault(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
