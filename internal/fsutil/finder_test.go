package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	return dir
}

func TestFindFilesByExtension(t *testing.T) {
	dir := writeTree(t, "b.hcl", "a.YAML", "nested/c.conf", "notes.txt", ".hidden.hcl")

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml", ".conf")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.YAML"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.conf"),
	}, files)
}

func TestFindFilesByExtension_PanicsWithoutExtensions(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}

func TestExpandPaths(t *testing.T) {
	dir := writeTree(t, "conf.d/10-base.hcl", "conf.d/20-prod.yml", "conf.d/readme.md", "local.env")

	files, err := ExpandPaths([]string{
		filepath.Join(dir, "local.env"),
		filepath.Join(dir, "conf.d"),
	}, ".hcl", ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "local.env"),
		filepath.Join(dir, "conf.d", "10-base.hcl"),
		filepath.Join(dir, "conf.d", "20-prod.yml"),
	}, files)

	_, err = ExpandPaths([]string{filepath.Join(dir, "missing")}, ".hcl")
	require.Error(t, err)
}
