package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOutputCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "graph.svg")
	require.NoError(t, WriteOutput(path, []byte("<svg/>")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(b))
	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "data", "raw")
	require.NoError(t, EnsureDir(deep))
	require.NoError(t, os.WriteFile(filepath.Join(root, WorkspaceFileName), []byte("{}"), 0o644))
	file := filepath.Join(deep, "sales.csv")
	require.NoError(t, os.WriteFile(file, []byte("a,b\n"), 0o644))

	got, err := FindWorkspaceRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = FindWorkspaceRoot(file)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindWorkspaceRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNoWorkspace)
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))

	_, err = PrettyJSON(make(chan int))
	assert.Error(t, err)
}
