package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/corrgraph/internal/utils"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "medium", c.NodeSize)
	assert.Equal(t, "force", c.Layout)
	assert.True(t, c.ShowLabels)
	assert.Equal(t, 0.3, c.CorrelationThreshold)
	assert.Equal(t, 400, c.CanvasWidth)
	assert.Equal(t, 50, c.SampleRows)
	assert.Equal(t, "svg", c.OutputFormat)
	assert.Equal(t, filepath.Join(home, ".corrgraph", "workspaces"), c.WorkspacesDir)
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: grid\ncanvas_width: 640\n"), 0o644))
	t.Setenv("CORRGRAPH_CANVAS_WIDTH", "800")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grid", c.Layout)
	assert.Equal(t, 800, c.CanvasWidth)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: spiral\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, utils.ErrInvalid)
	assert.Contains(t, err.Error(), "layout must be one of: force circle grid")
}

func TestSetAndSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)

	require.NoError(t, c.Set("node_size", "Large"))
	require.NoError(t, c.Set("show_labels", "false"))
	require.NoError(t, c.Set("correlation_threshold", "0.55"))
	require.NoError(t, c.Set("sample_rows", "0"))

	assert.Error(t, c.Set("correlation_threshold", "1.5"))
	assert.Equal(t, 0.55, c.CorrelationThreshold, "failed set leaves value unchanged")
	assert.Error(t, c.Set("canvas_width", "wide"))
	assert.Error(t, c.Set("colour", "red"))

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(c, path))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, back)

	for _, k := range Keys {
		_, err := back.Get(k)
		assert.NoError(t, err, k)
	}
	v, _ := back.Get("node_size")
	assert.Equal(t, "large", v)
}
