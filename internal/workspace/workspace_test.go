package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/corrgraph/internal/dataset"
	"github.com/KaramelBytes/corrgraph/internal/netgraph"
	"github.com/KaramelBytes/corrgraph/internal/utils"
	"github.com/KaramelBytes/corrgraph/internal/workspace"
)

func newWorkspaceWithData(t *testing.T) (*workspace.Workspace, *workspace.Dataset) {
	t.Helper()
	root := t.TempDir()
	csv := filepath.Join(root, "data", "sales.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(csv), 0o755))
	require.NoError(t, os.WriteFile(csv, []byte("region,sales,profit\nn,1,2\ns,2,4\ne,3,7\n"), 0o644))

	ws := workspace.NewWorkspace("demo", "quarterly", root)
	ds, err := ws.AddDataset(csv, " first upload ", dataset.DefaultOptions())
	require.NoError(t, err)
	return ws, ds
}

func TestAddDatasetRecordsSchema(t *testing.T) {
	ws, ds := newWorkspaceWithData(t)

	assert.Equal(t, "sales.csv", ds.Name)
	assert.Equal(t, filepath.Join("data", "sales.csv"), ds.Path)
	assert.Equal(t, "first upload", ds.Description)
	assert.Equal(t, 3, ds.Rows)
	assert.Equal(t, []string{"sales", "profit"}, ds.NumericColumns())
	assert.Equal(t, filepath.Join(ws.RootDir(), "data", "sales.csv"), ws.DatasetPath(ds))

	_, err := ws.AddDataset(ws.DatasetPath(ds), "", dataset.DefaultOptions())
	assert.ErrorIs(t, err, workspace.ErrDuplicateName)

	got, err := ws.DatasetByName("SALES.CSV")
	require.NoError(t, err)
	assert.Equal(t, ds.ID, got.ID)
	_, err = ws.DatasetByName("other.csv")
	assert.ErrorIs(t, err, workspace.ErrDatasetNotFound)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ws, ds := newWorkspaceWithData(t)

	cfg := workspace.DefaultNetworkConfig("Sales vs profit", ds.ID)
	cfg.SelectedColumns = []string{"sales", "profit"}
	cfg.Layout = "circle"
	gen := netgraph.Generate(netgraph.GenerateInput{
		Columns: ds.Columns,
		Rows: []netgraph.Row{
			{"sales": "1", "profit": "2"},
			{"sales": "2", "profit": "4"},
			{"sales": "3", "profit": "7"},
		},
	})
	saved, err := ws.SaveNetwork(cfg, &gen.Graph, gen.Insights)
	require.NoError(t, err)
	require.NoError(t, ws.Save())

	_, err = os.Stat(filepath.Join(ws.RootDir(), utils.WorkspaceFileName))
	require.NoError(t, err)

	loaded, err := workspace.LoadWorkspace(ws.RootDir())
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Name)
	require.Len(t, loaded.ListDatasets(), 1)

	n, err := loaded.Network(saved.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, cfg, n.Config)
	require.NotNil(t, n.Graph)
	require.Len(t, n.Graph.Links, 1)
	assert.Equal(t, gen.Insights, n.Insights)

	sc := netgraph.Prepare(n.SceneInput(nil, 0, 0))
	assert.Equal(t, netgraph.SourceNormalized, sc.Source)
	assert.Len(t, sc.Nodes, 2)
}

func TestSaveNetworkValidates(t *testing.T) {
	ws, ds := newWorkspaceWithData(t)

	cfg := workspace.DefaultNetworkConfig("", ds.ID)
	cfg.Layout = "spiral"
	cfg.CorrelationThreshold = 1.5
	_, err := ws.SaveNetwork(cfg, nil, nil)
	require.ErrorIs(t, err, utils.ErrInvalid)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "layout must be one of")
	assert.Contains(t, err.Error(), "correlationThreshold must be at most 1")

	_, err = ws.SaveNetwork(workspace.DefaultNetworkConfig("x", "nope"), nil, nil)
	assert.ErrorIs(t, err, workspace.ErrDatasetNotFound)
}

func TestRemoveDatasetDropsNetworks(t *testing.T) {
	ws, ds := newWorkspaceWithData(t)
	n, err := ws.SaveNetwork(workspace.DefaultNetworkConfig("a", ds.ID), nil, nil)
	require.NoError(t, err)
	_, err = ws.SaveNetwork(workspace.DefaultNetworkConfig("b", ds.ID), nil, nil)
	require.NoError(t, err)
	assert.Len(t, ws.ListNetworks(), 2)

	require.NoError(t, ws.DeleteNetwork(n.ID))
	assert.Len(t, ws.ListNetworks(), 1)
	require.NoError(t, ws.RemoveDataset(ds.Name))
	assert.Empty(t, ws.ListNetworks())
	assert.Empty(t, ws.ListDatasets())

	_, err = ws.Network(n.ID)
	assert.ErrorIs(t, err, workspace.ErrNetworkNotFound)
}

func TestLoadWorkspaceMissing(t *testing.T) {
	_, err := workspace.LoadWorkspace(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
