package netgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var salesRows = []Row{
	{"sales": 10, "profit": 5, "loss": -5},
	{"sales": 20, "profit": 10, "loss": -10},
	{"sales": 30, "profit": 15, "loss": -15},
	{"sales": 40, "profit": 20, "loss": -20},
}

func findLink(g Graph, source, target string) (Link, bool) {
	for _, l := range g.Links {
		if l.Source == source && l.Target == target {
			return l, true
		}
	}
	return Link{}, false
}

func TestBuildCorrelationGraph_StrongPairs(t *testing.T) {
	opt := DefaultBuildOptions()
	opt.SelectedColumns = []string{"sales", "profit", "loss"}
	opt.SampleRows = salesRows
	opt.CorrelationThreshold = 0.5

	g := BuildCorrelationGraph(opt)

	require.Len(t, g.Nodes, 3)
	for i, id := range []string{"sales", "profit", "loss"} {
		assert.Equal(t, id, g.Nodes[i].ID)
		assert.Equal(t, 25.0, g.Nodes[i].Radius)
		assert.Nil(t, g.Nodes[i].Group)
	}

	pair, ok := findLink(g, "sales", "profit")
	require.True(t, ok)
	assert.Greater(t, pair.Strength, 0.99)
	assert.Equal(t, LinkPositive, pair.Type)

	inverse, ok := findLink(g, "profit", "loss")
	require.True(t, ok)
	assert.Greater(t, inverse.Strength, 0.99)
	assert.Equal(t, LinkNegative, inverse.Type)

	// emission follows nested column order
	require.Len(t, g.Links, 3)
	assert.Equal(t, [2]string{"sales", "profit"}, [2]string{g.Links[0].Source, g.Links[0].Target})
	assert.Equal(t, [2]string{"sales", "loss"}, [2]string{g.Links[1].Source, g.Links[1].Target})
	assert.Equal(t, [2]string{"profit", "loss"}, [2]string{g.Links[2].Source, g.Links[2].Target})
}

func TestBuildCorrelationGraph_TooFewColumns(t *testing.T) {
	for _, cols := range [][]string{nil, {}, {"only"}} {
		g := BuildCorrelationGraph(BuildOptions{SelectedColumns: cols, NodeSize: NodeSizeSmall, SampleRows: salesRows})
		assert.NotNil(t, g.Nodes)
		assert.NotNil(t, g.Links)
		assert.Empty(t, g.Nodes)
		assert.Empty(t, g.Links)
	}
}

func TestBuildCorrelationGraph_Threshold(t *testing.T) {
	rows := []Row{
		{"a": 1, "b": 1},
		{"a": 2, "b": -1},
		{"a": 3, "b": 1},
		{"a": 4, "b": -1},
	}
	opt := DefaultBuildOptions()
	opt.SelectedColumns = []string{"a", "b"}
	opt.SampleRows = rows

	g := BuildCorrelationGraph(opt)
	require.Len(t, g.Links, 1)
	assert.InDelta(t, 0.4472135955, g.Links[0].Strength, 1e-9)
	assert.Equal(t, LinkNegative, g.Links[0].Type)

	opt.CorrelationThreshold = 0.5
	assert.Empty(t, BuildCorrelationGraph(opt).Links)
}

func TestBuildCorrelationGraph_MissingCellsAndSizes(t *testing.T) {
	rows := []Row{
		{"x": "1", "y": "2"},
		{"x": "2,0"},
		{"x": "3", "y": "6"},
		nil,
		{"x": "5", "y": "10"},
	}
	g := BuildCorrelationGraph(BuildOptions{
		SelectedColumns:      []string{"x", "y", "z"},
		NodeSize:             NodeSizeLarge,
		SampleRows:           rows,
		CorrelationThreshold: DefaultCorrelationThreshold,
	})
	require.Len(t, g.Nodes, 3)
	assert.Equal(t, 35.0, g.Nodes[2].Radius)
	// z has no values, so only x-y correlates
	require.Len(t, g.Links, 1)
	assert.InDelta(t, 1, g.Links[0].Strength, 1e-12)
}

func TestBuildCorrelationGraph_Deterministic(t *testing.T) {
	opt := DefaultBuildOptions()
	opt.SelectedColumns = []string{"loss", "sales", "profit"}
	opt.SampleRows = salesRows
	assert.Equal(t, BuildCorrelationGraph(opt), BuildCorrelationGraph(opt))
}

func TestCorrelationMatrix(t *testing.T) {
	m := CorrelationMatrix([]string{"sales", "loss"}, salesRows)
	require.Len(t, m, 2)
	assert.Equal(t, 1.0, m[0][0])
	assert.Equal(t, 1.0, m[1][1])
	assert.InDelta(t, -1, m[0][1], 1e-12)
	assert.Equal(t, m[0][1], m[1][0])
}

func TestCorrelationMatrix_MatchesPearsonWithGaps(t *testing.T) {
	rows := []Row{
		{"a": "1", "b": 2.5},
		{"a": "2,5", "b": nil},
		nil,
		{"a": 4, "b": "n/a"},
		{"a": "7", "b": 9},
		{"a": 3, "b": "4"},
	}
	a := []any{"1", "2,5", nil, 4, "7", 3}
	b := []any{2.5, nil, nil, "n/a", 9, "4"}
	want, err := Pearson(a, b)
	require.NoError(t, err)

	m := CorrelationMatrix([]string{"a", "b"}, rows)
	assert.InDelta(t, want, m[0][1], 1e-12)
	assert.NotZero(t, m[0][1])
}

func TestNodeSizeAndLayoutParsing(t *testing.T) {
	assert.Equal(t, 15.0, NodeSizeSmall.Radius())
	assert.Equal(t, 25.0, NodeSize("huge").Radius())

	s, err := ParseNodeSize(" Large ")
	require.NoError(t, err)
	assert.Equal(t, NodeSizeLarge, s)
	s, err = ParseNodeSize("")
	require.NoError(t, err)
	assert.Equal(t, DefaultNodeSize, s)
	_, err = ParseNodeSize("huge")
	assert.ErrorIs(t, err, ErrUnknownNodeSize)

	m, err := ParseLayoutMode("GRID")
	require.NoError(t, err)
	assert.Equal(t, LayoutGrid, m)
	m, err = ParseLayoutMode("")
	require.NoError(t, err)
	assert.Equal(t, LayoutForce, m)
	_, err = ParseLayoutMode("spiral")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}
