package netgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func layoutNodes() []Node {
	g := "metrics"
	return []Node{
		{ID: "A", Radius: 10, Degree: 2, Group: &g},
		{ID: "B", Radius: 10, Degree: 1},
		{ID: "C", Radius: 10, Degree: 0},
	}
}

func TestLayout_Empty(t *testing.T) {
	for _, mode := range []LayoutMode{LayoutGrid, LayoutCircle, LayoutForce} {
		out := Layout(nil, mode, 400, 400)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
}

func TestLayout_Grid(t *testing.T) {
	out := Layout(layoutNodes(), LayoutGrid, 400, 400)
	require.Len(t, out, 3)

	cell := 400.0 / 3
	assert.InDelta(t, cell, out[0].X, 1e-9)
	assert.InDelta(t, cell, out[0].Y, 1e-9)
	assert.InDelta(t, 2*cell, out[1].X, 1e-9)
	assert.InDelta(t, cell, out[1].Y, 1e-9)
	assert.InDelta(t, cell, out[2].X, 1e-9)
	assert.InDelta(t, 2*cell, out[2].Y, 1e-9)

	xs := map[float64]bool{}
	for _, n := range out {
		xs[n.X] = true
	}
	assert.Greater(t, len(xs), 1)
}

func TestLayout_GridShape(t *testing.T) {
	nodes := make([]Node, 5)
	for i := range nodes {
		nodes[i] = Node{ID: string(rune('a' + i))}
	}
	// 5 nodes: 3 columns, 2 rows
	out := Layout(nodes, LayoutGrid, 800, 300)
	assert.InDelta(t, 200, out[0].X, 1e-9)
	assert.InDelta(t, 100, out[0].Y, 1e-9)
	assert.InDelta(t, 600, out[2].X, 1e-9)
	assert.InDelta(t, 400, out[4].X, 1e-9)
	assert.InDelta(t, 200, out[4].Y, 1e-9)
}

func TestLayout_Circle(t *testing.T) {
	out := Layout(layoutNodes(), LayoutCircle, 400, 400)
	require.Len(t, out, 3)
	for _, n := range out {
		assert.Greater(t, n.X, 0.0)
		assert.Greater(t, n.Y, 0.0)
		assert.Less(t, n.X, 400.0)
		assert.Less(t, n.Y, 400.0)
		assert.InDelta(t, 160, math.Hypot(n.X-200, n.Y-200), 1e-9)
	}
	assert.InDelta(t, 360, out[0].X, 1e-9)
	assert.InDelta(t, 200, out[0].Y, 1e-9)
}

func TestLayout_ForcePullsHubsInward(t *testing.T) {
	out := Layout(layoutNodes(), LayoutForce, 400, 400)
	require.Len(t, out, 3)

	dist := func(n PositionedNode) float64 { return math.Hypot(n.X-200, n.Y-200) }
	// maxDegree 2: factors 0.6, 0.8, 1.0 of r=160
	assert.InDelta(t, 96, dist(out[0]), 1e-9)
	assert.InDelta(t, 128, dist(out[1]), 1e-9)
	assert.InDelta(t, 160, dist(out[2]), 1e-9)
	assert.InDelta(t, 296, out[0].X, 1e-9)
}

func TestLayout_ForceWithoutLinksMatchesCircle(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	force := Layout(nodes, LayoutForce, 300, 500)
	circle := Layout(nodes, LayoutCircle, 300, 500)
	for i := range nodes {
		assert.InDelta(t, circle[i].X, force[i].X, 1e-9)
		assert.InDelta(t, circle[i].Y, force[i].Y, 1e-9)
	}
}

func TestLayout_PreservesAttributesAndIsDeterministic(t *testing.T) {
	nodes := layoutNodes()
	a := Layout(nodes, LayoutMode("unknown"), 640, 480)
	b := Layout(nodes, LayoutForce, 640, 480)
	assert.Equal(t, a, b, "unknown modes fall back to force")

	for i, n := range a {
		assert.Equal(t, nodes[i], n.Node)
	}
	*a[0].Group = "changed"
	assert.Equal(t, "metrics", *nodes[0].Group)
}
