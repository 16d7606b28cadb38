package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

func sampleScene() netgraph.Scene {
	return netgraph.Prepare(netgraph.SceneInput{
		Raw: &netgraph.RawGraph{
			Nodes: []netgraph.RawNode{{ID: "sales"}, {ID: "profit"}, {ID: "R&D"}},
			Links: []netgraph.RawLink{
				{Source: netgraph.IDEndpoint("sales"), Target: netgraph.IDEndpoint("profit"), Value: 0.9},
				{Source: netgraph.IDEndpoint("sales"), Target: netgraph.IDEndpoint("R&D"), Value: -0.1},
			},
		},
		Layout: netgraph.LayoutCircle,
	})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatSVG, "SVG": FormatSVG, "html": FormatHTML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("png")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, ".html", FormatHTML.Ext())
}

func TestSVG_DrawsLinksNodesAndLegend(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, sampleScene(), Options{ShowLabels: true, Title: "Q3 <draft>"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400"`))
	assert.Contains(t, out, "<title>Q3 &lt;draft&gt;</title>")
	assert.Equal(t, 4, strings.Count(out, "<line x1="), "two links plus two legend swatches")
	assert.Contains(t, out, `stroke="#10B981" stroke-width="3.6" stroke-opacity="0.7"`)
	assert.Contains(t, out, `stroke="#EF4444" stroke-width="1" stroke-opacity="0.7"`)
	assert.Equal(t, 3, strings.Count(out, "<circle"))
	assert.Contains(t, out, ">R&amp;D</text>")
	assert.Contains(t, out, "Positive correlation")
	assert.Contains(t, out, "Negative correlation")
}

func TestSVG_LabelsOffAndDanglingLinks(t *testing.T) {
	sc := sampleScene()
	sc.Links = append(sc.Links, netgraph.Link{Source: "sales", Target: "ghost", Strength: 1})
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, sc, Options{}))
	out := buf.String()
	assert.NotContains(t, out, "ghost")
	assert.NotContains(t, out, `font-weight="600"`)
}

func TestSVG_EmptyScene(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, netgraph.Prepare(netgraph.SceneInput{}), DefaultOptions()))
	out := buf.String()
	assert.Contains(t, out, EmptyMessage)
	assert.NotContains(t, out, "<circle")
	assert.Contains(t, out, `x="200" y="200"`)
}

func TestHTML_EmbedsGraph(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sampleScene(), Options{ShowLabels: true, Title: "Sales network"}))
	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Sales network")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "profit")
}

func TestNodeCategories(t *testing.T) {
	b, a := "b", "a"
	cats, category := nodeCategories([]netgraph.PositionedNode{
		{Node: netgraph.Node{ID: "1", Group: &b}},
		{Node: netgraph.Node{ID: "2"}},
		{Node: netgraph.Node{ID: "3", Group: &a}},
		{Node: netgraph.Node{ID: "4", Group: &b}},
	})
	require.Len(t, cats, 3)
	assert.Equal(t, "a", cats[0].Name)
	assert.Equal(t, "b", cats[1].Name)
	assert.Equal(t, ungroupedCategory, cats[2].Name)
	assert.Equal(t, map[string]int{"1": 1, "2": 2, "3": 0, "4": 1}, category)
}

func TestNodeCategories_NoGroups(t *testing.T) {
	cats, category := nodeCategories([]netgraph.PositionedNode{
		{Node: netgraph.Node{ID: "1"}},
		{Node: netgraph.Node{ID: "2"}},
	})
	assert.Empty(t, cats)
	assert.Empty(t, category)
}

func TestHTML_UngroupedNodesGetOwnCategory(t *testing.T) {
	grp := "number"
	sc := sampleScene()
	sc.Nodes[0].Group = &grp
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sc, DefaultOptions()))
	out := buf.String()
	assert.Contains(t, out, `"number"`)
	assert.Contains(t, out, `"ungrouped"`)
}

func TestJSON_WritesScene(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleScene(), DefaultOptions()))
	var got struct {
		Source string `json:"source"`
		Nodes  []struct {
			ID     string  `json:"id"`
			Degree int     `json:"degree"`
			X      float64 `json:"x"`
		} `json:"nodes"`
		Links []netgraph.Link `json:"links"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "normalized", got.Source)
	require.Len(t, got.Nodes, 3)
	assert.Equal(t, 2, got.Nodes[0].Degree)
	assert.Len(t, got.Links, 2)

	assert.ErrorIs(t, Write(&buf, Format("pdf"), sampleScene(), DefaultOptions()), ErrUnknownFormat)
}
