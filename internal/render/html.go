package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

// HTML writes an interactive page. Node coordinates come from the scene
// (layout "none"); nodes are categorized by group.
func HTML(w io.Writer, scene netgraph.Scene, opt Options) error {
	page := components.NewPage()
	page.PageTitle = pageTitle(opt)
	page.AddCharts(graphChart(scene, opt))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func pageTitle(opt Options) string {
	if opt.Title != "" {
		return opt.Title
	}
	return DefaultOptions().Title
}

func graphChart(scene netgraph.Scene, opt Options) *charts.Graph {
	width, height := scene.Width, scene.Height
	if width <= 0 {
		width = netgraph.DefaultCanvasWidth
	}
	if height <= 0 {
		height = netgraph.DefaultCanvasHeight
	}

	graph := charts.NewGraph()
	subtitle := ""
	if scene.Empty() {
		subtitle = EmptyMessage
	}
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(opt),
			Width:     fmt.Sprintf("%dpx", int(width)),
			Height:    fmt.Sprintf("%dpx", int(height)),
		}),
		charts.WithTitleOpts(opts.Title{Title: pageTitle(opt), Subtitle: subtitle}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	categories, category := nodeCategories(scene.Nodes)
	nodes := make([]opts.GraphNode, 0, len(scene.Nodes))
	for _, n := range scene.Nodes {
		gn := opts.GraphNode{
			Name:       n.ID,
			X:          float32(n.X),
			Y:          float32(n.Y),
			Value:      float32(n.Degree),
			SymbolSize: n.Radius * 2,
			ItemStyle:  &opts.ItemStyle{Color: colorNodeTo},
		}
		if c, ok := category[n.ID]; ok {
			gn.Category = c
		}
		nodes = append(nodes, gn)
	}

	links := make([]opts.GraphLink, 0, len(scene.Links))
	for _, l := range scene.Links {
		_, ok1 := scene.NodeByID(l.Source)
		_, ok2 := scene.NodeByID(l.Target)
		if !ok1 || !ok2 {
			continue
		}
		v := float32(l.Strength)
		if l.Type == netgraph.LinkNegative {
			v = -v
		}
		links = append(links, opts.GraphLink{Source: l.Source, Target: l.Target, Value: v})
	}

	graph.AddSeries("correlations", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:     "none",
			Roam:       opts.Bool(true),
			Draggable:  opts.Bool(true),
			Categories: categories,
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(opt.ShowLabels),
			Color:    colorLabel,
			Position: "bottom",
		}),
	)
	return graph
}

// ungroupedCategory collects nodes without a group once any node has one.
const ungroupedCategory = "ungrouped"

// nodeCategories lists distinct groups in sorted order and maps each node id
// to its category index. Nodes without a group share a trailing ungrouped
// category. When no node has a group there are no categories.
func nodeCategories(nodes []netgraph.PositionedNode) ([]*opts.GraphCategory, map[string]int) {
	seen := map[string]bool{}
	var names []string
	ungrouped := false
	for _, n := range nodes {
		if n.Group == nil {
			ungrouped = true
			continue
		}
		if seen[*n.Group] {
			continue
		}
		seen[*n.Group] = true
		names = append(names, *n.Group)
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)
	if ungrouped && !seen[ungroupedCategory] {
		names = append(names, ungroupedCategory)
	}
	cats := make([]*opts.GraphCategory, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		cats[i] = &opts.GraphCategory{Name: name}
		index[name] = i
	}
	byNode := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if n.Group != nil {
			byNode[n.ID] = index[*n.Group]
		} else {
			byNode[n.ID] = index[ungroupedCategory]
		}
	}
	return cats, byNode
}
