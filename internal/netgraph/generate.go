package netgraph

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GraphType tunes the insights Generate reports.
type GraphType string

const (
	GraphGeneral GraphType = "general"
	GraphSocial  GraphType = "social"
	GraphGeo     GraphType = "geo"
)

// ParseGraphType accepts general|social|geo. An empty string yields general.
func ParseGraphType(s string) (GraphType, error) {
	switch GraphType(strings.ToLower(strings.TrimSpace(s))) {
	case "", GraphGeneral:
		return GraphGeneral, nil
	case GraphSocial:
		return GraphSocial, nil
	case GraphGeo:
		return GraphGeo, nil
	}
	return GraphGeneral, fmt.Errorf("%w: %q (use general|social|geo)", ErrUnknownGraphType, s)
}

// generateThreshold is fixed for generated graphs; the builder's threshold
// is configurable.
const generateThreshold = 0.3

// GenerateInput describes the dataset a network is generated from.
type GenerateInput struct {
	DatasetName string
	Columns     []Column
	Rows        []Row
	GraphType   GraphType
}

// Generated is a producer-side graph plus human-readable findings. Graph is
// meant to be passed through NormalizeGraph.
type Generated struct {
	DatasetName string    `json:"dataset_name,omitempty"`
	GraphType   GraphType `json:"graph_type,omitempty"`
	Graph       RawGraph  `json:"graph"`
	Insights    []string  `json:"insights"`
}

// Generate builds a raw graph over the numeric columns of a dataset. Nodes
// are grouped by column type; links carry |r| rounded to three decimals and
// no sign.
func Generate(in GenerateInput) *Generated {
	var numeric []string
	for _, c := range in.Columns {
		if c.Type == ColumnTypeNumber {
			numeric = append(numeric, c.Name)
		}
	}
	out := &Generated{
		DatasetName: in.DatasetName,
		GraphType:   in.GraphType,
		Graph:       RawGraph{Nodes: []RawNode{}, Links: []RawLink{}},
		Insights:    []string{},
	}
	for _, name := range numeric {
		out.Graph.Nodes = append(out.Graph.Nodes, RawNode{ID: name, Group: strPtr(ColumnTypeNumber)})
	}

	series := columnSeries(numeric, in.Rows)
	linked := make(map[string]bool, len(numeric))
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, _ := Pearson(series[i], series[j])
			if math.Abs(r) < generateThreshold {
				continue
			}
			out.Graph.Links = append(out.Graph.Links, RawLink{
				Source: IDEndpoint(numeric[i]),
				Target: IDEndpoint(numeric[j]),
				Value:  math.Round(math.Abs(r)*1000) / 1000,
			})
			linked[numeric[i]] = true
			linked[numeric[j]] = true
		}
	}

	if len(out.Graph.Links) == 0 {
		out.Insights = append(out.Insights,
			fmt.Sprintf("No links with a coefficient above %.1f were found; the measures look independent.", generateThreshold))
	} else {
		strongest := strongestLink(out.Graph.Links)
		out.Insights = append(out.Insights, fmt.Sprintf("Strongest link: %q and %q (correlation %s).",
			strongest.Source.Resolve(), strongest.Target.Resolve(), formatValue(strongest.Value)))
		switch in.GraphType {
		case GraphSocial:
			out.Insights = append(out.Insights, "Read nodes as actors: strongly linked nodes are candidate centers of influence.")
		case GraphGeo:
			out.Insights = append(out.Insights, "Highly correlated measures may point to shared geographic dynamics.")
		}
	}

	var unused []string
	for _, name := range numeric {
		if !linked[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		out.Insights = append(out.Insights,
			fmt.Sprintf("Columns without links: %s. They can be analyzed separately.", strings.Join(unused, ", ")))
	}
	return out
}

// strongestLink picks the highest value; ties keep emission order.
func strongestLink(links []RawLink) RawLink {
	sorted := make([]RawLink, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := Coerce(sorted[i].Value)
		b, _ := Coerce(sorted[j].Value)
		return a > b
	})
	return sorted[0]
}

func formatValue(v any) string {
	f, ok := Coerce(v)
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%g", f)
}
