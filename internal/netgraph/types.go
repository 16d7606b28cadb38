// Package netgraph derives relationship graphs from tabular rows and lays
// them out for rendering.
//
// Every function in this package is a pure transformation: inputs are never
// mutated and each call allocates fresh output, so concurrent use from
// independent callers is safe.
package netgraph

import (
	"fmt"
	"strings"
)

// Row is one sample row: column identifier to scalar cell value.
type Row map[string]any

// Column describes a dataset column. Type is "number", "string" or "date".
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ColumnTypeNumber marks columns the builder and generator consider.
const ColumnTypeNumber = "number"

// NodeSize is a radius preset for nodes.
type NodeSize string

const (
	NodeSizeSmall  NodeSize = "small"
	NodeSizeMedium NodeSize = "medium"
	NodeSizeLarge  NodeSize = "large"

	DefaultNodeSize = NodeSizeMedium
)

// Radius returns the preset radius. Unknown presets use the default.
func (s NodeSize) Radius() float64 {
	switch s {
	case NodeSizeSmall:
		return 15
	case NodeSizeLarge:
		return 35
	default:
		return 25
	}
}

// ParseNodeSize accepts small|medium|large, case-insensitively. An empty
// string yields DefaultNodeSize.
func ParseNodeSize(s string) (NodeSize, error) {
	switch NodeSize(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultNodeSize, nil
	case NodeSizeSmall:
		return NodeSizeSmall, nil
	case NodeSizeMedium:
		return NodeSizeMedium, nil
	case NodeSizeLarge:
		return NodeSizeLarge, nil
	}
	return DefaultNodeSize, fmt.Errorf("%w: %q (use small|medium|large)", ErrUnknownNodeSize, s)
}

// LinkType records the sign of a relationship.
type LinkType string

const (
	LinkPositive LinkType = "positive"
	LinkNegative LinkType = "negative"
)

func linkTypeOf(v float64) LinkType {
	if v >= 0 {
		return LinkPositive
	}
	return LinkNegative
}

// Node is a graph vertex keyed by column identifier.
type Node struct {
	ID     string  `json:"id"`
	Radius float64 `json:"radius"`
	Degree int     `json:"degree"`
	Group  *string `json:"group"`
}

// Link connects two node ids. Strength is always within [0,1].
type Link struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Strength float64  `json:"strength"`
	Type     LinkType `json:"type"`
}

// Graph is the canonical node/link representation.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// EmptyGraph returns a graph with empty, non-nil node and link slices.
func EmptyGraph() Graph {
	return Graph{Nodes: []Node{}, Links: []Link{}}
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// PositionedNode is a node with canvas coordinates.
type PositionedNode struct {
	Node
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutMode selects a layout algorithm.
type LayoutMode string

const (
	LayoutForce  LayoutMode = "force"
	LayoutCircle LayoutMode = "circle"
	LayoutGrid   LayoutMode = "grid"
)

// ParseLayoutMode accepts force|circle|grid. An empty string yields force.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch LayoutMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutForce:
		return LayoutForce, nil
	case LayoutCircle:
		return LayoutCircle, nil
	case LayoutGrid:
		return LayoutGrid, nil
	}
	return LayoutForce, fmt.Errorf("%w: %q (use force|circle|grid)", ErrUnknownLayout, s)
}

func strPtr(s string) *string { return &s }
