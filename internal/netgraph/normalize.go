package netgraph

import "math"

// NormalizeOptions controls NormalizeGraph.
type NormalizeOptions struct {
	NodeSize NodeSize
	// SelectedColumns always appear as nodes in the result.
	SelectedColumns []string
}

// NormalizeGraph canonicalizes an externally produced graph.
//
// It returns nil when raw is nil or lacks node or link arrays. Raw nodes
// with an empty id are skipped and the first node for an id wins. Selected
// columns missing from raw are added with the preset radius.
//
// Links resolve both endpoints; a link is dropped when an endpoint is empty
// or names no node of the result. Self-links are kept. The magnitude is
// taken from Value, then Strength, defaulting to 0, and stored as |m|
// clamped into [0,1].
func NormalizeGraph(raw *RawGraph, opt NormalizeOptions) *Graph {
	if raw == nil || raw.Nodes == nil || raw.Links == nil {
		return nil
	}
	radius := opt.NodeSize.Radius()

	g := &Graph{Nodes: []Node{}, Links: []Link{}}
	index := make(map[string]int, len(raw.Nodes)+len(opt.SelectedColumns))
	for _, rn := range raw.Nodes {
		if rn.ID == "" {
			continue
		}
		if _, dup := index[rn.ID]; dup {
			continue
		}
		n := Node{ID: rn.ID, Radius: radius}
		if rn.Radius != nil {
			n.Radius = *rn.Radius
		}
		if rn.Group != nil {
			n.Group = strPtr(*rn.Group)
		}
		index[n.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
	}
	for _, c := range opt.SelectedColumns {
		if c == "" {
			continue
		}
		if _, ok := index[c]; ok {
			continue
		}
		index[c] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{ID: c, Radius: radius})
	}

	for _, rl := range raw.Links {
		src, dst := rl.Source.Resolve(), rl.Target.Resolve()
		if src == "" || dst == "" {
			continue
		}
		if _, ok := index[src]; !ok {
			continue
		}
		if _, ok := index[dst]; !ok {
			continue
		}
		m, ok := linkMagnitude(rl)
		typ := LinkPositive
		if t, isStr := rl.Type.(string); isStr && t == string(LinkNegative) {
			typ = LinkNegative
		} else if ok {
			typ = linkTypeOf(m)
		}
		g.Links = append(g.Links, Link{
			Source:   src,
			Target:   dst,
			Strength: clamp01(math.Abs(m)),
			Type:     typ,
		})
	}
	return g
}

// DanglingLinks counts raw links that NormalizeGraph drops because an
// endpoint is empty or not among the normalized nodes.
func DanglingLinks(raw *RawGraph, g *Graph) int {
	if raw == nil || g == nil {
		return 0
	}
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	var dropped int
	for _, rl := range raw.Links {
		_, okS := ids[rl.Source.Resolve()]
		_, okT := ids[rl.Target.Resolve()]
		if !okS || !okT {
			dropped++
		}
	}
	return dropped
}

// linkMagnitude resolves Value, then Strength. ok is false when neither
// holds a finite number.
func linkMagnitude(rl RawLink) (float64, bool) {
	v := rl.Value
	if v == nil {
		v = rl.Strength
	}
	if v == nil {
		return 0, true
	}
	return Coerce(v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
