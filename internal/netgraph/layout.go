package netgraph

import "math"

// Layout positions nodes on a width x height canvas. The result keeps the
// order and attributes of nodes and only adds coordinates. All modes are
// deterministic; unknown modes fall back to LayoutForce.
//
//   - grid: ceil(sqrt(n)) columns, cells of width/(cols+1) by height/(rows+1),
//     node k at column k%cols+1, row k/cols+1.
//   - circle: even angles 2πk/n on a circle of radius min(w,h)/2.5 around the
//     canvas center.
//   - force: circle angles, with the distance scaled by
//     0.4+0.6(1-degree/(maxDegree+1)) so well-connected nodes sit closer to
//     the center. This is a radial approximation, not a simulation.
func Layout(nodes []Node, mode LayoutMode, width, height float64) []PositionedNode {
	out := make([]PositionedNode, len(nodes))
	if len(nodes) == 0 {
		return out
	}
	for i, n := range nodes {
		if n.Group != nil {
			n.Group = strPtr(*n.Group)
		}
		out[i].Node = n
	}
	switch mode {
	case LayoutGrid:
		gridLayout(out, width, height)
	case LayoutCircle:
		radialLayout(out, width, height, func(Node) float64 { return 1 })
	default:
		maxDegree := 0
		for _, n := range nodes {
			maxDegree = max(maxDegree, n.Degree)
		}
		if maxDegree == 0 {
			maxDegree = 1
		}
		radialLayout(out, width, height, func(n Node) float64 {
			return 0.4 + 0.6*(1-float64(n.Degree)/float64(maxDegree+1))
		})
	}
	return out
}

func gridLayout(out []PositionedNode, width, height float64) {
	n := len(out)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	cellW := width / float64(cols+1)
	cellH := height / float64(rows+1)
	for k := range out {
		row := k/cols + 1
		col := k%cols + 1
		out[k].X = float64(col) * cellW
		out[k].Y = float64(row) * cellH
	}
}

func radialLayout(out []PositionedNode, width, height float64, scale func(Node) float64) {
	n := float64(len(out))
	cx, cy := width/2, height/2
	r := math.Min(width, height) / 2.5
	for k := range out {
		angle := float64(k) / n * 2 * math.Pi
		d := r * scale(out[k].Node)
		out[k].X = cx + math.Cos(angle)*d
		out[k].Y = cy + math.Sin(angle)*d
	}
}
