package netgraph

import "math"

// DefaultCorrelationThreshold is the minimum |r| for a builder link.
const DefaultCorrelationThreshold = 0.3

// BuildOptions controls BuildCorrelationGraph.
type BuildOptions struct {
	// SelectedColumns are the node ids, in output order.
	SelectedColumns []string
	NodeSize        NodeSize
	SampleRows      []Row
	// CorrelationThreshold is inclusive; 0 links every pair.
	CorrelationThreshold float64
}

// DefaultBuildOptions returns options with the default threshold and size.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		NodeSize:             DefaultNodeSize,
		CorrelationThreshold: DefaultCorrelationThreshold,
	}
}

// BuildCorrelationGraph creates one node per selected column and a link for
// every column pair whose |r| reaches the threshold. Link order follows the
// nested (i, j>i) iteration over SelectedColumns.
//
// Fewer than two selected columns yields EmptyGraph.
func BuildCorrelationGraph(opt BuildOptions) Graph {
	cols := opt.SelectedColumns
	if len(cols) < 2 {
		return EmptyGraph()
	}
	series := columnSeries(cols, opt.SampleRows)
	radius := opt.NodeSize.Radius()

	g := Graph{Nodes: make([]Node, 0, len(cols)), Links: []Link{}}
	for _, c := range cols {
		g.Nodes = append(g.Nodes, Node{ID: c, Radius: radius})
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			// Series are row-aligned by construction.
			r, _ := Pearson(series[i], series[j])
			if math.Abs(r) < opt.CorrelationThreshold {
				continue
			}
			g.Links = append(g.Links, Link{
				Source:   cols[i],
				Target:   cols[j],
				Strength: math.Abs(r),
				Type:     linkTypeOf(r),
			})
		}
	}
	return g
}

// CorrelationMatrix returns the symmetric matrix of Pearson coefficients for
// the given columns, with 1 on the diagonal. Each column is coerced once.
func CorrelationMatrix(cols []string, rows []Row) [][]float64 {
	series := numericSeries(cols, rows)
	m := make([][]float64, len(cols))
	for i := range m {
		m[i] = make([]float64, len(cols))
		m[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r, _ := PearsonFloats(series[i], series[j])
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}

func columnSeries(cols []string, rows []Row) [][]any {
	out := make([][]any, len(cols))
	for i, c := range cols {
		s := make([]any, len(rows))
		for k, row := range rows {
			if row != nil {
				s[k] = row[c]
			}
		}
		out[i] = s
	}
	return out
}

// numericSeries coerces each column up front; absent values become NaN.
func numericSeries(cols []string, rows []Row) [][]float64 {
	out := make([][]float64, len(cols))
	for i, c := range cols {
		s := make([]float64, len(rows))
		for k, row := range rows {
			s[k] = math.NaN()
			if f, ok := Coerce(row[c]); ok {
				s[k] = f
			}
		}
		out[i] = s
	}
	return out
}
