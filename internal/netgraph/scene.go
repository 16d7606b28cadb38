package netgraph

// Default canvas size used when callers pass a non-positive dimension.
const (
	DefaultCanvasWidth  = 400
	DefaultCanvasHeight = 400
)

// SceneInput selects the graph source and layout for a render pass.
type SceneInput struct {
	// Raw is an externally produced graph. It is used only when it carries
	// at least one node and one link.
	Raw *RawGraph
	// Rows feed the correlation builder when Raw is not usable.
	Rows                 []Row
	SelectedColumns      []string
	NodeSize             NodeSize
	CorrelationThreshold float64
	Layout               LayoutMode
	Width, Height        float64
}

// Source reports where a scene's graph came from.
type Source string

const (
	SourceNone       Source = "none"
	SourceNormalized Source = "normalized"
	SourceBuilt      Source = "built"
)

// Scene is a laid-out graph ready for a renderer.
type Scene struct {
	Source Source           `json:"source"`
	Nodes  []PositionedNode `json:"nodes"`
	Links  []Link           `json:"links"`
	Width  float64          `json:"width"`
	Height float64          `json:"height"`
}

// Prepare resolves the graph for a scene and lays it out. A usable raw graph
// is normalized; otherwise rows build a correlation graph; otherwise the
// scene is empty.
func Prepare(in SceneInput) Scene {
	w, h := in.Width, in.Height
	if w <= 0 {
		w = DefaultCanvasWidth
	}
	if h <= 0 {
		h = DefaultCanvasHeight
	}
	sc := Scene{Source: SourceNone, Nodes: []PositionedNode{}, Links: []Link{}, Width: w, Height: h}

	var g Graph
	switch {
	case in.Raw != nil && len(in.Raw.Nodes) > 0 && len(in.Raw.Links) > 0:
		ng := NormalizeGraph(in.Raw, NormalizeOptions{NodeSize: in.NodeSize, SelectedColumns: in.SelectedColumns})
		if ng == nil {
			return sc
		}
		g = *ng
		sc.Source = SourceNormalized
	case len(in.Rows) > 0:
		g = BuildCorrelationGraph(BuildOptions{
			SelectedColumns:      in.SelectedColumns,
			NodeSize:             in.NodeSize,
			SampleRows:           in.Rows,
			CorrelationThreshold: in.CorrelationThreshold,
		})
		sc.Source = SourceBuilt
	default:
		return sc
	}
	if g.Empty() {
		return sc
	}
	sc.Nodes = Layout(AttachDegrees(g.Nodes, g.Links), in.Layout, w, h)
	sc.Links = append(sc.Links, g.Links...)
	return sc
}

// NodeByID returns the positioned node with the given id.
func (s Scene) NodeByID(id string) (PositionedNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Empty reports whether there is nothing to draw.
func (s Scene) Empty() bool { return len(s.Nodes) == 0 }
