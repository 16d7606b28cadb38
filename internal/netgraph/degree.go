package netgraph

// AttachDegrees returns copies of nodes with Degree set to the number of
// incident links. Every link adds one to its source and one to its target,
// so a self-link adds two to its node. Nodes without links get 0.
func AttachDegrees(nodes []Node, links []Link) []Node {
	counts := make(map[string]int, len(nodes))
	for _, l := range links {
		counts[l.Source]++
		counts[l.Target]++
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Degree = counts[n.ID]
		if n.Group != nil {
			n.Group = strPtr(*n.Group)
		}
		out[i] = n
	}
	return out
}
