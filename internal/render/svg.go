package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

// svgWriter remembers the first write error so drawing code stays linear.
type svgWriter struct {
	w   *bufio.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// SVG draws scene as a standalone SVG document. Links go under nodes; links
// whose endpoints are not in the scene are skipped.
func SVG(w io.Writer, scene netgraph.Scene, opt Options) error {
	sw := &svgWriter{w: bufio.NewWriter(w)}
	width, height := scene.Width, scene.Height
	if width <= 0 {
		width = netgraph.DefaultCanvasWidth
	}
	if height <= 0 {
		height = netgraph.DefaultCanvasHeight
	}

	sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	if opt.Title != "" {
		sw.printf("  <title>%s</title>\n", html.EscapeString(opt.Title))
	}

	if scene.Empty() {
		sw.printf(`  <text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="14">%s</text>`+"\n",
			num(width/2), num(height/2), colorMuted, html.EscapeString(EmptyMessage))
		sw.printf("</svg>\n")
		return sw.flush()
	}

	sw.printf("  <defs>\n")
	sw.printf(`    <linearGradient id="node-fill" x1="0%%" y1="0%%" x2="100%%" y2="100%%">` + "\n")
	sw.printf(`      <stop offset="0%%" stop-color="%s"/>`+"\n", colorNodeFrom)
	sw.printf(`      <stop offset="100%%" stop-color="%s"/>`+"\n", colorNodeTo)
	sw.printf("    </linearGradient>\n  </defs>\n")

	sw.printf(`  <g class="links">` + "\n")
	for _, l := range scene.Links {
		s, ok1 := scene.NodeByID(l.Source)
		t, ok2 := scene.NodeByID(l.Target)
		if !ok1 || !ok2 {
			continue
		}
		sw.printf(`    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-opacity="%s"><title>%s to %s: %s</title></line>`+"\n",
			num(s.X), num(s.Y), num(t.X), num(t.Y),
			linkColor(l.Type), num(linkWidth(l.Strength)), num(linkOpacity),
			html.EscapeString(l.Source), html.EscapeString(l.Target), num(l.Strength))
	}
	sw.printf("  </g>\n")

	sw.printf(`  <g class="nodes">` + "\n")
	for _, n := range scene.Nodes {
		sw.printf(`    <circle cx="%s" cy="%s" r="%s" fill="url(#node-fill)" stroke="%s" stroke-width="2"><title>%s (degree %d)</title></circle>`+"\n",
			num(n.X), num(n.Y), num(n.Radius), colorNodeStroke, html.EscapeString(n.ID), n.Degree)
		if opt.ShowLabels {
			sw.printf(`    <text x="%s" y="%s" text-anchor="middle" fill="%s" font-size="12" font-weight="600">%s</text>`+"\n",
				num(n.X), num(n.Y+n.Radius+14), colorLabel, html.EscapeString(n.ID))
		}
	}
	sw.printf("  </g>\n")

	writeLegend(sw)
	sw.printf("</svg>\n")
	return sw.flush()
}

func writeLegend(sw *svgWriter) {
	sw.printf(`  <g class="legend" font-size="11" fill="%s">`+"\n", colorLabel)
	for i, e := range []struct {
		label, color string
	}{
		{"Positive correlation", colorPositive},
		{"Negative correlation", colorNegative},
	} {
		y := 16 + i*16
		sw.printf(`    <line x1="10" y1="%d" x2="30" y2="%d" stroke="%s" stroke-width="3"/>`+"\n", y, y, e.color)
		sw.printf(`    <text x="36" y="%d" dominant-baseline="middle">%s</text>`+"\n", y, e.label)
	}
	sw.printf("  </g>\n")
}

func (s *svgWriter) flush() error {
	if s.err != nil {
		return fmt.Errorf("write svg: %w", s.err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// num formats coordinates compactly: at most two decimals, no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
