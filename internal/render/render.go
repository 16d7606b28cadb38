// Package render draws laid-out correlation scenes as SVG, interactive
// HTML, or JSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts svg|html|json. Empty means svg.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatHTML:
		return FormatHTML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q (use svg|html|json)", ErrUnknownFormat, s)
}

// Ext is the file extension for the format, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Options controls presentation.
type Options struct {
	ShowLabels bool
	Title      string
}

// DefaultOptions shows labels, matching the interactive default.
func DefaultOptions() Options {
	return Options{ShowLabels: true, Title: "Correlation network"}
}

// Palette.
const (
	colorPositive   = "#10B981"
	colorNegative   = "#EF4444"
	colorNodeFrom   = "#06B6D4"
	colorNodeTo     = "#3B82F6"
	colorNodeStroke = "#1E293B"
	colorLabel      = "#1E293B"
	colorMuted      = "#64748B"
	linkOpacity     = 0.7
)

// EmptyMessage is shown when a scene has nothing to draw.
const EmptyMessage = "Not enough data to build a network. Select at least two numeric columns."

func linkColor(t netgraph.LinkType) string {
	if t == netgraph.LinkNegative {
		return colorNegative
	}
	return colorPositive
}

func linkWidth(strength float64) float64 {
	return max(strength*4, 1)
}

// Write renders scene in the given format.
func Write(w io.Writer, f Format, scene netgraph.Scene, opt Options) error {
	switch f {
	case FormatSVG:
		return SVG(w, scene, opt)
	case FormatHTML:
		return HTML(w, scene, opt)
	case FormatJSON:
		return JSON(w, scene)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// JSON writes the scene as indented JSON.
func JSON(w io.Writer, scene netgraph.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scene); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}
