package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

// Summary describes a dataset's columns and the correlations between the
// selected numeric columns.
type Summary struct {
	Name      string          `json:"name"`
	Rows      int             `json:"rows"`
	Sampled   int             `json:"sampled"`
	Columns   []ColumnSummary `json:"columns"`
	Corr      *CorrMatrix     `json:"correlations,omitempty"`
	Threshold float64         `json:"threshold"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// ColumnSummary holds per-column counts over the sampled rows. Min, Max and
// Mean are set for number columns only.
type ColumnSummary struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	NonNull int      `json:"non_null"`
	Missing int      `json:"missing"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
}

// CorrMatrix is a symmetric Pearson matrix with a unit diagonal.
type CorrMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Pair is one off-diagonal matrix entry.
type Pair struct {
	A, B string
	R    float64
}

// Describe summarizes ds. cols picks the matrix columns; empty means every
// numeric column. threshold marks the pairs a network build would link.
func Describe(ds *Dataset, cols []string, threshold float64) *Summary {
	if len(cols) == 0 {
		cols = ds.NumericColumns()
	}
	s := &Summary{
		Name:      ds.Name,
		Rows:      ds.Total,
		Sampled:   len(ds.Rows),
		Threshold: threshold,
		Warnings:  ds.Warnings,
	}
	for _, c := range ds.Columns {
		s.Columns = append(s.Columns, summarizeColumn(c, ds.Rows))
	}
	if len(cols) >= 2 {
		s.Corr = &CorrMatrix{Columns: cols, Values: netgraph.CorrelationMatrix(cols, ds.Rows)}
	}
	return s
}

func summarizeColumn(c netgraph.Column, rows []netgraph.Row) ColumnSummary {
	cs := ColumnSummary{Name: c.Name, Type: c.Type}
	var sum float64
	var n int
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		v := r[c.Name]
		if s, ok := v.(string); v == nil || ok && strings.TrimSpace(s) == "" {
			cs.Missing++
			continue
		}
		cs.NonNull++
		if c.Type != TypeNumber {
			continue
		}
		if f, ok := netgraph.Coerce(v); ok {
			sum += f
			n++
			lo, hi = min(lo, f), max(hi, f)
		}
	}
	if n > 0 {
		mean := sum / float64(n)
		cs.Min, cs.Max, cs.Mean = &lo, &hi, &mean
	}
	return cs
}

// Pairs lists matrix entries by descending |r|, ties by name.
func (m *CorrMatrix) Pairs() []Pair {
	if m == nil {
		return nil
	}
	var out []Pair
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			out = append(out, Pair{A: m.Columns[i], B: m.Columns[j], R: m.Values[i][j]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].R), math.Abs(out[j].R)
		if ai == aj {
			return out[i].A+out[i].B < out[j].A+out[j].B
		}
		return ai > aj
	})
	return out
}

// Markdown renders the summary in the sectioned text layout used by the CLI.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	if s.Sampled < s.Rows {
		b.WriteString(fmt.Sprintf("Rows: %d (sampled %d)\n", s.Rows, s.Sampled))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", s.Rows))
	}
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(s.Columns)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range s.Columns {
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %d)", safeCell(c.Name), c.Type, c.NonNull, c.Missing))
		if c.Mean != nil {
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g", *c.Min, *c.Max, *c.Mean))
		}
		b.WriteString("\n")
	}

	if s.Corr != nil {
		b.WriteString("\n[CORRELATION MATRIX]\n| |")
		for _, c := range s.Corr.Columns {
			b.WriteString(" " + safeCell(c) + " |")
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---|", len(s.Corr.Columns)))
		b.WriteString("\n")
		for i, c := range s.Corr.Columns {
			b.WriteString("| " + safeCell(c) + " |")
			for _, v := range s.Corr.Values[i] {
				b.WriteString(fmt.Sprintf(" %.3f |", v))
			}
			b.WriteString("\n")
		}

		b.WriteString(fmt.Sprintf("\n[STRONGEST PAIRS] (* = |r| >= %.2f)\n", s.Threshold))
		pairs := s.Corr.Pairs()
		if len(pairs) > 10 {
			pairs = pairs[:10]
		}
		for _, p := range pairs {
			mark := ""
			if math.Abs(p.R) >= s.Threshold {
				mark = " *"
			}
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f%s\n", p.A, p.B, p.R, mark))
		}
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range s.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

func safeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
