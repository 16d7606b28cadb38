package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
)

// Column types assigned by inference.
const (
	TypeNumber = netgraph.ColumnTypeNumber
	TypeDate   = "date"
	TypeString = "string"
)

// Options controls dataset loading.
type Options struct {
	// MaxRows caps the rows kept as samples; 0 means unlimited. Rows past
	// the cap are still counted in Dataset.Total.
	MaxRows int
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// XLSX sheet selection. SheetName wins over the 1-based SheetIndex.
	SheetName  string
	SheetIndex int
}

// DefaultOptions keeps the first 50 rows, the size of the preview the
// network builder works from.
func DefaultOptions() Options {
	return Options{MaxRows: 50, SheetIndex: 1}
}

// Dataset is a loaded table: column metadata plus sample rows whose cells
// are the raw strings from the file.
type Dataset struct {
	Name     string
	Path     string
	Columns  []netgraph.Column
	Rows     []netgraph.Row
	Total    int
	Warnings []string
}

// Load reads a CSV, TSV, or XLSX file by extension.
func Load(path string, opt Options) (*Dataset, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(path, opt)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".txt"):
		return LoadCSV(path, opt)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// NumericColumns returns the names of number-typed columns in file order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.Columns {
		if c.Type == TypeNumber {
			out = append(out, c.Name)
		}
	}
	return out
}

// Column looks up a column by exact name.
func (d *Dataset) Column(name string) (netgraph.Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return netgraph.Column{}, false
}

// CheckColumns reports the first name that is not a column of d.
func (d *Dataset) CheckColumns(names []string) error {
	for _, n := range names {
		if _, ok := d.Column(n); !ok {
			return fmt.Errorf("%w: %q in %s", ErrUnknownColumn, n, d.Name)
		}
	}
	return nil
}

// builder accumulates records from any tabular reader.
type builder struct {
	ds     *Dataset
	header []string
	limit  int
}

func newBuilder(path string, header []string, opt Options) *builder {
	limit := opt.MaxRows
	if limit <= 0 {
		limit = int(^uint(0) >> 1)
	}
	return &builder{
		ds:     &Dataset{Name: filepath.Base(path), Path: path, Rows: []netgraph.Row{}},
		header: uniqueHeader(header),
		limit:  limit,
	}
}

func (b *builder) add(rec []string) {
	b.ds.Total++
	if len(b.ds.Rows) >= b.limit {
		return
	}
	row := make(netgraph.Row, len(b.header))
	for i, name := range b.header {
		if i < len(rec) {
			row[name] = rec[i]
		} else {
			row[name] = ""
		}
	}
	b.ds.Rows = append(b.ds.Rows, row)
}

func (b *builder) finish() *Dataset {
	ds := b.ds
	ds.Columns = make([]netgraph.Column, len(b.header))
	for i, name := range b.header {
		ds.Columns[i] = netgraph.Column{Name: name, Type: inferType(name, ds.Rows)}
	}
	if kept := len(ds.Rows); kept < ds.Total {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("kept only %d/%d rows due to MaxRows", kept, ds.Total))
	}
	return ds
}

// uniqueHeader trims names, fills blanks as column_N, and suffixes repeats
// with the first free name_N. Names written in the header are never taken by
// a suffix, even when they appear later.
func uniqueHeader(header []string) []string {
	names := make([]string, len(header))
	written := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		names[i] = name
		written[name] = true
	}
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	for i, name := range names {
		if used[name] {
			for n := 2; ; n++ {
				c := fmt.Sprintf("%s_%d", name, n)
				if !used[c] && !written[c] {
					name = c
					break
				}
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// inferType picks number when every non-blank cell coerces, date when every
// non-blank cell parses as a date, string otherwise. A column with no values
// is a string column.
func inferType(name string, rows []netgraph.Row) string {
	var filled, nums, dates int
	for _, r := range rows {
		s, _ := r[name].(string)
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		filled++
		if _, ok := netgraph.Coerce(s); ok {
			nums++
			continue
		}
		if _, ok := parseTimeMaybe(s); ok {
			dates++
		}
	}
	switch {
	case filled == 0:
		return TypeString
	case nums == filled:
		return TypeNumber
	case dates == filled:
		return TypeDate
	}
	return TypeString
}

var dateLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

func parseTimeMaybe(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
