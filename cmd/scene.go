package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/KaramelBytes/corrgraph/internal/dataset"
	"github.com/KaramelBytes/corrgraph/internal/netgraph"
	"github.com/KaramelBytes/corrgraph/internal/render"
	"github.com/KaramelBytes/corrgraph/internal/utils"
	"github.com/KaramelBytes/corrgraph/internal/workspace"
)

// sourceFlags select a dataset: a file path, or a dataset name inside
// --workspace.
type sourceFlags struct {
	workspace string
	sheet     string
	sheetIdx  int
	delimiter string
	maxRows   int
}

func (f *sourceFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.workspace, "workspace", "w", "", "resolve <dataset> by name in this workspace")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX sheet name")
	fs.IntVar(&f.sheetIdx, "sheet-index", 0, "XLSX 1-based sheet index")
	fs.StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab'|'|' (default by extension)")
	fs.IntVar(&f.maxRows, "max-rows", 0, "rows to sample (default from config sample_rows)")
}

// loadedDataset is a dataset read from disk plus its workspace record, if any.
type loadedDataset struct {
	*dataset.Dataset
	ws     *workspace.Workspace
	record *workspace.Dataset
}

func datasetOptions(maxRows int, sheet string, sheetIdx int) dataset.Options {
	opt := dataset.DefaultOptions()
	opt.MaxRows = settings().SampleRows
	if maxRows > 0 {
		opt.MaxRows = maxRows
	}
	opt.SheetName = sheet
	if sheetIdx > 0 {
		opt.SheetIndex = sheetIdx
	}
	return opt
}

func (f *sourceFlags) options() (dataset.Options, error) {
	opt := datasetOptions(f.maxRows, f.sheet, f.sheetIdx)
	delim, err := dataset.ParseDelimiter(f.delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = delim
	return opt, nil
}

// load reads ref as a file path, or as a dataset name when --workspace is set.
func (f *sourceFlags) load(ref string) (*loadedDataset, error) {
	if f.workspace != "" {
		w, err := loadWorkspaceByName(f.workspace)
		if err != nil {
			return nil, err
		}
		return f.loadFrom(w, ref)
	}
	opt, err := f.options()
	if err != nil {
		return nil, err
	}
	return readDataset(ref, opt, &loadedDataset{})
}

// loadFrom reads the dataset registered as ref in w. Sheet flags override the
// sheet recorded at registration.
func (f *sourceFlags) loadFrom(w *workspace.Workspace, ref string) (*loadedDataset, error) {
	opt, err := f.options()
	if err != nil {
		return nil, err
	}
	rec, err := w.DatasetByName(ref)
	if err != nil {
		return nil, err
	}
	if opt.SheetName == "" && f.sheetIdx == 0 {
		opt.SheetName = rec.SheetName
		if rec.SheetIndex > 0 {
			opt.SheetIndex = rec.SheetIndex
		}
	}
	return readDataset(w.DatasetPath(rec), opt, &loadedDataset{ws: w, record: rec})
}

func readDataset(path string, opt dataset.Options, out *loadedDataset) (*loadedDataset, error) {
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	out.Dataset = ds
	log.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", ds.Total),
		zap.Int("sampled", len(ds.Rows)),
		zap.Strings("numeric", ds.NumericColumns()))
	for _, w := range ds.Warnings {
		log.Warn("dataset", zap.String("name", ds.Name), zap.String("warning", w))
	}
	return out, nil
}

// sceneFlags carry presentation options. Unset flags fall back to config.
type sceneFlags struct {
	columns   []string
	threshold float64
	nodeSize  string
	layout    string
	width     int
	height    int
	labels    bool
	format    string
	output    string
	title     string
}

func (f *sceneFlags) register(fs *pflag.FlagSet, selection bool) {
	if selection {
		fs.StringSliceVarP(&f.columns, "columns", "c", nil, "columns to include (default: all numeric columns)")
		fs.Float64VarP(&f.threshold, "threshold", "t", 0, "minimum |r| for a link, 0..1 (default from config)")
		fs.StringVar(&f.nodeSize, "node-size", "", "node size: small|medium|large")
		fs.StringVar(&f.layout, "layout", "", "layout: force|circle|grid")
		fs.StringVar(&f.title, "title", "", "chart title")
	}
	fs.IntVar(&f.width, "width", 0, "canvas width in px")
	fs.IntVar(&f.height, "height", 0, "canvas height in px")
	fs.BoolVar(&f.labels, "labels", true, "draw node labels")
	fs.StringVarP(&f.format, "format", "f", "", "output format: svg|html|json")
	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
}

// sceneSettings is the merged view of flags and config.
type sceneSettings struct {
	columns   []string
	threshold float64
	nodeSize  netgraph.NodeSize
	layout    netgraph.LayoutMode
	width     float64
	height    float64
	format    render.Format
	render    render.Options
}

func (f *sceneFlags) resolve(cmd *cobra.Command) (sceneSettings, error) {
	s := settings()
	changed := cmd.Flags().Changed
	out := sceneSettings{
		columns:   f.columns,
		threshold: s.CorrelationThreshold,
		width:     float64(s.CanvasWidth),
		height:    float64(s.CanvasHeight),
		render:    render.Options{ShowLabels: s.ShowLabels, Title: f.title},
	}
	if changed("threshold") {
		if f.threshold < 0 || f.threshold > 1 {
			return out, fmt.Errorf("--threshold must be within 0..1, got %v", f.threshold)
		}
		out.threshold = f.threshold
	}
	nodeSize := s.NodeSize
	if changed("node-size") {
		nodeSize = f.nodeSize
	}
	ns, err := netgraph.ParseNodeSize(nodeSize)
	if err != nil {
		return out, err
	}
	out.nodeSize = ns
	layout := s.Layout
	if changed("layout") {
		layout = f.layout
	}
	if out.layout, err = netgraph.ParseLayoutMode(layout); err != nil {
		return out, err
	}
	if changed("width") {
		out.width = float64(f.width)
	}
	if changed("height") {
		out.height = float64(f.height)
	}
	if changed("labels") {
		out.render.ShowLabels = f.labels
	}
	format := s.OutputFormat
	if changed("format") {
		format = f.format
	}
	if out.format, err = render.ParseFormat(format); err != nil {
		return out, err
	}
	if out.render.Title == "" {
		out.render.Title = render.DefaultOptions().Title
	}
	return out, nil
}

func (s sceneSettings) input(raw *netgraph.RawGraph, rows []netgraph.Row) netgraph.SceneInput {
	return netgraph.SceneInput{
		Raw:                  raw,
		Rows:                 rows,
		SelectedColumns:      s.columns,
		NodeSize:             s.nodeSize,
		CorrelationThreshold: s.threshold,
		Layout:               s.layout,
		Width:                s.width,
		Height:               s.height,
	}
}

// emitScene renders scene to the output file or stdout.
func emitScene(cmd *cobra.Command, scene netgraph.Scene, s sceneSettings, output string) error {
	log.Info("scene prepared",
		zap.String("source", string(scene.Source)),
		zap.Int("nodes", len(scene.Nodes)),
		zap.Int("links", len(scene.Links)),
		zap.String("layout", string(s.layout)))
	if scene.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: "+render.EmptyMessage)
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, s.format, scene, s.render); err != nil {
		return err
	}
	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if filepath.Ext(output) == "" {
		output += s.format.Ext()
	}
	if err := utils.WriteOutput(output, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s network (%d nodes, %d links) to %s\n", s.format, len(scene.Nodes), len(scene.Links), output)
	return nil
}

func readRawGraph(path string) (*netgraph.RawGraph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph: %w", err)
	}
	return netgraph.DecodeRawGraph(b)
}

// selectColumns defaults to the dataset's numeric columns and rejects names
// the dataset does not have.
func selectColumns(ds *dataset.Dataset, cols []string) ([]string, error) {
	if len(cols) == 0 {
		return ds.NumericColumns(), nil
	}
	if err := ds.CheckColumns(cols); err != nil {
		return nil, err
	}
	return cols, nil
}
