package workspace

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/corrgraph/internal/netgraph"
	"github.com/KaramelBytes/corrgraph/internal/utils"
)

// Dataset is a registered table file. Rows is the total data row count at
// registration time.
type Dataset struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Columns     []netgraph.Column `json:"columns"`
	Rows        int               `json:"rows"`
	SheetName   string            `json:"sheet_name,omitempty"`
	SheetIndex  int               `json:"sheet_index,omitempty"`
	AddedAt     time.Time         `json:"added_at"`
}

// NumericColumns returns the number-typed columns in file order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.Columns {
		if c.Type == netgraph.ColumnTypeNumber {
			out = append(out, c.Name)
		}
	}
	return out
}

// NetworkConfig is the presentation and selection state of a visualization.
type NetworkConfig struct {
	Title                string   `json:"title" validate:"required,max=200"`
	DatasetID            string   `json:"datasetId" validate:"required"`
	GraphType            string   `json:"graphType" validate:"oneof=general social geo"`
	NodeSize             string   `json:"nodeSize" validate:"oneof=small medium large"`
	Layout               string   `json:"layout" validate:"oneof=force circle grid"`
	ShowLabels           bool     `json:"showLabels"`
	CorrelationThreshold float64  `json:"correlationThreshold" validate:"gte=0,lte=1"`
	SelectedColumns      []string `json:"selectedColumns" validate:"dive,required"`
}

// DefaultNetworkConfig fills presentation defaults for a dataset.
func DefaultNetworkConfig(title, datasetID string) NetworkConfig {
	return NetworkConfig{
		Title:                title,
		DatasetID:            datasetID,
		GraphType:            string(netgraph.GraphGeneral),
		NodeSize:             string(netgraph.DefaultNodeSize),
		Layout:               string(netgraph.LayoutForce),
		ShowLabels:           true,
		CorrelationThreshold: netgraph.DefaultCorrelationThreshold,
		SelectedColumns:      []string{},
	}
}

// Validate checks field constraints.
func (c NetworkConfig) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("network config: %w", err)
	}
	return nil
}

// SavedNetwork is a stored visualization. Graph and Insights are set when
// the network came from the generator.
type SavedNetwork struct {
	ID        string             `json:"id"`
	Config    NetworkConfig      `json:"config"`
	Graph     *netgraph.RawGraph `json:"graph,omitempty"`
	Insights  []string           `json:"insights,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// SceneInput maps the stored configuration onto the engine's input. rows
// come from the dataset file.
func (n *SavedNetwork) SceneInput(rows []netgraph.Row, width, height float64) netgraph.SceneInput {
	return netgraph.SceneInput{
		Raw:                  n.Graph,
		Rows:                 rows,
		SelectedColumns:      n.Config.SelectedColumns,
		NodeSize:             netgraph.NodeSize(n.Config.NodeSize),
		CorrelationThreshold: n.Config.CorrelationThreshold,
		Layout:               netgraph.LayoutMode(n.Config.Layout),
		Width:                width,
		Height:               height,
	}
}

// SaveNetwork validates cfg and stores a new visualization.
func (w *Workspace) SaveNetwork(cfg NetworkConfig, graph *netgraph.RawGraph, insights []string) (*SavedNetwork, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := w.Datasets[cfg.DatasetID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, cfg.DatasetID)
	}
	n := &SavedNetwork{
		ID:        uuid.NewString(),
		Config:    cfg,
		Graph:     graph,
		Insights:  insights,
		CreatedAt: time.Now(),
	}
	w.Networks[n.ID] = n
	w.UpdatedAt = time.Now()
	return n, nil
}

// Network returns a saved network by id or unique id prefix.
func (w *Workspace) Network(ref string) (*SavedNetwork, error) {
	if n, ok := w.Networks[ref]; ok {
		return n, nil
	}
	var found *SavedNetwork
	for id, n := range w.Networks {
		if len(ref) >= 4 && len(id) > len(ref) && id[:len(ref)] == ref {
			if found != nil {
				return nil, fmt.Errorf("ambiguous network id prefix: %s", ref)
			}
			found = n
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNetworkNotFound, ref)
	}
	return found, nil
}

// DeleteNetwork removes a saved network.
func (w *Workspace) DeleteNetwork(ref string) error {
	n, err := w.Network(ref)
	if err != nil {
		return err
	}
	delete(w.Networks, n.ID)
	w.UpdatedAt = time.Now()
	return nil
}
