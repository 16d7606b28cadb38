// Package workspace persists registered datasets and saved network
// visualizations in a workspace.json file.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/corrgraph/internal/dataset"
	"github.com/KaramelBytes/corrgraph/internal/utils"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrNetworkNotFound = errors.New("network not found")
	ErrDuplicateName   = errors.New("dataset name already registered")
)

// Workspace is a corrgraph workspace persisted on disk.
type Workspace struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Datasets    map[string]*Dataset      `json:"datasets"`
	Networks    map[string]*SavedNetwork `json:"networks"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`

	rootDir string
}

// NewWorkspace constructs an in-memory workspace. Call Save to persist.
func NewWorkspace(name, description, rootDir string) *Workspace {
	now := time.Now()
	return &Workspace{
		Name:        name,
		Description: description,
		Datasets:    make(map[string]*Dataset),
		Networks:    make(map[string]*SavedNetwork),
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadWorkspace loads workspace.json from dir.
func LoadWorkspace(dir string) (*Workspace, error) {
	path := filepath.Join(dir, utils.WorkspaceFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("workspace not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read workspace: %w", err)
	}
	var w Workspace
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	if w.Datasets == nil {
		w.Datasets = make(map[string]*Dataset)
	}
	if w.Networks == nil {
		w.Networks = make(map[string]*SavedNetwork)
	}
	w.rootDir = dir
	return &w, nil
}

// RootDir returns the on-disk workspace directory.
func (w *Workspace) RootDir() string { return w.rootDir }

// Save writes workspace.json atomically.
func (w *Workspace) Save() error {
	if w.rootDir == "" {
		return errors.New("workspace root directory not set")
	}
	if err := utils.EnsureDir(w.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	w.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(w)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(w.rootDir, utils.WorkspaceFileName), data)
}

// AddDataset loads the file to record its schema and registers it.
// Relative paths are stored relative to the workspace root when possible.
func (w *Workspace) AddDataset(path, description string, opt dataset.Options) (*Dataset, error) {
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	name := ds.Name
	if _, err := w.DatasetByName(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	rec := &Dataset{
		ID:          uuid.NewString(),
		Name:        name,
		Path:        w.relPath(path),
		Description: strings.TrimSpace(description),
		Columns:     ds.Columns,
		Rows:        ds.Total,
		SheetName:   opt.SheetName,
		SheetIndex:  opt.SheetIndex,
		AddedAt:     time.Now(),
	}
	w.Datasets[rec.ID] = rec
	w.UpdatedAt = time.Now()
	return rec, nil
}

func (w *Workspace) relPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if w.rootDir == "" {
		return abs
	}
	root, err := filepath.Abs(w.rootDir)
	if err != nil {
		return abs
	}
	if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return abs
}

// DatasetPath resolves a dataset's stored path against the workspace root.
func (w *Workspace) DatasetPath(d *Dataset) string {
	if filepath.IsAbs(d.Path) || w.rootDir == "" {
		return d.Path
	}
	return filepath.Join(w.rootDir, d.Path)
}

// DatasetByName finds a dataset by id, or by name case-insensitively.
func (w *Workspace) DatasetByName(ref string) (*Dataset, error) {
	if d, ok := w.Datasets[ref]; ok {
		return d, nil
	}
	for _, d := range w.Datasets {
		if strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, ref)
}

// RemoveDataset drops a dataset and every network saved against it.
func (w *Workspace) RemoveDataset(ref string) error {
	d, err := w.DatasetByName(ref)
	if err != nil {
		return err
	}
	delete(w.Datasets, d.ID)
	for id, n := range w.Networks {
		if n.Config.DatasetID == d.ID {
			delete(w.Networks, id)
		}
	}
	w.UpdatedAt = time.Now()
	return nil
}

// ListDatasets returns datasets sorted by name.
func (w *Workspace) ListDatasets() []*Dataset {
	out := make([]*Dataset, 0, len(w.Datasets))
	for _, d := range w.Datasets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListNetworks returns saved networks, newest first.
func (w *Workspace) ListNetworks() []*SavedNetwork {
	out := make([]*SavedNetwork, 0, len(w.Networks))
	for _, n := range w.Networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
