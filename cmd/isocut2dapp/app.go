package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chazu/isocut2d/pkg/field"
	"github.com/chazu/isocut2d/pkg/levelset"
	"github.com/chazu/isocut2d/pkg/meshgen"
	"github.com/chazu/isocut2d/pkg/meshio"
	"github.com/chazu/isocut2d/pkg/meshmodel"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App is the Wails backend. It exposes methods to the frontend via
// bindings; unlike the woodworking editor this replaces, there is no
// design-graph DSL to evaluate, only a mesh and a field to cut.
type App struct {
	ctx  context.Context
	mesh *meshmodel.Mesh
	vals levelset.Field
	cfg  levelset.Config
}

// RenderMeshData is the JSON-serializable mesh format sent to the frontend.
type RenderMeshData struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	Labels   []int32   `json:"labels"`
}

// RunResult is the full result returned to the frontend after a cut.
type RunResult struct {
	Mesh     RenderMeshData `json:"mesh"`
	Snapped  int            `json:"snapped"`
	Reverted int            `json:"reverted"`
	Splits   int            `json:"splits"`
	Error    string         `json:"error,omitempty"`
}

// FileResult is returned by LoadMesh with the file contents and path.
type FileResult struct {
	Content string `json:"content"`
	Path    string `json:"path"`
}

// NewApp creates a new App with the kernel's default thresholds.
func NewApp() *App {
	return &App{cfg: levelset.DefaultConfig()}
}

// startup is called by Wails on app startup. The context is saved so
// we can call Wails runtime methods later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// meshFileFilter is the dialog filter for mesh+field JSON documents.
var meshFileFilter = runtime.FileFilter{
	DisplayName: "Mesh Files (*.json)",
	Pattern:     "*.json",
}

// LoadMesh shows an open file dialog, loads the chosen mesh+field
// document, and holds it as the app's working mesh.
func (a *App) LoadMesh() (FileResult, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title:   "Open Mesh File",
		Filters: []runtime.FileFilter{meshFileFilter},
	})
	if err != nil {
		return FileResult{}, err
	}
	if path == "" {
		return FileResult{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, err
	}
	defer f.Close()

	mesh, vals, err := meshio.Load(f)
	if err != nil {
		return FileResult{}, fmt.Errorf("loading mesh: %w", err)
	}
	a.mesh, a.vals = mesh, vals

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{Content: string(data), Path: path}, nil
}

// GenerateGrid replaces the working mesh with a generated rectangular
// grid, dropping any previously sampled field.
func (a *App) GenerateGrid(nx, ny int, width, height float64) error {
	mesh, err := meshgen.Grid(nx, ny, width, height)
	if err != nil {
		return err
	}
	a.mesh, a.vals = mesh, nil
	return nil
}

// GenerateDisk replaces the working mesh with a generated disk,
// dropping any previously sampled field.
func (a *App) GenerateDisk(rings, segments int, radius float64) error {
	mesh, err := meshgen.Disk(rings, segments, radius)
	if err != nil {
		return err
	}
	a.mesh, a.vals = mesh, nil
	return nil
}

// SetFieldScript samples a scalar-field expression at the working
// mesh's vertices, replacing whatever field it currently holds.
func (a *App) SetFieldScript(source string) error {
	if a.mesh == nil {
		return fmt.Errorf("no mesh loaded")
	}
	provider, err := field.NewScript(source)
	if err != nil {
		return fmt.Errorf("parsing field script: %w", err)
	}
	vals, err := field.Sample(provider, a.mesh)
	if err != nil {
		return fmt.Errorf("sampling field script: %w", err)
	}
	a.vals = vals
	return nil
}

// RunLevelSet cuts the working mesh along its field's zero level set
// and returns the resulting render mesh plus phase counts.
func (a *App) RunLevelSet() RunResult {
	if a.mesh == nil || a.vals == nil {
		return RunResult{Error: "no mesh and field to run against"}
	}

	result, err := levelset.Run(a.cfg, a.mesh, a.vals)
	if err != nil {
		return RunResult{Error: err.Error()}
	}
	a.vals = result.Field

	rm := meshio.ToRenderMesh(a.mesh)
	return RunResult{
		Mesh: RenderMeshData{
			Vertices: rm.Vertices,
			Indices:  rm.Indices,
			Labels:   rm.Labels,
		},
		Snapped:  result.Snapped,
		Reverted: result.Reverted,
		Splits:   result.Splits,
	}
}

// ExportMesh saves the working mesh and field to path (or shows a save
// dialog if path is empty) as a mesh+field JSON document.
func (a *App) ExportMesh(path string) (string, error) {
	if a.mesh == nil {
		return "", fmt.Errorf("no mesh to export")
	}
	if path == "" {
		var err error
		path, err = runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
			Title:           "Save Mesh File",
			DefaultFilename: "untitled.json",
			Filters:         []runtime.FileFilter{meshFileFilter},
		})
		if err != nil {
			return "", err
		}
		if path == "" {
			return "", nil
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := meshio.Save(f, a.mesh, a.vals); err != nil {
		return "", fmt.Errorf("writing mesh: %w", err)
	}
	return path, nil
}

// SetTitle updates the window title.
func (a *App) SetTitle(title string) {
	runtime.WindowSetTitle(a.ctx, title)
}
