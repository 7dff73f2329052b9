package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/isocut2d/pkg/levelset"
)

func TestGenerateGridThenRunLevelSet(t *testing.T) {
	a := NewApp()
	if err := a.GenerateGrid(3, 3, 1, 1); err != nil {
		t.Fatalf("GenerateGrid() error = %v", err)
	}
	if err := a.SetFieldScript("(- (x) 0.5)"); err != nil {
		t.Fatalf("SetFieldScript() error = %v", err)
	}

	result := a.RunLevelSet()
	if result.Error != "" {
		t.Fatalf("RunLevelSet() error = %s", result.Error)
	}
	if result.Splits == 0 {
		t.Error("Splits = 0, want at least one crossing for a field that changes sign across the grid")
	}
	if len(result.Mesh.Vertices) == 0 {
		t.Error("result mesh has no vertices")
	}
	if len(result.Mesh.Labels)*3 != len(result.Mesh.Indices) {
		t.Errorf("Labels count = %d, Indices imply %d triangles", len(result.Mesh.Labels), len(result.Mesh.Indices)/3)
	}
}

func TestRunLevelSetWithoutMeshReturnsError(t *testing.T) {
	a := NewApp()
	result := a.RunLevelSet()
	if result.Error == "" {
		t.Fatal("expected an error when no mesh has been loaded")
	}
}

func TestSetFieldScriptWithoutMeshReturnsError(t *testing.T) {
	a := NewApp()
	if err := a.SetFieldScript("1"); err == nil {
		t.Fatal("expected an error when no mesh has been loaded")
	}
}

func TestExportMeshWithoutMeshReturnsError(t *testing.T) {
	a := NewApp()
	if _, err := a.ExportMesh(filepath.Join(t.TempDir(), "out.json")); err == nil {
		t.Fatal("expected an error when there is no mesh to export")
	}
}

func TestExportMeshWritesDocument(t *testing.T) {
	a := NewApp()
	if err := a.GenerateDisk(2, 8, 1); err != nil {
		t.Fatalf("GenerateDisk() error = %v", err)
	}
	if err := a.SetFieldScript("1"); err != nil {
		t.Fatalf("SetFieldScript() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.json")
	path, err := a.ExportMesh(out)
	if err != nil {
		t.Fatalf("ExportMesh() error = %v", err)
	}
	if path != out {
		t.Errorf("ExportMesh() path = %s, want %s", path, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if !bytes.Contains(data, []byte(`"triangles"`)) {
		t.Errorf("exported file does not look like a mesh document: %s", data)
	}
}

func TestGenerateGridRejectsBadInput(t *testing.T) {
	a := NewApp()
	if err := a.GenerateGrid(0, 1, 1, 1); err == nil {
		t.Fatal("expected an error for nx=0")
	}
}

func TestGenerateDiskRejectsBadInput(t *testing.T) {
	a := NewApp()
	if err := a.GenerateDisk(1, 2, 1); err == nil {
		t.Fatal("expected an error for too few segments")
	}
}

func TestNewAppUsesDefaultConfig(t *testing.T) {
	a := NewApp()
	if a.cfg != levelset.DefaultConfig() {
		t.Errorf("NewApp() cfg = %+v, want DefaultConfig()", a.cfg)
	}
}
