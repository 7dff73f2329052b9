package meshio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/isocut2d/pkg/levelset"
	"github.com/chazu/isocut2d/pkg/meshio"
	"github.com/chazu/isocut2d/pkg/meshmodel"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := meshmodel.New()
	m.AllocPoint(0, 0)
	m.AllocPoint(1, 0)
	m.AllocPoint(0, 1)
	m.AllocTriangle(0, 1, 2)
	field := levelset.Field{-1, 1, 1}

	var buf bytes.Buffer
	if err := meshio.Save(&buf, m, field); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, gotField, err := meshio.Load(&buf)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.NumPoints() != 3 {
		t.Errorf("NumPoints() = %d, want 3", got.NumPoints())
	}
	if got.NumTriangles() != 1 {
		t.Errorf("NumTriangles() = %d, want 1", got.NumTriangles())
	}
	if len(gotField) != 3 || gotField[0] != -1 || gotField[1] != 1 || gotField[2] != 1 {
		t.Errorf("field round-trip = %v, want [-1 1 1]", gotField)
	}
}

func TestLoadRejectsMismatchedFieldLength(t *testing.T) {
	r := strings.NewReader(`{"points":[[0,0],[1,0]],"field":[1],"triangles":[]}`)
	if _, _, err := meshio.Load(r); err == nil {
		t.Fatal("expected an error for mismatched points/field length")
	}
}

func TestLoadRejectsOutOfRangeTriangle(t *testing.T) {
	r := strings.NewReader(`{"points":[[0,0],[1,0]],"field":[1,1],"triangles":[[0,1,5]]}`)
	if _, _, err := meshio.Load(r); err == nil {
		t.Fatal("expected an error for an out-of-range point reference")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, _, err := meshio.Load(strings.NewReader("not json")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestToRenderMeshSkipsInvalidatedEntries(t *testing.T) {
	m := meshmodel.New()
	a := m.AllocPoint(0, 0)
	b := m.AllocPoint(1, 0)
	c := m.AllocPoint(0, 1)
	k := m.AllocTriangle(a, b, c)
	m.Triangles[k].Ref = meshmodel.Plus

	// A stray point and a triangle built over it, both invalidated the
	// way split1/split2 retire a parent triangle: left in the arena but
	// marked Valid = false rather than removed, so ToRenderMesh must
	// skip them by that flag, not by absence.
	d := m.AllocPoint(5, 5)
	m.Points[d].Valid = false
	dead := m.AllocTriangle(a, b, c)
	m.Triangles[dead].Valid = false

	rm := meshio.ToRenderMesh(m)
	if rm.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", rm.VertexCount())
	}
	if rm.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", rm.TriangleCount())
	}
	if rm.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if len(rm.Labels) != 1 || rm.Labels[0] != int32(meshmodel.Plus) {
		t.Errorf("Labels = %v, want [%d]", rm.Labels, meshmodel.Plus)
	}
	for i := 0; i < len(rm.Vertices); i += 3 {
		if rm.Vertices[i] == 5 && rm.Vertices[i+1] == 5 {
			t.Errorf("invalidated point (5,5) leaked into Vertices: %v", rm.Vertices)
		}
	}
}

func TestRenderMeshIsEmptyForZeroValue(t *testing.T) {
	var rm meshio.RenderMesh
	if !rm.IsEmpty() {
		t.Error("IsEmpty() = false for zero-value RenderMesh, want true")
	}
}
