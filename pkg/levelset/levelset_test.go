package levelset

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// squareMesh builds the unit square split along its diagonal:
//
//	2---3
//	|\  |
//	| \ |
//	|  \|
//	0---1
//
// triangle 0 = (0,1,2), triangle 1 = (1,3,2), sharing edge (1,2). Using
// two triangles (rather than one in total isolation) keeps every
// triangle's count of boundary-or-subdomain-change edges below 3 when
// the field has no interior crossing, matching realistic input shapes
// for the manifold verifier.
func squareMesh() (*meshmodel.Mesh, Field) {
	m := meshmodel.New()
	m.AllocPoint(0, 0) // 0
	m.AllocPoint(1, 0) // 1
	m.AllocPoint(0, 1) // 2
	m.AllocPoint(1, 1) // 3
	m.AllocTriangle(0, 1, 2)
	m.AllocTriangle(1, 3, 2)
	return m, make(Field, 4)
}

// TestSplitPipelineSingleTriangleTwoEdgeCrossing exercises the snap,
// crossing/hash and labelling phases directly (without the manifold
// verifier, which assumes a mesh large enough for every subdomain to
// have at least one same-ref neighbour) against a single triangle with
// vertices A=(0,0) phi=-1, B=(1,0) phi=1, C=(0,1) phi=1: two of its
// edges cross the interface, so it becomes a split-2.
func TestSplitPipelineSingleTriangleTwoEdgeCrossing(t *testing.T) {
	mesh := meshmodel.New()
	mesh.AllocPoint(0, 0) // A = 0
	mesh.AllocPoint(1, 0) // B = 1
	mesh.AllocPoint(0, 1) // C = 2
	mesh.AllocTriangle(0, 1, 2)
	field := Field{-1, 1, 1}

	cfg := DefaultConfig()
	if err := mesh.BuildAdjacency(); err != nil {
		t.Fatalf("BuildAdjacency() error = %v", err)
	}
	ns, nc, err := snap(cfg, mesh, field)
	if err != nil {
		t.Fatalf("snap() error = %v", err)
	}
	if ns != 0 || nc != 0 {
		t.Fatalf("snap() = (%d,%d), want (0,0): no value starts near zero", ns, nc)
	}

	field, splits, err := cutTriangles(cfg, mesh, field)
	if err != nil {
		t.Fatalf("cutTriangles() error = %v", err)
	}
	if splits != 1 {
		t.Fatalf("splits = %d, want 1", splits)
	}
	if len(field) != 5 {
		t.Fatalf("len(field) = %d, want 5 (3 original + 2 crossing points)", len(field))
	}

	for _, want := range [][2]float64{{0, 0.5}, {0.5, 0}} {
		ok := false
		for id := 3; id < mesh.NumPoints(); id++ {
			p := mesh.Points[id]
			if math.Abs(p.X-want[0]) < 1e-9 && math.Abs(p.Y-want[1]) < 1e-9 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("expected a crossing point at (%g,%g), none found", want[0], want[1])
		}
	}

	if err := label(mesh, field); err != nil {
		t.Fatalf("label() error = %v", err)
	}

	var refA meshmodel.Tag
	var plusCount, minusCount int
	for _, tr := range mesh.Triangles {
		if !tr.Valid {
			continue
		}
		hasA := false
		for _, v := range tr.V {
			if v == 0 {
				hasA = true
			}
		}
		if hasA {
			refA = tr.Ref
		}
		switch tr.Ref {
		case meshmodel.Plus:
			plusCount++
		case meshmodel.Minus:
			minusCount++
		}
	}
	if refA != meshmodel.Minus {
		t.Errorf("triangle containing A labelled %v, want Minus", refA)
	}
	if plusCount != 2 || minusCount != 1 {
		t.Errorf("Plus/Minus triangle counts = %d/%d, want 2/1", plusCount, minusCount)
	}
}

func TestRunAllPositiveFieldNoSplits(t *testing.T) {
	mesh, field := squareMesh()
	field[0], field[1], field[2], field[3] = 1, 2, 3, 4

	result, err := Run(DefaultConfig(), mesh, field)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Splits != 0 {
		t.Errorf("Splits = %d, want 0", result.Splits)
	}
	if mesh.NumPoints() != 4 {
		t.Errorf("NumPoints() = %d, want 4 (no crossing points created)", mesh.NumPoints())
	}
	for k, tr := range mesh.Triangles {
		if tr.Ref != meshmodel.Plus {
			t.Errorf("triangle %d Ref = %v, want Plus", k, tr.Ref)
		}
	}
}

func TestRunDegenerateSnapPreserved(t *testing.T) {
	// A value just inside epsilon of zero, with its opposite edge not
	// sign-changing, should snap and stay snapped (nothing to revert).
	mesh, field := squareMesh()
	field[0] = DefaultEpsilon / 10
	field[1], field[2], field[3] = 1, 2, 3

	result, err := Run(DefaultConfig(), mesh, field)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Snapped != 1 {
		t.Errorf("Snapped = %d, want 1", result.Snapped)
	}
	if result.Reverted != 0 {
		t.Errorf("Reverted = %d, want 0", result.Reverted)
	}
	if field[0] != 0 {
		t.Errorf("field[0] = %g, want 0 (snap kept)", field[0])
	}
}

func TestDispatchSplitRejectsAllThreeEdgesCrossed(t *testing.T) {
	mesh := meshmodel.New()
	mesh.AllocPoint(0, 0)
	mesh.AllocPoint(1, 0)
	mesh.AllocPoint(0, 1)
	mesh.AllocPoint(0.5, 0.5)
	mesh.AllocTriangle(0, 1, 2)

	_, err := dispatchSplit(mesh, 0, [3]int{3, 3, 3}, 7)
	if !errors.Is(err, ErrTopologyInvariant) {
		t.Fatalf("dispatchSplit(bits=7) error = %v, want ErrTopologyInvariant", err)
	}
}

func TestSameSign(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{1, 2, true},
		{-1, -2, true},
		{1, -1, false},
		{0, 1, false},
		{1, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := sameSign(tt.a, tt.b); got != tt.want {
			t.Errorf("sameSign(%g,%g) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
