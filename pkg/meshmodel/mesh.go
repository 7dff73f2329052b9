package meshmodel

import "fmt"

// edgeKey canonicalizes an unordered pair of point ids as (min, max).
type edgeKey struct{ a, b int }

func newEdgeKey(p0, p1 int) edgeKey {
	if p0 <= p1 {
		return edgeKey{p0, p1}
	}
	return edgeKey{p1, p0}
}

// Mesh is the arena described in spec.md §3: dense Point and Triangle
// tables plus a half-edge adjacency. Triangles and points are
// referenced by index and are never relocated; splitting only appends.
type Mesh struct {
	Points    []Point
	Triangles []Triangle

	// Adja holds the half-edge adjacency: Adja[3*k+i] decodes via
	// DecodeAdj to the neighbour across local edge i of triangle k, or
	// 0 for a mesh boundary. nil until BuildAdjacency is called.
	Adja []int

	// BoundaryEdges is populated by TransferBoundaryEdges with the
	// endpoints of every edge that has no neighbouring triangle.
	BoundaryEdges [][2]int

	dedup *pointIndex
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// NumPoints returns the number of points in the arena (valid or not).
func (m *Mesh) NumPoints() int { return len(m.Points) }

// NumTriangles returns the number of triangles in the arena (valid or not).
func (m *Mesh) NumTriangles() int { return len(m.Triangles) }

// EnableDedup turns on spatial deduplication of subsequently allocated
// points: AllocPoint will return the id of an existing point within eps
// of the requested coordinate instead of allocating a new one. Valid
// points already in the arena when EnableDedup is called are indexed too.
func (m *Mesh) EnableDedup() {
	m.dedup = newPointIndex()
	for id, p := range m.Points {
		if p.Valid {
			m.dedup.insert(id, p.X, p.Y)
		}
	}
}

// AllocPoint appends a new valid point at (x, y) and returns its id.
// This is the `allocate_point` collaborator of spec.md §6. If dedup is
// enabled and an existing point lies within tolerance, its id is
// returned instead of allocating a new point.
func (m *Mesh) AllocPoint(x, y float64) int {
	const dedupEpsilon = 1e-9
	if m.dedup != nil {
		if id, ok := m.dedup.nearestWithin(x, y, dedupEpsilon); ok {
			return id
		}
	}
	id := len(m.Points)
	m.Points = append(m.Points, Point{X: x, Y: y, Valid: true})
	if m.dedup != nil {
		m.dedup.insert(id, x, y)
	}
	return id
}

// AllocTriangle appends a new valid triangle over points v0, v1, v2 and
// returns its id. Ref is left at TagNone; the labeller assigns it.
func (m *Mesh) AllocTriangle(v0, v1, v2 int) int {
	id := len(m.Triangles)
	m.Triangles = append(m.Triangles, Triangle{V: [3]int{v0, v1, v2}, Valid: true})
	return id
}

// ResetPointFlags clears the scratch flag field on every point.
func (m *Mesh) ResetPointFlags() {
	for i := range m.Points {
		m.Points[i].Flag = 0
	}
}

// ResetTriangleFlags clears the scratch flag field on every triangle.
func (m *Mesh) ResetTriangleFlags() {
	for i := range m.Triangles {
		m.Triangles[i].Flag = 0
	}
}

// EncodeAdj packs a (triangle id, local edge) pair into the adjacency
// encoding 3*k'+i' described in spec.md §3, where k' = k+1: triangle
// ids here are 0-based, and k+1 keeps the all-zero boundary sentinel
// from colliding with a real reference to triangle 0's local edge 0.
func EncodeAdj(k, i int) int { return 3*(k+1) + i }

// DecodeAdj unpacks an adjacency value into (triangle id, local edge).
func DecodeAdj(v int) (k, i int) { return v/3 - 1, v % 3 }

// Neighbor returns the encoded neighbour across local edge i of
// triangle k (0 means boundary).
func (m *Mesh) Neighbor(k, i int) int {
	return m.Adja[3*k+i]
}

// SetNeighbor sets the raw encoded neighbour value for (k, i).
func (m *Mesh) SetNeighbor(k, i, v int) {
	m.Adja[3*k+i] = v
}

// BuildAdjacency (re)builds the half-edge adjacency table by hashing
// every triangle's three local edges on their canonical point-id pair
// and pairing up the two triangles that share each interior edge. This
// is the `build_adjacency` / `hashTria` collaborator of spec.md §6.
func (m *Mesh) BuildAdjacency() error {
	type occurrence struct{ k, i int }
	occ := make(map[edgeKey][]occurrence, len(m.Triangles))

	for k, t := range m.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			p0, p1 := t.EdgeVertices(i)
			key := newEdgeKey(p0, p1)
			occ[key] = append(occ[key], occurrence{k, i})
		}
	}

	adja := make([]int, 3*len(m.Triangles))
	for _, os := range occ {
		switch len(os) {
		case 1:
			// Boundary edge; adjacency stays 0.
		case 2:
			a, b := os[0], os[1]
			adja[3*a.k+a.i] = EncodeAdj(b.k, b.i)
			adja[3*b.k+b.i] = EncodeAdj(a.k, a.i)
		default:
			return fmt.Errorf("build adjacency: %w (%d triangles)", ErrNonManifoldEdge, len(os))
		}
	}

	m.Adja = adja
	return nil
}

// FreeAdjacency discards the adjacency table. Any topological mutation
// (splitting) invalidates it; it must be rebuilt before further
// traversal.
func (m *Mesh) FreeAdjacency() {
	m.Adja = nil
}

// TransferBoundaryEdges scans the current adjacency for edges with no
// neighbour and records their endpoints in BoundaryEdges. Requires a
// freshly built adjacency table.
func (m *Mesh) TransferBoundaryEdges() error {
	if m.Adja == nil {
		return fmt.Errorf("transfer boundary edges: adjacency not built")
	}
	m.BoundaryEdges = m.BoundaryEdges[:0]
	for k, t := range m.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			if m.Neighbor(k, i) != 0 {
				continue
			}
			p0, p1 := t.EdgeVertices(i)
			m.BoundaryEdges = append(m.BoundaryEdges, [2]int{p0, p1})
		}
	}
	return nil
}
