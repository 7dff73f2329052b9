package meshio

import "github.com/chazu/isocut2d/pkg/meshmodel"

// RenderMesh is a flat, renderer-friendly view of a cut mesh: vertices
// and triangle indices laid out the way a GPU wants them, plus the
// per-triangle subdomain label the splitter/labeller produced. The
// mesh this kernel operates on lives in the plane, so unlike a CSG
// solid's render mesh there is no per-vertex normal to carry; a
// viewer can derive a single face normal (0,0,1) for the whole sheet.
type RenderMesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...], z always 0
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Labels   []int32   `json:"labels"`   // one subdomain tag per triangle
}

// VertexCount returns the number of vertices.
func (m *RenderMesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *RenderMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *RenderMesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// ToRenderMesh flattens mesh into a RenderMesh, renumbering points
// densely so invalidated arena slots leave no gaps in the output.
func ToRenderMesh(mesh *meshmodel.Mesh) *RenderMesh {
	remap := make([]uint32, mesh.NumPoints())
	out := &RenderMesh{}

	for id, p := range mesh.Points {
		if !p.Valid {
			continue
		}
		remap[id] = uint32(out.VertexCount())
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y), 0)
	}

	for _, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		out.Indices = append(out.Indices,
			remap[t.V[0]], remap[t.V[1]], remap[t.V[2]])
		out.Labels = append(out.Labels, int32(t.Ref))
	}

	return out
}
