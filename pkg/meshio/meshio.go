// Package meshio loads and saves the JSON mesh+field format this repo
// uses to hand a standalone mesh to pkg/levelset.Run, and flattens a
// cut, labelled mesh into a render-ready DTO. The C original this
// kernel is ported from reads its meshes from the surrounding mmg2d
// CLI's .mesh/.sol files, out of scope for the kernel itself; this
// package is the ambient infrastructure a standalone repo needs in
// their place.
package meshio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/isocut2d/pkg/levelset"
	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// document is the on-disk JSON shape: a dense, point-id-indexed
// field alongside the triangulation it is sampled on.
type document struct {
	Points    [][2]float64 `json:"points"`
	Field     []float64    `json:"field"`
	Triangles [][3]int     `json:"triangles"`
}

// Load reads a mesh and its sampled field from r.
func Load(r io.Reader) (*meshmodel.Mesh, levelset.Field, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("meshio: decode: %w", err)
	}
	if len(doc.Points) != len(doc.Field) {
		return nil, nil, fmt.Errorf("meshio: %d points but %d field values", len(doc.Points), len(doc.Field))
	}

	m := meshmodel.New()
	for _, p := range doc.Points {
		m.AllocPoint(p[0], p[1])
	}
	for k, tri := range doc.Triangles {
		for _, v := range tri {
			if v < 0 || v >= len(doc.Points) {
				return nil, nil, fmt.Errorf("meshio: triangle %d references out-of-range point %d", k, v)
			}
		}
		m.AllocTriangle(tri[0], tri[1], tri[2])
	}

	field := make(levelset.Field, len(doc.Field))
	copy(field, doc.Field)
	return m, field, nil
}

// Save writes mesh and its (possibly cut) field to w as JSON.
func Save(w io.Writer, mesh *meshmodel.Mesh, field levelset.Field) error {
	doc := document{
		Points:    make([][2]float64, 0, mesh.NumPoints()),
		Field:     make([]float64, 0, mesh.NumPoints()),
		Triangles: make([][3]int, 0, mesh.NumTriangles()),
	}
	for id, p := range mesh.Points {
		if !p.Valid {
			continue
		}
		doc.Points = append(doc.Points, [2]float64{p.X, p.Y})
		doc.Field = append(doc.Field, field[id])
	}
	for _, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		doc.Triangles = append(doc.Triangles, [3]int{t.V[0], t.V[1], t.V[2]})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("meshio: encode: %w", err)
	}
	return nil
}
