// Package meshgen produces the triangulated meshes pkg/levelset.Run
// consumes: a rectangular grid and a concentric-ring disk, the two
// shapes spec.md's scenarios are described against. The kernel itself
// only cuts a mesh it is handed; something has to build the first one.
package meshgen

import (
	"fmt"
	"math"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// Grid builds an axis-aligned rectangular mesh spanning [0,width] x
// [0,height], divided into nx by ny cells, each cut along the same
// diagonal (high-x,low-y)-to-(low-x,high-y) into two triangles. Panics
// are never used for bad input; nx, ny < 1 or non-positive dimensions
// are reported as an error.
func Grid(nx, ny int, width, height float64) (*meshmodel.Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("meshgen: grid requires nx >= 1 and ny >= 1, got (%d,%d)", nx, ny)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("meshgen: grid requires positive width and height, got (%g,%g)", width, height)
	}

	m := meshmodel.New()
	ids := make([][]int, ny+1)
	for j := 0; j <= ny; j++ {
		ids[j] = make([]int, nx+1)
		y := height * float64(j) / float64(ny)
		for i := 0; i <= nx; i++ {
			x := width * float64(i) / float64(nx)
			ids[j][i] = m.AllocPoint(x, y)
		}
	}

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			bl, br := ids[j][i], ids[j][i+1]
			tl, tr := ids[j+1][i], ids[j+1][i+1]
			m.AllocTriangle(bl, br, tl)
			m.AllocTriangle(br, tr, tl)
		}
	}

	return m, nil
}

// Disk builds a triangulated disk of the given radius centred at the
// origin: a hub point surrounded by `rings` concentric rings of
// `segments` points each. The hub connects to the innermost ring as a
// closed fan; each pair of consecutive rings connects as a closed
// quad strip, every quad split along the same diagonal.
func Disk(rings, segments int, radius float64) (*meshmodel.Mesh, error) {
	if rings < 1 {
		return nil, fmt.Errorf("meshgen: disk requires rings >= 1, got %d", rings)
	}
	if segments < 3 {
		return nil, fmt.Errorf("meshgen: disk requires segments >= 3, got %d", segments)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("meshgen: disk requires positive radius, got %g", radius)
	}

	m := meshmodel.New()
	hub := m.AllocPoint(0, 0)

	ringIDs := make([][]int, rings)
	for r := 0; r < rings; r++ {
		ringIDs[r] = make([]int, segments)
		rr := radius * float64(r+1) / float64(rings)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			ringIDs[r][s] = m.AllocPoint(rr*math.Cos(theta), rr*math.Sin(theta))
		}
	}

	inner := ringIDs[0]
	for s := 0; s < segments; s++ {
		next := (s + 1) % segments
		m.AllocTriangle(hub, inner[s], inner[next])
	}

	for r := 0; r < rings-1; r++ {
		a, b := ringIDs[r], ringIDs[r+1]
		for s := 0; s < segments; s++ {
			next := (s + 1) % segments
			m.AllocTriangle(a[s], a[next], b[s])
			m.AllocTriangle(a[next], b[next], b[s])
		}
	}

	return m, nil
}
