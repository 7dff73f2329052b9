package levelset

import (
	"fmt"

	"github.com/chazu/isocut2d/pkg/edgehash"
	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// cutTriangles is the Edge-Crossing Enumerator & Hasher of spec.md §4.3
// together with the Splitter of §4.4: it creates one new point per
// mesh edge the zero level set crosses, then rewrites every crossed
// triangle with the matching split-1 or split-2 pattern. Adjacency is
// not consulted here; each triangle's crossing state is determined
// purely from its own three edges and the hash of already-created
// crossing points.
func cutTriangles(cfg Config, mesh *meshmodel.Mesh, field Field) (Field, int, error) {
	mesh.ResetPointFlags()

	nb := 0
	for _, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			ip0, ip1 := t.EdgeVertices(i)
			if mesh.Points[ip0].Flag != 0 && mesh.Points[ip1].Flag != 0 {
				continue
			}
			v0, v1 := field[ip0], field[ip1]
			if absF(v0) > cfg.EpsilonDegenerate && absF(v1) > cfg.EpsilonDegenerate && !sameSign(v0, v1) {
				nb++
				if mesh.Points[ip0].Flag == 0 {
					mesh.Points[ip0].Flag = nb
				}
				if mesh.Points[ip1].Flag == 0 {
					mesh.Points[ip1].Flag = nb
				}
			}
		}
	}
	if nb == 0 {
		return field, 0, nil
	}

	hash, err := edgehash.New(nb)
	if err != nil {
		return field, 0, fmt.Errorf("%w: %v", ErrResourceExhaustion, err)
	}

	for _, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			ip0, ip1 := t.EdgeVertices(i)
			if _, ok := hash.Get(ip0, ip1); ok {
				continue
			}
			v0, v1 := field[ip0], field[ip1]
			if absF(v0) < cfg.EpsilonDegenerate || absF(v1) < cfg.EpsilonDegenerate {
				continue
			}
			if sameSign(v0, v1) {
				continue
			}
			if mesh.Points[ip0].Flag == 0 || mesh.Points[ip1].Flag == 0 {
				continue
			}

			s := v0 / (v0 - v1)
			if s > 1.0-cfg.Epsilon {
				s = 1.0 - cfg.Epsilon
			}
			if s < cfg.Epsilon {
				s = cfg.Epsilon
			}
			p0, p1 := mesh.Points[ip0], mesh.Points[ip1]
			x := p0.X + s*(p1.X-p0.X)
			y := p0.Y + s*(p1.Y-p0.Y)

			np := mesh.AllocPoint(x, y)
			if np >= len(field) {
				grown := make(Field, np+1)
				copy(grown, field)
				field = grown
			}
			field[np] = 0
			if err := hash.Put(ip0, ip1, np); err != nil {
				return field, 0, fmt.Errorf("%w: %v", ErrResourceExhaustion, err)
			}
		}
	}

	nt := mesh.NumTriangles()
	ns := 0
	for k := 0; k < nt; k++ {
		t := mesh.Triangles[k]
		if !t.Valid {
			continue
		}
		mesh.Triangles[k].Flag = 0

		var vx [3]int
		for i := 0; i < 3; i++ {
			ip0, ip1 := t.EdgeVertices(i)
			if np, ok := hash.Get(ip0, ip1); ok {
				vx[i] = np
				mesh.Triangles[k].Flag |= 1 << uint(i)
			}
		}
		bits := int(mesh.Triangles[k].Flag)

		split, err := dispatchSplit(mesh, k, vx, bits)
		if err != nil {
			return field, ns, err
		}
		if split {
			ns++
		}
	}

	hash.Free()
	return field, ns, nil
}

// dispatchSplit applies the split pattern matching a triangle's crossed-
// edge bitmask: no bits set means the triangle is untouched, one bit a
// split-1, two bits a split-2. Three bits would mean every edge of the
// triangle crosses the interface, which no combination of three real
// vertex values can produce (at least two of any three reals share a
// sign): reaching it means an upstream invariant has already broken.
func dispatchSplit(mesh *meshmodel.Mesh, k int, vx [3]int, bits int) (split bool, err error) {
	switch bits {
	case 0:
		return false, nil
	case 1, 2, 4:
		split1(mesh, k, vx, bitIndex(bits))
		return true, nil
	case 3, 5, 6:
		split2(mesh, k, vx, bits)
		return true, nil
	default:
		return false, fmt.Errorf("%w: triangle %d has all three edges crossed", ErrTopologyInvariant, k)
	}
}

func bitIndex(bits int) int {
	for i := 0; i < 3; i++ {
		if bits&(1<<uint(i)) != 0 {
			return i
		}
	}
	return -1
}

// split1 rewrites a triangle with exactly one crossed edge (opposite
// vertex apex) into two triangles sharing the new point m on that edge.
func split1(mesh *meshmodel.Mesh, k int, vx [3]int, apex int) {
	t := mesh.Triangles[k]
	b := meshmodel.Next[apex]
	c := meshmodel.Prev[apex]
	va, vb, vc := t.V[apex], t.V[b], t.V[c]
	m := vx[apex]

	mesh.Triangles[k].Valid = false
	mesh.AllocTriangle(va, vb, m)
	mesh.AllocTriangle(va, m, vc)
}

// split2 rewrites a triangle with two crossed edges into three
// triangles: the corner at the vertex shared by both crossed edges,
// plus the remaining quadrilateral split along a diagonal. The two
// candidate diagonals of that quadrilateral are equally valid; the
// one touching the lower of the quad's two original vertex ids is
// used, so the split is deterministic regardless of input ordering.
func split2(mesh *meshmodel.Mesh, k int, vx [3]int, bits int) {
	t := mesh.Triangles[k]

	p := 0
	for i := 0; i < 3; i++ {
		if bits&(1<<uint(i)) == 0 {
			p = i
			break
		}
	}
	ii := meshmodel.Next[p]
	jj := meshmodel.Prev[p]

	vp, vii, vjj := t.V[p], t.V[ii], t.V[jj]
	mJJ := vx[jj] // lies on the segment between vp and vii
	mII := vx[ii] // lies on the segment between vjj and vp

	mesh.Triangles[k].Valid = false
	mesh.AllocTriangle(vp, mJJ, mII)

	if vii < vjj {
		mesh.AllocTriangle(mJJ, vii, mII)
		mesh.AllocTriangle(vii, vjj, mII)
	} else {
		mesh.AllocTriangle(mJJ, vii, vjj)
		mesh.AllocTriangle(mJJ, vjj, mII)
	}
}
