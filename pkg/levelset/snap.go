package levelset

import "github.com/chazu/isocut2d/pkg/meshmodel"

// snap implements the Snapper of spec.md §4.1: scalar values within
// epsilon of zero are forced to zero exactly, so that the crossing
// enumerator never has to cut an edge at a point arbitrarily close to
// one of its own endpoints. A snap is reverted if it would make the
// ball of its point non-manifold (§4.2).
func snap(cfg Config, mesh *meshmodel.Mesh, field Field) (ns, nc int, err error) {
	mesh.ResetPointFlags()

	tmp := make([]float64, len(field))
	for ip, p := range mesh.Points {
		if !p.Valid {
			continue
		}
		v := field[ip]
		av := absF(v)
		if av >= cfg.Epsilon {
			continue
		}
		if av < cfg.EpsilonDegenerate {
			tmp[ip] = -100.0 * cfg.Epsilon
		} else {
			tmp[ip] = v
		}
		mesh.Points[ip].Flag = 1
		field[ip] = 0
		ns++
	}

	for k, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			ip := t.V[i]
			if mesh.Points[ip].Flag == 0 {
				continue
			}
			ip1, ip2 := t.EdgeVertices(i)
			if sameSign(field[ip1], field[ip2]) {
				continue
			}
			if !manifoldBallOfSnap(mesh, field, k, i) {
				field[ip] = tmp[ip]
				nc++
			}
			mesh.Points[ip].Flag = 0
			tmp[ip] = 0
		}
	}

	return ns, nc, nil
}

// manifoldBallOfSnap implements spec.md §4.2: with vertex i of triangle
// start assumed just snapped to zero and its opposite edge sign-
// changing, walk the ball of that vertex in both directions until a
// mesh boundary or another sign change is met. The snap is safe only
// if both walks agree on where the interface leaves the ball.
func manifoldBallOfSnap(mesh *meshmodel.Mesh, field Field, start, istart int) bool {
	const boundary = -1

	walk := func(i int, dir func(int) int) int {
		k := start
		for {
			adjv := mesh.Neighbor(k, i)
			if adjv == 0 {
				return boundary
			}
			k2, i1 := meshmodel.DecodeAdj(adjv)
			i = dir(i1)
			k = k2
			t := mesh.Triangles[k]
			ip1, ip2 := t.V[i1], t.V[i]
			if !sameSign(field[ip1], field[ip2]) {
				return k
			}
		}
	}

	end1 := walk(meshmodel.Next[istart], func(j int) int { return meshmodel.Prev[j] })
	end2 := walk(meshmodel.Prev[istart], func(j int) int { return meshmodel.Next[j] })
	return end1 == end2
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
