package levelset

import (
	"fmt"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// verifyManifold is the Manifold Verifier of spec.md §4.6: it rejects
// a triangle with three boundary-or-subdomain-change edges (a single
// triangle cannot, on its own, separate two regions from a third),
// then walks the ball of every point touched by a PLUS/MINUS boundary
// to confirm the interface forms a single arc or loop through it
// rather than branching.
func verifyManifold(mesh *meshmodel.Mesh) error {
	for k, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		cnt := 0
		for i := 0; i < 3; i++ {
			adjv := mesh.Neighbor(k, i)
			if adjv == 0 {
				cnt++
				continue
			}
			k2, _ := meshmodel.DecodeAdj(adjv)
			if mesh.Triangles[k2].Ref != t.Ref {
				cnt++
			}
		}
		if cnt == 3 {
			return fmt.Errorf("%w: triangle %d has three subdomain-boundary edges", ErrNonManifoldResult, k)
		}
	}

	for k, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}
		for i := 0; i < 3; i++ {
			adjv := mesh.Neighbor(k, i)
			if adjv == 0 {
				continue
			}
			k2, _ := meshmodel.DecodeAdj(adjv)
			if mesh.Triangles[k2].Ref == t.Ref {
				continue
			}
			i1 := meshmodel.Next[i]
			if !chkmaniball(mesh, k, i1) {
				return fmt.Errorf("%w: non-manifold ball at triangle %d, vertex %d", ErrNonManifoldResult, k, t.V[i1])
			}
		}
	}
	return nil
}

// chkmaniball checks that the interface passing through vertex istart
// of triangle start forms a single arc in the ball of that vertex. The
// forward walk stays in start's subdomain until it meets either a mesh
// boundary or the other subdomain. After a boundary, the backward walk
// must also reach a mesh boundary without coming back into start's
// subdomain; after the other subdomain, the forward walk continues
// through it and must arrive back at start itself.
func chkmaniball(mesh *meshmodel.Mesh, start, istart int) bool {
	const boundary = -1
	refstart := mesh.Triangles[start].Ref

	stepFwd := func(k, i int) (int, int) {
		adjv := mesh.Neighbor(k, meshmodel.Next[i])
		if adjv == 0 {
			return boundary, 0
		}
		k2, j := meshmodel.DecodeAdj(adjv)
		return k2, meshmodel.Next[j]
	}
	stepBack := func(k, i int) (int, int) {
		adjv := mesh.Neighbor(k, meshmodel.Prev[i])
		if adjv == 0 {
			return boundary, 0
		}
		k2, j := meshmodel.DecodeAdj(adjv)
		return k2, meshmodel.Prev[j]
	}

	k, i := start, istart
	for {
		k, i = stepFwd(k, i)
		if k == boundary || mesh.Triangles[k].Ref != refstart {
			break
		}
	}

	if k == boundary {
		// The forward walk left the mesh; the backward walk must too,
		// or the vertex sits on more than one piece of the interface.
		k, i = start, istart
		for {
			k, i = stepBack(k, i)
			if k == boundary || mesh.Triangles[k].Ref == refstart {
				break
			}
		}
		return k == boundary
	}

	// The forward walk found the far side of the interface without
	// leaving the mesh; keep going until it returns to start (manifold)
	// or leaves the mesh or re-enters a third region (not manifold).
	for k != boundary && mesh.Triangles[k].Ref != refstart {
		k, i = stepFwd(k, i)
	}
	return k == start
}
