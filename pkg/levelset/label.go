package levelset

import (
	"fmt"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// label is the Labeller of spec.md §4.5: every triangle surviving the
// split phase has all of its vertices on one side of the interface
// (or exactly on it), so its sign is well defined. A triangle with
// vertices of both signs would mean the split phase failed to fully
// separate it, which is a topology invariant violation rather than a
// recoverable condition.
func label(mesh *meshmodel.Mesh, field Field) error {
	for k, t := range mesh.Triangles {
		if !t.Valid {
			continue
		}

		var nplus, nminus, nzero int
		for i := 0; i < 3; i++ {
			switch v := field[t.V[i]]; {
			case v > 0:
				nplus++
			case v < 0:
				nminus++
			default:
				nzero++
			}
		}
		if nzero >= 3 {
			return fmt.Errorf("%w: triangle %d lies entirely on the interface", ErrTopologyInvariant, k)
		}
		if nplus > 0 && nminus > 0 {
			return fmt.Errorf("%w: triangle %d has both signs present", ErrTopologyInvariant, k)
		}

		if nplus > 0 {
			mesh.Triangles[k].Ref = meshmodel.Plus
		} else {
			mesh.Triangles[k].Ref = meshmodel.Minus
		}
	}
	return nil
}
