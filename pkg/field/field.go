// Package field supplies scalar implicit functions (phi) sampled at
// mesh vertices for pkg/levelset to cut. A Provider answers a single
// point query; Sample evaluates one over every point of a mesh to
// produce a levelset.Field ready for levelset.Run.
package field

import (
	"fmt"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// Provider evaluates a scalar field at a point in the plane. Eval can
// fail: a Script provider may hit a sandboxed evaluation error, so
// every provider in this package reports one rather than panicking or
// returning NaN.
type Provider interface {
	Eval(x, y float64) (float64, error)
}

// Sample evaluates p at every point in mesh and returns the resulting
// dense, point-id-indexed field.
func Sample(p Provider, mesh *meshmodel.Mesh) ([]float64, error) {
	out := make([]float64, mesh.NumPoints())
	for id, pt := range mesh.Points {
		if !pt.Valid {
			continue
		}
		v, err := p.Eval(pt.X, pt.Y)
		if err != nil {
			return nil, fmt.Errorf("field: sample point %d (%g,%g): %w", id, pt.X, pt.Y, err)
		}
		out[id] = v
	}
	return out, nil
}

// Constant is a Provider with the same value everywhere. Useful as a
// baseline or as one term of a Sum.
type Constant float64

// Eval implements Provider.
func (c Constant) Eval(x, y float64) (float64, error) { return float64(c), nil }

// Sum is a Provider that adds together the values of its terms. A
// level set of a Sum is not, in general, the sum of its terms' level
// sets; Sum exists for building composite scalar fields (e.g. a base
// shape plus a perturbation), not for CSG.
type Sum []Provider

// Eval implements Provider.
func (s Sum) Eval(x, y float64) (float64, error) {
	var total float64
	for i, p := range s {
		v, err := p.Eval(x, y)
		if err != nil {
			return 0, fmt.Errorf("field: sum term %d: %w", i, err)
		}
		total += v
	}
	return total, nil
}
