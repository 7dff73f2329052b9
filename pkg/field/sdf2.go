package field

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SDF2 adapts a github.com/deadsy/sdfx signed-distance field to a
// Provider: phi is simply the signed distance, negative inside the
// shape, sampled directly rather than marching-cubed into a mesh.
type SDF2 struct {
	s sdf.SDF2
}

// NewSDF2 wraps an sdf.SDF2.
func NewSDF2(s sdf.SDF2) SDF2 { return SDF2{s: s} }

// Eval implements Provider.
func (f SDF2) Eval(x, y float64) (float64, error) {
	return f.s.Evaluate(v2.Vec{X: x, Y: y}), nil
}

// Disk returns a Provider whose zero level set is a circle of the
// given radius centred at the origin, negative inside.
func Disk(radius float64) (SDF2, error) {
	s, err := sdf.Circle2D(radius)
	if err != nil {
		return SDF2{}, fmt.Errorf("field: disk radius %g: %w", radius, err)
	}
	return NewSDF2(s), nil
}

// Box returns a Provider whose zero level set is the boundary of an
// axis-aligned rectangle of the given size centred at the origin.
func Box(width, height float64) (SDF2, error) {
	s, err := sdf.Box2D(v2.Vec{X: width, Y: height}, 0)
	if err != nil {
		return SDF2{}, fmt.Errorf("field: box %gx%g: %w", width, height, err)
	}
	return NewSDF2(s), nil
}

// Union returns the union of two SDF2 providers (the lesser distance).
func Union(a, b SDF2) SDF2 { return NewSDF2(sdf.Union2D(a.s, b.s)) }

// Difference returns a minus b.
func Difference(a, b SDF2) SDF2 { return NewSDF2(sdf.Difference2D(a.s, b.s)) }

// Intersection returns the intersection of two SDF2 providers.
func Intersection(a, b SDF2) SDF2 { return NewSDF2(sdf.Intersect2D(a.s, b.s)) }
