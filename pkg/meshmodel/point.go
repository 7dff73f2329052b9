// Package meshmodel provides the arena-based 2D triangular mesh used by
// the isosurface discretization kernel: dense Point/Triangle tables plus
// a half-edge adjacency, addressed by integer id rather than pointers.
package meshmodel

// Point is a single mesh vertex: a 2D coordinate, a validity bit, and a
// scratch integer whose meaning is phase-local (reset at the start of
// each phase that uses it).
type Point struct {
	X, Y  float64
	Valid bool
	Flag  int
}
