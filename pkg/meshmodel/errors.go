package meshmodel

import "errors"

var (
	// ErrInvalidPointID indicates a point id is out of range.
	ErrInvalidPointID = errors.New("meshmodel: invalid point id")

	// ErrInvalidTriangleID indicates a triangle id is out of range.
	ErrInvalidTriangleID = errors.New("meshmodel: invalid triangle id")

	// ErrDegenerateTriangle indicates a triangle references the same
	// point more than once.
	ErrDegenerateTriangle = errors.New("meshmodel: triangle has repeated vertex")

	// ErrNonManifoldEdge indicates an edge shared by more than two
	// triangles, which build_adjacency cannot encode.
	ErrNonManifoldEdge = errors.New("meshmodel: edge shared by more than two triangles")
)
