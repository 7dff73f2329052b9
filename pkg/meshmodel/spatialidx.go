package meshmodel

import "github.com/dhconnelly/rtreego"

// pointBoxHalfWidth sizes the degenerate bounding box rtreego requires
// for a point object; it has no effect on dedup tolerance, which is
// governed by the caller-supplied epsilon at query time.
const pointBoxHalfWidth = 1e-9

// pointEntry adapts a mesh point id to rtreego.Spatial.
type pointEntry struct {
	id   int
	x, y float64
}

func (e *pointEntry) Bounds() *rtreego.Rect {
	p := rtreego.Point{e.x - pointBoxHalfWidth, e.y - pointBoxHalfWidth}
	lengths := []float64{2 * pointBoxHalfWidth, 2 * pointBoxHalfWidth}
	rect, err := rtreego.NewRect(p, lengths)
	if err != nil {
		// lengths are fixed positive constants; NewRect only rejects
		// non-positive lengths or a dimension mismatch, neither possible here.
		panic("meshmodel: invalid rtreego rect: " + err.Error())
	}
	return rect
}

// pointIndex is an optional spatial index over a mesh's points, used by
// the allocator to reject near-duplicate insertions. A mesh with
// dedup disabled (the default) carries a nil *pointIndex and pays no
// overhead.
type pointIndex struct {
	tree *rtreego.Rtree
}

func newPointIndex() *pointIndex {
	// dim=2, minChildren=3, maxChildren=8 are the library's documented
	// sane defaults for small-to-medium point sets.
	return &pointIndex{tree: rtreego.NewTree(2, 3, 8)}
}

func (idx *pointIndex) insert(id int, x, y float64) {
	idx.tree.Insert(&pointEntry{id: id, x: x, y: y})
}

// nearestWithin returns the id of the nearest indexed point to (x,y) if
// it lies within eps in both coordinates, and false otherwise.
func (idx *pointIndex) nearestWithin(x, y, eps float64) (int, bool) {
	if idx.tree.Size() == 0 {
		return 0, false
	}
	nearest := idx.tree.NearestNeighbor(rtreego.Point{x, y})
	if nearest == nil {
		return 0, false
	}
	pe, ok := nearest.(*pointEntry)
	if !ok {
		return 0, false
	}
	dx, dy := pe.x-x, pe.y-y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx <= eps && dy <= eps {
		return pe.id, true
	}
	return 0, false
}
