package meshmodel

import "fmt"

// Tag is the subdomain label assigned to a triangle by the labeller.
type Tag int8

const (
	// TagNone is the zero value, held by every triangle before labelling.
	TagNone Tag = iota
	// Plus marks a triangle with at least one strictly positive vertex
	// and none strictly negative.
	Plus
	// Minus marks a triangle with no strictly positive vertex.
	Minus
)

func (t Tag) String() string {
	switch t {
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	default:
		return fmt.Sprintf("Tag(%d)", int8(t))
	}
}

// Triangle is an ordered triple of point ids plus the bookkeeping the
// kernel needs: a subdomain tag, a validity bit, and a scratch bitmask
// used by the splitter to record which local edges carry a crossing.
type Triangle struct {
	V     [3]int
	Ref   Tag
	Valid bool
	Flag  uint8
}

// Next is the fixed local-edge successor permutation (0->1, 1->2, 2->0).
var Next = [3]int{1, 2, 0}

// Prev is the fixed local-edge predecessor permutation (0->2, 1->0, 2->1).
var Prev = [3]int{2, 0, 1}

// EdgeVertices returns the two endpoints of local edge i of a triangle:
// the edge opposite vertex i, i.e. vertices next(i) and prev(i).
func (t Triangle) EdgeVertices(i int) (p0, p1 int) {
	return t.V[Next[i]], t.V[Prev[i]]
}
