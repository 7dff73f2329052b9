// Package edgehash implements the edge-keyed hash table that is the
// sole communication channel between the crossing enumerator and the
// splitter (spec.md §4.3, §9): an unordered pair of point ids maps to
// the id of the point created on that edge's zero crossing.
package edgehash

import "fmt"

// hedge is one slab slot: a stored key plus a singly-linked chain of
// collisions, mirroring the C original's intrusive hash list
// (_MMG5_hedge) without pointers.
type hedge struct {
	a, b int // canonical (min, max) key; b == -1 means empty slot
	val  int
	next int // index into the slab, or -1
}

// Hash is an open hash table keyed by canonicalized (min,max) point id
// pairs, sized up front for a known number of entries. It never
// silently overwrites a colliding entry: Put on an existing key
// returns an error.
type Hash struct {
	slots []int   // bucket heads, index into items, or -1
	items []hedge // slab of (key, val, next) records
	next  int      // next free slot in items
}

// New allocates a hash sized for at least nb entries with a load
// factor around 0.5, per spec.md §4.3/§5: `new_edge_hash(size_hint,
// capacity_hint)`.
func New(nb int) (*Hash, error) {
	if nb < 0 {
		return nil, fmt.Errorf("edgehash: negative size hint %d", nb)
	}
	capacity := 2*nb + 1
	if capacity < 4 {
		capacity = 4
	}
	buckets := capacity
	h := &Hash{
		slots: make([]int, buckets),
		items: make([]hedge, capacity),
	}
	for i := range h.slots {
		h.slots[i] = -1
	}
	for i := range h.items {
		h.items[i].b = -1
		h.items[i].next = -1
	}
	return h, nil
}

func canon(p0, p1 int) (a, b int) {
	if p0 <= p1 {
		return p0, p1
	}
	return p1, p0
}

func (h *Hash) bucket(a, b int) int {
	// A simple odd-weighted mix; the table is sized to keep chains
	// short regardless of the exact mixing function.
	u := uint64(a)*2654435761 + uint64(b)*40503
	return int(u % uint64(len(h.slots)))
}

// Get returns the point id stored for the unordered pair (p0, p1), and
// whether an entry was found. Point id 0 is a valid id in this
// (0-based) arena, so callers must check the bool rather than testing
// the returned id for zero.
func (h *Hash) Get(p0, p1 int) (int, bool) {
	if len(h.slots) == 0 {
		return 0, false
	}
	a, b := canon(p0, p1)
	idx := h.slots[h.bucket(a, b)]
	for idx != -1 {
		it := h.items[idx]
		if it.a == a && it.b == b {
			return it.val, true
		}
		idx = it.next
	}
	return 0, false
}

// Put inserts (p0, p1) -> val. Returns an error if the key is already
// present (no silent overwrite) or if the slab is exhausted.
func (h *Hash) Put(p0, p1, val int) error {
	if len(h.slots) == 0 {
		return fmt.Errorf("edgehash: hash is freed or uninitialized")
	}
	a, b := canon(p0, p1)
	if _, ok := h.Get(a, b); ok {
		return fmt.Errorf("edgehash: key (%d,%d) already present", a, b)
	}
	if h.next >= len(h.items) {
		return fmt.Errorf("edgehash: slab exhausted (capacity %d)", len(h.items))
	}
	slot := h.next
	h.next++
	h.items[slot] = hedge{a: a, b: b, val: val, next: h.slots[h.bucket(a, b)]}
	h.slots[h.bucket(a, b)] = slot
	return nil
}

// Len reports the number of entries currently stored.
func (h *Hash) Len() int { return h.next }

// Free releases the hash's backing storage. Safe to call more than
// once; the zero value behaves as an empty, unusable hash thereafter.
func (h *Hash) Free() {
	h.slots = nil
	h.items = nil
	h.next = 0
}
