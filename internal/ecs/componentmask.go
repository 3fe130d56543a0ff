package ecs

import "github.com/TheBitDrifter/mask"

// componentMask is a fixed-width bitmask over an entity's component-type
// membership, one bit per registered component type (assigned by the
// typeRegistry below). It backs the resolved filter's fast containment
// checks in meets_filter (§4.3): with_all maps to ContainsAll, a with_any
// bucket maps to ContainsAny, and without_all / a without_any bucket map to
// ContainsNone. This mirrors how TheBitDrifter-warehouse uses mask.Mask for
// its own archetype composition checks (query.go: nodeMask.Mark(bit);
// archeMask.ContainsAll(nodeMask) / ContainsAny / ContainsNone).
type componentMask = mask.Mask

// typeRegistry assigns a stable bit index to each ComponentType the first
// time it is seen, so repeated filters over the same types produce
// consistent masks without re-walking a map[ComponentType]int on every call.
type typeRegistry struct {
	bitOf map[ComponentType]int
	next  int
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{bitOf: make(map[ComponentType]int)}
}

func (r *typeRegistry) bit(t ComponentType) int {
	if b, ok := r.bitOf[t]; ok {
		return b
	}
	b := r.next
	r.bitOf[t] = b
	r.next++
	return b
}

func (r *typeRegistry) maskOf(types []ComponentType) componentMask {
	var m componentMask
	for _, t := range types {
		m.Mark(uint(r.bit(t)))
	}
	return m
}
