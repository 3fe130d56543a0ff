package ecs

import "github.com/TheBitDrifter/bark"

// Pool[T] is a dense component store keyed by EntityID, grounded on
// storage/sparse_set.go's sparse-map/dense-slice pairing (swap-remove on
// delete, O(1) add/remove/get), generalized from an entity-presence-only set
// into a value-carrying store via Go generics, and merged with
// storage/component_store.go's per-type responsibility (that pairing keeps
// the two concerns in separate files; here the dense slice IS the typed
// store, so there is nothing left for a separate ComponentStore to add).
type Pool[T any] struct {
	ctype    ComponentType
	sparse   map[EntityID]int
	denseIDs []EntityID
	values   []T
}

// NewPool constructs an empty pool for the named component type, with room
// for at least initialCap entries before its first grow.
func NewPool[T any](ctype ComponentType, initialCap int) *Pool[T] {
	if initialCap < 16 {
		initialCap = 16
	}
	return &Pool[T]{
		ctype:    ctype,
		sparse:   make(map[EntityID]int, initialCap),
		denseIDs: make([]EntityID, 0, initialCap),
		values:   make([]T, 0, initialCap),
	}
}

// Type returns the component type name this pool stores.
func (p *Pool[T]) Type() ComponentType { return p.ctype }

// Has reports whether e carries this pool's component.
func (p *Pool[T]) Has(e Entity) bool {
	_, ok := p.sparse[e.ID]
	return ok
}

// Add inserts val for e. Returns ErrConflict if e already has the component
// (§4.2: add_component is fallible, not upsert).
func (p *Pool[T]) Add(e Entity, val T) error {
	if _, exists := p.sparse[e.ID]; exists {
		return WrapError(InvalidOperation, ErrConflict, "add_component %s", p.ctype).WithEntity(e).WithComponent(p.ctype)
	}
	idx := len(p.denseIDs)
	p.denseIDs = append(p.denseIDs, e.ID)
	p.values = append(p.values, val)
	p.sparse[e.ID] = idx
	return nil
}

// Get returns e's component value and whether it was present.
func (p *Pool[T]) Get(e Entity) (T, bool) {
	idx, ok := p.sparse[e.ID]
	if !ok {
		var zero T
		return zero, false
	}
	return p.values[idx], true
}

// MustGet returns e's component value, panicking with a traced error if e
// does not carry it. Mirrors entity.go's own entry()-style "this should
// never happen" accessor (panic(bark.AddTrace(err))), reserved here for call
// sites within a resolved query iteration where presence was already
// established by the filter match.
func (p *Pool[T]) MustGet(e Entity) T {
	v, ok := p.Get(e)
	if !ok {
		err := WrapError(InvalidOperation, ErrMissingComponent, "MustGet %s", p.ctype).WithEntity(e).WithComponent(p.ctype)
		panic(bark.AddTrace(err))
	}
	return v
}

// GetMut returns a pointer into the pool's dense storage for e's value, for
// systems that want to mutate in place without a command buffer (§6.1's
// get_mut). The pointer is invalidated by any subsequent Remove on this
// pool (swap-remove may relocate the backing slice element) and must not be
// retained past the current system call.
func (p *Pool[T]) GetMut(e Entity) (*T, bool) {
	idx, ok := p.sparse[e.ID]
	if !ok {
		return nil, false
	}
	return &p.values[idx], true
}

// Replace overwrites e's component value. Returns ErrMissingComponent if e
// does not carry the component (§4.2).
func (p *Pool[T]) Replace(e Entity, val T) error {
	idx, ok := p.sparse[e.ID]
	if !ok {
		return WrapError(InvalidOperation, ErrMissingComponent, "replace_component %s", p.ctype).WithEntity(e).WithComponent(p.ctype)
	}
	p.values[idx] = val
	return nil
}

// Remove deletes e's component via swap-remove with the last dense entry,
// matching sparse_set.go's Remove. Returns ErrMissingComponent if absent.
func (p *Pool[T]) Remove(e Entity) error {
	idx, ok := p.sparse[e.ID]
	if !ok {
		return WrapError(InvalidOperation, ErrMissingComponent, "remove_component %s", p.ctype).WithEntity(e).WithComponent(p.ctype)
	}
	lastIdx := len(p.denseIDs) - 1
	lastID := p.denseIDs[lastIdx]

	p.denseIDs[idx] = lastID
	p.values[idx] = p.values[lastIdx]
	p.sparse[lastID] = idx

	var zero T
	p.denseIDs = p.denseIDs[:lastIdx]
	p.values[lastIdx] = zero
	p.values = p.values[:lastIdx]
	delete(p.sparse, e.ID)
	return nil
}

// Len returns the number of entities currently carrying this component.
func (p *Pool[T]) Len() int { return len(p.denseIDs) }

// getRaw boxes e's value as any, for the snapshot codec's type-erased save
// path. Returns ok=false if e does not carry the component.
func (p *Pool[T]) getRaw(e Entity) (any, bool) {
	v, ok := p.Get(e)
	return v, ok
}

// setRaw unboxes value and inserts it for e, for the snapshot codec's
// type-erased bulk-load path. The caller is expected to have reset the pool
// first, so this always uses Add rather than Replace.
func (p *Pool[T]) setRaw(e Entity, value any) error {
	typed, ok := value.(T)
	if !ok {
		return NewError(CorruptData, "snapshot payload type mismatch for %s", p.ctype).WithEntity(e).WithComponent(p.ctype)
	}
	return p.Add(e, typed)
}

// ForEach visits every (entityID, value) pair in dense storage order. Order
// is not stable across Remove calls (swap-remove reorders the tail).
func (p *Pool[T]) ForEach(fn func(id EntityID, val T)) {
	for i, id := range p.denseIDs {
		fn(id, p.values[i])
	}
}

// EntityIDs returns a snapshot of every entity id currently in the pool, in
// dense storage order.
func (p *Pool[T]) EntityIDs() []EntityID {
	out := make([]EntityID, len(p.denseIDs))
	copy(out, p.denseIDs)
	return out
}

// removeIfPresent drops e's component if present, reporting whether it did.
// Used by world-level entity teardown, which must not error on components
// the destroyed entity never had.
func (p *Pool[T]) removeIfPresent(e Entity) bool {
	if !p.Has(e) {
		return false
	}
	_ = p.Remove(e)
	return true
}

// reset empties the pool, dropping all values; the dense slices are
// truncated to length zero and keep their backing capacity.
func (p *Pool[T]) reset() {
	p.sparse = make(map[EntityID]int)
	p.denseIDs = p.denseIDs[:0]
	p.values = p.values[:0]
}
