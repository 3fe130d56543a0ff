package ecs

// EntityTable owns entity ID allocation, generation counters, and the alive
// bitset (§3, §4.1). It is a purely structural component: the destroy
// ordering sequence (singleton clear -> binder notify -> context clear ->
// component removal -> alive/gen update -> event) lives one level up in
// World, which is the only place that can see every other submodule. This
// follows §9's "Deep inheritance / mixins" note: World is a single
// composition root delegating to narrow submodules rather than a subtyping
// hierarchy, and EntityTable is grounded on entity_manager.go's
// DefaultEntityManager (LIFO free-id reuse, nextEntityID high-water mark)
// with its map[EntityID]bool liveness tracking replaced by a
// generation-checked bitset, since that liveness map never tracks
// generations and so cannot reject a stale handle the way a recycled-id
// handle must be rejected here.
type EntityTable struct {
	alive      *DynBitset
	generation []Generation
	freeIDs    []EntityID
	nextID     EntityID
	capacity   int
	cfg        WorldConfig
}

// NewEntityTable constructs a table sized per cfg's initial capacity.
func NewEntityTable(cfg WorldConfig) *EntityTable {
	cfg = cfg.clamp()
	cap0 := cfg.InitialEntityCapacity
	t := &EntityTable{
		alive:      NewDynBitset(cap0),
		generation: make([]Generation, cap0),
		freeIDs:    make([]EntityID, 0, cfg.InitialFreeIDCapacity),
		nextID:     1, // id 0 is the reserved null handle
		capacity:   cap0,
		cfg:        cfg,
	}
	return t
}

// computeNewCapacity implements the two growth policies from §4.1.
func computeNewCapacity(cfg WorldConfig, current, required int) int {
	switch cfg.GrowthPolicy {
	case GrowthStep:
		step := cfg.GrowthStep
		if step < 32 {
			step = 32
		}
		if required%step == 0 {
			return required
		}
		return ((required / step) + 1) * step
	default: // GrowthDoubling
		next := current
		if next < 16 {
			next = 16
		}
		for next < required {
			next *= 2
		}
		if next-current < 256 {
			next = current + 256
		}
		if next < required {
			next = required
		}
		return next
	}
}

// ensureCapacity grows the backing arrays so that slot id is addressable.
func (t *EntityTable) ensureCapacity(id EntityID) {
	required := int(id) + 1
	if required <= t.capacity {
		return
	}
	newCap := computeNewCapacity(t.cfg, t.capacity, required)
	grown := make([]Generation, newCap)
	copy(grown, t.generation)
	t.generation = grown
	t.capacity = newCap
	t.alive.ensureWords(wordIndex(newCap - 1))
}

// Reserve allocates or reuses a slot id without marking it alive (§4.1).
// If fixedID is non-nil, the named slot is ensured to exist (growing
// capacity if needed) and its current generation is returned; the slot is
// not removed from the free list, matching "does not set alive."
func (t *EntityTable) Reserve(fixedID *EntityID) Entity {
	if fixedID != nil {
		id := *fixedID
		t.ensureCapacity(id)
		if id >= t.nextID {
			t.nextID = id + 1
		}
		return Entity{ID: id, Gen: t.generation[id]}
	}
	if n := len(t.freeIDs); n > 0 {
		id := t.freeIDs[n-1]
		t.freeIDs = t.freeIDs[:n-1]
		return Entity{ID: id, Gen: t.generation[id]}
	}
	id := t.nextID
	t.nextID++
	t.ensureCapacity(id)
	return Entity{ID: id, Gen: t.generation[id]}
}

// CreateReserved marks a reserved slot alive if it wasn't already (§4.1).
// Returns true if it performed work (the entity transitioned from not-alive
// to alive), false if it was already alive (idempotent no-op per §8).
func (t *EntityTable) CreateReserved(e Entity) bool {
	if int(e.ID) >= t.capacity {
		t.ensureCapacity(e.ID)
	}
	if t.alive.Has(int(e.ID)) {
		return false
	}
	t.alive.Set(int(e.ID))
	return true
}

// MarkDestroyed clears the alive bit, bumps the slot's generation, and
// pushes the id onto the free-id stack. Returns false (no-op) if the entity
// was not alive. Callers (World.Destroy) are responsible for running the
// teardown sequence before calling this.
func (t *EntityTable) MarkDestroyed(e Entity) bool {
	if !t.IsAlive(e) {
		return false
	}
	t.alive.Clear(int(e.ID))
	t.generation[e.ID]++
	t.freeIDs = append(t.freeIDs, e.ID)
	return true
}

// IsAlive reports whether e refers to a currently-live slot with a matching
// generation (§4.1).
func (t *EntityTable) IsAlive(e Entity) bool {
	return t.IsAliveID(e.ID, e.Gen)
}

// IsAliveID is IsAlive split into its raw components, for callers that only
// have an id and a generation (e.g. snapshot load).
func (t *EntityTable) IsAliveID(id EntityID, gen Generation) bool {
	if id == 0 || int(id) >= t.capacity {
		return false
	}
	return t.alive.Has(int(id)) && t.generation[id] == gen
}

// GenerationOf returns the current generation for id, or 0 if id is out of
// range (id 0's generation is always 0, matching the null handle).
func (t *EntityTable) GenerationOf(id EntityID) Generation {
	if int(id) >= t.capacity {
		return 0
	}
	return t.generation[id]
}

// AllEntities returns a snapshot of every live handle for id in [1, nextID).
func (t *EntityTable) AllEntities() []Entity {
	out := make([]Entity, 0, t.alive.Count())
	for id := EntityID(1); id < t.nextID; id++ {
		if t.alive.Has(int(id)) {
			out = append(out, Entity{ID: id, Gen: t.generation[id]})
		}
	}
	return out
}

// AliveCount returns the number of currently-live entities.
func (t *EntityTable) AliveCount() int { return t.alive.Count() }

// Capacity returns the current size of the backing arrays.
func (t *EntityTable) Capacity() int { return t.capacity }

// NextID returns the table's high-water mark.
func (t *EntityTable) NextID() EntityID { return t.nextID }

// aliveBytes exposes the alive bitset's serialized form for the snapshot
// codec.
func (t *EntityTable) aliveBytes() []byte { return t.alive.Bytes() }

// rawGenerations exposes the generation table for the snapshot codec.
func (t *EntityTable) rawGenerations() []Generation { return t.generation }

// rawFreeIDs exposes the free-id stack for the snapshot codec, in the order
// ids were freed (bottom of stack first).
func (t *EntityTable) rawFreeIDs() []EntityID { return t.freeIDs }

// loadState rebuilds the table wholesale from snapshot-deserialized values,
// used only by the snapshot codec's Load path. The caller is responsible
// for having already reset the table.
func (t *EntityTable) loadState(nextID EntityID, generations []Generation, freeIDs []EntityID, aliveBytes []byte) {
	t.nextID = nextID
	t.generation = make([]Generation, len(generations))
	copy(t.generation, generations)
	t.capacity = len(t.generation)
	t.freeIDs = append([]EntityID(nil), freeIDs...)
	t.alive.loadFromBytes(aliveBytes)
}

// reset reinitializes the table in place, optionally keeping the current
// backing-array capacity (§6.1 reset(keep_capacity)).
func (t *EntityTable) reset(keepCapacity bool) {
	if keepCapacity {
		t.alive.Reset()
		for i := range t.generation {
			t.generation[i] = 0
		}
		t.freeIDs = t.freeIDs[:0]
		t.nextID = 1
		return
	}
	*t = *NewEntityTable(t.cfg)
}
