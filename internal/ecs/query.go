package ecs

// matchIDs implements the seed-selection enumeration algorithm of §4.3: pick
// the smallest of the required pools as the seed, walk its entity ids, and
// keep only those present in every other required pool and accepted by the
// resolved filter's any/without clauses. required must be non-empty.
func matchIDs(required []componentBase, rf *ResolvedFilter) []EntityID {
	if rf.empty() {
		return nil
	}
	for _, p := range required {
		if p.Len() == 0 {
			return nil
		}
	}
	seed := required[0]
	for _, p := range required[1:] {
		if p.Len() < seed.Len() {
			seed = p
		}
	}
	out := make([]EntityID, 0, seed.Len())
	e := Entity{}
	for _, id := range seed.EntityIDs() {
		e.ID = id
		ok := true
		for _, p := range required {
			if p == seed {
				continue
			}
			if !p.Has(e) {
				ok = false
				break
			}
		}
		if ok && meetsFilter(id, rf) {
			out = append(out, id)
		}
	}
	return out
}

func genOf(w *World, id EntityID) Entity {
	return Entity{ID: id, Gen: w.entities.GenerationOf(id)}
}

func asPool[T any](base componentBase, ct ComponentType) (*Pool[T], error) {
	p, ok := base.(*Pool[T])
	if !ok {
		return nil, NewError(InvalidArgument, "component type %q does not match the requested value type", ct)
	}
	return p, nil
}

func poolFor[T any](w *World, ct ComponentType) (*Pool[T], error) {
	base, ok := w.components.get(ct)
	if !ok {
		return nil, nil // unregistered: treated as empty, not an error (see ResolvedFilter docs)
	}
	return asPool[T](base, ct)
}

// Result1 is one row of a single-component query (§4.3 point 4).
type Result1[T1 any] struct {
	Entity Entity
	V1     T1
}

// Query1 enumerates every live entity carrying T1 (named by ct1) that also
// satisfies f, yielding copies of T1's value. Mutation must go through the
// command buffer or Pool.Replace outside iteration.
func Query1[T1 any](w *World, ct1 ComponentType, f Filter) ([]Result1[T1], error) {
	p1, err := poolFor[T1](w, ct1)
	if err != nil {
		return nil, err
	}
	rf := w.filters.resolveCached(f)
	required := []componentBase{}
	if p1 != nil {
		required = append(required, p1)
	} else {
		return nil, nil
	}
	required = append(required, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result1[T1], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		out = append(out, Result1[T1]{Entity: genOf(w, id), V1: v1})
	}
	return out, nil
}

// Result2 is one row of a two-component query.
type Result2[T1, T2 any] struct {
	Entity Entity
	V1     T1
	V2     T2
}

// Query2 is Query1 generalized to two required component types.
func Query2[T1, T2 any](w *World, ct1, ct2 ComponentType, f Filter) ([]Result2[T1, T2], error) {
	p1, err := poolFor[T1](w, ct1)
	if err != nil {
		return nil, err
	}
	p2, err := poolFor[T2](w, ct2)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result2[T1, T2], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		out = append(out, Result2[T1, T2]{Entity: genOf(w, id), V1: v1, V2: v2})
	}
	return out, nil
}

// Result3 is one row of a three-component query.
type Result3[T1, T2, T3 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
}

// Query3 is Query1 generalized to three required component types.
func Query3[T1, T2, T3 any](w *World, ct1, ct2, ct3 ComponentType, f Filter) ([]Result3[T1, T2, T3], error) {
	p1, err := poolFor[T1](w, ct1)
	if err != nil {
		return nil, err
	}
	p2, err := poolFor[T2](w, ct2)
	if err != nil {
		return nil, err
	}
	p3, err := poolFor[T3](w, ct3)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result3[T1, T2, T3], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		out = append(out, Result3[T1, T2, T3]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3})
	}
	return out, nil
}

// Result4 is one row of a four-component query.
type Result4[T1, T2, T3, T4 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
	V4     T4
}

// Query4 is Query1 generalized to four required component types.
func Query4[T1, T2, T3, T4 any](w *World, ct1, ct2, ct3, ct4 ComponentType, f Filter) ([]Result4[T1, T2, T3, T4], error) {
	p1, err := poolFor[T1](w, ct1)
	if err != nil {
		return nil, err
	}
	p2, err := poolFor[T2](w, ct2)
	if err != nil {
		return nil, err
	}
	p3, err := poolFor[T3](w, ct3)
	if err != nil {
		return nil, err
	}
	p4, err := poolFor[T4](w, ct4)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3, p4}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result4[T1, T2, T3, T4], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		v4, _ := p4.Get(Entity{ID: id})
		out = append(out, Result4[T1, T2, T3, T4]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3, V4: v4})
	}
	return out, nil
}
