package ecs

// This file continues query.go's Query1..Query4 up to the documented arity
// ceiling of 8 (§4.3). The pattern is identical at every arity: resolve each
// named type's pool, treat an unregistered type as an empty result set,
// resolve the filter once per call (cached), seed-select via matchIDs, and
// copy out values. Kept as a separate file purely so query.go stays
// readable; there is no behavioral difference between the two files.

// Result5 is one row of a five-component query.
type Result5[T1, T2, T3, T4, T5 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
	V4     T4
	V5     T5
}

// Query5 is Query1 generalized to five required component types.
func Query5[T1, T2, T3, T4, T5 any](w *World, ct1, ct2, ct3, ct4, ct5 ComponentType, f Filter) ([]Result5[T1, T2, T3, T4, T5], error) {
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
	p5, err := poolFor[T5](w, ct5)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil || p5 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3, p4, p5}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result5[T1, T2, T3, T4, T5], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		v4, _ := p4.Get(Entity{ID: id})
		v5, _ := p5.Get(Entity{ID: id})
		out = append(out, Result5[T1, T2, T3, T4, T5]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3, V4: v4, V5: v5})
	}
	return out, nil
}

// Result6 is one row of a six-component query.
type Result6[T1, T2, T3, T4, T5, T6 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
	V4     T4
	V5     T5
	V6     T6
}

// Query6 is Query1 generalized to six required component types.
func Query6[T1, T2, T3, T4, T5, T6 any](w *World, ct1, ct2, ct3, ct4, ct5, ct6 ComponentType, f Filter) ([]Result6[T1, T2, T3, T4, T5, T6], error) {
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
	p5, err := poolFor[T5](w, ct5)
	if err != nil {
		return nil, err
	}
	p6, err := poolFor[T6](w, ct6)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil || p5 == nil || p6 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3, p4, p5, p6}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result6[T1, T2, T3, T4, T5, T6], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		v4, _ := p4.Get(Entity{ID: id})
		v5, _ := p5.Get(Entity{ID: id})
		v6, _ := p6.Get(Entity{ID: id})
		out = append(out, Result6[T1, T2, T3, T4, T5, T6]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3, V4: v4, V5: v5, V6: v6})
	}
	return out, nil
}

// Result7 is one row of a seven-component query.
type Result7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
	V4     T4
	V5     T5
	V6     T6
	V7     T7
}

// Query7 is Query1 generalized to seven required component types.
func Query7[T1, T2, T3, T4, T5, T6, T7 any](w *World, ct1, ct2, ct3, ct4, ct5, ct6, ct7 ComponentType, f Filter) ([]Result7[T1, T2, T3, T4, T5, T6, T7], error) {
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
	p5, err := poolFor[T5](w, ct5)
	if err != nil {
		return nil, err
	}
	p6, err := poolFor[T6](w, ct6)
	if err != nil {
		return nil, err
	}
	p7, err := poolFor[T7](w, ct7)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil || p5 == nil || p6 == nil || p7 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3, p4, p5, p6, p7}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result7[T1, T2, T3, T4, T5, T6, T7], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		v4, _ := p4.Get(Entity{ID: id})
		v5, _ := p5.Get(Entity{ID: id})
		v6, _ := p6.Get(Entity{ID: id})
		v7, _ := p7.Get(Entity{ID: id})
		out = append(out, Result7[T1, T2, T3, T4, T5, T6, T7]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3, V4: v4, V5: v5, V6: v6, V7: v7})
	}
	return out, nil
}

// Result8 is one row of an eight-component query, the documented arity ceiling.
type Result8[T1, T2, T3, T4, T5, T6, T7, T8 any] struct {
	Entity Entity
	V1     T1
	V2     T2
	V3     T3
	V4     T4
	V5     T5
	V6     T6
	V7     T7
	V8     T8
}

// Query8 is Query1 generalized to eight required component types.
func Query8[T1, T2, T3, T4, T5, T6, T7, T8 any](w *World, ct1, ct2, ct3, ct4, ct5, ct6, ct7, ct8 ComponentType, f Filter) ([]Result8[T1, T2, T3, T4, T5, T6, T7, T8], error) {
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
	p5, err := poolFor[T5](w, ct5)
	if err != nil {
		return nil, err
	}
	p6, err := poolFor[T6](w, ct6)
	if err != nil {
		return nil, err
	}
	p7, err := poolFor[T7](w, ct7)
	if err != nil {
		return nil, err
	}
	p8, err := poolFor[T8](w, ct8)
	if err != nil {
		return nil, err
	}
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil || p5 == nil || p6 == nil || p7 == nil || p8 == nil {
		return nil, nil
	}
	rf := w.filters.resolveCached(f)
	required := append([]componentBase{p1, p2, p3, p4, p5, p6, p7, p8}, rf.withAll...)
	ids := matchIDs(required, rf)
	out := make([]Result8[T1, T2, T3, T4, T5, T6, T7, T8], 0, len(ids))
	for _, id := range ids {
		v1, _ := p1.Get(Entity{ID: id})
		v2, _ := p2.Get(Entity{ID: id})
		v3, _ := p3.Get(Entity{ID: id})
		v4, _ := p4.Get(Entity{ID: id})
		v5, _ := p5.Get(Entity{ID: id})
		v6, _ := p6.Get(Entity{ID: id})
		v7, _ := p7.Get(Entity{ID: id})
		v8, _ := p8.Get(Entity{ID: id})
		out = append(out, Result8[T1, T2, T3, T4, T5, T6, T7, T8]{Entity: genOf(w, id), V1: v1, V2: v2, V3: v3, V4: v4, V5: v5, V6: v6, V7: v7, V8: v8})
	}
	return out, nil
}
