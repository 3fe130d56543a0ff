package ecs

// ResolvedFilter is a Filter with each ComponentType substituted for the
// pool that backs it (§4.3, glossary). A type that has never been
// registered via RegisterComponent has no pool to substitute; such filters
// resolve but can never match anything, which is the Go-idiomatic stand-in
// for "a pool map creates an empty pool if absent" — this module
// has no dynamically-typed pool constructor (Go pools are generic over a
// compile-time T), so an unregistered type is treated as a permanently-empty
// requirement rather than materialized on the fly. See design notes.
type ResolvedFilter struct {
	reg        *registry
	key        FilterKey
	withAll    []componentBase
	withoutAll []componentBase
	withAny    [][]componentBase
	withoutAny [][]componentBase
	// anyRequiredMissing is true if with_all names a type with no pool, or
	// any with_any bucket has zero registered pools (so it can never be
	// satisfied). Either case forces the iterator empty per enumeration
	// rule 1.
	anyRequiredMissing bool

	// Bitmask form of the same four constraint sets, the actual fast path
	// meetsFilter consults (§4.3, §10 "Bitset representation"): allMask maps
	// to ContainsAll, noneMask to ContainsNone, each withAny bucket to its
	// own ContainsAny check, each withoutAny bucket to its own ContainsNone
	// check. Built from the filter's original type lists, independent of
	// whether a pool happens to exist yet, so a type registered after this
	// filter was first resolved still gets a bit (registry.maskFor assigns
	// one on first sight).
	allMask      componentMask
	noneMask     componentMask
	anyMasks     []componentMask
	noneAnyMasks []componentMask
}

// resolve looks up rf's pools in reg and computes its cache key. Call sites
// should consult a filterCache before calling this directly.
func resolve(reg *registry, f Filter) *ResolvedFilter {
	rf := &ResolvedFilter{reg: reg, key: f.Key()}

	for _, t := range f.WithAll {
		p, ok := reg.get(t)
		if !ok {
			rf.anyRequiredMissing = true
			continue
		}
		rf.withAll = append(rf.withAll, p)
	}
	rf.allMask = reg.maskFor(f.WithAll)

	for _, t := range f.WithoutAll {
		if p, ok := reg.get(t); ok {
			rf.withoutAll = append(rf.withoutAll, p)
		}
		// A without_all type with no pool forbids nothing; no-op.
	}
	rf.noneMask = reg.maskFor(f.WithoutAll)

	for _, bucket := range f.WithAny {
		var pools []componentBase
		for _, t := range bucket {
			if p, ok := reg.get(t); ok {
				pools = append(pools, p)
			}
		}
		if len(pools) == 0 {
			rf.anyRequiredMissing = true
		}
		rf.withAny = append(rf.withAny, pools)
		rf.anyMasks = append(rf.anyMasks, reg.maskFor(bucket))
	}
	for _, bucket := range f.WithoutAny {
		var pools []componentBase
		for _, t := range bucket {
			if p, ok := reg.get(t); ok {
				pools = append(pools, p)
			}
		}
		rf.withoutAny = append(rf.withoutAny, pools)
		rf.noneAnyMasks = append(rf.noneAnyMasks, reg.maskFor(bucket))
	}
	return rf
}

// meetsFilter implements §4.3's meets_filter(id, rf) predicate via a single
// per-entity membership mask (registry.entityMask) checked against rf's
// precomputed bucket masks, rather than re-walking each constituent pool.
func meetsFilter(id EntityID, rf *ResolvedFilter) bool {
	em := rf.reg.entityMask(Entity{ID: id})
	if !em.ContainsAll(rf.allMask) {
		return false
	}
	if !em.ContainsNone(rf.noneMask) {
		return false
	}
	for _, m := range rf.anyMasks {
		if !em.ContainsAny(m) {
			return false
		}
	}
	for _, m := range rf.noneAnyMasks {
		if !em.ContainsNone(m) {
			return false
		}
	}
	return true
}

// empty reports whether rf can never match any entity, per enumeration
// rule 1 (§4.3).
func (rf *ResolvedFilter) empty() bool {
	if rf.anyRequiredMissing {
		return true
	}
	for _, p := range rf.withAll {
		if p.Len() == 0 {
			return true
		}
	}
	return false
}

// filterCache memoizes resolve() results keyed by FilterKey, invalidated
// wholesale on world reset (§3).
type filterCache struct {
	reg   *registry
	cache map[FilterKey]*ResolvedFilter
}

func newFilterCache(reg *registry) *filterCache {
	return &filterCache{reg: reg, cache: make(map[FilterKey]*ResolvedFilter)}
}

// resolveCached returns the cached ResolvedFilter for f, computing and
// storing it on first use.
func (fc *filterCache) resolveCached(f Filter) *ResolvedFilter {
	k := f.Key()
	if rf, ok := fc.cache[k]; ok {
		return rf
	}
	rf := resolve(fc.reg, f)
	fc.cache[k] = rf
	return rf
}

// invalidate drops every cached resolution (called on world reset, since
// pool identities and emptiness may have changed).
func (fc *filterCache) invalidate() {
	fc.cache = make(map[FilterKey]*ResolvedFilter)
}
