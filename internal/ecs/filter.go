package ecs

import "hash/fnv"

// Filter is the four disjoint constraint sets over component types (§4.3):
// with_all requires every listed type, without_all forbids every listed
// type, with_any is a list of buckets where each bucket requires at least
// one of its types, and without_any is a list of buckets where each bucket
// forbids all of its types. Grounded on query/builder.go's fluent
// QueryBuilderImpl, stripped of everything that isn't type-presence algebra
// (spatial/hierarchical/temporal/grouping/custom-predicate/order-by/limit
// all conflict with the declared query-engine scope and are dropped).
type Filter struct {
	WithAll    []ComponentType
	WithoutAll []ComponentType
	WithAny    [][]ComponentType
	WithoutAny [][]ComponentType
}

// NewFilter returns an empty filter (matches every entity).
func NewFilter() Filter { return Filter{} }

// All returns a filter requiring every listed type.
func All(types ...ComponentType) Filter {
	return Filter{WithAll: append([]ComponentType(nil), types...)}
}

// WithAllTypes returns a copy of f with additional required types.
func (f Filter) WithAllTypes(types ...ComponentType) Filter {
	f.WithAll = append(append([]ComponentType(nil), f.WithAll...), types...)
	return f
}

// WithoutAllTypes returns a copy of f with additional forbidden types.
func (f Filter) WithoutAllTypes(types ...ComponentType) Filter {
	f.WithoutAll = append(append([]ComponentType(nil), f.WithoutAll...), types...)
	return f
}

// WithAnyBucket returns a copy of f with an additional with-any bucket
// (entity must carry at least one type in the bucket).
func (f Filter) WithAnyBucket(types ...ComponentType) Filter {
	bucket := append([]ComponentType(nil), types...)
	f.WithAny = append(append([][]ComponentType(nil), f.WithAny...), bucket)
	return f
}

// WithoutAnyBucket returns a copy of f with an additional without-any
// bucket (entity must carry none of the types in the bucket).
func (f Filter) WithoutAnyBucket(types ...ComponentType) Filter {
	bucket := append([]ComponentType(nil), types...)
	f.WithoutAny = append(append([][]ComponentType(nil), f.WithoutAny...), bucket)
	return f
}

// FilterKey is an order-independent cache key: two filters that differ only
// by permutation of their type sets (or bucket order) produce the same key.
type FilterKey uint64

const (
	mixWithAll    uint64 = 0x9e3779b97f4a7c15
	mixWithoutAll uint64 = 0xc2b2ae3d27d4eb4f
	mixWithAny    uint64 = 0x165667b19e3779f9
	mixWithoutAny uint64 = 0x27d4eb2f165667c5
	mixBucket     uint64 = 0x2545f4914f6cdd1d
)

// fnv1a hashes a single type name.
func fnv1a(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// unorderedSetHash combines hashes of set members order-independently via
// XOR, so permutations of the same set collide deliberately.
func unorderedSetHash(types []ComponentType) uint64 {
	var acc uint64
	for _, t := range types {
		acc ^= fnv1a(string(t))
	}
	return acc
}

// bucketedSetHash hashes a list of buckets (each itself an unordered set),
// treating bucket order as insignificant: each bucket hashes to a salted
// value via unorderedSetHash mixed with mixBucket, then those per-bucket
// hashes are XOR-combined.
func bucketedSetHash(buckets [][]ComponentType) uint64 {
	var acc uint64
	for _, b := range buckets {
		acc ^= (unorderedSetHash(b) * mixBucket) ^ uint64(len(b))
	}
	return acc
}

// Key computes f's order-independent resolution cache key (§4.3, §8:
// resolve(f1) == resolve(f2) iff key(f1) == key(f2) modulo bucket
// reordering).
func (f Filter) Key() FilterKey {
	k := (unorderedSetHash(f.WithAll) * mixWithAll) ^
		(unorderedSetHash(f.WithoutAll) * mixWithoutAll) ^
		(bucketedSetHash(f.WithAny) * mixWithAny) ^
		(bucketedSetHash(f.WithoutAny) * mixWithoutAny)
	return FilterKey(k)
}
