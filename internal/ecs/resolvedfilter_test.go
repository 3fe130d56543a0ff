package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Resolve_WithAllUnregisteredTypeIsPermanentlyEmpty(t *testing.T) {
	w := newTestWorld(t)
	f := Filter{}.WithAllTypes("nonexistent")

	rf := resolve(w.components, f)

	assert.True(t, rf.empty())
}

func Test_Resolve_WithAllEmptyPoolIsEmpty(t *testing.T) {
	w := newTestWorld(t)
	f := Filter{}.WithAllTypes("position")

	rf := resolve(w.components, f)

	assert.True(t, rf.empty(), "no entity has ever carried position yet")
}

func Test_Resolve_WithAnyBucketWithNoRegisteredPoolsIsEmpty(t *testing.T) {
	w := newTestWorld(t)
	f := Filter{}.WithAnyBucket("ghost1", "ghost2")

	rf := resolve(w.components, f)

	assert.True(t, rf.empty())
}

func Test_MeetsFilter_WithAllRequiresEveryType(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	assert.NoError(t, cb.EndWrite())

	rf := resolve(w.components, Filter{}.WithAllTypes("position", "velocity"))
	assert.False(t, meetsFilter(e.ID, rf), "velocity is missing")

	rf2 := resolve(w.components, Filter{}.WithAllTypes("position"))
	assert.True(t, meetsFilter(e.ID, rf2))
}

func Test_MeetsFilter_WithoutAllExcludesEntitiesCarryingIt(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	AddComponent(cb, e, ComponentType("tag"), wTag{})
	assert.NoError(t, cb.EndWrite())

	rf := resolve(w.components, Filter{}.WithAllTypes("position").WithoutAllTypes("tag"))
	assert.False(t, meetsFilter(e.ID, rf))
}

func Test_MeetsFilter_WithAnyBucketMatchesIfAnyMemberPresent(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("velocity"), wVelocity{X: 1})
	assert.NoError(t, cb.EndWrite())

	rf := resolve(w.components, Filter{}.WithAnyBucket("position", "velocity"))
	assert.True(t, meetsFilter(e.ID, rf))
}

func Test_MeetsFilter_WithoutAnyBucketExcludesIfAnyMemberPresent(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("tag"), wTag{})
	assert.NoError(t, cb.EndWrite())

	rf := resolve(w.components, Filter{}.WithoutAnyBucket("position", "tag"))
	assert.False(t, meetsFilter(e.ID, rf))
}

func Test_FilterCache_ResolveCachedReturnsSameInstanceForSameKey(t *testing.T) {
	w := newTestWorld(t)
	fc := newFilterCache(w.components)
	f := Filter{}.WithAllTypes("position")

	first := fc.resolveCached(f)
	second := fc.resolveCached(f)

	assert.Same(t, first, second)
}

func Test_FilterCache_InvalidateDropsEveryEntry(t *testing.T) {
	w := newTestWorld(t)
	fc := newFilterCache(w.components)
	f := Filter{}.WithAllTypes("position")

	first := fc.resolveCached(f)
	fc.invalidate()
	second := fc.resolveCached(f)

	assert.NotSame(t, first, second)
}
