package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Registry_RegisterDuplicateTypeErrors(t *testing.T) {
	w := newTestWorld(t)
	err := RegisterComponent[wPosition](w, "position", "test.position.dup")
	assert.Error(t, err)
}

func Test_Registry_StableIDFallsBackToBareTypeName(t *testing.T) {
	w := newTestWorld(t)
	assert.NoError(t, RegisterComponent[wTag](w, "untagged", ""))

	assert.Equal(t, "untagged", w.components.stableIDFor("untagged"))
	assert.Equal(t, "test.position", w.components.stableIDFor("position"))
}

func Test_Registry_AllTypesSortedDeterministically(t *testing.T) {
	w := newTestWorld(t)
	types := w.components.allTypes()
	for i := 1; i < len(types); i++ {
		assert.Less(t, types[i-1], types[i])
	}
}

func Test_Registry_RemoveAllDropsEveryComponent(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	AddComponent(cb, e, ComponentType("velocity"), wVelocity{X: 2})
	assert.NoError(t, cb.EndWrite())

	w.components.removeAll(e)

	_, ok := TryGetComponent[wPosition](w, e, "position")
	assert.False(t, ok)
	_, ok = TryGetComponent[wVelocity](w, e, "velocity")
	assert.False(t, ok)
}

func Test_Registry_ResetEmptiesPoolsButKeepsTypes(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	assert.NoError(t, cb.EndWrite())

	w.components.reset()

	_, ok := w.components.get("position")
	assert.True(t, ok, "reset must not deregister the type")
	_, ok = TryGetComponent[wPosition](w, e, "position")
	assert.False(t, ok)
}

func Test_Registry_EntityMaskReflectsLiveComponents(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	assert.NoError(t, cb.EndWrite())

	m := w.components.entityMask(e)

	var posBit componentMask
	posBit.Mark(uint(w.components.types.bit("position")))
	assert.True(t, m.ContainsAll(posBit))

	var velBit componentMask
	velBit.Mark(uint(w.components.types.bit("velocity")))
	assert.False(t, m.ContainsAll(velBit))
}
