package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HookRegistry_CanWrite_AllHooksMustAgree(t *testing.T) {
	h := newHookRegistry()
	h.addWritePermission(func(e Entity, ct ComponentType) bool { return true })
	h.addWritePermission(func(e Entity, ct ComponentType) bool { return ct != "locked" })

	assert.True(t, h.canWrite(Entity{ID: 1}, "position"))
	assert.False(t, h.canWrite(Entity{ID: 1}, "locked"))
}

func Test_HookRegistry_CanRead_AllHooksMustAgree(t *testing.T) {
	h := newHookRegistry()
	h.addReadPermission(func(e Entity, ct ComponentType) bool { return ct != "secret" })

	assert.True(t, h.canRead(Entity{ID: 1}, "position"))
	assert.False(t, h.canRead(Entity{ID: 1}, "secret"))
}

func Test_HookRegistry_TypedValidator_OnlyRunsAgainstMatchingType(t *testing.T) {
	h := newHookRegistry()
	RegisterTypedValidator(h, ComponentType("position"), func(p wPosition) bool { return p.X >= 0 })

	assert.True(t, h.validateValue("position", wPosition{X: 1}))
	assert.False(t, h.validateValue("position", wPosition{X: -1}))
	assert.True(t, h.validateValue("position", wVelocity{X: -1}), "a value of a different type is not this validator's concern")
}

func Test_HookRegistry_ObjectValidator_RunsAgainstEveryValue(t *testing.T) {
	h := newHookRegistry()
	h.addObjectValidator(func(v any) bool {
		p, ok := v.(wPosition)
		return !ok || p.X < 100
	})

	assert.True(t, h.validateValue("position", wPosition{X: 1}))
	assert.False(t, h.validateValue("position", wPosition{X: 200}))
}

func Test_WriteGate_DenyAllWritesRejectsEverything(t *testing.T) {
	h := newHookRegistry()
	ws := writePhaseState{phase: PhaseNone, denyAllWrites: true}

	err := writeGate(ws, h, Entity{ID: 1}, "position", false, false, nil)

	assert.Error(t, err)
	assert.True(t, IsKind(err, InvalidOperation))
}

func Test_WriteGate_StructuralDeniedWhenNotAllowed(t *testing.T) {
	h := newHookRegistry()
	ws := writePhaseState{phase: PhaseNone}

	structuralErr := writeGate(ws, h, Entity{ID: 1}, "position", true, true, wPosition{})
	assert.Error(t, structuralErr)

	nonStructuralErr := writeGate(ws, h, Entity{ID: 1}, "position", false, true, wPosition{})
	assert.NoError(t, nonStructuralErr)
}

func Test_WriteGate_ValidatorRejectsOnAddOrReplaceOnly(t *testing.T) {
	h := newHookRegistry()
	h.addObjectValidator(func(v any) bool { return false })
	ws := writePhaseState{phase: PhaseSimulation, structuralChangesAllowed: true}

	addErr := writeGate(ws, h, Entity{ID: 1}, "position", true, true, wPosition{})
	assert.Error(t, addErr)

	removeErr := writeGate(ws, h, Entity{ID: 1}, "position", true, false, nil)
	assert.NoError(t, removeErr, "validators are skipped for remove/destroy")
}
