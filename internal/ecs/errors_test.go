package ecs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewError_RendersKindAndMessage(t *testing.T) {
	err := NewError(NotFound, "component type %q not registered", "position")

	assert.Equal(t, NotFound, err.Kind)
	assert.Contains(t, err.Error(), "NotFound")
	assert.Contains(t, err.Error(), `component type "position" not registered`)
}

func Test_EcsError_WithBuilders_ChainAndRender(t *testing.T) {
	err := NewError(InvalidOperation, "add_component failed").
		WithEntity(Entity{ID: 5, Gen: 1}).
		WithComponent("position").
		WithSystem("movement").
		WithWorld("demo")

	rendered := err.Error()
	assert.Contains(t, rendered, "demo")
	assert.Contains(t, rendered, "entity 5:1")
	assert.Contains(t, rendered, "component position")
	assert.Contains(t, rendered, "system movement")
}

func Test_WrapError_PreservesUnderlyingError(t *testing.T) {
	wrapped := WrapError(InvalidOperation, ErrMissingComponent, "remove_component %s", "velocity")

	assert.ErrorIs(t, wrapped, ErrMissingComponent)
	assert.Contains(t, wrapped.Error(), ErrMissingComponent.Error())
}

func Test_KindOf_And_IsKind(t *testing.T) {
	err := NewError(DependencyCycle, "cycle detected")

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, DependencyCycle, kind)
	assert.True(t, IsKind(err, DependencyCycle))
	assert.False(t, IsKind(err, NotFound))
}

func Test_KindOf_NonEcsError(t *testing.T) {
	_, ok := KindOf(errors.New("plain error"))
	assert.False(t, ok)
}

func Test_ErrorKind_StringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", ErrorKind(999).String())
}
