package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenecs/zenecs/internal/ecs"
)

func Test_Register_WiresBothTypesAndFormatters(t *testing.T) {
	w := ecs.NewWorld(1, "test", nil, ecs.DefaultWorldConfig(), ecs.WorldOptions{})
	assert.NoError(t, Register(w))

	w.BeginFrame(0)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, PositionType, Position{X: 1, Y: 2, Z: 3})
	ecs.AddComponent(cb, e, VelocityType, Velocity{X: 4, Y: 5, Z: 6})
	assert.NoError(t, cb.EndWrite())

	p, err := ecs.ReadComponent[Position](w, e, PositionType)
	assert.NoError(t, err)
	assert.Equal(t, Position{X: 1, Y: 2, Z: 3}, p)

	v, err := ecs.ReadComponent[Velocity](w, e, VelocityType)
	assert.NoError(t, err)
	assert.Equal(t, Velocity{X: 4, Y: 5, Z: 6}, v)
}

func Test_Register_Duplicate_ErrorsOnSecondCall(t *testing.T) {
	w := ecs.NewWorld(1, "test", nil, ecs.DefaultWorldConfig(), ecs.WorldOptions{})
	assert.NoError(t, Register(w))
	assert.Error(t, Register(w))
}

func Test_PositionMarshalUnmarshal_RoundTrips(t *testing.T) {
	p := Position{X: 1.5, Y: -2.25, Z: 0}
	data, err := MarshalPosition(p)
	assert.NoError(t, err)

	got, err := UnmarshalPosition(data)
	assert.NoError(t, err)
	assert.Equal(t, p, got)
}

func Test_VelocityMarshalUnmarshal_RoundTrips(t *testing.T) {
	v := Velocity{X: -1, Y: 2, Z: 3.75}
	data, err := MarshalVelocity(v)
	assert.NoError(t, err)

	got, err := UnmarshalVelocity(data)
	assert.NoError(t, err)
	assert.Equal(t, v, got)
}

func Test_UnmarshalPosition_InvalidJSONErrors(t *testing.T) {
	_, err := UnmarshalPosition([]byte("not json"))
	assert.Error(t, err)
}
