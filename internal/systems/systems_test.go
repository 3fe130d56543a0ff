package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

func newSystemsTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld(1, "systems-test", nil, ecs.DefaultWorldConfig(), ecs.WorldOptions{})
	assert.NoError(t, components.Register(w))
	w.BeginFrame(0)
	return w
}

func Test_MovementSystem_IntegratesVelocityIntoPosition(t *testing.T) {
	w := newSystemsTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, components.PositionType, components.Position{X: 0, Y: 0, Z: 0})
	ecs.AddComponent(cb, e, components.VelocityType, components.Velocity{X: 10, Y: -5, Z: 0})
	assert.NoError(t, cb.EndWrite())

	NewMovementSystem().RunFixed(w, 0.5)

	p, err := ecs.ReadComponent[components.Position](w, e, components.PositionType)
	assert.NoError(t, err)
	assert.Equal(t, components.Position{X: 5, Y: -2.5, Z: 0}, p)
}

func Test_MovementSystem_NoEntitiesIsNoop(t *testing.T) {
	w := newSystemsTestWorld(t)
	assert.NotPanics(t, func() { NewMovementSystem().RunFixed(w, 1.0/60.0) })
}

func Test_PhysicsSystem_AppliesGravityAndDrag(t *testing.T) {
	w := newSystemsTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, components.VelocityType, components.Velocity{X: 100, Y: 0, Z: 0})
	assert.NoError(t, cb.EndWrite())

	ps := NewPhysicsSystem()
	ps.RunFixed(w, 1.0/60.0)

	v, err := ecs.ReadComponent[components.Velocity](w, e, components.VelocityType)
	assert.NoError(t, err)
	wantX := (100.0 + ps.Gravity.X/60.0) * ps.Drag
	wantY := (0.0 + ps.Gravity.Y/60.0) * ps.Drag
	assert.InDelta(t, wantX, v.X, 1e-9)
	assert.InDelta(t, wantY, v.Y, 1e-9)
}

func Test_Register_AddsAllThreeSystemsAtNextBeginFrame(t *testing.T) {
	w := newSystemsTestWorld(t)
	render := Register(w)
	assert.NotNil(t, render)

	_, ok := w.TryGetSystem(MovementSystemType)
	assert.False(t, ok, "AddSystem queues; it takes effect at the next BeginFrame's applyPending")

	w.BeginFrame(0)
	_, ok = w.TryGetSystem(MovementSystemType)
	assert.True(t, ok)
	_, ok = w.TryGetSystem(PhysicsSystemType)
	assert.True(t, ok)
	_, ok = w.TryGetSystem(RenderSystemType)
	assert.True(t, ok)
}

func Test_RenderSystem_DispatchTracksPositionAddAndReplace(t *testing.T) {
	w := newSystemsTestWorld(t)
	rs := NewRenderSystem(w)

	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, components.PositionType, components.Position{X: 1, Y: 1})
	assert.NoError(t, cb.EndWrite())

	assert.Equal(t, components.Position{X: 1, Y: 1}, rs.current[e.ID])

	cb2 := w.BeginWrite()
	ecs.ReplaceComponent(cb2, e, components.PositionType, components.Position{X: 2, Y: 2})
	assert.NoError(t, cb2.EndWrite())

	assert.Equal(t, components.Position{X: 2, Y: 2}, rs.current[e.ID])
}

func Test_RenderSystem_DispatchDropsEntryOnDestroy(t *testing.T) {
	w := newSystemsTestWorld(t)
	rs := NewRenderSystem(w)

	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	ecs.AddComponent(cb, e, components.PositionType, components.Position{X: 1, Y: 1})
	assert.NoError(t, cb.EndWrite())

	cb2 := w.BeginWrite()
	cb2.DestroyEntity(e)
	assert.NoError(t, cb2.EndWrite())

	_, ok := rs.current[e.ID]
	assert.False(t, ok)
}

func Test_RenderSystem_PresentInterpolatesBetweenPreviousAndCurrent(t *testing.T) {
	w := newSystemsTestWorld(t)
	rs := NewRenderSystem(w)
	id := ecs.EntityID(1)
	rs.previous[id] = components.Position{X: 0, Y: 0}
	rs.current[id] = components.Position{X: 10, Y: 20}

	rs.Present(w, 1.0/60.0, 0.5)

	assert.Len(t, rs.frame, 1)
	assert.InDelta(t, 5.0, rs.frame[0].x, 1e-9)
	assert.InDelta(t, 10.0, rs.frame[0].y, 1e-9)
}

func Test_RenderSystem_SetupFixedShiftsCurrentIntoPrevious(t *testing.T) {
	w := newSystemsTestWorld(t)
	rs := NewRenderSystem(w)
	id := ecs.EntityID(1)
	rs.current[id] = components.Position{X: 3, Y: 4}

	rs.SetupFixed(w, 1.0/60.0)

	assert.Equal(t, components.Position{X: 3, Y: 4}, rs.previous[id])
}
