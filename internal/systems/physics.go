package systems

import (
	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

// PhysicsSystemType identifies PhysicsSystem.
const PhysicsSystemType ecs.SystemType = "zenecs.PhysicsSystem"

// PhysicsSystem applies gravity and drag to Velocity once per fixed step,
// grounded on physics.go's own applyGravity/applyDrag, trimmed to drop
// collision detection and static colliders: no component here models a
// collider shape, so there is nothing for an AABB pass to operate on.
type PhysicsSystem struct {
	Gravity components.Velocity
	Drag    float64
}

// NewPhysicsSystem constructs a PhysicsSystem with the same default gravity
// vector used elsewhere in this lineage (downward, scaled for a 2D game)
// and a mild drag coefficient.
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		Gravity: components.Velocity{X: 0, Y: 9.8 * 100},
		Drag:    0.98,
	}
}

func (s *PhysicsSystem) Type() ecs.SystemType { return PhysicsSystemType }

// RunFixed must run after MovementSystem within FixedGroup: it wants to
// apply this step's gravity/drag to the velocity MovementSystem is about to
// integrate into position *next* step, not the value already consumed this
// step (§4.6's OrderAfter partial ordering).
func (s *PhysicsSystem) RunFixed(w *ecs.World, fixedDt float64) {
	rows, err := ecs.Query1[components.Velocity](w, components.VelocityType, ecs.NewFilter())
	if err != nil {
		return
	}
	if len(rows) == 0 {
		return
	}

	cb := w.BeginWrite()
	for _, row := range rows {
		v := row.V1
		v.Y += s.Gravity.Y * fixedDt
		v.X += s.Gravity.X * fixedDt
		v.X *= s.Drag
		v.Y *= s.Drag
		v.Z *= s.Drag
		ecs.ReplaceComponent(cb, row.Entity, components.VelocityType, v)
	}
	_ = cb.EndWrite()
}
