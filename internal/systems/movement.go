// Package systems provides the example systems bundled with the core to
// exercise the query engine, command buffer, and system runner end to end,
// generalized from an internal/core/systems-style package
// (MovementSystem/PhysicsSystem/RenderingSystem/BaseSystem) down to the
// core's FixedRun/Presentation run-kind interfaces instead of a single
// Update/Render pair.
package systems

import (
	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

// MovementSystemType identifies MovementSystem for registration and
// OrderBefore/OrderAfter constraints.
const MovementSystemType ecs.SystemType = "zenecs.MovementSystem"

// MovementSystem integrates Velocity into Position once per fixed step,
// grounded on movement.go's own acceleration/velocity/position integration
// order but trimmed to the core's two plain components: boundary clamping
// and speed limiting belong to PhysicsSystem's domain here, not movement's,
// since this core has no single combined Transform+Physics component to own
// both concerns at once.
type MovementSystem struct{}

// NewMovementSystem constructs a MovementSystem. Stateless: all data it
// needs lives in the world's Position/Velocity pools.
func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Type() ecs.SystemType { return MovementSystemType }

// RunFixed integrates position for every (Position, Velocity) entity,
// demonstrating the query engine (§4.3) composed with the command buffer
// (§4.5): queries never mutate directly, every change is recorded and
// applied through EndWrite.
func (s *MovementSystem) RunFixed(w *ecs.World, fixedDt float64) {
	rows, err := ecs.Query2[components.Position, components.Velocity](
		w, components.PositionType, components.VelocityType, ecs.NewFilter())
	if err != nil {
		return
	}
	if len(rows) == 0 {
		return
	}

	cb := w.BeginWrite()
	for _, row := range rows {
		next := components.Position{
			X: row.V1.X + row.V2.X*fixedDt,
			Y: row.V1.Y + row.V2.Y*fixedDt,
			Z: row.V1.Z + row.V2.Z*fixedDt,
		}
		ecs.ReplaceComponent(cb, row.Entity, components.PositionType, next)
	}
	_ = cb.EndWrite()
}
