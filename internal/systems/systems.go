package systems

import "github.com/zenecs/zenecs/internal/ecs"

// Register wires MovementSystem, PhysicsSystem, and RenderSystem into w,
// returning the constructed RenderSystem so the host loop can call its
// Draw method. PhysicsSystem is declared OrderAfter(MovementSystem),
// demonstrating the partial order §4.6 describes: both run within
// FixedGroup, but gravity/drag computed this step should not retroactively
// change the position this step already integrated.
func Register(w *ecs.World) *RenderSystem {
	w.AddSystem(NewMovementSystem(), ecs.FixedGroup, ecs.PriorityHigh)
	w.AddSystem(NewPhysicsSystem(), ecs.FixedGroup, ecs.PriorityHigh, ecs.OrderAfter(MovementSystemType))

	render := NewRenderSystem(w)
	w.AddSystem(render, ecs.FrameViewGroup, ecs.PriorityNormal)
	return render
}
