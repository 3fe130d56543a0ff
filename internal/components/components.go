// Package components holds the example component types shipped alongside
// the core to exercise the query engine, command buffer, and snapshot codec
// end to end, generalized from an internal/core/ecs/components-style package
// (TransformComponent, PhysicsComponent) down to the core's plain
// value-type model: every Pool[T] needs a concrete T with no identity of
// its own, so there is no Transform/Physics split here, just Position and
// Velocity.
package components

import (
	"encoding/json"

	"github.com/zenecs/zenecs/internal/ecs"
)

// Position is a point in 3D space. Z is carried even though the bundled
// systems are 2D-only, matching a Vector2-vs-future-Vector3 ambiguity seen
// in transform.go's own comments (which reference "2D/3D" interchangeably)
// by just picking 3D up front rather than needing a breaking change later.
type Position struct {
	X, Y, Z float64
}

// Velocity is the rate of change applied to Position by MovementSystem.
type Velocity struct {
	X, Y, Z float64
}

// PositionType and VelocityType are the component types components are
// registered under via ecs.RegisterComponent.
const (
	PositionType ecs.ComponentType = "zenecs.Position"
	VelocityType ecs.ComponentType = "zenecs.Velocity"
)

// Stable snapshot wire ids (§6.3): reverse-DNS, versioned.
const (
	PositionStableID = "com.zenecs.position.v1"
	VelocityStableID = "com.zenecs.velocity.v1"
)

type positionWire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalPosition and UnmarshalPosition are the snapshot formatter functions
// for RegisterFormatter[Position]. JSON keeps the payload human-readable in
// the raw snapshot bytes, the same reason every component in the
// originating components package carries `json:"..."` struct tags;
// `zenecs inspect` does not decode payloads, only per-pool counts and ids.
func MarshalPosition(p Position) ([]byte, error) {
	return json.Marshal(positionWire{X: p.X, Y: p.Y, Z: p.Z})
}

func UnmarshalPosition(data []byte) (Position, error) {
	var w positionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Position{}, err
	}
	return Position{X: w.X, Y: w.Y, Z: w.Z}, nil
}

type velocityWire struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MarshalVelocity and UnmarshalVelocity are the snapshot formatter functions
// for RegisterFormatter[Velocity].
func MarshalVelocity(v Velocity) ([]byte, error) {
	return json.Marshal(velocityWire{X: v.X, Y: v.Y, Z: v.Z})
}

func UnmarshalVelocity(data []byte) (Velocity, error) {
	var w velocityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Velocity{}, err
	}
	return Velocity{X: w.X, Y: w.Y, Z: w.Z}, nil
}

// Register wires both component types and their formatters into w, the
// bundled-systems wiring entry point used by cmd/zenecs and by tests that
// exercise the example systems.
func Register(w *ecs.World) error {
	if err := ecs.RegisterComponent[Position](w, PositionType, PositionStableID); err != nil {
		return err
	}
	if err := ecs.RegisterComponent[Velocity](w, VelocityType, VelocityStableID); err != nil {
		return err
	}
	ecs.RegisterFormatter[Position](w, PositionType, MarshalPosition, UnmarshalPosition)
	ecs.RegisterFormatter[Velocity](w, VelocityType, MarshalVelocity, UnmarshalVelocity)
	return nil
}
