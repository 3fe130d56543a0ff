package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

// RenderSystemType identifies RenderSystem.
const RenderSystemType ecs.SystemType = "zenecs.RenderSystem"

// RenderSystem is the example of the binding router's "concrete delivery to
// render targets" boundary (§1): it registers itself as a
// ecs.BinderDispatcher, so it learns about Position changes the instant a
// command buffer applies them rather than polling a query every present,
// and it owns the previous/current value pair that makes interpolation
// possible. The core itself never imports ebiten; only this package and
// cmd/zenecs do, matching game.go's own import boundary (the only file in
// its originating repository that imports ebiten at all).
type RenderSystem struct {
	world *ecs.World

	previous map[ecs.EntityID]components.Position
	current  map[ecs.EntityID]components.Position

	// frame is the interpolated draw list computed by the most recent
	// Present call. Draw (called from the host's ebiten.Game.Draw
	// callback, not from Present) consumes it; Present and Draw run at
	// different times in the frame (Present during late_frame, Draw
	// whenever the host's render loop next paints), so the two are
	// deliberately decoupled through this buffer rather than Present
	// holding a live *ebiten.Image.
	frame []frameEntry

	background color.Color
}

type frameEntry struct {
	id   ecs.EntityID
	x, y float64
}

// NewRenderSystem constructs a RenderSystem wired against w and registers
// it as a binder-dispatch sink. w must already have components.Register
// called against it.
func NewRenderSystem(w *ecs.World) *RenderSystem {
	rs := &RenderSystem{
		world:      w,
		previous:   make(map[ecs.EntityID]components.Position),
		current:    make(map[ecs.EntityID]components.Position),
		background: color.RGBA{R: 20, G: 20, B: 40, A: 255},
	}
	w.Binder().Register(rs)
	return rs
}

func (s *RenderSystem) Type() ecs.SystemType { return RenderSystemType }

// Dispatch implements ecs.BinderDispatcher. It only cares about Position
// mutations and entity destruction; everything else is ignored.
func (s *RenderSystem) Dispatch(delta ecs.ComponentDelta) {
	switch delta.Kind {
	case ecs.DeltaAdded, ecs.DeltaReplaced:
		if delta.Type != components.PositionType {
			return
		}
		if v, ok := ecs.TryGetComponent[components.Position](s.world, delta.Entity, components.PositionType); ok {
			s.current[delta.Entity.ID] = v
		}
	case ecs.DeltaRemoved:
		if delta.Type == components.PositionType {
			delete(s.current, delta.Entity.ID)
			delete(s.previous, delta.Entity.ID)
		}
	case ecs.DeltaDestroyed:
		delete(s.current, delta.Entity.ID)
		delete(s.previous, delta.Entity.ID)
	}
}

// SetupFixed shifts this step's current values into previous right before
// MovementSystem/PhysicsSystem run, so Present can interpolate between the
// position at the start of this fixed step and the position at its end
// (§4.6's alpha parameter).
func (s *RenderSystem) SetupFixed(w *ecs.World, fixedDt float64) {
	for id, v := range s.current {
		s.previous[id] = v
	}
}

// Present computes the interpolated position of every tracked entity,
// blended between the fixed step's start (previous) and end (current) by
// alpha, and stashes the result for the next Draw call.
func (s *RenderSystem) Present(w *ecs.World, dt, alpha float64) {
	frame := make([]frameEntry, 0, len(s.current))
	for id, cur := range s.current {
		prev, ok := s.previous[id]
		if !ok {
			prev = cur
		}
		frame = append(frame, frameEntry{
			id: id,
			x:  prev.X + (cur.X-prev.X)*alpha,
			y:  prev.Y + (cur.Y-prev.Y)*alpha,
		})
	}
	s.frame = frame
}

// Draw paints the most recently computed frame onto screen. Called from the
// host's ebiten.Game.Draw callback (cmd/zenecs), never from Present itself.
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	for _, e := range s.frame {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d (%.1f, %.1f)", e.id, e.x, e.y), int(e.x), int(e.y))
	}
}
