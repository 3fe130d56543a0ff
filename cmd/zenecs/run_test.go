package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
)

func newRunTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld(1, "demo", []string{"demo"}, ecs.DefaultWorldConfig(), ecs.WorldOptions{})
	assert.NoError(t, components.Register(w))
	w.BeginFrame(0)
	return w
}

func Test_SeedEntities_CreatesRequestedCountWithPositionAndVelocity(t *testing.T) {
	w := newRunTestWorld(t)

	seedEntities(w, 5, ecs.NopLogger{})

	rows, err := ecs.Query2[components.Position, components.Velocity](
		w, components.PositionType, components.VelocityType, ecs.NewFilter())
	assert.NoError(t, err)
	assert.Len(t, rows, 5)
}

func Test_SeedEntities_SpreadsXAcrossEntities(t *testing.T) {
	w := newRunTestWorld(t)

	seedEntities(w, 3, ecs.NopLogger{})

	rows, err := ecs.Query1[components.Position](w, components.PositionType, ecs.NewFilter())
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	seen := make(map[float64]bool)
	for _, r := range rows {
		seen[r.V1.X] = true
		assert.Equal(t, 20.0, r.V1.Y)
	}
	assert.Len(t, seen, 3, "each seeded entity gets a distinct starting x")
}

func Test_SeedEntities_ZeroCountCreatesNothing(t *testing.T) {
	w := newRunTestWorld(t)

	seedEntities(w, 0, ecs.NopLogger{})

	rows, err := ecs.Query1[components.Position](w, components.PositionType, ecs.NewFilter())
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func Test_GameHost_Layout_ReturnsFixedDemoResolution(t *testing.T) {
	h := &gameHost{}
	w, height := h.Layout(999, 999)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, height)
}

func Test_RunCmd_RegistersFlags(t *testing.T) {
	cmd := runCmd()
	assert.Equal(t, "run", cmd.Use)

	devFlag := cmd.Flags().Lookup("dev")
	assert.NotNil(t, devFlag)
	assert.Equal(t, "true", devFlag.DefValue)

	entitiesFlag := cmd.Flags().Lookup("entities")
	assert.NotNil(t, entitiesFlag)
	assert.Equal(t, "32", entitiesFlag.DefValue)
}
