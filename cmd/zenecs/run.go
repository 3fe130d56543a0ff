package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/zenecs/zenecs/internal/components"
	"github.com/zenecs/zenecs/internal/ecs"
	"github.com/zenecs/zenecs/internal/ecsconfig"
	"github.com/zenecs/zenecs/internal/systems"
	"github.com/zenecs/zenecs/internal/zenlog"
)

// fixedDt and maxSubsteps are the demo host's own accumulator tuning, not a
// value the core mandates; they match the scenario worked through in the
// accumulator's own test suite (60Hz simulation, clamp at 4 backlog steps).
const (
	fixedDt     = 1.0 / 60.0
	maxSubsteps = 4
)

func runCmd() *cobra.Command {
	var development bool
	var entityCount int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bundled example world in an ebiten window",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			logger, sync, err := zenlog.New(development)
			if err != nil {
				return fmt.Errorf("zenecs run: building logger: %w", err)
			}
			defer sync()

			settings, err := ecsconfig.Load(configPath)
			if err != nil {
				return fmt.Errorf("zenecs run: loading config: %w", err)
			}

			kernelOpts := settings.Kernel
			kernelOpts.Logger = logger
			kernel := ecs.NewKernel(kernelOpts)
			defer kernel.Dispose()

			world := kernel.CreateWorld(settings.World, "demo", []string{"demo"}, true)

			if err := components.Register(world); err != nil {
				return fmt.Errorf("zenecs run: registering components: %w", err)
			}
			render := systems.Register(world)

			// A fresh world's write phase denies structural changes until the
			// first begin_frame opens the Simulation phase; a zero-dt frame
			// here just opens that gate so the initial entities can be seeded.
			world.BeginFrame(0)
			seedEntities(world, entityCount, logger)

			host := &gameHost{kernel: kernel, render: render}
			ebiten.SetWindowSize(1280, 720)
			ebiten.SetWindowTitle("zenecs demo")
			return ebiten.RunGame(host)
		},
	}
	cmd.Flags().BoolVar(&development, "dev", true, "use zap's human-readable development encoder instead of JSON")
	cmd.Flags().IntVar(&entityCount, "entities", 32, "number of demo entities to seed in a row along the top edge, at rest")
	return cmd
}

// seedEntities populates world with entityCount falling bodies so the demo
// window has something to show; this is the CLI's own scaffolding, not part
// of the bundled example systems package.
func seedEntities(world *ecs.World, count int, logger ecs.Logger) {
	cb := world.BeginWrite()
	for i := 0; i < count; i++ {
		e := cb.CreateEntity(nil)
		x := float64(20 + (i*37)%1200)
		ecs.AddComponent(cb, e, components.PositionType, components.Position{X: x, Y: 20})
		ecs.AddComponent(cb, e, components.VelocityType, components.Velocity{X: 0, Y: 0})
	}
	if err := cb.EndWrite(); err != nil {
		logger.Errorw("seeding demo entities", "error", err)
	}
}

// gameHost adapts the kernel's pump loop to ebiten's Game interface,
// matching game.go's own shape elsewhere in this lineage (Update/Draw/Layout).
type gameHost struct {
	kernel *ecs.Kernel
	render *systems.RenderSystem
}

// Update runs once per ebiten tick (60Hz by default), so its own frame delta
// and the simulation's fixedDt coincide here; a host with a variable frame
// rate would pass a measured delta instead.
func (h *gameHost) Update() error {
	h.kernel.PumpAndLateFrame(fixedDt, fixedDt, maxSubsteps)
	return nil
}

func (h *gameHost) Draw(screen *ebiten.Image) {
	h.render.Draw(screen)
}

func (h *gameHost) Layout(_, _ int) (screenWidth, screenHeight int) {
	return 1280, 720
}
