package ecs

import "math"

// KernelOptions configures process-wide policy shared by every world the
// kernel creates (§6.2: write_failure_policy, error_report_hook, logger).
type KernelOptions struct {
	WriteFailurePolicy WriteFailurePolicy
	Logger             Logger
	ErrorReportHook    func(error)
}

// Kernel owns the world registry and the fixed-step accumulator that drives
// every world's frame loop (§4.7).
type Kernel struct {
	worlds  map[WorldID]*World
	byName  map[string]WorldID
	nextID  WorldID
	current WorldID

	pendingDestroy []WorldID

	accumulator float64

	opts   KernelOptions
	logger Logger
}

// NewKernel constructs an empty kernel.
func NewKernel(opts KernelOptions) *Kernel {
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	return &Kernel{
		worlds: make(map[WorldID]*World),
		byName: make(map[string]WorldID),
		opts:   opts,
		logger: logger,
	}
}

// CreateWorld constructs a new World under this kernel, optionally setting
// it as current.
func (k *Kernel) CreateWorld(cfg WorldConfig, name string, tags []string, setCurrent bool) *World {
	k.nextID++
	id := k.nextID
	w := NewWorld(id, name, tags, cfg, WorldOptions{
		WriteFailurePolicy: k.opts.WriteFailurePolicy,
		Logger:             k.logger,
		ErrorReportHook:    k.opts.ErrorReportHook,
	})
	k.worlds[id] = w
	if name != "" {
		k.byName[name] = id
	}
	if setCurrent || k.current == 0 {
		k.current = id
	}
	return w
}

// DestroyWorld queues id for removal. Per §5's shared-resource policy,
// destruction mutates the registry only outside a world step, so the
// removal is always deferred: wherever it is called from, it takes effect
// at the next pump's frame boundary (or at Dispose), never immediately.
func (k *Kernel) DestroyWorld(id WorldID) bool {
	if _, ok := k.worlds[id]; !ok {
		return false
	}
	k.pendingDestroy = append(k.pendingDestroy, id)
	return true
}

func (k *Kernel) applyPendingDestroys() {
	if len(k.pendingDestroy) == 0 {
		return
	}
	for _, id := range k.pendingDestroy {
		w, ok := k.worlds[id]
		if !ok {
			continue
		}
		w.dispose()
		delete(k.worlds, id)
		if w.name != "" && k.byName[w.name] == id {
			delete(k.byName, w.name)
		}
		if k.current == id {
			k.current = 0
		}
	}
	k.pendingDestroy = nil
}

// FindWorldByID returns the world with the given id, if it still exists.
func (k *Kernel) FindWorldByID(id WorldID) (*World, bool) {
	w, ok := k.worlds[id]
	return w, ok
}

// FindWorldByName returns the world registered under name, if any.
func (k *Kernel) FindWorldByName(name string) (*World, bool) {
	id, ok := k.byName[name]
	if !ok {
		return nil, false
	}
	w, ok := k.worlds[id]
	return w, ok
}

// FindWorldsByTag returns every world currently carrying tag.
func (k *Kernel) FindWorldsByTag(tag string) []*World {
	var out []*World
	for _, w := range k.worlds {
		if w.HasTag(tag) {
			out = append(out, w)
		}
	}
	return out
}

// SetCurrent marks w as the kernel's current world.
func (k *Kernel) SetCurrent(w *World) { k.current = w.id }

// Current returns the kernel's current world, if one is set.
func (k *Kernel) Current() (*World, bool) {
	w, ok := k.worlds[k.current]
	return w, ok
}

func (k *Kernel) eligibleWorlds() []*World {
	var out []*World
	for _, w := range k.worlds {
		if !w.IsPaused() && !w.disposed {
			out = append(out, w)
		}
	}
	return out
}

// PumpAndLateFrame runs exactly one host tick: begin_frame for every
// eligible world, a deterministic fixed-step accumulator (clamped to
// maxSubsteps, with a spiral-of-death guard that drops backlog rather than
// ever falling further behind), then late_frame with the resulting
// interpolation alpha (§4.7).
func (k *Kernel) PumpAndLateFrame(dt, fixedDt float64, maxSubsteps int) {
	k.applyPendingDestroys()

	worlds := k.eligibleWorlds()
	for _, w := range worlds {
		w.BeginFrame(dt)
	}

	k.accumulator += dt
	steps := int(math.Floor(k.accumulator / fixedDt))
	if steps > maxSubsteps {
		steps = maxSubsteps
	}
	k.accumulator -= float64(steps) * fixedDt
	if int(math.Floor(k.accumulator/fixedDt)) > maxSubsteps {
		k.accumulator = 0 // spiral-of-death guard: drop excess backlog
	}

	for s := 0; s < steps; s++ {
		for _, w := range worlds {
			w.FixedStep(fixedDt)
		}
	}

	alpha := k.accumulator / fixedDt
	for _, w := range worlds {
		w.LateFrame(dt, alpha)
	}
}

// Dispose tears down every world the kernel owns.
func (k *Kernel) Dispose() {
	for id := range k.worlds {
		k.DestroyWorld(id)
	}
	k.applyPendingDestroys()
}
