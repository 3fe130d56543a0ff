package ecs

import "reflect"

// WorldID is the kernel-assigned opaque identity of a World (§3).
type WorldID uint64

// WorldOptions configures the process-wide policies a World is constructed
// with (§6.2): the write-failure policy, the logger, and the error-report
// hook systems/scheduler/runner failures surface through.
type WorldOptions struct {
	WriteFailurePolicy WriteFailurePolicy
	Logger             Logger
	ErrorReportHook    func(error)
}

// World is the composition root: one entity table, one component registry,
// a hook set, a resolved-filter cache, a binding router, a message bus, a
// job scheduler, a system runner, an external command queue, and a context
// registry (§3). The corresponding world.go elsewhere declares a 311-line
// interface with no implementing type, so this struct is built fresh; its
// shape follows §9's "Deep inheritance / mixins" redesign note: one struct
// delegating to narrow, separately-testable submodules rather than a
// subtyping hierarchy.
type World struct {
	id   WorldID
	name string
	tags map[string]struct{}
	cfg  WorldConfig

	frameCount uint64
	tick       uint64
	paused     bool
	disposed   bool

	entities   *EntityTable
	components *registry
	hooks      *hookRegistry
	filters    *filterCache
	binder     *binderRegistry
	bus        *MessageBus
	scheduler  *scheduler
	runner     *systemRunner
	externalQ  *externalQueue
	contexts   *contextRegistry

	singletons map[ComponentType]any
	formatters map[ComponentType]ComponentFormatter
	migrations []postLoadMigration

	writePhase         writePhaseState
	writeFailurePolicy WriteFailurePolicy
	logger             Logger
	errorReport        func(error)
}

// NewWorld constructs a World ready for registration and play.
func NewWorld(id WorldID, name string, tags []string, cfg WorldConfig, opts WorldOptions) *World {
	cfg = cfg.clamp()
	logger := opts.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	errorReport := opts.ErrorReportHook
	if errorReport == nil {
		errorReport = func(err error) { logger.Errorw("ecs error", "world", name, "error", err) }
	}

	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[t] = struct{}{}
	}

	w := &World{
		id:                 id,
		name:               name,
		tags:               tagSet,
		cfg:                cfg,
		entities:           NewEntityTable(cfg),
		components:         newRegistry(),
		hooks:              newHookRegistry(),
		binder:             newBinderRegistry(),
		bus:                newMessageBus(),
		scheduler:          newScheduler(errorReport),
		runner:             newSystemRunner(errorReport),
		externalQ:          newExternalQueue(),
		contexts:           newContextRegistry(),
		singletons:         make(map[ComponentType]any),
		formatters:         make(map[ComponentType]ComponentFormatter),
		writeFailurePolicy: opts.WriteFailurePolicy,
		logger:             logger,
		errorReport:        errorReport,
	}
	w.filters = newFilterCache(w.components)
	return w
}

func (w *World) ID() WorldID      { return w.id }
func (w *World) Name() string     { return w.name }
func (w *World) FrameCount() uint64 { return w.frameCount }
func (w *World) Tick() uint64     { return w.tick }
func (w *World) IsPaused() bool   { return w.paused }
func (w *World) Pause()           { w.paused = true }
func (w *World) Resume()          { w.paused = false }
func (w *World) HasTag(tag string) bool {
	_, ok := w.tags[tag]
	return ok
}

// Hooks exposes the write/read permission and validator registry so callers
// can install hooks before the world starts stepping.
func (w *World) Hooks() *hookRegistry { return w.hooks }

// Binder exposes the binding-router fan-out so external views can register.
func (w *World) Binder() *binderRegistry { return w.binder }

// Bus returns the world's message bus for Subscribe/Publish calls.
func (w *World) Bus() *MessageBus { return w.bus }

// Scheduler exposes the job queue for systems that want to defer work past
// the current step.
func (w *World) Scheduler() *scheduler { return w.scheduler }

// RegisterComponent creates T's pool and assigns it a snapshot stable id.
// Free function: World's methods cannot declare a new type parameter.
func RegisterComponent[T any](w *World, ct ComponentType, stableID string) error {
	pool := NewPool[T](ct, w.cfg.InitialPoolBuckets)
	var zero T
	return w.components.register(pool, stableID, reflect.TypeOf(zero))
}

// --- Entity API (§6.1) ---

func (w *World) IsAlive(e Entity) bool         { return w.entities.IsAlive(e) }
func (w *World) AllEntities() []Entity         { return w.entities.AllEntities() }
func (w *World) AliveCount() int               { return w.entities.AliveCount() }
func (w *World) GenerationOf(id EntityID) Generation { return w.entities.GenerationOf(id) }

// destroyEntity runs the destroy ordering sequence from §4.1: fire
// destroy_requested, clear singleton index entries, notify binder and
// context registry, remove all components, clear alive/bump generation,
// fire destroyed. No-op if e is not alive.
func (w *World) destroyEntity(e Entity) {
	if !w.entities.IsAlive(e) {
		return
	}
	w.binder.fire(ComponentDelta{Entity: e, Kind: DeltaDestroyRequested})
	// Singleton index entries are world-scoped, not per-entity, so there is
	// nothing to clear here; this step exists only to preserve the ordering
	// guarantee hooks may observe (§4.1): destroy_requested, singleton
	// clear, binder/context notify, component removal, alive/gen update,
	// destroyed.
	w.contexts.dropEntity(e)
	w.components.removeAll(e)
	w.entities.MarkDestroyed(e)
	w.binder.fire(ComponentDelta{Entity: e, Kind: DeltaDestroyed})
}

// --- Component API (§6.1) ---

// HasComponent reports whether e carries ct, with no read-permission gate
// (presence is not considered sensitive on its own).
func HasComponent(w *World, e Entity, ct ComponentType) bool {
	base, ok := w.components.get(ct)
	return ok && base.Has(e)
}

// ReadComponent returns e's T value, failing with NotFound / InvalidOperation
// if the read-permission hooks reject the access or the component is absent.
func ReadComponent[T any](w *World, e Entity, ct ComponentType) (T, error) {
	var zero T
	if !w.hooks.canRead(e, ct) {
		return zero, NewError(InvalidOperation, "read denied by read-permission hook").WithEntity(e).WithComponent(ct)
	}
	pool, err := poolFor[T](w, ct)
	if err != nil {
		return zero, err
	}
	if pool == nil {
		return zero, NewError(NotFound, "component type %q not registered", ct).WithEntity(e)
	}
	v, ok := pool.Get(e)
	if !ok {
		return zero, WrapError(InvalidOperation, ErrMissingComponent, "read %s", ct).WithEntity(e).WithComponent(ct)
	}
	return v, nil
}

// TryGetComponent is ReadComponent without an error return, for call sites
// that just want a presence check plus value.
func TryGetComponent[T any](w *World, e Entity, ct ComponentType) (T, bool) {
	v, err := ReadComponent[T](w, e, ct)
	return v, err == nil
}

// GetMutComponent returns a direct pointer into e's component storage,
// bypassing the write gate entirely (Open Question resolution: get_mut is
// the documented system-internal fast path; structural add/replace/remove
// always route through the gated command buffer, but in-place field
// mutation on an already-present component does not, matching how dense
// ECS storages are used inside a FixedRun system body in practice). Still
// subject to the read-permission hook, since it exposes the current value.
func GetMutComponent[T any](w *World, e Entity, ct ComponentType) (*T, error) {
	if !w.hooks.canRead(e, ct) {
		return nil, NewError(InvalidOperation, "read denied by read-permission hook").WithEntity(e).WithComponent(ct)
	}
	pool, err := poolFor[T](w, ct)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, NewError(NotFound, "component type %q not registered", ct).WithEntity(e)
	}
	v, ok := pool.GetMut(e)
	if !ok {
		return nil, WrapError(InvalidOperation, ErrMissingComponent, "get_mut %s", ct).WithEntity(e).WithComponent(ct)
	}
	return v, nil
}

// --- Singleton API (§6.1) ---

// GetSingleton returns the current T singleton value, if any.
func GetSingleton[T any](w *World, ct ComponentType) (T, bool) {
	var zero T
	v, ok := w.singletons[ct]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// --- Command buffer / scheduler / external queue (§4.5) ---

// BeginWrite opens a new command buffer. Record operations against it, then
// call EndWrite to apply them.
func (w *World) BeginWrite() *CommandBuffer { return newCommandBuffer(w) }

// ScheduleJob enqueues j to run on the next drain (end of a write barrier,
// end of fixed_step, or an explicit RunScheduledJobs call).
func (w *World) ScheduleJob(j Job) { w.scheduler.schedule(j) }

// RunScheduledJobs drains the job scheduler and returns how many jobs ran.
func (w *World) RunScheduledJobs() uint32 { return w.runScheduledJobs() }

func (w *World) runScheduledJobs() uint32 { return w.scheduler.runScheduledJobs() }

// ExternalCommandEnqueue buffers cmd for the next FlushExternal call.
func (w *World) ExternalCommandEnqueue(cmd ExternalCommand) { w.externalQ.enqueue(cmd) }

func (w *World) ExternalCommandCount() int { return w.externalQ.count() }

func (w *World) ExternalCommandClear() { w.externalQ.clear() }

// FlushExternal translates every queued ExternalCommand into a fresh
// command buffer, ends the scope (which also drains scheduled jobs), and
// clears the queue (§4.5).
func (w *World) FlushExternal() error {
	cmds := w.externalQ.drain()
	if len(cmds) == 0 {
		return nil
	}
	cb := w.BeginWrite()
	for _, c := range cmds {
		c.enqueueInto(cb)
	}
	return cb.EndWrite()
}

// --- Systems API (§6.1) ---

func (w *World) AddSystem(sys System, group Group, priority Priority, constraints ...orderConstraint) {
	w.runner.AddSystem(sys, group, priority, constraints...)
}

func (w *World) RemoveSystem(st SystemType) { w.runner.RemoveSystem(st) }

func (w *World) TryGetSystem(st SystemType) (System, bool) { return w.runner.TryGetSystem(st) }

func (w *World) AllSystems() []System { return w.runner.AllSystems() }

func (w *World) SetEnabled(st SystemType, enabled bool) error { return w.runner.SetEnabled(st, enabled) }

func (w *World) IsEnabled(st SystemType) bool { return w.runner.IsEnabled(st) }

// OrderBefore returns a constraint requiring the declaring system to run
// before other within their shared group.
func OrderBefore(other SystemType) orderConstraint { return orderConstraint{before: true, other: other} }

// OrderAfter returns a constraint requiring the declaring system to run
// after other within their shared group.
func OrderAfter(other SystemType) orderConstraint { return orderConstraint{before: false, other: other} }

// --- Dispatch sequence (§4.6) ---

// BeginFrame applies pending system registrations, runs FrameSetup across
// every group, runs every FrameGroup system's RunVariable with dt, and opens
// the Simulation write phase (structural writes allowed).
func (w *World) BeginFrame(dt float64) {
	w.runner.applyPending()
	w.runner.runFrameSetup(w, dt)
	w.writePhase = writePhaseState{phase: PhaseSimulation, structuralChangesAllowed: true}
	w.runner.runVariable(w, dt)
	w.frameCount++
}

// FixedStep runs one deterministic sub-step: every FixedGroup system's
// SetupFixed in order, then every FixedGroup system's RunFixed in order,
// then closes the step by denying writes, flushing the external queue, and
// draining the scheduler.
func (w *World) FixedStep(fixedDt float64) {
	w.runner.runFixedSetup(w, fixedDt)
	w.runner.runFixedRun(w, fixedDt)
	w.tick++
	if err := w.FlushExternal(); err != nil {
		w.errorReport(err)
	}
	w.writePhase = writePhaseState{phase: PhaseNone, denyAllWrites: true}
	w.RunScheduledJobs()
}

// LateFrame opens the Presentation write phase (writes allowed, structural
// changes denied), runs every FrameViewGroup system's Present with the
// step's interpolation alpha, then clears the write phase.
func (w *World) LateFrame(dt, alpha float64) {
	w.writePhase = writePhaseState{phase: PhasePresentation, structuralChangesAllowed: false}
	w.runner.runPresentation(w, dt, alpha)
	w.writePhase = writePhaseState{phase: PhaseNone}
}

// --- Reset API (§6.1) ---

// Reset clears entity state, component pools, singletons, context
// associations, and the resolved-filter cache -- equivalent in that
// observable state to a freshly constructed world with the same config
// (§8). Registered systems, message-bus subscriptions, and installed
// hooks are deliberately preserved: they are host wiring established once,
// and a game commonly resets level state without wanting to re-wire its
// system graph on every reset call (Open Question resolution; see design
// notes).
func (w *World) Reset(keepCapacity bool) {
	prev := w.writePhase
	w.writePhase = writePhaseState{phase: PhaseReset, denyAllWrites: true}
	defer func() { w.writePhase = prev }()

	w.entities.reset(keepCapacity)
	w.components.reset()
	w.singletons = make(map[ComponentType]any)
	w.contexts.reset()
	w.filters.invalidate()
	w.externalQ.clear()
	w.frameCount = 0
	w.tick = 0
}

func (w *World) dispose() { w.disposed = true }
