package ecs

import "sort"

// systemRunner owns system registration, per-group topological ordering,
// and the run-kind dispatch passes invoked by World's begin_frame /
// fixed_step / late_frame (§4.6). Grounded on system_manager.go's
// SystemManagerImpl (dependency maps + wouldCreateCycle/hasCycleDFS), with
// its mutex dropped: §5 declares single-threaded cooperative execution
// within a world, so the RWMutex guarding every accessor over there has
// nothing to protect against here.
type systemRunner struct {
	systems map[SystemType]*registeredSystem
	nextSeq int

	pendingAdd    []*registeredSystem
	pendingRemove []SystemType

	order      map[Group][]SystemType
	orderDirty map[Group]bool

	errorReport func(error)
}

func newSystemRunner(errorReport func(error)) *systemRunner {
	return &systemRunner{
		systems:     make(map[SystemType]*registeredSystem),
		order:       make(map[Group][]SystemType),
		orderDirty:  map[Group]bool{FixedGroup: true, FrameGroup: true, FrameViewGroup: true},
		errorReport: errorReport,
	}
}

// AddSystem queues sys for registration; it takes effect at the next
// begin_frame boundary (§4.6).
func (r *systemRunner) AddSystem(sys System, group Group, priority Priority, constraints ...orderConstraint) {
	r.pendingAdd = append(r.pendingAdd, &registeredSystem{
		sys:         sys,
		group:       group,
		priority:    priority,
		constraints: constraints,
		enabled:     true,
	})
}

// RemoveSystem queues st for removal at the next begin_frame boundary.
func (r *systemRunner) RemoveSystem(st SystemType) {
	r.pendingRemove = append(r.pendingRemove, st)
}

// applyPending performs queued registrations/removals; called once at the
// start of begin_frame.
func (r *systemRunner) applyPending() {
	if len(r.pendingAdd) == 0 && len(r.pendingRemove) == 0 {
		return
	}
	for _, st := range r.pendingRemove {
		if _, ok := r.systems[st]; ok {
			delete(r.systems, st)
			r.orderDirty[FixedGroup] = true
			r.orderDirty[FrameGroup] = true
			r.orderDirty[FrameViewGroup] = true
		}
	}
	r.pendingRemove = nil
	for _, rs := range r.pendingAdd {
		rs.seq = r.nextSeq
		r.nextSeq++
		r.systems[rs.sys.Type()] = rs
		r.orderDirty[rs.group] = true
	}
	r.pendingAdd = nil
}

func (r *systemRunner) TryGetSystem(st SystemType) (System, bool) {
	rs, ok := r.systems[st]
	if !ok {
		return nil, false
	}
	return rs.sys, true
}

func (r *systemRunner) AllSystems() []System {
	out := make([]System, 0, len(r.systems))
	for _, rs := range r.systems {
		out = append(out, rs.sys)
	}
	return out
}

func (r *systemRunner) SetEnabled(st SystemType, enabled bool) error {
	rs, ok := r.systems[st]
	if !ok {
		return NewError(NotFound, "system %q not registered", st)
	}
	rs.enabled = enabled
	return nil
}

func (r *systemRunner) IsEnabled(st SystemType) bool {
	rs, ok := r.systems[st]
	return ok && rs.enabled
}

// ensureOrder recomputes the topological order for group if dirty, surfacing
// a DependencyCycle error through errorReport and leaving the group's order
// empty (skipped for this dispatch) on cycle, per §4.7's "a cyclic
// dependency is fatal to the group (group skipped with warn)".
func (r *systemRunner) ensureOrder(group Group) []SystemType {
	if !r.orderDirty[group] {
		return r.order[group]
	}
	members := make([]*registeredSystem, 0)
	for _, rs := range r.systems {
		if rs.group == group {
			members = append(members, rs)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].seq < members[j].seq })

	indegree := make(map[SystemType]int, len(members))
	adj := make(map[SystemType][]SystemType, len(members))
	present := make(map[SystemType]bool, len(members))
	for _, rs := range members {
		present[rs.sys.Type()] = true
	}
	for _, rs := range members {
		st := rs.sys.Type()
		if _, ok := indegree[st]; !ok {
			indegree[st] = 0
		}
		for _, c := range rs.constraints {
			if !present[c.other] {
				continue // constraint references a system outside this group; ignored
			}
			if c.before {
				// st must run before c.other: edge st -> c.other
				adj[st] = append(adj[st], c.other)
				indegree[c.other]++
			} else {
				// st must run after c.other: edge c.other -> st
				adj[c.other] = append(adj[c.other], st)
				indegree[st]++
			}
		}
	}

	var ready []SystemType
	for _, rs := range members {
		if indegree[rs.sys.Type()] == 0 {
			ready = append(ready, rs.sys.Type())
		}
	}
	seqOf := make(map[SystemType]int, len(members))
	for _, rs := range members {
		seqOf[rs.sys.Type()] = rs.seq
	}

	var result []SystemType
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return seqOf[ready[i]] < seqOf[ready[j]] })
		next := ready[0]
		ready = ready[1:]
		result = append(result, next)
		for _, dep := range adj[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(result) != len(members) {
		if r.errorReport != nil {
			r.errorReport(NewError(DependencyCycle, "system dependency cycle detected in group %d; group skipped", group))
		}
		r.order[group] = nil
		r.orderDirty[group] = false
		return nil
	}
	r.order[group] = result
	r.orderDirty[group] = false
	return result
}

// dispatch calls fn for every enabled system in group's topological order
// that satisfies the predicate, recovering from panics per system so one
// failing system does not abort the phase (§4.7).
func (r *systemRunner) dispatch(group Group, apply func(System) bool) {
	order := r.ensureOrder(group)
	for _, st := range order {
		rs, ok := r.systems[st]
		if !ok || !rs.enabled {
			continue
		}
		r.runGuarded(rs.sys, apply)
	}
}

func (r *systemRunner) runGuarded(sys System, apply func(System) bool) {
	defer func() {
		if rec := recover(); rec != nil && r.errorReport != nil {
			r.errorReport(NewError(InvalidOperation, "system %s panicked: %v", sys.Type(), rec))
		}
	}()
	apply(sys)
}

// runFrameSetup invokes FrameSetup on every enabled system across all
// groups, in each group's stable order (once per frame, before fixed
// steps).
func (r *systemRunner) runFrameSetup(w *World, dt float64) {
	for _, group := range []Group{FixedGroup, FrameGroup, FrameViewGroup} {
		r.dispatch(group, func(sys System) bool {
			if fs, ok := sys.(FrameSetup); ok {
				fs.SetupFrame(w, dt)
			}
			return true
		})
	}
}

func (r *systemRunner) runVariable(w *World, dt float64) {
	r.dispatch(FrameGroup, func(sys System) bool {
		if vr, ok := sys.(VariableRun); ok {
			vr.RunVariable(w, dt)
		}
		return true
	})
}

func (r *systemRunner) runFixedSetup(w *World, fixedDt float64) {
	r.dispatch(FixedGroup, func(sys System) bool {
		if fs, ok := sys.(FixedSetup); ok {
			fs.SetupFixed(w, fixedDt)
		}
		return true
	})
}

func (r *systemRunner) runFixedRun(w *World, fixedDt float64) {
	r.dispatch(FixedGroup, func(sys System) bool {
		if fr, ok := sys.(FixedRun); ok {
			fr.RunFixed(w, fixedDt)
		}
		return true
	})
}

func (r *systemRunner) runPresentation(w *World, dt, alpha float64) {
	r.dispatch(FrameViewGroup, func(sys System) bool {
		if p, ok := sys.(Presentation); ok {
			p.Present(w, dt, alpha)
		}
		return true
	})
}
