package ecs

// DeltaKind classifies a component mutation reported to the binding router.
type DeltaKind int

const (
	DeltaAdded DeltaKind = iota
	DeltaReplaced
	DeltaRemoved
	// DeltaDestroyRequested and DeltaDestroyed are entity-level lifecycle
	// events fired through the same binder fan-out (Type is empty for
	// these, since they are not about a specific component).
	DeltaDestroyRequested
	DeltaDestroyed
)

func (k DeltaKind) String() string {
	switch k {
	case DeltaAdded:
		return "Added"
	case DeltaReplaced:
		return "Replaced"
	case DeltaRemoved:
		return "Removed"
	case DeltaDestroyRequested:
		return "DestroyRequested"
	case DeltaDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// ComponentDelta is one reported mutation, fired by command-buffer apply for
// every successful add/replace/remove (§4.5).
type ComponentDelta struct {
	Entity Entity
	Type   ComponentType
	Kind   DeltaKind
}

// BinderDispatcher is the binding router's external-facing surface: a sink
// that external views (UI data binding, editor inspectors, replication
// layers) register against to hear about component mutations without
// touching world internals directly. Built fresh; nothing in this lineage
// has an existing analogue for this surface.
type BinderDispatcher interface {
	Dispatch(ComponentDelta)
}

// binderRegistry fans a delta out to every registered BinderDispatcher.
type binderRegistry struct {
	sinks []BinderDispatcher
}

func newBinderRegistry() *binderRegistry {
	return &binderRegistry{}
}

// Register adds d to the fan-out list. External packages reach this through
// World.Binder().Register, since World composes binderRegistry privately.
func (b *binderRegistry) Register(d BinderDispatcher) {
	b.sinks = append(b.sinks, d)
}

func (b *binderRegistry) fire(delta ComponentDelta) {
	for _, s := range b.sinks {
		s.Dispatch(delta)
	}
}

// RecordingBinder is a BinderDispatcher that appends every delta it sees, for
// tests and debug tooling that want to assert on mutation order without
// wiring a real external view.
type RecordingBinder struct {
	Deltas []ComponentDelta
}

func (r *RecordingBinder) Dispatch(d ComponentDelta) {
	r.Deltas = append(r.Deltas, d)
}
