package ecs

// ExternalCommand is a cross-boundary mutation request (network, UI, editor
// tooling) queued outside of any system's command buffer. flush_external is
// the only sanctioned path that turns these into world mutations (§4.5).
type ExternalCommand interface {
	enqueueInto(cb *CommandBuffer)
}

type extCreateEntity struct {
	onCreated func(Entity, *CommandBuffer)
}

func (c extCreateEntity) enqueueInto(cb *CommandBuffer) { cb.CreateEntity(c.onCreated) }

// ExternalCreateEntity builds an ExternalCommand that creates an entity,
// optionally invoking onCreated during application.
func ExternalCreateEntity(onCreated func(Entity, *CommandBuffer)) ExternalCommand {
	return extCreateEntity{onCreated: onCreated}
}

type extDestroyEntity struct{ entity Entity }

func (c extDestroyEntity) enqueueInto(cb *CommandBuffer) { cb.DestroyEntity(c.entity) }

// ExternalDestroyEntity builds an ExternalCommand that destroys e.
func ExternalDestroyEntity(e Entity) ExternalCommand { return extDestroyEntity{entity: e} }

type extAddComponent[T any] struct {
	entity Entity
	ct     ComponentType
	value  T
}

func (c extAddComponent[T]) enqueueInto(cb *CommandBuffer) {
	AddComponent(cb, c.entity, c.ct, c.value)
}

// ExternalAddComponent builds an ExternalCommand that adds value to e.
func ExternalAddComponent[T any](e Entity, ct ComponentType, value T) ExternalCommand {
	return extAddComponent[T]{entity: e, ct: ct, value: value}
}

type extReplaceComponent[T any] struct {
	entity Entity
	ct     ComponentType
	value  T
}

func (c extReplaceComponent[T]) enqueueInto(cb *CommandBuffer) {
	ReplaceComponent(cb, c.entity, c.ct, c.value)
}

// ExternalReplaceComponent builds an ExternalCommand that replaces e's value.
func ExternalReplaceComponent[T any](e Entity, ct ComponentType, value T) ExternalCommand {
	return extReplaceComponent[T]{entity: e, ct: ct, value: value}
}

type extRemoveComponent struct {
	entity Entity
	ct     ComponentType
}

func (c extRemoveComponent) enqueueInto(cb *CommandBuffer) { RemoveComponent(cb, c.entity, c.ct) }

// ExternalRemoveComponent builds an ExternalCommand that removes e's ct.
func ExternalRemoveComponent(e Entity, ct ComponentType) ExternalCommand {
	return extRemoveComponent{entity: e, ct: ct}
}

type extSetSingleton[T any] struct {
	ct    ComponentType
	value T
}

func (c extSetSingleton[T]) enqueueInto(cb *CommandBuffer) { SetSingleton(cb, c.ct, c.value) }

// ExternalSetSingleton builds an ExternalCommand that sets a singleton.
func ExternalSetSingleton[T any](ct ComponentType, value T) ExternalCommand {
	return extSetSingleton[T]{ct: ct, value: value}
}

type extRemoveSingleton struct{ ct ComponentType }

func (c extRemoveSingleton) enqueueInto(cb *CommandBuffer) { RemoveSingleton(cb, c.ct) }

// ExternalRemoveSingleton builds an ExternalCommand that clears a singleton.
func ExternalRemoveSingleton(ct ComponentType) ExternalCommand {
	return extRemoveSingleton{ct: ct}
}

// externalQueue is the secondary FIFO buffering ExternalCommands between
// flushes.
type externalQueue struct {
	items []ExternalCommand
}

func newExternalQueue() *externalQueue { return &externalQueue{} }

func (q *externalQueue) enqueue(cmd ExternalCommand) { q.items = append(q.items, cmd) }

func (q *externalQueue) count() int { return len(q.items) }

func (q *externalQueue) clear() { q.items = q.items[:0] }

// drain returns and clears every queued command.
func (q *externalQueue) drain() []ExternalCommand {
	out := q.items
	q.items = nil
	return out
}
