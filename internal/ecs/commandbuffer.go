package ecs

import "errors"

// This module has no existing analogue elsewhere in this lineage for the
// buffering/gating contract itself, but the operation-as-interface-value
// shape is grounded on TheBitDrifter-warehouse's operation_queue.go
// (EntityOperation interface + entityOperationsQueue): an op captures its
// arguments at record time and exposes a single apply(Storage) method; here
// the target is *World instead of warehouse's Storage, and entity validity
// is re-checked via generation match instead of a "recycled" counter.

// cbOperation is one recorded, not-yet-applied mutation.
type cbOperation interface {
	apply(w *World) *EcsError
}

// CommandBuffer is the sole path for structural and component mutation
// (§4.5). Recording never touches world state; EndWrite applies every
// recorded operation in record order, atomically with respect to observers
// mid-step.
type CommandBuffer struct {
	world     *World
	ops       []cbOperation
	onCreated map[EntityID]func(Entity, *CommandBuffer)
	applied   bool
}

func newCommandBuffer(w *World) *CommandBuffer {
	return &CommandBuffer{world: w, onCreated: make(map[EntityID]func(Entity, *CommandBuffer))}
}

// CreateEntity reserves an entity handle immediately (observable as a handle
// before EndWrite runs) and queues its creation. onCreated, if non-nil, runs
// during EndWrite right after the entity is marked alive, and may itself
// record further operations on cb ("enabling recursive ops").
func (cb *CommandBuffer) CreateEntity(onCreated func(Entity, *CommandBuffer)) Entity {
	e := cb.world.entities.Reserve(nil)
	if onCreated != nil {
		cb.onCreated[e.ID] = onCreated
	}
	cb.ops = append(cb.ops, &createReservedOp{entity: e})
	return e
}

// DestroyEntity queues e's destruction; the apply is a no-op if e is not
// alive by the time it runs.
func (cb *CommandBuffer) DestroyEntity(e Entity) {
	cb.ops = append(cb.ops, &destroyOp{entity: e})
}

type createReservedOp struct{ entity Entity }

func (op *createReservedOp) apply(w *World) *EcsError {
	w.entities.CreateReserved(op.entity)
	return nil
}

type destroyOp struct{ entity Entity }

func (op *destroyOp) apply(w *World) *EcsError {
	w.destroyEntity(op.entity)
	return nil
}

type addComponentOp[T any] struct {
	entity Entity
	ct     ComponentType
	value  T
}

func (op *addComponentOp[T]) apply(w *World) *EcsError {
	if gateErr := writeGate(w.writePhase, w.hooks, op.entity, op.ct, true, true, op.value); gateErr != nil {
		return gateErr
	}
	pool, err := poolFor[T](w, op.ct)
	if err != nil {
		return err.(*EcsError)
	}
	if pool == nil {
		return NewError(NotFound, "component type %q not registered", op.ct).WithEntity(op.entity)
	}
	if addErr := pool.Add(op.entity, op.value); addErr != nil {
		var e *EcsError
		if errors.As(addErr, &e) {
			return e
		}
		return WrapError(InvalidOperation, addErr, "add_component %s", op.ct).WithEntity(op.entity)
	}
	w.binder.fire(ComponentDelta{Entity: op.entity, Type: op.ct, Kind: DeltaAdded})
	return nil
}

type replaceComponentOp[T any] struct {
	entity Entity
	ct     ComponentType
	value  T
}

func (op *replaceComponentOp[T]) apply(w *World) *EcsError {
	if gateErr := writeGate(w.writePhase, w.hooks, op.entity, op.ct, false, true, op.value); gateErr != nil {
		return gateErr
	}
	pool, err := poolFor[T](w, op.ct)
	if err != nil {
		return err.(*EcsError)
	}
	if pool == nil {
		return NewError(NotFound, "component type %q not registered", op.ct).WithEntity(op.entity)
	}
	if repErr := pool.Replace(op.entity, op.value); repErr != nil {
		var e *EcsError
		if errors.As(repErr, &e) {
			return e
		}
		return WrapError(InvalidOperation, repErr, "replace_component %s", op.ct).WithEntity(op.entity)
	}
	w.binder.fire(ComponentDelta{Entity: op.entity, Type: op.ct, Kind: DeltaReplaced})
	return nil
}

type removeComponentOp struct {
	entity Entity
	ct     ComponentType
}

func (op *removeComponentOp) apply(w *World) *EcsError {
	if gateErr := writeGate(w.writePhase, w.hooks, op.entity, op.ct, true, false, nil); gateErr != nil {
		return gateErr
	}
	base, ok := w.components.get(op.ct)
	if !ok {
		return NewError(NotFound, "component type %q not registered", op.ct).WithEntity(op.entity)
	}
	if !base.removeIfPresent(op.entity) {
		return WrapError(InvalidOperation, ErrMissingComponent, "remove_component %s", op.ct).WithEntity(op.entity)
	}
	w.binder.fire(ComponentDelta{Entity: op.entity, Type: op.ct, Kind: DeltaRemoved})
	return nil
}

type setSingletonOp[T any] struct {
	ct    ComponentType
	value T
}

func (op *setSingletonOp[T]) apply(w *World) *EcsError {
	if w.writePhase.denyAllWrites {
		return NewError(InvalidOperation, "write denied: phase %v denies all writes", w.writePhase.phase).WithComponent(op.ct)
	}
	w.singletons[op.ct] = op.value
	return nil
}

type removeSingletonOp struct{ ct ComponentType }

func (op *removeSingletonOp) apply(w *World) *EcsError {
	if w.writePhase.denyAllWrites {
		return NewError(InvalidOperation, "write denied: phase %v denies all writes", w.writePhase.phase).WithComponent(op.ct)
	}
	delete(w.singletons, op.ct)
	return nil
}

// AddComponent queues an add_component<T> operation. Free function because
// CommandBuffer's methods cannot themselves declare a new type parameter.
func AddComponent[T any](cb *CommandBuffer, e Entity, ct ComponentType, value T) {
	cb.ops = append(cb.ops, &addComponentOp[T]{entity: e, ct: ct, value: value})
}

// ReplaceComponent queues a replace_component<T> operation.
func ReplaceComponent[T any](cb *CommandBuffer, e Entity, ct ComponentType, value T) {
	cb.ops = append(cb.ops, &replaceComponentOp[T]{entity: e, ct: ct, value: value})
}

// RemoveComponent queues a remove_component operation.
func RemoveComponent(cb *CommandBuffer, e Entity, ct ComponentType) {
	cb.ops = append(cb.ops, &removeComponentOp{entity: e, ct: ct})
}

// SetSingleton queues a set_singleton<T> operation.
func SetSingleton[T any](cb *CommandBuffer, ct ComponentType, value T) {
	cb.ops = append(cb.ops, &setSingletonOp[T]{ct: ct, value: value})
}

// RemoveSingleton queues a remove_singleton operation.
func RemoveSingleton(cb *CommandBuffer, ct ComponentType) {
	cb.ops = append(cb.ops, &removeSingletonOp{ct: ct})
}

// EndWrite applies every recorded operation in record order (including any
// recorded recursively by an on_created callback mid-apply), then runs
// scheduled jobs. Denied operations are handled per the world's configured
// WriteFailurePolicy; application continues past a denial regardless of
// policy (§4.4).
func (cb *CommandBuffer) EndWrite() error {
	if cb.applied {
		return NewError(InvalidOperation, "command buffer already applied")
	}
	cb.applied = true

	var thrown []error
	i := 0
	for i < len(cb.ops) {
		op := cb.ops[i]
		i++
		err := op.apply(cb.world)
		if err != nil {
			switch cb.world.writeFailurePolicy {
			case Throw:
				thrown = append(thrown, err)
			case Log:
				cb.world.logger.Warnw("command buffer operation denied", "error", err)
			case Ignore:
				// drop silently
			}
			continue
		}
		if created, ok := op.(*createReservedOp); ok {
			if fn, exists := cb.onCreated[created.entity.ID]; exists {
				delete(cb.onCreated, created.entity.ID)
				fn(created.entity, cb)
			}
		}
	}
	cb.world.runScheduledJobs()
	if len(thrown) > 0 {
		return errors.Join(thrown...)
	}
	return nil
}
