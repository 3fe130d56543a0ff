package ecs

import "reflect"

// MessageBus is a per-world, synchronous, typed pub/sub bus (§4.6 glossary,
// §5 ordering guarantees: "message publication within a handler delivers to
// subscribers before returning"). Grounded on event_bus.go's interface
// shape (EventBus.Publish/Subscribe/Unsubscribe, SubscriptionID), implemented
// here from scratch since that interface's own implementation is a TDD-red
// stub where every method returns "not implemented."

// subscriber pairs a handler with the id Unsubscribe removes it by, kept in
// a slice (rather than just a map) so Publish can deliver in subscription
// order as documented, not map-iteration order.
type subscriber struct {
	id uint64
	fn func(any)
}

type MessageBus struct {
	nextID   uint64
	handlers map[reflect.Type][]subscriber
	depth    int
	maxDepth int
	// overflowed records that some nested Publish exceeded maxDepth, so the
	// outermost Publish can report the cycle even if handlers drop the error.
	overflowed bool
}

func newMessageBus() *MessageBus {
	return &MessageBus{
		handlers: make(map[reflect.Type][]subscriber),
		maxDepth: 64,
	}
}

// Subscription is a handle returned by Subscribe; call Unsubscribe to stop
// receiving further messages of that type.
type Subscription struct {
	id      uint64
	msgType reflect.Type
	bus     *MessageBus
}

// Unsubscribe removes the handler this subscription was issued for. Safe to
// call more than once.
func (s Subscription) Unsubscribe() {
	if s.bus == nil {
		return
	}
	subs := s.bus.handlers[s.msgType]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.handlers[s.msgType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Subscribe registers handler to receive every T published on mb. Free
// function because MessageBus's methods cannot declare a new type
// parameter.
func Subscribe[T any](mb *MessageBus, handler func(T)) Subscription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := mb.nextID
	mb.nextID++
	fn := func(v any) { handler(v.(T)) }
	mb.handlers[t] = append(mb.handlers[t], subscriber{id: id, fn: fn})
	return Subscription{id: id, msgType: t, bus: mb}
}

// Publish delivers value to every subscriber of T synchronously, in
// subscription order, before returning. Re-entrant publication (a handler
// publishing again, possibly of the same type) is permitted up to maxDepth
// nested calls; beyond that it is treated as an unbounded cycle and
// rejected (§5): the over-depth call fails, and the outermost Publish also
// returns the cycle error once delivery unwinds.
func Publish[T any](mb *MessageBus, value T) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	mb.depth++
	defer func() { mb.depth-- }()
	if mb.depth > mb.maxDepth {
		mb.overflowed = true
		return NewError(InvalidOperation, "message bus exceeded re-entrant publish depth %d; likely cycle", mb.maxDepth)
	}
	handlers := mb.handlers[t]
	if len(handlers) == 0 {
		return nil
	}
	// Copy so a handler unsubscribing or subscribing mid-publish doesn't
	// shift indices out from under this delivery pass.
	snapshot := make([]subscriber, len(handlers))
	copy(snapshot, handlers)
	for _, h := range snapshot {
		h.fn(value)
	}
	if mb.depth == 1 && mb.overflowed {
		mb.overflowed = false
		return NewError(InvalidOperation, "message bus exceeded re-entrant publish depth %d; likely cycle", mb.maxDepth)
	}
	return nil
}
