package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type busDamageEvent struct {
	Entity Entity
	Amount int
}

func Test_MessageBus_PublishDeliversToSubscriber(t *testing.T) {
	mb := newMessageBus()
	var received busDamageEvent
	Subscribe(mb, func(e busDamageEvent) { received = e })

	err := Publish(mb, busDamageEvent{Entity: Entity{ID: 1}, Amount: 5})

	assert.NoError(t, err)
	assert.Equal(t, 5, received.Amount)
}

func Test_MessageBus_DeliversInSubscriptionOrder(t *testing.T) {
	mb := newMessageBus()
	var order []int
	Subscribe(mb, func(int) { order = append(order, 1) })
	Subscribe(mb, func(int) { order = append(order, 2) })
	Subscribe(mb, func(int) { order = append(order, 3) })

	assert.NoError(t, Publish(mb, 0))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func Test_MessageBus_Unsubscribe_StopsDelivery(t *testing.T) {
	mb := newMessageBus()
	count := 0
	sub := Subscribe(mb, func(int) { count++ })

	assert.NoError(t, Publish(mb, 0))
	sub.Unsubscribe()
	assert.NoError(t, Publish(mb, 0))

	assert.Equal(t, 1, count)
}

func Test_MessageBus_Unsubscribe_Idempotent(t *testing.T) {
	mb := newMessageBus()
	sub := Subscribe(mb, func(int) {})
	sub.Unsubscribe()
	assert.NotPanics(t, func() { sub.Unsubscribe() })
}

func Test_MessageBus_DistinguishesByType(t *testing.T) {
	mb := newMessageBus()
	var intSeen, stringSeen bool
	Subscribe(mb, func(int) { intSeen = true })
	Subscribe(mb, func(string) { stringSeen = true })

	assert.NoError(t, Publish(mb, "hello"))

	assert.False(t, intSeen)
	assert.True(t, stringSeen)
}

func Test_MessageBus_ReentrantPublish_WithinDepthSucceeds(t *testing.T) {
	mb := newMessageBus()
	depthReached := 0
	Subscribe(mb, func(n int) {
		depthReached = n
		if n < 5 {
			assert.NoError(t, Publish(mb, n+1))
		}
	})

	assert.NoError(t, Publish(mb, 0))
	assert.Equal(t, 5, depthReached)
}

func Test_MessageBus_ExceedsMaxDepth_ReturnsCycleError(t *testing.T) {
	mb := newMessageBus()
	Subscribe(mb, func(n int) {
		_ = Publish(mb, n+1)
	})

	err := Publish(mb, 0)
	assert.Error(t, err)
	assert.True(t, IsKind(err, InvalidOperation))
}

func Test_MessageBus_UnsubscribeDuringPublish_DoesNotSkipSiblingHandler(t *testing.T) {
	mb := newMessageBus()
	var secondCalled bool
	var firstSub Subscription
	firstSub = Subscribe(mb, func(int) { firstSub.Unsubscribe() })
	Subscribe(mb, func(int) { secondCalled = true })

	assert.NoError(t, Publish(mb, 0))
	assert.True(t, secondCalled, "unsubscribing mid-publish must not affect the current delivery pass")
}
