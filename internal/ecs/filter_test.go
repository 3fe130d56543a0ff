package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Filter_KeyIsOrderIndependent_WithAll(t *testing.T) {
	a := All("position", "velocity")
	b := All("velocity", "position")

	assert.Equal(t, a.Key(), b.Key())
}

func Test_Filter_KeyDiffersOnContent(t *testing.T) {
	a := All("position")
	b := All("velocity")

	assert.NotEqual(t, a.Key(), b.Key())
}

func Test_Filter_KeyDistinguishesWithAllFromWithoutAll(t *testing.T) {
	a := NewFilter().WithAllTypes("position")
	b := NewFilter().WithoutAllTypes("position")

	assert.NotEqual(t, a.Key(), b.Key())
}

func Test_Filter_BucketOrderIndependent(t *testing.T) {
	a := NewFilter().WithAnyBucket("a", "b").WithAnyBucket("c", "d")
	b := NewFilter().WithAnyBucket("c", "d").WithAnyBucket("a", "b")

	assert.Equal(t, a.Key(), b.Key())
}

func Test_Filter_BuildersDoNotMutateReceiver(t *testing.T) {
	base := All("position")
	derived := base.WithAllTypes("velocity")

	assert.Len(t, base.WithAll, 1, "WithAllTypes must not mutate the receiver's backing slice")
	assert.Len(t, derived.WithAll, 2)
}
