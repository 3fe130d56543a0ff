package ecs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func marshalWPosition(p wPosition) ([]byte, error) {
	var buf bytes.Buffer
	writeU32(&buf, uint32(int32(p.X)))
	writeU32(&buf, uint32(int32(p.Y)))
	return buf.Bytes(), nil
}

func unmarshalWPosition(data []byte) (wPosition, error) {
	r := bytes.NewReader(data)
	x, err := readU32(r)
	if err != nil {
		return wPosition{}, err
	}
	y, err := readU32(r)
	if err != nil {
		return wPosition{}, err
	}
	return wPosition{X: float64(int32(x)), Y: float64(int32(y))}, nil
}

func Test_Snapshot_SaveAndLoadFullRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	RegisterFormatter(w, "position", marshalWPosition, unmarshalWPosition)

	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 3, Y: 4})
	assert.NoError(t, cb.EndWrite())

	var buf bytes.Buffer
	assert.NoError(t, SaveFull(w, &buf))

	w2 := newTestWorld(t)
	RegisterFormatter(w2, "position", marshalWPosition, unmarshalWPosition)
	assert.NoError(t, LoadFull(w2, bytes.NewReader(buf.Bytes())))

	v, err := ReadComponent[wPosition](w2, e, "position")
	assert.NoError(t, err)
	assert.Equal(t, wPosition{X: 3, Y: 4}, v)
}

func Test_Snapshot_LoadFull_BadMagicErrors(t *testing.T) {
	w := newTestWorld(t)
	err := LoadFull(w, bytes.NewReader([]byte("NOTASNAP")))
	assert.Error(t, err)
	assert.True(t, IsKind(err, CorruptData))
}

func Test_Snapshot_LoadFull_ResetsWorldBeforeApplying(t *testing.T) {
	w := newTestWorld(t)
	RegisterFormatter(w, "position", marshalWPosition, unmarshalWPosition)
	cb := w.BeginWrite()
	stale := cb.CreateEntity(nil)
	assert.NoError(t, cb.EndWrite())

	var empty bytes.Buffer
	assert.NoError(t, SaveFull(newTestWorld(t), &empty))
	assert.NoError(t, LoadFull(w, bytes.NewReader(empty.Bytes())))

	assert.False(t, w.IsAlive(stale))
}

func Test_Snapshot_PoolWithoutFormatterIsSkippedNotFailed(t *testing.T) {
	w := newTestWorld(t)
	cb := w.BeginWrite()
	e := cb.CreateEntity(nil)
	AddComponent(cb, e, ComponentType("position"), wPosition{X: 1})
	assert.NoError(t, cb.EndWrite())

	var buf bytes.Buffer
	assert.NoError(t, SaveFull(w, &buf))

	summary, err := ReadSummary(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Empty(t, summary.Pools, "position has no registered formatter so it must be skipped")
}

func Test_Snapshot_ReadSummary_DescribesPoolsWithoutDecodingValues(t *testing.T) {
	w := newTestWorld(t)
	RegisterFormatter(w, "position", marshalWPosition, unmarshalWPosition)
	cb := w.BeginWrite()
	e1 := cb.CreateEntity(nil)
	e2 := cb.CreateEntity(nil)
	AddComponent(cb, e1, ComponentType("position"), wPosition{X: 1})
	AddComponent(cb, e2, ComponentType("position"), wPosition{X: 2})
	assert.NoError(t, cb.EndWrite())

	var buf bytes.Buffer
	assert.NoError(t, SaveFull(w, &buf))

	summary, err := ReadSummary(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.AliveCount)
	assert.Len(t, summary.Pools, 1)
	assert.Equal(t, "test.position", summary.Pools[0].StableID)
	assert.Equal(t, 2, summary.Pools[0].EntityCount)
}

func Test_Snapshot_Migration_RunsAfterLoadInAscendingOrder(t *testing.T) {
	w := newTestWorld(t)
	RegisterFormatter(w, "position", marshalWPosition, unmarshalWPosition)
	var order []int
	RegisterMigration(w, 2, "second", func(w *World) error {
		order = append(order, 2)
		return nil
	})
	RegisterMigration(w, 1, "first", func(w *World) error {
		order = append(order, 1)
		return nil
	})

	var buf bytes.Buffer
	assert.NoError(t, SaveFull(newTestWorld(t), &buf))
	assert.NoError(t, LoadFull(w, bytes.NewReader(buf.Bytes())))

	assert.Equal(t, []int{1, 2}, order)
}

func Test_ResolveComponentType_FallsBackToTypeNameWhenStableIDUnknown(t *testing.T) {
	w := newTestWorld(t)
	ct, ok := resolveComponentType(w, "unknown.stable.id", "ecs.wPosition")
	assert.True(t, ok)
	assert.Equal(t, ComponentType("position"), ct)
}

func Test_ResolveComponentType_NeitherStableIDNorTypeNameMatches(t *testing.T) {
	w := newTestWorld(t)
	_, ok := resolveComponentType(w, "unknown.stable.id", "ecs.nonexistentType")
	assert.False(t, ok)
}
