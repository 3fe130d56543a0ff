package ecs

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

// snapshotMagic identifies the wire format (§4.8). Readers must reject any
// stream that does not begin with this exact byte sequence.
const snapshotMagic = "ZENSNAP1"

// ComponentFormatter marshals and unmarshals a single component value to and
// from its snapshot payload bytes. Every component type that should survive
// a save/load round trip needs one registered via RegisterFormatter.
type ComponentFormatter interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte) (any, error)
}

// formatterFunc adapts a pair of typed functions into a ComponentFormatter,
// the same function-typed-adapter idiom worker.go uses for JobFunc
// alongside the interface it satisfies.
type formatterFunc struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte) (any, error)
}

func (f formatterFunc) Marshal(value any) ([]byte, error)  { return f.marshal(value) }
func (f formatterFunc) Unmarshal(data []byte) (any, error) { return f.unmarshal(data) }

// RegisterFormatter installs a ComponentFormatter for T, built from plain
// typed marshal/unmarshal functions. Free function: World's methods cannot
// declare a new type parameter.
func RegisterFormatter[T any](w *World, ct ComponentType, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) {
	w.formatters[ct] = formatterFunc{
		marshal: func(v any) ([]byte, error) {
			typed, ok := v.(T)
			if !ok {
				return nil, NewError(CorruptData, "formatter type mismatch for %s", ct)
			}
			return marshal(typed)
		},
		unmarshal: func(data []byte) (any, error) {
			return unmarshal(data)
		},
	}
}

// postLoadMigration is one registered upgrade step, run in ascending Order
// after a successful LoadFull (§4.8).
type postLoadMigration struct {
	order int
	name  string
	fn    func(w *World) error
}

// RegisterMigration installs fn to run after every LoadFull call, ordered
// ascending by order among all registered migrations. Migrations run against
// the fully-loaded world and may use the normal command-buffer API.
func RegisterMigration(w *World, order int, name string, fn func(w *World) error) {
	w.migrations = append(w.migrations, postLoadMigration{order: order, name: name, fn: fn})
	sort.SliceStable(w.migrations, func(i, j int) bool { return w.migrations[i].order < w.migrations[j].order })
}

// --- low-level wire helpers ---

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func readU32(r io.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := io.ReadFull(r, tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

func writeLPBytes(buf *bytes.Buffer, data []byte) {
	writeU32(buf, uint32(len(data)))
	buf.Write(data)
}

func readLPBytes(r io.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func writeLPString(buf *bytes.Buffer, s string) { writeLPBytes(buf, []byte(s)) }

func readLPString(r io.Reader) (string, error) {
	data, err := readLPBytes(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveFull writes a complete ZENSNAP1 snapshot of w to out (§4.8): magic,
// entity-table metadata, then one framed record per registered component
// pool that has a formatter. Pools without a registered formatter are
// skipped (logged as a warning) rather than failing the whole save, since a
// world commonly carries transient component types that were never meant to
// survive a save/load round trip.
func SaveFull(w *World, out io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(snapshotMagic)

	writeU32(&buf, uint32(w.entities.NextID()))

	gens := w.entities.rawGenerations()
	genBytes := make([]byte, len(gens)*4)
	for i, g := range gens {
		binary.LittleEndian.PutUint32(genBytes[i*4:i*4+4], uint32(g))
	}
	writeLPBytes(&buf, genBytes)

	free := w.entities.rawFreeIDs()
	freeBytes := make([]byte, len(free)*4)
	for i, id := range free {
		binary.LittleEndian.PutUint32(freeBytes[i*4:i*4+4], uint32(id))
	}
	writeLPBytes(&buf, freeBytes)

	writeLPBytes(&buf, w.entities.aliveBytes())

	types := w.components.allTypes()
	savable := make([]ComponentType, 0, len(types))
	for _, ct := range types {
		if _, ok := w.formatters[ct]; ok {
			savable = append(savable, ct)
		} else {
			w.logger.Warnw("skipping pool with no registered formatter", "component", string(ct))
		}
	}

	writeU32(&buf, uint32(len(savable)))
	for _, ct := range savable {
		pool, _ := w.components.get(ct)
		formatter := w.formatters[ct]

		var pbuf bytes.Buffer
		writeLPString(&pbuf, w.components.stableIDFor(ct))
		desc, _ := w.components.descriptorFor(ct)
		typeName := ""
		if desc.GoType != nil {
			typeName = desc.GoType.String()
		}
		writeLPString(&pbuf, typeName)

		ids := pool.EntityIDs()
		writeU32(&pbuf, uint32(len(ids)))
		for _, id := range ids {
			e := Entity{ID: id, Gen: w.entities.GenerationOf(id)}
			value, ok := pool.getRaw(e)
			if !ok {
				return NewError(CorruptData, "pool %s lost entity %d between enumerate and read", ct, id)
			}
			payload, err := formatter.Marshal(value)
			if err != nil {
				return WrapError(Unsupported, err, "marshal %s for entity %d", ct, id)
			}
			writeU32(&pbuf, uint32(id))
			writeLPBytes(&pbuf, payload)
		}

		// Per-pool total-bytes prefix: not part of the name's literal
		// wire layout, but added so a future reader that does not
		// recognize this stable id can skip the whole record without
		// parsing its contents.
		writeU32(&buf, uint32(pbuf.Len()))
		buf.Write(pbuf.Bytes())
	}

	_, err := out.Write(buf.Bytes())
	return err
}

// LoadFull replaces w's entire state with the snapshot read from in. A
// stream whose magic is unreadable or wrong is rejected before w is touched.
// Past the magic check the world is reset before any metadata is applied,
// and any later failure (including a failing migration) resets it again,
// so a truncated or corrupt stream leaves it empty, never half-loaded
// (§4.8).
func LoadFull(w *World, in io.Reader) error {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(in, magic); err != nil {
		return WrapError(CorruptData, err, "read snapshot magic")
	}
	if string(magic) != snapshotMagic {
		return NewError(CorruptData, "bad snapshot magic %q", magic)
	}

	w.Reset(true)
	loaded := false
	defer func() {
		if !loaded {
			w.Reset(true)
		}
	}()

	nextID, err := readU32(in)
	if err != nil {
		return WrapError(CorruptData, err, "read next_id")
	}

	genBytes, err := readLPBytes(in)
	if err != nil {
		return WrapError(CorruptData, err, "read generation table")
	}
	if len(genBytes)%4 != 0 {
		return NewError(CorruptData, "generation table length %d not a multiple of 4", len(genBytes))
	}
	generations := make([]Generation, len(genBytes)/4)
	for i := range generations {
		generations[i] = Generation(binary.LittleEndian.Uint32(genBytes[i*4 : i*4+4]))
	}

	freeBytes, err := readLPBytes(in)
	if err != nil {
		return WrapError(CorruptData, err, "read free-id stack")
	}
	if len(freeBytes)%4 != 0 {
		return NewError(CorruptData, "free-id table length %d not a multiple of 4", len(freeBytes))
	}
	freeIDs := make([]EntityID, len(freeBytes)/4)
	for i := range freeIDs {
		freeIDs[i] = EntityID(binary.LittleEndian.Uint32(freeBytes[i*4 : i*4+4]))
	}

	aliveBytes, err := readLPBytes(in)
	if err != nil {
		return WrapError(CorruptData, err, "read alive bitset")
	}

	w.entities.loadState(EntityID(nextID), generations, freeIDs, aliveBytes)

	poolCount, err := readU32(in)
	if err != nil {
		return WrapError(CorruptData, err, "read pool count")
	}

	for i := uint32(0); i < poolCount; i++ {
		totalBytes, err := readU32(in)
		if err != nil {
			return WrapError(CorruptData, err, "read pool %d total-bytes prefix", i)
		}
		blob := make([]byte, totalBytes)
		if _, err := io.ReadFull(in, blob); err != nil {
			return WrapError(CorruptData, err, "read pool %d body", i)
		}
		if err := loadPoolBlob(w, blob); err != nil {
			return err
		}
	}

	for _, m := range w.migrations {
		if err := m.fn(w); err != nil {
			return WrapError(Unsupported, err, "post-load migration %q", m.name)
		}
	}
	loaded = true
	return nil
}

// loadPoolBlob parses and applies a single per-pool record. A pool whose
// stable id and type name both fail to resolve against the current
// registry is skipped, since an older snapshot may reference a component
// type this build no longer defines; the total-bytes framing already
// consumed the record from the stream before this is called.
func loadPoolBlob(w *World, blob []byte) error {
	r := bytes.NewReader(blob)

	stableID, err := readLPString(r)
	if err != nil {
		return WrapError(CorruptData, err, "read pool stable id")
	}
	typeName, err := readLPString(r)
	if err != nil {
		return WrapError(CorruptData, err, "read pool type name")
	}
	entityCount, err := readU32(r)
	if err != nil {
		return WrapError(CorruptData, err, "read pool entity count")
	}

	ct, ok := resolveComponentType(w, stableID, typeName)
	if !ok {
		w.logger.Warnw("skipping unknown pool on load", "stable_id", stableID, "type_name", typeName)
		return nil
	}

	pool, ok := w.components.get(ct)
	if !ok {
		return NewError(NotFound, "component type %q registered but pool missing", ct)
	}
	formatter, ok := w.formatters[ct]
	if !ok {
		return NewError(Unsupported, "no formatter registered for %s", ct)
	}

	pool.reset()
	for i := uint32(0); i < entityCount; i++ {
		id, err := readU32(r)
		if err != nil {
			return WrapError(CorruptData, err, "read entity id in pool %s", ct)
		}
		payload, err := readLPBytes(r)
		if err != nil {
			return WrapError(CorruptData, err, "read payload for entity %d in pool %s", id, ct)
		}
		value, err := formatter.Unmarshal(payload)
		if err != nil {
			return WrapError(CorruptData, err, "unmarshal %s for entity %d", ct, id)
		}
		e := Entity{ID: EntityID(id), Gen: w.entities.GenerationOf(EntityID(id))}
		// Bulk-load mode: write straight into the pool via setRaw rather
		// than going through a command buffer, so loading never fires
		// binder deltas or consults write-gate hooks.
		if err := pool.setRaw(e, value); err != nil {
			return WrapError(CorruptData, err, "load %s for entity %d", ct, id)
		}
	}
	return nil
}

// SnapshotSummary is the read-only description ReadSummary extracts from a
// ZENSNAP1 stream: entity-table sizing and, per pool, its stable id, the Go
// type name recorded alongside it, and how many entities it covers. It
// carries no component values, since inspecting a snapshot has no
// registered formatters to decode payloads against.
type SnapshotSummary struct {
	NextID      EntityID
	AliveCount  int
	FreeIDCount int
	Pools       []PoolSummary
}

// PoolSummary is one pool record's metadata, as ReadSummary finds it.
type PoolSummary struct {
	StableID    string
	TypeName    string
	EntityCount int
}

// ReadSummary parses a ZENSNAP1 stream's structure without constructing a
// World or requiring any registered component types, for tooling that wants
// to describe a snapshot file (cmd/zenecs's inspect subcommand) without
// mutating or re-saving it. Pool payload bytes are skipped, not decoded.
func ReadSummary(in io.Reader) (SnapshotSummary, error) {
	var out SnapshotSummary

	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(in, magic); err != nil {
		return out, WrapError(CorruptData, err, "read snapshot magic")
	}
	if string(magic) != snapshotMagic {
		return out, NewError(CorruptData, "bad snapshot magic %q", magic)
	}

	nextID, err := readU32(in)
	if err != nil {
		return out, WrapError(CorruptData, err, "read next_id")
	}
	out.NextID = EntityID(nextID)

	genBytes, err := readLPBytes(in)
	if err != nil {
		return out, WrapError(CorruptData, err, "read generation table")
	}

	freeBytes, err := readLPBytes(in)
	if err != nil {
		return out, WrapError(CorruptData, err, "read free-id stack")
	}
	out.FreeIDCount = len(freeBytes) / 4

	aliveBytes, err := readLPBytes(in)
	if err != nil {
		return out, WrapError(CorruptData, err, "read alive bitset")
	}
	var alive DynBitset
	alive.loadFromBytes(aliveBytes)
	out.AliveCount = alive.Count()
	_ = genBytes // entity-table generations carry no summary-relevant detail

	poolCount, err := readU32(in)
	if err != nil {
		return out, WrapError(CorruptData, err, "read pool count")
	}

	for i := uint32(0); i < poolCount; i++ {
		totalBytes, err := readU32(in)
		if err != nil {
			return out, WrapError(CorruptData, err, "read pool %d total-bytes prefix", i)
		}
		blob := make([]byte, totalBytes)
		if _, err := io.ReadFull(in, blob); err != nil {
			return out, WrapError(CorruptData, err, "read pool %d body", i)
		}

		r := bytes.NewReader(blob)
		stableID, err := readLPString(r)
		if err != nil {
			return out, WrapError(CorruptData, err, "read pool %d stable id", i)
		}
		typeName, err := readLPString(r)
		if err != nil {
			return out, WrapError(CorruptData, err, "read pool %d type name", i)
		}
		entityCount, err := readU32(r)
		if err != nil {
			return out, WrapError(CorruptData, err, "read pool %d entity count", i)
		}
		out.Pools = append(out.Pools, PoolSummary{
			StableID:    stableID,
			TypeName:    typeName,
			EntityCount: int(entityCount),
		})
	}

	return out, nil
}

// resolveComponentType maps a saved pool's stable id to a currently
// registered ComponentType, falling back to a bare Go type-name match if no
// stable id matches (§4.8's "resolve by stable id, falling back to type
// name").
func resolveComponentType(w *World, stableID, typeName string) (ComponentType, bool) {
	for _, ct := range w.components.allTypes() {
		desc, ok := w.components.descriptorFor(ct)
		if ok && desc.StableID == stableID {
			return ct, true
		}
	}
	if typeName == "" {
		return "", false
	}
	for _, ct := range w.components.allTypes() {
		desc, ok := w.components.descriptorFor(ct)
		if ok && desc.GoType != nil && desc.GoType.String() == typeName {
			return ct, true
		}
	}
	return "", false
}
