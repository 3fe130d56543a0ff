// Package ecs implements the entity-component-system core: entity table and
// component pools, the filter/query engine, command buffering and write-phase
// discipline, the system runner, the kernel's fixed-step accumulator, and the
// snapshot codec.
package ecs

import "fmt"

// EntityID is the raw, recyclable slot index of an entity. ID 0 is reserved
// as the null handle and is never returned by Reserve.
type EntityID uint32

// Generation counts how many times a slot has been destroyed and reused.
type Generation uint32

// Entity is the stable handle a caller holds: a slot id paired with the
// generation it was valid for. A handle is live iff the slot's alive bit is
// set and its current generation equals Gen.
type Entity struct {
	ID  EntityID
	Gen Generation
}

// Null is the reserved zero handle; IsNull reports whether e is it.
var Null = Entity{}

// IsNull reports whether e is the reserved null handle.
func (e Entity) IsNull() bool { return e.ID == 0 }

// String renders an entity as "id:gen" for logs and error context.
func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.ID, e.Gen)
}

// ComponentType identifies a component kind by its registered name. Two
// component types are the same iff their ComponentType strings match.
type ComponentType string

// SystemType identifies a registered system by name.
type SystemType string

// GrowthPolicy controls how the entity table's backing arrays grow when a
// reserved id exceeds current capacity.
type GrowthPolicy int

const (
	// GrowthDoubling doubles capacity (min step 256) until it covers the
	// required id. This is the default policy.
	GrowthDoubling GrowthPolicy = iota
	// GrowthStep rounds the required id up to the next multiple of
	// GrowthStep, clamped to a minimum of 32.
	GrowthStep
)

// WorldConfig configures a World's initial capacities and growth behavior.
// Values are clamped to the minimums in the table below when a World is
// constructed; the zero value is not itself a valid config — use
// DefaultWorldConfig.
type WorldConfig struct {
	InitialEntityCapacity int          // default 256, clamp >= 16
	InitialPoolBuckets    int          // default 256, clamp >= 16
	InitialFreeIDCapacity int          // default 128, clamp >= 16
	GrowthPolicy          GrowthPolicy // default GrowthDoubling
	GrowthStep            int          // default 256, clamp >= 32 (Step policy only)
}

// DefaultWorldConfig returns the documented defaults (§6.2).
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		InitialEntityCapacity: 256,
		InitialPoolBuckets:    256,
		InitialFreeIDCapacity: 128,
		GrowthPolicy:          GrowthDoubling,
		GrowthStep:            256,
	}
}

// clamp applies the minimums from §6.2 and fills in zero-valued fields with
// their defaults, so a caller can pass a partially-populated WorldConfig.
func (c WorldConfig) clamp() WorldConfig {
	d := DefaultWorldConfig()
	if c.InitialEntityCapacity == 0 {
		c.InitialEntityCapacity = d.InitialEntityCapacity
	}
	if c.InitialPoolBuckets == 0 {
		c.InitialPoolBuckets = d.InitialPoolBuckets
	}
	if c.InitialFreeIDCapacity == 0 {
		c.InitialFreeIDCapacity = d.InitialFreeIDCapacity
	}
	if c.GrowthStep == 0 {
		c.GrowthStep = d.GrowthStep
	}
	if c.InitialEntityCapacity < 16 {
		c.InitialEntityCapacity = 16
	}
	if c.InitialPoolBuckets < 16 {
		c.InitialPoolBuckets = 16
	}
	if c.InitialFreeIDCapacity < 16 {
		c.InitialFreeIDCapacity = 16
	}
	if c.GrowthStep < 32 {
		c.GrowthStep = 32
	}
	return c
}

// WriteFailurePolicy governs what happens when a command-buffer write is
// denied by a hook or validator (§4.4, §7).
type WriteFailurePolicy int

const (
	// Throw surfaces the denial as a typed error to the caller.
	Throw WriteFailurePolicy = iota
	// Log drops the operation and emits a warning through the logger.
	Log
	// Ignore drops the operation silently.
	Ignore
)

// WritePhase is the per-world discrete state consulted by write gates in
// addition to user-registered hooks (§3, §4.4).
type WritePhase int

const (
	// PhaseNone denies structural writes but is not an explicit deny-all
	// phase; used between fixed-step barrier and the next begin_frame.
	PhaseNone WritePhase = iota
	PhaseSimulation
	PhasePresentation
	PhaseReset
)

// writePhaseState bundles the phase enum with its two flags (§3).
type writePhaseState struct {
	phase                    WritePhase
	denyAllWrites            bool
	structuralChangesAllowed bool
}

// Priority controls tie-breaking within a system group's topological sort.
// Ties break by stable registration order, not by priority value; Priority
// exists because callers commonly still want a coarse priority knob.
type Priority int

const (
	PriorityLowest  Priority = 0
	PriorityLow     Priority = 25
	PriorityNormal  Priority = 50
	PriorityHigh    Priority = 75
	PriorityHighest Priority = 100
)
