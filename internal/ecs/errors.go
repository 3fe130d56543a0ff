package ecs

import (
	"errors"
	"fmt"
)

// ErrorKind is one of the seven error kinds this package distinguishes
// (§7). Kinds are behavioral categories, not language-level error types;
// callers should branch on Kind via errors.As(err, &ecsErr) and ecsErr.Kind,
// not on the underlying message text.
type ErrorKind int

const (
	// InvalidOperation covers using a destroyed world, a missing component
	// on a fallible accessor, or any call that is well-formed but not legal
	// in the current state.
	InvalidOperation ErrorKind = iota
	// InvalidArgument covers nil/out-of-range arguments.
	InvalidArgument
	// Disposed covers use of an object (world, kernel) already torn down.
	Disposed
	// NotFound covers missing context/service lookups.
	NotFound
	// Unsupported covers a missing formatter or an unknown operation kind.
	Unsupported
	// CorruptData covers a snapshot magic mismatch or a truncated stream.
	CorruptData
	// DependencyCycle covers a system ordering cycle.
	DependencyCycle
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidOperation:
		return "InvalidOperation"
	case InvalidArgument:
		return "InvalidArgument"
	case Disposed:
		return "Disposed"
	case NotFound:
		return "NotFound"
	case Unsupported:
		return "Unsupported"
	case CorruptData:
		return "CorruptData"
	case DependencyCycle:
		return "DependencyCycle"
	default:
		return "Unknown"
	}
}

// EcsError is the single error type the core returns. It carries a Kind plus
// optional context fields, matching the ECSError idiom found elsewhere in
// this lineage (code, message, entity/component/system context, chainable
// With* builders) retargeted at this package's own error-kind taxonomy
// instead of free-form string codes.
type EcsError struct {
	Kind      ErrorKind
	Message   string
	World     string
	Entity    Entity
	HasEntity bool
	Component ComponentType
	System    SystemType
	Err       error // wrapped underlying error, if any
}

func (e *EcsError) Error() string {
	return e.render()
}

func (e *EcsError) render() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.World != "" {
		s = fmt.Sprintf("%s: %s", e.World, s)
	}
	if e.HasEntity {
		s = fmt.Sprintf("%s (entity %s)", s, e.Entity)
	}
	if e.Component != "" {
		s = fmt.Sprintf("%s (component %s)", s, e.Component)
	}
	if e.System != "" {
		s = fmt.Sprintf("%s (system %s)", s, e.System)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

// Unwrap exposes the wrapped error for errors.Is/errors.As.
func (e *EcsError) Unwrap() error { return e.Err }

// WithEntity attaches entity context and returns e for chaining.
func (e *EcsError) WithEntity(ent Entity) *EcsError {
	e.Entity = ent
	e.HasEntity = true
	return e
}

// WithComponent attaches component-type context and returns e for chaining.
func (e *EcsError) WithComponent(ct ComponentType) *EcsError {
	e.Component = ct
	return e
}

// WithSystem attaches system-type context and returns e for chaining.
func (e *EcsError) WithSystem(st SystemType) *EcsError {
	e.System = st
	return e
}

// WithWorld attaches the owning world's name and returns e for chaining.
func (e *EcsError) WithWorld(name string) *EcsError {
	e.World = name
	return e
}

// NewError constructs an EcsError of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *EcsError {
	return &EcsError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error under the given kind, preserving it for
// errors.Unwrap/errors.Is.
func WrapError(kind ErrorKind, err error, format string, args ...any) *EcsError {
	return &EcsError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the ErrorKind from err if it is (or wraps) an *EcsError,
// returning ok=false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var e *EcsError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is (or wraps) an *EcsError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

var (
	// ErrMissingComponent is returned (wrapped) by Pool.Replace/Remove and by
	// ReadComponent/GetMutComponent, and carried by Pool.MustGet's panic, when
	// the entity does not carry the pool's component type (§4.2). Pool.Get
	// reports absence through its bool result instead.
	ErrMissingComponent = errors.New("missing component")
	// ErrConflict is returned by Pool.Add when the entity already carries
	// the pool's component type (§4.2).
	ErrConflict = errors.New("component already present")
)
