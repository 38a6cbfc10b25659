// SPDX-License-Identifier: MIT
package kernel

import (
	"fmt"
)

// Kind is the closed set of error kinds a ctrain operation can return.
// It is implemented as a tagged enum with explicit switches at call
// sites, per the audit requirement that every branch be visible to
// review rather than hidden behind virtual dispatch.
type Kind uint8

const (
	// Ok is the zero value; never actually returned as an error kind,
	// present so Kind's zero value is meaningful in logs and tests.
	Ok Kind = iota
	Null
	Dimension
	Overflow
	Underflow
	DivZero
	Domain
	Config
	State
	Memory
	Hash
	Fault
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case Null:
		return "null"
	case Dimension:
		return "dimension"
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	case DivZero:
		return "div_zero"
	case Domain:
		return "domain"
	case Config:
		return "config"
	case State:
		return "state"
	case Memory:
		return "memory"
	case Hash:
		return "hash"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

// KindError is the concrete error type returned by every higher-level
// ctrain operation. Op names the failing operation (e.g. "tensor.Hash",
// "merklechain.Step"); Err, when non-nil, is an underlying cause wrapped
// with %w semantics via Unwrap.
type KindError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *KindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, kernel.ErrDimension) (and the other sentinels
// below) match any *KindError carrying the same Kind, regardless of Op
// or wrapped cause.
func (e *KindError) Is(target error) bool {
	other, ok := target.(*KindError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Sentinel errors, one per Kind, for errors.Is comparisons. These carry
// no Op or Err and exist only as comparison targets.
var (
	ErrNull      = &KindError{Kind: Null}
	ErrDimension = &KindError{Kind: Dimension}
	ErrOverflow  = &KindError{Kind: Overflow}
	ErrUnderflow = &KindError{Kind: Underflow}
	ErrDivZero   = &KindError{Kind: DivZero}
	ErrDomain    = &KindError{Kind: Domain}
	ErrConfig    = &KindError{Kind: Config}
	ErrState     = &KindError{Kind: State}
	ErrMemory    = &KindError{Kind: Memory}
	ErrHash      = &KindError{Kind: Hash}
	ErrFault     = &KindError{Kind: Fault}
)

// Errorf builds a *KindError for op, wrapping cause (which may be nil)
// with a formatted message. Every package calls this directly to keep
// the Kind/Op/cause shape uniform across the module.
func Errorf(op string, kind Kind, format string, args ...interface{}) error {
	var err error
	if format != "" {
		err = fmt.Errorf(format, args...)
	}
	return &KindError{Kind: kind, Op: op, Err: err}
}

// Wrap builds a *KindError for op and kind, wrapping an existing error
// directly (no reformatting), for propagating a lower package's error
// kind upward while recording the higher-level operation name.
func Wrap(op string, kind Kind, err error) error {
	return &KindError{Kind: kind, Op: op, Err: err}
}
