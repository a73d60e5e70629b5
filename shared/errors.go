package shared

import (
	"errors"
	"fmt"

	"github.com/signadot/ydoc/engine"
)

var (
	ErrTypeMismatch      = errors.New("cannot integrate this value")
	ErrAlreadyIntegrated = errors.New("value already belongs to a document tree")
	ErrIndexOutOfRange   = engine.ErrIndexOutOfRange
	ErrIteratorLifetime  = errors.New("iterator used after its transaction finished")
	ErrPrelim            = errors.New("container is not integrated")

	errNilHandle = errors.New("nil handle")
)

// Code classifies an Error.
type Code int

const (
	TypeMismatch Code = iota + 1
	AlreadyIntegrated
	IndexOutOfRange
	IteratorLifetimeViolation
	NotIntegrated
)

func (c Code) sentinel() error {
	switch c {
	case TypeMismatch:
		return ErrTypeMismatch
	case AlreadyIntegrated:
		return ErrAlreadyIntegrated
	case IndexOutOfRange:
		return ErrIndexOutOfRange
	case IteratorLifetimeViolation:
		return ErrIteratorLifetime
	case NotIntegrated:
		return ErrPrelim
	}
	return nil
}

func (c Code) String() string {
	if err := c.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("<code %d>", int(c))
}

// Error is the error returned by handle operations.  Op names the failing
// operation (e.g. "array.insert") and Kind the kind of the offending value
// when there is one.
type Error struct {
	Op   string
	Kind string
	Code Code
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Code.String()
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	switch {
	case e.Err == nil:
	case errors.Is(e.Err, e.Code.sentinel()):
		msg = e.Op + ": " + e.Err.Error()
	default:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error of e's Code.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Code.sentinel()
}

func typeMismatch(op string, v any, err error) *Error {
	return &Error{Op: op, Kind: valueKind(v), Code: TypeMismatch, Err: err}
}

func alreadyIntegrated(op string, h Handle) *Error {
	return &Error{Op: op, Kind: h.Kind().String(), Code: AlreadyIntegrated}
}

func notIntegrated(op string, k engine.Kind) *Error {
	return &Error{Op: op, Kind: k.String(), Code: NotIntegrated}
}

func outOfRange(op string, index, length, size int) *Error {
	return &Error{
		Op:   op,
		Code: IndexOutOfRange,
		Err:  fmt.Errorf("range [%d, %d) of length %d", index, index+length, size),
	}
}

// engineErr wraps an error returned by the engine, keeping index errors
// recognizable by Code.
func engineErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, engine.ErrIndexOutOfRange) {
		return &Error{Op: op, Code: IndexOutOfRange, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func valueKind(v any) string {
	if h, ok := v.(Handle); ok {
		return h.Kind().String()
	}
	return fmt.Sprintf("%T", v)
}
