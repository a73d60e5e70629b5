package hostval

import (
	"errors"
	"fmt"
)

// ErrNotEncodable is wrapped by every *TypeError.
var ErrNotEncodable = errors.New("value not encodable")

// TypeError reports a host value outside the closed set of encodable values.
type TypeError struct {
	FieldPath string // kinded path of the offending element, "" at top level
	Type      string // Go type of the offending element
	Message   string
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("unsupported type %s", e.Type)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("type error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}

func (e *TypeError) Unwrap() error {
	return ErrNotEncodable
}
