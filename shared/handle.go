package shared

import (
	"fmt"
	"reflect"

	"github.com/signadot/ydoc/debug"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/hostval"
	"github.com/signadot/ydoc/ir"
)

// Handle is a shared container: an *Array, *Map, *Text, *XmlElement or
// *XmlText.
type Handle interface {
	Kind() engine.Kind
	// Prelim reports whether the handle is preliminary, that is not yet
	// part of a document.
	Prelim() bool

	// integrate replays the preliminary contents into ref, which must be a
	// new empty container of the handle's kind, and makes the handle
	// integrated.
	integrate(tx engine.Txn, ref engine.Ref) error
	// prelimValues returns the host values held by a preliminary handle.
	prelimValues() []any
	toJSON(tx engine.Txn) (*ir.Node, error)
}

// lifecycle is the state of a handle: preliminary with a local buffer, or
// integrated with a reference into the tree.  The transition is one way.
type lifecycle[B any, R engine.Ref] struct {
	buf        B
	ref        R
	integrated bool
}

func (l *lifecycle[B, R]) Prelim() bool {
	return !l.integrated
}

// integrateTo makes l integrated and returns the buffer it held.
func (l *lifecycle[B, R]) integrateTo(ref R) B {
	buf := l.buf
	var zero B
	l.buf = zero
	l.ref = ref
	l.integrated = true
	return buf
}

// Item is a classified host value: exactly one of Plain and Handle is set.
type Item struct {
	Plain  *ir.Node
	Handle Handle
}

// Classify classifies v for insertion into a document.  Values which
// encode to an Any are Plain; preliminary Array, Map and Text handles are
// containers.  Integrated handles fail with ErrAlreadyIntegrated, anything
// else with ErrTypeMismatch.  Classify does not modify v.
func Classify(v any) (Item, error) {
	return classify("classify", v)
}

func classify(op string, v any) (Item, error) {
	if h, ok := v.(Handle); ok {
		if rv := reflect.ValueOf(h); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Item{}, typeMismatch(op, v, errNilHandle)
		}
		switch h.Kind() {
		case engine.XmlElementKind, engine.XmlTextKind:
			return Item{}, typeMismatch(op, v, nil)
		}
		if !h.Prelim() {
			return Item{}, alreadyIntegrated(op, h)
		}
		return Item{Handle: h}, nil
	}
	n, err := hostval.EncodeErr(v)
	if err != nil {
		return Item{}, typeMismatch(op, v, err)
	}
	return Item{Plain: n}, nil
}

// checker validates a batch of values, including the contents of
// preliminary handles, before anything is written.  A preliminary handle
// may occur only once in a batch.
type checker struct {
	op   string
	seen map[Handle]bool
}

func newChecker(op string) *checker {
	return &checker{op: op, seen: map[Handle]bool{}}
}

func (c *checker) check(v any) (Item, error) {
	item, err := classify(c.op, v)
	if err != nil {
		return item, err
	}
	h := item.Handle
	if h == nil {
		return item, nil
	}
	if c.seen[h] {
		return Item{}, alreadyIntegrated(c.op, h)
	}
	c.seen[h] = true
	for _, cv := range h.prelimValues() {
		if _, err := c.check(cv); err != nil {
			return Item{}, err
		}
	}
	return item, nil
}

// checkPrelim validates values added to the buffer of the preliminary
// handle owner.  owner may not be reachable from values.
func checkPrelim(op string, owner Handle, values ...any) error {
	c := newChecker(op)
	c.seen[owner] = true
	for _, v := range values {
		if _, err := c.check(v); err != nil {
			return err
		}
	}
	return nil
}

// attach integrates the preliminary handle h into ref.
func attach(tx engine.Txn, h Handle, ref engine.Ref) error {
	if debug.Integrate() {
		debug.Logf("integrate %s into %s %s\n", h.Kind(), ref.Kind(), ref.ID())
	}
	if ref.Kind() != h.Kind() {
		return fmt.Errorf("%w: %s handle into %s", engine.ErrKindMismatch, h.Kind(), ref.Kind())
	}
	return h.integrate(tx, ref)
}

// FromValue converts a value read from a document to a host value: Any
// values are decoded, container references are wrapped in integrated
// handles.
func FromValue(v engine.Value) any {
	if v.Ref == nil {
		return hostval.Decode(v.Any)
	}
	switch v.Ref.Kind() {
	case engine.ArrayKind:
		return ArrayOf(v.Ref.(engine.Array))
	case engine.MapKind:
		return MapOf(v.Ref.(engine.Map))
	case engine.TextKind:
		return TextOf(v.Ref.(engine.Text))
	case engine.XmlElementKind:
		return XmlElementOf(v.Ref.(engine.XmlElement))
	case engine.XmlTextKind:
		return XmlTextOf(v.Ref.(engine.XmlText))
	}
	panic(fmt.Sprintf("shared: unknown container kind %s", v.Ref.Kind()))
}

// jsonOf renders a host value held in a preliminary buffer.
func jsonOf(tx engine.Txn, v any) (*ir.Node, error) {
	if h, ok := v.(Handle); ok {
		return h.toJSON(tx)
	}
	return hostval.EncodeErr(v)
}
