package shared

import (
	"iter"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// XmlElement is a shared xml element.  Elements are always integrated:
// they are created in the tree with InsertElement.
type XmlElement struct {
	ref engine.XmlElement
}

var _ Handle = (*XmlElement)(nil)

// XmlElementOf returns the handle of ref.
func XmlElementOf(ref engine.XmlElement) *XmlElement {
	return &XmlElement{ref: ref}
}

func (e *XmlElement) Kind() engine.Kind { return engine.XmlElementKind }

func (e *XmlElement) Prelim() bool { return false }

func (e *XmlElement) Ref() engine.XmlElement { return e.ref }

func (e *XmlElement) integrate(engine.Txn, engine.Ref) error {
	return typeMismatch("xml_element.integrate", e, nil)
}

func (e *XmlElement) prelimValues() []any { return nil }

func (e *XmlElement) Tag() string { return e.ref.Tag() }

func (e *XmlElement) Len(tx engine.Txn) int { return e.ref.Len(tx) }

// InsertElement inserts a new element with tag at index.
func (e *XmlElement) InsertElement(tx engine.Txn, index int, tag string) (*XmlElement, error) {
	const op = "xml_element.insert_element"
	if n := e.ref.Len(tx); index < 0 || index > n {
		return nil, outOfRange(op, index, 0, n)
	}
	child, err := e.ref.InsertElement(tx, index, tag)
	if err != nil {
		return nil, engineErr(op, err)
	}
	return XmlElementOf(child), nil
}

// InsertText inserts a new empty text node at index.
func (e *XmlElement) InsertText(tx engine.Txn, index int) (*XmlText, error) {
	const op = "xml_element.insert_text"
	if n := e.ref.Len(tx); index < 0 || index > n {
		return nil, outOfRange(op, index, 0, n)
	}
	child, err := e.ref.InsertText(tx, index)
	if err != nil {
		return nil, engineErr(op, err)
	}
	return XmlTextOf(child), nil
}

// Delete removes the children in [index, index+length).
func (e *XmlElement) Delete(tx engine.Txn, index, length int) error {
	const op = "xml_element.delete"
	if n := e.ref.Len(tx); index < 0 || length < 0 || index+length > n {
		return outOfRange(op, index, length, n)
	}
	return engineErr(op, e.ref.Delete(tx, index, length))
}

// Get returns the child at index, an *XmlElement or an *XmlText.
func (e *XmlElement) Get(tx engine.Txn, index int) (any, error) {
	v, err := e.ref.Get(tx, index)
	if err != nil {
		return nil, engineErr("xml_element.get", err)
	}
	return FromValue(v), nil
}

// Children iterates over the children present when Children is called.
// The sequence must only be used while tx is active; using it afterwards
// panics with an *Error.
func (e *XmlElement) Children(tx engine.Txn) iter.Seq[any] {
	return valueSeq("xml_element.children", tx, e.ref.Children(tx))
}

func (e *XmlElement) SetAttribute(tx engine.Txn, name, value string) error {
	return engineErr("xml_element.set_attribute", e.ref.SetAttribute(tx, name, value))
}

func (e *XmlElement) Attribute(tx engine.Txn, name string) (string, bool) {
	return e.ref.Attribute(tx, name)
}

func (e *XmlElement) RemoveAttribute(tx engine.Txn, name string) error {
	return engineErr("xml_element.remove_attribute", e.ref.RemoveAttribute(tx, name))
}

func (e *XmlElement) Attributes(tx engine.Txn) map[string]string {
	return e.ref.Attributes(tx)
}

// String renders the element as XML.
func (e *XmlElement) String(tx engine.Txn) string {
	return e.ref.String(tx)
}

func (e *XmlElement) ToJSON(tx engine.Txn) (*ir.Node, error) {
	return e.toJSON(tx)
}

func (e *XmlElement) toJSON(tx engine.Txn) (*ir.Node, error) {
	return e.ref.ToJSON(tx), nil
}

func (e *XmlElement) Observe(fn func(*Event)) (engine.SubscriptionID, error) {
	return observe("xml_element.observe", e, e.ref, fn)
}

func (e *XmlElement) ObserveDeep(fn func([]*Event)) (engine.SubscriptionID, error) {
	return observeDeep("xml_element.observe_deep", e, e.ref, fn)
}

func (e *XmlElement) Unobserve(id engine.SubscriptionID) bool {
	return unobserve(e, e.ref, id)
}

// XmlText is rich text inside an xml element, with attributes.  Like
// elements, xml texts are always integrated.
type XmlText struct {
	*Text
	ref engine.XmlText
}

var _ Handle = (*XmlText)(nil)

// XmlTextOf returns the handle of ref.
func XmlTextOf(ref engine.XmlText) *XmlText {
	return &XmlText{Text: TextOf(ref), ref: ref}
}

func (x *XmlText) Kind() engine.Kind { return engine.XmlTextKind }

func (x *XmlText) Ref() engine.XmlText { return x.ref }

func (x *XmlText) integrate(engine.Txn, engine.Ref) error {
	return typeMismatch("xml_text.integrate", x, nil)
}

func (x *XmlText) SetAttribute(tx engine.Txn, name, value string) error {
	return engineErr("xml_text.set_attribute", x.ref.SetAttribute(tx, name, value))
}

func (x *XmlText) Attribute(tx engine.Txn, name string) (string, bool) {
	return x.ref.Attribute(tx, name)
}

func (x *XmlText) RemoveAttribute(tx engine.Txn, name string) error {
	return engineErr("xml_text.remove_attribute", x.ref.RemoveAttribute(tx, name))
}

func (x *XmlText) Attributes(tx engine.Txn) map[string]string {
	return x.ref.Attributes(tx)
}
