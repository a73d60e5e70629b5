package engine

import (
	"github.com/signadot/ydoc/ir"
)

// Txn is a scoped mutation context.  All reads and writes of integrated
// containers happen within a Txn, which the engine creates and finishes;
// values read under a Txn must not be used once Done reports true.
type Txn interface {
	Done() bool
}

// Ref is a live reference to a container in the document tree.  A Ref is
// valid as long as the document owning it exists.
type Ref interface {
	Kind() Kind
	ID() ID
}

// Value is a value read from the tree: exactly one of Any and Ref is set.
type Value struct {
	Any *ir.Node
	Ref Ref
}

// AnyValue wraps n.
func AnyValue(n *ir.Node) Value {
	return Value{Any: n}
}

// RefValue wraps r.
func RefValue(r Ref) Value {
	return Value{Ref: r}
}

// Attrs are formatting attributes of rich text.
type Attrs map[string]*ir.Node

// SubscriptionID identifies an observer registration.
type SubscriptionID uint32

// Observable containers report their changes at commit time.
type Observable interface {
	// Observe registers fn to be called with the changes made to this
	// container by each committed transaction.
	Observe(fn func(Txn, *Event)) SubscriptionID
	// ObserveDeep registers fn to be called with the changes made to this
	// container and any container nested in it by each committed
	// transaction.
	ObserveDeep(fn func(Txn, []*Event)) SubscriptionID
	// Unobserve removes a registration made by Observe or ObserveDeep.
	Unobserve(SubscriptionID) bool
}

// Array is a sequence container.  Indices count elements.
type Array interface {
	Ref
	Observable
	Len(tx Txn) int
	// InsertRange inserts values at index as a single operation.
	InsertRange(tx Txn, index int, values []*ir.Node) error
	// InsertContainer inserts a new empty container of the given kind at
	// index and returns a reference to it.
	InsertContainer(tx Txn, index int, kind Kind) (Ref, error)
	Delete(tx Txn, index, length int) error
	Get(tx Txn, index int) (Value, error)
	// Values returns a snapshot of the elements.
	Values(tx Txn) []Value
	ToJSON(tx Txn) *ir.Node
}

// Entry is a key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is an associative container with string keys.
type Map interface {
	Ref
	Observable
	Len(tx Txn) int
	Insert(tx Txn, key string, value *ir.Node) error
	InsertContainer(tx Txn, key string, kind Kind) (Ref, error)
	// Remove removes key, returning the removed value if it was present.
	Remove(tx Txn, key string) (Value, bool, error)
	Get(tx Txn, key string) (Value, bool)
	// Entries returns a snapshot of the entries sorted by key.
	Entries(tx Txn) []Entry
	ToJSON(tx Txn) *ir.Node
}

// Text is a rich text container.  Indices count runes.
type Text interface {
	Ref
	Observable
	Len(tx Txn) int
	// Push appends s without formatting.
	Push(tx Txn, s string) error
	Insert(tx Txn, index int, s string, attrs Attrs) error
	// Format sets attrs on a range; a Null attribute value removes it.
	Format(tx Txn, index, length int, attrs Attrs) error
	Delete(tx Txn, index, length int) error
	String(tx Txn) string
	// Delta returns the contents as a list of Inserted deltas.
	Delta(tx Txn) []Delta
	ToJSON(tx Txn) *ir.Node
}

// XmlElement is an element with a tag, string attributes and XmlElement or
// XmlText children.
type XmlElement interface {
	Ref
	Observable
	Tag() string
	Len(tx Txn) int
	InsertElement(tx Txn, index int, tag string) (XmlElement, error)
	InsertText(tx Txn, index int) (XmlText, error)
	Delete(tx Txn, index, length int) error
	Get(tx Txn, index int) (Value, error)
	Children(tx Txn) []Value
	SetAttribute(tx Txn, name, value string) error
	Attribute(tx Txn, name string) (string, bool)
	RemoveAttribute(tx Txn, name string) error
	Attributes(tx Txn) map[string]string
	// String renders the element as XML.
	String(tx Txn) string
	ToJSON(tx Txn) *ir.Node
}

// XmlText is rich text with string attributes, living in an XmlElement.
type XmlText interface {
	Text
	SetAttribute(tx Txn, name, value string) error
	Attribute(tx Txn, name string) (string, bool)
	RemoveAttribute(tx Txn, name string) error
	Attributes(tx Txn) map[string]string
}
