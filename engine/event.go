package engine

import (
	"github.com/signadot/ydoc/ir/kpath"
)

// DeltaKind tags a Delta.
type DeltaKind int

const (
	DeltaInserted DeltaKind = iota
	DeltaRetain
	DeltaDeleted
)

// Delta is a change record of rich text.
//
//   - DeltaInserted: Insert holds the inserted content (a String for text, or
//     an embedded value), Attrs its formatting.
//   - DeltaRetain: Len runes are kept; non nil Attrs were applied to them.
//   - DeltaDeleted: Len runes are removed.
type Delta struct {
	Kind   DeltaKind
	Insert Value
	Len    int
	Attrs  Attrs
}

// ChangeKind tags a Change.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRetain
	ChangeRemoved
)

// Change is a change record of a sequence.
//
//   - ChangeAdded: Values were inserted.
//   - ChangeRetain: Len elements are kept.
//   - ChangeRemoved: Len elements are removed.
type Change struct {
	Kind   ChangeKind
	Values []Value
	Len    int
}

// EntryChangeKind tags an EntryChange.
type EntryChangeKind int

const (
	EntryInserted EntryChangeKind = iota
	EntryUpdated
	EntryRemoved
)

// EntryChange is a change record of a map entry or an xml attribute.
// Old is set for EntryUpdated and EntryRemoved, New for EntryInserted and
// EntryUpdated.
type EntryChange struct {
	Kind EntryChangeKind
	Old  Value
	New  Value
}

// Event describes the changes one transaction made to one container.
// Depending on the kind of Target, Changes (Array, XmlElement children) or
// Delta (Text, XmlText) describe the sequence part, and Keys (Map, xml
// attributes) the keyed part.
type Event struct {
	Target Ref
	// Path locates Target from the document root; its first segment is
	// the root container's name.
	Path    *kpath.KPath
	Changes []Change
	Delta   []Delta
	Keys    map[string]EntryChange
}
