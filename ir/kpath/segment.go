package kpath

import (
	"fmt"
	"strconv"
	"strings"
)

type EntryKind int

const (
	FieldEntry EntryKind = iota
	ArrayEntry
)

func (k EntryKind) String() string {
	switch k {
	case FieldEntry:
		return "field"
	case ArrayEntry:
		return "index"
	}
	return "<unknown entry kind>"
}

// EntryKind returns the kind of the first segment of p.
func (p *KPath) EntryKind() EntryKind {
	if p.Index != nil {
		return ArrayEntry
	}
	return FieldEntry
}

func (p *KPath) copySegment() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
		return res
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
		return res
	}
	return res
}

func segmentsEqual(a, b *KPath) bool {
	if (a.Field == nil) != (b.Field == nil) {
		return false
	}
	if a.Field != nil {
		return *a.Field == *b.Field
	}
	if (a.Index == nil) != (b.Index == nil) {
		return false
	}
	if a.Index != nil {
		return *a.Index == *b.Index
	}
	return true
}

// SegmentString returns the canonical string representation of this single segment.
// Unlike String(), this only returns the current segment, not the entire path.
// Examples:
//   - KPath{Field: &"a"} → "a"
//   - KPath{Field: &"field name"} → `"field name"` (quoted if needed)
//   - KPath{Index: &0} → "[0]"
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		return quoteField(*p.Field)
	}
	if p.Index != nil {
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

func quoteField(field string) string {
	if needsQuote(field) {
		return strconv.Quote(field)
	}
	return field
}

func needsQuote(field string) bool {
	if field == "" {
		return true
	}
	if field[0] == '"' || field[0] == '\'' {
		return true
	}
	return strings.ContainsAny(field, ".[]{} \t\r\n\\")
}
