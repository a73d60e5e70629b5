package kpath

import (
	"bytes"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// KPath represents a kinded path.
// Kinded paths encode node kinds in the path syntax itself:
//   - "a.b" → Map accessed via ".b" (a is a map)
//   - "a[0]" → Sequence accessed via "[0]" (a is a sequence)
//
// Exactly one of Field and Index is set on each segment.
type KPath struct {
	Field *string // Map key
	Index *int    // Sequence index
	Next  *KPath  // Next segment in path (nil for leaf)
}

// Field returns a single Key segment.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single Index segment.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string representation of this KPath.
// Example:
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}} → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
			continue
		}
		if x.Index != nil {
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// Parse parses a kinded path string.  The empty string parses to the nil
// path.
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseKFrag(kpath, root, true); err != nil {
		return nil, fmt.Errorf("kpath %q: %w", kpath, err)
	}
	return root, nil
}

func parseKFrag(frag string, parent *KPath, first bool) error {
	var rest string
	switch frag[0] {
	case '.':
		field, r, err := parseKField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		index, err := parseKIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.Index = &index
		rest = frag[i+2:]
	default:
		if !first {
			return fmt.Errorf("expected '.' or '[', got %q", frag[0])
		}
		field, r, err := parseKField(frag)
		if err != nil {
			return err
		}
		parent.Field = &field
		rest = r
	}
	if len(rest) == 0 {
		return nil
	}
	next := &KPath{}
	if err := parseKFrag(rest, next, false); err != nil {
		return err
	}
	parent.Next = next
	return nil
}

func parseKIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid array index %q: %v", is, err)
	}
	return int(u64), nil
}

// parseKField parses a map key from a fragment.  It stops at '.' or '['
// unless the key is double quoted.
func parseKField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		q, err := strconv.QuotedPrefix(frag)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		field, err = strconv.Unquote(q)
		if err != nil {
			return "", "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return field, frag[len(q):], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	if i == -1 {
		return frag, "", nil
	}
	return frag[:i], frag[i:], nil
}

// Append returns a copy of p followed by a copy of q.
func (p *KPath) Append(q *KPath) *KPath {
	var head, tail *KPath
	for _, src := range []*KPath{p, q} {
		for x := src; x != nil; x = x.Next {
			c := x.copySegment()
			if head == nil {
				head = c
			} else {
				tail.Next = c
			}
			tail = c
		}
	}
	return head
}

// Parent returns a copy of p without its last segment, or nil if p has at
// most one segment.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	tail := res
	for x := p.Next; x.Next != nil; x = x.Next {
		tail.Next = x.copySegment()
		tail = tail.Next
	}
	return res
}

// LastSegment returns the last segment of p.
func (p *KPath) LastSegment() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x
}

// Len returns the number of segments in p.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Segments iterates over the segments of p in order.
func (p *KPath) Segments() iter.Seq[*KPath] {
	return func(yield func(*KPath) bool) {
		for x := p; x != nil; x = x.Next {
			if !yield(x) {
				return
			}
		}
	}
}

// Equal reports whether p and q have the same segments.
func (p *KPath) Equal(q *KPath) bool {
	for p != nil && q != nil {
		if !segmentsEqual(p, q) {
			return false
		}
		p, q = p.Next, q.Next
	}
	return p == nil && q == nil
}

func (kp *KPath) MarshalText() ([]byte, error) {
	return []byte(kp.String()), nil
}

func (kp *KPath) UnmarshalText(d []byte) error {
	p, err := Parse(string(d))
	if err != nil {
		return err
	}
	if p == nil {
		*kp = KPath{}
		return nil
	}
	*kp = *p
	return nil
}
