package memdoc

import (
	"fmt"
	"maps"
	"strings"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Text is a rich text container of a Doc.
type Text struct {
	*branch
}

var _ engine.Text = (*Text)(nil)

func (t *Text) Len(tx engine.Txn) int {
	return len(t.cells)
}

func (t *Text) Push(tx engine.Txn, s string) error {
	return t.Insert(tx, len(t.cells), s, nil)
}

// Insert inserts s at rune index with exactly the formatting attrs.
func (t *Text) Insert(et engine.Txn, index int, s string, attrs engine.Attrs) error {
	tx, err := t.begin(et)
	if err != nil {
		return err
	}
	if index < 0 || index > len(t.cells) {
		return fmt.Errorf("%w: index %d, length %d", engine.ErrIndexOutOfRange, index, len(t.cells))
	}
	attrs, key, err := normAttrs(attrs)
	if err != nil {
		return err
	}
	cells := make([]cell, 0, len(s))
	for _, r := range s {
		cells = append(cells, cell{r: r, attrs: attrs, key: key})
	}
	t.cells = append(t.cells[:index:index], append(cells, t.cells[index:]...)...)
	tx.record(Op{Kind: OpTextInsert, Target: t.id, Index: index, Len: len(cells), Values: []*ir.Node{ir.FromString(s)}})
	return nil
}

// Format sets attrs on the runes in [index, index+length).  A Null
// attribute value removes the attribute.
func (t *Text) Format(et engine.Txn, index, length int, attrs engine.Attrs) error {
	tx, err := t.begin(et)
	if err != nil {
		return err
	}
	if err := t.checkRange(index, length); err != nil {
		return err
	}
	for i := index; i < index+length; i++ {
		c := &t.cells[i]
		merged := maps.Clone(c.attrs)
		if merged == nil {
			merged = engine.Attrs{}
		}
		for k, v := range attrs {
			if v == nil || v.Type == ir.NullType {
				delete(merged, k)
				continue
			}
			merged[k] = v.Clone()
		}
		na, key, err := normAttrs(merged)
		if err != nil {
			return err
		}
		c.attrs, c.key = na, key
	}
	tx.record(Op{Kind: OpTextFormat, Target: t.id, Index: index, Len: length})
	return nil
}

func (t *Text) Delete(et engine.Txn, index, length int) error {
	tx, err := t.begin(et)
	if err != nil {
		return err
	}
	if err := t.checkRange(index, length); err != nil {
		return err
	}
	t.cells = append(t.cells[:index:index], t.cells[index+length:]...)
	tx.record(Op{Kind: OpDelete, Target: t.id, Index: index, Len: length})
	return nil
}

func (t *Text) checkRange(index, length int) error {
	if index < 0 || length < 0 || index+length > len(t.cells) {
		return fmt.Errorf("%w: range [%d, %d), length %d", engine.ErrIndexOutOfRange, index, index+length, len(t.cells))
	}
	return nil
}

func (t *Text) String(tx engine.Txn) string {
	return t.text()
}

func (t *Text) Delta(tx engine.Txn) []engine.Delta {
	return insertDeltas(t.cells)
}

func (t *Text) ToJSON(tx engine.Txn) *ir.Node {
	return ir.FromString(t.text())
}

func (b *branch) text() string {
	var sb strings.Builder
	for _, c := range b.cells {
		sb.WriteRune(c.r)
	}
	return sb.String()
}

// insertDeltas groups cells into Inserted deltas of equal formatting.
func insertDeltas(cells []cell) []engine.Delta {
	var res []engine.Delta
	var sb strings.Builder
	for i, c := range cells {
		sb.WriteRune(c.r)
		if i+1 < len(cells) && cells[i+1].key == c.key {
			continue
		}
		res = append(res, engine.Delta{
			Kind:   engine.DeltaInserted,
			Insert: engine.AnyValue(ir.FromString(sb.String())),
			Attrs:  cloneAttrs(c.attrs),
		})
		sb.Reset()
	}
	return res
}

// normAttrs copies attrs, dropping Null values, and returns the copy with a
// key identifying it.  Empty attributes normalize to nil and the empty key.
func normAttrs(attrs engine.Attrs) (engine.Attrs, string, error) {
	res := engine.Attrs{}
	for k, v := range attrs {
		if v == nil || v.Type == ir.NullType {
			continue
		}
		res[k] = v.Clone()
	}
	if len(res) == 0 {
		return nil, "", nil
	}
	d, err := ir.FromMap(res).MarshalJSON()
	if err != nil {
		return nil, "", fmt.Errorf("text attributes: %w", err)
	}
	return res, string(d), nil
}

func cloneAttrs(attrs engine.Attrs) engine.Attrs {
	if attrs == nil {
		return nil
	}
	res := make(engine.Attrs, len(attrs))
	for k, v := range attrs {
		res[k] = v.Clone()
	}
	return res
}
