package shared

import (
	"unicode/utf8"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/hostval"
	"github.com/signadot/ydoc/ir"
)

// Text is shared rich text.  Indices and lengths count runes.
type Text struct {
	st lifecycle[string, engine.Text]
}

var _ Handle = (*Text)(nil)

// NewText returns a preliminary text holding s.
func NewText(s string) *Text {
	t := &Text{}
	t.st.buf = s
	return t
}

// TextOf returns the integrated handle of ref.
func TextOf(ref engine.Text) *Text {
	t := &Text{}
	t.st.integrateTo(ref)
	return t
}

func (t *Text) Kind() engine.Kind { return engine.TextKind }

func (t *Text) Prelim() bool { return t.st.Prelim() }

// Ref returns the engine container of an integrated text, or nil.
func (t *Text) Ref() engine.Text { return t.st.ref }

func (t *Text) integrate(tx engine.Txn, ref engine.Ref) error {
	if !t.Prelim() {
		return alreadyIntegrated("text.integrate", t)
	}
	tr := ref.(engine.Text)
	buf := t.st.integrateTo(tr)
	if buf == "" {
		return nil
	}
	return engineErr("text.integrate", tr.Push(tx, buf))
}

func (t *Text) prelimValues() []any { return nil }

func (t *Text) Len(tx engine.Txn) int {
	if t.Prelim() {
		return utf8.RuneCountInString(t.st.buf)
	}
	return t.st.ref.Len(tx)
}

func (t *Text) String(tx engine.Txn) string {
	if t.Prelim() {
		return t.st.buf
	}
	return t.st.ref.String(tx)
}

// Push appends s.
func (t *Text) Push(tx engine.Txn, s string) error {
	if t.Prelim() {
		t.st.buf += s
		return nil
	}
	return engineErr("text.push", t.st.ref.Push(tx, s))
}

// Insert inserts s at index with the formatting attributes attrs.
// Preliminary text carries no formatting, so attrs must then be empty.
func (t *Text) Insert(tx engine.Txn, index int, s string, attrs map[string]any) error {
	const op = "text.insert"
	if t.Prelim() {
		if len(attrs) != 0 {
			return notIntegrated(op, t.Kind())
		}
		rs := []rune(t.st.buf)
		if index < 0 || index > len(rs) {
			return outOfRange(op, index, 0, len(rs))
		}
		t.st.buf = string(rs[:index]) + s + string(rs[index:])
		return nil
	}
	eattrs, err := encodeAttrs(op, attrs)
	if err != nil {
		return err
	}
	if n := t.st.ref.Len(tx); index < 0 || index > n {
		return outOfRange(op, index, 0, n)
	}
	return engineErr(op, t.st.ref.Insert(tx, index, s, eattrs))
}

// Format sets attrs on [index, index+length).  A nil attribute value
// removes the attribute.
func (t *Text) Format(tx engine.Txn, index, length int, attrs map[string]any) error {
	const op = "text.format"
	if t.Prelim() {
		return notIntegrated(op, t.Kind())
	}
	eattrs, err := encodeAttrs(op, attrs)
	if err != nil {
		return err
	}
	if n := t.st.ref.Len(tx); index < 0 || length < 0 || index+length > n {
		return outOfRange(op, index, length, n)
	}
	return engineErr(op, t.st.ref.Format(tx, index, length, eattrs))
}

// Delete removes the runes in [index, index+length).
func (t *Text) Delete(tx engine.Txn, index, length int) error {
	const op = "text.delete"
	if t.Prelim() {
		rs := []rune(t.st.buf)
		if index < 0 || length < 0 || index+length > len(rs) {
			return outOfRange(op, index, length, len(rs))
		}
		t.st.buf = string(rs[:index]) + string(rs[index+length:])
		return nil
	}
	if n := t.st.ref.Len(tx); index < 0 || length < 0 || index+length > n {
		return outOfRange(op, index, length, n)
	}
	return engineErr(op, t.st.ref.Delete(tx, index, length))
}

// Delta returns the formatted contents as insert records.
func (t *Text) Delta(tx engine.Txn) []map[string]any {
	if t.Prelim() {
		if t.st.buf == "" {
			return nil
		}
		return []map[string]any{{"insert": t.st.buf}}
	}
	ds := t.st.ref.Delta(tx)
	res := make([]map[string]any, len(ds))
	for i := range ds {
		res[i] = DeltaRecord(ds[i])
	}
	return res
}

func (t *Text) ToJSON(tx engine.Txn) (*ir.Node, error) {
	return t.toJSON(tx)
}

func (t *Text) toJSON(tx engine.Txn) (*ir.Node, error) {
	return ir.FromString(t.String(tx)), nil
}

func (t *Text) Observe(fn func(*Event)) (engine.SubscriptionID, error) {
	return observe("text.observe", t, t.st.ref, fn)
}

func (t *Text) ObserveDeep(fn func([]*Event)) (engine.SubscriptionID, error) {
	return observeDeep("text.observe_deep", t, t.st.ref, fn)
}

func (t *Text) Unobserve(id engine.SubscriptionID) bool {
	return unobserve(t, t.st.ref, id)
}

func encodeAttrs(op string, attrs map[string]any) (engine.Attrs, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	res := make(engine.Attrs, len(attrs))
	for k, v := range attrs {
		n, err := hostval.EncodeErr(v)
		if err != nil {
			return nil, typeMismatch(op, v, err)
		}
		res[k] = n
	}
	return res, nil
}
