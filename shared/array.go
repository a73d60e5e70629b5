package shared

import (
	"iter"
	"slices"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Array is a shared sequence.
type Array struct {
	st lifecycle[[]any, engine.Array]
}

var _ Handle = (*Array)(nil)

// NewArray returns a preliminary array holding a copy of items.
func NewArray(items ...any) *Array {
	a := &Array{}
	a.st.buf = slices.Clone(items)
	return a
}

// ArrayOf returns the integrated handle of ref.
func ArrayOf(ref engine.Array) *Array {
	a := &Array{}
	a.st.integrateTo(ref)
	return a
}

func (a *Array) Kind() engine.Kind { return engine.ArrayKind }

func (a *Array) Prelim() bool { return a.st.Prelim() }

// Ref returns the engine container of an integrated array, or nil.
func (a *Array) Ref() engine.Array { return a.st.ref }

func (a *Array) integrate(tx engine.Txn, ref engine.Ref) error {
	if !a.Prelim() {
		return alreadyIntegrated("array.integrate", a)
	}
	arr := ref.(engine.Array)
	buf := a.st.integrateTo(arr)
	p, err := planInsert(newChecker("array.integrate"), buf)
	if err != nil {
		return err
	}
	return p.apply("array.integrate", tx, arr, 0)
}

func (a *Array) prelimValues() []any {
	if !a.Prelim() {
		return nil
	}
	return a.st.buf
}

func (a *Array) Len(tx engine.Txn) int {
	if a.Prelim() {
		return len(a.st.buf)
	}
	return a.st.ref.Len(tx)
}

// Insert inserts items at index.  The whole batch is validated before
// anything is written, so a value which cannot be integrated leaves the
// array unchanged.
func (a *Array) Insert(tx engine.Txn, index int, items ...any) error {
	const op = "array.insert"
	if a.Prelim() {
		if index < 0 || index > len(a.st.buf) {
			return outOfRange(op, index, 0, len(a.st.buf))
		}
		if err := checkPrelim(op, a, items...); err != nil {
			return err
		}
		a.st.buf = slices.Insert(a.st.buf, index, items...)
		return nil
	}
	return a.insert(op, tx, index, items)
}

func (a *Array) insert(op string, tx engine.Txn, index int, items []any) error {
	if n := a.st.ref.Len(tx); index < 0 || index > n {
		return outOfRange(op, index, 0, n)
	}
	p, err := planInsert(newChecker(op), items)
	if err != nil {
		return err
	}
	return p.apply(op, tx, a.st.ref, index)
}

// Push appends items.
func (a *Array) Push(tx engine.Txn, items ...any) error {
	if a.Prelim() {
		if err := checkPrelim("array.push", a, items...); err != nil {
			return err
		}
		a.st.buf = append(a.st.buf, items...)
		return nil
	}
	return a.insert("array.push", tx, a.st.ref.Len(tx), items)
}

// Delete removes the elements in [index, index+length).
func (a *Array) Delete(tx engine.Txn, index, length int) error {
	const op = "array.delete"
	if a.Prelim() {
		if index < 0 || length < 0 || index+length > len(a.st.buf) {
			return outOfRange(op, index, length, len(a.st.buf))
		}
		a.st.buf = slices.Delete(a.st.buf, index, index+length)
		return nil
	}
	if n := a.st.ref.Len(tx); index < 0 || length < 0 || index+length > n {
		return outOfRange(op, index, length, n)
	}
	return engineErr(op, a.st.ref.Delete(tx, index, length))
}

// Get returns the element at index.
func (a *Array) Get(tx engine.Txn, index int) (any, error) {
	const op = "array.get"
	if a.Prelim() {
		if index < 0 || index >= len(a.st.buf) {
			return nil, outOfRange(op, index, 1, len(a.st.buf))
		}
		return a.st.buf[index], nil
	}
	v, err := a.st.ref.Get(tx, index)
	if err != nil {
		return nil, engineErr(op, err)
	}
	return FromValue(v), nil
}

// Values iterates over the elements present when Values is called.  The
// sequence of an integrated array must only be used while tx is active;
// using it afterwards panics with an *Error.
func (a *Array) Values(tx engine.Txn) iter.Seq[any] {
	if a.Prelim() {
		return prelimSeq(slices.Clone(a.st.buf))
	}
	return valueSeq("array.values", tx, a.st.ref.Values(tx))
}

func (a *Array) ToJSON(tx engine.Txn) (*ir.Node, error) {
	return a.toJSON(tx)
}

func (a *Array) toJSON(tx engine.Txn) (*ir.Node, error) {
	if !a.Prelim() {
		return a.st.ref.ToJSON(tx), nil
	}
	vals := make([]*ir.Node, len(a.st.buf))
	for i, v := range a.st.buf {
		n, err := jsonOf(tx, v)
		if err != nil {
			return nil, typeMismatch("array.tojson", v, err)
		}
		vals[i] = n
	}
	return ir.FromSlice(vals), nil
}

func (a *Array) Observe(fn func(*Event)) (engine.SubscriptionID, error) {
	return observe("array.observe", a, a.st.ref, fn)
}

func (a *Array) ObserveDeep(fn func([]*Event)) (engine.SubscriptionID, error) {
	return observeDeep("array.observe_deep", a, a.st.ref, fn)
}

func (a *Array) Unobserve(id engine.SubscriptionID) bool {
	return unobserve(a, a.st.ref, id)
}
