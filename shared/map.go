package shared

import (
	"iter"
	"maps"
	"slices"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Map is a shared map with string keys.
type Map struct {
	st lifecycle[map[string]any, engine.Map]
}

var _ Handle = (*Map)(nil)

// NewMap returns a preliminary map holding a copy of entries.
func NewMap(entries map[string]any) *Map {
	m := &Map{}
	m.st.buf = maps.Clone(entries)
	if m.st.buf == nil {
		m.st.buf = map[string]any{}
	}
	return m
}

// MapOf returns the integrated handle of ref.
func MapOf(ref engine.Map) *Map {
	m := &Map{}
	m.st.integrateTo(ref)
	return m
}

func (m *Map) Kind() engine.Kind { return engine.MapKind }

func (m *Map) Prelim() bool { return m.st.Prelim() }

// Ref returns the engine container of an integrated map, or nil.
func (m *Map) Ref() engine.Map { return m.st.ref }

func (m *Map) integrate(tx engine.Txn, ref engine.Ref) error {
	const op = "map.integrate"
	if !m.Prelim() {
		return alreadyIntegrated(op, m)
	}
	mr := ref.(engine.Map)
	buf := m.st.integrateTo(mr)
	c := newChecker(op)
	items := make(map[string]Item, len(buf))
	for k, v := range buf {
		item, err := c.check(v)
		if err != nil {
			return err
		}
		items[k] = item
	}
	for _, k := range slices.Sorted(maps.Keys(items)) {
		if err := set(op, tx, mr, k, items[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) prelimValues() []any {
	if !m.Prelim() {
		return nil
	}
	keys := slices.Sorted(maps.Keys(m.st.buf))
	res := make([]any, len(keys))
	for i, k := range keys {
		res[i] = m.st.buf[k]
	}
	return res
}

// set writes a classified item under key.
func set(op string, tx engine.Txn, mr engine.Map, key string, item Item) error {
	if item.Handle == nil {
		return engineErr(op, mr.Insert(tx, key, item.Plain))
	}
	ref, err := mr.InsertContainer(tx, key, item.Handle.Kind())
	if err != nil {
		return engineErr(op, err)
	}
	return attach(tx, item.Handle, ref)
}

func (m *Map) Len(tx engine.Txn) int {
	if m.Prelim() {
		return len(m.st.buf)
	}
	return m.st.ref.Len(tx)
}

// Set sets key to value.  If value cannot be integrated, the map is left
// unchanged.
func (m *Map) Set(tx engine.Txn, key string, value any) error {
	const op = "map.set"
	if m.Prelim() {
		if err := checkPrelim(op, m, value); err != nil {
			return err
		}
		m.st.buf[key] = value
		return nil
	}
	item, err := newChecker(op).check(value)
	if err != nil {
		return err
	}
	return set(op, tx, m.st.ref, key, item)
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(tx engine.Txn, key string) (bool, error) {
	if m.Prelim() {
		_, ok := m.st.buf[key]
		delete(m.st.buf, key)
		return ok, nil
	}
	_, ok, err := m.st.ref.Remove(tx, key)
	if err != nil {
		return false, engineErr("map.delete", err)
	}
	return ok, nil
}

// Get returns the value of key.
func (m *Map) Get(tx engine.Txn, key string) (any, bool) {
	if m.Prelim() {
		v, ok := m.st.buf[key]
		return v, ok
	}
	v, ok := m.st.ref.Get(tx, key)
	if !ok {
		return nil, false
	}
	return FromValue(v), true
}

// Keys returns the keys in sorted order.
func (m *Map) Keys(tx engine.Txn) []string {
	if m.Prelim() {
		return slices.Sorted(maps.Keys(m.st.buf))
	}
	entries := m.st.ref.Entries(tx)
	res := make([]string, len(entries))
	for i := range entries {
		res[i] = entries[i].Key
	}
	return res
}

// Items iterates over the entries present when Items is called, in key
// order.  The sequence of an integrated map must only be used while tx is
// active; using it afterwards panics with an *Error.
func (m *Map) Items(tx engine.Txn) iter.Seq2[string, any] {
	if m.Prelim() {
		buf := maps.Clone(m.st.buf)
		keys := slices.Sorted(maps.Keys(buf))
		return func(yield func(string, any) bool) {
			for _, k := range keys {
				if !yield(k, buf[k]) {
					return
				}
			}
		}
	}
	entries := m.st.ref.Entries(tx)
	return func(yield func(string, any) bool) {
		for _, e := range entries {
			checkLive("map.items", tx)
			if !yield(e.Key, FromValue(e.Value)) {
				return
			}
		}
	}
}

func (m *Map) ToJSON(tx engine.Txn) (*ir.Node, error) {
	return m.toJSON(tx)
}

func (m *Map) toJSON(tx engine.Txn) (*ir.Node, error) {
	if !m.Prelim() {
		return m.st.ref.ToJSON(tx), nil
	}
	res := make(map[string]*ir.Node, len(m.st.buf))
	for k, v := range m.st.buf {
		n, err := jsonOf(tx, v)
		if err != nil {
			return nil, typeMismatch("map.tojson", v, err)
		}
		res[k] = n
	}
	return ir.FromMap(res), nil
}

func (m *Map) Observe(fn func(*Event)) (engine.SubscriptionID, error) {
	return observe("map.observe", m, m.st.ref, fn)
}

func (m *Map) ObserveDeep(fn func([]*Event)) (engine.SubscriptionID, error) {
	return observeDeep("map.observe_deep", m, m.st.ref, fn)
}

func (m *Map) Unobserve(id engine.SubscriptionID) bool {
	return unobserve(m, m.st.ref, id)
}
