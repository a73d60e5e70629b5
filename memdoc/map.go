package memdoc

import (
	"maps"
	"slices"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Map is an associative container of a Doc.
type Map struct {
	*branch
}

var _ engine.Map = (*Map)(nil)

func (m *Map) Len(tx engine.Txn) int {
	return len(m.entries)
}

func (m *Map) Insert(t engine.Txn, key string, value *ir.Node) error {
	tx, err := m.begin(t)
	if err != nil {
		return err
	}
	if value == nil {
		value = ir.Null()
	}
	m.replace(key, &item{any: value.Clone()})
	tx.record(Op{Kind: OpMapInsert, Target: m.id, Key: key, Values: []*ir.Node{value}})
	return nil
}

func (m *Map) InsertContainer(t engine.Txn, key string, kind engine.Kind) (engine.Ref, error) {
	tx, err := m.begin(t)
	if err != nil {
		return nil, err
	}
	child := m.doc.newBranch(kind, m.branch)
	tx.created[child] = true
	m.replace(key, &item{br: child})
	tx.record(Op{Kind: OpMapInsertContainer, Target: m.id, Key: key, Container: kind})
	return child.ref(), nil
}

func (m *Map) replace(key string, it *item) {
	if old, ok := m.entries[key]; ok && old.br != nil {
		old.br.markDeleted()
	}
	m.entries[key] = it
}

func (m *Map) Remove(t engine.Txn, key string) (engine.Value, bool, error) {
	tx, err := m.begin(t)
	if err != nil {
		return engine.Value{}, false, err
	}
	old, ok := m.entries[key]
	if !ok {
		return engine.Value{}, false, nil
	}
	res := old.value()
	if old.br != nil {
		old.br.markDeleted()
	}
	delete(m.entries, key)
	tx.record(Op{Kind: OpMapRemove, Target: m.id, Key: key})
	return res, true, nil
}

func (m *Map) Get(tx engine.Txn, key string) (engine.Value, bool) {
	it, ok := m.entries[key]
	if !ok {
		return engine.Value{}, false
	}
	return it.value(), true
}

func (m *Map) Entries(tx engine.Txn) []engine.Entry {
	keys := slices.Sorted(maps.Keys(m.entries))
	res := make([]engine.Entry, len(keys))
	for i, k := range keys {
		res[i] = engine.Entry{Key: k, Value: m.entries[k].value()}
	}
	return res
}

func (m *Map) ToJSON(tx engine.Txn) *ir.Node {
	return m.toJSON()
}
