package memdoc

import (
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Array is a sequence container of a Doc.
type Array struct {
	*branch
}

var _ engine.Array = (*Array)(nil)

func (a *Array) Len(tx engine.Txn) int {
	return len(a.items)
}

func (a *Array) InsertRange(t engine.Txn, index int, values []*ir.Node) error {
	tx, err := a.begin(t)
	if err != nil {
		return err
	}
	its := make([]*item, len(values))
	for i, v := range values {
		if v == nil {
			v = ir.Null()
		}
		its[i] = &item{any: v.Clone()}
	}
	if err := a.insertItems(index, its); err != nil {
		return err
	}
	tx.record(Op{Kind: OpInsertRange, Target: a.id, Index: index, Len: len(values), Values: values})
	return nil
}

func (a *Array) InsertContainer(t engine.Txn, index int, kind engine.Kind) (engine.Ref, error) {
	tx, err := a.begin(t)
	if err != nil {
		return nil, err
	}
	child, err := a.insertChild(tx, index, kind)
	if err != nil {
		return nil, err
	}
	tx.record(Op{Kind: OpInsertContainer, Target: a.id, Index: index, Len: 1, Container: kind})
	return child.ref(), nil
}

func (a *Array) Delete(t engine.Txn, index, length int) error {
	tx, err := a.begin(t)
	if err != nil {
		return err
	}
	return a.deleteItems(tx, index, length)
}

func (a *Array) Get(tx engine.Txn, index int) (engine.Value, error) {
	return a.get(index)
}

func (a *Array) Values(tx engine.Txn) []engine.Value {
	return a.values()
}

func (a *Array) ToJSON(tx engine.Txn) *ir.Node {
	return a.toJSON()
}
