package memdoc

import (
	"fmt"
	"slices"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/ir/kpath"
)

// branch is a container in the document tree.  Which fields are used
// depends on kind.
type branch struct {
	doc    *Doc
	id     engine.ID
	kind   engine.Kind
	parent *branch
	// name is set on roots.
	name string
	tag  string

	items   []*item          // array, xml element children
	entries map[string]*item // map
	attrs   map[string]string
	cells   []cell // text, xml text

	deleted bool
	obs     []observer
	deepObs []deepObserver
	wrapper engine.Ref
}

// item is an element of an array or a map entry value.  Exactly one of any
// and br is set.  Items are never mutated so that their identity marks a
// write.
type item struct {
	any *ir.Node
	br  *branch
}

// cell is one rune of text.  attrs is never mutated in place.
type cell struct {
	r     rune
	attrs engine.Attrs
	key   string
}

type observer struct {
	id engine.SubscriptionID
	fn func(engine.Txn, *engine.Event)
}

type deepObserver struct {
	id engine.SubscriptionID
	fn func(engine.Txn, []*engine.Event)
}

func (d *Doc) newBranch(kind engine.Kind, parent *branch) *branch {
	b := &branch{
		doc:    d,
		id:     d.nextID(),
		kind:   kind,
		parent: parent,
	}
	switch kind {
	case engine.MapKind:
		b.entries = map[string]*item{}
	case engine.XmlElementKind, engine.XmlTextKind:
		b.attrs = map[string]string{}
	}
	return b
}

func (b *branch) ref() engine.Ref {
	if b.wrapper != nil {
		return b.wrapper
	}
	switch b.kind {
	case engine.ArrayKind:
		b.wrapper = &Array{b}
	case engine.MapKind:
		b.wrapper = &Map{b}
	case engine.TextKind:
		b.wrapper = &Text{b}
	case engine.XmlElementKind:
		b.wrapper = &XmlElement{b}
	case engine.XmlTextKind:
		b.wrapper = &XmlText{Text{b}}
	default:
		panic(fmt.Sprintf("memdoc: unknown kind %s", b.kind))
	}
	return b.wrapper
}

func (b *branch) Kind() engine.Kind { return b.kind }

func (b *branch) ID() engine.ID { return b.id }

func (b *branch) Observe(fn func(engine.Txn, *engine.Event)) engine.SubscriptionID {
	b.doc.subs++
	b.obs = append(b.obs, observer{id: b.doc.subs, fn: fn})
	return b.doc.subs
}

func (b *branch) ObserveDeep(fn func(engine.Txn, []*engine.Event)) engine.SubscriptionID {
	b.doc.subs++
	b.deepObs = append(b.deepObs, deepObserver{id: b.doc.subs, fn: fn})
	return b.doc.subs
}

func (b *branch) Unobserve(id engine.SubscriptionID) bool {
	if i := slices.IndexFunc(b.obs, func(o observer) bool { return o.id == id }); i != -1 {
		b.obs = slices.Delete(b.obs, i, i+1)
		return true
	}
	if i := slices.IndexFunc(b.deepObs, func(o deepObserver) bool { return o.id == id }); i != -1 {
		b.deepObs = slices.Delete(b.deepObs, i, i+1)
		return true
	}
	return false
}

// path returns the path of b from the document root, or nil if b is no
// longer in the tree.
func (b *branch) path() *kpath.KPath {
	var segs []*kpath.KPath
	for x := b; x != nil; x = x.parent {
		if x.deleted {
			return nil
		}
		p := x.parent
		if p == nil {
			segs = append(segs, kpath.Field(x.name))
			break
		}
		switch p.kind {
		case engine.MapKind:
			key, ok := p.keyOf(x)
			if !ok {
				return nil
			}
			segs = append(segs, kpath.Field(key))
		default:
			i := slices.IndexFunc(p.items, func(it *item) bool { return it.br == x })
			if i == -1 {
				return nil
			}
			segs = append(segs, kpath.Index(i))
		}
	}
	var res *kpath.KPath
	for _, s := range segs {
		s.Next = res
		res = s
	}
	return res
}

func (b *branch) keyOf(child *branch) (string, bool) {
	for k, it := range b.entries {
		if it.br == child {
			return k, true
		}
	}
	return "", false
}

// markDeleted marks b and every container below it as deleted.
func (b *branch) markDeleted() {
	b.deleted = true
	for _, it := range b.items {
		if it.br != nil {
			it.br.markDeleted()
		}
	}
	for _, it := range b.entries {
		if it.br != nil {
			it.br.markDeleted()
		}
	}
}

func (it *item) value() engine.Value {
	if it.br != nil {
		return engine.RefValue(it.br.ref())
	}
	return engine.AnyValue(it.any.Clone())
}

func (it *item) toJSON() *ir.Node {
	if it.br != nil {
		return it.br.toJSON()
	}
	return it.any.Clone()
}

func (b *branch) toJSON() *ir.Node {
	switch b.kind {
	case engine.ArrayKind:
		vals := make([]*ir.Node, len(b.items))
		for i, it := range b.items {
			vals[i] = it.toJSON()
		}
		return ir.FromSlice(vals)
	case engine.MapKind:
		m := make(map[string]*ir.Node, len(b.entries))
		for k, it := range b.entries {
			m[k] = it.toJSON()
		}
		return ir.FromMap(m)
	case engine.TextKind, engine.XmlTextKind:
		return ir.FromString(b.text())
	case engine.XmlElementKind:
		return ir.FromString(b.xmlString())
	}
	return ir.Null()
}

func (b *branch) values() []engine.Value {
	res := make([]engine.Value, len(b.items))
	for i, it := range b.items {
		res[i] = it.value()
	}
	return res
}

func (b *branch) get(index int) (engine.Value, error) {
	if index < 0 || index >= len(b.items) {
		return engine.Value{}, fmt.Errorf("%w: index %d, length %d", engine.ErrIndexOutOfRange, index, len(b.items))
	}
	return b.items[index].value(), nil
}

// begin validates t for a write to b and records b's state.
func (b *branch) begin(t engine.Txn) (*Txn, error) {
	tx, err := b.doc.check(t)
	if err != nil {
		return nil, err
	}
	if b.deleted {
		return nil, fmt.Errorf("%w: %s %s", engine.ErrDeleted, b.kind, b.id)
	}
	tx.touch(b)
	return tx, nil
}

func (b *branch) insertItems(index int, its []*item) error {
	if index < 0 || index > len(b.items) {
		return fmt.Errorf("%w: index %d, length %d", engine.ErrIndexOutOfRange, index, len(b.items))
	}
	b.items = slices.Insert(b.items, index, its...)
	return nil
}

// insertChild creates a container of kind at index of b's items.
func (b *branch) insertChild(tx *Txn, index int, kind engine.Kind) (*branch, error) {
	if index < 0 || index > len(b.items) {
		return nil, fmt.Errorf("%w: index %d, length %d", engine.ErrIndexOutOfRange, index, len(b.items))
	}
	child := b.doc.newBranch(kind, b)
	tx.created[child] = true
	b.items = slices.Insert(b.items, index, &item{br: child})
	return child, nil
}

func (b *branch) deleteItems(tx *Txn, index, length int) error {
	if index < 0 || length < 0 || index+length > len(b.items) {
		return fmt.Errorf("%w: range [%d, %d), length %d", engine.ErrIndexOutOfRange, index, index+length, len(b.items))
	}
	for _, it := range b.items[index : index+length] {
		if it.br != nil {
			it.br.markDeleted()
		}
	}
	b.items = slices.Delete(b.items, index, index+length)
	tx.record(Op{Kind: OpDelete, Target: b.id, Index: index, Len: length})
	return nil
}
