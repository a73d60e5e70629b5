package memdoc

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/ydoc/debug"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// OpKind names a primitive operation.
type OpKind string

const (
	OpInsertRange        OpKind = "insert_range"
	OpInsertContainer    OpKind = "insert_container"
	OpMapInsert          OpKind = "map_insert"
	OpMapInsertContainer OpKind = "map_insert_container"
	OpMapRemove          OpKind = "map_remove"
	OpTextInsert         OpKind = "text_insert"
	OpTextFormat         OpKind = "text_format"
	OpDelete             OpKind = "delete"
	OpSetAttribute       OpKind = "set_attribute"
	OpRemoveAttribute    OpKind = "remove_attribute"
)

// Op records a primitive operation issued in a transaction.
type Op struct {
	Kind   OpKind
	Target engine.ID
	Index  int
	Len    int
	Key    string
	Values []*ir.Node
	// Container is the kind of container inserted by OpInsertContainer and
	// OpMapInsertContainer.
	Container engine.Kind
}

func (op Op) String() string {
	switch op.Kind {
	case OpInsertRange:
		return fmt.Sprintf("%s %s@%d (%d values)", op.Kind, op.Target, op.Index, len(op.Values))
	case OpInsertContainer:
		return fmt.Sprintf("%s %s@%d %s", op.Kind, op.Target, op.Index, op.Container)
	case OpMapInsertContainer:
		return fmt.Sprintf("%s %s[%q] %s", op.Kind, op.Target, op.Key, op.Container)
	case OpMapInsert, OpMapRemove, OpSetAttribute, OpRemoveAttribute:
		return fmt.Sprintf("%s %s[%q]", op.Kind, op.Target, op.Key)
	}
	return fmt.Sprintf("%s %s@%d+%d", op.Kind, op.Target, op.Index, op.Len)
}

// Txn is a transaction of a Doc.
type Txn struct {
	doc     *Doc
	done    bool
	ops     []Op
	touched map[*branch]*snapshot
	order   []*branch
	created map[*branch]bool
}

// snapshot is the state of a branch when a transaction first touched it.
type snapshot struct {
	items   []*item
	entries map[string]*item
	attrs   map[string]string
	cells   []cell
}

// Done reports whether tx has been committed.
func (tx *Txn) Done() bool {
	return tx.done
}

// Ops returns the primitive operations issued so far.
func (tx *Txn) Ops() []Op {
	return slices.Clone(tx.ops)
}

// Commit finishes tx and dispatches change events to observers.  Observers
// run before Done reports true so they may read the document through the
// transaction they are given.  Commit is idempotent.
func (tx *Txn) Commit() {
	if tx.done || tx.doc.active != tx {
		return
	}
	d := tx.doc
	events := tx.events()
	for _, ev := range events {
		d.metrics.events.WithLabelValues(ev.target.kind.String()).Inc()
	}
	d.metrics.commits.Inc()
	d.log.Debug("commit", "ops", len(tx.ops), "events", len(events))
	if debug.Txn() {
		for _, op := range tx.ops {
			debug.Logf("txn %s: %s\n", d.guid, op)
		}
	}
	tx.dispatch(events)
	tx.done = true
	d.active = nil
}

// check validates that t is an active transaction of d.
func (d *Doc) check(t engine.Txn) (*Txn, error) {
	tx, ok := t.(*Txn)
	if !ok || tx == nil || tx.doc != d {
		return nil, engine.ErrForeignTxn
	}
	if tx.done {
		return nil, engine.ErrTxnDone
	}
	return tx, nil
}

// touch records b's state before its first change in tx.
func (tx *Txn) touch(b *branch) {
	if _, ok := tx.touched[b]; ok {
		return
	}
	snap := &snapshot{
		items: slices.Clone(b.items),
		attrs: maps.Clone(b.attrs),
		cells: slices.Clone(b.cells),
	}
	if b.entries != nil {
		snap.entries = maps.Clone(b.entries)
	}
	tx.touched[b] = snap
	tx.order = append(tx.order, b)
}

func (tx *Txn) record(op Op) {
	tx.ops = append(tx.ops, op)
	tx.doc.metrics.ops.WithLabelValues(string(op.Kind)).Inc()
}
