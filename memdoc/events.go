package memdoc

import (
	"github.com/signadot/ydoc/debug"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/libdiff"
)

type event struct {
	target *branch
	ev     *engine.Event
}

// events computes the changes of each branch touched by tx.  Branches
// created in tx are reported through their parent's event, deleted
// branches not at all.
func (tx *Txn) events() []event {
	var res []event
	for _, b := range tx.order {
		if tx.created[b] || b.deleted {
			continue
		}
		snap := tx.touched[b]
		ev := &engine.Event{Target: b.ref()}
		switch b.kind {
		case engine.ArrayKind:
			ev.Changes = itemChanges(snap.items, b.items)
		case engine.MapKind:
			ev.Keys = entryChanges(snap.entries, b.entries)
		case engine.TextKind:
			ev.Delta = cellDeltas(snap.cells, b.cells)
		case engine.XmlElementKind:
			ev.Changes = itemChanges(snap.items, b.items)
			ev.Keys = attrChanges(snap.attrs, b.attrs)
		case engine.XmlTextKind:
			ev.Delta = cellDeltas(snap.cells, b.cells)
			ev.Keys = attrChanges(snap.attrs, b.attrs)
		}
		if len(ev.Changes) == 0 && len(ev.Delta) == 0 && len(ev.Keys) == 0 {
			continue
		}
		ev.Path = b.path()
		if debug.Events() {
			debug.Logf("event %s %s: %d changes %d deltas %d keys\n", b.kind, ev.Path, len(ev.Changes), len(ev.Delta), len(ev.Keys))
		}
		res = append(res, event{target: b, ev: ev})
	}
	return res
}

// dispatch calls the shallow observers of each event's target, then the
// deep observers of targets and their ancestors with all events at or
// below them.
func (tx *Txn) dispatch(events []event) {
	var deepOrder []*branch
	deep := map[*branch][]*engine.Event{}
	for _, e := range events {
		for _, o := range e.target.obs {
			o.fn(tx, e.ev)
		}
		for b := e.target; b != nil; b = b.parent {
			if len(b.deepObs) == 0 {
				continue
			}
			if _, ok := deep[b]; !ok {
				deepOrder = append(deepOrder, b)
			}
			deep[b] = append(deep[b], e.ev)
		}
	}
	for _, b := range deepOrder {
		for _, o := range b.deepObs {
			o.fn(tx, deep[b])
		}
	}
}

func itemChanges(from, to []*item) []engine.Change {
	var res []engine.Change
	j := 0
	for _, span := range libdiff.Sequence(from, to) {
		switch span.Op {
		case libdiff.Equal:
			res = append(res, engine.Change{Kind: engine.ChangeRetain, Len: span.Len})
			j += span.Len
		case libdiff.Delete:
			res = append(res, engine.Change{Kind: engine.ChangeRemoved, Len: span.Len})
		case libdiff.Insert:
			vals := make([]engine.Value, span.Len)
			for i := range vals {
				vals[i] = to[j+i].value()
			}
			res = append(res, engine.Change{Kind: engine.ChangeAdded, Values: vals, Len: span.Len})
			j += span.Len
		}
	}
	if n := len(res); n > 0 && res[n-1].Kind == engine.ChangeRetain {
		res = res[:n-1]
	}
	return res
}

func cellRunes(cells []cell) []rune {
	res := make([]rune, len(cells))
	for i, c := range cells {
		res[i] = c.r
	}
	return res
}

// cellDeltas diffs the runes of from and to.  Kept runes whose formatting
// changed are reported as retains carrying the changed attributes, with
// Null for removed ones.
func cellDeltas(from, to []cell) []engine.Delta {
	var res []engine.Delta
	lastKey := ""
	i, j := 0, 0
	for _, span := range libdiff.Sequence(cellRunes(from), cellRunes(to)) {
		switch span.Op {
		case libdiff.Equal:
			for k := 0; k < span.Len; k++ {
				attrs, key := attrsDiff(from[i+k].attrs, to[j+k].attrs)
				if n := len(res); n > 0 && res[n-1].Kind == engine.DeltaRetain && lastKey == key {
					res[n-1].Len++
					continue
				}
				res = append(res, engine.Delta{Kind: engine.DeltaRetain, Len: 1, Attrs: attrs})
				lastKey = key
			}
			i += span.Len
			j += span.Len
		case libdiff.Delete:
			res = append(res, engine.Delta{Kind: engine.DeltaDeleted, Len: span.Len})
			i += span.Len
		case libdiff.Insert:
			res = append(res, insertDeltas(to[j:j+span.Len])...)
			j += span.Len
		}
	}
	if n := len(res); n > 0 && res[n-1].Kind == engine.DeltaRetain && res[n-1].Attrs == nil {
		res = res[:n-1]
	}
	return res
}

// attrsDiff returns the attributes set or changed in to and, as Null, those
// removed from from, with a key identifying the result.  Equal attributes
// give nil and the empty key.
func attrsDiff(from, to engine.Attrs) (engine.Attrs, string) {
	var res engine.Attrs
	for k, v := range to {
		if old, ok := from[k]; ok && ir.Equal(old, v) {
			continue
		}
		if res == nil {
			res = engine.Attrs{}
		}
		res[k] = v.Clone()
	}
	for k := range from {
		if _, ok := to[k]; ok {
			continue
		}
		if res == nil {
			res = engine.Attrs{}
		}
		res[k] = ir.Null()
	}
	if res == nil {
		return nil, ""
	}
	// cell attributes were marshalled by normAttrs
	d, _ := ir.FromMap(res).MarshalJSON()
	return res, string(d)
}

func entryChanges(from, to map[string]*item) map[string]engine.EntryChange {
	diffs := libdiff.Entries(from, to)
	if len(diffs) == 0 {
		return nil
	}
	res := make(map[string]engine.EntryChange, len(diffs))
	for _, d := range diffs {
		var c engine.EntryChange
		switch d.Op {
		case libdiff.EntryAdded:
			c = engine.EntryChange{Kind: engine.EntryInserted, New: to[d.Key].value()}
		case libdiff.EntryUpdated:
			c = engine.EntryChange{Kind: engine.EntryUpdated, Old: from[d.Key].value(), New: to[d.Key].value()}
		case libdiff.EntryRemoved:
			c = engine.EntryChange{Kind: engine.EntryRemoved, Old: from[d.Key].value()}
		}
		res[d.Key] = c
	}
	return res
}

func attrChanges(from, to map[string]string) map[string]engine.EntryChange {
	diffs := libdiff.Entries(from, to)
	if len(diffs) == 0 {
		return nil
	}
	res := make(map[string]engine.EntryChange, len(diffs))
	for _, d := range diffs {
		var c engine.EntryChange
		switch d.Op {
		case libdiff.EntryAdded:
			c = engine.EntryChange{Kind: engine.EntryInserted, New: attrValue(to[d.Key])}
		case libdiff.EntryUpdated:
			c = engine.EntryChange{Kind: engine.EntryUpdated, Old: attrValue(from[d.Key]), New: attrValue(to[d.Key])}
		case libdiff.EntryRemoved:
			c = engine.EntryChange{Kind: engine.EntryRemoved, Old: attrValue(from[d.Key])}
		}
		res[d.Key] = c
	}
	return res
}

func attrValue(s string) engine.Value {
	return engine.AnyValue(ir.FromString(s))
}
