package shared

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/ydoc/debug"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir/kpath"
)

// DeltaRecord converts a text delta to a host record:
//
//	{"insert": v, "attributes": {...}}
//	{"retain": n, "attributes": {...}}
//	{"delete": n}
//
// "attributes" is present only when the delta carries attributes.
func DeltaRecord(d engine.Delta) map[string]any {
	var res map[string]any
	switch d.Kind {
	case engine.DeltaInserted:
		res = map[string]any{"insert": FromValue(d.Insert)}
	case engine.DeltaRetain:
		res = map[string]any{"retain": d.Len}
	case engine.DeltaDeleted:
		return map[string]any{"delete": d.Len}
	default:
		panic(fmt.Sprintf("shared: malformed delta kind %d", d.Kind))
	}
	if len(d.Attrs) != 0 {
		attrs := make(map[string]any, len(d.Attrs))
		for k, v := range d.Attrs {
			attrs[k] = FromValue(engine.AnyValue(v))
		}
		res["attributes"] = attrs
	}
	return res
}

// ChangeRecord converts a sequence change to a host record:
//
//	{"insert": [v...]}
//	{"retain": n}
//	{"delete": n}
func ChangeRecord(c engine.Change) map[string]any {
	switch c.Kind {
	case engine.ChangeAdded:
		vals := make([]any, len(c.Values))
		for i := range c.Values {
			vals[i] = FromValue(c.Values[i])
		}
		return map[string]any{"insert": vals}
	case engine.ChangeRetain:
		return map[string]any{"retain": c.Len}
	case engine.ChangeRemoved:
		return map[string]any{"delete": c.Len}
	}
	panic(fmt.Sprintf("shared: malformed change kind %d", c.Kind))
}

// EntryRecord converts a map entry change to a host record with an
// "action" of "add", "update" or "delete", and "oldValue" and "newValue"
// where they apply.
func EntryRecord(c engine.EntryChange) map[string]any {
	switch c.Kind {
	case engine.EntryInserted:
		return map[string]any{"action": "add", "newValue": FromValue(c.New)}
	case engine.EntryUpdated:
		return map[string]any{"action": "update", "oldValue": FromValue(c.Old), "newValue": FromValue(c.New)}
	case engine.EntryRemoved:
		return map[string]any{"action": "delete", "oldValue": FromValue(c.Old)}
	}
	panic(fmt.Sprintf("shared: malformed entry change kind %d", c.Kind))
}

// PathRecord converts a path to a list of keys (strings) and indices
// (ints).
func PathRecord(p *kpath.KPath) []any {
	res := []any{}
	for seg := range p.Segments() {
		switch {
		case seg.Field != nil:
			res = append(res, *seg.Field)
		case seg.Index != nil:
			res = append(res, *seg.Index)
		default:
			panic("shared: malformed path segment")
		}
	}
	return res
}

// Event is a change event delivered to handle observers.
type Event struct {
	tx engine.Txn
	ev *engine.Event
}

// Txn returns the transaction which produced the event.  It is only valid
// during the observer call.
func (e *Event) Txn() engine.Txn { return e.tx }

// Raw returns the engine event.
func (e *Event) Raw() *engine.Event { return e.ev }

// Target returns the handle of the changed container.
func (e *Event) Target() Handle {
	return FromValue(engine.RefValue(e.ev.Target)).(Handle)
}

// Path returns the location of the target from the document root.
func (e *Event) Path() []any {
	return PathRecord(e.ev.Path)
}

// Delta returns the sequence changes of an array or xml element, or the
// delta of a text.
func (e *Event) Delta() []map[string]any {
	var res []map[string]any
	for _, c := range e.ev.Changes {
		res = append(res, ChangeRecord(c))
	}
	for _, d := range e.ev.Delta {
		res = append(res, DeltaRecord(d))
	}
	return res
}

// Keys returns the entry changes of a map, or the attribute changes of an
// xml element or text.
func (e *Event) Keys() map[string]map[string]any {
	if len(e.ev.Keys) == 0 {
		return nil
	}
	res := make(map[string]map[string]any, len(e.ev.Keys))
	for _, k := range slices.Sorted(maps.Keys(e.ev.Keys)) {
		res[k] = EntryRecord(e.ev.Keys[k])
	}
	return res
}

func observe(op string, h Handle, o engine.Observable, fn func(*Event)) (engine.SubscriptionID, error) {
	if h.Prelim() {
		return 0, notIntegrated(op, h.Kind())
	}
	return o.Observe(func(tx engine.Txn, ev *engine.Event) {
		if debug.Events() {
			debug.Logf("%s %s\n", op, ev.Path)
		}
		fn(&Event{tx: tx, ev: ev})
	}), nil
}

func observeDeep(op string, h Handle, o engine.Observable, fn func([]*Event)) (engine.SubscriptionID, error) {
	if h.Prelim() {
		return 0, notIntegrated(op, h.Kind())
	}
	return o.ObserveDeep(func(tx engine.Txn, evs []*engine.Event) {
		res := make([]*Event, len(evs))
		for i, ev := range evs {
			res[i] = &Event{tx: tx, ev: ev}
		}
		if debug.Events() {
			debug.Logf("%s: %d events\n", op, len(res))
		}
		fn(res)
	}), nil
}

func unobserve(h Handle, o engine.Observable, id engine.SubscriptionID) bool {
	if h.Prelim() {
		return false
	}
	return o.Unobserve(id)
}
