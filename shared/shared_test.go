package shared

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/ir/kpath"
	"github.com/signadot/ydoc/memdoc"
)

func transact(t *testing.T, doc *memdoc.Doc, fn func(tx *memdoc.Txn) error) *memdoc.Txn {
	t.Helper()
	var res *memdoc.Txn
	err := doc.Transact(func(tx *memdoc.Txn) error {
		res = tx
		return fn(tx)
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func rootArray(t *testing.T, doc *memdoc.Doc, name string) *Array {
	t.Helper()
	a, err := doc.Array(name)
	if err != nil {
		t.Fatal(err)
	}
	return ArrayOf(a)
}

func rootMap(t *testing.T, doc *memdoc.Doc, name string) *Map {
	t.Helper()
	m, err := doc.Map(name)
	if err != nil {
		t.Fatal(err)
	}
	return MapOf(m)
}

func docJSON(t *testing.T, doc *memdoc.Doc) string {
	t.Helper()
	d, err := doc.ToJSON().MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

// opsOn counts the operations of tx targeting ref.
func opsOn(tx *memdoc.Txn, ref engine.Ref) int {
	n := 0
	for _, op := range tx.Ops() {
		if op.Target == ref.ID() {
			n++
		}
	}
	return n
}

func TestClassify(t *testing.T) {
	doc := memdoc.New()
	integrated := rootArray(t, doc, "a")
	xml, err := doc.XmlElement("x")
	if err != nil {
		t.Fatal(err)
	}
	prelim := NewArray(1, 2)

	tests := []struct {
		name  string
		in    any
		plain string
		err   error
	}{
		{name: "string", in: "a", plain: `"a"`},
		{name: "nested", in: map[string]any{"k": []any{1, true}}, plain: `{"k":[1,true]}`},
		{name: "prelim", in: prelim},
		{name: "integrated", in: integrated, err: ErrAlreadyIntegrated},
		{name: "xml", in: XmlElementOf(xml), err: ErrTypeMismatch},
		{name: "chan", in: make(chan int), err: ErrTypeMismatch},
		{name: "handle in composite", in: []any{NewText("x")}, err: ErrTypeMismatch},
		{name: "nil array", in: (*Array)(nil), err: ErrTypeMismatch},
		{name: "nil map", in: (*Map)(nil), err: ErrTypeMismatch},
		{name: "nil xml text", in: (*XmlText)(nil), err: ErrTypeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := Classify(tc.in)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tc.plain == "" {
				if item.Handle != tc.in {
					t.Errorf("expected handle item, got %+v", item)
				}
				return
			}
			d, err := item.Plain.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.plain, string(d)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	if !prelim.Prelim() || prelim.Len(nil) != 2 {
		t.Errorf("classify modified a preliminary handle")
	}
}

func TestErrorMessage(t *testing.T) {
	_, err := classify("array.insert", make(chan int))
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Code != TypeMismatch || e.Op != "array.insert" || e.Kind != "chan int" {
		t.Errorf("unexpected error %+v", e)
	}
	want := "array.insert: cannot integrate this value (chan int): "
	if got := err.Error(); len(got) < len(want) || got[:len(want)] != want {
		t.Errorf("got %q", got)
	}
}

func TestInsertScenario(t *testing.T) {
	doc := memdoc.New()
	a := rootArray(t, doc, "a")
	values := []any{"a", 1, NewArray(true, false), "b"}
	p, err := PlanInsert(values)
	if err != nil {
		t.Fatal(err)
	}
	if p.Ops() != 3 || p.Len() != 4 {
		t.Errorf("plan: %d ops for %d values", p.Ops(), p.Len())
	}
	tx := transact(t, doc, func(tx *memdoc.Txn) error {
		return a.Insert(tx, 0, values...)
	})
	if got := opsOn(tx, a.Ref()); got != 3 {
		t.Errorf("expected 3 ops on the array, got %d", got)
	}
	if diff := cmp.Diff(`{"a":["a",1,[true,false],"b"]}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBatchOrdering(t *testing.T) {
	tests := []struct {
		name   string
		values func() []any
		ops    int
		want   string
	}{
		{
			name:   "all plain",
			values: func() []any { return []any{1, 2, 3, 4, 5} },
			ops:    1,
			want:   `[0,1,2,3,4,5,9]`,
		},
		{
			name: "all containers",
			values: func() []any {
				return []any{NewArray(1), NewMap(map[string]any{"k": 2}), NewText("t")}
			},
			ops:  3,
			want: `[0,[1],{"k":2},"t",9]`,
		},
		{
			name: "alternating",
			values: func() []any {
				return []any{1, NewArray(), 2, NewText("x"), 3}
			},
			ops:  5,
			want: `[0,1,[],2,"x",3,9]`,
		},
		{
			name: "runs",
			values: func() []any {
				return []any{NewArray(1), 2, 3, NewArray(4), NewArray(5), 6}
			},
			ops:  5,
			want: `[0,[1],2,3,[4],[5],6,9]`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := memdoc.New()
			a := rootArray(t, doc, "a")
			transact(t, doc, func(tx *memdoc.Txn) error {
				return a.Push(tx, 0, 9)
			})
			tx := transact(t, doc, func(tx *memdoc.Txn) error {
				return a.Insert(tx, 1, tc.values()...)
			})
			if got := opsOn(tx, a.Ref()); got != tc.ops {
				t.Errorf("expected %d ops, got %d", tc.ops, got)
			}
			if diff := cmp.Diff(`{"a":`+tc.want+`}`, docJSON(t, doc)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteRange(t *testing.T) {
	doc := memdoc.New()
	a := rootArray(t, doc, "a")
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := a.Push(tx, 10, 20, 30, 40); err != nil {
			return err
		}
		return a.Delete(tx, 1, 2)
	})
	if diff := cmp.Diff(`{"a":[10,40]}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	err := doc.Transact(func(tx *memdoc.Txn) error {
		return a.Delete(tx, 1, 5)
	})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) || e.Code != IndexOutOfRange {
		t.Errorf("expected IndexOutOfRange *Error, got %v", err)
	}
}

func TestLifecycle(t *testing.T) {
	doc := memdoc.New()
	a := rootArray(t, doc, "a")
	h := NewArray("x")
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := a.Push(tx, h); err != nil {
			return err
		}
		if h.Prelim() {
			t.Errorf("handle still preliminary after insert")
		}
		if err := a.Push(tx, h); !errors.Is(err, ErrAlreadyIntegrated) {
			t.Errorf("expected already integrated, got %v", err)
		}
		ref, err := a.Ref().InsertContainer(tx, 0, engine.ArrayKind)
		if err != nil {
			return err
		}
		if err := attach(tx, h, ref); !errors.Is(err, ErrAlreadyIntegrated) {
			t.Errorf("expected already integrated, got %v", err)
		}
		return nil
	})
	if h.Prelim() {
		t.Errorf("handle returned to preliminary")
	}
	if diff := cmp.Diff(`{"a":[[],["x"]]}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBatchValidatedBeforeWrite(t *testing.T) {
	tests := []struct {
		name   string
		values func() []any
		err    error
	}{
		{
			name:   "bad value last",
			values: func() []any { return []any{1, NewArray(2), make(chan int)} },
			err:    ErrTypeMismatch,
		},
		{
			name:   "bad value nested in prelim",
			values: func() []any { return []any{1, NewMap(map[string]any{"f": func() {}})} },
			err:    ErrTypeMismatch,
		},
		{
			name: "duplicate prelim",
			values: func() []any {
				h := NewText("t")
				return []any{h, 1, h}
			},
			err: ErrAlreadyIntegrated,
		},
		{
			name: "self nesting",
			values: func() []any {
				h := NewArray()
				h.st.buf = append(h.st.buf, h)
				return []any{h}
			},
			err: ErrAlreadyIntegrated,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := memdoc.New()
			a := rootArray(t, doc, "a")
			var ops int
			err := doc.Transact(func(tx *memdoc.Txn) error {
				defer func() { ops = len(tx.Ops()) }()
				return a.Insert(tx, 0, tc.values()...)
			})
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if ops != 0 {
				t.Errorf("%d ops written", ops)
			}
			if diff := cmp.Diff(`{"a":[]}`, docJSON(t, doc)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestNestedPrelim(t *testing.T) {
	doc := memdoc.New()
	m := rootMap(t, doc, "m")
	inner := NewArray(1, NewText("hi"))
	outer := NewMap(map[string]any{"list": inner, "n": nil})
	transact(t, doc, func(tx *memdoc.Txn) error {
		return m.Set(tx, "o", outer)
	})
	if outer.Prelim() || inner.Prelim() {
		t.Errorf("nested handles not integrated")
	}
	if diff := cmp.Diff(`{"m":{"o":{"list":[1,"hi"],"n":null}}}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	transact(t, doc, func(tx *memdoc.Txn) error {
		return inner.Push(tx, 2)
	})
	if diff := cmp.Diff(`{"m":{"o":{"list":[1,"hi",2],"n":null}}}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMapSetIntegratedFails(t *testing.T) {
	doc := memdoc.New()
	m := rootMap(t, doc, "m")
	a := rootArray(t, doc, "a")
	transact(t, doc, func(tx *memdoc.Txn) error {
		return m.Set(tx, "x", 1)
	})
	err := doc.Transact(func(tx *memdoc.Txn) error {
		return m.Set(tx, "y", a)
	})
	if !errors.Is(err, ErrAlreadyIntegrated) {
		t.Fatalf("expected already integrated, got %v", err)
	}
	if diff := cmp.Diff(`{"a":[],"m":{"x":1}}`, docJSON(t, doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMapOps(t *testing.T) {
	doc := memdoc.New()
	m := rootMap(t, doc, "m")
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := m.Set(tx, "b", []byte("xy")); err != nil {
			return err
		}
		if err := m.Set(tx, "a", NewText("t")); err != nil {
			return err
		}
		if err := m.Set(tx, "c", 3); err != nil {
			return err
		}
		ok, err := m.Delete(tx, "c")
		if !ok {
			t.Errorf("delete of c reported missing")
		}
		return err
	})
	transact(t, doc, func(tx *memdoc.Txn) error {
		if diff := cmp.Diff([]string{"a", "b"}, m.Keys(tx)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		v, ok := m.Get(tx, "b")
		if !ok {
			t.Fatal("b missing")
		}
		if diff := cmp.Diff([]byte("xy"), v); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		v, _ = m.Get(tx, "a")
		txt, ok := v.(*Text)
		if !ok || txt.String(tx) != "t" {
			t.Errorf("expected integrated text, got %#v", v)
		}
		keys := []string{}
		for k := range m.Items(tx) {
			keys = append(keys, k)
		}
		if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		return nil
	})
}

func TestPrelimOps(t *testing.T) {
	a := NewArray(1, 2, 3)
	if err := a.Insert(nil, 1, "x"); err != nil {
		t.Fatal(err)
	}
	if err := a.Delete(nil, 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := a.Insert(nil, 9, "y"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected out of range, got %v", err)
	}
	if err := a.Push(nil, make(chan int)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected type mismatch, got %v", err)
	}
	var got []any
	for v := range a.Values(nil) {
		got = append(got, v)
	}
	if diff := cmp.Diff([]any{"x", 2, 3}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	n, err := a.ToJSON(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(n, ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromInt(2), ir.FromInt(3)})) {
		t.Errorf("unexpected json")
	}

	txt := NewText("héllo")
	if err := txt.Insert(nil, 1, "_", nil); err != nil {
		t.Fatal(err)
	}
	if err := txt.Delete(nil, 2, 1); err != nil {
		t.Fatal(err)
	}
	if got := txt.String(nil); got != "h_llo" {
		t.Errorf("got %q", got)
	}
	if err := txt.Format(nil, 0, 1, map[string]any{"b": true}); !errors.Is(err, ErrPrelim) {
		t.Errorf("expected not integrated, got %v", err)
	}
	if _, err := txt.Observe(func(*Event) {}); !errors.Is(err, ErrPrelim) {
		t.Errorf("expected not integrated, got %v", err)
	}
}

func TestIteratorLifetime(t *testing.T) {
	doc := memdoc.New()
	a := rootArray(t, doc, "a")
	var seq func(func(any) bool)
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := a.Push(tx, 1, NewMap(nil), 3); err != nil {
			return err
		}
		seq = a.Values(tx)
		if err := a.Push(tx, 4); err != nil {
			return err
		}
		n := 0
		for v := range seq {
			if n == 1 {
				if _, ok := v.(*Map); !ok {
					t.Errorf("expected *Map, got %T", v)
				}
			}
			n++
		}
		if n != 3 {
			t.Errorf("expected snapshot of 3 values, got %d", n)
		}
		return nil
	})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrIteratorLifetime) {
			t.Errorf("expected iterator lifetime panic, got %v", r)
		}
	}()
	for range seq {
	}
}

func TestTextHandle(t *testing.T) {
	doc := memdoc.New()
	a := rootArray(t, doc, "a")
	h := NewText("hello")
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := a.Push(tx, h); err != nil {
			return err
		}
		if err := h.Insert(tx, 0, ">", map[string]any{"b": true}); err != nil {
			return err
		}
		return h.Format(tx, 1, 2, map[string]any{"i": 1})
	})
	transact(t, doc, func(tx *memdoc.Txn) error {
		want := []map[string]any{
			{"insert": ">", "attributes": map[string]any{"b": true}},
			{"insert": "he", "attributes": map[string]any{"i": int64(1)}},
			{"insert": "llo"},
		}
		if diff := cmp.Diff(want, h.Delta(tx)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
		if h.Len(tx) != 6 {
			t.Errorf("len %d", h.Len(tx))
		}
		return nil
	})
}

func TestObserve(t *testing.T) {
	doc := memdoc.New()
	m := rootMap(t, doc, "m")
	a := rootArray(t, doc, "a")
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := m.Set(tx, "x", 5); err != nil {
			return err
		}
		return a.Push(tx, NewMap(nil))
	})
	var keys map[string]map[string]any
	if _, err := m.Observe(func(ev *Event) {
		keys = ev.Keys()
		if ev.Txn().Done() {
			t.Errorf("event delivered after commit")
		}
	}); err != nil {
		t.Fatal(err)
	}
	type deep struct {
		Path  []any
		Delta []map[string]any
		Keys  map[string]map[string]any
	}
	var deeps []deep
	id, err := a.ObserveDeep(func(evs []*Event) {
		for _, ev := range evs {
			deeps = append(deeps, deep{ev.Path(), ev.Delta(), ev.Keys()})
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	transact(t, doc, func(tx *memdoc.Txn) error {
		if err := m.Set(tx, "x", 7); err != nil {
			return err
		}
		v, err := a.Get(tx, 0)
		if err != nil {
			return err
		}
		if err := v.(*Map).Set(tx, "k", "v"); err != nil {
			return err
		}
		return a.Push(tx, "z")
	})
	wantKeys := map[string]map[string]any{
		"x": {"action": "update", "oldValue": int64(5), "newValue": int64(7)},
	}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	wantDeep := []deep{
		{Path: []any{"a", 0}, Keys: map[string]map[string]any{"k": {"action": "add", "newValue": "v"}}},
		{Path: []any{"a"}, Delta: []map[string]any{{"retain": 1}, {"insert": []any{"z"}}}},
	}
	if diff := cmp.Diff(wantDeep, deeps); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !a.Unobserve(id) {
		t.Errorf("unobserve failed")
	}
}

func TestPrelimCycles(t *testing.T) {
	a := NewArray()
	if err := a.Push(nil, a); !errors.Is(err, ErrAlreadyIntegrated) {
		t.Errorf("push self: expected ErrAlreadyIntegrated, got %v", err)
	}
	if err := a.Insert(nil, 0, 1, a); !errors.Is(err, ErrAlreadyIntegrated) {
		t.Errorf("insert self: expected ErrAlreadyIntegrated, got %v", err)
	}
	b := NewArray(a)
	if err := a.Push(nil, b); !errors.Is(err, ErrAlreadyIntegrated) {
		t.Errorf("push container of self: expected ErrAlreadyIntegrated, got %v", err)
	}
	if err := a.Push(nil, (*Text)(nil)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("push nil handle: expected ErrTypeMismatch, got %v", err)
	}
	if a.Len(nil) != 0 {
		t.Errorf("rejected values were stored: len %d", a.Len(nil))
	}

	m := NewMap(nil)
	if err := m.Set(nil, "self", m); !errors.Is(err, ErrAlreadyIntegrated) {
		t.Errorf("set self: expected ErrAlreadyIntegrated, got %v", err)
	}
	inner := NewMap(map[string]any{"m": m})
	if err := m.Set(nil, "inner", NewArray(inner)); !errors.Is(err, ErrAlreadyIntegrated) {
		t.Errorf("set container of self: expected ErrAlreadyIntegrated, got %v", err)
	}
	if m.Len(nil) != 0 {
		t.Errorf("rejected values were stored: len %d", m.Len(nil))
	}

	if err := a.Push(nil, NewArray(1), NewText("t")); err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		h    interface{ ToJSON(engine.Txn) (*ir.Node, error) }
		want string
	}{
		{a, `[[1],"t"]`},
		{b, `[[[1],"t"]]`},
		{inner, `{"m":{}}`},
	} {
		n, err := tc.h.ToJSON(nil)
		if err != nil {
			t.Fatal(err)
		}
		d, err := n.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tc.want, string(d)); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	}
}

func TestRecords(t *testing.T) {
	link := ir.FromMap(map[string]*ir.Node{
		"href": ir.FromString("x"),
		"n":    ir.FromSlice([]*ir.Node{ir.FromInt(1)}),
	})
	tests := []struct {
		name string
		got  any
		want any
	}{
		{
			name: "insert with nested attributes",
			got: DeltaRecord(engine.Delta{
				Kind:   engine.DeltaInserted,
				Insert: engine.AnyValue(ir.FromString("hi")),
				Attrs:  engine.Attrs{"link": link},
			}),
			want: map[string]any{
				"insert":     "hi",
				"attributes": map[string]any{"link": map[string]any{"href": "x", "n": []any{int64(1)}}},
			},
		},
		{
			name: "insert embed",
			got: DeltaRecord(engine.Delta{
				Kind:   engine.DeltaInserted,
				Insert: engine.AnyValue(ir.FromMap(map[string]*ir.Node{"img": ir.FromString("a.png")})),
			}),
			want: map[string]any{"insert": map[string]any{"img": "a.png"}},
		},
		{
			name: "retain with attributes",
			got: DeltaRecord(engine.Delta{
				Kind:  engine.DeltaRetain,
				Len:   2,
				Attrs: engine.Attrs{"bold": ir.Null(), "i": ir.FromBool(true)},
			}),
			want: map[string]any{"retain": 2, "attributes": map[string]any{"bold": nil, "i": true}},
		},
		{
			name: "retain",
			got:  DeltaRecord(engine.Delta{Kind: engine.DeltaRetain, Len: 3}),
			want: map[string]any{"retain": 3},
		},
		{
			name: "delete ignores attributes",
			got:  DeltaRecord(engine.Delta{Kind: engine.DeltaDeleted, Len: 1, Attrs: engine.Attrs{"b": ir.FromBool(true)}}),
			want: map[string]any{"delete": 1},
		},
		{
			name: "change added",
			got: ChangeRecord(engine.Change{
				Kind:   engine.ChangeAdded,
				Values: []engine.Value{engine.AnyValue(ir.FromInt(1)), engine.AnyValue(ir.FromString("x"))},
				Len:    2,
			}),
			want: map[string]any{"insert": []any{int64(1), "x"}},
		},
		{
			name: "change retain",
			got:  ChangeRecord(engine.Change{Kind: engine.ChangeRetain, Len: 2}),
			want: map[string]any{"retain": 2},
		},
		{
			name: "change removed",
			got:  ChangeRecord(engine.Change{Kind: engine.ChangeRemoved, Len: 4}),
			want: map[string]any{"delete": 4},
		},
		{
			name: "entry added",
			got:  EntryRecord(engine.EntryChange{Kind: engine.EntryInserted, New: engine.AnyValue(ir.FromInt(1))}),
			want: map[string]any{"action": "add", "newValue": int64(1)},
		},
		{
			name: "entry updated",
			got: EntryRecord(engine.EntryChange{
				Kind: engine.EntryUpdated,
				Old:  engine.AnyValue(ir.FromString("a")),
				New:  engine.AnyValue(ir.FromFloat(1.5)),
			}),
			want: map[string]any{"action": "update", "oldValue": "a", "newValue": 1.5},
		},
		{
			name: "entry removed",
			got:  EntryRecord(engine.EntryChange{Kind: engine.EntryRemoved, Old: engine.AnyValue(ir.FromInt(5))}),
			want: map[string]any{"action": "delete", "oldValue": int64(5)},
		},
		{
			name: "path",
			got:  PathRecord(kpath.Field("a").Append(kpath.Index(0)).Append(kpath.Field("b"))),
			want: []any{"a", 0, "b"},
		},
		{
			name: "empty path",
			got:  PathRecord(nil),
			want: []any{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"delta", func() { DeltaRecord(engine.Delta{Kind: engine.DeltaKind(9)}) }},
		{"change", func() { ChangeRecord(engine.Change{Kind: engine.ChangeKind(9)}) }},
		{"entry", func() { EntryRecord(engine.EntryChange{Kind: engine.EntryChangeKind(9)}) }},
		{"path", func() { PathRecord(&kpath.KPath{}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected a panic")
				}
			}()
			tc.fn()
		})
	}
}
