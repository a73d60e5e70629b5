package script

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/hostval"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/ir/kpath"
	"github.com/signadot/ydoc/libdiff"
	"github.com/signadot/ydoc/memdoc"
	"github.com/signadot/ydoc/shared"
)

// Record is a change reported while running a script.  Container values in
// Delta and Keys are rendered as their JSON contents.
type Record struct {
	Step   int                       `json:"step" expr:"step"`
	Op     string                    `json:"op" expr:"op"`
	Path   []any                     `json:"path" expr:"path"`
	Target string                    `json:"target" expr:"target"`
	Kind   string                    `json:"kind" expr:"kind"`
	Delta  []map[string]any          `json:"delta,omitempty" expr:"delta"`
	Keys   map[string]map[string]any `json:"keys,omitempty" expr:"keys"`
	// Actions lists the entry actions of Keys.
	Actions []string `json:"-" expr:"actions"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Step    int
	Op      string
	Ops     int
	Records []*Record
	// Patch is the JSON merge patch from the document before the step to
	// the document after it, when requested.
	Patch json.RawMessage
}

// Runner runs scripts against a document.
type Runner struct {
	doc     *memdoc.Doc
	log     *slog.Logger
	filter  *Filter
	patches bool

	step    int
	op      string
	pending []*Record
	err     error
}

// Option configures a Runner.
type Option func(*Runner)

// WithFilter keeps only the records matching f.
func WithFilter(f *Filter) Option {
	return func(r *Runner) { r.filter = f }
}

// WithPatches computes a merge patch for every step.
func WithPatches() Option {
	return func(r *Runner) { r.patches = true }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// NewRunner returns a runner for doc.
func NewRunner(doc *memdoc.Doc, opts ...Option) *Runner {
	r := &Runner{doc: doc, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type deepObservable interface {
	ObserveDeep(func([]*shared.Event)) (engine.SubscriptionID, error)
	Unobserve(engine.SubscriptionID) bool
}

// Run creates the roots of s, runs its steps and returns their results.
// Running stops at the first failing step; the results of the steps run
// so far are returned with the error.
func (r *Runner) Run(s *Script) ([]*StepResult, error) {
	for _, name := range s.RootNames() {
		root, err := r.root(name, s.Roots[name])
		if err != nil {
			return nil, err
		}
		id, err := root.ObserveDeep(r.collect)
		if err != nil {
			return nil, err
		}
		defer root.Unobserve(id)
	}
	var res []*StepResult
	for i, st := range s.Steps {
		sr, err := r.runStep(i, st)
		if sr != nil {
			res = append(res, sr)
		}
		if err != nil {
			return res, fmt.Errorf("step %d (%s %s): %w", i, st.Op, st.Target, err)
		}
	}
	return res, nil
}

func (r *Runner) root(name, kind string) (deepObservable, error) {
	k, err := engine.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case engine.ArrayKind:
		a, err := r.doc.Array(name)
		if err != nil {
			return nil, err
		}
		return shared.ArrayOf(a), nil
	case engine.MapKind:
		m, err := r.doc.Map(name)
		if err != nil {
			return nil, err
		}
		return shared.MapOf(m), nil
	case engine.TextKind:
		t, err := r.doc.Text(name)
		if err != nil {
			return nil, err
		}
		return shared.TextOf(t), nil
	case engine.XmlElementKind:
		e, err := r.doc.XmlElement(name)
		if err != nil {
			return nil, err
		}
		return shared.XmlElementOf(e), nil
	default:
		t, err := r.doc.XmlText(name)
		if err != nil {
			return nil, err
		}
		return shared.XmlTextOf(t), nil
	}
}

func (r *Runner) runStep(i int, st *Step) (*StepResult, error) {
	r.step, r.op, r.pending, r.err = i, st.Op, nil, nil
	var before *ir.Node
	if r.patches {
		before = r.doc.ToJSON()
	}
	var ops int
	err := r.doc.Transact(func(tx *memdoc.Txn) error {
		defer func() { ops = len(tx.Ops()) }()
		target, err := r.resolve(tx, st.Target)
		if err != nil {
			return err
		}
		return apply(tx, target, st)
	})
	r.log.Debug("step", "index", i, "op", st.Op, "target", st.Target, "ops", ops, "records", len(r.pending))
	if err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	sr := &StepResult{Step: i, Op: st.Op, Ops: ops, Records: r.pending}
	if r.patches {
		p, err := libdiff.MergePatch(before, r.doc.ToJSON())
		if err != nil {
			return nil, err
		}
		sr.Patch = p
	}
	return sr, nil
}

// collect is the deep observer of the roots.
func (r *Runner) collect(evs []*shared.Event) {
	for _, ev := range evs {
		tx := ev.Txn()
		rec := &Record{
			Step:   r.step,
			Op:     r.op,
			Path:   ev.Path(),
			Target: ev.Raw().Path.String(),
			Kind:   ev.Target().Kind().String(),
		}
		if err := fillRecord(tx, rec, ev); err != nil {
			r.fail(err)
			continue
		}
		ok, err := r.filter.Match(rec)
		if err != nil {
			r.fail(err)
			continue
		}
		if ok {
			r.pending = append(r.pending, rec)
		}
	}
}

// fail keeps the first error met while collecting the records of a step.
func (r *Runner) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// fillRecord sets the delta, keys and actions of rec from ev.
func fillRecord(tx engine.Txn, rec *Record, ev *shared.Event) error {
	for _, d := range ev.Delta() {
		pd, err := plainMap(tx, d)
		if err != nil {
			return err
		}
		rec.Delta = append(rec.Delta, pd)
	}
	keys := ev.Keys()
	if keys == nil {
		return nil
	}
	rec.Keys = make(map[string]map[string]any, len(keys))
	for k, e := range keys {
		pe, err := plainMap(tx, e)
		if err != nil {
			return err
		}
		rec.Keys[k] = pe
		if a, ok := e["action"].(string); ok && !slices.Contains(rec.Actions, a) {
			rec.Actions = append(rec.Actions, a)
		}
	}
	slices.Sort(rec.Actions)
	return nil
}

type jsoner interface {
	ToJSON(engine.Txn) (*ir.Node, error)
}

// plain replaces the handles in v by their decoded JSON contents.
func plain(tx engine.Txn, v any) (any, error) {
	switch x := v.(type) {
	case jsoner:
		n, err := x.ToJSON(tx)
		if err != nil {
			return nil, fmt.Errorf("record value: %w", err)
		}
		return hostval.Decode(n), nil
	case []any:
		res := make([]any, len(x))
		for i := range x {
			pv, err := plain(tx, x[i])
			if err != nil {
				return nil, err
			}
			res[i] = pv
		}
		return res, nil
	case map[string]any:
		return plainMap(tx, x)
	}
	return v, nil
}

func plainMap(tx engine.Txn, m map[string]any) (map[string]any, error) {
	res := make(map[string]any, len(m))
	for k, v := range m {
		pv, err := plain(tx, v)
		if err != nil {
			return nil, err
		}
		res[k] = pv
	}
	return res, nil
}

// resolve finds the container at target.
func (r *Runner) resolve(tx engine.Txn, target string) (any, error) {
	p, err := kpath.Parse(target)
	if err != nil {
		return nil, err
	}
	ref, ok := r.doc.Root(*p.Field)
	if !ok {
		return nil, fmt.Errorf("unknown root %q", *p.Field)
	}
	cur := shared.FromValue(engine.RefValue(ref))
	for seg := range p.Next.Segments() {
		var next any
		switch h := cur.(type) {
		case *shared.Map:
			if seg.Field == nil {
				return nil, fmt.Errorf("%s: index into a map", target)
			}
			v, ok := h.Get(tx, *seg.Field)
			if !ok {
				return nil, fmt.Errorf("%s: no key %q", target, *seg.Field)
			}
			next = v
		case *shared.Array:
			if seg.Index == nil {
				return nil, fmt.Errorf("%s: field of an array", target)
			}
			next, err = h.Get(tx, *seg.Index)
		case *shared.XmlElement:
			if seg.Index == nil {
				return nil, fmt.Errorf("%s: field of an xml element", target)
			}
			next, err = h.Get(tx, *seg.Index)
		default:
			return nil, fmt.Errorf("%s: cannot descend into %T", target, cur)
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if _, ok := cur.(shared.Handle); !ok {
		return nil, fmt.Errorf("%s: not a container (%T)", target, cur)
	}
	return cur, nil
}

// apply runs st on target.
func apply(tx engine.Txn, target any, st *Step) error {
	switch h := target.(type) {
	case *shared.Array:
		return applyArray(tx, h, st)
	case *shared.Map:
		return applyMap(tx, h, st)
	case *shared.XmlText:
		return applyXmlText(tx, h, st)
	case *shared.Text:
		return applyText(tx, h, st)
	case *shared.XmlElement:
		return applyXmlElement(tx, h, st)
	}
	return fmt.Errorf("unsupported target %T", target)
}

func opErr(st *Step, kind engine.Kind) error {
	return fmt.Errorf("op %q does not apply to %s", st.Op, kind)
}

func applyArray(tx engine.Txn, a *shared.Array, st *Step) error {
	switch st.Op {
	case "insert", "push":
		vals, err := HostValues(st.Values)
		if err != nil {
			return err
		}
		if st.Op == "push" {
			return a.Push(tx, vals...)
		}
		return a.Insert(tx, st.Index, vals...)
	case "delete":
		return a.Delete(tx, st.Index, st.Length)
	}
	return opErr(st, a.Kind())
}

func applyMap(tx engine.Txn, m *shared.Map, st *Step) error {
	switch st.Op {
	case "set":
		v, err := HostValue(st.Value)
		if err != nil {
			return err
		}
		return m.Set(tx, st.Key, v)
	case "remove", "delete":
		_, err := m.Delete(tx, st.Key)
		return err
	}
	return opErr(st, m.Kind())
}

func applyText(tx engine.Txn, t *shared.Text, st *Step) error {
	switch st.Op {
	case "insert":
		return t.Insert(tx, st.Index, st.Text, st.Attrs)
	case "push":
		return t.Push(tx, st.Text)
	case "delete":
		return t.Delete(tx, st.Index, st.Length)
	case "format":
		return t.Format(tx, st.Index, st.Length, st.Attrs)
	}
	return opErr(st, t.Kind())
}

func applyXmlText(tx engine.Txn, x *shared.XmlText, st *Step) error {
	switch st.Op {
	case "set":
		return x.SetAttribute(tx, st.Key, fmt.Sprint(st.Value))
	case "remove":
		return x.RemoveAttribute(tx, st.Key)
	}
	return applyText(tx, x.Text, st)
}

func applyXmlElement(tx engine.Txn, e *shared.XmlElement, st *Step) error {
	switch st.Op {
	case "element":
		_, err := e.InsertElement(tx, st.Index, st.Tag)
		return err
	case "xmltext":
		x, err := e.InsertText(tx, st.Index)
		if err != nil {
			return err
		}
		if st.Text == "" {
			return nil
		}
		return x.Push(tx, st.Text)
	case "delete":
		return e.Delete(tx, st.Index, st.Length)
	case "set":
		return e.SetAttribute(tx, st.Key, fmt.Sprint(st.Value))
	case "remove":
		return e.RemoveAttribute(tx, st.Key)
	}
	return opErr(st, e.Kind())
}
