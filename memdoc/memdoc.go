package memdoc

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Doc is an in memory document.  A Doc is not safe for concurrent use.
type Doc struct {
	guid    string
	client  uint64
	clock   uint64
	log     *slog.Logger
	metrics *metrics

	roots  map[string]*branch
	active *Txn
	subs   engine.SubscriptionID
}

type config struct {
	log    *slog.Logger
	reg    prometheus.Registerer
	client uint64
}

// Option configures a Doc.
type Option func(*config)

// WithLogger sets the logger used for commit logging.  By default nothing
// is logged.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithRegisterer registers the document metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.reg = reg }
}

// WithClientID sets the client part of the IDs of containers created by
// the document.
func WithClientID(id uint64) Option {
	return func(c *config) { c.client = id }
}

// New creates an empty document.
func New(opts ...Option) *Doc {
	cfg := &config{client: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.New(slog.DiscardHandler)
	}
	guid := uuid.NewString()
	return &Doc{
		guid:    guid,
		client:  cfg.client,
		log:     cfg.log.With("doc", guid),
		metrics: newMetrics(cfg.reg, guid),
		roots:   map[string]*branch{},
	}
}

// GUID returns the unique identifier of d.
func (d *Doc) GUID() string {
	return d.guid
}

func (d *Doc) nextID() engine.ID {
	d.clock++
	return engine.ID{Client: d.client, Clock: d.clock}
}

func (d *Doc) root(name string, kind engine.Kind) (*branch, error) {
	if b, ok := d.roots[name]; ok {
		if b.kind != kind {
			return nil, fmt.Errorf("%w: root %q is a %s, not a %s", engine.ErrKindMismatch, name, b.kind, kind)
		}
		return b, nil
	}
	b := d.newBranch(kind, nil)
	b.name = name
	d.roots[name] = b
	return b, nil
}

// Array returns the root array called name, creating it if needed.
func (d *Doc) Array(name string) (*Array, error) {
	b, err := d.root(name, engine.ArrayKind)
	if err != nil {
		return nil, err
	}
	return b.ref().(*Array), nil
}

// Map returns the root map called name, creating it if needed.
func (d *Doc) Map(name string) (*Map, error) {
	b, err := d.root(name, engine.MapKind)
	if err != nil {
		return nil, err
	}
	return b.ref().(*Map), nil
}

// Text returns the root text called name, creating it if needed.
func (d *Doc) Text(name string) (*Text, error) {
	b, err := d.root(name, engine.TextKind)
	if err != nil {
		return nil, err
	}
	return b.ref().(*Text), nil
}

// XmlElement returns the root element called name, creating it if needed.
// The tag of a root element is its name.
func (d *Doc) XmlElement(name string) (*XmlElement, error) {
	b, err := d.root(name, engine.XmlElementKind)
	if err != nil {
		return nil, err
	}
	return b.ref().(*XmlElement), nil
}

// XmlText returns the root xml text called name, creating it if needed.
func (d *Doc) XmlText(name string) (*XmlText, error) {
	b, err := d.root(name, engine.XmlTextKind)
	if err != nil {
		return nil, err
	}
	return b.ref().(*XmlText), nil
}

// Root returns the root called name, if any.
func (d *Doc) Root(name string) (engine.Ref, bool) {
	b, ok := d.roots[name]
	if !ok {
		return nil, false
	}
	return b.ref(), true
}

// RootNames returns the names of the roots in sorted order.
func (d *Doc) RootNames() []string {
	return slices.Sorted(maps.Keys(d.roots))
}

// ToJSON returns an object mapping each root name to the JSON form of the
// root.
func (d *Doc) ToJSON() *ir.Node {
	m := make(map[string]*ir.Node, len(d.roots))
	for name, b := range d.roots {
		m[name] = b.toJSON()
	}
	return ir.FromMap(m)
}

// Begin starts a transaction.  Only one transaction may be active at a time.
func (d *Doc) Begin() (*Txn, error) {
	if d.active != nil {
		return nil, engine.ErrTxnActive
	}
	tx := &Txn{
		doc:     d,
		touched: map[*branch]*snapshot{},
		created: map[*branch]bool{},
	}
	d.active = tx
	return tx, nil
}

// Transact runs fn in a new transaction and commits it, whether or not fn
// returns an error.  Changes made before an error are kept.
func (d *Doc) Transact(fn func(tx *Txn) error) error {
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer tx.Commit()
	return fn(tx)
}
