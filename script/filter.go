package script

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects records with a boolean expr expression over the record
// fields, e.g.
//
//	kind == "map" && "update" in actions
type Filter struct {
	src string
	prg *vm.Program
}

// NewFilter compiles src.
func NewFilter(src string) (*Filter, error) {
	prg, err := expr.Compile(src, expr.Env(Record{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

// Match reports whether r satisfies f.  A nil filter matches everything.
func (f *Filter) Match(r *Record) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := vm.Run(f.prg, *r)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.src, err)
	}
	return out.(bool), nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.src
}
