package shared

import (
	"github.com/signadot/ydoc/debug"
	"github.com/signadot/ydoc/engine"
	"github.com/signadot/ydoc/ir"
)

// Step is one engine operation of a Plan: a range insert of Values, or the
// insertion and integration of Handle.
type Step struct {
	Values []*ir.Node
	Handle Handle
}

// Plan is the sequence of operations inserting a batch of values into an
// array.  Maximal runs of plain values become a single step.
type Plan struct {
	Steps []Step
}

// PlanInsert validates values and partitions them into steps.  Nothing is
// written.
func PlanInsert(values []any) (*Plan, error) {
	return planInsert(newChecker("plan"), values)
}

func planInsert(c *checker, values []any) (*Plan, error) {
	p := &Plan{}
	var run []*ir.Node
	for _, v := range values {
		item, err := c.check(v)
		if err != nil {
			return nil, err
		}
		if item.Handle == nil {
			run = append(run, item.Plain)
			continue
		}
		if len(run) != 0 {
			p.Steps = append(p.Steps, Step{Values: run})
			run = nil
		}
		p.Steps = append(p.Steps, Step{Handle: item.Handle})
	}
	if len(run) != 0 {
		p.Steps = append(p.Steps, Step{Values: run})
	}
	if debug.Plan() {
		debug.Logf("plan %s: %d values in %d ops\n", c.op, len(values), p.Ops())
	}
	return p, nil
}

// Ops returns the number of engine operations issued on the target array
// when applying p.
func (p *Plan) Ops() int {
	return len(p.Steps)
}

// Len returns the number of elements p inserts.
func (p *Plan) Len() int {
	n := 0
	for _, s := range p.Steps {
		if s.Handle != nil {
			n++
			continue
		}
		n += len(s.Values)
	}
	return n
}

// apply inserts the steps of p into arr starting at index.
func (p *Plan) apply(op string, tx engine.Txn, arr engine.Array, index int) error {
	cursor := index
	for _, s := range p.Steps {
		if s.Handle == nil {
			if err := arr.InsertRange(tx, cursor, s.Values); err != nil {
				return engineErr(op, err)
			}
			cursor += len(s.Values)
			continue
		}
		ref, err := arr.InsertContainer(tx, cursor, s.Handle.Kind())
		if err != nil {
			return engineErr(op, err)
		}
		if err := attach(tx, s.Handle, ref); err != nil {
			return err
		}
		cursor++
	}
	return nil
}
