package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/ydoc/memdoc"
	"github.com/signadot/ydoc/script"
	"github.com/signadot/ydoc/shared"
)

func plan(cfg *PlanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Plan.Parse(cc, args)
	if err != nil {
		return err
	}
	file := "-"
	switch len(args) {
	case 0:
	case 1:
		file = args[0]
	default:
		return fmt.Errorf("%w: expected at most one file", cli.ErrUsage)
	}
	d, err := readInput(file)
	if err != nil {
		return err
	}
	v, err := cfg.inFormat(file).Decode(d)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	raw, ok := v.([]any)
	if !ok {
		return fmt.Errorf("error decoding %s: expected a list, got %T", file, v)
	}
	vals, err := script.HostValues(raw)
	if err != nil {
		return err
	}
	p, err := shared.PlanInsert(vals)
	if err != nil {
		return err
	}
	pal := cfg.palette(cc.Out)
	for i, st := range p.Steps {
		if st.Handle != nil {
			fmt.Fprintf(cc.Out, "%s insert_container %s\n", pal.step("%d", i), pal.kind("%s", st.Handle.Kind()))
			continue
		}
		fmt.Fprintf(cc.Out, "%s insert_range %d values\n", pal.step("%d", i), len(st.Values))
	}
	fmt.Fprintf(cc.Out, "%d values in %d ops\n", p.Len(), p.Ops())
	if !cfg.Apply {
		return nil
	}
	doc := memdoc.New(memdoc.WithLogger(theLog))
	arr, err := doc.Array("plan")
	if err != nil {
		return err
	}
	err = doc.Transact(func(tx *memdoc.Txn) error {
		return shared.ArrayOf(arr).Insert(tx, 0, vals...)
	})
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc.Out, doc.ToJSON())
}
