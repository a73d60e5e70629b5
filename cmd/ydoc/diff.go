package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected 2 files", cli.ErrUsage)
	}
	from, err := readInput(args[0])
	if err != nil {
		return err
	}
	to, err := readInput(args[1])
	if err != nil {
		return err
	}
	if cfg.Text {
		return textDiff(cc, string(from), string(to))
	}
	fromNode, err := cfg.inFormat(args[0]).DecodeNode(from)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	toNode, err := cfg.inFormat(args[1]).DecodeNode(to)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	patch, err := libdiff.MergePatch(fromNode, toNode)
	if err != nil {
		return err
	}
	patchNode, err := ir.FromJSON(patch)
	if err != nil {
		return err
	}
	return writeDoc(cfg.MainConfig, cc.Out, patchNode)
}

// textDiff prints the delta from from to to in the text delta format.
func textDiff(cc *cli.Context, from, to string) error {
	toRunes := []rune(to)
	var delta []map[string]any
	j := 0
	for _, span := range libdiff.Sequence([]rune(from), toRunes) {
		switch span.Op {
		case libdiff.Equal:
			delta = append(delta, map[string]any{"retain": span.Len})
			j += span.Len
		case libdiff.Delete:
			delta = append(delta, map[string]any{"delete": span.Len})
		case libdiff.Insert:
			delta = append(delta, map[string]any{"insert": string(toRunes[j : j+span.Len])})
			j += span.Len
		}
	}
	d, err := json.Marshal(delta)
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s\n", d)
	return nil
}
