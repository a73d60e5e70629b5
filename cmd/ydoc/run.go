package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/ydoc/ir"
	"github.com/signadot/ydoc/memdoc"
	"github.com/signadot/ydoc/script"
)

func run(cfg *RunConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Run.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		}
		defer agent.Close()
	}
	var opts []script.Option
	opts = append(opts, script.WithLogger(theLog))
	if cfg.Where != "" {
		f, err := script.NewFilter(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, script.WithFilter(f))
	}
	if cfg.Patch {
		opts = append(opts, script.WithPatches())
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		if err := runFile(cfg, cc.Out, file, opts); err != nil {
			return err
		}
	}
	return nil
}

func runFile(cfg *RunConfig, w io.Writer, file string, opts []script.Option) error {
	d, err := readInput(file)
	if err != nil {
		return err
	}
	s, err := script.Parse(d)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	doc := memdoc.New(memdoc.WithLogger(theLog))
	theLog.Info("running script", "file", file, "doc", doc.GUID(), "steps", len(s.Steps))
	results, runErr := script.NewRunner(doc, opts...).Run(s)
	pal := cfg.palette(w)
	for _, sr := range results {
		if err := printStep(cfg, w, pal, sr); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("error processing %s: %w", file, runErr)
	}
	fmt.Fprintf(w, "%s\n", pal.step("%s", "document"))
	return writeDoc(cfg.MainConfig, w, doc.ToJSON())
}

// writeDoc writes n in the output format, indented.
func writeDoc(cfg *MainConfig, w io.Writer, n *ir.Node) error {
	f := cfg.outFormat()
	d, err := f.Encode(n)
	if err != nil {
		return err
	}
	if f.IsJSON() {
		d = append(indent(d), '\n')
	}
	_, err = w.Write(d)
	return err
}

func printStep(cfg *RunConfig, w io.Writer, pal *palette, sr *script.StepResult) error {
	fmt.Fprintf(w, "%s %s (%d ops)\n", pal.step("step %d", sr.Step), sr.Op, sr.Ops)
	if !cfg.Quiet {
		for _, r := range sr.Records {
			var body any = r.Delta
			if r.Keys != nil {
				body = r.Keys
			}
			d, err := json.Marshal(body)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s %s %s\n", pal.path("%s", r.Target), pal.kind("%s", r.Kind), d)
		}
	}
	if cfg.Patch && sr.Patch != nil {
		fmt.Fprintf(w, "  %s %s\n", pal.patch("%s", "patch"), sr.Patch)
	}
	return nil
}

func indent(d []byte) []byte {
	buf := bytes.NewBuffer(nil)
	if err := json.Indent(buf, d, "", "  "); err != nil {
		return d
	}
	return buf.Bytes()
}
