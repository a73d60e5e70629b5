package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/ydoc/format"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='color output'"`
	NoColor bool `cli:"name=nocolor desc='never color output'"`

	InFormat, OutFormat *format.Format

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// inFormat is the format of file: -I if given, otherwise by suffix
// with yaml as the default.
func (cfg *MainConfig) inFormat(file string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return format.ForFile(file, format.YAMLFormat)
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return format.JSONFormat
}

// colors reports whether output to w is colored: with -color always, with
// -nocolor never, otherwise when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type palette struct {
	step, path, kind, patch func(string, ...any) string
}

func (cfg *MainConfig) palette(w io.Writer) *palette {
	if !cfg.colors(w) {
		return &palette{step: fmt.Sprintf, path: fmt.Sprintf, kind: fmt.Sprintf, patch: fmt.Sprintf}
	}
	on := func(c *color.Color) func(string, ...any) string {
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &palette{
		step:  on(color.New(color.Bold)),
		path:  on(color.RGB(74, 92, 138)),
		kind:  on(color.New(color.FgCyan)),
		patch: on(color.RGB(196, 96, 16)),
	}
}

type RunConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='only print records matching this expr expression'"`
	Patch bool   `cli:"name=patch desc='print the json merge patch of each step'"`
	Quiet bool   `cli:"name=q desc='do not print records'"`
	Gops  bool   `cli:"name=gops desc='start a gops agent'"`

	Run *cli.Command
}

type PlanConfig struct {
	*MainConfig
	Apply bool `cli:"name=apply desc='apply the plan to an empty array and print the result'"`

	Plan *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='diff the files as text'"`

	Diff *cli.Command
}
