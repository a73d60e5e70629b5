package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y (default by file suffix, else yaml)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, {
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format for documents and patches: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)
	return cli.NewCommandAt(&cfg.Main, "ydoc").
		WithSynopsis("ydoc [opts] command [opts]").
		WithDescription("ydoc runs operation scripts against an in memory shared document.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ydocMain(cfg, cc, args)
		}).
		WithSubs(
			RunCommand(cfg),
			PlanCommand(cfg),
			DiffCommand(cfg))
}

func RunCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RunConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Run, "run").
		WithAliases("r").
		WithSynopsis("run [-where expr] [-patch] [-gops] [script files]").
		WithDescription("run yaml operation scripts and print the change records of each step").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

func PlanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PlanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Plan, "plan").
		WithAliases("p").
		WithSynopsis("plan [file]").
		WithDescription("show how a list of values is inserted into an array").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return plan(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-text] <from> <to>").
		WithDescription("print the json merge patch between two documents, or the delta between two texts").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
