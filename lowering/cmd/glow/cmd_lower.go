package main

import (
	"os"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/astbridge"
	"github.com/graphlower/graphlower/lowering/internal/lower"
	"github.com/graphlower/graphlower/lowering/internal/staging"
	"github.com/graphlower/graphlower/lowering/internal/term"
)

/* ---------- lower ---------- */

func cmdLower(args []string) int {
	var (
		stage    bool
		asJSON   bool
		rest     []string
		usageStr = "glow lower [--config=cfg.yaml] [--stage] [--json] [--verbose] <ast.json>"
	)
	for _, s := range args {
		switch s {
		case "--stage":
			stage = true
		case "--json":
			asJSON = true
		default:
			rest = append(rest, s)
		}
	}
	cfgPath, verbose, file, ok := parseCommon(rest, usageStr)
	if !ok {
		return 2
	}

	cfg, log, code := loadCfgAndLogger(cfgPath, verbose)
	if code != 0 {
		return code
	}
	defer func() { _ = log.Sync() }()

	if stage {
		if err := staging.Init(staging.Options{
			Dir:       cfg.Staging.Dir,
			KeepFiles: cfg.Staging.KeepFiles,
		}); err != nil {
			term.Eprintf("%v\n", err)
			return 1
		}
		defer func() {
			if err := staging.Shutdown(); err != nil {
				term.Eprintf("%v\n", err)
			}
		}()
	}

	mod, err := decodeModuleFile(file)
	if err != nil {
		term.Eprintf("%v\n", err)
		return 1
	}

	engine := lower.NewEngine(lower.WithConfig(cfg), lower.WithLogger(log))
	outMod := &ast.Module{}
	for _, s := range mod.Body {
		fn, isFn := s.(*ast.FunctionDef)
		if !isFn {
			outMod.Body = append(outMod.Body, s)
			continue
		}
		res, err := engine.Lower(fn)
		if err != nil {
			term.Eprintf("%v\n", err)
			return 1
		}
		for _, w := range res.Warnings {
			term.Eprintf("%s\n", w)
		}
		if stage {
			path, err := staging.Stage(fn.Name, res.Source)
			if err != nil {
				term.Eprintf("%v\n", err)
				return 1
			}
			term.Eprintf("staged: %s\n", path)
		}
		outMod.Body = append(outMod.Body, res.Func)
	}

	if asJSON {
		if err := astbridge.EncodeModule(os.Stdout, outMod); err != nil {
			term.Eprintf("%v\n", err)
			return 1
		}
		return 0
	}
	term.Printf("%s", ast.Dump(outMod))
	return 0
}
