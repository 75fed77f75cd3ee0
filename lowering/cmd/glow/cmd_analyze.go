package main

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/astbridge"
	"github.com/graphlower/graphlower/lowering/internal/config"
	"github.com/graphlower/graphlower/lowering/internal/liveness"
	"github.com/graphlower/graphlower/lowering/internal/term"
)

/* ---------- analyze ---------- */

func cmdAnalyze(args []string) int {
	cfgPath, verbose, file, ok := parseCommon(args, "glow analyze [--config=cfg.yaml] [--verbose] <ast.json>")
	if !ok {
		return 2
	}

	cfg, log, code := loadCfgAndLogger(cfgPath, verbose)
	if code != 0 {
		return code
	}
	defer func() { _ = log.Sync() }()

	mod, err := decodeModuleFile(file)
	if err != nil {
		term.Eprintf("%v\n", err)
		return 1
	}

	for _, s := range mod.Body {
		fn, isFn := s.(*ast.FunctionDef)
		if !isFn {
			continue
		}
		an := liveness.Analyze(fn,
			liveness.WithLogger(log),
			liveness.WithConfig(cfg.Analyzer))
		printScopes(fn, an)
		for _, w := range an.Warnings() {
			term.Eprintf("%s\n", w)
		}
	}
	return 0
}

func printScopes(fn *ast.FunctionDef, an *liveness.Analysis) {
	term.Printf("function %s\n", fn.Name)
	for i, s := range an.Scopes() {
		term.Printf("  scope %d (%s)\n", i, s.Kind())
		printNames("args", s.Args())
		printNames("globals", s.Globals())
		printNames("nonlocals", s.Nonlocals())
		printNames("written", s.ModifiedVars())
		printNames("created", s.CreatedVars())
		printNames("variadic", s.VariadicMutated())
		printNames("existed", s.ExistedVars())
	}
}

func printNames(label string, names []string) {
	if len(names) == 0 {
		return
	}
	term.Printf("    %-10s %s\n", label, strings.Join(names, ", "))
}

/* ---------- shared helpers ---------- */

func parseCommon(args []string, usageLine string) (cfgPath string, verbose bool, file string, ok bool) {
	for _, s := range args {
		switch {
		case strings.HasPrefix(s, "--config="):
			cfgPath = strings.TrimPrefix(s, "--config=")
		case s == "--verbose":
			verbose = true
		case !strings.HasPrefix(s, "-") && file == "":
			file = s
		default:
			term.Eprintln("usage: " + usageLine)
			return "", false, "", false
		}
	}
	if file == "" {
		term.Eprintln("usage: " + usageLine)
		return "", false, "", false
	}
	return cfgPath, verbose, file, true
}

func loadCfgAndLogger(cfgPath string, verbose bool) (config.Config, *zap.Logger, int) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			term.Eprintf("%v\n", err)
			return config.Config{}, nil, 1
		}
	}
	log := zap.NewNop()
	if verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			term.Eprintf("logger: %v\n", err)
			return config.Config{}, nil, 1
		}
	}
	return cfg, log, 0
}

func decodeModuleFile(path string) (*ast.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return astbridge.DecodeModule(f)
}
