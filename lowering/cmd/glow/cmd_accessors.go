package main

import (
	"strings"

	"github.com/graphlower/graphlower/lowering/internal/ast"
	"github.com/graphlower/graphlower/lowering/internal/synth"
	"github.com/graphlower/graphlower/lowering/internal/term"
)

/* ---------- accessors ---------- */

func cmdAccessors(args []string) int {
	var names []string
	for _, s := range args {
		switch {
		case strings.HasPrefix(s, "--names="):
			raw := strings.TrimPrefix(s, "--names=")
			for _, n := range strings.Split(raw, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
		default:
			term.Eprintln("usage: glow accessors --names=a,b,c")
			return 2
		}
	}

	acc := synth.CreateAccessors(names, nil)
	term.Printf("%s", ast.DumpStmt(acc.Getter, 0))
	term.Printf("%s", ast.DumpStmt(acc.Setter, 0))
	return 0
}
