package main

import (
	"github.com/lithammer/dedent"

	"github.com/graphlower/graphlower/lowering/internal/term"
)

func usage() {
	term.Eprintf("%s", dedent.Dedent(`
		glow: control-flow lowering for static dataflow graphs

		Usage:
		  glow <command> [args]

		Commands:
		  version                                  Print version
		  help                                     Show this help
		  analyze [--config=cfg.yaml] [--verbose] <ast.json>
		                                           Run the liveness pass and print scope tables
		  accessors --names=a,b,c                  Synthesize a getter/setter pair and print source
		  lower [--config=cfg.yaml] [--stage] [--json] [--verbose] <ast.json>
		                                           Lower branches/loops and print the result

		Notes:
		  - <ast.json> is the JSON tree interchange emitted by the front-end parser.
		  - --stage writes lowered source into the per-process staging directory
		    (removed on exit unless staging.keep_files is set in the config).
	`))
}
