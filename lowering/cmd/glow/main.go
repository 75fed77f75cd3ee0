package main

import (
	"flag"
	"os"

	"github.com/graphlower/graphlower/lowering/internal/term"
	"github.com/graphlower/graphlower/lowering/internal/version"
)

/* ---------- main ---------- */

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		return
	}
	switch os.Args[1] {
	case "version", "--version", "-v":
		term.Printf("%s\n", version.String())
	case "help", "--help", "-h":
		usage()
	case "analyze":
		os.Exit(cmdAnalyze(os.Args[2:]))
	case "accessors":
		os.Exit(cmdAccessors(os.Args[2:]))
	case "lower":
		os.Exit(cmdLower(os.Args[2:]))
	default:
		term.Eprintf("unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}
