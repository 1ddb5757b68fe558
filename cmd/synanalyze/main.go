// Command synanalyze is the CLI entry point for the syntactic analyzer.
//
// Usage:
//
//	synanalyze <entrada> <salida>   Analyze entrada, write result to salida
//	synanalyze <entrada>            Analyze entrada, write result to salida.txt
package main

import (
	"fmt"
	"os"

	"github.com/holla2040/synanalyze/internal/analysis"
)

func main() {
	args := os.Args[1:]

	var inPath, outPath string
	switch len(args) {
	case 1:
		inPath, outPath = args[0], "salida.txt"
	case 2:
		inPath, outPath = args[0], args[1]
	default:
		usage()
		os.Exit(2)
	}

	res, err := analysis.RunFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", inPath, err)
		os.Exit(2)
	}

	if err := os.WriteFile(outPath, []byte(res.Output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(2)
	}

	if res.Verdict != analysis.Success {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  synanalyze <entrada> <salida>   Analyze entrada, write result to salida")
	fmt.Fprintln(os.Stderr, "  synanalyze <entrada>             Analyze entrada, write result to salida.txt")
}
