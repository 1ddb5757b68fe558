// Package analysis orchestrates one end-to-end run of the pipeline: scan,
// then parse, stopping at the first failure and producing exactly one
// diagnostic or success line. Unlike a validator that collects every error
// it can find, this one aborts at the first.
package analysis

import (
	"os"

	"github.com/holla2040/synanalyze/internal/diagnostic"
	"github.com/holla2040/synanalyze/internal/lexer"
	"github.com/holla2040/synanalyze/internal/parser"
	"github.com/holla2040/synanalyze/internal/refsets"
)

// Verdict classifies the outcome of a run.
type Verdict string

const (
	Success      Verdict = "success"
	SyntaxError  Verdict = "syntax_error"
	LexicalError Verdict = "lexical_error"
)

// Result is the outcome of analyzing one source text.
type Result struct {
	Verdict    Verdict
	Diagnostic string // empty on success
	Output     string // the full text to write to the output sink
}

// Run scans and parses source, stopping at the first failure. On success
// Output holds the success line followed by the reference-set block; on
// failure it holds the single diagnostic line.
func Run(source string) *Result {
	tokens, err := lexer.Scan(source)
	if err != nil {
		diag := err.Error()
		return &Result{Verdict: LexicalError, Diagnostic: diag, Output: diag + "\n"}
	}

	if perr := parser.New(tokens).Parse(); perr != nil {
		diag := perr.Error()
		return &Result{Verdict: SyntaxError, Diagnostic: diag, Output: diag + "\n"}
	}

	return &Result{Verdict: Success, Output: diagnostic.Success + "\n" + refsets.Render()}
}

// RunFile reads path and analyzes its contents.
func RunFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Run(string(data)), nil
}
