// Package diagnostic formats the single terminating message a run of the
// analyzer produces.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/holla2040/synanalyze/internal/token"
)

// Success is the literal message emitted when the parse completes without
// error.
const Success = "El analisis sintactico ha finalizado exitosamente."

// Lexical formats the lexical-error line for a failure at (line, col).
func Lexical(line, col int) string {
	return fmt.Sprintf(">>> Error léxico(linea:%d,posicion:%d)", line, col)
}

// Indentation formats the indentation-failure line for tok.
func Indentation(tok token.Token) string {
	return fmt.Sprintf("<%d,%d>Error sintactico: falla de indentacion", tok.Pos.Line, tok.Pos.Column)
}

// Mismatch formats the general syntactic-error line: the token actually
// found versus the set of lexemes/kind labels the failing production
// expected. found is rendered lexeme-first — EOF for the EOF token, the
// lexeme when non-empty, the kind's own name otherwise.
func Mismatch(tok token.Token, expected []string) string {
	found := foundLabel(tok)
	quoted := make([]string, len(expected))
	for i, e := range expected {
		quoted[i] = "\"" + e + "\""
	}
	return fmt.Sprintf("<%d,%d> Error sintactico: se encontro: \"%s\"; se esperaba: %s.",
		tok.Pos.Line, tok.Pos.Column, found, strings.Join(quoted, ", "))
}

func foundLabel(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "EOF"
	}
	if tok.Lexeme != "" {
		return tok.Lexeme
	}
	return tok.Kind.String()
}
