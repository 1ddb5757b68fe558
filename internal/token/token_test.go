package token

import "testing"

func TestLookupReservedFindsKeywords(t *testing.T) {
	cases := map[string]Kind{
		"def": DEF, "if": IF, "while": WHILE, "for": FOR, "lambda": LAMBDA,
		"class": CLASS, "import": IMPORT, "try": TRY,
	}
	for lexeme, want := range cases {
		k, ok := LookupReserved(lexeme)
		if !ok {
			t.Errorf("LookupReserved(%q): expected found", lexeme)
			continue
		}
		if k != want {
			t.Errorf("LookupReserved(%q): got %s, want %s", lexeme, k, want)
		}
	}
}

func TestLookupReservedMissesPlainIdentifiers(t *testing.T) {
	if _, ok := LookupReserved("notAKeyword"); ok {
		t.Error("expected notAKeyword to not be reserved")
	}
}

func TestLookupOperatorFindsTwoAndOneCharOperators(t *testing.T) {
	cases := map[string]Kind{
		"==": IGUAL_IGUAL, "!=": DISTINTO, "<=": MENOR_IGUAL, ">=": MAYOR_IGUAL,
		"->": FLECHA, "=": ASIG, "<": MENOR, ">": MAYOR, ":": DOS_PUNTOS,
		"+": SUMA, "-": RESTA, "*": MUL, "/": DIV, "%": MOD,
	}
	for lexeme, want := range cases {
		k, ok := LookupOperator(lexeme)
		if !ok {
			t.Errorf("LookupOperator(%q): expected found", lexeme)
			continue
		}
		if k != want {
			t.Errorf("LookupOperator(%q): got %s, want %s", lexeme, k, want)
		}
	}
}

func TestLookupOperatorMissesUnknownSymbols(t *testing.T) {
	if _, ok := LookupOperator("**"); ok {
		t.Error("expected ** to not be a recognized operator")
	}
	if _, ok := LookupOperator("@"); ok {
		t.Error("expected @ to not be a recognized operator")
	}
}

func TestKindStringUsesGrammarNames(t *testing.T) {
	cases := map[Kind]string{
		IDENT: "id", ENTERO: "tk_entero", CADENA: "tk_cadena",
		EOF: "EOF", DEF: "def", IGUAL_IGUAL: "tk_igual_igual",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String(): got %q, want %q", k, got, want)
		}
	}
}

func TestKindStringUnknownFallback(t *testing.T) {
	if got := Kind(9999).String(); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN for an unmapped kind, got %q", got)
	}
}
