package parser

import (
	"testing"

	"github.com/holla2040/synanalyze/internal/lexer"
)

func parseSource(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.Scan(src)
	if err != nil {
		t.Fatalf("lexing failed unexpectedly: %v", err)
	}
	return New(tokens).Parse()
}

func requireParses(t *testing.T, src string) {
	t.Helper()
	if err := parseSource(t, src); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
}

func requireParseError(t *testing.T, src string) *ParseError {
	t.Helper()
	err := parseSource(t, src)
	if err == nil {
		t.Fatal("expected a parse error, got none")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	return perr
}

// End-to-end scenarios from the grammar's own worked examples.

func TestScenarioSimpleFunction(t *testing.T) {
	requireParses(t, "def f(x):\n    return x+1\n")
}

func TestScenarioTrailingCommaInParameters(t *testing.T) {
	requireParses(t, "def f(x,):\n    return x\n")
}

func TestScenarioNestedCalls(t *testing.T) {
	requireParses(t, "print(f(a, b, c))\n")
}

func TestScenarioForLoopOverCall(t *testing.T) {
	requireParses(t, "for i in range(10):\n    print(i)\n")
}

func TestScenarioAnnotatedParameterCommaInsideBrackets(t *testing.T) {
	perr := requireParseError(t, "def f(x:[int,str]):\n    return x\n")
	if perr.IndentFail {
		t.Fatal("expected a token-mismatch error, not an indentation error")
	}
	if len(perr.Expected) != 1 || perr.Expected[0] != "]" {
		t.Errorf("expected [\"]\"], got %v", perr.Expected)
	}
	if perr.Tok.Pos.Column != 13 {
		t.Errorf("expected comma at column 13, got %d", perr.Tok.Pos.Column)
	}
}

func TestScenarioMissingIndentAfterColon(t *testing.T) {
	perr := requireParseError(t, "if x:\nprint(x)\n")
	if !perr.IndentFail {
		t.Fatal("expected an indentation error")
	}
	if perr.Tok.Pos.Line != 2 || perr.Tok.Pos.Column != 1 {
		t.Errorf("expected failure at (2,1), got (%d,%d)", perr.Tok.Pos.Line, perr.Tok.Pos.Column)
	}
}

func TestScenarioUnterminatedStringIsLexicalNotSyntactic(t *testing.T) {
	_, err := lexer.Scan(`a = "unterminated` + "\n")
	if err == nil {
		t.Fatal("expected a lexical error")
	}
}

func TestScenarioTrailingCommaInListLiteral(t *testing.T) {
	requireParses(t, "x = [1, 2, 3,]\n")
}

func TestScenarioComprehensionNotSupportedInListLiteral(t *testing.T) {
	perr := requireParseError(t, "y = [e for e in xs if e > 0]\n")
	if perr.IndentFail {
		t.Fatal("expected a token-mismatch error, not an indentation error")
	}
	foundFor := false
	for _, e := range perr.Expected {
		if e == "]" {
			foundFor = true
		}
	}
	if !foundFor {
		t.Errorf("expected \"]\" among expected set, got %v", perr.Expected)
	}
}

// Additional unit coverage beyond the literal scenarios.

func TestComprehensionInsideCallArguments(t *testing.T) {
	requireParses(t, "print(sum(e for e in xs if e > 0))\n")
}

func TestCommaAfterComprehensionIsRejected(t *testing.T) {
	perr := requireParseError(t, "f(e for e in xs, 1)\n")
	if perr.IndentFail {
		t.Fatal("expected a token-mismatch error")
	}
}

func TestTrailerChainCallSubscriptAttribute(t *testing.T) {
	requireParses(t, "a.b[0](c).d\n")
}

func TestElifElseChain(t *testing.T) {
	requireParses(t, "if x:\n    pass\nelif y:\n    pass\nelse:\n    pass\n")
}

func TestWhileLoop(t *testing.T) {
	requireParses(t, "while x:\n    x = x - 1\n")
}

func TestLambdaNoParams(t *testing.T) {
	requireParses(t, "f = lambda: 1\n")
}

func TestLambdaWithParams(t *testing.T) {
	requireParses(t, "f = lambda a, b: a + b\n")
}

func TestEmptyParenthesizedExpression(t *testing.T) {
	requireParses(t, "x = ()\n")
}

func TestMultipleAssignmentTargets(t *testing.T) {
	requireParses(t, "a = b = 1\n")
}

func TestFullDedentToStackBottomParses(t *testing.T) {
	// One dedent closes two nested blocks at once. Column 1 on the last
	// "pass" equals the stack bottom (1), which is never popped, so this is
	// a legal full dedent back to the program's top level.
	src := "if x:\n    if y:\n        pass\npass\n"
	requireParses(t, src)
}

func TestUnaryMinusBindsTighterThanComparison(t *testing.T) {
	requireParses(t, "x = -1 < 2\n")
}

func TestNotIsRightRecursivePrefix(t *testing.T) {
	requireParses(t, "x = not not True\n")
}

func TestReservedWordNotInGrammarFailsToParse(t *testing.T) {
	perr := requireParseError(t, "class x:\n    pass\n")
	if perr.IndentFail {
		t.Fatal("expected a token-mismatch error, not indentation")
	}
}

func TestMismatchReportsTokenFound(t *testing.T) {
	perr := requireParseError(t, "def (x):\n    pass\n")
	if perr.Tok.Lexeme != "(" {
		t.Errorf("expected failing token to be '(', got %q", perr.Tok.Lexeme)
	}
}
