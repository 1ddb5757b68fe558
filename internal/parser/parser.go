// Package parser implements a single-token-lookahead recursive-descent
// recognizer. It never builds an AST — this front end's only job is to
// say yes or point at the first failure.
package parser

import (
	"github.com/holla2040/synanalyze/internal/diagnostic"
	"github.com/holla2040/synanalyze/internal/token"
)

// ParseError is the single syntactic failure a Parser run can produce. It
// is either a token mismatch (Expected holds the labels the failing
// production wanted) or an indentation failure (IndentFail).
type ParseError struct {
	Tok        token.Token
	Expected   []string
	IndentFail bool
}

// Error renders the failure using the diagnostic package's literal message
// forms.
func (e *ParseError) Error() string {
	if e.IndentFail {
		return diagnostic.Indentation(e.Tok)
	}
	return diagnostic.Mismatch(e.Tok, e.Expected)
}

// Parser walks a finished token stream exactly once. The cursor only
// advances; there is no backtracking.
type Parser struct {
	toks         []token.Token
	idx          int
	cur          token.Token
	indent       []int // indentation stack, bottom always 1
	lastStmtLine int    // line of the most recently started statement or block head
}

// New creates a Parser over tokens, which must end with token.EOF.
func New(tokens []token.Token) *Parser {
	p := &Parser{toks: tokens, indent: []int{1}}
	if len(tokens) > 0 {
		p.cur = tokens[0]
	} else {
		p.cur = token.Token{Kind: token.EOF, Pos: token.Position{Line: 1, Column: 1}}
	}
	p.lastStmtLine = p.cur.Pos.Line
	return p
}

// Parse recognizes `program = { statement } EOF` and returns the first
// ParseError encountered, or nil on success.
func (p *Parser) Parse() error {
	for p.cur.Kind != token.EOF {
		if err := p.statement(); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Token navigation
// ---------------------------------------------------------------------------

func (p *Parser) advance() {
	if p.idx < len(p.toks)-1 {
		p.idx++
		p.cur = p.toks[p.idx]
	}
}

func (p *Parser) expect(kind token.Kind, expected []string) (token.Token, error) {
	if p.cur.Kind == kind {
		t := p.cur
		p.advance()
		return t, nil
	}
	return token.Token{}, &ParseError{Tok: p.cur, Expected: expected}
}

// ---------------------------------------------------------------------------
// Indentation discipline
// ---------------------------------------------------------------------------

// alignNewStatement pops the indentation stack past any column the new
// statement has dedented below. It is invoked at the head of every
// statement. If a pop empties the stack mid-dedent it signals an
// indentation failure immediately rather than waiting for a block boundary.
func (p *Parser) alignNewStatement() error {
	if p.cur.Pos.Line > p.lastStmtLine {
		for len(p.indent) > 0 && p.indent[len(p.indent)-1] > p.cur.Pos.Column {
			p.indent = p.indent[:len(p.indent)-1]
			if len(p.indent) == 0 {
				return &ParseError{Tok: p.cur, IndentFail: true}
			}
		}
	}
	p.lastStmtLine = p.cur.Pos.Line
	return nil
}

// requireIndentAfterColon is invoked after the ':' of every compound
// statement head. It demands a fresh, more-indented line for the body and
// pushes that column.
func (p *Parser) requireIndentAfterColon() error {
	if p.cur.Pos.Line <= p.lastStmtLine {
		return &ParseError{Tok: p.cur, IndentFail: true}
	}
	if p.cur.Pos.Column <= p.indent[len(p.indent)-1] {
		return &ParseError{Tok: p.cur, IndentFail: true}
	}
	p.indent = append(p.indent, p.cur.Pos.Column)
	p.lastStmtLine = p.cur.Pos.Line
	return nil
}

// block reads one or more statements at the column most recently pushed by
// requireIndentAfterColon, then pops that column.
func (p *Parser) block() error {
	col := p.indent[len(p.indent)-1]
	for p.cur.Kind != token.EOF && p.cur.Pos.Column == col {
		if err := p.statement(); err != nil {
			return err
		}
		if p.cur.Kind == token.EOF || p.cur.Pos.Column < col {
			break
		}
	}
	if len(p.indent) > 0 && p.indent[len(p.indent)-1] == col {
		p.indent = p.indent[:len(p.indent)-1]
	}
	return nil
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) statement() error {
	if err := p.alignNewStatement(); err != nil {
		return err
	}

	switch p.cur.Kind {
	case token.DEF:
		return p.defStatement()
	case token.IF:
		return p.ifStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.FOR:
		return p.forStatement()
	default:
		return p.simpleStatement()
	}
}

func (p *Parser) defStatement() error {
	p.advance() // def
	if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
		return err
	}
	if _, err := p.expect(token.PAR_IZQ, []string{"("}); err != nil {
		return err
	}
	if p.cur.Kind != token.PAR_DER {
		if err := p.parameters(); err != nil {
			return err
		}
	}
	if _, err := p.expect(token.PAR_DER, []string{")"}); err != nil {
		return err
	}
	if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
		return err
	}
	if err := p.requireIndentAfterColon(); err != nil {
		return err
	}
	return p.block()
}

func (p *Parser) ifStatement() error {
	p.advance() // if
	if err := p.expression(); err != nil {
		return err
	}
	if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
		return err
	}
	if err := p.requireIndentAfterColon(); err != nil {
		return err
	}
	if err := p.block(); err != nil {
		return err
	}

	for p.cur.Kind == token.ELIF {
		p.lastStmtLine = p.cur.Pos.Line
		p.advance()
		if err := p.expression(); err != nil {
			return err
		}
		if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
			return err
		}
		if err := p.requireIndentAfterColon(); err != nil {
			return err
		}
		if err := p.block(); err != nil {
			return err
		}
	}

	if p.cur.Kind == token.ELSE {
		p.lastStmtLine = p.cur.Pos.Line
		p.advance()
		if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
			return err
		}
		if err := p.requireIndentAfterColon(); err != nil {
			return err
		}
		if err := p.block(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) whileStatement() error {
	p.advance() // while
	if err := p.expression(); err != nil {
		return err
	}
	if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
		return err
	}
	if err := p.requireIndentAfterColon(); err != nil {
		return err
	}
	return p.block()
}

func (p *Parser) forStatement() error {
	p.advance() // for
	if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
		return err
	}
	if _, err := p.expect(token.IN, []string{"in"}); err != nil {
		return err
	}
	if err := p.expression(); err != nil {
		return err
	}
	if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
		return err
	}
	if err := p.requireIndentAfterColon(); err != nil {
		return err
	}
	return p.block()
}

func (p *Parser) simpleStatement() error {
	switch p.cur.Kind {
	case token.PASS, token.BREAK, token.CONTINUE:
		p.advance()
		return nil
	case token.RETURN:
		retLine := p.cur.Pos.Line
		p.advance()
		if p.cur.Kind != token.EOF && p.cur.Pos.Line == retLine {
			return p.expression()
		}
		return nil
	case token.PRINT:
		p.advance()
		if _, err := p.expect(token.PAR_IZQ, []string{"("}); err != nil {
			return err
		}
		if p.cur.Kind != token.PAR_DER {
			if err := p.callArguments(); err != nil {
				return err
			}
		}
		_, err := p.expect(token.PAR_DER, []string{")"})
		return err
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) expressionStatement() error {
	if err := p.expressionList(); err != nil {
		return err
	}
	for p.cur.Kind == token.ASIG {
		p.advance()
		if err := p.expressionList(); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Parameters (def) and annotations
// ---------------------------------------------------------------------------

func (p *Parser) parameters() error {
	if err := p.parameter(); err != nil {
		return err
	}
	for p.cur.Kind == token.COMA {
		p.advance()
		if p.cur.Kind == token.PAR_DER {
			break
		}
		if err := p.parameter(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parameter() error {
	if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
		return err
	}
	if p.cur.Kind == token.DOS_PUNTOS {
		p.advance()
		return p.annotatedType()
	}
	return nil
}

func (p *Parser) annotatedType() error {
	if p.cur.Kind == token.COR_IZQ {
		p.advance()
		if _, err := p.expect(token.IDENT, []string{"tipo/identificador"}); err != nil {
			return err
		}
		if p.cur.Kind == token.COMA {
			return &ParseError{Tok: p.cur, Expected: []string{"]"}}
		}
		_, err := p.expect(token.COR_DER, []string{"]"})
		return err
	}
	_, err := p.expect(token.IDENT, []string{"tipo/identificador"})
	return err
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *Parser) expressionList() error {
	if err := p.expression(); err != nil {
		return err
	}
	for p.cur.Kind == token.COMA {
		p.advance()
		if err := p.expression(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) expression() error {
	return p.exprOr()
}

func (p *Parser) exprOr() error {
	if err := p.exprAnd(); err != nil {
		return err
	}
	for p.cur.Kind == token.OR {
		p.advance()
		if err := p.exprAnd(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) exprAnd() error {
	if err := p.exprNot(); err != nil {
		return err
	}
	for p.cur.Kind == token.AND {
		p.advance()
		if err := p.exprNot(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) exprNot() error {
	if p.cur.Kind == token.NOT {
		p.advance()
		return p.exprNot()
	}
	return p.comparison()
}

func isComparisonOp(k token.Kind) bool {
	switch k {
	case token.IGUAL_IGUAL, token.DISTINTO, token.MENOR, token.MAYOR,
		token.MENOR_IGUAL, token.MAYOR_IGUAL, token.IN, token.IS:
		return true
	}
	return false
}

func (p *Parser) comparison() error {
	if err := p.arith(); err != nil {
		return err
	}
	for isComparisonOp(p.cur.Kind) {
		p.advance()
		if err := p.arith(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) arith() error {
	if err := p.term(); err != nil {
		return err
	}
	for p.cur.Kind == token.SUMA || p.cur.Kind == token.RESTA {
		p.advance()
		if err := p.term(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) term() error {
	if err := p.factor(); err != nil {
		return err
	}
	for p.cur.Kind == token.MUL || p.cur.Kind == token.DIV || p.cur.Kind == token.MOD {
		p.advance()
		if err := p.factor(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) factor() error {
	if p.cur.Kind == token.SUMA || p.cur.Kind == token.RESTA {
		p.advance()
		return p.factor()
	}
	return p.power()
}

// power recognizes an atom followed by any sequence of call/subscript/
// attribute trailers. There is no '**' step — the operator table has no
// '**' lexeme.
func (p *Parser) power() error {
	if err := p.atom(); err != nil {
		return err
	}
	for {
		switch p.cur.Kind {
		case token.PAR_IZQ:
			p.advance()
			if p.cur.Kind != token.PAR_DER {
				if err := p.callArguments(); err != nil {
					return err
				}
			}
			if _, err := p.expect(token.PAR_DER, []string{")"}); err != nil {
				return err
			}
		case token.COR_IZQ:
			p.advance()
			if err := p.expression(); err != nil {
				return err
			}
			if _, err := p.expect(token.COR_DER, []string{"]"}); err != nil {
				return err
			}
		case token.PUNTO:
			p.advance()
			if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Parser) atom() error {
	tok := p.cur
	switch tok.Kind {
	case token.IDENT, token.ENTERO, token.CADENA, token.TRUE, token.FALSE, token.NONE:
		p.advance()
		return nil
	case token.PAR_IZQ:
		p.advance()
		if p.cur.Kind == token.PAR_DER {
			p.advance()
			return nil
		}
		if err := p.expression(); err != nil {
			return err
		}
		_, err := p.expect(token.PAR_DER, []string{")"})
		return err
	case token.COR_IZQ:
		return p.listLiteral()
	case token.LAMBDA:
		return p.lambdaExpr()
	default:
		return &ParseError{Tok: tok, Expected: []string{
			"id", "num", "cadena", "(", "[", "lambda", "True", "False", "None",
		}}
	}
}

func (p *Parser) listLiteral() error {
	p.advance() // [
	if p.cur.Kind != token.COR_DER {
		if err := p.expression(); err != nil {
			return err
		}
		for p.cur.Kind == token.COMA {
			p.advance()
			if p.cur.Kind == token.COR_DER {
				break
			}
			if err := p.expression(); err != nil {
				return err
			}
		}
	}
	_, err := p.expect(token.COR_DER, []string{"]"})
	return err
}

func (p *Parser) lambdaExpr() error {
	p.advance() // lambda
	if p.cur.Kind != token.DOS_PUNTOS {
		if err := p.lambdaParams(); err != nil {
			return err
		}
	}
	if _, err := p.expect(token.DOS_PUNTOS, []string{":"}); err != nil {
		return err
	}
	return p.expression()
}

func (p *Parser) lambdaParams() error {
	if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
		return err
	}
	for p.cur.Kind == token.COMA {
		p.advance()
		if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Call argument lists and comprehensions
// ---------------------------------------------------------------------------

func (p *Parser) callArguments() error {
	if err := p.expression(); err != nil {
		return err
	}
	if p.cur.Kind == token.FOR {
		return p.compForClauses()
	}
	for p.cur.Kind == token.COMA {
		p.advance()
		if p.cur.Kind == token.PAR_DER {
			break
		}
		if err := p.expression(); err != nil {
			return err
		}
		if p.cur.Kind == token.FOR {
			return p.compForClauses()
		}
	}
	if p.cur.Kind != token.PAR_DER && p.cur.Kind != token.COMA {
		return &ParseError{Tok: p.cur, Expected: []string{")", ","}}
	}
	return nil
}

// compForClauses parses one or more `for id in expr {if expr}` clauses. No
// comma may follow a comprehension.
func (p *Parser) compForClauses() error {
	for p.cur.Kind == token.FOR {
		p.advance()
		if _, err := p.expect(token.IDENT, []string{"identificador"}); err != nil {
			return err
		}
		if _, err := p.expect(token.IN, []string{"in"}); err != nil {
			return err
		}
		if err := p.expression(); err != nil {
			return err
		}
		for p.cur.Kind == token.IF {
			p.advance()
			if err := p.expression(); err != nil {
				return err
			}
		}
	}
	if p.cur.Kind != token.PAR_DER {
		return &ParseError{Tok: p.cur, Expected: []string{")"}}
	}
	return nil
}
