// parser.go — Pratt parser for mathfp.
//
// The parser consumes the token slice produced by lexer.go and builds the
// AST defined in ast.go. Precedence is handled with a small binding-power
// table (lbp); the grammar, low to high:
//
//	program    := { statement ";" } [ statement ]
//	statement  := binding | expression
//	binding    := ID ":=" statement          // right-nested, so x := y := 5
//	expression := function-literal | if-expr | binary-expression
//	fun-lit    := params "|->" expression
//	params     := ID | "(" [ ID { "," ID } ] ")"
//	if-expr    := "if" expression "then" expression "else" expression
//
// Binary operators are left-associative; "* / %" bind tighter than "+ -",
// which bind tighter than comparisons, which bind tighter than "== !=".
// Unary "-" binds tighter than any binary operator; call argument lists
// bind tighter still. Function application always requires explicit call
// parentheses.
//
// Error policy is fail-fast: the first parse error aborts the whole input
// and is returned as a *Diagnostic carrying the offending token's position
// and the found-versus-expected tokens. There is no per-statement recovery.
package mathfp

import "fmt"

// Parse scans and parses a complete source string into one Program node.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) peekAt(n int) Token {
	idx := p.i + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, what string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	g := p.peek()
	return Token{}, &Diagnostic{
		Kind: DiagParse,
		Msg:  fmt.Sprintf("expected %s %s, found %s", t.Name(), what, g.Type.Name()),
		Line: g.Line,
		Col:  g.Col,
	}
}

func (p *parser) errAt(tok Token, msg string) error {
	return &Diagnostic{Kind: DiagParse, Msg: msg, Line: tok.Line, Col: tok.Col}
}

// ───────────────────────── precedence / associativity ──────────────────────

func lbp(t TokenType) (int, bool) {
	switch t {
	case MULT, DIV, MOD:
		return 70, true
	case PLUS, MINUS:
		return 60, true
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return 50, true
	case EQ, NEQ:
		return 40, true
	}
	return 0, false
}

const unaryBP = 80

// ───────────────────────────── productions ──────────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for !p.atEnd() {
		if p.match(SEMI) {
			continue
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if p.atEnd() {
			break
		}
		if _, err := p.need(SEMI, "after statement"); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// statement parses one binding or expression. Bindings nest on the right,
// so the value of a binding may itself be a binding.
func (p *parser) statement() (Expr, error) {
	if p.peek().Type == ID && p.peekAt(1).Type == BIND {
		name := p.peek()
		p.i += 2 // ID ':='
		val, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &Binding{Token: name, Name: name.Lexeme, Value: val}, nil
	}
	return p.expr(0)
}

func (p *parser) expr(minBP int) (Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		// Call argument lists bind tighter than every operator.
		if p.peek().Type == LROUND {
			left, err = p.finishCall(left)
			if err != nil {
				return nil, err
			}
			continue
		}

		op := p.peek()
		bp, ok := lbp(op.Type)
		if !ok || bp <= minBP {
			return left, nil
		}
		p.i++
		right, err := p.expr(bp) // equal power stops: left-associative
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) prefix() (Expr, error) {
	t := p.peek()

	switch t.Type {
	case NUMBER:
		p.i++
		return &NumberLit{Token: t, Value: t.Literal}, nil

	case ID:
		if p.peekAt(1).Type == MAPSTO {
			return p.funLit()
		}
		p.i++
		return &Ident{Token: t, Name: t.Lexeme}, nil

	case MINUS:
		p.i++
		operand, err := p.expr(unaryBP)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t, Operand: operand}, nil

	case LROUND:
		if p.paramListAhead() {
			return p.funLit()
		}
		p.i++
		inner, err := p.statement() // a group may contain a binding
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "to close group"); err != nil {
			return nil, err
		}
		return &Grouping{Token: t, Inner: inner}, nil

	case IF:
		return p.ifExpr()
	}

	return nil, p.errAt(t, fmt.Sprintf("expected expression, found %s", t.Type.Name()))
}

// paramListAhead reports whether the tokens at the cursor spell a
// parenthesized parameter list followed by '|->'. Pure lookahead; the
// cursor does not move.
func (p *parser) paramListAhead() bool {
	j := 1 // past '('
	if p.peekAt(j).Type == ID {
		j++
		for p.peekAt(j).Type == COMMA && p.peekAt(j+1).Type == ID {
			j += 2
		}
	}
	if p.peekAt(j).Type != RROUND {
		return false
	}
	return p.peekAt(j+1).Type == MAPSTO
}

// funLit parses `ID |-> body` or `( [ID {, ID}] ) |-> body`. The body is a
// single expression; a nested function literal gives currying.
func (p *parser) funLit() (Expr, error) {
	start := p.peek()
	var params []string

	if start.Type == ID {
		p.i++
		params = []string{start.Lexeme}
	} else {
		p.i++ // '('
		if p.peek().Type == ID {
			params = append(params, p.peek().Lexeme)
			p.i++
			for p.match(COMMA) {
				id, err := p.need(ID, "as parameter name")
				if err != nil {
					return nil, err
				}
				params = append(params, id.Lexeme)
			}
		}
		if _, err := p.need(RROUND, "to close parameter list"); err != nil {
			return nil, err
		}
	}

	if _, err := p.need(MAPSTO, "after parameter list"); err != nil {
		return nil, err
	}
	body, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return &FunLit{Token: start, Params: params, Body: body}, nil
}

func (p *parser) finishCall(callee Expr) (Expr, error) {
	open := p.peek()
	p.i++ // '('

	var args []Expr
	if p.peek().Type != RROUND {
		for {
			a, err := p.expr(0)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "to close argument list"); err != nil {
		return nil, err
	}
	return &Call{Token: open, Callee: callee, Args: args}, nil
}

func (p *parser) ifExpr() (Expr, error) {
	start := p.peek()
	p.i++ // 'if'

	cond, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(THEN, "after condition"); err != nil {
		return nil, err
	}
	thenE, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ELSE, "after then-branch"); err != nil {
		return nil, err
	}
	elseE, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	return &If{Token: start, Cond: cond, Then: thenE, Else: elseE}, nil
}
