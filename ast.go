// ast.go — AST node types for mathfp.
//
// Everything in mathfp is an expression, so the tree has a single Expr
// interface rather than a statement/expression split. Every node stores the
// token at which it starts; Pos() feeds diagnostics. String() renders a
// compact form used in debug output and parser tests, not pretty-printing.
package mathfp

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is the interface implemented by every AST node.
type Expr interface {
	// Pos returns the 1-based line and column of the node's leading token.
	Pos() (line, col int)
	String() string
}

// Program is the root node: zero or more ';'-separated top-level
// statements. It evaluates to the value of its last statement.
type Program struct {
	Statements []Expr
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 1
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Token Token
	Value float64
}

func (n *NumberLit) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *NumberLit) String() string  { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// Ident is a reference to a bound name.
type Ident struct {
	Token Token
	Name  string
}

func (n *Ident) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *Ident) String() string  { return n.Name }

// Binding is `name := expr`. It is itself an expression whose value is the
// bound value, so bindings chain: x := y := 5.
type Binding struct {
	Token Token // the identifier token
	Name  string
	Value Expr
}

func (n *Binding) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *Binding) String() string  { return fmt.Sprintf("%s := %s", n.Name, n.Value) }

// FunLit is a function literal: `x |-> body` or `(a, b) |-> body`.
type FunLit struct {
	Token  Token // first token of the parameter list
	Params []string
	Body   Expr
}

func (n *FunLit) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *FunLit) String() string {
	if len(n.Params) == 1 {
		return fmt.Sprintf("%s |-> %s", n.Params[0], n.Body)
	}
	return fmt.Sprintf("(%s) |-> %s", strings.Join(n.Params, ", "), n.Body)
}

// Call is `callee(arg, ...)`. Application always uses explicit call
// parentheses; there is no bare juxtaposition.
type Call struct {
	Token  Token // the '(' token of the argument list
	Callee Expr
	Args   []Expr
}

func (n *Call) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(parts, ", "))
}

// Binary is a binary operator application. Op is the operator token; its
// position is the one cited by type-mismatch diagnostics.
type Binary struct {
	Op    Token
	Left  Expr
	Right Expr
}

func (n *Binary) Pos() (int, int) { return n.Op.Line, n.Op.Col }
func (n *Binary) String() string  { return fmt.Sprintf("(%s %s %s)", n.Left, n.Op.Lexeme, n.Right) }

// Unary is prefix `-operand`.
type Unary struct {
	Op      Token
	Operand Expr
}

func (n *Unary) Pos() (int, int) { return n.Op.Line, n.Op.Col }
func (n *Unary) String() string  { return fmt.Sprintf("(%s%s)", n.Op.Lexeme, n.Operand) }

// Grouping is a parenthesized expression. Kept as its own node so the
// printed form round-trips and positions stay on the '('.
type Grouping struct {
	Token Token // the '(' token
	Inner Expr
}

func (n *Grouping) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *Grouping) String() string  { return fmt.Sprintf("(%s)", n.Inner) }

// If is `if cond then a else b`; the else branch is mandatory.
type If struct {
	Token Token // the 'if' token
	Cond  Expr
	Then  Expr
	Else  Expr
}

func (n *If) Pos() (int, int) { return n.Token.Line, n.Token.Col }
func (n *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
}
