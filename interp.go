// interp.go — the tree-walking evaluator.
//
// Eval walks the AST directly against an environment chain; there is no
// bytecode or compilation step. Every evaluation step returns an explicit
// (Value, error) pair that each caller inspects and forwards; there is no
// panic/recover control flow. A runtime failure therefore aborts exactly
// the current statement while bindings committed by earlier statements
// stay in place.
//
// Semantics:
//   - Binding evaluates its value in the current environment, then defines
//     the name in the current scope and yields the value.
//   - A function literal captures the current environment by reference.
//     Together with the binding order above, that makes direct recursion
//     work: the closure sees the name its own binding is about to define.
//   - Calls are eager and left-to-right; each call gets a fresh child of
//     the closure's captured environment. Arity must match exactly.
//   - Arithmetic is IEEE double-precision; comparisons yield 1 or 0.
//     Division or modulo by exactly zero is a runtime error, never
//     NaN/Infinity propagation.
//   - Call depth is bounded by a counter; exceeding it is a reported
//     "stack depth exceeded" runtime error rather than a native stack
//     crash.
package mathfp

import (
	"fmt"
	"math"
)

// DefaultMaxDepth bounds recursion through Call evaluation. Each language
// call costs several native frames, so the default stays well under the
// goroutine stack limit.
const DefaultMaxDepth = 5000

// Interpreter evaluates AST nodes. It carries no program state besides the
// call-depth counter; environments are threaded through Eval explicitly so
// independent sessions never interfere.
type Interpreter struct {
	MaxDepth int // call-depth limit; DefaultMaxDepth when zero
	depth    int
}

// NewInterpreter returns an evaluator with the default depth limit.
func NewInterpreter() *Interpreter {
	return &Interpreter{MaxDepth: DefaultMaxDepth}
}

func rtErrAt(node Expr, format string, args ...interface{}) error {
	line, col := node.Pos()
	return &Diagnostic{Kind: DiagRuntime, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

// Eval evaluates one AST node against env, returning a value or a
// *Diagnostic runtime error.
func (ip *Interpreter) Eval(node Expr, env *Env) (Value, error) {
	switch n := node.(type) {
	case *Program:
		// Statements share one environment; the last value wins. An error
		// stops the walk, keeping bindings already committed. An empty
		// program yields 0; the session filters empty inputs before this.
		var last Value
		if len(n.Statements) == 0 {
			return Num(0), nil
		}
		for _, stmt := range n.Statements {
			v, err := ip.Eval(stmt, env)
			if err != nil {
				return Value{}, err
			}
			last = v
		}
		return last, nil

	case *NumberLit:
		return Num(n.Value), nil

	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return Value{}, rtErrAt(n, "undefined identifier %q", n.Name)
		}
		return v, nil

	case *Binding:
		v, err := ip.Eval(n.Value, env)
		if err != nil {
			return Value{}, err
		}
		env.Define(n.Name, v)
		return v, nil

	case *FunLit:
		return FunVal(&Fun{Params: n.Params, Body: n.Body, Env: env}), nil

	case *Grouping:
		return ip.Eval(n.Inner, env)

	case *Call:
		return ip.evalCall(n, env)

	case *Unary:
		operand, err := ip.Eval(n.Operand, env)
		if err != nil {
			return Value{}, err
		}
		if operand.Tag != VTNum {
			return Value{}, rtErrAt(n, "type mismatch: operator '-' needs a number, got %s", operand)
		}
		return Num(-operand.AsNum()), nil

	case *Binary:
		return ip.evalBinary(n, env)

	case *If:
		cond, err := ip.Eval(n.Cond, env)
		if err != nil {
			return Value{}, err
		}
		if cond.Tag != VTNum {
			return Value{}, rtErrAt(n.Cond, "type mismatch: condition must be a number, got %s", cond)
		}
		if cond.AsNum() != 0 {
			return ip.Eval(n.Then, env)
		}
		return ip.Eval(n.Else, env)
	}

	return Value{}, rtErrAt(node, "internal: unhandled AST node %T", node)
}

func (ip *Interpreter) evalCall(n *Call, env *Env) (Value, error) {
	callee, err := ip.Eval(n.Callee, env)
	if err != nil {
		return Value{}, err
	}
	if callee.Tag != VTFun {
		return Value{}, rtErrAt(n.Callee, "not callable: %s", callee)
	}
	fn := callee.AsFun()

	// Arguments are evaluated left to right, strictly, before invocation.
	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := ip.Eval(a, env)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	if len(args) != len(fn.Params) {
		return Value{}, rtErrAt(n, "arity mismatch: function takes %d argument(s), got %d",
			len(fn.Params), len(args))
	}

	limit := ip.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if ip.depth >= limit {
		return Value{}, rtErrAt(n, "stack depth exceeded")
	}
	ip.depth++
	defer func() { ip.depth-- }()

	frame := NewEnv(fn.Env)
	for i, name := range fn.Params {
		frame.Define(name, args[i])
	}
	return ip.Eval(fn.Body, frame)
}

func (ip *Interpreter) evalBinary(n *Binary, env *Env) (Value, error) {
	lv, err := ip.Eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	rv, err := ip.Eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	if lv.Tag != VTNum || rv.Tag != VTNum {
		return Value{}, rtErrAt(n, "type mismatch: operator %s needs numbers, got %s and %s",
			n.Op.Lexeme, lv, rv)
	}
	l, r := lv.AsNum(), rv.AsNum()

	switch n.Op.Type {
	case PLUS:
		return Num(l + r), nil
	case MINUS:
		return Num(l - r), nil
	case MULT:
		return Num(l * r), nil
	case DIV:
		if r == 0 {
			return Value{}, rtErrAt(n, "division by zero")
		}
		return Num(l / r), nil
	case MOD:
		if r == 0 {
			return Value{}, rtErrAt(n, "division by zero")
		}
		return Num(math.Mod(l, r)), nil
	case LESS:
		return boolNum(l < r), nil
	case LESS_EQ:
		return boolNum(l <= r), nil
	case GREATER:
		return boolNum(l > r), nil
	case GREATER_EQ:
		return boolNum(l >= r), nil
	case EQ:
		return boolNum(l == r), nil
	case NEQ:
		return boolNum(l != r), nil
	}
	return Value{}, rtErrAt(n, "internal: unhandled operator %s", n.Op.Lexeme)
}

// boolNum maps a comparison result onto the numeric value model: 1 for
// true, 0 for false.
func boolNum(b bool) Value {
	if b {
		return Num(1)
	}
	return Num(0)
}
