// value.go — runtime value model and lexical environments.
package mathfp

import (
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines which type Value.Data carries.
type ValueTag int

const (
	VTNum ValueTag = iota // float64
	VTFun                 // *Fun (closure)
)

// Value is the tagged runtime carrier. Values are immutable once
// constructed; a function value's captured environment is shared by
// reference, never copied.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Num constructs a number value.
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }

// FunVal constructs a function value.
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// AsNum returns the float64 payload; valid only when Tag == VTNum.
func (v Value) AsNum() float64 { return v.Data.(float64) }

// AsFun returns the closure payload; valid only when Tag == VTFun.
func (v Value) AsFun() *Fun { return v.Data.(*Fun) }

// String renders the value's textual form as printed by the REPL.
// Numbers use the shortest round-trip decimal form.
func (v Value) String() string {
	switch v.Tag {
	case VTNum:
		return strconv.FormatFloat(v.AsNum(), 'g', -1, 64)
	case VTFun:
		f := v.AsFun()
		return "<fun(" + strings.Join(f.Params, ", ") + ")>"
	default:
		return "<unknown>"
	}
}

// Fun is a closure: parameter names, the body AST, and a reference to the
// environment in effect where the literal was evaluated. Because Env is
// captured by reference, a closure observes bindings added to that
// environment after capture; that is what lets
// `f := n |-> ... f(n-1) ...` resolve its own name.
type Fun struct {
	Params []string
	Body   Expr
	Env    *Env
}

// Env is one scope in the lexical chain: a name→value table plus an
// optional parent. Lookup walks outward to the root; definition writes the
// current scope only, never an ancestor.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates an environment chained to parent (nil for the root).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define inserts or overwrites name in this scope.
func (e *Env) Define(name string, v Value) { e.table[name] = v }

// Get resolves name in the nearest enclosing scope, walking outward.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
