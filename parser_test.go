// parser_test.go
package mathfp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err, "source: %s", src)
	return prog
}

func parseErr(t *testing.T, src string) *Diagnostic {
	t.Helper()
	_, err := Parse(src)
	require.Error(t, err, "source: %s", src)
	var d *Diagnostic
	require.True(t, errors.As(err, &d), "want *Diagnostic, got %T", err)
	require.Equal(t, DiagParse, d.Kind)
	return d
}

// TestParse_Forms checks the parenthesized String() rendering, which pins
// down precedence and associativity.
func TestParse_Forms(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"(2 + 3) * 4", "(((2 + 3)) * 4)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"2 * 3 % 2", "((2 * 3) % 2)"},
		{"-2 * 3", "((-2) * 3)"},
		{"1 + 2 < 2 * 2", "((1 + 2) < (2 * 2))"},
		{"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		{"x := 10; x * 5", "x := 10; (x * 5)"},
		{"x := y := 5", "x := y := 5"},
		{"f := x |-> x * x", "f := x |-> (x * x)"},
		{"add := (a, b) |-> a + b", "add := (a, b) |-> (a + b)"},
		{"five := () |-> 5", "five := () |-> 5"},
		{"n |-> x |-> x + n", "n |-> x |-> (x + n)"},
		{"f(1, 2)", "f(1, 2)"},
		{"make_adder(5)(3)", "make_adder(5)(3)"},
		{"-f(2)", "(-f(2))"},
		{"5(1)", "5(1)"},
		{"if n < 2 then 1 else n * fact(n - 1)", "if (n < 2) then 1 else (n * fact((n - 1)))"},
		{"; ; x ;", "x"},
	}
	for _, tc := range cases {
		prog := parse(t, tc.src)
		require.Equal(t, tc.want, prog.String(), "source: %s", tc.src)
	}
}

func TestParse_FunLitBodyExtendsRight(t *testing.T) {
	// The body of a function literal is the whole following expression, so
	// a captured name participates in the body, not in an outer sum.
	prog := parse(t, "n |-> x + n")
	fn, ok := prog.Statements[0].(*FunLit)
	require.True(t, ok, "want *FunLit, got %T", prog.Statements[0])
	require.Equal(t, []string{"n"}, fn.Params)
	require.Equal(t, "(x + n)", fn.Body.String())
}

func TestParse_GroupedBinding(t *testing.T) {
	prog := parse(t, "(x := 2) + 1")
	require.Equal(t, "((x := 2) + 1)", prog.String())
}

func TestParse_Empty(t *testing.T) {
	prog := parse(t, "  # nothing here\n")
	require.Empty(t, prog.Statements)
}

func TestParse_MissingExpressionAfterBind(t *testing.T) {
	d := parseErr(t, "x := ;")
	require.Contains(t, d.Msg, "expected expression")
	require.Equal(t, 1, d.Line)
	require.Equal(t, 6, d.Col)
}

func TestParse_UnclosedGroup(t *testing.T) {
	d := parseErr(t, "(1 + 2")
	require.Contains(t, d.Msg, "expected ')'")
	require.Contains(t, d.Msg, "found end of input")
}

func TestParse_MissingSemicolon(t *testing.T) {
	d := parseErr(t, "1 2")
	require.Contains(t, d.Msg, "expected ';'")
	require.Equal(t, 3, d.Col)
}

func TestParse_MalformedFunction(t *testing.T) {
	// "(a, )" is not a parameter list, so the parser reads it as a group
	// and trips on the comma.
	d := parseErr(t, "(a, ) |-> a")
	require.Contains(t, d.Msg, "expected ')'")

	d = parseErr(t, "if 1 then 2")
	require.Contains(t, d.Msg, "expected 'else'")
}

func TestParse_NodePositions(t *testing.T) {
	prog := parse(t, "abc := 1 + 2")
	line, col := prog.Statements[0].Pos()
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	b := prog.Statements[0].(*Binding)
	line, col = b.Value.Pos()
	require.Equal(t, 10, col, "binary node position is its operator")
	require.Equal(t, 1, line)
}
