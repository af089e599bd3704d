// session_test.go
package mathfp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func sessEval(t *testing.T, s *Session, src string) Value {
	t.Helper()
	v, ok, err := s.Eval(src)
	require.NoError(t, err, "input: %s", src)
	require.True(t, ok, "input: %s", src)
	return v
}

func TestSession_BindingsPersistAcrossInputs(t *testing.T) {
	s := NewSession()
	require.Equal(t, float64(50), sessEval(t, s, "x := 10; x * 5").AsNum())
	require.Equal(t, float64(10), sessEval(t, s, "x").AsNum())
}

func TestSession_ClosuresSurviveAcrossInputs(t *testing.T) {
	s := NewSession()
	sessEval(t, s, "make_adder := n |-> (x |-> x + n)")
	sessEval(t, s, "add5 := make_adder(5)")
	require.Equal(t, float64(8), sessEval(t, s, "add5(3)").AsNum())
}

func TestSession_ParseFailureLeavesStateUntouched(t *testing.T) {
	s := NewSession()
	sessEval(t, s, "x := 1")

	_, ok, err := s.Eval("x := ;")
	require.Error(t, err)
	require.False(t, ok)
	var d *Diagnostic
	require.True(t, errors.As(err, &d))
	require.Equal(t, DiagParse, d.Kind)

	require.Equal(t, float64(1), sessEval(t, s, "x").AsNum())
}

func TestSession_RuntimeFailureKeepsEarlierBindingsOfSameInput(t *testing.T) {
	s := NewSession()
	_, _, err := s.Eval("a := 1; b := zz; c := 2")
	require.Error(t, err)

	require.Equal(t, float64(1), sessEval(t, s, "a").AsNum())

	_, _, err = s.Eval("c")
	require.Error(t, err, "c never ran, so it is unbound")
}

func TestSession_SessionContinuesAfterRuntimeError(t *testing.T) {
	s := NewSession()
	_, _, err := s.Eval("1 / 0")
	require.Error(t, err)
	require.Equal(t, float64(4), sessEval(t, s, "2 + 2").AsNum())
}

func TestSession_EmptyInputs(t *testing.T) {
	s := NewSession()
	for _, src := range []string{"", "   ", "# only a comment", ";;"} {
		_, ok, err := s.Eval(src)
		require.NoError(t, err, "input: %q", src)
		require.False(t, ok, "input: %q", src)
	}
}

func TestSession_IndependentSessionsDoNotInterfere(t *testing.T) {
	a := NewSession()
	b := NewSession()
	sessEval(t, a, "x := 1")

	_, _, err := b.Eval("x")
	require.Error(t, err, "b must not see a's bindings")
}

func TestSession_RunScript(t *testing.T) {
	s := NewSession()
	src := `
# factorial
fact := n |-> if n < 2 then 1 else n * fact(n - 1);
fact(6)
`
	v, ok, err := s.RunScript(src)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, float64(720), v.AsNum())
}

func TestSession_SetMaxDepth(t *testing.T) {
	s := NewSession()
	s.SetMaxDepth(10)
	_, _, err := s.Eval("loop := x |-> loop(x); loop(0)")
	var d *Diagnostic
	require.True(t, errors.As(err, &d))
	require.Equal(t, "stack depth exceeded", d.Msg)
}
