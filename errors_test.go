// errors_test.go
package mathfp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnostic_ErrorFormat(t *testing.T) {
	_, _, err := NewSession().Eval("1 / 0")
	require.EqualError(t, err, "runtime error: division by zero at 1:3")

	_, err = Parse("x := ;")
	require.EqualError(t, err, "parse error: expected expression, found ';' at 1:6")

	_, err = NewLexer("€").Scan()
	var d *Diagnostic
	require.True(t, errors.As(err, &d))
	require.Equal(t, DiagLex, d.Kind)
	require.True(t, strings.HasPrefix(err.Error(), "lex error: invalid character"))
}

func TestWrapErrorWithSource_Snippet(t *testing.T) {
	src := "x := 1;\ny := ;\nz := 3"
	_, err := Parse(src)
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	require.Contains(t, msg, "parse error: expected expression, found ';' at 2:6")
	require.Contains(t, msg, "   1 | x := 1;")
	require.Contains(t, msg, "   2 | y := ;")
	require.Contains(t, msg, "     |      ^")
	require.Contains(t, msg, "   3 | z := 3")
}

func TestWrapErrorWithSource_PassesOtherErrorsThrough(t *testing.T) {
	plain := fmt.Errorf("boom")
	require.Equal(t, plain, WrapErrorWithSource(plain, "src"))
}

func TestWrapErrorWithSource_ClampsOutOfRangePositions(t *testing.T) {
	d := &Diagnostic{Kind: DiagRuntime, Msg: "x", Line: 99, Col: 99}
	msg := WrapErrorWithSource(d, "one line").Error()
	require.Contains(t, msg, "runtime error: x at 99:99")
}
