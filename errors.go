// errors.go — the shared diagnostic type and caret-snippet rendering.
//
// Scanner, parser, and evaluator all fail with the same *Diagnostic shape;
// callers tell the origin apart only via Kind. A Diagnostic always carries
// the 1-based line/column of the token or AST node most directly
// responsible, never a placeholder position.
//
// WrapErrorWithSource upgrades a *Diagnostic into a readable, Python-style
// snippet with a caret pointing at the offending column:
//
//	parse error at 1:6: expected expression, found ';'
//
//	   1 | x := ;
//	     |      ^
//
// The snippet shows up to one line of context before and after the error,
// numbers the lines, and places the caret under the 1-based column. Any
// other error is returned unchanged. The renderer is used by the CLI; the
// library surface returns plain Diagnostics.
package mathfp

import (
	"fmt"
	"strings"
)

// DiagKind classifies a Diagnostic by the stage that produced it.
type DiagKind int

const (
	DiagLex     DiagKind = iota // invalid character, unterminated numeric literal
	DiagParse                   // unexpected/missing token, malformed binding or function syntax
	DiagRuntime                 // undefined identifier, type mismatch, division by zero, ...
)

// String returns the kind label used in rendered messages.
func (k DiagKind) String() string {
	switch k {
	case DiagLex:
		return "lex error"
	case DiagParse:
		return "parse error"
	case DiagRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// Diagnostic is the uniform structured error produced by the lexer, parser,
// and evaluator. It is immutable once constructed and is surfaced unchanged
// to the evaluation session; no layer downgrades it to a default value.
type Diagnostic struct {
	Kind DiagKind
	Msg  string
	Line int // 1-based
	Col  int // 1-based
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", d.Kind, d.Msg, d.Line, d.Col)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. Non-Diagnostic errors pass through as-is.
func WrapErrorWithSource(err error, src string) error {
	d, ok := err.(*Diagnostic)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, d))
}

// prettyErrorString builds the snippet with a header and a caret. It shows
// at most one previous and one next line when available. Coordinates are
// clamped to the source bounds so rendering never panics.
func prettyErrorString(src string, d *Diagnostic) string {
	lines := strings.Split(src, "\n")
	line, col := d.Line, d.Col
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s at %d:%d\n\n", d.Kind, d.Msg, d.Line, d.Col)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return strings.TrimRight(b.String(), "\n")
}
