// session.go — the evaluation session.
//
// A Session sequences multiple top-level inputs (REPL lines or a whole
// script) against one persistent root environment, created once and never
// replaced. The session is the sole layer that decides what a failure
// discards:
//
//   - A scan or parse failure discards only the failing input; bindings
//     committed by previous successful inputs are untouched.
//   - In interactive use (Eval), a runtime failure aborts the current input
//     only; bindings made by earlier statements of that same input survive,
//     since statements mutate the shared environment as they succeed.
//   - In batch use (RunScript), the first failure of any kind terminates
//     the run.
//
// Sessions are strictly single-threaded: one input is scanned, parsed, and
// evaluated to completion before the next is accepted.
package mathfp

// Session holds the interpreter and the mutable top-level environment
// shared by every input of one interactive or batch run. Independent
// sessions never share state.
type Session struct {
	interp *Interpreter
	global *Env
}

// NewSession creates a session with a fresh root environment.
func NewSession() *Session {
	return &Session{
		interp: NewInterpreter(),
		global: NewEnv(nil),
	}
}

// SetMaxDepth overrides the call-depth limit for this session.
func (s *Session) SetMaxDepth(n int) { s.interp.MaxDepth = n }

// Global exposes the session's root environment, mainly for embedding and
// tests.
func (s *Session) Global() *Env { return s.global }

// Eval runs one interactive input against the session environment. The
// returned bool is false when the input held no statements (blank or
// comment-only line), in which case the Value is meaningless.
func (s *Session) Eval(src string) (Value, bool, error) {
	prog, err := Parse(src)
	if err != nil {
		return Value{}, false, err
	}
	if len(prog.Statements) == 0 {
		return Value{}, false, nil
	}
	v, err := s.interp.Eval(prog, s.global)
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

// RunScript runs an entire script as one source unit in batch mode. The
// semantics are the same as Eval; the caller is expected to stop the
// session on error.
func (s *Session) RunScript(src string) (Value, bool, error) {
	return s.Eval(src)
}
