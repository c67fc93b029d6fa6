package simp

import "fmt"

// ErrorKind classifies the condition an Exception value reports, mirroring
// the small fixed set of error paths the evaluator and reader can take
// (see spec.md §7 Error Handling).
type ErrorKind uint8

const (
	// ErrIllegalExpression is raised for a malformed form: an operator
	// that is neither a builtin nor a closure, an improper argument or
	// parameter list, or a special form with the wrong shape.
	ErrIllegalExpression ErrorKind = iota
	// ErrIllegalType is raised when a builtin or an accessor receives an
	// argument of the wrong kind.
	ErrIllegalType
	// ErrArity is raised when a closure or builtin is called with the
	// wrong number of arguments.
	ErrArity
	// ErrUnbound is raised when a symbol has no binding reachable from
	// the current environment.
	ErrUnbound
	// ErrPort is raised on an I/O failure against a port.
	ErrPort
	// ErrOutOfMemory names an allocation failure. The heap itself never
	// raises it: Heap.alloc has no failure path.
	ErrOutOfMemory
	// ErrSyntax is raised by the reader on a malformed token or an
	// unbalanced delimiter.
	ErrSyntax
	// ErrUnexpectedEOF is raised by the reader when input ends in the
	// middle of a vector or string literal.
	ErrUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIllegalExpression:
		return "illegal-expression"
	case ErrIllegalType:
		return "illegal-type"
	case ErrArity:
		return "arity"
	case ErrUnbound:
		return "unbound"
	case ErrPort:
		return "port-error"
	case ErrOutOfMemory:
		return "out-of-memory"
	case ErrSyntax:
		return "syntax-error"
	case ErrUnexpectedEOF:
		return "unexpected-eof"
	default:
		return "error"
	}
}

// Exception is both a first-class heap value (so it can be held and
// inspected as data, e.g. by `exception?`) and a Go error (so it composes
// with ordinary Go control flow inside this package). Only realize builds
// one; no builtin catches or re-raises it. This double life is the idiomatic-Go
// stand-in for the C implementation's practice of threading a Simp
// exception object through every operation's return value; see spec.md
// §7 and Design Notes §9.
type Exception struct {
	val Value
}

// Error implements the error interface by rendering kind and message.
func (e *Exception) Error() string {
	ed := e.val.obj.data.(*exceptionData)
	if ed.message == "" {
		return ed.kind.String()
	}
	return fmt.Sprintf("%s: %s", ed.kind.String(), ed.message)
}

// Value exposes the underlying Exception heap value, for builtins that
// need to hand the condition back into the interpreter (e.g. a future
// `raise`/`guard` pair).
func (e *Exception) Value() Value { return e.val }

// MakeException allocates a new exception value on the heap.
func (h *Heap) MakeException(kind ErrorKind, message string, payload Value) Value {
	return h.alloc(KindException, &exceptionData{kind: kind, message: message, payload: payload})
}

// simpleError is the error the builtins, evaluator and reader raise
// through the new* helpers below; it needs no Heap. realize turns one
// into an Exception value once a heap is at hand.
type simpleError struct {
	kind    ErrorKind
	message string
}

func (e *simpleError) Error() string {
	if e.message == "" {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %s", e.kind.String(), e.message)
}

// Kind reports the ErrorKind of any error produced by this package,
// whether it is a *simpleError (raised before a heap was available,
// e.g. during argument validation) or a realized *Exception.
func Kind(err error) ErrorKind {
	switch e := err.(type) {
	case *simpleError:
		return e.kind
	case *Exception:
		k, _, _ := e.val.GetException()
		return k
	default:
		return ErrIllegalType
	}
}

func newIllegalExpression(format string, args ...any) error {
	return &simpleError{kind: ErrIllegalExpression, message: fmt.Sprintf(format, args...)}
}

func newIllegalType(format string, args ...any) error {
	return &simpleError{kind: ErrIllegalType, message: fmt.Sprintf(format, args...)}
}

func newArityError(format string, args ...any) error {
	return &simpleError{kind: ErrArity, message: fmt.Sprintf(format, args...)}
}

func newUnboundError(format string, args ...any) error {
	return &simpleError{kind: ErrUnbound, message: fmt.Sprintf(format, args...)}
}

func newPortError(format string, args ...any) error {
	return &simpleError{kind: ErrPort, message: fmt.Sprintf(format, args...)}
}

func newOutOfMemoryError(format string, args ...any) error {
	return &simpleError{kind: ErrOutOfMemory, message: fmt.Sprintf(format, args...)}
}

func newSyntaxError(format string, args ...any) error {
	return &simpleError{kind: ErrSyntax, message: fmt.Sprintf(format, args...)}
}

func newUnexpectedEOFError(format string, args ...any) error {
	return &simpleError{kind: ErrUnexpectedEOF, message: fmt.Sprintf(format, args...)}
}

// realize turns any error produced by this package into a first-class
// Exception value on h, so it can be stored, passed around and inspected
// from Simp code instead of only unwinding the Go call stack.
func realize(h *Heap, err error) *Exception {
	if ex, ok := err.(*Exception); ok {
		return ex
	}
	kind, message := ErrIllegalType, err.Error()
	if se, ok := err.(*simpleError); ok {
		kind, message = se.kind, se.message
	}
	return &Exception{val: h.MakeException(kind, message, Void())}
}
