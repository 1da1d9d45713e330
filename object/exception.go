package object

import "fmt"

// ExceptionKind enumerates the typed exception subkinds the object system
// raises internally; user code may also throw a plain Exception with
// KindUser.
type ExceptionKind byte

const (
	KindUser ExceptionKind = iota
	KindSyntax
	KindType
	KindValue
	KindKey
	KindIndex
	KindAttribute
	KindZeroDivision
	KindIterExhausted
	KindAssertion
	KindImport
	KindName
)

func (k ExceptionKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindType:
		return "TypeError"
	case KindValue:
		return "ValueError"
	case KindKey:
		return "KeyError"
	case KindIndex:
		return "IndexError"
	case KindAttribute:
		return "AttributeError"
	case KindZeroDivision:
		return "ZeroDivisionError"
	case KindIterExhausted:
		return "OutOfIterError"
	case KindAssertion:
		return "AssertionError"
	case KindImport:
		return "ImportError"
	case KindName:
		return "NameError"
	default:
		return "Error"
	}
}

// Exception is the runtime's thrown-value type. It is itself a Value so
// that caught exceptions can be bound to a catch-clause variable and
// inspected from Nilan code.
type Exception struct {
	RefCounted
	Kind    ExceptionKind
	Message string
	// Payload carries a user-thrown arbitrary Value when Kind is KindUser
	// and the throw statement's operand was not already an Exception.
	Payload Value
	// Frames records the call stack at the point of the throw, innermost
	// first, for traceback formatting.
	Frames []string
}

var exceptionType = &Type{Name: "Exception"}

func (e *Exception) Type() *Type { return exceptionType }

func (e *Exception) Error() string {
	if e == nil {
		return "<nil exception>"
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewException builds an Exception of the given kind with a formatted
// message, the constructor every builtin slot raises through.
func NewException(kind ExceptionKind, format string, args ...any) *Exception {
	return &Exception{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsIterExhausted reports whether err is the sentinel raised by a Next
// slot when an iterator has no more elements, the signal ForStmt
// execution watches for to end its loop instead of propagating an error.
func IsIterExhausted(err *Exception) bool {
	return err != nil && err.Kind == KindIterExhausted
}
