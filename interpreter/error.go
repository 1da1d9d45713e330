package interpreter

import (
	"fmt"
	"nilan/object"
)

// Defines the struct for all runtime errors in the tree-walking interpreter
type RuntimeError struct {
	Line    int32
	Column  int
	Message string
}

func CreateRuntimeError(line int32, column int, message string) RuntimeError {
	return RuntimeError{
		Line:    line,
		Column:  column,
		Message: message,
	}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 Nilan Runtime error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

// thrownError wraps a *object.Exception raised by `throw` or by a builtin
// dunder slot so it can travel up through Go's panic/recover the same way
// every other interpreter error does.
type thrownError struct {
	Exc *object.Exception
}

func (t thrownError) Error() string { return t.Exc.Error() }

// breakSignal/continueSignal/returnSignal are panicked by their matching
// statements and recovered by the nearest enclosing loop or function call,
// the same control-transfer idiom the teacher uses for errors.
type breakSignal struct{}
type continueSignal struct{}
type returnSignal struct{ Value object.Value }
