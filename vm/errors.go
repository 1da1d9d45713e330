package vm

import (
	"fmt"

	"nilan/object"
)

// RuntimeError wraps an uncaught *object.Exception that escaped every
// frame on the call stack, carrying its traceback along for callers that
// want to report it without re-deriving it from the Exception alone.
type RuntimeError struct {
	Message    string
	Exc        *object.Exception
	Traceback  []string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}

func newRuntimeError(exc *object.Exception, traceback []string) *RuntimeError {
	return &RuntimeError{Message: exc.Error(), Exc: exc, Traceback: traceback}
}
