// Package engine implements the step-wise bubble sort simulation and grading core.
package engine

import "fmt"

// Error codes reported by the engine.
const (
	CodeIndexOutOfRange = "INDEX_OUT_OF_RANGE"
	CodeInvalidState    = "INVALID_STATE"
)

// Error is a coded engine error. Two errors match under errors.Is when their codes match.
type Error struct {
	Code    string
	Message string
}

var (
	// ErrIndexOutOfRange marks an array access outside its bounds.
	ErrIndexOutOfRange = &Error{Code: CodeIndexOutOfRange, Message: "index out of range"}
	// ErrInvalidState marks an operation that is not allowed in the current state.
	ErrInvalidState = &Error{Code: CodeInvalidState, Message: "invalid state"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func indexError(i, size int) error {
	return &Error{Code: CodeIndexOutOfRange, Message: fmt.Sprintf("index %d outside [0, %d)", i, size)}
}

func stateError(format string, args ...any) error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}
