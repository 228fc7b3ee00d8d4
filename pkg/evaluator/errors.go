package evaluator

import (
	"fmt"

	"github.com/sandrolain/golox/pkg/types"
)

// RuntimeError aborts a run. It carries the token nearest to the failure so
// the line can be reported.
type RuntimeError struct {
	Code    types.ErrorCode
	Token   types.Token
	Message string
}

func newRuntimeError(code types.ErrorCode, tok types.Token, message string) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Token:   tok,
		Message: message,
	}
}

// Error implements the error interface: the message followed by the line.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Line returns the source line of the failure.
func (e *RuntimeError) Line() uint {
	return e.Token.Line
}
