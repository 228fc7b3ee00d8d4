package types

import (
	"fmt"
	"strings"
)

// ErrorCode represents a golox error code.
type ErrorCode string

// Error codes, grouped by the stage that raises them.
const (
	// S01xx: Scanner errors
	ErrStringNotClosed ErrorCode = "S0101"
	ErrUnexpectedChar  ErrorCode = "S0102"
	ErrInvalidEncoding ErrorCode = "S0103"

	// S02xx: Parser/Syntax errors
	ErrExpectedToken      ErrorCode = "S0201"
	ErrExpectedExpression ErrorCode = "S0202"
	ErrInvalidAssignment  ErrorCode = "S0203"
	ErrTooManyArguments   ErrorCode = "S0204"
	ErrTooManyParameters  ErrorCode = "S0205"
	ErrNestingTooDeep     ErrorCode = "S0206"

	// R03xx: Resolver errors
	ErrSelfInitializer   ErrorCode = "R0301"
	ErrDuplicateLocal    ErrorCode = "R0302"
	ErrTopLevelReturn    ErrorCode = "R0303"
	ErrInitializerReturn ErrorCode = "R0304"
	ErrThisOutsideClass  ErrorCode = "R0305"
	ErrSuperOutsideClass ErrorCode = "R0306"
	ErrSuperNoSuperclass ErrorCode = "R0307"
	ErrSelfInheritance   ErrorCode = "R0308"

	// D1xxx: Runtime errors
	ErrOperandNumber     ErrorCode = "D1001"
	ErrOperandsNumbers   ErrorCode = "D1002"
	ErrOperandsAdd       ErrorCode = "D1003"
	ErrInvokeNonFunction ErrorCode = "D1004"
	ErrArity             ErrorCode = "D1005"
	ErrUndefinedVariable ErrorCode = "D1006"
	ErrUndefinedProperty ErrorCode = "D1007"
	ErrNotInstance       ErrorCode = "D1008"
	ErrSuperclassType    ErrorCode = "D1009"
	ErrStackOverflow     ErrorCode = "D1010"
	ErrNativeCall        ErrorCode = "D1011"
)

// Error represents a structured diagnostic reported by the lexer, the parser
// or the resolver.
type Error struct {
	Code    ErrorCode
	Message string
	Line    uint
	Where   string // " at 'x'", " at end" or empty
	Err     error
}

// NewError creates a new diagnostic.
func NewError(code ErrorCode, message string, line uint) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Line:    line,
	}
}

// NewTokenError creates a diagnostic located at tok.
func NewTokenError(code ErrorCode, tok Token, message string) *Error {
	e := NewError(code, message, tok.Line)
	if tok.Kind == TokenEOF {
		e.Where = " at end"
	} else {
		e.Where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}
	return e
}

// Error implements the error interface using the classic
// "[line L] Error WHERE: MESSAGE" layout.
func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// ErrorList collects the diagnostics of a compilation. Compilation keeps
// going after most errors, so a single run may report several.
type ErrorList []*Error

// Add appends a diagnostic.
func (l *ErrorList) Add(err *Error) {
	*l = append(*l, err)
}

// Append appends every diagnostic of other.
func (l *ErrorList) Append(other ErrorList) {
	*l = append(*l, other...)
}

// Err returns l as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface. Each diagnostic is on its own line.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}
