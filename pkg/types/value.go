package types

import (
	"fmt"
	"strconv"
)

// ValueKind identifies the variant of a Value.
type ValueKind uint8

// Value variants. The set is closed: Callable and Instance values are
// provided by the evaluator package, everything else lives here.
const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindCallable
	KindInstance
)

// String returns the variant name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindCallable:
		return "callable"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// Value is a runtime or literal value.
//
// Nil, Bool, Number and String are the lexical values carried by tokens and
// literal nodes. Callables and instances implement Value in the evaluator
// package and report KindCallable and KindInstance.
type Value interface {
	Kind() ValueKind
	String() string
}

// Nil is the nil value.
type Nil struct{}

// NilValue is the singleton nil value.
var NilValue Value = Nil{}

// Bool is a boolean value.
type Bool bool

// Number is a double precision number.
type Number float64

// String is an immutable string value.
type String string

func (Nil) Kind() ValueKind    { return KindNil }
func (Bool) Kind() ValueKind   { return KindBool }
func (Number) Kind() ValueKind { return KindNumber }
func (String) Kind() ValueKind { return KindString }

func (Nil) String() string { return "nil" }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String formats n in the shortest form that round-trips; integral values
// print without a fractional part.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (s String) String() string { return string(s) }

// Truthy reports whether v counts as true in a condition.
// nil and false are falsey, everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(x)
	default:
		return true
	}
}

// Equal compares two values. nil equals only nil; values of different kinds
// are never equal; callables and instances compare by identity.
func Equal(a, b Value) bool {
	if a == nil {
		a = NilValue
	}
	if b == nil {
		b = NilValue
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == KindNil {
		return true
	}
	// Runtime objects are pointers, so this is identity for them.
	return a == b
}

// Stringify renders v the way print shows it.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
