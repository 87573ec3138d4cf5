/*
Package runerr defines norn's runtime error taxonomy.  Runtime failures are
ordinary error values carrying an error class (ReferenceError, TypeError) and
a code identifying the exact condition.  Messages are rendered from a
per-code format table so their structure stays stable across the engine.
*/
package runerr

import (
	"errors"
	"fmt"
)

// Class is the error class reported to scripts.
type Class uint8

// Possible Class values.
const (
	ClassInvalid Class = iota
	ReferenceError
	TypeError
)

var classStrings = []string{
	ClassInvalid:   "InvalidError",
	ReferenceError: "ReferenceError",
	TypeError:      "TypeError",
}

func (c Class) String() string {
	if int(c) >= len(classStrings) {
		return "InvalidError"
	}
	return classStrings[c]
}

// Code identifies a runtime error condition.
type Code uint8

// Possible Code values.
const (
	CodeInvalid Code = iota
	// ReferenceUnresolvable is a read through an unresolvable reference
	// that carries no name.
	ReferenceUnresolvable
	// UnknownIdentifier is a read of a name with no binding.
	UnknownIdentifier
	// UnsupportedDeleteSuperProperty is a delete through a super reference.
	UnsupportedDeleteSuperProperty
	// ReferenceNullishSetProperty is a strict write through a nullish base
	// or a strict write the property store rejected.
	ReferenceNullishSetProperty
	// ReferencePrimitiveSetProperty is a strict write through a non-object
	// primitive base.
	ReferencePrimitiveSetProperty
	// InvalidAssignToConst is a write to a const binding.
	InvalidAssignToConst
	// DescWriteNonWritable is a strict write the binding store rejected.
	DescWriteNonWritable
	// ReferenceNullishDeleteProperty is a strict delete the property store
	// rejected.
	ReferenceNullishDeleteProperty
	// ToObjectNullish is an object coercion of null or undefined.
	ToObjectNullish
)

// message table entries pair each code with its class and format string.
// The argument order encoded here is part of the observable contract, the
// offending name always precedes the base description.
var messages = []struct {
	class  Class
	format string
}{
	CodeInvalid:                    {ClassInvalid, "invalid error"},
	ReferenceUnresolvable:          {ReferenceError, "Unresolvable reference"},
	UnknownIdentifier:              {ReferenceError, "'%s' is not defined"},
	UnsupportedDeleteSuperProperty: {ReferenceError, "Can't delete a property on 'super'"},
	ReferenceNullishSetProperty:    {TypeError, "Cannot set property '%s' of %s"},
	ReferencePrimitiveSetProperty:  {TypeError, "Cannot set property '%s' on %s '%s'"},
	InvalidAssignToConst:           {TypeError, "Invalid assignment to const variable"},
	DescWriteNonWritable:           {TypeError, "Cannot write to non-writable property '%s'"},
	ReferenceNullishDeleteProperty: {TypeError, "Cannot delete property '%s' of %s"},
	ToObjectNullish:                {TypeError, "ToObject on null or undefined"},
}

// Class returns the error class associated with c.
func (c Code) Class() Class {
	if int(c) >= len(messages) {
		return ClassInvalid
	}
	return messages[c].class
}

// E is a norn runtime error.
type E struct {
	code Code
	msg  string
}

// New creates a runtime error for code.  The args fill the code's message
// format in the documented order.
func New(code Code, args ...interface{}) *E {
	format := messages[CodeInvalid].format
	if int(code) < len(messages) {
		format = messages[code].format
	}
	return &E{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

// Code returns the error's condition code.
func (e *E) Code() Code {
	return e.code
}

// Class returns the error's class.
func (e *E) Class() Class {
	return e.code.Class()
}

// Message returns the error's message without the class prefix.
func (e *E) Message() string {
	return e.msg
}

// Error implements the error interface.
func (e *E) Error() string {
	return e.Class().String() + ": " + e.msg
}

// CodeOf returns the condition code of err.  CodeOf returns CodeInvalid if
// err is not a runtime error.
func CodeOf(err error) Code {
	var e *E
	if errors.As(err, &e) {
		return e.code
	}
	return CodeInvalid
}

// ClassOf returns the error class of err.  ClassOf returns ClassInvalid if
// err is not a runtime error.
func ClassOf(err error) Class {
	var e *E
	if errors.As(err, &e) {
		return e.Class()
	}
	return ClassInvalid
}
