/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package interpreter

import (
	"errors"
	"fmt"
)

/*
newRuntimeError creates a new RuntimeError object.
*/
func (i *Interpreter) newRuntimeError(t error, d string) error {
	return &RuntimeError{i.name, t, d, 0}
}

/*
RuntimeError is a runtime related error
*/
type RuntimeError struct {
	Source string // Name of the interpreter which produced the error
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
	Line   int    // Line of the error (counting non-empty lines of the evaluated code)
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *RuntimeError) Error() string {
	var ret string

	if re.Detail != "" {
		ret = fmt.Sprintf("Minis error in %s: %v (%v)", re.Source, re.Type, re.Detail)
	} else {
		ret = fmt.Sprintf("Minis error in %s: %v", re.Source, re.Type)
	}

	if re.Line != 0 {
		return fmt.Sprintf("%s (Line:%d)", ret, re.Line)
	}

	return ret
}

/*
Unwrap returns the error type so errors.Is can be used on RuntimeErrors.
*/
func (re *RuntimeError) Unwrap() error {
	return re.Type
}

/*
Runtime related error types
*/
var (
	ErrUnrecognizedStatement = errors.New("Unrecognized statement")
	ErrInvalidSyntax         = errors.New("Invalid syntax")
	ErrMissingAssignment     = errors.New("Variable declared without value assignment")
	ErrUnknownName           = errors.New("Unknown name")
	ErrUnknownType           = errors.New("Unable to determine type")
	ErrBadLoopBounds         = errors.New("Loop bounds must be integers")
	ErrArityMismatch         = errors.New("Wrong number of parameters")
	ErrDivideByZero          = errors.New("Division by zero")
	ErrCannotCoerceToNumber  = errors.New("Value cannot be used as a number")
	ErrUnexpectedExpression  = errors.New("Unexpected expression")
	ErrStringPowerUndefined  = errors.New("Unable to calculate the power of a string")
	ErrCallDepthExceeded     = errors.New("Maximum function call depth exceeded")
)
