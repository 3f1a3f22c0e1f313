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
	"regexp"
	"strconv"
	"strings"
)

/*
Kind is the syntactic category of a source fragment.
*/
type Kind int

/*
Available fragment kinds. Variable and Function are reference kinds - they
mean that the fragment names a binding in scope.
*/
const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindOperation
	KindVariable
	KindFunction
)

var kindNames = map[Kind]string{
	KindString:    "String",
	KindInteger:   "Integer",
	KindFloat:     "Float",
	KindOperation: "Operation",
	KindVariable:  "Variable",
	KindFunction:  "Function",
}

/*
String returns a human-readable name of this kind.
*/
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

/*
operatorChars are the characters which mark a fragment as an operation.
*/
const operatorChars = "+*/-^%"

/*
decimalFloat matches a locale independent decimal float literal.
*/
var decimalFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

/*
isStringLiteral checks if a fragment is enclosed in single or double quotes.
*/
func isStringLiteral(v string) bool {
	if len(v) < 2 {
		return false
	}

	return (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"')
}

/*
isIntegerLiteral checks if a fragment is a signed decimal 32-bit integer.
Larger integers are float literals.
*/
func isIntegerLiteral(v string) bool {
	_, err := strconv.ParseInt(v, 10, 32)
	return err == nil
}

/*
isFloatLiteral checks if a fragment is a decimal floating point number.
*/
func isFloatLiteral(v string) bool {
	if !decimalFloat.MatchString(v) {
		return false
	}

	_, err := parseNumber(v)
	return err == nil
}

/*
functionName returns the prefix of a fragment up to the first opening bracket.
*/
func functionName(v string) string {
	if i := strings.Index(v, "("); i != -1 {
		return v[:i]
	}
	return v
}

/*
Classify returns the kind of a given fragment. The checks are done in a fixed
order and the first match wins:

String literal, Integer literal, Float literal, known Variable, Operation,
known Function.

A fragment which matches none of these produces an UnknownType error.
*/
func (i *Interpreter) Classify(v string) (Kind, error) {

	if isStringLiteral(v) {
		return KindString, nil

	} else if isIntegerLiteral(v) {
		return KindInteger, nil

	} else if isFloatLiteral(v) {
		return KindFloat, nil

	} else if i.Env.HasVar(v) {
		return KindVariable, nil

	} else if strings.ContainsAny(v, operatorChars) {
		return KindOperation, nil

	} else if i.Env.HasFunc(functionName(v)) {
		return KindFunction, nil
	}

	return 0, i.newRuntimeError(ErrUnknownType, v)
}

/*
resolve classifies a fragment and substitutes variable references with the
bound value and kind. The returned kind is never KindVariable.
*/
func (i *Interpreter) resolve(v string) (string, Kind, error) {
	kind, err := i.Classify(v)

	if err == nil && kind == KindVariable {
		variable, _ := i.Env.GetVar(v)
		return variable.Value, variable.Kind, nil
	}

	return v, kind, err
}

/*
unquote removes one leading and one trailing character from a string literal.
*/
func unquote(v string) string {
	return v[1 : len(v)-1]
}
