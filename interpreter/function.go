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
	"fmt"
	"strings"

	"devt.de/krotik/common/stringutil"
)

/*
paramDelim separates parameters and arguments.
*/
const paramDelim = ", "

/*
joinParams joins a list of parameter names.
*/
func joinParams(params []string) string {
	return strings.Join(params, paramDelim)
}

// Function registration
// =====================

/*
evalFunctionRegister registers a function block. The first line of the block
is the header of the form: NAME(P1, P2, ...) {
*/
func (i *Interpreter) evalFunctionRegister(block string) error {
	header, body := splitHeader(block)
	header = strings.TrimSpace(header)

	openIndex := strings.Index(header, "(")
	closeIndex := strings.Index(header, ")")

	if openIndex == -1 || closeIndex == -1 || closeIndex < openIndex ||
		!strings.HasSuffix(header, "{") {

		return i.newRuntimeError(ErrInvalidSyntax, "func "+header)
	}

	name := strings.TrimSpace(header[:openIndex])

	if name == "" {
		return i.newRuntimeError(ErrInvalidSyntax, "func "+header)
	}

	params := strings.Split(header[openIndex+1:closeIndex], paramDelim)

	for k := range params {
		params[k] = strings.TrimSpace(params[k])
	}

	i.Env.RegisterFunc(name, body, params)

	i.logger.LogDebug(fmt.Sprintf("%v: registered function %v", i.name,
		i.Env.Functions[name]))

	return nil
}

// Function call
// =============

/*
evalFunctionCall calls a function. The statement has the form:
NAME(A1, A2, ...)

The function body runs on a new child interpreter. The child has no access
to the variables of this interpreter - it only receives the call arguments
as variables and a copy of the functions of this interpreter.
*/
func (i *Interpreter) evalFunctionCall(stmt string) error {
	openIndex := strings.Index(stmt, "(")
	closeIndex := strings.LastIndex(stmt, ")")

	if openIndex == -1 || closeIndex < openIndex {
		return i.newRuntimeError(ErrInvalidSyntax, stmt)
	}

	name := stmt[:openIndex]

	f, err := i.Env.GetFunc(name)
	if err != nil {
		return i.newRuntimeError(ErrUnknownName, name)
	}

	args := strings.Split(stmt[openIndex+1:closeIndex], paramDelim)

	if f.IsNullary() {
		args = nil

	} else if len(args) != len(f.Params) {

		return i.newRuntimeError(ErrArityMismatch,
			fmt.Sprintf("%v expects %v parameter%v but got %v", name, len(f.Params),
				stringutil.Plural(len(f.Params)), len(args)))
	}

	if i.depth >= i.MaxCallDepth {
		return i.newRuntimeError(ErrCallDepthExceeded, fmt.Sprintf("%v (max depth: %v)",
			name, i.MaxCallDepth))
	}

	child := i.newChild(name)

	// Bind the arguments - arguments are resolved in the environment of the caller.
	// String literals keep their quotes.

	for k, arg := range args {
		value, kind, err := i.resolve(strings.TrimSpace(arg))
		if err != nil {
			return err
		}

		child.Env.SetVar(f.Params[k], value, kind)
	}

	child.Env.Functions = i.Env.SnapshotFuncs()

	i.logger.LogDebug(fmt.Sprintf("%v: calling %v with %v argument%v", i.name, name,
		len(args), stringutil.Plural(len(args))))

	return child.EvaluateCode(f.Body)
}

/*
newChild creates a new child interpreter for a function call. The child
shares the sink and the logger of its parent.
*/
func (i *Interpreter) newChild(name string) *Interpreter {
	child := NewInterpreter(fmt.Sprintf("%v/%v", i.name, name), i.sink)

	child.MaxCallDepth = i.MaxCallDepth
	child.logger = i.logger
	child.depth = i.depth + 1

	return child
}
