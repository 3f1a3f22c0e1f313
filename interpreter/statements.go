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
	"strconv"
	"strings"
)

/*
splitHeader splits a captured block into its header line and its body.
*/
func splitHeader(block string) (string, string) {
	if i := strings.Index(block, "\n"); i != -1 {
		return block[:i], block[i+1:]
	}
	return block, ""
}

// Assignment
// ==========

/*
evalAssignment evaluates an assignment of the form: NAME = RHS
*/
func (i *Interpreter) evalAssignment(stmt string) error {

	if !strings.Contains(stmt, " = ") {
		return i.newRuntimeError(ErrMissingAssignment, stmt)
	}

	// Only the first two parts of the split are relevant

	parts := strings.Split(stmt, " = ")
	name := strings.TrimSpace(parts[0])
	rhs := strings.TrimSpace(parts[1])

	if name == "" {
		return i.newRuntimeError(ErrInvalidSyntax, "missing variable name: "+stmt)
	}

	value, kind, err := i.normalize(rhs)

	if err == nil {
		i.Env.SetVar(name, value, kind)
	}

	return err
}

/*
normalize classifies a right-hand side value and returns the value and kind
which should be stored for it. Quotes are removed from string literals and
variable references are substituted with their bound value and kind.
*/
func (i *Interpreter) normalize(rhs string) (string, Kind, error) {
	kind, err := i.Classify(rhs)
	if err != nil {
		return "", 0, err
	}

	switch kind {
	case KindString:
		return unquote(rhs), KindString, nil

	case KindVariable:
		v := i.Env.Variables[rhs]
		return v.Value, v.Kind, nil
	}

	return rhs, kind, nil
}

// Print
// =====

/*
evalPrint evaluates a print statement and writes a single line to the sink.
*/
func (i *Interpreter) evalPrint(fragment string) error {
	var out string

	kind, err := i.Classify(fragment)
	if err != nil {
		return err
	}

	switch kind {
	case KindVariable:
		out = i.Env.Variables[fragment].Value

	case KindOperation:
		var res float64

		if res, err = i.EvaluateExpression(fragment); err != nil {
			return err
		}

		out = FormatNumber(res)

	case KindString:
		out = unquote(fragment)

	default:
		out = fragment
	}

	return i.sink.Println(out)
}

// For loop
// ========

/*
evalLoop evaluates a for loop block. The header has the form:

	VAR from FROM to TO [{]

FROM and TO must resolve to integers. The body is executed once for each
integer in the inclusive range on this interpreter.
*/
func (i *Interpreter) evalLoop(block string) error {
	header, body := splitHeader(block)

	header = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header), "{"))
	tokens := strings.Fields(header)

	if len(tokens) != 5 || tokens[1] != "from" || tokens[3] != "to" {
		return i.newRuntimeError(ErrInvalidSyntax, "for "+header)
	}

	varName := tokens[0]

	fromVal, fromKind, err := i.resolve(tokens[2])
	if err != nil {
		return err
	}

	toVal, toKind, err := i.resolve(tokens[4])
	if err != nil {
		return err
	}

	if fromKind != KindInteger || toKind != KindInteger {
		return i.newRuntimeError(ErrBadLoopBounds, fmt.Sprintf("from %v (%v) to %v (%v)",
			tokens[2], fromKind, tokens[4], toKind))
	}

	from, err := strconv.ParseInt(fromVal, 10, 64)
	if err != nil {
		return i.newRuntimeError(ErrBadLoopBounds, fromVal)
	}

	to, err := strconv.ParseInt(toVal, 10, 64)
	if err != nil {
		return i.newRuntimeError(ErrBadLoopBounds, toVal)
	}

	i.logger.LogDebug(fmt.Sprintf("%v: loop %v from %v to %v", i.name, varName, from, to))

	// The loop variable is bound even if the body never runs

	i.Env.SetVar(varName, strconv.FormatInt(from, 10), KindInteger)

	for n := from; n <= to; n++ {

		i.Env.SetVar(varName, strconv.FormatInt(n, 10), KindInteger)

		if err := i.EvaluateCode(body); err != nil {
			return err
		}

		if n == to {
			break
		}
	}

	return nil
}
