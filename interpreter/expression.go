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
	"math"
	"strconv"
	"strings"
)

// Arithmetic operators
// ====================

/*
operator describes a binary arithmetic operator. The delimiter always has
a single space on either side.
*/
type operator struct {
	delim    string                       // Delimiter which separates the operands
	seeded   bool                         // Flag if the fold starts from the first operand
	identity float64                      // Start value if the fold is not seeded
	apply    func(acc, v float64) float64 // Operation
}

/*
operators in the order in which they are dispatched. There is no precedence
between operators; the first delimiter found in an expression decides.
*/
var operators = []*operator{
	{" + ", false, 0, func(acc, v float64) float64 { return acc + v }},
	{" - ", true, 0, func(acc, v float64) float64 { return acc - v }},
	{" * ", false, 1, func(acc, v float64) float64 { return acc * v }},
	{" / ", true, 0, func(acc, v float64) float64 { return acc / v }},
	{" ^ ", true, 0, math.Pow},
}

/*
FormatNumber returns the textual form of a number. The output does not
depend on the host locale and never uses an exponent.
*/
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

/*
parseNumber parses the textual form of a number.
*/
func parseNumber(s string) (float64, error) {
	res, err := strconv.ParseFloat(s, 64)

	// Out of range values become infinite or zero

	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		err = nil
	}

	return res, err
}

// Expression evaluation
// =====================

/*
EvaluateExpression reduces an arithmetic expression to a number.

Bracketed subexpressions are reduced innermost first and replaced by their
result. The remaining expression is then handled by the first operator whose
delimiter it contains. Without any operator the expression must be a number.
*/
func (i *Interpreter) EvaluateExpression(expr string) (float64, error) {
	expr = strings.TrimSpace(expr)

	if isEnclosed(expr) {
		expr = strings.TrimSpace(expr[1 : len(expr)-1])
	}

	// Reduce bracketed subexpressions

	for {
		closeIndex := strings.Index(expr, ")")
		if closeIndex == -1 {
			break
		}

		openIndex := strings.LastIndex(expr[:closeIndex], "(")
		if openIndex == -1 {
			return 0, i.newRuntimeError(ErrUnexpectedExpression,
				fmt.Sprintf("unbalanced brackets in: %v", expr))
		}

		res, err := i.EvaluateExpression(expr[openIndex+1 : closeIndex])
		if err != nil {
			return 0, err
		}

		expr = expr[:openIndex] + FormatNumber(res) + expr[closeIndex+1:]
	}

	if strings.Contains(expr, "(") {
		return 0, i.newRuntimeError(ErrUnexpectedExpression,
			fmt.Sprintf("unbalanced brackets in: %v", expr))
	}

	// Dispatch to the first operator which is present

	for _, op := range operators {
		if strings.Contains(expr, op.delim) {
			return i.fold(expr, op)
		}
	}

	if res, err := parseNumber(expr); err == nil {
		return res, nil
	}

	return 0, i.newRuntimeError(ErrUnexpectedExpression, expr)
}

/*
isEnclosed checks if an expression is completely enclosed by a pair of
matching brackets.
*/
func isEnclosed(expr string) bool {

	if len(expr) < 2 || expr[0] != '(' || expr[len(expr)-1] != ')' {
		return false
	}

	depth := 0

	for pos, c := range expr {
		if c == '(' {
			depth++
		} else if c == ')' {
			depth--

			if depth == 0 {
				return pos == len(expr)-1
			}
		}
	}

	return false
}

/*
fold splits an expression by the delimiter of the given operator and folds
the operands from left to right.
*/
func (i *Interpreter) fold(expr string, op *operator) (float64, error) {
	parts := strings.Split(expr, op.delim)

	for k := range parts {
		parts[k] = strings.TrimSpace(parts[k])
	}

	if op.delim == " / " {
		for _, part := range parts[1:] {
			if part == "0" {
				return 0, i.newRuntimeError(ErrDivideByZero, expr)
			}
		}
	}

	acc := op.identity

	if op.seeded {
		var err error

		if acc, err = i.seedValue(parts[0], op); err != nil {
			return 0, err
		}

		parts = parts[1:]
	}

	for _, part := range parts {
		val, err := i.numericValue(part)
		if err != nil {
			return 0, err
		}

		acc = op.apply(acc, val)
	}

	return acc, nil
}

/*
seedValue determines the start value of a seeded fold.
*/
func (i *Interpreter) seedValue(part string, op *operator) (float64, error) {

	if op.delim == " ^ " {
		_, kind, err := i.resolve(part)

		if err != nil {
			return 0, err
		} else if kind == KindString {
			return 0, i.newRuntimeError(ErrStringPowerUndefined, part)
		}
	}

	return i.numericValue(part)
}

/*
numericValue determines the numeric value of a single operand.
*/
func (i *Interpreter) numericValue(part string) (float64, error) {
	kind, err := i.Classify(part)
	if err != nil {
		return 0, err
	}

	switch kind {

	case KindVariable:
		v, _ := i.Env.GetVar(part)

		if v.Kind != KindString {
			if res, err := parseNumber(v.Value); err == nil {
				return res, nil
			}
		}

		return 0, i.newRuntimeError(ErrCannotCoerceToNumber,
			fmt.Sprintf("%v variable %v", v.Kind, part))

	case KindInteger, KindFloat:
		if res, err := parseNumber(part); err == nil {
			return res, nil
		}

	case KindOperation:

		// Operands are never evaluated further - nested operations need brackets

		if res, err := parseNumber(part); err == nil {
			return res, nil
		}

		return 0, i.newRuntimeError(ErrUnexpectedExpression, part)
	}

	return 0, i.newRuntimeError(ErrCannotCoerceToNumber, fmt.Sprintf("%v %v", kind, part))
}
