/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package interpreter contains the Minis interpreter.

Minis is a small line oriented scripting language. Source code is executed
directly line by line - there is no lexer and no parse tree. Each line is
classified by its leading keyword:

	var NAME = RHS                 Variable assignment
	print EXPR                     Print a value or the result of an arithmetic expression
	func NAME(P1, P2, ...) {       Function definition followed by tab indented body lines
	for VAR from A to B            Loop over an inclusive integer range followed by tab indented body lines
	NAME(A1, A2, ...)              Function call

Arithmetic supports the binary operators + - * / ^. Operators must be
surrounded by single spaces and there is no operator precedence. Brackets
are the only way to group operations.

Every function call runs on a fresh child interpreter which only sees the
call parameters and a copy of the caller's functions.
*/
package interpreter

import (
	"fmt"
	"strings"

	"devt.de/krotik/ecal/util"
)

/*
DefaultMaxCallDepth is the default maximum number of nested function calls.
*/
const DefaultMaxCallDepth = 1000

/*
Interpreter models a Minis interpreter instance. An instance exclusively owns
its environment and is not safe for concurrent use.
*/
type Interpreter struct {
	Env          *Environment // Variable and function bindings
	MaxCallDepth int          // Maximum number of nested function calls

	name   string      // Name to identify the interpreter in errors
	sink   OutputSink  // Sink for print statements
	logger util.Logger // Logger for debug output
	depth  int         // Current call depth
}

/*
NewInterpreter creates a new interpreter which writes printed lines to the
given sink.
*/
func NewInterpreter(name string, sink OutputSink) *Interpreter {
	if sink == nil {
		sink = discardSink
	}

	return &Interpreter{NewEnvironment(), DefaultMaxCallDepth, name, sink,
		util.NewNullLogger(), 0}
}

/*
Name returns the name of this interpreter.
*/
func (i *Interpreter) Name() string {
	return i.name
}

/*
SetLogger sets the logger of this interpreter.
*/
func (i *Interpreter) SetLogger(logger util.Logger) {
	i.logger = logger
}

/*
Logger returns the logger of this interpreter.
*/
func (i *Interpreter) Logger() util.Logger {
	return i.logger
}

/*
Sink returns the output sink of this interpreter.
*/
func (i *Interpreter) Sink() OutputSink {
	return i.sink
}

// Statement dispatch
// ==================

/*
Statement keywords
*/
const (
	keywordVar   = "var "
	keywordPrint = "print "
	keywordFunc  = "func "
	keywordFor   = "for "
)

/*
splitLines splits source code into lines. Empty lines are discarded.
*/
func splitLines(code string) []string {
	return strings.FieldsFunc(code, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}

/*
EvaluateCode executes the given source code. Execution stops at the first
error. Any side effects before the error are kept.
*/
func (i *Interpreter) EvaluateCode(code string) error {
	lines := splitLines(code)

	for index := 0; index < len(lines); index++ {
		var err error

		line := strings.TrimSpace(lines[index])
		lineNumber := index + 1

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, keywordVar) {

			err = i.evalAssignment(line[len(keywordVar):])

		} else if strings.HasPrefix(line, keywordPrint) {

			err = i.evalPrint(strings.TrimSpace(line[len(keywordPrint):]))

		} else if strings.HasPrefix(line, keywordFunc) {
			var block string

			block, index = captureBlock(line[len(keywordFunc):], lines, index)
			err = i.evalFunctionRegister(block)

		} else if strings.HasPrefix(line, keywordFor) {
			var block string

			block, index = captureBlock(line[len(keywordFor):], lines, index)
			err = i.evalLoop(block)

		} else if kind, cerr := i.Classify(line); cerr == nil && kind == KindFunction {

			err = i.evalFunctionCall(line)

		} else {

			err = i.newRuntimeError(ErrUnrecognizedStatement, line)
		}

		if err != nil {
			return withLine(err, lineNumber)
		}
	}

	return nil
}

/*
captureBlock collects the block of a statement. The block consists of the
given header followed by all directly following lines which start with a tab.
Each of these lines loses exactly one leading tab. Returns the block and the
index of the last consumed line.
*/
func captureBlock(header string, lines []string, index int) (string, int) {
	var block strings.Builder

	block.WriteString(header)

	for index+1 < len(lines) && strings.HasPrefix(lines[index+1], "\t") {
		index++

		block.WriteString("\n")
		block.WriteString(lines[index][1:])
	}

	return block.String(), index
}

/*
withLine adds a line number to a runtime error which does not have one yet.
*/
func withLine(err error, line int) error {
	if re, ok := err.(*RuntimeError); ok && re.Line == 0 {
		re.Line = line
	}
	return err
}

/*
String returns a string representation of this interpreter.
*/
func (i *Interpreter) String() string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("Interpreter %v\n", i.name))

	for _, name := range i.Env.VarNames() {
		buf.WriteString(fmt.Sprintf("    %v = %v\n", name, i.Env.Variables[name]))
	}

	for _, name := range i.Env.FuncNames() {
		buf.WriteString(fmt.Sprintf("    func %v\n", i.Env.Functions[name]))
	}

	return buf.String()
}
