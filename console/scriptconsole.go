/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package console

import (
	"fmt"
	"sort"
	"strings"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/minis/interpreter"
)

// Script Console
// ==============

/*
ScriptConsole runs Minis code.
*/
type ScriptConsole struct {
	parent CommandConsoleAPI // Parent console API
	block  []string          // Lines of an unfinished block
}

/*
blockKeywords are all statement keywords which open a block.
*/
var blockKeywords = []string{"func ", "for "}

/*
statementKeywords are all statement keywords (used for suggestions).
*/
var statementKeywords = []string{"var", "print", "func", "for"}

/*
indentWidth is the number of spaces which are treated as one tab.
*/
const indentWidth = 4

/*
maxSuggestionDistance is the maximum edit distance for suggestions.
*/
const maxSuggestionDistance = 2

/*
Run executes a single line of code. It returns an error if the code
could not be evaluated and a flag if the line was handled.
*/
func (c *ScriptConsole) Run(cmd string) (bool, error) {

	if c.block != nil {

		if line, ok := indented(cmd); ok {
			c.block = append(c.block, line)
			return true, nil
		}

		// A non-indented line closes the block and is then handled as usual

		if err := c.Flush(); err != nil || strings.TrimSpace(cmd) == "" {
			return true, err
		}

		return false, nil
	}

	line := strings.TrimSpace(cmd)

	if line == "" {
		return true, nil
	}

	for _, k := range blockKeywords {
		if strings.HasPrefix(line, k) {
			c.block = []string{line}
			return true, nil
		}
	}

	return true, c.eval(line)
}

/*
Commands returns an empty list. The command line is interpreted as Minis code.
*/
func (c *ScriptConsole) Commands() []Command {
	return nil
}

/*
Pending returns if the console waits for more lines of an unfinished block.
*/
func (c *ScriptConsole) Pending() bool {
	return c.block != nil
}

/*
Flush evaluates any unfinished block.
*/
func (c *ScriptConsole) Flush() error {
	if c.block == nil {
		return nil
	}

	code := strings.Join(c.block, "\n")
	c.block = nil

	return c.eval(code)
}

/*
eval evaluates code on the interpreter of the parent console.
*/
func (c *ScriptConsole) eval(code string) error {
	err := c.parent.Interpreter().EvaluateCode(code)

	if re, ok := err.(*interpreter.RuntimeError); ok &&
		re.Type == interpreter.ErrUnrecognizedStatement {

		if s := c.suggest(re.Detail); s != "" {
			return fmt.Errorf("%w - did you mean %v?", err, s)
		}
	}

	return err
}

/*
suggest returns the closest known name to the first word of an unrecognized
statement or an empty string if there is no close name.
*/
func (c *ScriptConsole) suggest(stmt string) string {
	word := strings.Fields(stmt)[0]

	if i := strings.Index(word, "("); i != -1 {
		word = word[:i]
	}

	var candidates []string

	candidates = append(candidates, statementKeywords...)
	candidates = append(candidates, c.parent.Interpreter().Env.FuncNames()...)

	for _, cmd := range c.parent.Commands() {
		candidates = append(candidates, cmd.Name())
	}

	sort.Strings(candidates)

	best, bestDist := "", maxSuggestionDistance+1

	for _, cand := range candidates {
		if d := stringutil.LevenshteinDistance(word, cand); d > 0 && d < bestDist {
			best, bestDist = cand, d
		}
	}

	return best
}

/*
indented checks if a line is indented and returns it with its outermost
indentation turned into a tab. Leading spaces count as one tab per
indentWidth spaces (at least one).
*/
func indented(line string) (string, bool) {

	if strings.TrimSpace(line) == "" {
		return "", false

	} else if strings.HasPrefix(line, "\t") {
		return line, true

	} else if strings.HasPrefix(line, " ") {
		rest := strings.TrimLeft(line, " ")
		tabs := (len(line) - len(rest)) / indentWidth

		if tabs == 0 {
			tabs = 1
		}

		return strings.Repeat("\t", tabs) + rest, true
	}

	return "", false
}
