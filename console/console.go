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
Package console contains the console command processor for Minis.

The console accepts either built-in commands (e.g. help, vars or funcs) or
Minis source code. Function definitions and loops span multiple lines: the
header line opens a block and all following indented lines are added to it.
The block is evaluated once an empty or non-indented line is entered.
*/
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"devt.de/krotik/minis/interpreter"
)

/*
NewConsole creates a new Console object which executes given commands and
Minis code on the given interpreter. Command output is written to the given
Writer. If no interpreter is given a new one is created which prints to
the same Writer.
*/
func NewConsole(out io.Writer, interp *interpreter.Interpreter) CommandConsole {

	if interp == nil {
		interp = interpreter.NewInterpreter("console", interpreter.NewWriterSink(out))
	}

	cmdMap := make(map[string]Command)

	cmdMap[CommandHelp] = &CmdHelp{}
	cmdMap[CommandVer] = &CmdVer{}
	cmdMap[CommandVars] = &CmdVars{}
	cmdMap[CommandFuncs] = &CmdFuncs{}
	cmdMap[CommandReset] = &CmdReset{}

	c := &MinisConsole{out, interp, nil, cmdMap}

	c.childConsoles = []CommandConsole{&ScriptConsole{c, nil}}

	return c
}

/*
CommandConsole is the main interface for command processors.
*/
type CommandConsole interface {

	/*
		Run executes a single input line. It returns an error if the command
		had an unexpected result and a flag if the command was handled.
	*/
	Run(cmd string) (bool, error)

	/*
	   Commands returns a sorted list of all available commands.
	*/
	Commands() []Command

	/*
	   Pending returns if the console waits for more lines of an unfinished block.
	*/
	Pending() bool

	/*
	   Flush evaluates any unfinished block.
	*/
	Flush() error
}

/*
CommandConsoleAPI is the console interface which commands can use to access
the interpreter.
*/
type CommandConsoleAPI interface {
	CommandConsole

	/*
		Out returns a writer which can be used to write to the console.
	*/
	Out() io.Writer

	/*
	   Interpreter returns the interpreter of the console.
	*/
	Interpreter() *interpreter.Interpreter
}

/*
Command describes an available command.
*/
type Command interface {
	/*
	   Name returns the command name (as it should be typed).
	*/
	Name() string

	/*
	   ShortDescription returns a short description of the command (single line).
	*/
	ShortDescription() string

	/*
	   LongDescription returns an extensive description of the command (can be multiple lines).
	*/
	LongDescription() string

	/*
		Run executes the command.
	*/
	Run(args []string, capi CommandConsoleAPI) error
}

// Minis Console
// =============

/*
MinisConsole implements the basic console functionality and delegates
everything which is not a command to its child consoles.
*/
type MinisConsole struct {
	out           io.Writer                // Output for this console
	interp        *interpreter.Interpreter // Interpreter which runs the code
	childConsoles []CommandConsole         // List of child consoles

	CommandMap map[string]Command // Map of registered commands
}

/*
Out returns a writer which can be used to write to the console.
*/
func (c *MinisConsole) Out() io.Writer {
	return c.out
}

/*
Interpreter returns the interpreter of the console.
*/
func (c *MinisConsole) Interpreter() *interpreter.Interpreter {
	return c.interp
}

/*
Run executes a single input line. It returns an error if the command
had an unexpected result and a flag if the command was handled.
*/
func (c *MinisConsole) Run(cmd string) (bool, error) {

	// An unfinished block gets the first look at the line

	for _, child := range c.childConsoles {
		if child.Pending() {
			if ok, err := child.Run(cmd); err != nil || ok {
				return ok, err
			}
		}
	}

	if ok, err := c.RunCommand(cmd); ok {
		return true, err
	}

	// Try child consoles

	for _, child := range c.childConsoles {
		if ok, err := child.Run(cmd); err != nil || ok {
			return ok, err
		}
	}

	return false, fmt.Errorf("Unknown command")
}

/*
RunCommand executes a single command. It returns an error for unexpected results and
a flag if the command was handled.
*/
func (c *MinisConsole) RunCommand(cmdString string) (bool, error) {
	cmdSplit := strings.Fields(cmdString)

	if len(cmdSplit) > 0 {
		cmd := cmdSplit[0]
		args := cmdSplit[1:]

		if cmdObj, ok := c.CommandMap[cmd]; ok {
			return true, cmdObj.Run(args, c)
		} else if cmd == "?" {
			return true, c.CommandMap[CommandHelp].Run(args, c)
		}
	}

	return false, nil
}

/*
Commands returns a sorted list of all available commands.
*/
func (c *MinisConsole) Commands() []Command {
	var res []Command

	for _, c := range c.CommandMap {
		res = append(res, c)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})

	return res
}

/*
Pending returns if the console waits for more lines of an unfinished block.
*/
func (c *MinisConsole) Pending() bool {
	for _, child := range c.childConsoles {
		if child.Pending() {
			return true
		}
	}
	return false
}

/*
Flush evaluates any unfinished block.
*/
func (c *MinisConsole) Flush() error {
	for _, child := range c.childConsoles {
		if err := child.Flush(); err != nil {
			return err
		}
	}
	return nil
}
