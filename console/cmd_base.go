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
	"strings"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/minis/version"
)

// Command: ver
// ============

/*
CommandVer is a command name.
*/
const CommandVer = "ver"

/*
CmdVer displays version information.
*/
type CmdVer struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdVer) Name() string {
	return CommandVer
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdVer) ShortDescription() string {
	return "Displays version information."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdVer) LongDescription() string {
	return "Displays version information."
}

/*
Run executes the command.
*/
func (c *CmdVer) Run(args []string, capi CommandConsoleAPI) error {

	fmt.Fprintln(capi.Out(), fmt.Sprintf("%v %v", version.PRODUCT, version.VERSION))

	return nil
}

// Command: vars
// =============

/*
CommandVars is a command name.
*/
const CommandVars = "vars"

/*
CmdVars lists all variables.
*/
type CmdVars struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdVars) Name() string {
	return CommandVars
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdVars) ShortDescription() string {
	return "Lists all variables."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdVars) LongDescription() string {
	return "Lists all variables of the top-level scope with their value and kind."
}

/*
Run executes the command.
*/
func (c *CmdVars) Run(args []string, capi CommandConsoleAPI) error {
	env := capi.Interpreter().Env
	names := env.VarNames()

	if len(names) == 0 {
		fmt.Fprintln(capi.Out(), "No variables defined")
		return nil
	}

	tab := []string{"Name", "Value", "Kind"}

	for _, name := range names {
		v := env.Variables[name]
		tab = append(tab, name, v.Value, v.Kind.String())
	}

	fmt.Fprint(capi.Out(), stringutil.PrintStringTable(tab, 3))

	return nil
}

// Command: funcs
// ==============

/*
CommandFuncs is a command name.
*/
const CommandFuncs = "funcs"

/*
CmdFuncs lists all functions.
*/
type CmdFuncs struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdFuncs) Name() string {
	return CommandFuncs
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdFuncs) ShortDescription() string {
	return "Lists all functions."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdFuncs) LongDescription() string {
	return "Lists all registered functions. With a function name as parameter " +
		"the body of the function is shown."
}

/*
Run executes the command.
*/
func (c *CmdFuncs) Run(args []string, capi CommandConsoleAPI) error {
	env := capi.Interpreter().Env

	if len(args) > 0 {
		f, err := env.GetFunc(args[0])

		if err == nil {
			fmt.Fprintln(capi.Out(), fmt.Sprintf("func %v {", f))

			if f.Body != "" {
				fmt.Fprintln(capi.Out(), "\t"+strings.ReplaceAll(f.Body, "\n", "\n\t"))
			}
		}

		return err
	}

	names := env.FuncNames()

	if len(names) == 0 {
		fmt.Fprintln(capi.Out(), "No functions defined")
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(capi.Out(), env.Functions[name])
	}

	return nil
}

// Command: reset
// ==============

/*
CommandReset is a command name.
*/
const CommandReset = "reset"

/*
CmdReset removes all variables and functions.
*/
type CmdReset struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdReset) Name() string {
	return CommandReset
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdReset) ShortDescription() string {
	return "Removes all variables and functions."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdReset) LongDescription() string {
	return "Removes all variables and functions from the interpreter."
}

/*
Run executes the command.
*/
func (c *CmdReset) Run(args []string, capi CommandConsoleAPI) error {

	capi.Interpreter().Env.Reset()

	fmt.Fprintln(capi.Out(), "Interpreter was reset")

	return nil
}

// Command: help
// =============

/*
CommandHelp is a command name.
*/
const CommandHelp = "help"

/*
CmdHelp displays descriptions of other commands.
*/
type CmdHelp struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdHelp) Name() string {
	return CommandHelp
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdHelp) ShortDescription() string {
	return "Display descriptions for all available commands."
}

/*
LongDescription returns an extensive description of the command (can be multiple lines)
*/
func (c *CmdHelp) LongDescription() string {
	return "Display descriptions for all available commands."
}

/*
Run executes the command.
*/
func (c *CmdHelp) Run(args []string, capi CommandConsoleAPI) error {

	cmds := capi.Commands()

	if len(args) > 0 {
		name := args[0]

		for _, cmd := range cmds {
			if cmd.Name() == name {
				fmt.Fprintln(capi.Out(), cmd.LongDescription())
				return nil
			}
		}

		return fmt.Errorf("Unknown command: %s", name)
	}

	var tab []string

	tab = append(tab, "Command")
	tab = append(tab, "Description")

	for _, cmd := range cmds {
		tab = append(tab, cmd.Name())
		tab = append(tab, cmd.ShortDescription())
	}

	fmt.Fprint(capi.Out(), stringutil.PrintStringTable(tab, 2))

	return nil
}
