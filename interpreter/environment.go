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
	"sort"
)

/*
Variable is a variable binding. The value is always kept in its textual form.
*/
type Variable struct {
	Name  string // Name of the variable
	Value string // Textual value
	Kind  Kind   // Kind of the value
}

/*
String returns a string representation of this variable.
*/
func (v *Variable) String() string {
	return fmt.Sprintf("%v (%v)", v.Value, v.Kind)
}

/*
Function is a function binding. The body is stored verbatim without the
header line and without the outermost leading tab of each line.
*/
type Function struct {
	Name   string   // Name of the function
	Body   string   // Code of the function body
	Params []string // Parameter names in header order
}

/*
IsNullary returns if this function takes no parameters. A function header
with an empty parameter list produces a single empty parameter name.
*/
func (f *Function) IsNullary() bool {
	return len(f.Params) == 1 && f.Params[0] == ""
}

/*
String returns a string representation of this function.
*/
func (f *Function) String() string {
	if f.IsNullary() {
		return fmt.Sprintf("%v()", f.Name)
	}
	return fmt.Sprintf("%v(%v)", f.Name, joinParams(f.Params))
}

/*
Environment holds the variable and function bindings of an interpreter.
*/
type Environment struct {
	Variables map[string]*Variable // Variable bindings
	Functions map[string]*Function // Function bindings
}

/*
NewEnvironment returns a new empty environment.
*/
func NewEnvironment() *Environment {
	return &Environment{make(map[string]*Variable), make(map[string]*Function)}
}

/*
SetVar binds a variable. An existing binding is replaced.
*/
func (e *Environment) SetVar(name string, value string, kind Kind) {
	e.Variables[name] = &Variable{name, value, kind}
}

/*
HasVar checks if a variable is bound.
*/
func (e *Environment) HasVar(name string) bool {
	_, ok := e.Variables[name]
	return ok
}

/*
GetVar returns a variable binding.
*/
func (e *Environment) GetVar(name string) (*Variable, error) {
	if v, ok := e.Variables[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownName, name)
}

/*
RegisterFunc binds a function. An existing binding is replaced.
*/
func (e *Environment) RegisterFunc(name string, body string, params []string) {
	p := make([]string, len(params))
	copy(p, params)

	e.Functions[name] = &Function{name, body, p}
}

/*
HasFunc checks if a function is bound.
*/
func (e *Environment) HasFunc(name string) bool {
	_, ok := e.Functions[name]
	return ok
}

/*
GetFunc returns a function binding.
*/
func (e *Environment) GetFunc(name string) (*Function, error) {
	if f, ok := e.Functions[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownName, name)
}

/*
SnapshotFuncs returns an independent copy of the function bindings.
*/
func (e *Environment) SnapshotFuncs() map[string]*Function {
	ret := make(map[string]*Function, len(e.Functions))

	for name, f := range e.Functions {
		p := make([]string, len(f.Params))
		copy(p, f.Params)

		ret[name] = &Function{f.Name, f.Body, p}
	}

	return ret
}

/*
VarNames returns a sorted list of all bound variable names.
*/
func (e *Environment) VarNames() []string {
	var ret []string

	for name := range e.Variables {
		ret = append(ret, name)
	}

	sort.Strings(ret)

	return ret
}

/*
FuncNames returns a sorted list of all bound function names.
*/
func (e *Environment) FuncNames() []string {
	var ret []string

	for name := range e.Functions {
		ret = append(ret, name)
	}

	sort.Strings(ret)

	return ret
}

/*
Reset removes all bindings.
*/
func (e *Environment) Reset() {
	e.Variables = make(map[string]*Variable)
	e.Functions = make(map[string]*Function)
}
