/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/termutil"
	"devt.de/krotik/minis/config"
)

const testScript = "test.minis"

func TestMain(m *testing.M) {
	flag.Parse()

	config.LoadDefaultConfig()
	config.Config[config.LogLevel] = "error"

	res := m.Run()

	os.Remove(testScript)

	os.Exit(res)
}

func TestRunScript(t *testing.T) {
	var out bytes.Buffer

	errorutil.AssertOk(ioutil.WriteFile(testScript, []byte(`
func add(a, b) {
	print (a + b)
add(2, 3)
print 'done'
`), 0600))

	if res := RunScript([]string{testScript}, &out); res != 0 || out.String() != "5\ndone\n" {
		t.Error("Unexpected result:", res, out.String())
		return
	}

	errorutil.AssertOk(ioutil.WriteFile(testScript, []byte("print 1\nprint (1 / 0)\nprint 2"), 0600))

	out.Reset()

	if res := RunScript([]string{testScript}, &out); res != 1 || out.String() !=
		"1\nMinis error in test.minis: Division by zero (1 / 0) (Line:2)\n" {
		t.Error("Unexpected result:", res, out.String())
		return
	}

	out.Reset()

	if res := RunScript([]string{"missing.minis"}, &out); res != 1 ||
		!strings.Contains(out.String(), "does not exist") {
		t.Error("Unexpected result:", res, out.String())
		return
	}

	out.Reset()

	if res := RunScript(nil, &out); res != 1 || !strings.Contains(out.String(), "run <file>") {
		t.Error("Unexpected result:", res, out.String())
		return
	}
}

type testTerminal struct {
	termutil.ConsoleLineTerminal
	prompts []string
}

func (tt *testTerminal) NextLinePrompt(prompt string, echo rune) (string, error) {
	tt.prompts = append(tt.prompts, prompt)
	return "", nil
}

func TestPromptTerminal(t *testing.T) {
	pending := false

	tt := &testTerminal{}
	pt := &promptTerminal{tt, ">>> ", func() bool { return pending }}

	pt.NextLine()
	pending = true
	pt.NextLine()
	pending = false
	pt.NextLine()

	if res := fmt.Sprint(tt.prompts); res != "[>>>  ...  >>> ]" {
		t.Error("Unexpected result:", res)
		return
	}
}
