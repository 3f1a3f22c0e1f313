/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
)

const testconf = "testconfig"

const invalidFileName = "**" + "\x00"

func TestConfig(t *testing.T) {

	Config = nil

	ioutil.WriteFile(testconf, []byte(`{
    "EnableSessions": false,
    "ServerPort": 1234
}`), 0644)

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if res := Str(EnableSessions); res != "false" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(EnableSessions); res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(ServerPort); res != 1234 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := ServerAddress(); res != "localhost:1234" {
		t.Error("Unexpected result:", res)
		return
	}

	// Missing values are filled with defaults

	if res := Int(MaxCallDepth); fmt.Sprint(res) != fmt.Sprint(DefaultConfig[MaxCallDepth]) {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Str(ConsolePrompt); res != ">>> " {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()

	if res := Bool(EnableSessions); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := ServerAddress(); res != "localhost:9595" {
		t.Error("Unexpected result:", res)
		return
	}

	Config[ServerPort] = "123"

	if res := Int(ServerPort); fmt.Sprint(res) == DefaultConfig[ServerPort] {
		t.Error("Unexpected result:", res)
		return
	}

	Config[ServerPort] = "abc"

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Parsing an invalid int should panic")
			}
		}()

		Int(ServerPort)
	}()

	if err := LoadConfigFile(invalidFileName); err == nil {
		t.Error("Loading an invalid file should fail")
		return
	}
}

func TestCreateConfig(t *testing.T) {

	os.Remove(testconf)

	defer func() {
		if err := os.Remove(testconf); err != nil {
			fmt.Print("Could not remove test config file:", err.Error())
		}
	}()

	if err := LoadConfigFile(testconf); err != nil {
		t.Error(err)
		return
	}

	if _, err := os.Stat(testconf); err != nil {
		t.Error("Config file should have been created:", err)
		return
	}

	if res := Str(LogLevel); res != "info" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Str(LockFile); res != "minis.lck" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxSessions); res != 100 {
		t.Error("Unexpected result:", res)
		return
	}

	LoadDefaultConfig()
}
