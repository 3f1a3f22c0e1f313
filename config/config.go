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
Package config contains the configuration of Minis hosts (CLI, console and
server). The interpreter itself does not read any configuration.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

// Global variables
// ================

/*
DefaultConfigFile is the default config file which will be used to configure Minis
*/
var DefaultConfigFile = "minis.config.json"

/*
Known configuration options for Minis
*/
const (
	LogLevel           = "LogLevel"
	LogFile            = "LogFile"
	MaxCallDepth       = "MaxCallDepth"
	ConsoleHistoryFile = "ConsoleHistoryFile"
	ConsolePrompt      = "ConsolePrompt"
	ServerHost         = "ServerHost"
	ServerPort         = "ServerPort"
	OutputBufferSize   = "OutputBufferSize"
	EnableSessions     = "EnableSessions"
	MaxSessions        = "MaxSessions"
	SessionMaxAge      = "SessionMaxAgeSeconds"
	EnableWebTerminal  = "EnableWebTerminal"
	LocationWebFolder  = "LocationWebFolder"
	LockFile           = "LockFile"
)

/*
DefaultConfig is the defaut configuration
*/
var DefaultConfig = map[string]interface{}{
	LogLevel:           "info",
	LogFile:            "",
	MaxCallDepth:       1000,
	ConsoleHistoryFile: ".minis_console_history",
	ConsolePrompt:      ">>> ",
	ServerHost:         "localhost",
	ServerPort:         "9595",
	OutputBufferSize:   1000,
	EnableSessions:     true,
	MaxSessions:        100,
	SessionMaxAge:      0,
	EnableWebTerminal:  true,
	LocationWebFolder:  "web",
	LockFile:           "minis.lck",
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fileutil.ConfStr(Config, key)
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
ServerAddress returns the listen address of the evaluation server.
*/
func ServerAddress() string {
	return fmt.Sprintf("%v:%v", Str(ServerHost), Str(ServerPort))
}
