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
Package host contains the glue between the configuration and interpreter
instances. Hosts (CLI, console and server) use it to create configured
interpreters and loggers and to load source files.
*/
package host

import (
	"fmt"
	"io"
	"io/ioutil"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/ecal/util"
	"devt.de/krotik/minis/config"
	"devt.de/krotik/minis/interpreter"
)

/*
Log file settings
*/
const (
	LogFileMaxSize  = 1000000 // Each log file can be up to a megabyte
	LogFileMaxCount = 10      // Number of rolled over log files
)

/*
NewLogger creates a new logger as configured. Log output goes to stdout
unless a log file is configured.
*/
func NewLogger() (util.Logger, error) {
	var logger util.Logger
	var err error

	if logFile := config.Str(config.LogFile); logFile != "" {
		var logWriter io.Writer

		logWriter, err = fileutil.NewMultiFileBuffer(logFile,
			fileutil.ConsecutiveNumberIterator(LogFileMaxCount),
			fileutil.SizeBasedRolloverCondition(LogFileMaxSize))

		if err != nil {
			return nil, err
		}

		logger = util.NewBufferLogger(logWriter)

	} else {

		logger = util.NewStdOutLogger()
	}

	if logLevel := config.Str(config.LogLevel); logLevel != "" {
		logger, err = util.NewLogLevelLogger(logger, logLevel)
	}

	return logger, err
}

/*
NewInterpreter creates a new interpreter which uses the configured call depth
and the given logger.
*/
func NewInterpreter(name string, sink interpreter.OutputSink,
	logger util.Logger) *interpreter.Interpreter {

	i := interpreter.NewInterpreter(name, sink)

	i.MaxCallDepth = int(config.Int(config.MaxCallDepth))

	if logger != nil {
		i.SetLogger(logger)
	}

	return i
}

/*
LoadSource loads the source code of a given file.
*/
func LoadSource(filename string) (string, error) {

	if ok, err := fileutil.PathExists(filename); err != nil {
		return "", err
	} else if !ok {
		return "", fmt.Errorf("File %v does not exist", filename)
	}

	code, err := ioutil.ReadFile(filename)

	return string(code), err
}

/*
RunFile evaluates a given file. All printed lines are written to the given
writer.
*/
func RunFile(filename string, out io.Writer, logger util.Logger) error {

	if logger == nil {
		logger = util.NewNullLogger()
	}

	code, err := LoadSource(filename)

	if err == nil {
		i := NewInterpreter(filename, interpreter.NewWriterSink(out), logger)

		logger.LogDebug("Running ", filename)

		err = i.EvaluateCode(code)
	}

	return err
}
