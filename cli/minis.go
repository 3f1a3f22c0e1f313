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
Minis is a minimalist line-oriented scripting language. Programs consist of
variable assignments, print statements, counted loops and parameterized
functions. Blocks are formed by tab indentation.

The tool can run a script file, start an interactive console or start an
evaluation server which provides a REST API and websocket sessions.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"devt.de/krotik/common/termutil"
	"devt.de/krotik/ecal/util"
	"devt.de/krotik/minis/config"
	"devt.de/krotik/minis/console"
	"devt.de/krotik/minis/host"
	"devt.de/krotik/minis/interpreter"
	"devt.de/krotik/minis/server"
	"devt.de/krotik/minis/version"
)

/*
ContinuationPrompt is the prompt which is shown while a block is unfinished.
*/
const ContinuationPrompt = "... "

var osExit = os.Exit

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("%v %v scripting language", version.PRODUCT, version.VERSION))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    run       Run a Minis script")
		fmt.Println("    console   Interactive Minis console")
		fmt.Println("    server    Start Minis evaluation server")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		arg := flag.Args()[0]

		if err := config.LoadConfigFile(config.DefaultConfigFile); err != nil {
			fmt.Println("Could not load config file:", err)
			config.LoadDefaultConfig()
		}

		if arg == "run" {
			osExit(RunScript(flag.Args()[1:], os.Stdout))
		} else if arg == "server" {
			server.StartServer()
		} else if arg == "console" {
			RunCliConsole()
		} else {
			flag.Usage()
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
RunScript runs a given script file and returns the exit code of the run.
Printed lines are written to the given writer.
*/
func RunScript(args []string, out io.Writer) int {

	if len(args) != 1 {
		fmt.Fprintln(out, fmt.Sprintf("Usage of %s run <file>", os.Args[0]))
		return 1
	}

	logger, err := host.NewLogger()

	if err == nil {
		err = host.RunFile(args[0], out, logger)
	}

	if err != nil {
		fmt.Fprintln(out, err.Error())
		return 1
	}

	return 0
}

/*
promptTerminal shows a different prompt while a console block is unfinished.
*/
type promptTerminal struct {
	termutil.ConsoleLineTerminal
	prompt  string
	pending func() bool
}

/*
NextLine reads the next line with the current prompt.
*/
func (pt *promptTerminal) NextLine() (string, error) {
	prompt := pt.prompt

	if pt.pending != nil && pt.pending() {
		prompt = ContinuationPrompt
	}

	return pt.ConsoleLineTerminal.NextLinePrompt(prompt, 0x0)
}

/*
RunCliConsole runs the interactive console on the commandline.
*/
func RunCliConsole() {
	var err error
	var con console.CommandConsole

	cmdfile := flag.String("file", "", "Read commands from a file and exit")
	cmdline := flag.String("exec", "", "Execute a single line and exit")

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Println()
		fmt.Println(fmt.Sprintf("Usage of %s console [options]", os.Args[0]))
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
	}

	flag.CommandLine.Parse(os.Args[2:])

	if *showHelp {
		flag.Usage()
		return
	}

	interactive := *cmdfile == "" && *cmdline == ""

	if interactive {
		fmt.Println(fmt.Sprintf("%v %v - Console", version.PRODUCT, version.VERSION))
	}

	var clt termutil.ConsoleLineTerminal

	isExitLine := func(s string) bool {
		return s == "exit" || s == "q" || s == "quit" || s == "bye" || s == "\x04"
	}

	clt, err = termutil.NewConsoleLineTerminal(os.Stdout)

	clt = &promptTerminal{clt, config.Str(config.ConsolePrompt), func() bool {
		return con != nil && con.Pending()
	}}

	if *cmdfile != "" {
		var file *os.File

		// Read commands from a file

		file, err = os.Open(*cmdfile)
		if err == nil {
			defer file.Close()

			clt, err = termutil.AddFileReadingWrapper(clt, file, true)
		}

	} else if *cmdline != "" {
		var buf bytes.Buffer

		buf.WriteString(fmt.Sprintln(*cmdline))

		// Read commands from a single line

		clt, err = termutil.AddFileReadingWrapper(clt, &buf, true)

	} else {

		// Add history functionality

		histfile := filepath.Join(filepath.Dir(os.Args[0]), config.Str(config.ConsoleHistoryFile))
		clt, err = termutil.AddHistoryMixin(clt, histfile,
			func(s string) bool {
				return isExitLine(s)
			})
	}

	if err == nil {
		var logger util.Logger

		if logger, err = host.NewLogger(); err == nil {

			// Create the console object

			con = console.NewConsole(clt, host.NewInterpreter("console",
				interpreter.NewWriterSink(clt), logger))

			if interactive {

				// Add auto-complete for commands and keywords

				words := []string{"var", "print", "func", "for", "from", "to"}
				for _, c := range con.Commands() {
					words = append(words, c.Name())
				}

				clt, err = termutil.AddAutoCompleteMixin(clt, termutil.NewWordListDict(words))
			}
		}
	}

	// Start the console

	if err == nil {
		if err = clt.StartTerm(); err == nil {
			var line string

			defer clt.StopTerm()

			if interactive {
				fmt.Println("Type 'q' or 'quit' to exit the shell and '?' to get help")
				fmt.Println("Indent block lines with a tab or 4 spaces")
			}

			line, err = clt.NextLine()
			for err == nil && !isExitLine(line) {

				if _, cerr := con.Run(line); cerr != nil {

					// Output any error

					fmt.Fprintln(clt, cerr.Error())
				}

				line, err = clt.NextLine()
			}

			// Evaluate an unfinished block

			if ferr := con.Flush(); ferr != nil {
				fmt.Fprintln(clt, ferr.Error())
			}
		}
	}

	if err != nil {
		fmt.Println(err.Error())
	}
}
