/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package server

import (
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/httputil"
	"devt.de/krotik/minis/api"
	"devt.de/krotik/minis/config"
)

const testdir = "testdir"

const testport = "9596"

var printLog = []string{}
var errorLog = []string{}

var printLogging = false

func TestMain(m *testing.M) {
	flag.Parse()

	basepath = testdir + "/"

	// Log all print and error messages

	print = func(v ...interface{}) {
		if printLogging {
			fmt.Println(v...)
		}
		printLog = append(printLog, fmt.Sprint(v...))
	}
	fatal = func(v ...interface{}) {
		if printLogging {
			fmt.Println(v...)
		}
		errorLog = append(errorLog, fmt.Sprint(v...))
	}

	defer func() {
		fatal = log.Fatal
		basepath = ""
	}()

	if res, _ := fileutil.PathExists(testdir); res {
		if err := os.RemoveAll(testdir); err != nil {
			fmt.Print("Could not remove test directory:", err.Error())
		}
	}

	ensurePath(testdir)

	// Run the tests

	res := m.Run()

	if res, _ := fileutil.PathExists(testdir); res {
		if err := os.RemoveAll(testdir); err != nil {
			fmt.Print("Could not remove test directory:", err.Error())
		}
	}

	os.Exit(res)
}

func TestMainNormalCase(t *testing.T) {

	// Make sure to reset the DefaultServeMux

	defer func() { http.DefaultServeMux = http.NewServeMux() }()

	printLog = []string{}
	errorLog = []string{}

	config.LoadDefaultConfig()
	config.Config[config.ServerPort] = testport
	config.Config[config.LogLevel] = "error"

	defer config.LoadDefaultConfig()

	done := make(chan bool)

	go func() {
		StartServer()
		done <- true
	}()

	// Wait for the server and query it

	queryURL := "http://localhost:" + testport

	var about, run, term string

	for i := 0; i < 100 && about == ""; i++ {
		time.Sleep(50 * time.Millisecond)
		about, _ = sendTestRequest(queryURL+api.EndpointAbout, "GET", nil)
	}

	run, _ = sendTestRequest(queryURL+api.EndpointRun, "POST", []byte("print (1 + 2)"))
	term, _ = sendTestRequest(queryURL+api.APIRoot+"/term.html", "GET", nil)

	// To exit the main function the lock watcher thread
	// has to recognise that the lockfile was modified

	shutdown := false

	go func() {
		filename := basepath + config.Str(config.LockFile)

		for !shutdown {
			shutdownWithLogFile(filename)
			time.Sleep(time.Duration(200) * time.Millisecond)
		}
	}()

	<-done

	shutdown = true

	if !strings.Contains(about, `"product":"Minis"`) || !strings.Contains(about, `"sessions":true`) {
		t.Error("Unexpected about response:", about)
		return
	}

	if run != `{"error":null,"output":["3"]}` {
		t.Error("Unexpected run response:", run)
		return
	}

	if !strings.Contains(term, "<title>Minis Terminal</title>") {
		t.Error("Unexpected terminal page:", term)
		return
	}

	if len(errorLog) != 0 {
		t.Error("Unexpected errors:", errorLog)
		return
	}

	logString := strings.Join(printLog, "\n")

	if runtime.GOOS == "windows" {
		logString = strings.Replace(logString, "\\", "/", -1)
	}

	if logString != `
Minis 1.0.0
Enabling websocket sessions (max: 100)
Ensuring web folder: testdir/web
Ensuring web terminal: testdir/web/minis/term.html
Starting server on: localhost:9596
Waiting for shutdown
Lockfile was modified
Shutting down`[1:] {
		t.Error("Unexpected log:", logString)
		return
	}
}

func TestMainErrorCases(t *testing.T) {

	defer func() { http.DefaultServeMux = http.NewServeMux() }()

	config.LoadDefaultConfig()
	defer config.LoadDefaultConfig()

	// Invalid log level

	printLog = []string{}
	errorLog = []string{}

	config.Config[config.LogLevel] = "foo"

	StartServer()

	if len(errorLog) != 1 || !strings.Contains(errorLog[0], "Failed to create logger") {
		t.Error("Unexpected error:", errorLog)
		return
	}

	config.Config[config.LogLevel] = "error"

	// Port already in use

	printLog = []string{}
	errorLog = []string{}

	config.Config[config.ServerPort] = testport
	config.Config[config.EnableSessions] = false
	config.Config[config.EnableWebTerminal] = false

	ths := httputil.HTTPServer{}
	go ths.RunHTTPServer("localhost:"+testport, nil)

	time.Sleep(time.Duration(1) * time.Second)

	StartServer()

	ths.Shutdown()

	time.Sleep(time.Duration(1) * time.Second)

	if ths.Running {
		t.Error("Server should not be running")
		return
	}

	if len(errorLog) != 1 || !strings.Contains(errorLog[0], "listen tcp") {
		t.Error("Unexpected error:", errorLog)
		return
	}

	if api.SessionsEnabled {
		t.Error("Sessions should not be enabled")
		return
	}
}

func shutdownWithLogFile(filename string) error {

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0660)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write([]byte("a"))

	return err
}

/*
Send a request to a HTTP test server
*/
func sendTestRequest(url string, method string, content []byte) (string, error) {
	var req *http.Request
	var err error

	if content != nil {
		req, err = http.NewRequest(method, url, bytes.NewBuffer(content))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}

	if err != nil {
		return "", err
	}

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)

	return strings.TrimSpace(string(body)), err
}
