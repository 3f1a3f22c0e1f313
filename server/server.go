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
Package server contains the code for the Minis evaluation server.
*/
package server

import (
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/httputil"
	"devt.de/krotik/common/lockutil"
	"devt.de/krotik/minis/api"
	"devt.de/krotik/minis/config"
	"devt.de/krotik/minis/host"
	"devt.de/krotik/minis/version"
)

/*
Using custom consolelogger type so we can test log.Fatal calls with unit tests. Overwrite
these if the server should not call os.Exit on a fatal error.
*/
type consolelogger func(v ...interface{})

var fatal = consolelogger(log.Fatal)
var print = consolelogger(log.Print)

/*
Base path for all file (used by unit tests)
*/
var basepath = ""

/*
StartServer runs the Minis server. The server uses config.Config for all its
configuration parameters.
*/
func StartServer() {

	print(fmt.Sprintf("%v %v", version.PRODUCT, version.VERSION))

	// Ensure we have a configuration - use the default configuration if nothing was set

	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	logger, err := host.NewLogger()
	if err != nil {
		fatal("Failed to create logger:", err)
		return
	}

	// Setting API parameters

	api.Logger = logger
	api.MaxCallDepth = int(config.Int(config.MaxCallDepth))
	api.OutputBufferSize = int(config.Int(config.OutputBufferSize))
	api.Sessions = datautil.NewMapCache(uint64(config.Int(config.MaxSessions)),
		config.Int(config.SessionMaxAge))

	// Register REST endpoints

	api.RegisterRestEndpoints(api.GeneralEndpointMap)

	api.SessionsEnabled = config.Bool(config.EnableSessions)

	if api.SessionsEnabled {

		print("Enabling websocket sessions (max: ", config.Int(config.MaxSessions), ")")

		api.RegisterRestEndpoints(api.SessionEndpointMap)
	}

	// Register web terminal

	if config.Bool(config.EnableWebTerminal) {
		webFolder := filepath.Join(basepath, config.Str(config.LocationWebFolder))

		print("Ensuring web folder: ", webFolder)

		ensurePath(webFolder)
		ensurePath(filepath.Join(webFolder, api.APIRoot))

		termFile := filepath.Join(webFolder, api.APIRoot, "term.html")

		print("Ensuring web terminal: ", termFile)

		if res, _ := fileutil.PathExists(termFile); !res {
			errorutil.AssertOk(ioutil.WriteFile(termFile, []byte(TermSRC[1:]), 0644))
		}

		fs := http.FileServer(http.Dir(webFolder))

		api.HandleFunc("/", fs.ServeHTTP)
	}

	// Start HTTP server and enable REST API

	hs := &httputil.HTTPServer{}

	var wg sync.WaitGroup
	wg.Add(1)

	addr := config.ServerAddress()

	print("Starting server on: ", addr)

	go hs.RunHTTPServer(addr, &wg)

	// Wait until the server has started

	wg.Wait()

	// HTTP Server has started

	if hs.LastError != nil {
		fatal(hs.LastError)
		return
	}

	lockFile := filepath.Join(basepath, config.Str(config.LockFile))

	defer os.RemoveAll(lockFile)

	// Create a lockfile so the server can be shut down

	lf := lockutil.NewLockFile(lockFile, time.Duration(2)*time.Second)

	if err := lf.Start(); err != nil {
		print("Could not watch lockfile: ", err)
	}

	go func() {

		// Check if the lockfile watcher is running and
		// call shutdown once it has finished

		for lf.WatcherRunning() {
			time.Sleep(time.Duration(1) * time.Second)
		}

		print("Lockfile was modified")

		hs.Shutdown()
	}()

	// Add to the wait group so we can wait for the shutdown

	wg.Add(1)

	print("Waiting for shutdown")
	wg.Wait()

	print("Shutting down")
}

/*
ensurePath ensures that a given relative path exists.
*/
func ensurePath(path string) {
	if res, _ := fileutil.PathExists(path); !res {
		if err := os.Mkdir(path, 0770); err != nil {
			fatal("Could not create directory:", err.Error())
			return
		}
	}
}
