/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package api

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"devt.de/krotik/common/httputil"
	"devt.de/krotik/minis/version"
)

const TESTPORT = ":9595"

const queryURL = "http://localhost" + TESTPORT

var lastRes []string

type testEndpoint struct {
	*DefaultEndpointHandler
}

func (te *testEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {
	lastRes = resources
	te.DefaultEndpointHandler.HandleGET(w, r, resources)
}

var testEndpointMap = map[string]RestEndpointInst{
	"/": func() RestEndpointHandler {
		return &testEndpoint{}
	},
}

func TestMain(m *testing.M) {
	flag.Parse()

	hs, wg := startServer()
	if hs == nil {
		return
	}

	SessionsEnabled = true

	RegisterRestEndpoints(testEndpointMap)
	RegisterRestEndpoints(GeneralEndpointMap)
	RegisterRestEndpoints(SessionEndpointMap)

	// Run the tests

	res := m.Run()

	stopServer(hs, wg)

	os.Exit(res)
}

func TestEndpointHandling(t *testing.T) {

	lastRes = nil

	if res := sendTestRequest(queryURL, "GET", nil); res != "Method Not Allowed" {
		t.Error("Unexpected response:", res)
		return
	}

	if lastRes != nil {
		t.Error("Unexpected lastRes:", lastRes)
	}

	lastRes = nil

	if res := sendTestRequest(queryURL+"/foo/bar/", "GET", nil); res != "Method Not Allowed" {
		t.Error("Unexpected response:", res)
		return
	}

	if fmt.Sprint(lastRes) != "[foo bar]" {
		t.Error("Unexpected lastRes:", lastRes)
	}

	if res := sendTestRequest(queryURL, "POST", nil); res != "Method Not Allowed" {
		t.Error("Unexpected response:", res)
		return
	}

	if res := sendTestRequest(queryURL, "PUT", nil); res != "Method Not Allowed" {
		t.Error("Unexpected response:", res)
		return
	}

	// Test about endpoint

	if res := sendTestRequest(queryURL+EndpointAbout, "GET", nil); res != fmt.Sprintf(`
{
  "product": "Minis",
  "sessions": true,
  "version": "%v"
}`[1:], version.VERSION) {
		t.Error("Unexpected response:", res)
		return
	}
}

func TestRun(t *testing.T) {

	if res := sendTestRequest(queryURL+EndpointRun, "GET", nil); res != "Method Not Allowed" {
		t.Error("Unexpected response:", res)
		return
	}

	if res := sendTestRequest(queryURL+EndpointRun, "POST", []byte(`
var x = 5
var y = 3
print (x + y)
for i from 1 to 2
	print i
`)); res != `
{
  "error": null,
  "output": [
    "8",
    "1",
    "2"
  ]
}`[1:] {
		t.Error("Unexpected response:", res)
		return
	}

	// Output before an error is kept

	if res := sendTestRequest(queryURL+EndpointRun, "POST", []byte(`
print 'a'
print (10 / 0)
`)); res != `
{
  "error": "Minis error in run: Division by zero (10 / 0) (Line:2)",
  "output": [
    "a"
  ]
}`[1:] {
		t.Error("Unexpected response:", res)
		return
	}

	// Each run gets a fresh interpreter

	if res := sendTestRequest(queryURL+EndpointRun, "POST", []byte("print x")); res != `
{
  "error": "Minis error in run: Unable to determine type (x) (Line:1)",
  "output": []
}`[1:] {
		t.Error("Unexpected response:", res)
		return
	}

	// Output is limited by the buffer size

	OutputBufferSize = 2
	defer func() {
		OutputBufferSize = 1000
	}()

	if res := sendTestRequest(queryURL+EndpointRun, "POST", []byte("for i from 1 to 5\n\tprint i")); res != `
{
  "error": null,
  "output": [
    "4",
    "5"
  ]
}`[1:] {
		t.Error("Unexpected response:", res)
		return
	}

	// A buffer size below one still keeps the last line

	OutputBufferSize = 0

	if res := sendTestRequest(queryURL+EndpointRun, "POST", []byte("print 1\nprint 2")); res != `
{
  "error": null,
  "output": [
    "2"
  ]
}`[1:] {
		t.Error("Unexpected response:", res)
		return
	}
}

/*
Send a request to a HTTP test server
*/
func sendTestRequest(url string, method string, content []byte) string {
	var req *http.Request
	var err error

	if content != nil {
		req, err = http.NewRequest(method, url, bytes.NewBuffer(content))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}

	if err != nil {
		panic(err)
	}

	req.Header.Set("Content-Type", "text/plain")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	body, _ := ioutil.ReadAll(resp.Body)
	bodyStr := strings.Trim(string(body), " \n")

	// Try json decoding first

	out := bytes.Buffer{}
	err = json.Indent(&out, []byte(bodyStr), "", "  ")
	if err == nil {
		return out.String()
	}

	// Just return the body

	return bodyStr
}

/*
Start a HTTP test server.
*/
func startServer() (*httputil.HTTPServer, *sync.WaitGroup) {
	hs := &httputil.HTTPServer{}

	var wg sync.WaitGroup
	wg.Add(1)

	go hs.RunHTTPServer(TESTPORT, &wg)

	wg.Wait()

	// Server is started

	if hs.LastError != nil {
		panic(hs.LastError)
	}

	return hs, &wg
}

/*
Stop a started HTTP test server.
*/
func stopServer(hs *httputil.HTTPServer, wg *sync.WaitGroup) {

	if hs.Running == true {

		wg.Add(1)

		// Server is shut down

		hs.Shutdown()

		wg.Wait()

	} else {

		panic("Server was not running as expected")
	}
}
