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
Package api contains the REST API of the Minis evaluation server.

The API responds in JSON if the request was successful (Return code 200 OK)
and plain text in all other cases. Errors of evaluated code are part of a
successful response.

API root: /minis

API endpoints:

/minis/about - Product name and version
/minis/run - Evaluate code on a fresh interpreter (POST)
/minis/sock - Websocket session with a long-lived interpreter
*/
package api

import (
	"net/http"
	"strings"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/ecal/util"
	"devt.de/krotik/minis/interpreter"
)

/*
APIRoot is the root directory for the REST API
*/
const APIRoot = "/minis"

/*
Logger is the logger of the REST API and all interpreters it creates.
*/
var Logger util.Logger = util.NewNullLogger()

/*
MaxCallDepth is the maximum call depth of all interpreters created by the API.
*/
var MaxCallDepth = interpreter.DefaultMaxCallDepth

/*
OutputBufferSize is the maximum number of lines returned by a single run.
*/
var OutputBufferSize = 1000

/*
Sessions holds all open websocket sessions by their comm id.
*/
var Sessions = datautil.NewMapCache(0, 0)

/*
RestEndpointInst models a factory function for REST endpoint handlers.
*/
type RestEndpointInst func() RestEndpointHandler

/*
RestEndpointHandler models a REST endpoint handler.
*/
type RestEndpointHandler interface {

	/*
		HandleGET handles a GET request.
	*/
	HandleGET(w http.ResponseWriter, r *http.Request, resources []string)

	/*
		HandlePOST handles a POST request.
	*/
	HandlePOST(w http.ResponseWriter, r *http.Request, resources []string)
}

/*
GeneralEndpointMap contains general endpoints which should always be available
*/
var GeneralEndpointMap = map[string]RestEndpointInst{
	EndpointAbout: AboutEndpointInst,
	EndpointRun:   RunEndpointInst,
}

/*
SessionEndpointMap contains the endpoints for websocket sessions
*/
var SessionEndpointMap = map[string]RestEndpointInst{
	EndpointSock: SockEndpointInst,
}

/*
HandleFunc to use for registering handlers
*/
var HandleFunc = http.HandleFunc

/*
RegisterRestEndpoints registers all given REST endpoint handlers.
*/
func RegisterRestEndpoints(endpointInsts map[string]RestEndpointInst) {

	for url, endpointInst := range endpointInsts {

		HandleFunc(url, func() func(w http.ResponseWriter, r *http.Request) {

			var handlerURL = url
			var handlerInst = endpointInst

			return func(w http.ResponseWriter, r *http.Request) {

				// Create a new handler instance

				handler := handlerInst()

				// Handle request in appropriate method

				res := strings.TrimSpace(r.URL.Path[len(handlerURL):])

				if len(res) > 0 && res[len(res)-1] == '/' {
					res = res[:len(res)-1]
				}

				var resources []string

				if res != "" {
					resources = strings.Split(res, "/")
				}

				switch r.Method {
				case "GET":
					handler.HandleGET(w, r, resources)

				case "POST":
					handler.HandlePOST(w, r, resources)

				default:
					http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
				}
			}
		}())
	}
}

/*
DefaultEndpointHandler represents the default endpoint handler.
*/
type DefaultEndpointHandler struct {
}

/*
HandleGET is a method stub returning an error.
*/
func (de *DefaultEndpointHandler) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

/*
HandlePOST is a method stub returning an error.
*/
func (de *DefaultEndpointHandler) HandlePOST(w http.ResponseWriter, r *http.Request, resources []string) {
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}

/*
newInterpreter creates a new interpreter with the settings of the API.
*/
func newInterpreter(name string, sink interpreter.OutputSink) *interpreter.Interpreter {
	i := interpreter.NewInterpreter(name, sink)

	i.MaxCallDepth = MaxCallDepth
	i.SetLogger(Logger)

	return i
}
