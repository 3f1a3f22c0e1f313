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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/minis/interpreter"
)

/*
EndpointRun is the run endpoint URL (rooted). Handles run/

The request body is Minis source code which is evaluated on a fresh
interpreter. The response is an object:

	output : List of printed lines
	error  : Error message or null if the code ran without errors
*/
const EndpointRun = APIRoot + "/run/"

/*
RunEndpointInst creates a new endpoint handler.
*/
func RunEndpointInst() RestEndpointHandler {
	return &runEndpoint{}
}

/*
Handler object for run operations.
*/
type runEndpoint struct {
	*DefaultEndpointHandler
}

/*
HandlePOST evaluates the code in the request body.
*/
func (re *runEndpoint) HandlePOST(w http.ResponseWriter, r *http.Request, resources []string) {

	code, err := ioutil.ReadAll(r.Body)

	if err != nil {
		http.Error(w, fmt.Sprintf("Could not read request body: %v", err.Error()),
			http.StatusBadRequest)
		return
	}

	sink := interpreter.NewBufferSink(OutputBufferSize)
	i := newInterpreter("run", sink)

	data := map[string]interface{}{
		"error": nil,
	}

	if err := i.EvaluateCode(string(code)); err != nil {
		data["error"] = err.Error()
	}

	lines := sink.Lines()
	data["output"] = lines

	Logger.LogDebug(fmt.Sprintf("Evaluated code with %v line%v of output (error: %v)",
		len(lines), stringutil.Plural(len(lines)), data["error"]))

	// Write data

	w.Header().Set("content-type", "application/json; charset=utf-8")

	ret := json.NewEncoder(w)
	ret.Encode(data)
}
