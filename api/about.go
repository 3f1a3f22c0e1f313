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
	"net/http"

	"devt.de/krotik/minis/version"
)

/*
EndpointAbout is the about endpoint URL (rooted). Handles about/

Returns an object with version information:

	product      : Name of the API provider (Minis)
	version      : Version of the API provider
	sessions     : Flag if websocket sessions are available
*/
const EndpointAbout = APIRoot + "/about/"

/*
SessionsEnabled is a flag if websocket sessions are available.
*/
var SessionsEnabled = false

/*
AboutEndpointInst creates a new endpoint handler.
*/
func AboutEndpointInst() RestEndpointHandler {
	return &aboutEndpoint{}
}

/*
Handler object for about operations.
*/
type aboutEndpoint struct {
	*DefaultEndpointHandler
}

/*
HandleGET returns about data for the REST API.
*/
func (a *aboutEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	data := map[string]interface{}{
		"product":  version.PRODUCT,
		"version":  version.VERSION,
		"sessions": SessionsEnabled,
	}

	// Write data

	w.Header().Set("content-type", "application/json; charset=utf-8")

	ret := json.NewEncoder(w)
	ret.Encode(data)
}
