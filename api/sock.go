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
	"fmt"
	"net/http"

	"devt.de/krotik/common/cryptutil"
	"devt.de/krotik/common/stringutil"
	"github.com/gorilla/websocket"
)

/*
EndpointSock is the websocket endpoint URL (rooted). Handles sock/

Client messages are JSON objects:

	code  : Minis code which should be evaluated in the session
	close : Flag to close the session

The server answers each code message with one output message per printed
line followed by either a done or an error message.
*/
const EndpointSock = APIRoot + "/sock/"

/*
sockUpgrader can upgrade normal requests to websocket communications
*/
var sockUpgrader = websocket.Upgrader{
	Subprotocols:    []string{"minis-sock"},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

/*
SockEndpointInst creates a new endpoint handler.
*/
func SockEndpointInst() RestEndpointHandler {
	return &sockEndpoint{}
}

/*
Handler object for websocket sessions.
*/
type sockEndpoint struct {
	*DefaultEndpointHandler
}

/*
HandleGET handles a websocket session.
*/
func (e *sockEndpoint) HandleGET(w http.ResponseWriter, r *http.Request, resources []string) {

	// Update the incomming connection to a websocket
	// If the upgrade fails then the client gets an HTTP error response.

	conn, err := sockUpgrader.Upgrade(w, r, nil)

	if err != nil {

		// We give details here on what went wrong

		w.Write([]byte(err.Error()))
		return
	}

	commID := fmt.Sprintf("%x", cryptutil.GenerateUUID())

	s := NewSession(commID, conn)

	Sessions.Put(commID, s)
	defer Sessions.Remove(commID)

	Logger.LogDebug("Opened session ", commID)

	if err = s.Init(); err == nil {

		for {
			var fatal bool
			var data map[string]interface{}

			// Read websocket message

			if data, fatal, err = s.ReadData(); err != nil {

				if fatal {
					break
				}

				if err = s.WriteData(map[string]interface{}{
					"type":  MessageError,
					"error": err.Error(),
				}); err != nil {
					break
				}

				continue
			}

			if val, ok := data["close"]; ok && stringutil.IsTrueValue(fmt.Sprint(val)) {
				s.Close("")
				err = nil
				break
			}

			code, ok := data["code"]

			if !ok {
				err = s.WriteData(map[string]interface{}{
					"type":  MessageError,
					"error": "Message has no code",
				})

			} else {
				err = s.Eval(fmt.Sprint(code))
			}

			if err != nil {
				break
			}
		}
	}

	if err != nil {
		s.Close(err.Error())
		Logger.LogDebug("Session ", commID, " failed: ", err)
	}

	Logger.LogDebug("Closed session ", commID)
}
