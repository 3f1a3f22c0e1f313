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
	"testing"
	"time"

	"devt.de/krotik/common/errorutil"
	"github.com/gorilla/websocket"
)

/*
readMessage reads a single JSON message from a websocket.
*/
func readMessage(c *websocket.Conn) (map[string]interface{}, error) {
	var data map[string]interface{}

	_, msg, err := c.ReadMessage()

	if err == nil {
		err = json.Unmarshal(msg, &data)
	}

	return data, err
}

/*
sendCode sends code to a session and returns all answers up to and including
the final done or error message.
*/
func sendCode(c *websocket.Conn, code string) ([]string, error) {
	var res []string

	msg, err := json.Marshal(map[string]interface{}{"code": code})
	errorutil.AssertOk(err)

	if err = c.WriteMessage(websocket.TextMessage, msg); err != nil {
		return nil, err
	}

	for {
		data, err := readMessage(c)
		if err != nil {
			return res, err
		}

		switch data["type"] {
		case MessageOutput:
			res = append(res, fmt.Sprint(data["line"]))
		case MessageError:
			return append(res, fmt.Sprint("error: ", data["error"])), nil
		default:
			return append(res, fmt.Sprint(data["type"])), nil
		}
	}
}

func TestSessions(t *testing.T) {
	sockURL := "ws://localhost" + TESTPORT + EndpointSock

	c, _, err := websocket.DefaultDialer.Dial(sockURL, nil)
	if err != nil {
		t.Error("Could not open websocket:", err)
		return
	}

	data, err := readMessage(c)
	if err != nil || data["type"] != MessageInit {
		t.Error("Unexpected response:", data, err)
		return
	}

	commID := fmt.Sprint(data["commID"])

	if len(commID) != 32 {
		t.Error("Unexpected comm id:", commID)
		return
	}

	if _, ok := Sessions.Get(commID); !ok {
		t.Error("Session should be registered")
		return
	}

	res, err := sendCode(c, "var x = 5\nprint (x + 1)\nprint 'a'")
	if err != nil || fmt.Sprint(res) != "[6 a done]" {
		t.Error("Unexpected response:", res, err)
		return
	}

	// Session state is kept between messages

	res, err = sendCode(c, "print x")
	if err != nil || fmt.Sprint(res) != "[5 done]" {
		t.Error("Unexpected response:", res, err)
		return
	}

	res, err = sendCode(c, "print 1\nfoo")
	if err != nil || fmt.Sprint(res) != fmt.Sprintf(
		"[1 error: Minis error in %v: Unrecognized statement (foo) (Line:2)]", commID) {
		t.Error("Unexpected response:", res, err)
		return
	}

	// Invalid messages

	errorutil.AssertOk(c.WriteMessage(websocket.TextMessage, []byte("buu")))

	data, err = readMessage(c)
	if err != nil || data["type"] != MessageError ||
		data["error"] != "invalid character 'b' looking for beginning of value" {
		t.Error("Unexpected response:", data, err)
		return
	}

	errorutil.AssertOk(c.WriteMessage(websocket.TextMessage, []byte(`{"foo": 1}`)))

	data, err = readMessage(c)
	if err != nil || data["type"] != MessageError || data["error"] != "Message has no code" {
		t.Error("Unexpected response:", data, err)
		return
	}

	// Close the session

	errorutil.AssertOk(c.WriteMessage(websocket.TextMessage, []byte(`{"close": true}`)))

	_, _, err = c.ReadMessage()
	if _, ok := err.(*websocket.CloseError); !ok {
		t.Error("Unexpected result:", err)
		return
	}

	c.Close()

	for i := 0; i < 100; i++ {
		if _, ok := Sessions.Get(commID); !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Error("Session should have been removed")
}
