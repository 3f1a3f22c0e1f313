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
	"sync"
	"time"

	"devt.de/krotik/common/timeutil"
	"devt.de/krotik/minis/interpreter"
	"github.com/gorilla/websocket"
)

/*
Message types which are sent to the client of a session
*/
const (
	MessageInit   = "init_success"
	MessageOutput = "output"
	MessageDone   = "done"
	MessageError  = "error"
)

/*
Session models a single websocket session. Each session owns a long-lived
interpreter which keeps its variables and functions between messages.

Websocket connections support one concurrent reader and one concurrent writer.
See: https://godoc.org/github.com/gorilla/websocket#hdr-Concurrency
*/
type Session struct {
	CommID  string                   // Unique id of this session
	Conn    *websocket.Conn          // Websocket connection
	Interp  *interpreter.Interpreter // Interpreter of this session
	Created string                   // Creation timestamp
	RMutex  *sync.Mutex              // Read lock
	WMutex  *sync.Mutex              // Write lock
}

/*
NewSession creates a new Session object.
*/
func NewSession(commID string, c *websocket.Conn) *Session {
	s := &Session{
		CommID:  commID,
		Conn:    c,
		Created: timeutil.MakeTimestamp(),
		RMutex:  &sync.Mutex{},
		WMutex:  &sync.Mutex{}}

	s.Interp = newInterpreter(commID, interpreter.SinkFunc(func(line string) error {
		return s.WriteData(map[string]interface{}{
			"type": MessageOutput,
			"line": line,
		})
	}))

	return s
}

/*
Init sends the init message to the client.
*/
func (s *Session) Init() error {
	return s.WriteData(map[string]interface{}{
		"type":   MessageInit,
		"commID": s.CommID,
	})
}

/*
Eval evaluates code on the interpreter of this session. All printed lines
are sent to the client followed by a done or error message.
*/
func (s *Session) Eval(code string) error {
	if err := s.Interp.EvaluateCode(code); err != nil {
		return s.WriteData(map[string]interface{}{
			"type":  MessageError,
			"error": err.Error(),
		})
	}

	return s.WriteData(map[string]interface{}{
		"type": MessageDone,
	})
}

/*
ReadData reads data from the websocket connection.
*/
func (s *Session) ReadData() (map[string]interface{}, bool, error) {
	var data map[string]interface{}
	var fatal = true

	s.RMutex.Lock()
	_, msg, err := s.Conn.ReadMessage()
	s.RMutex.Unlock()

	if err == nil {
		fatal = false
		err = json.Unmarshal(msg, &data)
	}

	return data, fatal, err
}

/*
WriteData writes data to the websocket.
*/
func (s *Session) WriteData(data map[string]interface{}) error {
	s.WMutex.Lock()
	defer s.WMutex.Unlock()

	jsonData, err := json.Marshal(data)

	if err == nil {
		err = s.Conn.WriteMessage(websocket.TextMessage, jsonData)
	}

	return err
}

/*
Close closes the websocket connection.
*/
func (s *Session) Close(msg string) {
	s.WMutex.Lock()
	defer s.WMutex.Unlock()

	s.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(
			websocket.CloseNormalClosure, msg), time.Now().Add(10*time.Second))

	s.Conn.Close()
}
