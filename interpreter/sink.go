/*
 * Minis
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package interpreter

import (
	"fmt"
	"io"

	"devt.de/krotik/common/datautil"
)

/*
OutputSink receives the output of print statements. Each call receives
exactly one finished line without a line terminator.
*/
type OutputSink interface {

	/*
		Println outputs a single line.
	*/
	Println(line string) error
}

/*
SinkFunc is an adapter to use a plain function as an OutputSink.
*/
type SinkFunc func(line string) error

/*
Println outputs a single line.
*/
func (f SinkFunc) Println(line string) error {
	return f(line)
}

/*
discardSink is used if an interpreter is created without a sink.
*/
var discardSink = SinkFunc(func(string) error { return nil })

/*
WriterSink writes each line followed by a newline to an io.Writer.
*/
type WriterSink struct {
	out io.Writer
}

/*
NewWriterSink creates a new WriterSink.
*/
func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{out}
}

/*
Println outputs a single line.
*/
func (ws *WriterSink) Println(line string) error {
	_, err := fmt.Fprintln(ws.out, line)
	return err
}

/*
BufferSink keeps the last printed lines in a bounded buffer.
*/
type BufferSink struct {
	*datautil.RingBuffer
}

/*
NewBufferSink creates a new BufferSink which keeps up to size lines. The
buffer keeps at least one line.
*/
func NewBufferSink(size int) *BufferSink {
	if size < 1 {
		size = 1
	}

	return &BufferSink{datautil.NewRingBuffer(size)}
}

/*
Println outputs a single line.
*/
func (bs *BufferSink) Println(line string) error {
	bs.Add(line)
	return nil
}

/*
Lines returns all buffered lines.
*/
func (bs *BufferSink) Lines() []string {
	return bs.StringSlice()
}
