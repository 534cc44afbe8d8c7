// Copyright (c) 2024 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package injectevent

import (
	"fmt"
	"io"
)

// ConsoleLogger is an event logger that attempts to write human-readable
// messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[Inject] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Building:
		l.logf("BUILD\t\t%s", e.Class)
	case *Built:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to build %s: %v", e.Class, e.Err)
		} else {
			l.logf("BUILT\t\t%s with %d argument(s) in %s", e.Class, e.Arguments, e.Runtime)
		}
	case *Resolved:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to resolve %q: %v", e.Reference, e.Err)
		} else if e.Reference != e.Key {
			l.logf("RESOLVE\t%s <= %s (%s)", e.Reference, e.Key, e.Source)
		} else {
			l.logf("RESOLVE\t%s (%s)", e.Reference, e.Source)
		}
	}
}
