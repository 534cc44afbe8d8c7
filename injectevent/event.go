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

import "time"

// Event defines an event emitted while building attributed classes.
type Event interface {
	event() // Only injectevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Building) event() {}
func (*Built) event()    {}
func (*Resolved) event() {}

// Building is emitted before the factory reads the directive of a class.
type Building struct {
	// Class is the name of the class being built.
	Class string
}

// Built is emitted after the factory finished building a class, whether or
// not it succeeded.
type Built struct {
	Class string

	// Arguments is the number of references the directive listed.
	Arguments int
	Runtime   time.Duration
	Err       error
}

// Source identifies where a resolved value came from.
type Source string

// Sources of a resolved value.
const (
	// SourceContainer means the reference was a plain container key.
	SourceContainer Source = "container"

	// SourceClass means the key was absent from the container and a
	// registered class was instantiated instead.
	SourceClass Source = "class"

	// SourcePath means the value was read from a dotted path inside a
	// keyed service.
	SourcePath Source = "path"
)

// Resolved is emitted once for every service reference the resolver
// handles.
type Resolved struct {
	// Reference is the reference string as it was declared.
	Reference string

	// Key is the container key or class name the reference resolved
	// against. It differs from Reference for dotted paths.
	Key    string
	Source Source
	Err    error
}
