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

// Package inject builds objects whose constructors declare, ahead of time,
// which container entries they need.
//
// A class is registered once in a [Classes] table together with an optional
// injection directive: the ordered list of service references that become
// the constructor's arguments.
//
//	classes := inject.NewClasses()
//	classes.MustRegister(NewMailer, inject.Inject(
//		"example.com/app.Transport", // class name, built if absent
//		"config.mail",               // dotted path into the "config" service
//	))
//
// A [Factory] then builds the class against any container that answers
// Has and Get.
//
//	factory := inject.NewFactory(classes)
//	mailer, err := factory.Build(c, "example.com/app.Mailer")
//
// # Service references
//
// A reference is resolved in three steps. If it contains dots and the
// container has no entry under the full string, the part before the first
// dot is the container key and the rest is a path into the value stored
// there. Otherwise the whole reference is the key. The key is fetched from
// the container, or, failing that, instantiated from the class table with no
// arguments. Path segments are then read one by one from maps, slices and
// [Keyed] values.
//
// # Errors
//
// Failures are reported as [ClassNotFoundError], [RecursiveInjectError],
// [MissingKeyError] and [ArgumentError]. Errors returned by the container are
// passed through untouched.
//
// The factory only guards against a class listing itself in its own
// directive. Longer cycles are the container's business; see the container
// package for an implementation that reports them.
package inject
