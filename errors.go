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

package inject

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrClassNotFound matches every ClassNotFoundError.
	ErrClassNotFound = errors.New("class not found")

	// ErrRecursiveInject matches every RecursiveInjectError.
	ErrRecursiveInject = errors.New("recursive injection")

	// ErrMissingKey matches every MissingKeyError.
	ErrMissingKey = errors.New("missing key")

	// ErrPathTooDeep is the cause of a MissingKeyError for references with
	// more segments than the resolver is configured to follow.
	ErrPathTooDeep = errors.New("dotted path too deep")

	// ErrInvalidClass matches every RegistrationError.
	ErrInvalidClass = errors.New("invalid class")
)

// ClassNotFoundError is returned when a name is neither a registered class
// nor, where a container is consulted, a container key.
type ClassNotFoundError struct {
	Name string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class or service %q not found", e.Name)
}

// Is reports whether target is ErrClassNotFound.
func (e *ClassNotFoundError) Is(target error) bool {
	return target == ErrClassNotFound
}

// RecursiveInjectError is returned when a class lists its own name in its
// injection directive.
type RecursiveInjectError struct {
	Class string
}

func (e *RecursiveInjectError) Error() string {
	return fmt.Sprintf("recursive injection: class %q cannot inject itself", e.Class)
}

// Is reports whether target is ErrRecursiveInject.
func (e *RecursiveInjectError) Is(target error) bool {
	return target == ErrRecursiveInject
}

// MissingKeyError is returned when a segment of a dotted reference cannot be
// read. Reference is always the full reference as it was declared.
type MissingKeyError struct {
	Reference string
	Segment   string

	// Cause is set when the lookup was abandoned for a reason other than an
	// absent key.
	Cause error
}

func (e *MissingKeyError) Error() string {
	msg := fmt.Sprintf("key %q provided in the dotted notation could not be found in the array service", e.Reference)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is ErrMissingKey.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Unwrap returns the cause, if any.
func (e *MissingKeyError) Unwrap() error {
	return e.Cause
}

// ArgumentError is returned when a resolved value cannot be passed to the
// constructor parameter at Index.
type ArgumentError struct {
	Class     string
	Index     int
	Reference string
	Want      string
	Got       string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("cannot use %v resolved from %q as argument %d (%v) of %q",
		e.Got, e.Reference, e.Index, e.Want, e.Class)
}

// RegistrationError describes a class that cannot be registered or that
// fails validation.
type RegistrationError struct {
	Class    string
	Location string
	Reason   string
}

func (e *RegistrationError) Error() string {
	msg := fmt.Sprintf("invalid class %q", e.Class)
	if e.Location != "" {
		msg += " registered at " + e.Location
	}
	return msg + ": " + e.Reason
}

// Is reports whether target is ErrInvalidClass.
func (e *RegistrationError) Is(target error) bool {
	return target == ErrInvalidClass
}
