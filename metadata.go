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

// MetadataReader reads injection directives from a class table.
//
// Directives are read on every call; nothing is cached.
type MetadataReader struct {
	classes *Classes
}

// NewMetadataReader returns a reader over classes.
func NewMetadataReader(classes *Classes) *MetadataReader {
	return &MetadataReader{classes: classes}
}

// ReadDirective returns the service references the constructor of the named
// class asks for, in declaration order. The result is empty when the class
// has no constructor or the constructor carries no directive.
//
// A directive that lists the class itself fails with a RecursiveInjectError.
// Only this direct self reference is detected.
func (r *MetadataReader) ReadDirective(class string) ([]string, error) {
	c, ok := r.classes.Lookup(class)
	if !ok {
		return nil, &ClassNotFoundError{Name: class}
	}

	if !c.HasConstructor() {
		return nil, nil
	}

	refs, ok := c.Directive()
	if !ok {
		return nil, nil
	}

	for _, ref := range refs {
		if c.refersTo(ref) {
			return nil, &RecursiveInjectError{Class: class}
		}
	}
	return refs, nil
}
