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
	"time"

	"github.com/dotkernel/inject/injectevent"
)

// Factory builds registered classes, injecting the services their
// directives ask for.
type Factory struct {
	classes  *Classes
	reader   *MetadataReader
	resolver *Resolver
	log      injectevent.Logger
}

// NewFactory returns a factory for the classes in the given table.
func NewFactory(classes *Classes, opts ...Option) *Factory {
	return &Factory{
		classes:  classes,
		reader:   NewMetadataReader(classes),
		resolver: NewResolver(classes, opts...),
		log:      newOptions(opts).logger,
	}
}

// Classes returns the class table the factory builds from.
func (f *Factory) Classes() *Classes {
	return f.classes
}

// Build returns a new instance of class. The references of its directive
// are resolved against c in declaration order and passed to the
// constructor positionally.
func (f *Factory) Build(c Container, class string) (_ interface{}, err error) {
	if !f.classes.Has(class) {
		return nil, &ClassNotFoundError{Name: class}
	}

	f.log.LogEvent(&injectevent.Building{Class: class})
	var refs []string
	defer func(start time.Time) {
		f.log.LogEvent(&injectevent.Built{
			Class:     class,
			Arguments: len(refs),
			Runtime:   time.Since(start),
			Err:       err,
		})
	}(time.Now())

	refs, err = f.reader.ReadDirective(class)
	if err != nil {
		return nil, err
	}

	args, err := f.resolver.ResolveAll(c, refs)
	if err != nil {
		return nil, err
	}

	node, ok := f.classes.node(class)
	if !ok {
		return nil, &ClassNotFoundError{Name: class}
	}
	return node.instantiate(args, refs)
}

// For returns a function that builds class from the container it is given.
// It has the shape containers expect of a factory registered for a key.
func (f *Factory) For(class string) func(Container) (interface{}, error) {
	return func(c Container) (interface{}, error) {
		return f.Build(c, class)
	}
}
