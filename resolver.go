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
	"strings"

	"github.com/dotkernel/inject/injectevent"
)

// Resolver turns service references into values.
//
// A Resolver holds no state between calls and may be shared.
type Resolver struct {
	classes      *Classes
	log          injectevent.Logger
	maxPathDepth int
}

// NewResolver returns a resolver that falls back to instantiating classes
// from the given table when a key is not in the container.
func NewResolver(classes *Classes, opts ...Option) *Resolver {
	o := newOptions(opts)
	return &Resolver{
		classes:      classes,
		log:          o.logger,
		maxPathDepth: o.maxPathDepth,
	}
}

// ResolveAll resolves refs in order and returns the values in the same
// order. It stops at the first reference that fails.
func (r *Resolver) ResolveAll(c Container, refs []string) ([]interface{}, error) {
	values := make([]interface{}, 0, len(refs))
	for _, ref := range refs {
		v, err := r.Resolve(c, ref)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Resolve returns the value ref points at.
//
// A reference containing dots is first tried as a container key or class
// name in its entirety. Only when neither exists is it split into a
// key (up to the first dot) and a path into the value stored under that
// key. The key is fetched from the container if present, or else
// instantiated from the class table with no arguments.
func (r *Resolver) Resolve(c Container, ref string) (interface{}, error) {
	key, path := r.split(c, ref)

	var (
		v      interface{}
		source injectevent.Source
		err    error
	)
	if len(path) > r.maxPathDepth {
		// Rejected before the key is fetched or instantiated.
		source = injectevent.SourcePath
		err = &MissingKeyError{Reference: ref, Segment: path[r.maxPathDepth], Cause: ErrPathTooDeep}
	} else {
		v, source, err = r.resolveKey(c, key)
		if err == nil && len(path) > 0 {
			source = injectevent.SourcePath
			v, err = readKeys(ref, path, v)
		}
	}

	r.log.LogEvent(&injectevent.Resolved{
		Reference: ref,
		Key:       key,
		Source:    source,
		Err:       err,
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// split separates a dotted reference into its container key and path. Class
// names contain dots of their own ("example.com/app.Mailer"), so a reference
// naming a registered class is never split either.
func (r *Resolver) split(c Container, ref string) (key string, path []string) {
	parts := strings.Split(ref, ".")
	if len(parts) > 1 && !c.Has(ref) && !r.classes.Has(ref) {
		return parts[0], parts[1:]
	}
	return ref, nil
}

func (r *Resolver) resolveKey(c Container, key string) (interface{}, injectevent.Source, error) {
	if c.Has(key) {
		v, err := c.Get(key)
		return v, injectevent.SourceContainer, err
	}
	if r.classes.Has(key) {
		v, err := r.classes.Instantiate(key)
		return v, injectevent.SourceClass, err
	}
	return nil, "", &ClassNotFoundError{Name: key}
}
