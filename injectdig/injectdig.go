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

package injectdig

import (
	"reflect"
	"sort"
	"sync"

	"github.com/dotkernel/inject"
	"github.com/pkg/errors"
	"go.uber.org/dig"
)

var _errType = reflect.TypeOf((*error)(nil)).Elem()

// Container reads services out of a dig container by key.
type Container struct {
	d *dig.Container

	mu       sync.RWMutex
	bindings map[string]reflect.Type
}

var _ inject.Container = (*Container)(nil)

// New builds a Container backed by d.
func New(d *dig.Container) *Container {
	return &Container{
		d:        d,
		bindings: make(map[string]reflect.Type),
	}
}

// Bind makes key resolve to the dig value of target's type. Pass a typed
// nil pointer to an interface to bind the interface itself:
//
//	c.Bind("transport", (*Transport)(nil))
func (c *Container) Bind(key string, target interface{}) error {
	t := reflect.TypeOf(target)
	if t == nil {
		return errors.Errorf("cannot bind %q to untyped nil", key)
	}
	if t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.bindings[key]; ok {
		return errors.Errorf("key %q is already bound to %v", key, prev)
	}
	c.bindings[key] = t
	return nil
}

// Has reports whether key is bound.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.bindings[key]
	return ok
}

// Keys returns the bound keys in lexical order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get asks dig for the value bound to key.
func (c *Container) Get(key string) (interface{}, error) {
	c.mu.RLock()
	t, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("key %q is not bound", key)
	}

	var out interface{}
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{t}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			out = args[0].Interface()
			return nil
		},
	)
	if err := c.d.Invoke(fn.Interface()); err != nil {
		return nil, errors.Wrapf(err, "could not get %q", key)
	}
	return out, nil
}

// Provide registers class with d. The constructor dig runs builds the class
// through f, resolving its references from src.
func Provide(d *dig.Container, f *inject.Factory, src inject.Container, class string, opts ...dig.ProvideOption) error {
	cls, ok := f.Classes().Lookup(class)
	if !ok {
		return &inject.ClassNotFoundError{Name: class}
	}

	t := cls.Type
	ctor := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{t, _errType}, false),
		func([]reflect.Value) []reflect.Value {
			result := reflect.New(t).Elem()
			errv := reflect.New(_errType).Elem()

			v, err := f.Build(src, class)
			if err != nil {
				errv.Set(reflect.ValueOf(err))
				return []reflect.Value{result, errv}
			}
			if v != nil {
				result.Set(reflect.ValueOf(v))
			}
			return []reflect.Value{result, errv}
		},
	)

	if err := d.Provide(ctor.Interface(), opts...); err != nil {
		return errors.Wrapf(err, "cannot provide class %q", class)
	}
	return nil
}
