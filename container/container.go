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

package container

import (
	"io"
	"sort"
	"sync"

	"github.com/dotkernel/inject"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Factory builds the entry for a key. It receives the container so it can
// fetch its own dependencies.
type Factory func(c inject.Container) (interface{}, error)

// Option configures a Container.
type Option func(*Container)

// WithLogger logs factory invocations to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.log = logger
		}
	}
}

// FactoryOption configures a factory registration.
type FactoryOption func(*registration)

// Shared controls whether the first instance built by the factory is reused.
// Factories are shared unless told otherwise.
func Shared(shared bool) FactoryOption {
	return func(r *registration) {
		r.shared = shared
	}
}

type registration struct {
	factory  Factory
	shared   bool
	built    bool
	instance interface{}
}

// Container is a string-keyed service container.
//
// Registration and lookup are safe for concurrent use. Cycles are detected
// along each call path: a factory must fetch its dependencies from the
// container it is handed, not from the outer one.
type Container struct {
	mu        sync.Mutex
	values    map[string]interface{}
	factories map[string]*registration
	log       *zap.Logger
}

var _ inject.Container = (*Container)(nil)

// New returns an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		values:    make(map[string]interface{}),
		factories: make(map[string]*registration),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores v under key, replacing any earlier value or factory.
func (c *Container) Set(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.factories, key)
	c.values[key] = v
}

// SetFactory registers f as the factory for key, replacing any earlier
// value or factory.
func (c *Container) SetFactory(key string, f Factory, opts ...FactoryOption) {
	r := &registration{factory: f, shared: true}
	for _, opt := range opts {
		opt(r)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)
	c.factories[key] = r
}

// Provide registers the injection factory for each of the named classes,
// or for every class the factory knows when no names are given.
func (c *Container) Provide(f *inject.Factory, classes ...string) error {
	table := f.Classes()
	if len(classes) == 0 {
		classes = table.Names()
	}

	var err error
	for _, name := range classes {
		if !table.Has(name) {
			err = multierr.Append(err, &inject.ClassNotFoundError{Name: name})
			continue
		}
		c.SetFactory(name, Factory(f.For(name)))
	}
	return err
}

// Has reports whether key has a value or a factory.
func (c *Container) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[key]; ok {
		return true
	}
	_, ok := c.factories[key]
	return ok
}

// Get returns the entry for key, running its factory if needed. Errors
// returned by factories are passed through as they are.
func (c *Container) Get(key string) (interface{}, error) {
	return c.get(key, nil)
}

// chain is the view of a Container handed to a factory. path holds the
// keys being built on this call path, outermost first.
type chain struct {
	*Container

	path []string
}

func (ch *chain) Get(key string) (interface{}, error) {
	return ch.Container.get(key, ch.path)
}

func (c *Container) get(key string, path []string) (interface{}, error) {
	c.mu.Lock()
	if v, ok := c.values[key]; ok {
		c.mu.Unlock()
		return v, nil
	}

	r, ok := c.factories[key]
	if !ok {
		c.mu.Unlock()
		return nil, &NotFoundError{Key: key}
	}
	if r.shared && r.built {
		v := r.instance
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	for i, k := range path {
		if k == key {
			return nil, &CycleError{Path: append(append([]string{}, path[i:]...), key)}
		}
	}
	path = append(path[:len(path):len(path)], key)

	c.log.Debug("running factory", zap.String("key", key))
	v, err := r.factory(&chain{Container: c, path: path})
	if err != nil {
		c.log.Debug("factory failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if r.shared {
		if r.built {
			return r.instance, nil
		}
		r.instance, r.built = v, true
	}
	return v, nil
}

// Keys returns every key with a value or factory, in lexical order.
func (c *Container) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.values)+len(c.factories))
	for k := range c.values {
		keys = append(keys, k)
	}
	for k := range c.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close closes every value and shared instance that implements io.Closer,
// in reverse lexical order of their keys, and reports all failures.
func (c *Container) Close() error {
	keys := c.Keys()

	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	for i := len(keys) - 1; i >= 0; i-- {
		var v interface{}
		if val, ok := c.values[keys[i]]; ok {
			v = val
		} else if r, ok := c.factories[keys[i]]; ok && r.built {
			v = r.instance
		}
		if closer, ok := v.(io.Closer); ok {
			err = multierr.Append(err, closer.Close())
		}
	}
	return err
}
