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

// Package injecttest provides test doubles and helpers for code built with
// package inject.
package injecttest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dotkernel/inject"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
}

// Container is an in-memory inject.Container that records every key it is
// asked about.
type Container struct {
	mu      sync.Mutex
	entries map[string]interface{}
	errs    map[string]error
	has     []string
	get     []string
}

var _ inject.Container = (*Container)(nil)

// NewContainer returns a container holding a copy of entries.
func NewContainer(entries map[string]interface{}) *Container {
	c := &Container{
		entries: make(map[string]interface{}, len(entries)),
		errs:    make(map[string]error),
	}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// Set stores v under key.
func (c *Container) Set(key string, v interface{}) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = v
	return c
}

// Fail makes Has report key as present and Get return err for it.
func (c *Container) Fail(key string, err error) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs[key] = err
	return c
}

// Has reports whether key was stored with Set, NewContainer or Fail.
func (c *Container) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.has = append(c.has, key)
	if _, ok := c.errs[key]; ok {
		return true
	}
	_, ok := c.entries[key]
	return ok
}

// Get returns the entry for key.
func (c *Container) Get(key string) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.get = append(c.get, key)
	if err, ok := c.errs[key]; ok {
		return nil, err
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("injecttest: no entry for %q", key)
	}
	return v, nil
}

// HasCalls returns the keys passed to Has, in call order.
func (c *Container) HasCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.has...)
}

// GetCalls returns the keys passed to Get, in call order.
func (c *Container) GetCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.get...)
}

// Keys returns the stored keys in lexical order.
func (c *Container) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RequireBuild builds class with f, failing the test if that doesn't
// succeed.
func RequireBuild(t TB, f *inject.Factory, c inject.Container, class string) interface{} {
	v, err := f.Build(c, class)
	if err != nil {
		t.Errorf("failed to build %q: %v", class, err)
		t.FailNow()
	}
	return v
}

// RequireValid fails the test if classes does not pass validation.
func RequireValid(t TB, classes *inject.Classes) {
	if err := classes.Validate(); err != nil {
		t.Errorf("class table is invalid: %v", err)
		t.FailNow()
	}
}
