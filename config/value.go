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

package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Root marks the root node in a Value.
const Root = ""

// Value is a decoded configuration tree.
type Value map[string]interface{}

// Setter is the write side of a service container.
type Setter interface {
	Set(key string, v interface{})
}

// Lookup returns the top-level entry stored under key.
func (v Value) Lookup(key string) (interface{}, bool) {
	val, ok := v[key]
	return val, ok
}

// Get returns the entry at dottedPath. Keys are compared exactly first and
// case-insensitively after that. Array elements are addressed by index.
func (v Value) Get(dottedPath string) (interface{}, bool) {
	if dottedPath == Root {
		return v, true
	}

	var node interface{} = map[string]interface{}(v)
	for _, part := range strings.Split(dottedPath, ".") {
		next, ok := find(node, part)
		if !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Scope returns the object at prefix as a Value of its own.
func (v Value) Scope(prefix string) (Value, bool) {
	node, ok := v.Get(prefix)
	if !ok {
		return nil, false
	}
	switch m := node.(type) {
	case Value:
		return m, true
	case map[string]interface{}:
		return Value(m), true
	}
	return nil, false
}

// Keys returns the top-level keys in lexical order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register publishes top-level sections as services, each under its own
// key. With no keys, every section is published.
func (v Value) Register(s Setter, keys ...string) error {
	if len(keys) == 0 {
		keys = v.Keys()
	}

	for _, k := range keys {
		if _, ok := v[k]; !ok {
			return errors.Errorf("configuration has no section %q", k)
		}
	}
	for _, k := range keys {
		s.Set(k, v[k])
	}
	return nil
}

func find(node interface{}, part string) (interface{}, bool) {
	switch n := node.(type) {
	case map[string]interface{}:
		if val, ok := n[part]; ok {
			return val, true
		}
		for k, val := range n {
			if strings.EqualFold(k, part) {
				return val, true
			}
		}
	case []interface{}:
		i, err := strconv.Atoi(part)
		if err == nil && i >= 0 && i < len(n) {
			return n[i], true
		}
	}
	return nil, false
}
