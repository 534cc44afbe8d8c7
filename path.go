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
	"reflect"
	"strconv"
)

type nodeType int

const (
	valueNode nodeType = iota
	objectNode
	arrayNode
	keyedNode
)

func getNodeType(val interface{}) nodeType {
	switch val.(type) {
	case nil:
		return valueNode
	case Keyed:
		return keyedNode
	case map[string]interface{}, map[interface{}]interface{}:
		return objectNode
	case []interface{}:
		return arrayNode
	}

	rv := reflect.Indirect(reflect.ValueOf(val))
	switch rv.Kind() {
	case reflect.Map:
		switch rv.Type().Key().Kind() {
		case reflect.String, reflect.Interface:
			return objectNode
		}
	case reflect.Slice, reflect.Array:
		return arrayNode
	}
	return valueNode
}

// readKeys walks keys through v. Every step needs a keyed value, and a key
// holding nil counts as absent. Failures always name the full reference.
func readKeys(ref string, keys []string, v interface{}) (interface{}, error) {
	for _, key := range keys {
		next, ok := child(v, key)
		if !ok {
			return nil, &MissingKeyError{Reference: ref, Segment: key}
		}
		v = next
	}
	return v, nil
}

func child(v interface{}, key string) (interface{}, bool) {
	var (
		found interface{}
		ok    bool
	)

	switch getNodeType(v) {
	case keyedNode:
		found, ok = v.(Keyed).Lookup(key)
	case objectNode:
		found, ok = mapEntry(v, key)
	case arrayNode:
		found, ok = sliceEntry(v, key)
	}

	if !ok || isNil(found) {
		return nil, false
	}
	return found, true
}

func mapEntry(v interface{}, key string) (interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		found, ok := m[key]
		return found, ok
	case map[interface{}]interface{}:
		if found, ok := m[key]; ok {
			return found, true
		}
		// YAML decodes keys such as 8080 or true as non-strings.
		for k, found := range m {
			if fmt.Sprint(k) == key {
				return found, true
			}
		}
		return nil, false
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	kt := rv.Type().Key()
	if kt.Kind() == reflect.String {
		found := rv.MapIndex(reflect.ValueOf(key).Convert(kt))
		if !found.IsValid() {
			return nil, false
		}
		return found.Interface(), true
	}

	iter := rv.MapRange()
	for iter.Next() {
		if fmt.Sprint(iter.Key().Interface()) == key {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

func sliceEntry(v interface{}, key string) (interface{}, bool) {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < 0 {
		return nil, false
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if idx >= rv.Len() {
		return nil, false
	}
	return rv.Index(idx).Interface(), true
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	// Nil maps and slices are empty collections, not missing values.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
