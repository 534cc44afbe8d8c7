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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// NewYAML decodes and merges YAML documents read from sources.
func NewYAML(sources ...io.Reader) (Value, error) {
	root := make(map[interface{}]interface{})

	for i, r := range sources {
		tmp := make(map[interface{}]interface{})
		if err := unmarshalYamlValue(r, tmp); err != nil {
			return nil, errors.Wrapf(err, "couldn't decode YAML source %d", i)
		}

		merged, err := mergeMaps(root, tmp)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't merge YAML source %d", i)
		}
		root = merged.(map[interface{}]interface{})
	}

	return Value(normalize(root).(map[string]interface{})), nil
}

// NewYAMLFromBytes creates a configuration from byte-backed YAML blobs.
func NewYAMLFromBytes(yamls ...[]byte) (Value, error) {
	readers := make([]io.Reader, len(yamls))
	for i := range yamls {
		readers[i] = bytes.NewReader(yamls[i])
	}

	return NewYAML(readers...)
}

// NewYAMLFromFiles creates a configuration from a set of YAML file names.
// Missing files are skipped unless mustExist is set.
func NewYAMLFromFiles(mustExist bool, files ...string) (Value, error) {
	readers := make([]io.Reader, 0, len(files))

	for _, name := range files {
		f, err := os.Open(name)
		if os.IsNotExist(err) && !mustExist {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't open %v", name)
		}
		defer f.Close()

		readers = append(readers, f)
	}

	return NewYAML(readers...)
}

// Static creates a configuration from an arbitrary value, typically a map
// or a struct with yaml tags. It is meant for tests, to isolate
// configuration from the environment.
func Static(data interface{}) (Value, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't encode static configuration")
	}

	return NewYAMLFromBytes(b)
}

func unmarshalYamlValue(r io.Reader, value interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, value)
}

func mergeMaps(dst interface{}, src interface{}) (interface{}, error) {
	if dst == nil {
		return src, nil
	}

	if src == nil {
		return src, nil
	}

	switch s := src.(type) {
	case map[interface{}]interface{}:
		d, ok := dst.(map[interface{}]interface{})
		if !ok {
			return nil, fmt.Errorf("can't merge map[interface{}]interface{} into %T", dst)
		}

		for k, v := range s {
			if d[k] == nil {
				d[k] = v
				continue
			}

			merged, err := mergeMaps(d[k], v)
			if err != nil {
				return nil, errors.Wrapf(err, "key %v", k)
			}
			d[k] = merged
		}
		return d, nil
	default:
		return src, nil
	}
}

// normalize converts the map[interface{}]interface{} trees produced by
// yaml.v2 into map[string]interface{} trees.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = normalize(val)
		}
		return s
	default:
		return v
	}
}
