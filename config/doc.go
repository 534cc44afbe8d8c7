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

// Package config loads YAML configuration into nested maps that can be
// published as array-valued services.
//
// Several sources can be combined. Objects are merged and arrays or values
// are overridden in the order the sources are given.
//
//	cfg, err := config.NewYAMLFromFiles(true, "config/base.yaml", "config/local.yaml")
//	if err != nil {
//		return err
//	}
//	// Publishes "db", "mail", ... so that references such as
//	// "db.settings.timeout" can be injected.
//	if err := cfg.Register(c); err != nil {
//		return err
//	}
//
// Decoded values only ever contain map[string]interface{},
// []interface{} and YAML scalars.
package config
