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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// LoggingKey is the section Logger reads.
const LoggingKey = "logging"

// Logging describes the logger built by Value.Logger.
type Logging struct {
	// Level is a zap level name. Defaults to info, or debug in development.
	Level string `yaml:"level"`

	// Encoding is "json" or "console".
	Encoding string `yaml:"encoding"`

	// File, when set, receives the log output. Its directory is created
	// if needed.
	File string `yaml:"file"`

	// Stdout keeps logging to stdout when File is set.
	Stdout bool `yaml:"stdout"`

	Development bool `yaml:"development"`
}

// Decode copies the entry at dottedPath into target, which must be a
// pointer to a struct or map with yaml tags.
func (v Value) Decode(dottedPath string, target interface{}) error {
	node, ok := v.Get(dottedPath)
	if !ok {
		return errors.Errorf("configuration has no entry %q", dottedPath)
	}

	b, err := yaml.Marshal(node)
	if err != nil {
		return errors.Wrapf(err, "couldn't encode %q", dottedPath)
	}
	if err := yaml.Unmarshal(b, target); err != nil {
		return errors.Wrapf(err, "couldn't decode %q into %T", dottedPath, target)
	}
	return nil
}

// Logger builds a zap logger from the logging section. A missing section
// yields a production logger writing JSON to stdout.
func (v Value) Logger() (*zap.Logger, error) {
	var lc Logging
	if _, ok := v.Get(LoggingKey); ok {
		if err := v.Decode(LoggingKey, &lc); err != nil {
			return nil, err
		}
	}
	return lc.Build()
}

// Build creates the zap logger described by lc.
func (lc Logging) Build() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lc.Development {
		cfg = zap.NewDevelopmentConfig()
	}

	if lc.Level != "" {
		var lv zapcore.Level
		if err := lv.UnmarshalText([]byte(lc.Level)); err != nil {
			return nil, errors.Wrapf(err, "cannot parse log level %q", lc.Level)
		}
		cfg.Level = zap.NewAtomicLevelAt(lv)
	}

	switch lc.Encoding {
	case "":
	case "json", "console":
		cfg.Encoding = lc.Encoding
	default:
		return nil, errors.Errorf("unknown log encoding %q", lc.Encoding)
	}

	if lc.File != "" {
		if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}
		cfg.OutputPaths = []string{lc.File}
		if lc.Stdout {
			cfg.OutputPaths = append(cfg.OutputPaths, "stdout")
		}
	}

	return cfg.Build()
}
