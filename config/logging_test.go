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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	v, err := NewYAMLFromBytes([]byte(`
logging:
  level: warn
  encoding: console
`))
	require.NoError(t, err)

	var lc Logging
	require.NoError(t, v.Decode(LoggingKey, &lc))
	assert.Equal(t, Logging{Level: "warn", Encoding: "console"}, lc)

	err = v.Decode("db", &lc)
	assert.EqualError(t, err, `configuration has no entry "db"`)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()

		log, err := Value{}.Logger()
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("File", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "logs", "inject.log")
		v, err := Static(map[string]interface{}{
			"logging": map[string]interface{}{"level": "debug", "file": file},
		})
		require.NoError(t, err)

		log, err := v.Logger()
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

		log.Debug("building")
		_ = log.Sync()

		b, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"msg":"building"`)
	})

	t.Run("BadLevel", func(t *testing.T) {
		t.Parallel()

		_, err := Logging{Level: "loud"}.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `cannot parse log level "loud"`)
	})

	t.Run("BadEncoding", func(t *testing.T) {
		t.Parallel()

		_, err := Logging{Encoding: "xml"}.Build()
		assert.EqualError(t, err, `unknown log encoding "xml"`)
	})
}
