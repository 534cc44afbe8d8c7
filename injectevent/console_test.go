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

package injectevent

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give Event
		want string
	}{
		{
			name: "Building",
			give: &Building{Class: "example.com/app.Mailer"},
			want: "[Inject] BUILD\t\texample.com/app.Mailer\n",
		},
		{
			name: "Built",
			give: &Built{Class: "example.com/app.Mailer", Arguments: 2, Runtime: time.Millisecond},
			want: "[Inject] BUILT\t\texample.com/app.Mailer with 2 argument(s) in 1ms\n",
		},
		{
			name: "BuiltError",
			give: &Built{Class: "example.com/app.Mailer", Err: errors.New("great sadness")},
			want: "[Inject] ERROR\t\tFailed to build example.com/app.Mailer: great sadness\n",
		},
		{
			name: "ResolvedKey",
			give: &Resolved{Reference: "mailer", Key: "mailer", Source: SourceContainer},
			want: "[Inject] RESOLVE\tmailer (container)\n",
		},
		{
			name: "ResolvedPath",
			give: &Resolved{Reference: "db.settings", Key: "db", Source: SourcePath},
			want: "[Inject] RESOLVE\tdb.settings <= db (path)\n",
		},
		{
			name: "ResolvedError",
			give: &Resolved{Reference: "db.settings", Key: "db", Err: errors.New("great sadness")},
			want: "[Inject] ERROR\t\tFailed to resolve \"db.settings\": great sadness\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buff bytes.Buffer
			(&ConsoleLogger{W: &buff}).LogEvent(tt.give)

			assert.Equal(t, tt.want, buff.String())
		})
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NopLogger.LogEvent(&Building{Class: "x"})
	})
	assert.Equal(t, "NopLogger", NopLogger.String())
}
