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

	"github.com/dotkernel/inject/injectevent"
)

// DefaultMaxPathDepth is the number of dotted path segments a resolver
// follows unless configured otherwise.
const DefaultMaxPathDepth = 32

// An Option configures a Resolver or a Factory.
type Option interface {
	fmt.Stringer

	apply(*options)
}

type options struct {
	logger       injectevent.Logger
	maxPathDepth int
}

func newOptions(opts []Option) options {
	o := options{
		logger:       injectevent.NopLogger,
		maxPathDepth: DefaultMaxPathDepth,
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// WithLogger sends build and resolution events to logger.
func WithLogger(logger injectevent.Logger) Option {
	return withLoggerOption{logger: logger}
}

type withLoggerOption struct {
	logger injectevent.Logger
}

func (l withLoggerOption) apply(o *options) {
	if l.logger != nil {
		o.logger = l.logger
	}
}

func (l withLoggerOption) String() string {
	return fmt.Sprintf("inject.WithLogger(%v)", l.logger)
}

// WithMaxPathDepth limits the number of segments a dotted reference may
// traverse after its container key. Values below one restore the default.
func WithMaxPathDepth(n int) Option {
	return maxPathDepthOption(n)
}

type maxPathDepthOption int

func (d maxPathDepthOption) apply(o *options) {
	if d < 1 {
		o.maxPathDepth = DefaultMaxPathDepth
		return
	}
	o.maxPathDepth = int(d)
}

func (d maxPathDepthOption) String() string {
	return fmt.Sprintf("inject.WithMaxPathDepth(%d)", int(d))
}
