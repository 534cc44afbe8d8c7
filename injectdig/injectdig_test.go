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

package injectdig_test

import (
	"errors"
	"testing"

	"github.com/dotkernel/inject"
	"github.com/dotkernel/inject/injectdig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Logger interface {
	Log(string)
}

type memLogger struct{ lines []string }

func (l *memLogger) Log(s string) { l.lines = append(l.lines, s) }

type Settings map[string]interface{}

type Mailer struct {
	Logger Logger
	From   interface{}
}

func NewMailer(l Logger, from interface{}) *Mailer {
	return &Mailer{Logger: l, From: from}
}

func newDig(t *testing.T) (*dig.Container, *memLogger) {
	t.Helper()

	l := &memLogger{}
	d := dig.New()
	require.NoError(t, d.Provide(func() Logger { return l }))
	require.NoError(t, d.Provide(func() Settings {
		return Settings{"from": "noreply@example.com"}
	}))
	return d, l
}

func newContainer(t *testing.T, d *dig.Container) *injectdig.Container {
	t.Helper()

	c := injectdig.New(d)
	require.NoError(t, c.Bind("logger", (*Logger)(nil)))
	require.NoError(t, c.Bind("settings", Settings(nil)))
	return c
}

func TestContainer(t *testing.T) {
	t.Parallel()

	t.Run("Get", func(t *testing.T) {
		t.Parallel()

		d, l := newDig(t)
		c := newContainer(t, d)

		assert.True(t, c.Has("logger"))
		assert.False(t, c.Has("mailer"))
		assert.Equal(t, []string{"logger", "settings"}, c.Keys())

		got, err := c.Get("logger")
		require.NoError(t, err)
		assert.Same(t, l, got)
	})

	t.Run("NotBound", func(t *testing.T) {
		t.Parallel()

		d, _ := newDig(t)
		_, err := newContainer(t, d).Get("mailer")
		assert.EqualError(t, err, `key "mailer" is not bound`)
	})

	t.Run("NotProvided", func(t *testing.T) {
		t.Parallel()

		c := injectdig.New(dig.New())
		require.NoError(t, c.Bind("mailer", &Mailer{}))

		_, err := c.Get("mailer")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `could not get "mailer"`)
	})

	t.Run("BindErrors", func(t *testing.T) {
		t.Parallel()

		c := injectdig.New(dig.New())
		assert.EqualError(t, c.Bind("x", nil), `cannot bind "x" to untyped nil`)

		require.NoError(t, c.Bind("x", &Mailer{}))
		assert.EqualError(t, c.Bind("x", (*Logger)(nil)),
			`key "x" is already bound to *injectdig_test.Mailer`)
	})
}

func TestFactoryWithDig(t *testing.T) {
	t.Parallel()

	d, l := newDig(t)
	c := newContainer(t, d)

	classes := inject.NewClasses()
	require.NoError(t, classes.Register(NewMailer, inject.Name("mailer"), inject.Inject("logger", "settings.from")))
	f := inject.NewFactory(classes)

	got, err := f.Build(c, "mailer")
	require.NoError(t, err)

	m := got.(*Mailer)
	assert.Same(t, l, m.Logger)
	assert.Equal(t, "noreply@example.com", m.From)
}

func TestProvide(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		d, l := newDig(t)
		c := newContainer(t, d)

		classes := inject.NewClasses()
		require.NoError(t, classes.Register(NewMailer, inject.Name("mailer"), inject.Inject("logger", "settings.from")))
		f := inject.NewFactory(classes)

		require.NoError(t, injectdig.Provide(d, f, c, "mailer"))

		var built *Mailer
		require.NoError(t, d.Invoke(func(m *Mailer) { built = m }))
		require.NotNil(t, built)
		assert.Same(t, l, built.Logger)
		assert.Equal(t, "noreply@example.com", built.From)
	})

	t.Run("UnknownClass", func(t *testing.T) {
		t.Parallel()

		d, _ := newDig(t)
		f := inject.NewFactory(inject.NewClasses())

		err := injectdig.Provide(d, f, newContainer(t, d), "mailer")
		require.Error(t, err)
		assert.True(t, errors.Is(err, inject.ErrClassNotFound))
	})

	t.Run("BuildFailure", func(t *testing.T) {
		t.Parallel()

		d, _ := newDig(t)
		c := newContainer(t, d)

		classes := inject.NewClasses()
		require.NoError(t, classes.Register(NewMailer, inject.Name("mailer"), inject.Inject("transport")))
		f := inject.NewFactory(classes)
		require.NoError(t, injectdig.Provide(d, f, c, "mailer"))

		err := d.Invoke(func(*Mailer) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `class or service "transport" not found`)
	})
}
