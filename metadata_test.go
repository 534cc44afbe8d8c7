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

package inject_test

import (
	"errors"
	"testing"

	"github.com/dotkernel/inject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDirective(t *testing.T) {
	t.Parallel()

	classes := inject.NewClasses()
	classes.MustRegister((*Entity)(nil))
	classes.MustRegister(NewValidService, inject.Inject("c", "a", "b"))
	classes.MustRegister(NewTarget)
	classes.MustRegister(func() *Foo { return &Foo{} }, inject.Inject())
	classes.MustRegister(NewRecursionService, inject.Inject("x", testPkg+"RecursionService"))

	r := inject.NewMetadataReader(classes)

	t.Run("NoConstructor", func(t *testing.T) {
		refs, err := r.ReadDirective(testPkg + "Entity")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("NoDirective", func(t *testing.T) {
		refs, err := r.ReadDirective(testPkg + "Target")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("EmptyDirective", func(t *testing.T) {
		refs, err := r.ReadDirective(testPkg + "Foo")
		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("DeclarationOrder", func(t *testing.T) {
		refs, err := r.ReadDirective(testPkg + "ValidService")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, refs)
	})

	t.Run("SelfReference", func(t *testing.T) {
		_, err := r.ReadDirective(testPkg + "RecursionService")
		require.Error(t, err)
		assert.True(t, errors.Is(err, inject.ErrRecursiveInject))
		assert.Contains(t, err.Error(), testPkg+"RecursionService")
	})

	t.Run("SelfReferenceByTypeName", func(t *testing.T) {
		named := inject.NewClasses()
		named.MustRegister(NewRecursionService, inject.Name("recursion"), inject.Inject(testPkg+"RecursionService"))

		_, err := inject.NewMetadataReader(named).ReadDirective("recursion")
		require.Error(t, err)
		assert.True(t, errors.Is(err, inject.ErrRecursiveInject))
		assert.Contains(t, err.Error(), `"recursion"`)
	})

	t.Run("UnknownClass", func(t *testing.T) {
		_, err := r.ReadDirective("nope")
		assert.True(t, errors.Is(err, inject.ErrClassNotFound))
	})
}

type Alpha struct{ Beta *Beta }

type Beta struct{ Alpha *Alpha }

func TestReadDirectiveIndirectCycle(t *testing.T) {
	t.Parallel()

	classes := inject.NewClasses()
	classes.MustRegister(func(b *Beta) *Alpha { return &Alpha{Beta: b} }, inject.Inject(testPkg+"Beta"))
	classes.MustRegister(func(a *Alpha) *Beta { return &Beta{Alpha: a} }, inject.Inject(testPkg+"Alpha"))

	r := inject.NewMetadataReader(classes)

	refs, err := r.ReadDirective(testPkg + "Alpha")
	require.NoError(t, err, "only direct self references are rejected")
	assert.Equal(t, []string{testPkg + "Beta"}, refs)
}
