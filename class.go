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
	"sort"
	"sync"

	"github.com/dotkernel/inject/internal/injectreflect"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ClassOption configures a class at registration time.
type ClassOption interface {
	applyClass(*classOptions)
}

type classOptions struct {
	name         string
	refs         []string
	hasDirective bool
}

type classOptionFunc func(*classOptions)

func (f classOptionFunc) applyClass(o *classOptions) { f(o) }

// Inject attaches an injection directive to the constructor being
// registered. Each reference is resolved against the container when the
// class is built, and the results are passed to the constructor in the
// order they are listed here.
func Inject(refs ...string) ClassOption {
	refs = append([]string(nil), refs...)
	return classOptionFunc(func(o *classOptions) {
		o.refs = refs
		o.hasDirective = true
	})
}

// Name registers the class under name instead of the fully qualified name
// of the type it produces.
func Name(name string) ClassOption {
	return classOptionFunc(func(o *classOptions) {
		o.name = name
	})
}

// Class describes a registered class.
type Class struct {
	// Name is the key the class is registered and built under.
	Name string

	// Type is the type of the values the class produces.
	Type reflect.Type

	// Location is the function that registered the class.
	Location string

	// Constructor is the registered constructor, or nil for classes
	// registered without one.
	Constructor interface{}

	directive    []string
	hasDirective bool
}

// Directive returns a copy of the injection directive, and whether the
// constructor carries one.
func (c Class) Directive() ([]string, bool) {
	if !c.hasDirective {
		return nil, false
	}
	return append([]string{}, c.directive...), true
}

// HasConstructor reports whether the class was registered with a
// constructor function.
func (c Class) HasConstructor() bool {
	return c.Constructor != nil
}

// refersTo reports whether ref names the class, either by its registered
// name or by the fully qualified name of its type.
func (c Class) refersTo(ref string) bool {
	return ref == c.Name || (c.Type != nil && ref == injectreflect.TypeName(c.Type))
}

func (c Class) String() string {
	if c.Constructor == nil {
		return fmt.Sprintf("%s (type %v)", c.Name, c.Type)
	}
	return fmt.Sprintf("%s (constructor %s, inject %q)",
		c.Name, injectreflect.FuncName(c.Constructor), c.directive)
}

type classNode interface {
	// Description of the class.
	class() *Class

	// Build a new instance. refs holds the reference each argument was
	// resolved from and is used for error messages only.
	instantiate(args []interface{}, refs []string) (interface{}, error)
}

// typeNode is a class without a constructor. Instances are freshly
// allocated zero values.
type typeNode struct {
	Class
}

func (n *typeNode) class() *Class { return &n.Class }

func (n *typeNode) instantiate([]interface{}, []string) (interface{}, error) {
	return reflect.New(n.Type.Elem()).Interface(), nil
}

// funcNode is a class built by calling its constructor.
type funcNode struct {
	Class

	ctor       reflect.Value
	returnsErr bool
}

func (n *funcNode) class() *Class { return &n.Class }

func (n *funcNode) instantiate(args []interface{}, refs []string) (_ interface{}, err error) {
	ft := n.ctor.Type()

	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, ft.NumIn())
	for i := 0; i < fixed; i++ {
		pt := ft.In(i)
		if i >= len(args) {
			// Parameters without a reference behave like optional
			// parameters and receive their zero value.
			in = append(in, reflect.Zero(pt))
			continue
		}
		v, err := n.argument(i, pt, args[i], refs)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	if ft.IsVariadic() {
		et := ft.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := n.argument(i, et, args[i], refs)
			if err != nil {
				return nil, err
			}
			in = append(in, v)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("constructor of %q panicked: %v", n.Name, r)
		}
	}()

	out := n.ctor.Call(in)
	if n.returnsErr {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, errors.Wrapf(e, "constructor of %q failed", n.Name)
		}
	}
	return out[0].Interface(), nil
}

func (n *funcNode) argument(i int, t reflect.Type, arg interface{}, refs []string) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(t) {
		ref := ""
		if i < len(refs) {
			ref = refs[i]
		}
		return reflect.Value{}, &ArgumentError{
			Class:     n.Name,
			Index:     i,
			Reference: ref,
			Want:      t.String(),
			Got:       v.Type().String(),
		}
	}
	return v, nil
}

// Classes is the table of classes the factory knows how to build. It plays
// the part of a class loader: a name that is not registered here does not
// name a class.
//
// Classes is safe for concurrent use.
type Classes struct {
	mu    sync.RWMutex
	nodes map[string]classNode
}

// NewClasses returns an empty class table.
func NewClasses() *Classes {
	return &Classes{nodes: make(map[string]classNode)}
}

// Register adds a class to the table.
//
// target is either a constructor function returning exactly one pointer or
// interface, optionally followed by an error, or a typed nil pointer such as
// (*Foo)(nil) for a class without a constructor. The class is named after the
// produced type unless the Name option says otherwise.
//
// Only constructors may carry an injection directive.
func (cs *Classes) Register(target interface{}, opts ...ClassOption) error {
	var o classOptions
	for _, opt := range opts {
		opt.applyClass(&o)
	}

	location := injectreflect.Caller()

	ctype := reflect.TypeOf(target)
	if ctype == nil {
		return &RegistrationError{Class: o.name, Location: location, Reason: "cannot register untyped nil"}
	}

	var node classNode
	switch ctype.Kind() {
	case reflect.Func:
		n, err := newFuncNode(target, ctype, location, o)
		if err != nil {
			return err
		}
		node = n
	case reflect.Ptr:
		name := o.name
		if name == "" {
			name = injectreflect.TypeName(ctype)
		}
		if o.hasDirective {
			return &RegistrationError{
				Class:    name,
				Location: location,
				Reason:   "an injection directive requires a constructor",
			}
		}
		node = &typeNode{Class: Class{Name: name, Type: ctype, Location: location}}
	default:
		return &RegistrationError{
			Class:    injectreflect.TypeName(ctype),
			Location: location,
			Reason:   "target must be a constructor function or a pointer, got " + ctype.String(),
		}
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	name := node.class().Name
	if prev, ok := cs.nodes[name]; ok {
		return &RegistrationError{
			Class:    name,
			Location: location,
			Reason:   "already registered at " + prev.class().Location,
		}
	}
	cs.nodes[name] = node
	return nil
}

func newFuncNode(target interface{}, ctype reflect.Type, location string, o classOptions) (*funcNode, error) {
	fail := func(name, reason string) error {
		return &RegistrationError{Class: name, Location: location, Reason: reason}
	}

	fname := injectreflect.FuncName(target)
	switch ctype.NumOut() {
	case 1:
	case 2:
		if !injectreflect.IsErr(ctype.Out(1)) {
			return nil, fail(fname, "second return value of a constructor must be an error")
		}
	default:
		return nil, fail(fname, fmt.Sprintf(
			"constructor must return exactly one value, optionally followed by an error, got %v",
			injectreflect.ReturnTypes(target)))
	}

	objType := ctype.Out(0)
	if objType.Kind() != reflect.Ptr && objType.Kind() != reflect.Interface {
		return nil, fail(fname, "constructor must return a pointer or an interface, got "+objType.String())
	}

	name := o.name
	if name == "" {
		name = injectreflect.TypeName(objType)
	}

	return &funcNode{
		Class: Class{
			Name:         name,
			Type:         objType,
			Location:     location,
			Constructor:  target,
			directive:    o.refs,
			hasDirective: o.hasDirective,
		},
		ctor:       reflect.ValueOf(target),
		returnsErr: ctype.NumOut() == 2,
	}, nil
}

// MustRegister is like Register but panics if the class cannot be
// registered.
func (cs *Classes) MustRegister(target interface{}, opts ...ClassOption) {
	if err := cs.Register(target, opts...); err != nil {
		panic(err)
	}
}

// Has reports whether name is a registered class.
func (cs *Classes) Has(name string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, ok := cs.nodes[name]
	return ok
}

// Lookup returns the description of the class registered under name.
func (cs *Classes) Lookup(name string) (Class, bool) {
	node, ok := cs.node(name)
	if !ok {
		return Class{}, false
	}
	c := *node.class()
	c.directive = append([]string(nil), c.directive...)
	return c, true
}

// Names returns the names of all registered classes in lexical order.
func (cs *Classes) Names() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	names := make([]string, 0, len(cs.nodes))
	for name := range cs.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate builds the class registered under name with the given
// positional arguments. The directive of the class is not consulted.
func (cs *Classes) Instantiate(name string, args ...interface{}) (interface{}, error) {
	node, ok := cs.node(name)
	if !ok {
		return nil, &ClassNotFoundError{Name: name}
	}
	return node.instantiate(args, nil)
}

func (cs *Classes) node(name string) (classNode, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	node, ok := cs.nodes[name]
	return node, ok
}

// Validate reports every problem that can be found in the table without a
// container: directives that list their own class, and directives that list
// more references than a non-variadic constructor accepts. All problems are
// combined into a single error.
func (cs *Classes) Validate() error {
	var err error
	for _, name := range cs.Names() {
		node, ok := cs.node(name)
		if !ok {
			continue
		}
		fn, ok := node.(*funcNode)
		if !ok || !fn.hasDirective {
			continue
		}

		for _, ref := range fn.directive {
			if fn.refersTo(ref) {
				err = multierr.Append(err, &RegistrationError{
					Class:    fn.Name,
					Location: fn.Location,
					Reason:   "directive lists the class itself",
				})
				break
			}
		}

		ft := fn.ctor.Type()
		if !ft.IsVariadic() && len(fn.directive) > ft.NumIn() {
			err = multierr.Append(err, &RegistrationError{
				Class:    fn.Name,
				Location: fn.Location,
				Reason: fmt.Sprintf("directive lists %d references but the constructor takes %d parameters",
					len(fn.directive), ft.NumIn()),
			})
		}
	}
	return err
}
