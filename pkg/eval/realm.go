/*
Package eval provides norn's expression evaluator.  A Realm holds the
global binding record and the object store, turns addressable expressions
into references, and drives the reference engine's read, write and delete
operations.
*/
package eval

import (
	"io"
	"os"

	"github.com/norn-lang/norn/pkg/environ"
	"github.com/norn-lang/norn/pkg/object"
	"github.com/norn-lang/norn/pkg/reference"
	"github.com/norn-lang/norn/pkg/value"
)

// Realm is an isolated evaluation state.
type Realm struct {
	strict bool
	stderr io.Writer
	store  *object.Store
	global *environ.Record
}

// Option is a function that configures a new realm.
type Option func(*Realm)

// WithStrict returns an Option that makes every program evaluate in strict
// mode, as if each carried a 'use strict' directive.
func WithStrict(strict bool) Option {
	return func(r *Realm) {
		r.strict = strict
	}
}

// WithStderr returns an Option that makes the realm write diagnostic
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(r *Realm) {
		r.stderr = w
	}
}

// WithGlobal returns an Option that declares a var binding in the realm's
// global record.
func WithGlobal(name string, v value.V) Option {
	return func(r *Realm) {
		r.global.Define(name, v, environ.KindVar)
	}
}

// WithGlobalConst returns an Option that declares a const binding in the
// realm's global record.
func WithGlobalConst(name string, v value.V) Option {
	return func(r *Realm) {
		r.global.Define(name, v, environ.KindConst)
	}
}

// NewRealm returns a realm with a seeded global record.
func NewRealm(opts ...Option) *Realm {
	r := &Realm{
		stderr: os.Stderr,
		store:  object.NewStore(),
		global: environ.NewRecord(nil, "GlobalEnvironment"),
	}
	r.seedGlobals()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// seedGlobals declares the default non-writable global names.
func (r *Realm) seedGlobals() {
	r.global.DefineSealed("undefined", value.Undefined())
	r.global.DefineSealed("NaN", value.NaN())
	r.global.DefineSealed("Infinity", value.Infinity())
	r.global.DefineSealed("globalThis", value.Object(object.New("global", r.store.ObjectPrototype())))
}

// Global returns the realm's global binding record.
func (r *Realm) Global() *environ.Record {
	return r.global
}

// Store returns the realm's object store.
func (r *Realm) Store() *object.Store {
	return r.store
}

// Stderr returns the realm's diagnostic writer.
func (r *Realm) Stderr() io.Writer {
	return r.stderr
}

// ToObject implements reference.Context using the realm's object store.
func (r *Realm) ToObject(v value.V) (reference.ObjectCap, error) {
	o, err := r.store.ToObject(v)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// DefineGlobal implements reference.Context.  A non-strict write through an
// unresolvable reference lands here and creates a deletable global binding.
func (r *Realm) DefineGlobal(name string, v value.V) error {
	_, err := r.global.Update(name, v, environ.KindVar)
	return err
}
