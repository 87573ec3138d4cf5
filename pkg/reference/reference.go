/*
Package reference implements norn's binding resolution and mutation engine.
A T is a resolvable "place" produced while evaluating an addressable
expression: a name in a binding store, a property on a value, or nothing
resolvable at all.  The shape is fixed at construction and each T is
consumed by exactly one of Read, Write or Delete.

The backing stores are consumed through narrow capability interfaces so the
engine stays independent of the environment and object implementations.
*/
package reference

import (
	"fmt"

	"github.com/norn-lang/norn/pkg/environ"
	"github.com/norn-lang/norn/pkg/runerr"
	"github.com/norn-lang/norn/pkg/value"
)

// BindingStore is the environment record capability consumed by environment
// references.  Update's error return carries a failure raised by the store
// itself, which the engine forwards immediately without further processing.
type BindingStore interface {
	Lookup(name string) (value.V, environ.Kind, bool)
	Update(name string, v value.V, kind environ.Kind) (bool, error)
	DeleteBinding(name string) bool
	ClassName() string
}

// ObjectCap is the object capability consumed by property references.
type ObjectCap interface {
	Get(k value.Key) (value.V, bool)
	Set(k value.Key, v value.V) bool
	Delete(k value.Key) bool
}

// Context supplies the operations a reference needs from the surrounding
// realm: object coercion for property bases and the global record that
// non-strict writes to unresolvable names implicitly create bindings in.
type Context interface {
	ToObject(v value.V) (ObjectCap, error)
	DefineGlobal(name string, v value.V) error
}

// ReadMode selects how Read treats a name with no binding.
type ReadMode uint8

// Possible ReadMode values.  RequireBound is ordinary evaluation and fails
// on unbound names.  TolerateUnbound reads undefined instead and exists
// solely for the typeof operator.
const (
	RequireBound ReadMode = iota
	TolerateUnbound
)

type baseKind uint8

const (
	baseUnresolvable baseKind = iota
	baseEnvironment
	baseValue
)

// T is a reference.  The zero T is an unresolvable reference with no name.
type T struct {
	base   baseKind
	env    BindingStore
	value  value.V
	name   value.Key
	strict bool
	super  bool
	this   value.V
}

// Unresolvable returns a reference with no base.  The name may be the zero
// Key when the reference was built as deliberately invalid.
func Unresolvable(name value.Key, strict bool) T {
	return T{base: baseUnresolvable, name: name, strict: strict}
}

// Environment returns a reference to name inside the binding store env.
func Environment(env BindingStore, name string, strict bool) T {
	return T{base: baseEnvironment, env: env, name: value.StringKey(name), strict: strict}
}

// Property returns a reference to the property name on base.
func Property(base value.V, name value.Key, strict bool) T {
	return T{base: baseValue, value: base, name: name, strict: strict}
}

// SuperProperty returns a property reference through a prototype chain
// anchor distinct from the receiver this.
func SuperProperty(base value.V, name value.Key, strict bool, this value.V) T {
	return T{base: baseValue, value: base, name: name, strict: strict, super: true, this: this}
}

// WithThis returns a copy of ref carrying this as the receiver for a later
// call dispatch.  The engine carries the value but never interprets it.
func (ref T) WithThis(this value.V) T {
	ref.this = this
	return ref
}

// IsUnresolvable returns true if ref has no base.
func (ref T) IsUnresolvable() bool {
	return ref.base == baseUnresolvable
}

// IsPropertyReference returns true if ref's base is a runtime value.
func (ref T) IsPropertyReference() bool {
	return ref.base == baseValue
}

// IsEnvironmentReference returns true if ref's base is a binding store.
func (ref T) IsEnvironmentReference() bool {
	return ref.base == baseEnvironment
}

// IsSuperReference returns true if ref is a super property reference.
func (ref T) IsSuperReference() bool {
	return ref.super
}

// Strict returns the reference's strict flag.
func (ref T) Strict() bool {
	return ref.strict
}

// Name returns the referenced name.  The zero Key marks a reference built
// without a name.
func (ref T) Name() value.Key {
	return ref.name
}

// BaseValue returns the base value of a property reference.
// BaseValue returns false for other shapes.
func (ref T) BaseValue() (value.V, bool) {
	if ref.base != baseValue {
		return value.V{}, false
	}
	return ref.value, true
}

// BaseEnvironment returns the binding store of an environment reference.
// BaseEnvironment returns false for other shapes.
func (ref T) BaseEnvironment() (BindingStore, bool) {
	if ref.base != baseEnvironment {
		return nil, false
	}
	return ref.env, true
}

// ThisValue returns the carried receiver, which is the empty value when the
// reference carries none.
func (ref T) ThisValue() value.V {
	return ref.this
}

func (ref T) referenceError() error {
	if !ref.name.IsValid() {
		return runerr.New(runerr.ReferenceUnresolvable)
	}
	return runerr.New(runerr.UnknownIdentifier, ref.name.DisplayString())
}

// Read resolves ref to a value.  Unresolvable references fail with a
// ReferenceError.  An absent property reads as undefined.  An absent
// binding fails with a ReferenceError under RequireBound and reads as
// undefined under TolerateUnbound.
func (ref T) Read(ctx Context, mode ReadMode) (value.V, error) {
	switch ref.base {
	case baseUnresolvable:
		return value.V{}, ref.referenceError()
	case baseValue:
		obj, err := ctx.ToObject(ref.value)
		if err != nil {
			return value.V{}, err
		}
		v, ok := obj.Get(ref.name)
		if !ok {
			return value.Undefined(), nil
		}
		return v, nil
	default:
		name, _ := ref.name.StringName()
		v, _, ok := ref.env.Lookup(name)
		if !ok {
			if mode == TolerateUnbound {
				return value.Undefined(), nil
			}
			return value.V{}, ref.referenceError()
		}
		return v, nil
	}
}

// Write stores v into the place ref denotes.  Failed writes raise errors
// when ref is strict and are tolerated as no-ops otherwise, except writes
// to const bindings, which fail in both modes.  A non-strict write through
// an unresolvable reference creates a global binding for the name.
func (ref T) Write(ctx Context, v value.V) error {
	switch ref.base {
	case baseUnresolvable:
		if ref.strict {
			return ref.referenceError()
		}
		name, ok := ref.name.StringName()
		if !ok {
			return ref.referenceError()
		}
		return ctx.DefineGlobal(name, v)
	case baseValue:
		if !ref.value.IsObject() && ref.strict {
			if ref.value.IsNullish() {
				return runerr.New(runerr.ReferenceNullishSetProperty,
					ref.name.DisplayString(), value.DisplayString(ref.value))
			}
			return runerr.New(runerr.ReferencePrimitiveSetProperty,
				ref.name.DisplayString(), value.TypeOf(ref.value), value.DisplayString(ref.value))
		}
		if ref.value.IsNullish() {
			// tolerated no-op, the base cannot be coerced
			return nil
		}
		obj, err := ctx.ToObject(ref.value)
		if err != nil {
			return err
		}
		if !obj.Set(ref.name, v) && ref.strict {
			return runerr.New(runerr.ReferenceNullishSetProperty,
				ref.name.DisplayString(), value.DisplayString(ref.value))
		}
		return nil
	default:
		name, _ := ref.name.StringName()
		_, kind, ok := ref.env.Lookup(name)
		if !ok || kind == environ.KindUnknown {
			kind = environ.KindVar
		}
		if kind == environ.KindConst {
			return runerr.New(runerr.InvalidAssignToConst)
		}
		ok, err := ref.env.Update(name, v, kind)
		if err != nil {
			return err
		}
		if !ok && ref.strict {
			return runerr.New(runerr.DescWriteNonWritable, ref.name.DisplayString())
		}
		return nil
	}
}

// Delete removes the place ref denotes and reports whether the deletion
// took effect.  Deleting an unresolvable reference succeeds trivially;
// constructing one as strict in a deletion context is a caller contract
// violation and panics.  Deleting a super property always fails with a
// ReferenceError.
func (ref T) Delete(ctx Context) (bool, error) {
	switch ref.base {
	case baseUnresolvable:
		if ref.strict {
			panic("reference: delete of a strict unresolvable reference")
		}
		return true, nil
	case baseValue:
		if ref.super {
			return false, runerr.New(runerr.UnsupportedDeleteSuperProperty)
		}
		obj, err := ctx.ToObject(ref.value)
		if err != nil {
			return false, err
		}
		ok := obj.Delete(ref.name)
		if !ok && ref.strict {
			return false, runerr.New(runerr.ReferenceNullishDeleteProperty,
				ref.name.DisplayString(), value.DisplayString(ref.value))
		}
		return ok, nil
	default:
		name, _ := ref.name.StringName()
		return ref.env.DeleteBinding(name), nil
	}
}

// String renders ref for debugging.  It never participates in control flow
// and performs no script-observable behavior.
func (ref T) String() string {
	var base string
	switch ref.base {
	case baseUnresolvable:
		base = "Unresolvable"
	case baseEnvironment:
		base = ref.env.ClassName()
	default:
		base = value.DisplayString(ref.value)
	}
	name := "<invalid>"
	if ref.name.IsValid() {
		name = ref.name.DisplayString()
	}
	return fmt.Sprintf("Reference { Base=%s, ReferencedName=%s, Strict=%t, ThisValue=%s }",
		base, name, ref.strict, value.DisplayString(ref.this))
}
