/*
Package object provides norn's property store.  An Object is an ordered
property table with per-property attributes and a prototype link.  A Store
owns the shared prototypes and performs primitive boxing through ToObject.
*/
package object

import (
	"github.com/norn-lang/norn/pkg/runerr"
	"github.com/norn-lang/norn/pkg/value"
)

// Attrs is a bitset of data property attributes.
type Attrs uint8

// Possible Attrs bits.
const (
	Writable Attrs = 1 << iota
	Enumerable
	Configurable
)

// DefaultAttrs are the attributes of a property created by ordinary
// assignment.
const DefaultAttrs = Writable | Enumerable | Configurable

type property struct {
	key   value.Key
	value value.V
	attrs Attrs
}

// Object is a norn object.  Properties keep insertion order.
type Object struct {
	class     string
	proto     *Object
	primitive value.V
	pairs     []property
	index     map[value.Key]int
}

// New returns a new object with the given class name and prototype.  A nil
// proto terminates the prototype chain.
func New(class string, proto *Object) *Object {
	return &Object{
		class: class,
		proto: proto,
		index: make(map[value.Key]int),
	}
}

// ClassName returns the object's class name.  Object implements
// value.Native through it.
func (o *Object) ClassName() string {
	return o.class
}

// Prototype returns the object's prototype, or nil.
func (o *Object) Prototype() *Object {
	return o.proto
}

// Primitive returns the primitive payload of a boxing wrapper.
// Primitive returns false for ordinary objects.
func (o *Object) Primitive() (value.V, bool) {
	if o.primitive.IsEmpty() {
		return value.V{}, false
	}
	return o.primitive, true
}

// Len returns the number of own properties.
func (o *Object) Len() int {
	return len(o.pairs)
}

// DefineOwn creates or replaces an own property with explicit attributes.
func (o *Object) DefineOwn(k value.Key, v value.V, attrs Attrs) {
	i, ok := o.index[k]
	if ok {
		o.pairs[i].value = v
		o.pairs[i].attrs = attrs
		return
	}
	o.index[k] = len(o.pairs)
	o.pairs = append(o.pairs, property{key: k, value: v, attrs: attrs})
}

// GetOwn returns the value of an own property.
// GetOwn returns false if o has no own property named k.
func (o *Object) GetOwn(k value.Key) (value.V, bool) {
	i, ok := o.index[k]
	if !ok {
		return value.V{}, false
	}
	return o.pairs[i].value, true
}

// Get returns the value of property k, consulting the prototype chain.
// Get returns false if no object in the chain has the property.
func (o *Object) Get(k value.Key) (value.V, bool) {
	for obj := o; obj != nil; obj = obj.proto {
		if v, ok := obj.GetOwn(k); ok {
			return v, true
		}
	}
	return value.V{}, false
}

// Set assigns v to property k.  Set reports false without mutating anything
// if an own or inherited property named k is non-writable.
func (o *Object) Set(k value.Key, v value.V) bool {
	if i, ok := o.index[k]; ok {
		if o.pairs[i].attrs&Writable == 0 {
			return false
		}
		o.pairs[i].value = v
		return true
	}
	for proto := o.proto; proto != nil; proto = proto.proto {
		if i, ok := proto.index[k]; ok {
			if proto.pairs[i].attrs&Writable == 0 {
				return false
			}
			break
		}
	}
	o.DefineOwn(k, v, DefaultAttrs)
	return true
}

// Delete removes the own property named k.  Delete reports false if the
// property exists and is non-configurable.  Deleting an absent property
// succeeds.
func (o *Object) Delete(k value.Key) bool {
	i, ok := o.index[k]
	if !ok {
		return true
	}
	if o.pairs[i].attrs&Configurable == 0 {
		return false
	}
	last := len(o.pairs) - 1
	if i != last {
		o.pairs[i] = o.pairs[last]
		o.index[o.pairs[i].key] = i
	}
	o.pairs = o.pairs[:last]
	delete(o.index, k)
	return true
}

// Keys returns the enumerable own property keys in insertion order.
func (o *Object) Keys() []value.Key {
	keys := make([]value.Key, 0, len(o.pairs))
	for _, p := range o.pairs {
		if p.attrs&Enumerable != 0 {
			keys = append(keys, p.key)
		}
	}
	return keys
}

// Store owns the shared prototype objects and boxes primitives.
type Store struct {
	objectProto  *Object
	booleanProto *Object
	numberProto  *Object
	stringProto  *Object
	symbolProto  *Object
}

// NewStore returns a store with fresh prototypes.
func NewStore() *Store {
	objectProto := New("Object", nil)
	return &Store{
		objectProto:  objectProto,
		booleanProto: New("Boolean", objectProto),
		numberProto:  New("Number", objectProto),
		stringProto:  New("String", objectProto),
		symbolProto:  New("Symbol", objectProto),
	}
}

// ObjectPrototype returns the root prototype shared by ordinary objects.
func (s *Store) ObjectPrototype() *Object {
	return s.objectProto
}

// NewObject returns an empty ordinary object.
func (s *Store) NewObject() *Object {
	return New("Object", s.objectProto)
}

func (s *Store) box(class string, proto *Object, v value.V) *Object {
	o := New(class, proto)
	o.primitive = v
	return o
}

// ToObject coerces v to an object.  Objects coerce to themselves and other
// primitives are boxed in a wrapper carrying the primitive payload.
// ToObject fails with a TypeError if v is nullish.
func (s *Store) ToObject(v value.V) (*Object, error) {
	switch v.Kind() {
	case value.VObject:
		n, _ := value.GetObject(v)
		if o, ok := n.(*Object); ok {
			return o, nil
		}
		// foreign natives get a transparent wrapper
		return s.box(n.ClassName(), s.objectProto, v), nil
	case value.VBoolean:
		return s.box("Boolean", s.booleanProto, v), nil
	case value.VNumber:
		return s.box("Number", s.numberProto, v), nil
	case value.VString:
		return s.box("String", s.stringProto, v), nil
	case value.VSymbol:
		return s.box("Symbol", s.symbolProto, v), nil
	default:
		return nil, runerr.New(runerr.ToObjectNullish)
	}
}
