/*
Package environ provides norn's binding store.  A Record maps names to
values together with their declaration kinds and an optional parent record,
forming the scope chain an identifier resolves against.
*/
package environ

import (
	"github.com/norn-lang/norn/pkg/value"
)

// Kind classifies a binding's declaration.
type Kind uint8

// Possible Kind values.  KindUnknown marks a binding whose declaration was
// never seen; callers treat it as KindVar.
const (
	KindUnknown Kind = iota
	KindVar
	KindLet
	KindConst
)

var kindStrings = []string{
	KindUnknown: "unknown",
	KindVar:     "var",
	KindLet:     "let",
	KindConst:   "const",
}

func (k Kind) String() string {
	if int(k) >= len(kindStrings) {
		return "unknown"
	}
	return kindStrings[k]
}

type binding struct {
	name      string
	value     value.V
	kind      Kind
	writable  bool
	deletable bool
}

// Record is a set of name bindings with a parent record.  A Record is in
// the scope of its parent's bindings.
type Record struct {
	class  string
	parent *Record
	pairs  []binding
	index  map[string]int
}

// NewRecord returns a new record with the given parent.  If parent is nil a
// root record is returned.  The class names the record in diagnostic
// strings.
func NewRecord(parent *Record, class string) *Record {
	return &Record{
		class:  class,
		parent: parent,
		index:  make(map[string]int),
	}
}

// ClassName returns the record's diagnostic class name.
func (r *Record) ClassName() string {
	return r.class
}

// Parent returns the enclosing record, or nil for a root record.
func (r *Record) Parent() *Record {
	return r.parent
}

// Len returns the number of local bindings in r.
func (r *Record) Len() int {
	return len(r.pairs)
}

// Define declares a binding in r with the given declaration kind.  A const
// binding is created non-writable.  Declared bindings cannot be deleted.
// If name was already bound its entry is replaced.
func (r *Record) Define(name string, v value.V, kind Kind) {
	r.put(binding{
		name:     name,
		value:    v,
		kind:     kind,
		writable: kind != KindConst,
	})
}

// DefineSealed declares a non-writable, non-deletable var binding.  Used to
// seed global names like NaN whose writes must be rejected by the store.
func (r *Record) DefineSealed(name string, v value.V) {
	r.put(binding{
		name:  name,
		value: v,
		kind:  KindVar,
	})
}

func (r *Record) put(b binding) {
	i, ok := r.index[b.name]
	if ok {
		r.pairs[i] = b
		return
	}
	r.index[b.name] = len(r.pairs)
	r.pairs = append(r.pairs, b)
}

// Lookup returns the value and declaration kind bound to name in r.  Lookup
// does not consult parent records.
func (r *Record) Lookup(name string) (value.V, Kind, bool) {
	i, ok := r.index[name]
	if !ok {
		return value.V{}, KindUnknown, false
	}
	return r.pairs[i].value, r.pairs[i].kind, true
}

// Update creates or updates the binding for name.  A binding created by
// Update can later be deleted, unlike declared bindings.  Update reports
// false without mutating anything if the existing binding is non-writable.
// The error return is reserved for stores whose writes can raise their own
// failures; this implementation never produces one.
func (r *Record) Update(name string, v value.V, kind Kind) (bool, error) {
	i, ok := r.index[name]
	if !ok {
		r.index[name] = len(r.pairs)
		r.pairs = append(r.pairs, binding{
			name:      name,
			value:     v,
			kind:      kind,
			writable:  true,
			deletable: true,
		})
		return true, nil
	}
	if !r.pairs[i].writable {
		return false, nil
	}
	r.pairs[i].value = v
	r.pairs[i].kind = kind
	return true, nil
}

// DeleteBinding removes the binding for name.  DeleteBinding reports false
// if the binding exists but was declared rather than implicitly created.
// Deleting an absent binding succeeds.
func (r *Record) DeleteBinding(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return true
	}
	if !r.pairs[i].deletable {
		return false
	}
	last := len(r.pairs) - 1
	if i != last {
		r.pairs[i] = r.pairs[last]
		r.index[r.pairs[i].name] = i
	}
	r.pairs = r.pairs[:last]
	delete(r.index, name)
	return true
}

// Resolve walks the record chain starting at r and returns the record
// holding a binding for name.  Resolve returns nil if no record in the
// chain binds name.
func (r *Record) Resolve(name string) *Record {
	for rec := r; rec != nil; rec = rec.parent {
		if _, ok := rec.index[name]; ok {
			return rec
		}
	}
	return nil
}
