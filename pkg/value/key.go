package value

// Sym is a unique symbol.  Two Syms denote the same symbol only when they
// are the same pointer; the description is purely informational and does
// not participate in identity.
type Sym struct {
	desc string
}

// NewSymbol creates a fresh symbol with the given description.
func NewSymbol(desc string) *Sym {
	return &Sym{desc: desc}
}

// Description returns the symbol's description.
func (s *Sym) Description() string {
	return s.desc
}

func (s *Sym) String() string {
	return "Symbol(" + s.desc + ")"
}

type keyKind uint8

const (
	keyInvalid keyKind = iota
	keyString
	keySymbol
)

// Key is a property key: a string or a symbol.  The zero Key is invalid
// and marks a reference that was built without a name.  Key is comparable
// and may be used as a map key.
type Key struct {
	kind keyKind
	name string
	sym  *Sym
}

// StringKey returns a string-named key.
func StringKey(name string) Key {
	return Key{kind: keyString, name: name}
}

// SymbolKey returns a symbol-named key.
func SymbolKey(s *Sym) Key {
	return Key{kind: keySymbol, sym: s}
}

// IsValid returns true unless k is the zero Key.
func (k Key) IsValid() bool {
	return k.kind != keyInvalid
}

// IsSymbol returns true if k names a symbol.
func (k Key) IsSymbol() bool {
	return k.kind == keySymbol
}

// StringName returns the string name of k, or false if k is not a
// string key.
func (k Key) StringName() (string, bool) {
	if k.kind != keyString {
		return "", false
	}
	return k.name, true
}

// Symbol returns the symbol named by k.
// Symbol returns false if k is not a symbol key.
func (k Key) Symbol() (*Sym, bool) {
	if k.kind != keySymbol {
		return nil, false
	}
	return k.sym, true
}

// DisplayString renders k for diagnostics and error messages.  Invalid
// keys render as "<invalid>".
func (k Key) DisplayString() string {
	switch k.kind {
	case keyString:
		return k.name
	case keySymbol:
		return k.sym.String()
	default:
		return "<invalid>"
	}
}
