package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNative struct{}

func (fakeNative) ClassName() string { return "Fake" }

func TestKinds(t *testing.T) {
	assert.Equal(t, VEmpty, V{}.Kind())
	assert.Equal(t, VUndefined, Undefined().Kind())
	assert.Equal(t, VNull, Null().Kind())
	assert.Equal(t, VBoolean, Boolean(true).Kind())
	assert.Equal(t, VNumber, Number(1).Kind())
	assert.Equal(t, VString, String("").Kind())
	assert.Equal(t, VSymbol, Symbol(NewSymbol("s")).Kind())
	assert.Equal(t, VObject, Object(fakeNative{}).Kind())

	assert.Equal(t, "number", VNumber.String())
	assert.Equal(t, "invalid", Kind(100).String())
}

func TestAccessors(t *testing.T) {
	b, ok := GetBoolean(Boolean(true))
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = GetBoolean(Number(1))
	assert.False(t, ok)

	f, ok := GetNumber(Number(1.5))
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)
	_, ok = GetNumber(String("1.5"))
	assert.False(t, ok)

	s, ok := GetString(String("hi"))
	assert.True(t, ok)
	assert.Equal(t, "hi", s)
	_, ok = GetString(Null())
	assert.False(t, ok)

	sym := NewSymbol("s")
	got, ok := GetSymbol(Symbol(sym))
	assert.True(t, ok)
	assert.Equal(t, sym, got)

	n, ok := GetObject(Object(fakeNative{}))
	assert.True(t, ok)
	assert.Equal(t, "Fake", n.ClassName())
}

func TestPredicates(t *testing.T) {
	assert.True(t, V{}.IsEmpty())
	assert.False(t, Undefined().IsEmpty())
	assert.True(t, Undefined().IsUndefined())
	assert.True(t, Null().IsNull())
	assert.True(t, Null().IsNullish())
	assert.True(t, Undefined().IsNullish())
	assert.False(t, Number(0).IsNullish())
	assert.True(t, Object(fakeNative{}).IsObject())
	assert.False(t, String("").IsObject())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "undefined", TypeOf(Undefined()))
	assert.Equal(t, "object", TypeOf(Null()))
	assert.Equal(t, "boolean", TypeOf(Boolean(false)))
	assert.Equal(t, "number", TypeOf(Number(0)))
	assert.Equal(t, "string", TypeOf(String("")))
	assert.Equal(t, "symbol", TypeOf(Symbol(NewSymbol(""))))
	assert.Equal(t, "object", TypeOf(Object(fakeNative{})))
}

func TestDisplayString(t *testing.T) {
	assert.Equal(t, "<empty>", DisplayString(V{}))
	assert.Equal(t, "undefined", DisplayString(Undefined()))
	assert.Equal(t, "null", DisplayString(Null()))
	assert.Equal(t, "true", DisplayString(Boolean(true)))
	assert.Equal(t, "false", DisplayString(Boolean(false)))
	assert.Equal(t, "hi", DisplayString(String("hi")))
	assert.Equal(t, "Symbol(tag)", DisplayString(Symbol(NewSymbol("tag"))))
	assert.Equal(t, "[object Fake]", DisplayString(Object(fakeNative{})))
}

func TestDisplayStringNumbers(t *testing.T) {
	assert.Equal(t, "NaN", DisplayString(NaN()))
	assert.Equal(t, "Infinity", DisplayString(Infinity()))
	assert.Equal(t, "-Infinity", DisplayString(Number(math.Inf(-1))))
	assert.Equal(t, "42", DisplayString(Number(42)))
	assert.Equal(t, "0", DisplayString(Number(0)))
	assert.Equal(t, "0", DisplayString(Number(math.Copysign(0, -1))))
	assert.Equal(t, "-7", DisplayString(Number(-7)))
	assert.Equal(t, "1.5", DisplayString(Number(1.5)))
}

func TestSymbolIdentity(t *testing.T) {
	a := NewSymbol("same")
	b := NewSymbol("same")
	// Key identity is pointer identity on the underlying *Sym; testify's
	// NotEqual would deep-compare through the pointers, so use Go's ==.
	assert.False(t, SymbolKey(a) == SymbolKey(b))
	assert.True(t, SymbolKey(a) == SymbolKey(a))
	assert.Equal(t, "same", a.Description())
}

func TestKey(t *testing.T) {
	assert.False(t, Key{}.IsValid())
	assert.Equal(t, "<invalid>", Key{}.DisplayString())

	k := StringKey("name")
	require.True(t, k.IsValid())
	assert.False(t, k.IsSymbol())
	name, ok := k.StringName()
	assert.True(t, ok)
	assert.Equal(t, "name", name)
	_, ok = k.Symbol()
	assert.False(t, ok)
	assert.Equal(t, "name", k.DisplayString())

	sk := SymbolKey(NewSymbol("tag"))
	require.True(t, sk.IsValid())
	assert.True(t, sk.IsSymbol())
	_, ok = sk.StringName()
	assert.False(t, ok)
	sym, ok := sk.Symbol()
	assert.True(t, ok)
	assert.Equal(t, "tag", sym.Description())
	assert.Equal(t, "Symbol(tag)", sk.DisplayString())
}
