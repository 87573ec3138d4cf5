package reference

import (
	"errors"
	"testing"

	"github.com/norn-lang/norn/pkg/environ"
	"github.com/norn-lang/norn/pkg/object"
	"github.com/norn-lang/norn/pkg/runerr"
	"github.com/norn-lang/norn/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext adapts the real stores to the Context capability the way the
// evaluator's realm does.
type testContext struct {
	store  *object.Store
	global *environ.Record
}

func newTestContext() *testContext {
	return &testContext{
		store:  object.NewStore(),
		global: environ.NewRecord(nil, "GlobalEnvironment"),
	}
}

func (ctx *testContext) ToObject(v value.V) (ObjectCap, error) {
	o, err := ctx.store.ToObject(v)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (ctx *testContext) DefineGlobal(name string, v value.V) error {
	_, err := ctx.global.Update(name, v, environ.KindVar)
	return err
}

func number(t *testing.T, v value.V) float64 {
	t.Helper()
	f, ok := value.GetNumber(v)
	require.True(t, ok, "not a number: %v", v.Kind())
	return f
}

func TestPredicates(t *testing.T) {
	ctx := newTestContext()
	env := Environment(ctx.global, "x", false)
	assert.True(t, env.IsEnvironmentReference())
	assert.False(t, env.IsPropertyReference())
	assert.False(t, env.IsUnresolvable())
	assert.False(t, env.IsSuperReference())

	prop := Property(value.Number(1), value.StringKey("y"), true)
	assert.True(t, prop.IsPropertyReference())
	assert.False(t, prop.IsEnvironmentReference())
	assert.False(t, prop.IsSuperReference())
	assert.True(t, prop.Strict())

	sup := SuperProperty(value.Number(1), value.StringKey("y"), false, value.Null())
	assert.True(t, sup.IsPropertyReference())
	assert.True(t, sup.IsSuperReference())

	unres := Unresolvable(value.StringKey("z"), false)
	assert.True(t, unres.IsUnresolvable())
	assert.False(t, unres.IsPropertyReference())
}

func TestUnresolvableSloppy(t *testing.T) {
	ctx := newTestContext()
	ref := Unresolvable(value.StringKey("x"), false)

	// delete succeeds trivially with no state change
	ok, err := ref.Delete(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, ctx.global.Len())

	// read fails
	_, err = ref.Read(ctx, RequireBound)
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceError, runerr.ClassOf(err))
	assert.Equal(t, runerr.UnknownIdentifier, runerr.CodeOf(err))

	// write implicitly creates a global var binding
	require.NoError(t, ref.Write(ctx, value.Number(42)))
	v, kind, found := ctx.global.Lookup("x")
	require.True(t, found)
	assert.Equal(t, environ.KindVar, kind)
	assert.Equal(t, 42.0, number(t, v))

	// a subsequent environment read observes the written value
	envRef := Environment(ctx.global, "x", false)
	v, err = envRef.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.Equal(t, 42.0, number(t, v))
}

func TestUnresolvableStrict(t *testing.T) {
	ctx := newTestContext()
	ref := Unresolvable(value.StringKey("x"), true)

	_, err := ref.Read(ctx, RequireBound)
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceError, runerr.ClassOf(err))

	err = ref.Write(ctx, value.Number(1))
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceError, runerr.ClassOf(err))
	assert.Equal(t, 0, ctx.global.Len())

	// a strict unresolvable delete is a caller contract violation
	assert.Panics(t, func() {
		_, _ = ref.Delete(ctx)
	})
}

func TestUnresolvableNoName(t *testing.T) {
	ctx := newTestContext()
	ref := Unresolvable(value.Key{}, true)
	_, err := ref.Read(ctx, RequireBound)
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceUnresolvable, runerr.CodeOf(err))
}

func TestEnvironmentReadModes(t *testing.T) {
	ctx := newTestContext()
	ref := Environment(ctx.global, "missing", false)

	_, err := ref.Read(ctx, RequireBound)
	require.Error(t, err)
	assert.Equal(t, runerr.UnknownIdentifier, runerr.CodeOf(err))
	assert.Equal(t, "ReferenceError: 'missing' is not defined", err.Error())

	v, err := ref.Read(ctx, TolerateUnbound)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
}

func TestEnvironmentWriteCreatesVar(t *testing.T) {
	ctx := newTestContext()
	ref := Environment(ctx.global, "x", false)
	require.NoError(t, ref.Write(ctx, value.Number(42)))
	v, kind, ok := ctx.global.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, environ.KindVar, kind)
	assert.Equal(t, 42.0, number(t, v))

	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.Equal(t, 42.0, number(t, v))
}

func TestEnvironmentWriteConst(t *testing.T) {
	for _, strict := range []bool{false, true} {
		ctx := newTestContext()
		ctx.global.Define("c", value.Number(5), environ.KindConst)
		ref := Environment(ctx.global, "c", strict)

		err := ref.Write(ctx, value.Number(9))
		require.Error(t, err)
		assert.Equal(t, runerr.InvalidAssignToConst, runerr.CodeOf(err))
		assert.Equal(t, runerr.TypeError, runerr.ClassOf(err))

		v, err := ref.Read(ctx, RequireBound)
		require.NoError(t, err)
		assert.Equal(t, 5.0, number(t, v))
	}
}

func TestEnvironmentWriteNonWritable(t *testing.T) {
	ctx := newTestContext()
	ctx.global.DefineSealed("NaN", value.Number(1))

	strictRef := Environment(ctx.global, "NaN", true)
	err := strictRef.Write(ctx, value.Number(2))
	require.Error(t, err)
	assert.Equal(t, runerr.DescWriteNonWritable, runerr.CodeOf(err))
	assert.Equal(t, "TypeError: Cannot write to non-writable property 'NaN'", err.Error())

	sloppyRef := Environment(ctx.global, "NaN", false)
	assert.NoError(t, sloppyRef.Write(ctx, value.Number(2)))
	v, _, _ := ctx.global.Lookup("NaN")
	assert.Equal(t, 1.0, number(t, v))
}

func TestEnvironmentDelete(t *testing.T) {
	ctx := newTestContext()
	ctx.global.Define("declared", value.Number(1), environ.KindVar)
	_, err := ctx.global.Update("implicit", value.Number(2), environ.KindVar)
	require.NoError(t, err)

	ok, err := Environment(ctx.global, "declared", false).Delete(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = Environment(ctx.global, "implicit", false).Delete(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	_, _, found := ctx.global.Lookup("implicit")
	assert.False(t, found)
}

func TestPropertyRoundTrip(t *testing.T) {
	ctx := newTestContext()
	base := value.Object(ctx.store.NewObject())
	ref := Property(base, value.StringKey("y"), true)

	require.NoError(t, ref.Write(ctx, value.Number(7)))
	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.Equal(t, 7.0, number(t, v))
}

func TestPropertyReadAbsent(t *testing.T) {
	ctx := newTestContext()
	base := value.Object(ctx.store.NewObject())
	ref := Property(base, value.StringKey("nothing"), true)

	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
}

func TestPropertyReadBoxedPrimitive(t *testing.T) {
	ctx := newTestContext()
	// absent property on a boxed primitive reads as undefined, not an error
	ref := Property(value.Number(5), value.StringKey("y"), false)
	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())

	// nullish bases cannot box
	ref = Property(value.Null(), value.StringKey("y"), false)
	_, err = ref.Read(ctx, RequireBound)
	require.Error(t, err)
	assert.Equal(t, runerr.ToObjectNullish, runerr.CodeOf(err))
}

func TestPropertyWriteNullishStrict(t *testing.T) {
	ctx := newTestContext()
	ref := Property(value.Null(), value.StringKey("z"), true)

	err := ref.Write(ctx, value.Number(1))
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceNullishSetProperty, runerr.CodeOf(err))
	assert.Equal(t, "TypeError: Cannot set property 'z' of null", err.Error())

	ref = Property(value.Undefined(), value.StringKey("z"), true)
	err = ref.Write(ctx, value.Number(1))
	require.Error(t, err)
	assert.Equal(t, "TypeError: Cannot set property 'z' of undefined", err.Error())
}

func TestPropertyWriteNullishSloppy(t *testing.T) {
	ctx := newTestContext()

	ref := Property(value.Null(), value.StringKey("z"), false)
	assert.NoError(t, ref.Write(ctx, value.Number(1)))

	ref = Property(value.Undefined(), value.StringKey("z"), false)
	assert.NoError(t, ref.Write(ctx, value.Number(1)))
}

func TestPropertyWritePrimitiveStrict(t *testing.T) {
	ctx := newTestContext()
	ref := Property(value.Number(5), value.StringKey("y"), true)

	err := ref.Write(ctx, value.Number(1))
	require.Error(t, err)
	assert.Equal(t, runerr.ReferencePrimitiveSetProperty, runerr.CodeOf(err))
	assert.Equal(t, "TypeError: Cannot set property 'y' on number '5'", err.Error())

	ref = Property(value.String("hi"), value.StringKey("y"), true)
	err = ref.Write(ctx, value.Number(1))
	require.Error(t, err)
	assert.Equal(t, "TypeError: Cannot set property 'y' on string 'hi'", err.Error())
}

func TestPropertyWritePrimitiveSloppy(t *testing.T) {
	ctx := newTestContext()
	// the write lands on a transient wrapper and is lost, but does not fail
	ref := Property(value.Number(5), value.StringKey("y"), false)
	require.NoError(t, ref.Write(ctx, value.Number(1)))

	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	assert.True(t, v.IsUndefined())
}

func TestPropertyWriteStoreRejected(t *testing.T) {
	ctx := newTestContext()
	obj := ctx.store.NewObject()
	key := value.StringKey("frozen")
	obj.DefineOwn(key, value.Number(1), object.Enumerable|object.Configurable)
	base := value.Object(obj)

	err := Property(base, key, true).Write(ctx, value.Number(2))
	require.Error(t, err)
	assert.Equal(t, runerr.ReferenceNullishSetProperty, runerr.CodeOf(err))
	assert.Equal(t, "TypeError: Cannot set property 'frozen' of [object Object]", err.Error())

	assert.NoError(t, Property(base, key, false).Write(ctx, value.Number(2)))
	v, _ := obj.Get(key)
	assert.Equal(t, 1.0, number(t, v))
}

func TestPropertyDelete(t *testing.T) {
	ctx := newTestContext()
	obj := ctx.store.NewObject()
	key := value.StringKey("d")
	obj.Set(key, value.Number(1))
	base := value.Object(obj)

	ok, err := Property(base, key, false).Delete(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	_, found := obj.Get(key)
	assert.False(t, found)
}

func TestPropertyDeleteRejected(t *testing.T) {
	ctx := newTestContext()
	obj := ctx.store.NewObject()
	key := value.StringKey("pinned")
	obj.DefineOwn(key, value.Number(1), object.Writable|object.Enumerable)
	base := value.Object(obj)

	ok, err := Property(base, key, true).Delete(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, runerr.ReferenceNullishDeleteProperty, runerr.CodeOf(err))
	assert.Equal(t, "TypeError: Cannot delete property 'pinned' of [object Object]", err.Error())

	ok, err = Property(base, key, false).Delete(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
	_, found := obj.Get(key)
	assert.True(t, found)
}

func TestSuperReference(t *testing.T) {
	ctx := newTestContext()
	proto := ctx.store.NewObject()
	key := value.StringKey("m")
	proto.Set(key, value.Number(3))
	base := value.Object(proto)
	this := value.Object(ctx.store.NewObject())

	for _, strict := range []bool{false, true} {
		ref := SuperProperty(base, key, strict, this)

		// delete always fails regardless of strictness
		ok, err := ref.Delete(ctx)
		require.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, runerr.UnsupportedDeleteSuperProperty, runerr.CodeOf(err))
		assert.Equal(t, runerr.ReferenceError, runerr.ClassOf(err))

		// read and write follow ordinary property rules on the super base
		v, err := ref.Read(ctx, RequireBound)
		require.NoError(t, err)
		assert.Equal(t, 3.0, number(t, v))
		require.NoError(t, ref.Write(ctx, value.Number(4)))
		v, err = ref.Read(ctx, RequireBound)
		require.NoError(t, err)
		assert.Equal(t, 4.0, number(t, v))
		require.NoError(t, ref.Write(ctx, value.Number(3)))
	}
}

func TestSymbolPropertyKey(t *testing.T) {
	ctx := newTestContext()
	base := value.Object(ctx.store.NewObject())
	key := value.SymbolKey(value.NewSymbol("tag"))
	ref := Property(base, key, true)

	require.NoError(t, ref.Write(ctx, value.String("v")))
	v, err := ref.Read(ctx, RequireBound)
	require.NoError(t, err)
	s, _ := value.GetString(v)
	assert.Equal(t, "v", s)
}

// failingStore reports a pending failure from its write, exercising the
// short-circuit propagation path.
type failingStore struct {
	*environ.Record
	err error
}

func (s *failingStore) Update(name string, v value.V, kind environ.Kind) (bool, error) {
	return false, s.err
}

func TestPropagatedStoreFailure(t *testing.T) {
	ctx := newTestContext()
	pending := errors.New("pending trap failure")
	store := &failingStore{
		Record: environ.NewRecord(nil, "GlobalEnvironment"),
		err:    pending,
	}

	// the pending failure propagates verbatim even on a strict reference,
	// with no second error layered on top
	err := Environment(store, "x", true).Write(ctx, value.Number(1))
	assert.Equal(t, pending, err)
}

// failingContext reports a pending failure from object coercion.
type failingContext struct {
	err error
}

func (ctx *failingContext) ToObject(v value.V) (ObjectCap, error) { return nil, ctx.err }
func (ctx *failingContext) DefineGlobal(string, value.V) error    { return ctx.err }

func TestPropagatedCoercionFailure(t *testing.T) {
	pending := errors.New("pending coercion failure")
	ctx := &failingContext{err: pending}
	ref := Property(value.Boolean(true), value.StringKey("y"), false)

	_, err := ref.Read(ctx, RequireBound)
	assert.Equal(t, pending, err)
	assert.Equal(t, pending, ref.Write(ctx, value.Number(1)))
	ok, err := ref.Delete(ctx)
	assert.False(t, ok)
	assert.Equal(t, pending, err)
}

func TestString(t *testing.T) {
	ctx := newTestContext()

	ref := Unresolvable(value.StringKey("x"), true)
	assert.Equal(t,
		"Reference { Base=Unresolvable, ReferencedName=x, Strict=true, ThisValue=<empty> }",
		ref.String())

	ref = Unresolvable(value.Key{}, false)
	assert.Equal(t,
		"Reference { Base=Unresolvable, ReferencedName=<invalid>, Strict=false, ThisValue=<empty> }",
		ref.String())

	ref = Environment(ctx.global, "x", false)
	assert.Equal(t,
		"Reference { Base=GlobalEnvironment, ReferencedName=x, Strict=false, ThisValue=<empty> }",
		ref.String())

	ref = Property(value.Number(5), value.StringKey("y"), true).WithThis(value.Null())
	assert.Equal(t,
		"Reference { Base=5, ReferencedName=y, Strict=true, ThisValue=null }",
		ref.String())

	obj := value.Object(ctx.store.NewObject())
	sym := value.NewSymbol("tag")
	ref = SuperProperty(obj, value.SymbolKey(sym), false, obj)
	assert.Equal(t,
		"Reference { Base=[object Object], ReferencedName=Symbol(tag), Strict=false, ThisValue=[object Object] }",
		ref.String())
}

func TestAccessors(t *testing.T) {
	ctx := newTestContext()

	env := Environment(ctx.global, "x", false)
	store, ok := env.BaseEnvironment()
	assert.True(t, ok)
	assert.Equal(t, "GlobalEnvironment", store.ClassName())
	_, ok = env.BaseValue()
	assert.False(t, ok)

	prop := Property(value.Number(1), value.StringKey("y"), false)
	base, ok := prop.BaseValue()
	assert.True(t, ok)
	assert.Equal(t, 1.0, number(t, base))
	_, ok = prop.BaseEnvironment()
	assert.False(t, ok)

	assert.True(t, prop.ThisValue().IsEmpty())
	withThis := prop.WithThis(value.Boolean(true))
	b, ok := value.GetBoolean(withThis.ThisValue())
	assert.True(t, ok)
	assert.True(t, b)
	name, ok := prop.Name().StringName()
	assert.True(t, ok)
	assert.Equal(t, "y", name)
}
