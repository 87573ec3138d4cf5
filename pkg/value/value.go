/*
Package value provides norn's runtime value model.  A V is a small tagged
struct that holds one of the language's primitive shapes or a handle to a
native object representation.  The zero V is the empty value, which marks
the absence of a value and is distinct from undefined.
*/
package value

import (
	"math"
	"strconv"
)

// Kind is the shape tag of a V.
type Kind uint8

// Possible Kind values.
const (
	// VEmpty marks a V that holds no value at all.  It is not a language
	// value and never escapes to scripts.
	VEmpty Kind = iota
	// VUndefined is the language's undefined sentinel.
	VUndefined
	// VNull is the null value.
	VNull
	// VBoolean holds a truth value.
	// Schema:
	// 	bits: 0x0 if false and 0x1 if true
	VBoolean
	// VNumber holds a float64.
	// Schema:
	// 	bits: math.Float64bits of the number
	VNumber
	// VString holds a go string.
	// Schema:
	// 	native: string
	VString
	// VSymbol holds a unique symbol.
	// Schema:
	// 	native: *Sym
	VSymbol
	// VObject holds a native object representation.
	// Schema:
	// 	native: Native
	VObject
)

var kindStrings = []string{
	VEmpty:     "empty",
	VUndefined: "undefined",
	VNull:      "null",
	VBoolean:   "boolean",
	VNumber:    "number",
	VString:    "string",
	VSymbol:    "symbol",
	VObject:    "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStrings) {
		return "invalid"
	}
	return kindStrings[k]
}

// Native is implemented by object representations stored in VObject values.
// The value package treats natives as opaque; the class name is used only
// for diagnostic strings.
type Native interface {
	ClassName() string
}

// V is a norn runtime value.
type V struct {
	kind   Kind
	bits   uint64
	native interface{}
}

// Kind returns the shape tag of v.
func (v V) Kind() Kind {
	return v.kind
}

// Undefined returns the undefined value.
func Undefined() V {
	return V{kind: VUndefined}
}

// Null returns the null value.
func Null() V {
	return V{kind: VNull}
}

// Boolean returns a boolean value with the truth value of ok.
func Boolean(ok bool) V {
	v := V{kind: VBoolean}
	if ok {
		v.bits = 1
	}
	return v
}

// Number returns a number value.
func Number(f float64) V {
	return V{kind: VNumber, bits: math.Float64bits(f)}
}

// NaN returns the not-a-number value.
func NaN() V {
	return Number(math.NaN())
}

// Infinity returns the positive infinity value.
func Infinity() V {
	return Number(math.Inf(1))
}

// String returns a string value.
func String(s string) V {
	return V{kind: VString, native: s}
}

// Symbol wraps the symbol s as a value.
func Symbol(s *Sym) V {
	return V{kind: VSymbol, native: s}
}

// Object wraps a native object representation as a value.
func Object(n Native) V {
	return V{kind: VObject, native: n}
}

// GetBoolean returns the truth value held by v.
// GetBoolean returns false if v is not VBoolean.
func GetBoolean(v V) (bool, bool) {
	if v.kind != VBoolean {
		return false, false
	}
	return v.bits != 0, true
}

// GetNumber returns the float64 held by v.
// GetNumber returns false if v is not VNumber.
func GetNumber(v V) (float64, bool) {
	if v.kind != VNumber {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

// GetString returns the string held by v.
// GetString returns false if v is not VString.
func GetString(v V) (string, bool) {
	if v.kind != VString {
		return "", false
	}
	return v.native.(string), true
}

// GetSymbol returns the symbol held by v.
// GetSymbol returns false if v is not VSymbol.
func GetSymbol(v V) (*Sym, bool) {
	if v.kind != VSymbol {
		return nil, false
	}
	return v.native.(*Sym), true
}

// GetObject returns the native object representation held by v.
// GetObject returns false if v is not VObject.
func GetObject(v V) (Native, bool) {
	if v.kind != VObject {
		return nil, false
	}
	return v.native.(Native), true
}

// IsEmpty returns true if v holds no value.
func (v V) IsEmpty() bool {
	return v.kind == VEmpty
}

// IsUndefined returns true if v is undefined.
func (v V) IsUndefined() bool {
	return v.kind == VUndefined
}

// IsNull returns true if v is null.
func (v V) IsNull() bool {
	return v.kind == VNull
}

// IsNullish returns true if v is undefined or null.
func (v V) IsNullish() bool {
	return v.kind == VUndefined || v.kind == VNull
}

// IsObject returns true if v holds a native object.
func (v V) IsObject() bool {
	return v.kind == VObject
}

// TypeOf returns the type tag the typeof operator reports for v.  Per
// language contract null reports "object".
func TypeOf(v V) string {
	switch v.kind {
	case VUndefined:
		return "undefined"
	case VNull:
		return "object"
	case VBoolean:
		return "boolean"
	case VNumber:
		return "number"
	case VString:
		return "string"
	case VSymbol:
		return "symbol"
	case VObject:
		return "object"
	default:
		return "undefined"
	}
}

// DisplayString renders v as a human-readable string without invoking any
// script-observable behavior.  It is used by diagnostics and error
// messages.  The empty value renders as "<empty>".
func DisplayString(v V) string {
	switch v.kind {
	case VEmpty:
		return "<empty>"
	case VUndefined:
		return "undefined"
	case VNull:
		return "null"
	case VBoolean:
		if v.bits != 0 {
			return "true"
		}
		return "false"
	case VNumber:
		return formatNumber(math.Float64frombits(v.bits))
	case VString:
		return v.native.(string)
	case VSymbol:
		return v.native.(*Sym).String()
	case VObject:
		return "[object " + v.native.(Native).ClassName() + "]"
	default:
		return "<invalid>"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		// Integral doubles render without a decimal point.  This also
		// folds negative zero into "0".
		if f == 0 {
			return "0"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
