/*
 *	Copyright 2025 The ember Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package variant implements Variant, a runtime-typed box holding exactly one
// value of a type unknown at compile time.
//
// A Variant pairs a value with its runtime type identity and only gives the
// value back when asked for under exactly that type -- type erasure recovers
// exactness, not approximation: there is no implicit numeric widening, asking
// a Variant holding an int32 for an int64 fails with ErrTypeMismatch.
//
// Variants are how the serialization package carries heterogeneous named
// properties (a node's numeric parameters next to string metadata) through one
// uniform container. The classification queries (Variant.IsPrimitive,
// Variant.IsSerializable, Variant.IsPointer) are what the serializer consults
// to decide how a property value is persisted: primitives inline, serializable
// objects recursively, pointer-like values not at all.
//
// Create a Variant with New (or Of for an existing value), retrieve with Get:
//
//	v := variant.Of(3.14)
//	x, err := variant.Get[float64](v)  // x == 3.14
//	_, err = variant.Get[float32](v)   // errors.Is(err, variant.ErrTypeMismatch)
//
// Since Go methods cannot take type parameters, the typed operations (Get,
// IsType, Implements) are free functions taking the Variant as argument.
package variant

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// ErrTypeMismatch is returned (wrapped) by Get when the requested type does
// not equal the held type, and by Set on a nil Variant. Compare with
// errors.Is.
var ErrTypeMismatch = errors.New("variant type mismatch")

// Variant holds exactly one value and its runtime type identity.
//
// The zero Variant is empty: it holds no value, IsType reports false for
// every type and Get fails. Assignment of a Variant copies the box but shares
// the held value's storage where Go would (slices); use Clone for an
// independent deep copy.
type Variant struct {
	rtype reflect.Type
	value any
}

// New creates a Variant owning a freshly built zero value of type T.
func New[T any]() Variant {
	var value T
	return Variant{rtype: reflect.TypeFor[T](), value: value}
}

// Of creates a Variant holding the given value. The Variant's type identity
// is the value's static type T, including when value is nil-able.
func Of[T any](value T) Variant {
	return Variant{rtype: reflect.TypeFor[T](), value: value}
}

// FromAny creates a Variant from a value whose static type was already
// erased. The type identity is taken from the dynamic type. A nil value
// yields the empty Variant.
func FromAny(value any) Variant {
	if value == nil {
		return Variant{}
	}
	return Variant{rtype: reflect.TypeOf(value), value: value}
}

// Empty reports whether the Variant holds no value.
func (v Variant) Empty() bool { return v.rtype == nil }

// Type returns the reflect.Type of the held value, or nil if empty.
func (v Variant) Type() reflect.Type { return v.rtype }

// TypeName returns the held type's name, as Go spells it ("float64",
// "[]int32", "nodes.Coordinatewise"). Empty Variants return "<empty>".
func (v Variant) TypeName() string {
	if v.rtype == nil {
		return "<empty>"
	}
	return v.rtype.String()
}

// Value returns the held value with its type erased, or nil if empty.
// Prefer Get, which checks the type.
func (v Variant) Value() any { return v.value }

// Get returns the held value if the Variant's type identity is exactly T.
// Otherwise it returns the zero T and an error wrapping ErrTypeMismatch.
func Get[T any](v Variant) (T, error) {
	var zero T
	want := reflect.TypeFor[T]()
	if v.rtype == nil {
		return zero, errors.Wrapf(ErrTypeMismatch, "variant is empty, cannot get %s", want)
	}
	if v.rtype != want {
		return zero, errors.Wrapf(ErrTypeMismatch, "variant holds %s, not %s", v.rtype, want)
	}
	return v.value.(T), nil
}

// IsType reports whether the held type is exactly T. It never fails: an
// empty Variant is not of any type.
func IsType[T any](v Variant) bool {
	return v.rtype != nil && v.rtype == reflect.TypeFor[T]()
}

// Implements reports whether the held type implements the interface type T.
// Callers use it to check for capabilities this package does not know
// about, such as an unregistered serializable implementation.
func Implements[T any](v Variant) bool {
	if v.rtype == nil {
		return false
	}
	iface := reflect.TypeFor[T]()
	if iface.Kind() != reflect.Interface {
		return false
	}
	return v.rtype.Implements(iface)
}

// Set replaces the held value and its type identity together. The previous
// contents are released; there is no observable partial state.
func (v *Variant) Set(value any) {
	*v = FromAny(value)
}

// Reset returns the Variant to the empty state.
func (v *Variant) Reset() {
	*v = Variant{}
}

// Cloner is the optional capability a held value may implement to control
// how Clone copies it.
type Cloner interface {
	// CloneValue returns an independent deep copy of the receiver.
	CloneValue() any
}

// Clone returns a Variant holding an independent copy of the held value.
//
// Values implementing Cloner are copied through it. Slices of primitives are
// deep-copied element by element. Everything else is copied by assignment,
// which for Go value types is the type's own copy semantics. Pointer-like
// values (see IsPointer) end up sharing their referent; they are rejected by
// the serializer anyway.
func (v Variant) Clone() Variant {
	if v.rtype == nil {
		return Variant{}
	}
	if cloner, ok := v.value.(Cloner); ok {
		return Variant{rtype: v.rtype, value: cloner.CloneValue()}
	}
	if v.rtype.Kind() == reflect.Slice {
		src := reflect.ValueOf(v.value)
		dst := reflect.MakeSlice(v.rtype, src.Len(), src.Len())
		reflect.Copy(dst, src)
		return Variant{rtype: v.rtype, value: dst.Interface()}
	}
	return v
}

// String renders the held value for diagnostics. It uses the value's own
// fmt.Stringer if implemented, "%v" for primitives, and a "<type>"
// placeholder for everything else. This is best-effort output, not a
// serialization path.
func (v Variant) String() string {
	if v.rtype == nil {
		return "<empty>"
	}
	if stringer, ok := v.value.(fmt.Stringer); ok {
		return stringer.String()
	}
	if v.IsPrimitive() {
		return fmt.Sprintf("%v", v.value)
	}
	return fmt.Sprintf("<%s>", v.rtype)
}

// IsPrimitive reports whether the held value is of a primitive kind: bool,
// the fixed-size ints and uints, floats (including float16.Float16),
// complex, or string. Primitive values are written inline by the serializer.
func (v Variant) IsPrimitive() bool {
	if v.rtype == nil {
		return false
	}
	return isPrimitiveType(v.rtype)
}

// IsPrimitiveSlice reports whether the held value is a slice of a primitive
// kind, persisted by the serializer as an ordered list.
func (v Variant) IsPrimitiveSlice() bool {
	if v.rtype == nil || v.rtype.Kind() != reflect.Slice {
		return false
	}
	return isPrimitiveType(v.rtype.Elem())
}

// IsPointer reports whether the held value is pointer-like: a pointer, map,
// channel or function. Pointer identity cannot be made portable across a
// save/load boundary, so the serializer rejects these.
func (v Variant) IsPointer() bool {
	if v.rtype == nil {
		return false
	}
	switch v.rtype.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// IsSerializable reports whether the held type was registered as a
// serializable kind. The set of serializable types is populated by the
// serialization package's type registry at registration time (see
// MarkSerializable), so the capability is resolved once per concrete kind,
// when it is registered, not by ad-hoc inspection at every call.
func (v Variant) IsSerializable() bool {
	if v.rtype == nil {
		return false
	}
	serializableMu.RLock()
	defer serializableMu.RUnlock()
	if serializableTypes[v.rtype] {
		return true
	}
	// A registered *T also makes T's pointer receiver methods available only
	// through *T, so only the exact registered type qualifies.
	return false
}

var float16Type = reflect.TypeFor[float16.Float16]()

func isPrimitiveType(t reflect.Type) bool {
	if t == float16Type {
		return true
	}
	// Named types with a primitive underlying kind are not primitives: their
	// identity matters to Get, and the serializer could not restore the name.
	if t.PkgPath() != "" {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}
