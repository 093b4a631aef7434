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

// Package serialization persists heterogeneous graphs of strongly-typed
// objects as one uniformly-typed stream of named properties, and
// reconstructs them without the caller knowing the concrete types in
// advance.
//
// The three pieces:
//
//   - Serializable is the capability: report a stable type name, write your
//     state into a Serializer, restore it from a Deserializer.
//   - Serializer/Deserializer are a duality: an append-only sink of named,
//     typed properties, and a cursor yielding them back in the same order.
//     Primitives are written inline, nested Serializable objects
//     recursively (tagged by type name), sequences as ordered lists.
//   - The type registry maps a type name to a factory producing a
//     default-constructed instance of that kind, which the Deserializer
//     then populates. Register every concrete kind (usually from an init
//     function) before any deserialization of it is attempted.
//
// On the wire a document is a JSON property tree, tab-indented. No byte
// layout beyond that is promised; round-trip symmetry is the contract: each
// kind's Deserialize must consume exactly the properties its Serialize
// wrote, in the same order, with the same nesting. The framework cannot
// enforce that symmetry, it can only detect violations as a malformed
// stream.
//
// A minimal Serializable kind looks like:
//
//	type Threshold struct {
//		Feature int
//		Value   float64
//	}
//
//	func (t *Threshold) TypeName() string { return "Threshold" }
//
//	func (t *Threshold) Serialize(ser *serialization.Serializer) error {
//		ser.WriteValue("feature", t.Feature)
//		ser.WriteValue("value", t.Value)
//		return ser.Error()
//	}
//
//	func (t *Threshold) Deserialize(des *serialization.Deserializer) (err error) {
//		t.Feature, err = serialization.Read[int](des, "feature")
//		if err != nil {
//			return err
//		}
//		t.Value, err = serialization.Read[float64](des, "value")
//		return err
//	}
//
//	func init() {
//		serialization.Register(func() *Threshold { return &Threshold{} })
//	}
package serialization

import (
	"github.com/pkg/errors"

	"github.com/emberml/ember/types/variant"
)

// Serializable is the capability required of every object that passes
// through the framework.
type Serializable interface {
	// TypeName returns the stable name identifying this concrete kind. It
	// is the registry lookup key and the only thing written to a stream to
	// distinguish concrete kinds, so it must never change once streams
	// exist. Each kind also exports it as a package-level constant (the
	// "static accessor"), e.g. nodes.SumTypeName.
	TypeName() string

	// Serialize writes the object's state as named properties, in a fixed
	// order specific to this kind.
	Serialize(ser *Serializer) error

	// Deserialize restores the object's state from the cursor, consuming
	// exactly the properties Serialize wrote, in the same order. It is only
	// ever called on a freshly constructed instance of the matching kind.
	Deserialize(des *Deserializer) error
}

// The framework's error kinds. An unregistered type name is deliberately
// distinct from a malformed stream: the former means the process forgot a
// registration, the latter that a kind's Serialize/Deserialize pair is
// asymmetric (or the input is not a document this process wrote).
var (
	// ErrUnregisteredType: a type name with no registered factory was
	// looked up during reconstruction. Fatal to that deserialization.
	ErrUnregisteredType = errors.New("serialization: unregistered type name")

	// ErrMalformedStream: the property stream does not have the shape the
	// reader expects (wrong name, wrong kind of property, exhausted cursor).
	ErrMalformedStream = errors.New("serialization: malformed stream")

	// ErrPointerValue: an attempt to persist a pointer-like value. Pointer
	// identity cannot be made portable across a save/load boundary, so
	// these are rejected rather than dereferenced.
	ErrPointerValue = errors.New("serialization: pointer-like value cannot be serialized")
)

// ErrTypeMismatch aliases the variant package's error: Read under the wrong
// type surfaces the same kind of failure as a Variant retrieval under the
// wrong type.
var ErrTypeMismatch = variant.ErrTypeMismatch
