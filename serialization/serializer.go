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

package serialization

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/emberml/ember/types/variant"
)

// Serializer is the append-only sink a Serializable writes its named
// properties into.
//
// It uses a deferred error model: the first error is stored and all further
// writes become no-ops, so a Serialize implementation can issue its writes
// in sequence and check Error once at the end.
type Serializer struct {
	err error

	// frames of nested object properties; frames[0] is the root object's
	// field list.
	frames [][]*property
}

// NewSerializer returns an empty Serializer positioned at the root object.
// Most callers use Save instead, which drives the whole protocol.
func NewSerializer() *Serializer {
	return &Serializer{frames: make([][]*property, 1)}
}

// Error returns the first error that happened during writing, or nil.
func (s *Serializer) Error() error { return s.err }

// Ok reports whether no error happened so far.
func (s *Serializer) Ok() bool { return s.err == nil }

func (s *Serializer) setError(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Serializer) appendProperty(p *property) {
	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], p)
}

// WriteValue appends a primitive property: bool, string, fixed-size ints
// and uints, float16/float32/float64, or a slice of those. Anything else
// fails the Serializer.
func (s *Serializer) WriteValue(name string, value any) {
	if !s.Ok() {
		return
	}
	valueType, encoded, err := encodeValue(value)
	if err != nil {
		s.setError(errors.WithMessagef(err, "WriteValue(%q)", name))
		return
	}
	s.appendProperty(&property{Name: name, Kind: kindValue, ValueType: valueType, Value: encoded})
}

// WriteObject appends a nested Serializable object, tagged with its type
// name and serialized recursively.
func (s *Serializer) WriteObject(name string, obj Serializable) {
	if !s.Ok() {
		return
	}
	if obj == nil {
		s.setError(errors.Errorf("WriteObject(%q): object is nil", name))
		return
	}
	fields, err := s.collectFields(obj)
	if err != nil {
		s.setError(errors.WithMessagef(err, "WriteObject(%q)", name))
		return
	}
	s.appendProperty(&property{Name: name, Kind: kindObject, Type: obj.TypeName(), Fields: fields})
}

// WriteObjectList appends an ordered sequence of Serializable objects, each
// tagged with its own type name -- the elements may be of different
// concrete kinds.
func (s *Serializer) WriteObjectList(name string, objs []Serializable) {
	if !s.Ok() {
		return
	}
	items := make([]*property, len(objs))
	for ii, obj := range objs {
		if obj == nil {
			s.setError(errors.Errorf("WriteObjectList(%q): element %d is nil", name, ii))
			return
		}
		fields, err := s.collectFields(obj)
		if err != nil {
			s.setError(errors.WithMessagef(err, "WriteObjectList(%q): element %d", name, ii))
			return
		}
		items[ii] = &property{Kind: kindObject, Type: obj.TypeName(), Fields: fields}
	}
	s.appendProperty(&property{Name: name, Kind: kindList, Items: items})
}

// WriteVariant appends the value held by a Variant, deciding how to persist
// it from the Variant's classification: primitives (and slices of
// primitives) inline, registered serializable objects recursively,
// pointer-like values rejected with ErrPointerValue.
//
// The serializable check runs before the pointer rejection: registered
// kinds are registered through pointer constructors, so a serializable
// object is also pointer-like, and only pointers that are not registered
// kinds are rejected.
func (s *Serializer) WriteVariant(name string, v variant.Variant) {
	if !s.Ok() {
		return
	}
	switch {
	case v.Empty():
		s.setError(errors.Errorf("WriteVariant(%q): variant is empty", name))
	case v.IsSerializable():
		s.WriteObject(name, v.Value().(Serializable))
	case v.IsPointer():
		s.setError(errors.Wrapf(ErrPointerValue, "WriteVariant(%q): variant holds %s", name, v.TypeName()))
	case v.IsPrimitive() || v.IsPrimitiveSlice():
		s.WriteValue(name, v.Value())
	case variant.Implements[Serializable](v):
		s.setError(errors.Errorf("WriteVariant(%q): variant holds %s, which implements Serializable but was never registered", name, v.TypeName()))
	default:
		s.setError(errors.Errorf("WriteVariant(%q): variant holds %s, which is neither a primitive nor a registered serializable kind", name, v.TypeName()))
	}
}

// collectFields runs obj.Serialize within a fresh frame and returns the
// properties it wrote.
func (s *Serializer) collectFields(obj Serializable) ([]*property, error) {
	s.frames = append(s.frames, nil)
	err := obj.Serialize(s)
	top := len(s.frames) - 1
	fields := s.frames[top]
	s.frames = s.frames[:top]
	if err == nil {
		err = s.err
	}
	return fields, err
}

// Save serializes root and writes the resulting document to w. It is the
// entry point of the protocol: the root object's type name is written
// first, then its properties, recursively.
func Save(w io.Writer, root Serializable) error {
	if root == nil {
		return errors.Errorf("serialization.Save: root object is nil")
	}
	ser := NewSerializer()
	fields, err := ser.collectFields(root)
	if err != nil {
		return errors.WithMessagef(err, "serializing %q", root.TypeName())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(&document{Type: root.TypeName(), Fields: fields}); err != nil {
		return errors.Wrapf(err, "encoding %q", root.TypeName())
	}
	return nil
}
