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

// Deserializer is a cursor over one object's properties, yielding them back
// in the order they were written. Each Read* call consumes the next
// property and requires its name to match -- a mismatch means the stream
// and the reader disagree on the kind's layout, which is ErrMalformedStream.
type Deserializer struct {
	fields []*property
	pos    int
}

// next consumes the next property, checking its name and kind.
func (d *Deserializer) next(name, kind string) (*property, error) {
	if d.pos >= len(d.fields) {
		return nil, errors.Wrapf(ErrMalformedStream, "no more properties, wanted %q", name)
	}
	p := d.fields[d.pos]
	if p.Name != name {
		return nil, errors.Wrapf(ErrMalformedStream, "next property is %q, wanted %q", p.Name, name)
	}
	if p.Kind != kind {
		return nil, errors.Wrapf(ErrMalformedStream, "property %q is a %s, wanted a %s", name, p.Kind, kind)
	}
	d.pos++
	return p, nil
}

// exhausted reports whether every property was consumed.
func (d *Deserializer) exhausted() bool { return d.pos == len(d.fields) }

// ReadValue consumes the next property, which must be the named primitive,
// and returns it boxed in a Variant carrying its original Go type. Use the
// generic Read to get the unboxed value directly.
func (d *Deserializer) ReadValue(name string) (variant.Variant, error) {
	p, err := d.next(name, kindValue)
	if err != nil {
		return variant.Variant{}, err
	}
	decoded, err := decodeValue(p.ValueType, p.Value)
	if err != nil {
		return variant.Variant{}, errors.WithMessagef(err, "property %q", name)
	}
	return variant.FromAny(decoded), nil
}

// Read consumes the next property, which must be the named primitive of
// exactly type T. A value of a different type fails with ErrTypeMismatch.
func Read[T any](d *Deserializer, name string) (T, error) {
	v, err := d.ReadValue(name)
	if err != nil {
		var zero T
		return zero, err
	}
	value, err := variant.Get[T](v)
	if err != nil {
		return value, errors.WithMessagef(err, "property %q", name)
	}
	return value, nil
}

// ReadObject consumes the next property, which must be the named nested
// object: its stored type name is resolved through the registry, a default
// instance of that kind is constructed, and its own Deserialize is invoked
// on the object's properties. The nested object must consume all of them.
func (d *Deserializer) ReadObject(name string) (Serializable, error) {
	p, err := d.next(name, kindObject)
	if err != nil {
		return nil, err
	}
	return materialize(p)
}

// ReadObjectList consumes the next property, which must be the named
// ordered sequence of nested objects, reconstructing each in order.
func (d *Deserializer) ReadObjectList(name string) ([]Serializable, error) {
	p, err := d.next(name, kindList)
	if err != nil {
		return nil, err
	}
	objs := make([]Serializable, len(p.Items))
	for ii, item := range p.Items {
		if item.Kind != kindObject {
			return nil, errors.Wrapf(ErrMalformedStream, "list %q element %d is a %s, wanted an object", name, ii, item.Kind)
		}
		objs[ii], err = materialize(item)
		if err != nil {
			return nil, errors.WithMessagef(err, "list %q element %d", name, ii)
		}
	}
	return objs, nil
}

// ReadObjectAs reads a nested object and requires its reconstructed kind to
// satisfy T (an interface or concrete Serializable type).
func ReadObjectAs[T Serializable](d *Deserializer, name string) (T, error) {
	obj, err := d.ReadObject(name)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return typed, errors.Wrapf(ErrTypeMismatch, "property %q reconstructed a %q (%T)", name, obj.TypeName(), obj)
	}
	return typed, nil
}

// materialize reconstructs one object property: registry lookup, default
// construction, then the instance's own Deserialize over its fields.
func materialize(p *property) (Serializable, error) {
	obj, err := New(p.Type)
	if err != nil {
		return nil, err
	}
	sub := &Deserializer{fields: p.Fields}
	if err := obj.Deserialize(sub); err != nil {
		return nil, errors.WithMessagef(err, "deserializing %q", p.Type)
	}
	if !sub.exhausted() {
		return nil, errors.Wrapf(ErrMalformedStream, "%q consumed %d of %d properties", p.Type, sub.pos, len(p.Fields))
	}
	return obj, nil
}

// Load reads a document from r and reconstructs its root object: the
// reverse of Save. The caller does not need to know the concrete kind in
// advance, only that it was registered.
func Load(r io.Reader) (Serializable, error) {
	dec := json.NewDecoder(r)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedStream, "decoding document: %v", err)
	}
	if doc.Type == "" {
		return nil, errors.Wrapf(ErrMalformedStream, "document has no root type name")
	}
	return materialize(&property{Kind: kindObject, Type: doc.Type, Fields: doc.Fields})
}

// LoadAs reads a document from r and requires the root object to satisfy T.
func LoadAs[T Serializable](r io.Reader) (T, error) {
	obj, err := Load(r)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return typed, errors.Wrapf(ErrTypeMismatch, "document holds a %q (%T)", obj.TypeName(), obj)
	}
	return typed, nil
}
