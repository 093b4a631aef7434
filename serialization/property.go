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
	"reflect"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// property is a node of the persisted tree: one named, typed value. A
// property is one of three kinds: an inline primitive value, a nested
// object (tagged with its concrete type name), or an ordered list.
type property struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	// Inline value (Kind == kindValue). ValueType records the Go type, so
	// decoding can undo the JSON number coercion to float64.
	// Value must not be omitempty: zero values (false, 0, "") are still
	// values.
	ValueType string `json:"value_type,omitempty"`
	Value     any    `json:"value"`

	// Nested object (Kind == kindObject).
	Type   string      `json:"type,omitempty"`
	Fields []*property `json:"fields,omitempty"`

	// Ordered sequence (Kind == kindList).
	Items []*property `json:"items,omitempty"`
}

const (
	kindValue  = "value"
	kindObject = "object"
	kindList   = "list"
)

// document is the root of a stream: a single object property tree.
type document struct {
	Type   string      `json:"type"`
	Fields []*property `json:"fields"`
}

var float16Type = reflect.TypeFor[float16.Float16]()

// encodeValue validates that value is a supported primitive (or slice of
// primitives) and returns its ValueType tag and a JSON-encodable rendering.
// float16 travels as its float32 value; everything else is JSON-native.
func encodeValue(value any) (valueType string, encoded any, err error) {
	t := reflect.TypeOf(value)
	if t == nil {
		return "", nil, errors.Wrapf(ErrMalformedStream, "cannot serialize a nil value")
	}
	if t == float16Type {
		return "float16", value.(float16.Float16).Float32(), nil
	}
	if t.Kind() == reflect.Slice {
		elemType, _, elemErr := encodeScalar(reflect.Zero(t.Elem()).Interface())
		if elemErr != nil {
			return "", nil, errors.Wrapf(elemErr, "slice element type %s", t.Elem())
		}
		src := reflect.ValueOf(value)
		encodedSlice := make([]any, src.Len())
		for ii := 0; ii < src.Len(); ii++ {
			_, encodedSlice[ii], err = encodeScalar(src.Index(ii).Interface())
			if err != nil {
				return "", nil, err
			}
		}
		return "[]" + elemType, encodedSlice, nil
	}
	return encodeScalar(value)
}

func encodeScalar(value any) (valueType string, encoded any, err error) {
	switch v := value.(type) {
	case bool, string, float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return reflect.TypeOf(value).String(), value, nil
	case float16.Float16:
		return "float16", v.Float32(), nil
	default:
		return "", nil, errors.Errorf("value of type %T is not a supported primitive", value)
	}
}

// decodeValue reverses encodeValue: the JSON decoder hands back float64 for
// every number (and []any for every list), and ValueType tells us the
// original Go type to restore.
func decodeValue(valueType string, raw any) (any, error) {
	if len(valueType) > 2 && valueType[:2] == "[]" {
		rawSlice, ok := raw.([]any)
		if !ok {
			if raw == nil {
				rawSlice = nil // Empty slices encode as JSON null.
			} else {
				return nil, errors.Wrapf(ErrMalformedStream, "property tagged %q holds %T, not a list", valueType, raw)
			}
		}
		return decodeSlice(valueType[2:], rawSlice)
	}
	return decodeScalar(valueType, raw)
}

func decodeScalar(valueType string, raw any) (any, error) {
	switch valueType {
	case "bool":
		if v, ok := raw.(bool); ok {
			return v, nil
		}
	case "string":
		if v, ok := raw.(string); ok {
			return v, nil
		}
	default:
		// All numbers arrive as float64 from the JSON decoder.
		v, ok := raw.(float64)
		if !ok {
			break
		}
		switch valueType {
		case "float64":
			return v, nil
		case "float32":
			return float32(v), nil
		case "float16":
			return float16.Fromfloat32(float32(v)), nil
		case "int":
			return int(v), nil
		case "int8":
			return int8(v), nil
		case "int16":
			return int16(v), nil
		case "int32":
			return int32(v), nil
		case "int64":
			return int64(v), nil
		case "uint":
			return uint(v), nil
		case "uint8":
			return uint8(v), nil
		case "uint16":
			return uint16(v), nil
		case "uint32":
			return uint32(v), nil
		case "uint64":
			return uint64(v), nil
		}
		return nil, errors.Wrapf(ErrMalformedStream, "unknown value type tag %q", valueType)
	}
	return nil, errors.Wrapf(ErrMalformedStream, "property tagged %q holds incompatible %T", valueType, raw)
}

func decodeSlice(elemType string, raw []any) (any, error) {
	switch elemType {
	case "bool":
		return decodeSliceOf[bool](elemType, raw)
	case "string":
		return decodeSliceOf[string](elemType, raw)
	case "float64":
		return decodeSliceOf[float64](elemType, raw)
	case "float32":
		return decodeSliceOf[float32](elemType, raw)
	case "float16":
		return decodeSliceOf[float16.Float16](elemType, raw)
	case "int":
		return decodeSliceOf[int](elemType, raw)
	case "int8":
		return decodeSliceOf[int8](elemType, raw)
	case "int16":
		return decodeSliceOf[int16](elemType, raw)
	case "int32":
		return decodeSliceOf[int32](elemType, raw)
	case "int64":
		return decodeSliceOf[int64](elemType, raw)
	case "uint":
		return decodeSliceOf[uint](elemType, raw)
	case "uint8":
		return decodeSliceOf[uint8](elemType, raw)
	case "uint16":
		return decodeSliceOf[uint16](elemType, raw)
	case "uint32":
		return decodeSliceOf[uint32](elemType, raw)
	case "uint64":
		return decodeSliceOf[uint64](elemType, raw)
	}
	return nil, errors.Wrapf(ErrMalformedStream, "unknown value type tag %q", "[]"+elemType)
}

func decodeSliceOf[T any](elemType string, raw []any) (any, error) {
	out := make([]T, len(raw))
	for ii, e := range raw {
		decoded, err := decodeScalar(elemType, e)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d", ii)
		}
		out[ii] = decoded.(T)
	}
	return out, nil
}
