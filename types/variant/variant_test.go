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

package variant

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestGetRoundTrip(t *testing.T) {
	v := Of(3.25)
	require.True(t, IsType[float64](v))
	got, err := Get[float64](v)
	require.NoError(t, err)
	assert.Equal(t, 3.25, got)

	s := Of("hello")
	gotS, err := Get[string](s)
	require.NoError(t, err)
	assert.Equal(t, "hello", gotS)

	h := Of(float16.Fromfloat32(1.5))
	gotH, err := Get[float16.Float16](h)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), gotH.Float32())
}

func TestGetTypeMismatch(t *testing.T) {
	v := Of(int32(7))
	_, err := Get[int64](v) // No implicit widening.
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = Get[float64](Variant{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}

func TestSetReplacesTypeAndValue(t *testing.T) {
	v := Of(42)
	require.True(t, IsType[int](v))

	v.Set("now a string")
	require.True(t, IsType[string](v))
	require.False(t, IsType[int](v))
	_, err := Get[int](v)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	got, err := Get[string](v)
	require.NoError(t, err)
	assert.Equal(t, "now a string", got)
}

func TestEmpty(t *testing.T) {
	var v Variant
	assert.True(t, v.Empty())
	assert.False(t, IsType[int](v))
	assert.Equal(t, "<empty>", v.String())
	assert.Equal(t, "<empty>", v.TypeName())

	v.Set(1.0)
	assert.False(t, v.Empty())
	v.Reset()
	assert.True(t, v.Empty())
}

func TestCloneDeepCopiesSlices(t *testing.T) {
	weights := []float64{2.0, -1.0}
	v := Of(weights)
	clone := v.Clone()

	weights[0] = 99.0
	got, err := Get[[]float64](clone)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, -1.0}, got)

	// The original variant shares the caller's slice.
	orig, err := Get[[]float64](v)
	require.NoError(t, err)
	assert.Equal(t, 99.0, orig[0])
}

type clonerValue struct {
	data []int
}

func (c clonerValue) CloneValue() any {
	return clonerValue{data: append([]int(nil), c.data...)}
}

func TestCloneUsesCloner(t *testing.T) {
	c := clonerValue{data: []int{1, 2, 3}}
	v := Of(c)
	clone := v.Clone()
	c.data[0] = -1
	got, err := Get[clonerValue](clone)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.data)
}

type stringerValue struct{}

func (stringerValue) String() string { return "stringy" }

func TestString(t *testing.T) {
	assert.Equal(t, "3.5", Of(3.5).String())
	assert.Equal(t, "true", Of(true).String())
	assert.Equal(t, "stringy", Of(stringerValue{}).String())

	type opaque struct{ x int }
	s := Of(opaque{1}).String()
	assert.Contains(t, s, "opaque")
	assert.Contains(t, s, "<")
}

func TestClassification(t *testing.T) {
	assert.True(t, Of(1).IsPrimitive())
	assert.True(t, Of(uint16(1)).IsPrimitive())
	assert.True(t, Of("x").IsPrimitive())
	assert.True(t, Of(float16.Fromfloat32(2)).IsPrimitive())
	assert.True(t, Of(complex(1, 2)).IsPrimitive())
	assert.False(t, Of([]float64{1}).IsPrimitive())
	assert.True(t, Of([]float64{1}).IsPrimitiveSlice())
	assert.False(t, Of(struct{}{}).IsPrimitive())

	x := 7
	assert.True(t, Of(&x).IsPointer())
	assert.True(t, Of(map[string]int{}).IsPointer())
	assert.True(t, Of(func() {}).IsPointer())
	assert.False(t, Of(x).IsPointer())

	// Named types with primitive underlying kinds keep their identity.
	type myInt int
	assert.False(t, Of(myInt(1)).IsPrimitive())
}

func TestImplements(t *testing.T) {
	assert.True(t, Implements[fmt.Stringer](Of(stringerValue{})))
	assert.False(t, Implements[fmt.Stringer](Of(3)))
	assert.False(t, Implements[fmt.Stringer](Variant{}))
}

func TestFromAny(t *testing.T) {
	v := FromAny(any(int64(5)))
	require.True(t, IsType[int64](v))
	assert.True(t, FromAny(nil).Empty())
}
