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

// Package xslices holds generic slice helpers used throughout ember.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// Map executes the given function sequentially for every element on in, and returns a mapped slice.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// At returns the element at the given position. Negative positions index
// from the end, -1 being the last element.
func At[T any](slice []T, pos int) T {
	if pos < 0 {
		pos = len(slice) + pos
	}
	return slice[pos]
}

// Last returns the last element of the slice.
func Last[T any](slice []T) T {
	return slice[len(slice)-1]
}

// Iota returns a slice of the given size with sequential values starting
// with start, e.g. Iota(0, 3) == []int{0, 1, 2}.
func Iota[T constraints.Integer | constraints.Float](start T, size int) (slice []T) {
	slice = make([]T, size)
	for ii := range slice {
		slice[ii] = start + T(ii)
	}
	return
}

// SliceWithValue returns a slice of the given size filled with the given value.
func SliceWithValue[T any](size int, value T) (slice []T) {
	slice = make([]T, size)
	for ii := range slice {
		slice[ii] = value
	}
	return
}

// Copy returns an independent copy of the slice. A nil slice stays nil.
func Copy[T any](slice []T) []T {
	if slice == nil {
		return nil
	}
	return append([]T(nil), slice...)
}

// Dot returns the inner product of a and b, which must have the same length.
func Dot[T constraints.Float](a, b []T) (sum T) {
	for ii, v := range a {
		sum += v * b[ii]
	}
	return
}
