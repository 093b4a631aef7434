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

// Package trainers implements the incremental trainers that produce
// predictors. The core of ember does not depend on this package: it only
// relies on the predictor capability a trainer's result satisfies.
package trainers

import (
	"math/rand"

	"github.com/emberml/ember/predictors"
)

// Example is one labeled input vector.
type Example struct {
	Input []float64
	Label float64
}

// Dataset is an in-memory collection of examples.
type Dataset []Example

// Shuffle randomly permutes the dataset using the given generator.
func (ds Dataset) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

// IncrementalTrainer consumes datasets in increments (e.g. one epoch at a
// time) and exposes the predictor trained so far.
type IncrementalTrainer interface {
	// Update performs one training increment over the dataset.
	Update(ds Dataset)

	// Predictor returns the predictor trained so far. The same instance is
	// updated by subsequent Update calls.
	Predictor() predictors.Predictor
}
