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

package trainers

import (
	"github.com/gomlx/exceptions"

	"github.com/emberml/ember/predictors"
)

// SGD trains a linear predictor by stochastic gradient descent on the
// squared loss, with optional L2 regularization. Each Update call is one
// pass (epoch) over the dataset; shuffle between calls for better mixing.
type SGD struct {
	learningRate   float64
	regularization float64
	predictor      *predictors.Linear
	step           int
}

// NewSGD returns a trainer for a fresh linear predictor of the given input
// dimension. learningRate must be positive; regularization (L2 weight)
// must be non-negative.
func NewSGD(dimension int, learningRate, regularization float64) *SGD {
	if learningRate <= 0 {
		exceptions.Panicf("trainers.NewSGD: learning rate must be positive, got %g", learningRate)
	}
	if regularization < 0 {
		exceptions.Panicf("trainers.NewSGD: regularization must be non-negative, got %g", regularization)
	}
	return &SGD{
		learningRate:   learningRate,
		regularization: regularization,
		predictor:      predictors.NewLinear(dimension),
	}
}

// Update implements IncrementalTrainer: one epoch of SGD over the dataset.
func (t *SGD) Update(ds Dataset) {
	for _, example := range ds {
		t.step++
		residual := t.predictor.Predict(example.Input) - example.Label
		if t.regularization > 0 {
			t.predictor.Scale(1 - t.learningRate*t.regularization)
		}
		direction := make([]float64, len(example.Input))
		for ii, x := range example.Input {
			direction[ii] = -residual * x
		}
		t.predictor.ApplyGradient(t.learningRate, direction, -t.learningRate*residual)
	}
}

// Predictor implements IncrementalTrainer.
func (t *SGD) Predictor() predictors.Predictor { return t.predictor }

// LinearPredictor returns the trained predictor with its concrete type.
func (t *SGD) LinearPredictor() *predictors.Linear { return t.predictor }

// Steps returns the number of examples consumed so far.
func (t *SGD) Steps() int { return t.step }

// MeanSquaredError returns the predictor's current mean squared error over
// the dataset. Evaluation convenience for drivers running in verbose mode.
func (t *SGD) MeanSquaredError(ds Dataset) float64 {
	if len(ds) == 0 {
		return 0
	}
	var total float64
	for _, example := range ds {
		residual := t.predictor.Predict(example.Input) - example.Label
		total += residual * residual
	}
	return total / float64(len(ds))
}
