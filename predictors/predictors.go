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

// Package predictors holds trained predictor kinds. A predictor scores an
// input vector directly (Predict) and knows how to lower itself into a
// Model as a subgraph of generic nodes (AddToModel), which is how
// statically-typed predictors of different kinds end up in one uniformly
// serializable graph.
package predictors

import (
	"github.com/emberml/ember/model"
	"github.com/emberml/ember/serialization"
)

// Predictor is the capability set trainers produce and drivers consume.
// How a trainer computes one is its own business; ember only relies on this
// contract.
type Predictor interface {
	serialization.Serializable

	// Predict returns the predictor's score for the input vector.
	Predict(input []float64) float64

	// AddToModel lowers the predictor into m: it appends whatever nodes
	// represent the predictor's computation, consuming the given input
	// coordinates, and returns the coordinates of its result.
	AddToModel(m *model.Model, inputs model.CoordinateList) (model.CoordinateList, error)
}
