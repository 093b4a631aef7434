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

package predictors

import (
	"github.com/pkg/errors"

	"github.com/emberml/ember/model"
	"github.com/emberml/ember/nodes"
	"github.com/emberml/ember/serialization"
	"github.com/emberml/ember/types/xslices"
)

// LinearTypeName is Linear's registered type name.
const LinearTypeName = "LinearPredictor"

// Linear is a linear predictor: score = w·x + b.
type Linear struct {
	weights []float64
	bias    float64
}

// NewLinear returns a zero linear predictor of the given input dimension.
func NewLinear(dimension int) *Linear {
	return &Linear{weights: make([]float64, dimension)}
}

// NewLinearFrom returns a linear predictor with the given weights and bias.
// The weights are copied.
func NewLinearFrom(weights []float64, bias float64) *Linear {
	return &Linear{weights: xslices.Copy(weights), bias: bias}
}

// Dimension returns the input dimension.
func (p *Linear) Dimension() int { return len(p.weights) }

// Weights returns a copy of the weight vector.
func (p *Linear) Weights() []float64 { return xslices.Copy(p.weights) }

// Bias returns the bias term.
func (p *Linear) Bias() float64 { return p.bias }

// Reset zeroes the weights and bias.
func (p *Linear) Reset() {
	for ii := range p.weights {
		p.weights[ii] = 0
	}
	p.bias = 0
}

// Scale multiplies the weights and bias by the scalar.
func (p *Linear) Scale(scalar float64) {
	for ii := range p.weights {
		p.weights[ii] *= scalar
	}
	p.bias *= scalar
}

// ApplyGradient adds step*direction to the weights and stepBias to the
// bias. Trainers use it; most other callers should not.
func (p *Linear) ApplyGradient(step float64, direction []float64, stepBias float64) {
	for ii := range p.weights {
		p.weights[ii] += step * direction[ii]
	}
	p.bias += stepBias
}

// Predict implements Predictor: w·x + b. The input must have the
// predictor's dimension.
func (p *Linear) Predict(input []float64) float64 {
	return xslices.Dot(p.weights, input[:len(p.weights)]) + p.bias
}

// WeightedElements returns the elementwise product w[i]*x[i], the
// per-feature contributions to the score before the bias.
func (p *Linear) WeightedElements(input []float64) []float64 {
	out := xslices.Copy(p.weights)
	for ii := range out {
		out[ii] *= input[ii]
	}
	return out
}

// AddToModel implements Predictor. The linear computation lowers into
// exactly three generic nodes: an elementwise multiply by the weights, a
// sum reduction, and an add-bias -- the returned single coordinate is the
// score.
func (p *Linear) AddToModel(m *model.Model, inputs model.CoordinateList) (model.CoordinateList, error) {
	if len(inputs) != len(p.weights) {
		return nil, errors.Errorf("linear predictor of dimension %d lowered onto %d input coordinates", len(p.weights), len(inputs))
	}
	weighted, err := m.Add(nodes.NewScaling(p.weights, inputs))
	if err != nil {
		return nil, err
	}
	summed, err := m.Add(nodes.NewSum(weighted))
	if err != nil {
		return nil, err
	}
	return m.Add(nodes.NewBias(p.bias, summed[0]))
}

// TypeName implements serialization.Serializable.
func (p *Linear) TypeName() string { return LinearTypeName }

// Serialize implements serialization.Serializable.
func (p *Linear) Serialize(ser *serialization.Serializer) error {
	ser.WriteValue("weights", p.weights)
	ser.WriteValue("bias", p.bias)
	return ser.Error()
}

// Deserialize implements serialization.Serializable.
func (p *Linear) Deserialize(des *serialization.Deserializer) (err error) {
	if p.weights, err = serialization.Read[[]float64](des, "weights"); err != nil {
		return err
	}
	p.bias, err = serialization.Read[float64](des, "bias")
	return err
}

func init() {
	serialization.Register(func() *Linear { return &Linear{} })
}
