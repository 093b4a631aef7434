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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberml/ember/model"
	"github.com/emberml/ember/serialization"
)

func TestLinearPredict(t *testing.T) {
	p := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	assert.Equal(t, 1.5, p.Predict([]float64{1.0, 1.0}))
	assert.Equal(t, 0.5, p.Predict([]float64{0.0, 0.0}))
	assert.InDelta(t, 2.0*3.0-1.0*0.5+0.5, p.Predict([]float64{3.0, 0.5}), 1e-12)
}

func TestLinearAccessors(t *testing.T) {
	weights := []float64{1.0, 2.0}
	p := NewLinearFrom(weights, -1.0)
	weights[0] = 99.0 // The predictor owns its copy.
	assert.Equal(t, []float64{1.0, 2.0}, p.Weights())
	assert.Equal(t, -1.0, p.Bias())
	assert.Equal(t, 2, p.Dimension())
}

func TestLinearScaleAndReset(t *testing.T) {
	p := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	p.Scale(2.0)
	assert.Equal(t, []float64{4.0, -2.0}, p.Weights())
	assert.Equal(t, 1.0, p.Bias())

	p.Reset()
	assert.Equal(t, []float64{0.0, 0.0}, p.Weights())
	assert.Equal(t, 0.0, p.Bias())
}

func TestWeightedElements(t *testing.T) {
	p := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	assert.Equal(t, []float64{6.0, -4.0}, p.WeightedElements([]float64{3.0, 4.0}))
}

func TestAddToModel(t *testing.T) {
	p := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	m := model.New()
	inputs, err := m.Add(model.NewInput(2))
	require.NoError(t, err)

	before := m.NumNodes()
	outputs, err := p.AddToModel(m, inputs)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumNodes()-before, "lowering a linear predictor appends multiply, sum and add-bias")
	require.Len(t, outputs, 1)

	// The lowered graph computes what Predict computes.
	for _, input := range [][]float64{{1, 1}, {0, 0}, {3, 0.5}, {-2, 7}} {
		got, err := m.ComputeAt(outputs, input)
		require.NoError(t, err)
		assert.InDelta(t, p.Predict(input), got[0], 1e-12, "input %v", input)
	}
}

func TestAddToModelDimensionMismatch(t *testing.T) {
	p := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	m := model.New()
	inputs, err := m.Add(model.NewInput(3))
	require.NoError(t, err)
	_, err = p.AddToModel(m, inputs)
	require.Error(t, err)
}

func TestLoweringDeterminism(t *testing.T) {
	// Structurally equal predictors lower to computationally equal graphs.
	lower := func() (*model.Model, model.CoordinateList) {
		p := NewLinearFrom([]float64{0.25, -3.0, 1.0}, -0.75)
		m := model.New()
		inputs := m.MustAdd(model.NewInput(3))
		outputs, err := p.AddToModel(m, inputs)
		require.NoError(t, err)
		return m, outputs
	}
	m1, out1 := lower()
	m2, out2 := lower()
	for _, input := range [][]float64{{1, 1, 1}, {0.5, -2, 3}} {
		got1, err := m1.ComputeAt(out1, input)
		require.NoError(t, err)
		got2, err := m2.ComputeAt(out2, input)
		require.NoError(t, err)
		assert.Equal(t, got1, got2)
	}
}

func TestLinearRoundTrip(t *testing.T) {
	orig := NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	var buf bytes.Buffer
	require.NoError(t, serialization.Save(&buf, orig))
	loaded, err := serialization.LoadAs[*Linear](&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Weights(), loaded.Weights())
	assert.Equal(t, orig.Bias(), loaded.Bias())
	assert.Equal(t, orig.Predict([]float64{1, 1}), loaded.Predict([]float64{1, 1}))
}

func TestLinearSatisfiesPredictor(t *testing.T) {
	var _ Predictor = NewLinear(2)
}
