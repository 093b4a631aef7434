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
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberml/ember/predictors"
	"github.com/emberml/ember/serialization"
)

// syntheticLinear builds a noiseless dataset from y = 2*x1 - x2 + 0.5.
func syntheticLinear(rng *rand.Rand, n int) Dataset {
	ds := make(Dataset, n)
	for ii := range ds {
		x1 := rng.Float64()*4 - 2
		x2 := rng.Float64()*4 - 2
		ds[ii] = Example{Input: []float64{x1, x2}, Label: 2*x1 - x2 + 0.5}
	}
	return ds
}

func TestSGDLearnsLinearTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ds := syntheticLinear(rng, 200)

	trainer := NewSGD(2, 0.05, 0)
	initialMSE := trainer.MeanSquaredError(ds)
	for epoch := 0; epoch < 50; epoch++ {
		ds.Shuffle(rng)
		trainer.Update(ds)
	}
	finalMSE := trainer.MeanSquaredError(ds)

	assert.Less(t, finalMSE, initialMSE)
	assert.Less(t, finalMSE, 1e-3)

	p := trainer.LinearPredictor()
	weights := p.Weights()
	assert.InDelta(t, 2.0, weights[0], 0.05)
	assert.InDelta(t, -1.0, weights[1], 0.05)
	assert.InDelta(t, 0.5, p.Bias(), 0.05)
	assert.Equal(t, 50*len(ds), trainer.Steps())
}

func TestSGDRegularizationShrinksWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ds := syntheticLinear(rng, 100)

	plain := NewSGD(2, 0.05, 0)
	regularized := NewSGD(2, 0.05, 0.5)
	for epoch := 0; epoch < 20; epoch++ {
		plain.Update(ds)
		regularized.Update(ds)
	}
	plainW := plain.LinearPredictor().Weights()
	regW := regularized.LinearPredictor().Weights()
	assert.Less(t, regW[0]*regW[0]+regW[1]*regW[1], plainW[0]*plainW[0]+plainW[1]*plainW[1])
}

func TestTrainedPredictorRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ds := syntheticLinear(rng, 100)
	trainer := NewSGD(2, 0.05, 0)
	for epoch := 0; epoch < 30; epoch++ {
		ds.Shuffle(rng)
		trainer.Update(ds)
	}
	p := trainer.LinearPredictor()

	var buf bytes.Buffer
	require.NoError(t, serialization.Save(&buf, p))
	loaded, err := serialization.LoadAs[*predictors.Linear](&buf)
	require.NoError(t, err)
	for _, example := range ds[:10] {
		assert.Equal(t, p.Predict(example.Input), loaded.Predict(example.Input))
	}
}

func TestNewSGDValidatesArguments(t *testing.T) {
	require.Panics(t, func() { NewSGD(2, 0, 0) })
	require.Panics(t, func() { NewSGD(2, -0.1, 0) })
	require.Panics(t, func() { NewSGD(2, 0.1, -1) })
}

func TestSGDSatisfiesIncrementalTrainer(t *testing.T) {
	var _ IncrementalTrainer = NewSGD(2, 0.1, 0)
}

func TestShuffleIsAPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ds := syntheticLinear(rng, 20)
	seen := make(map[float64]int, len(ds))
	for _, e := range ds {
		seen[e.Label]++
	}
	ds.Shuffle(rng)
	for _, e := range ds {
		seen[e.Label]--
	}
	for _, count := range seen {
		assert.Zero(t, count)
	}
}
