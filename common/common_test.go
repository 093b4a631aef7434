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

package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberml/ember/model"
	"github.com/emberml/ember/predictors"
)

func TestSaveLoadModel(t *testing.T) {
	p := predictors.NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	m := model.New()
	inputs := m.MustAdd(model.NewInput(2))
	outputs, err := p.AddToModel(m, inputs)
	require.NoError(t, err)

	filePath := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveModel(filePath, m))

	loaded, err := LoadModel(filePath)
	require.NoError(t, err)
	require.Equal(t, m.NumNodes(), loaded.NumNodes())
	got, err := loaded.ComputeAt(outputs, []float64{1.0, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, got)
}

func TestSaveLoadMap(t *testing.T) {
	mp := model.NewSingleInputMap(2)
	p := predictors.NewLinearFrom([]float64{2.0, -1.0}, 0.5)
	outputs, err := p.AddToModel(mp.Model(), mp.OutputCoordinates())
	require.NoError(t, err)
	require.NoError(t, mp.SetOutputs(outputs))

	filePath := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, SaveMap(filePath, mp))

	loaded, err := LoadMap(filePath)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.OutputSize())
	got, err := loaded.Compute([]float64{1.0, 1.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5}, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadModelRejectsMapFile(t *testing.T) {
	mp := model.NewSingleInputMap(2)
	filePath := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, SaveMap(filePath, mp))
	_, err := LoadModel(filePath)
	require.Error(t, err)
}

func TestReplaceTildeInDir(t *testing.T) {
	assert.Equal(t, "/tmp/x", ReplaceTildeInDir("/tmp/x"))
	assert.Equal(t, "", ReplaceTildeInDir(""))
	expanded := ReplaceTildeInDir("~/models")
	assert.NotContains(t, expanded, "~")
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		assert.Equal(t, filepath.Join(home, "models"), expanded)
	}
}
