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

package model

import (
	"github.com/pkg/errors"

	"github.com/emberml/ember/serialization"
)

// MapTypeName is Map's registered type name.
const MapTypeName = "Map"

// Map wraps a Model with a designated input node and a designated list of
// output coordinates: the surface drivers wire further stages to. A typical
// use is loading a Map holding a data-preprocessing graph, training a
// predictor on its outputs, lowering the predictor on top of the Map's
// model, and saving the combined result.
type Map struct {
	model   *Model
	input   NodeID
	outputs CoordinateList
}

// NewMap builds a Map over the given model. The input id must refer to an
// InputNode of the model and every output coordinate must resolve within
// it.
func NewMap(m *Model, input NodeID, outputs CoordinateList) (*Map, error) {
	if input < 0 || int(input) >= m.NumNodes() {
		return nil, errors.Wrapf(ErrInvalidCoordinate, "map input node %d not in model (model has %d nodes)", input, m.NumNodes())
	}
	if _, ok := m.NodeByID(input).(*InputNode); !ok {
		return nil, errors.Errorf("map input node %d is a %q, not an input node", input, m.NodeByID(input).TypeName())
	}
	for _, c := range outputs {
		if err := m.validateCoordinate(c); err != nil {
			return nil, errors.WithMessagef(err, "map outputs")
		}
	}
	return &Map{model: m, input: input, outputs: outputs}, nil
}

// NewSingleInputMap builds a fresh Model holding only an InputNode of the
// given dimension and wraps it in a Map whose outputs are the input's own
// coordinates. This is the identity preprocessing map drivers start from
// when no Map was loaded from storage.
func NewSingleInputMap(dimension int) *Map {
	m := New()
	outputs := m.MustAdd(NewInput(dimension))
	return &Map{model: m, input: 0, outputs: outputs}
}

// Model returns the underlying model. The Map keeps referring to it, so
// appending nodes (e.g. predictor lowering) mutates the Map's model too --
// that is the intended composition path.
func (p *Map) Model() *Model { return p.model }

// InputID returns the id of the designated input node.
func (p *Map) InputID() NodeID { return p.input }

// OutputSize returns the number of output elements the Map exposes.
func (p *Map) OutputSize() int { return len(p.outputs) }

// OutputCoordinates returns the coordinates of the Map's designated
// outputs, the attachment points for further stages.
func (p *Map) OutputCoordinates() CoordinateList {
	return append(CoordinateList(nil), p.outputs...)
}

// SetOutputs redesignates the Map's outputs, e.g. after appending nodes to
// the underlying model. Every coordinate must resolve within the model.
func (p *Map) SetOutputs(outputs CoordinateList) error {
	for _, c := range outputs {
		if err := p.model.validateCoordinate(c); err != nil {
			return errors.WithMessagef(err, "map outputs")
		}
	}
	p.outputs = outputs
	return nil
}

// Compute evaluates the underlying model on the input vector and returns
// the values at the Map's designated outputs.
func (p *Map) Compute(input []float64) ([]float64, error) {
	return p.model.ComputeAt(p.outputs, input)
}

// TypeName implements serialization.Serializable.
func (p *Map) TypeName() string { return MapTypeName }

// Serialize implements serialization.Serializable.
func (p *Map) Serialize(ser *serialization.Serializer) error {
	ser.WriteObject("model", p.model)
	ser.WriteValue("input", int(p.input))
	p.outputs.Serialize(ser, "outputs")
	return ser.Error()
}

// Deserialize implements serialization.Serializable.
func (p *Map) Deserialize(des *serialization.Deserializer) error {
	m, err := serialization.ReadObjectAs[*Model](des, "model")
	if err != nil {
		return err
	}
	input, err := serialization.Read[int](des, "input")
	if err != nil {
		return err
	}
	outputs, err := ReadCoordinateList(des, "outputs")
	if err != nil {
		return err
	}
	rebuilt, err := NewMap(m, NodeID(input), outputs)
	if err != nil {
		return errors.WithMessage(err, "rebuilding map")
	}
	*p = *rebuilt
	return nil
}

func init() {
	serialization.Register(func() *Map { return &Map{} })
}
