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

// Package model implements the dataflow graph at the center of ember: a
// Model owning an ordered collection of Nodes wired to each other through
// Coordinates.
//
// A Model is a DAG by construction: a node may only reference coordinates
// of nodes already present when it is added, so cycles cannot be expressed.
// Node identity is ordinal (NodeID is the position in insertion order), and
// the same order drives evaluation and serialization, making both
// deterministic.
//
// Models are built either directly, by adding nodes, or by asking a
// predictor to lower itself (see the predictors package): heterogeneous
// predictor kinds become subgraphs of the generic node kinds in the nodes
// package, after which one Model -- uniformly Serializable -- carries them
// all.
//
// Building a graph is a single-threaded affair, as is evaluating or
// serializing one: no internal locking is provided, and a Model must not be
// mutated while a Compute or Save pass is in progress over it.
package model

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/emberml/ember/serialization"
	"github.com/emberml/ember/types/xslices"
)

// ErrInvalidCoordinate is the construction-time error for a node wired to a
// coordinate that does not resolve to a node already in the Model (or to a
// port it does not have). Dangling references are rejected when the node is
// added, never discovered at evaluation time.
var ErrInvalidCoordinate = errors.New("model: coordinate does not resolve within the model")

// ModelTypeName is Model's registered type name.
const ModelTypeName = "Model"

// Model owns a collection of Nodes, in insertion order. The zero Model is
// empty and ready to use, but most callers use New.
type Model struct {
	nodes []Node
}

// New returns an empty Model.
func New() *Model {
	return &Model{}
}

// NumNodes returns the number of nodes owned by the Model.
func (m *Model) NumNodes() int { return len(m.nodes) }

// NodeByID returns the node with the given ordinal id. It panics (with a
// stack trace) on an id outside [0, NumNodes()), which is always a caller
// bug: the Model only ever hands out valid ids.
func (m *Model) NodeByID(id NodeID) Node {
	if id < 0 || int(id) >= len(m.nodes) {
		exceptions.Panicf("Model.NodeByID(%d): model has %d nodes", id, len(m.nodes))
	}
	return m.nodes[id]
}

// OutputCoordinates returns the coordinates of every output port of the
// node with the given id, in port order.
func (m *Model) OutputCoordinates(id NodeID) CoordinateList {
	node := m.NodeByID(id)
	cl := make(CoordinateList, node.OutputSize())
	for port := range cl {
		cl[port] = Coordinate{Node: id, Port: port}
	}
	return cl
}

// validateCoordinate checks that c resolves to a node already in the Model
// and one of its ports.
func (m *Model) validateCoordinate(c Coordinate) error {
	if c.Node < 0 || int(c.Node) >= len(m.nodes) {
		return errors.Wrapf(ErrInvalidCoordinate, "%s references a node not in the model (model has %d nodes)", c, len(m.nodes))
	}
	if c.Port < 0 || c.Port >= m.nodes[c.Node].OutputSize() {
		return errors.Wrapf(ErrInvalidCoordinate, "%s references a port out of range (node %d has %d ports)", c, c.Node, m.nodes[c.Node].OutputSize())
	}
	return nil
}

// Add takes ownership of node into the Model and returns the coordinates of
// its output ports. Every coordinate the node consumes must resolve to a
// node already in the Model; a dangling coordinate returns
// ErrInvalidCoordinate and the Model is left unchanged. Adding only nodes
// whose inputs point backwards is what makes the graph a DAG by
// construction.
func (m *Model) Add(node Node) (CoordinateList, error) {
	for _, c := range node.Inputs() {
		if err := m.validateCoordinate(c); err != nil {
			return nil, errors.WithMessagef(err, "adding %q", node.TypeName())
		}
	}
	id := NodeID(len(m.nodes))
	m.nodes = append(m.nodes, node)
	return m.OutputCoordinates(id), nil
}

// MustAdd is Add, panicking (with a stack trace) on a dangling coordinate.
// Convenient when building graphs whose wiring is static.
func (m *Model) MustAdd(node Node) CoordinateList {
	cl, err := m.Add(node)
	if err != nil {
		exceptions.Panicf("Model.MustAdd: %+v", err)
	}
	return cl
}

// ComputeAt evaluates the graph on the given input vector and returns the
// values at the requested coordinates. Nodes are evaluated in insertion
// order, depth-first wiring having been flattened by construction; input
// nodes are fed the input vector, whose length must match their size.
func (m *Model) ComputeAt(outputs CoordinateList, input []float64) ([]float64, error) {
	for _, c := range outputs {
		if err := m.validateCoordinate(c); err != nil {
			return nil, errors.WithMessagef(err, "computing model outputs")
		}
	}
	values := make([][]float64, len(m.nodes))
	for id, node := range m.nodes {
		if inputNode, ok := node.(*InputNode); ok {
			if len(input) != inputNode.OutputSize() {
				return nil, errors.Errorf("model input has %d elements, input node %d expects %d",
					len(input), id, inputNode.OutputSize())
			}
			values[id] = input
			continue
		}
		coords := node.Inputs()
		gathered := make([]float64, len(coords))
		for ii, c := range coords {
			gathered[ii] = values[c.Node][c.Port]
		}
		values[id] = node.Compute(gathered)
	}
	result := make([]float64, len(outputs))
	for ii, c := range outputs {
		result[ii] = values[c.Node][c.Port]
	}
	return result, nil
}

// Compute evaluates the graph and returns the output ports of the last
// node added.
func (m *Model) Compute(input []float64) ([]float64, error) {
	if len(m.nodes) == 0 {
		return nil, errors.Errorf("cannot compute an empty model")
	}
	return m.ComputeAt(m.OutputCoordinates(NodeID(len(m.nodes)-1)), input)
}

// TypeName implements serialization.Serializable.
func (m *Model) TypeName() string { return ModelTypeName }

// Serialize implements serialization.Serializable: the nodes, in insertion
// order, each tagged by its own type name.
func (m *Model) Serialize(ser *serialization.Serializer) error {
	ser.WriteObjectList("nodes", xslices.Map(m.nodes, func(n Node) serialization.Serializable { return n }))
	return ser.Error()
}

// Deserialize implements serialization.Serializable. Nodes are
// reconstructed and re-added in order, so the DAG invariant is re-validated
// against the stream: a persisted dangling coordinate fails here, not at
// some later Compute.
func (m *Model) Deserialize(des *serialization.Deserializer) error {
	objs, err := des.ReadObjectList("nodes")
	if err != nil {
		return err
	}
	m.nodes = nil
	for ii, obj := range objs {
		node, ok := obj.(Node)
		if !ok {
			return errors.Wrapf(serialization.ErrMalformedStream,
				"model node %d reconstructed a %q (%T), which is not a model.Node", ii, obj.TypeName(), obj)
		}
		if _, err := m.Add(node); err != nil {
			return errors.WithMessagef(err, "model node %d", ii)
		}
	}
	return nil
}

func init() {
	serialization.Register(func() *Model { return New() })
	serialization.Register(func() *InputNode { return &InputNode{} })
}
