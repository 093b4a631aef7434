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
	"fmt"

	"github.com/pkg/errors"

	"github.com/emberml/ember/serialization"
	"github.com/emberml/ember/types/xslices"
)

// NodeID is the ordinal identity of a Node within its Model: its position
// in insertion order. IDs are dense and stable for the Model's lifetime.
type NodeID int

// Coordinate is a non-owning reference to one output port of one node:
// (node identity, port index). Coordinates only ever point backwards, to
// nodes already in the Model, which is what keeps the graph acyclic.
type Coordinate struct {
	Node NodeID
	Port int
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Node, c.Port)
}

// CoordinateList is an ordered sequence of Coordinate, used to wire
// multi-input nodes.
type CoordinateList []Coordinate

// Serialize writes the list as two parallel integer slices named
// "<name>_nodes" and "<name>_ports". ReadCoordinateList is its reverse.
func (cl CoordinateList) Serialize(ser *serialization.Serializer, name string) {
	ser.WriteValue(name+"_nodes", xslices.Map(cl, func(c Coordinate) int { return int(c.Node) }))
	ser.WriteValue(name+"_ports", xslices.Map(cl, func(c Coordinate) int { return c.Port }))
}

// ReadCoordinateList reads back a CoordinateList written by
// CoordinateList.Serialize.
func ReadCoordinateList(des *serialization.Deserializer, name string) (CoordinateList, error) {
	nodeIDs, err := serialization.Read[[]int](des, name+"_nodes")
	if err != nil {
		return nil, err
	}
	ports, err := serialization.Read[[]int](des, name+"_ports")
	if err != nil {
		return nil, err
	}
	if len(nodeIDs) != len(ports) {
		return nil, errors.Wrapf(serialization.ErrMalformedStream,
			"coordinate list %q has %d nodes but %d ports", name, len(nodeIDs), len(ports))
	}
	cl := make(CoordinateList, len(nodeIDs))
	for ii := range cl {
		cl[ii] = Coordinate{Node: NodeID(nodeIDs[ii]), Port: ports[ii]}
	}
	return cl, nil
}

// Node is one unit of computation in a Model: it consumes the values at
// zero or more Coordinates of earlier nodes and produces the values of its
// own output ports. Every Node is Serializable, which is what lets a whole
// Model be persisted as one uniformly-typed stream.
type Node interface {
	serialization.Serializable

	// Inputs returns the coordinates this node consumes, in the order
	// Compute expects their values.
	Inputs() CoordinateList

	// OutputSize returns the number of output ports.
	OutputSize() int

	// Compute produces the node's port values given the values at its input
	// coordinates (len(inputs) == len(Inputs())). The returned slice has
	// OutputSize elements.
	Compute(inputs []float64) []float64
}

// InputNodeTypeName is InputNode's registered type name.
const InputNodeTypeName = "InputNode"

// InputNode is the source of a Model's externally fed values. It has no
// inputs and one output port per element of the model input vector.
type InputNode struct {
	size int
}

// NewInput returns an InputNode with the given number of elements.
func NewInput(size int) *InputNode {
	return &InputNode{size: size}
}

// Inputs implements Node: an InputNode consumes nothing.
func (n *InputNode) Inputs() CoordinateList { return nil }

// OutputSize implements Node.
func (n *InputNode) OutputSize() int { return n.size }

// Compute implements Node. Model.Compute feeds input nodes the model input
// vector directly, so this is the identity.
func (n *InputNode) Compute(inputs []float64) []float64 { return inputs }

// TypeName implements serialization.Serializable.
func (n *InputNode) TypeName() string { return InputNodeTypeName }

// Serialize implements serialization.Serializable.
func (n *InputNode) Serialize(ser *serialization.Serializer) error {
	ser.WriteValue("size", n.size)
	return ser.Error()
}

// Deserialize implements serialization.Serializable.
func (n *InputNode) Deserialize(des *serialization.Deserializer) (err error) {
	n.size, err = serialization.Read[int](des, "size")
	return err
}
