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

// Package nodes implements the generic computation node kinds predictors
// lower themselves into: elementwise arithmetic against fixed values
// (Coordinatewise) and reduction (Sum). The graph engine only ever needs to
// understand these kinds; predictor-specific structure exists only as the
// wiring between them.
//
// Every kind is registered with the serialization type registry at init, so
// importing this package (usually blank, from drivers) is what makes models
// containing these nodes loadable.
package nodes

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/emberml/ember/model"
	"github.com/emberml/ember/serialization"
	"github.com/emberml/ember/types/xslices"
)

// Operation enumerates the elementwise operations a Coordinatewise node can
// apply.
type Operation int

const (
	// Multiply each input element by the node's corresponding fixed value.
	Multiply Operation = iota
	// Add the node's corresponding fixed value to each input element.
	Add
)

// String implements fmt.Stringer; it is also the stable spelling used in
// serialized streams.
func (op Operation) String() string {
	switch op {
	case Multiply:
		return "multiply"
	case Add:
		return "add"
	}
	return "invalid"
}

// ParseOperation is the reverse of Operation.String.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "multiply":
		return Multiply, nil
	case "add":
		return Add, nil
	}
	return Operation(-1), errors.Errorf("unknown coordinatewise operation %q", s)
}

// CoordinatewiseTypeName is Coordinatewise's registered type name.
const CoordinatewiseTypeName = "Coordinatewise"

// Coordinatewise applies a fixed value to each input element with the
// configured operation: output[i] = values[i] op input[i]. It has one
// output port per element.
type Coordinatewise struct {
	op     Operation
	values []float64
	inputs model.CoordinateList
}

// NewCoordinatewise returns a Coordinatewise node combining the given input
// coordinates with the given fixed values. It panics (with a stack trace)
// if the two differ in length: that mismatch is always a wiring bug.
func NewCoordinatewise(op Operation, values []float64, inputs model.CoordinateList) *Coordinatewise {
	if len(values) != len(inputs) {
		exceptions.Panicf("nodes.NewCoordinatewise(%s): %d values for %d input coordinates", op, len(values), len(inputs))
	}
	return &Coordinatewise{op: op, values: xslices.Copy(values), inputs: xslices.Copy(inputs)}
}

// NewScaling is shorthand for an elementwise multiply.
func NewScaling(values []float64, inputs model.CoordinateList) *Coordinatewise {
	return NewCoordinatewise(Multiply, values, inputs)
}

// NewBias is shorthand for adding a single fixed value to a single input.
func NewBias(value float64, input model.Coordinate) *Coordinatewise {
	return NewCoordinatewise(Add, []float64{value}, model.CoordinateList{input})
}

// Operation returns the node's elementwise operation.
func (n *Coordinatewise) Operation() Operation { return n.op }

// Values returns the node's fixed values.
func (n *Coordinatewise) Values() []float64 { return xslices.Copy(n.values) }

// Inputs implements model.Node.
func (n *Coordinatewise) Inputs() model.CoordinateList { return n.inputs }

// OutputSize implements model.Node.
func (n *Coordinatewise) OutputSize() int { return len(n.values) }

// Compute implements model.Node.
func (n *Coordinatewise) Compute(inputs []float64) []float64 {
	out := make([]float64, len(n.values))
	for ii, v := range n.values {
		switch n.op {
		case Multiply:
			out[ii] = v * inputs[ii]
		case Add:
			out[ii] = v + inputs[ii]
		}
	}
	return out
}

// TypeName implements serialization.Serializable.
func (n *Coordinatewise) TypeName() string { return CoordinatewiseTypeName }

// Serialize implements serialization.Serializable.
func (n *Coordinatewise) Serialize(ser *serialization.Serializer) error {
	ser.WriteValue("operation", n.op.String())
	ser.WriteValue("values", n.values)
	n.inputs.Serialize(ser, "inputs")
	return ser.Error()
}

// Deserialize implements serialization.Serializable.
func (n *Coordinatewise) Deserialize(des *serialization.Deserializer) error {
	opName, err := serialization.Read[string](des, "operation")
	if err != nil {
		return err
	}
	if n.op, err = ParseOperation(opName); err != nil {
		return errors.Wrapf(serialization.ErrMalformedStream, "%v", err)
	}
	if n.values, err = serialization.Read[[]float64](des, "values"); err != nil {
		return err
	}
	if n.inputs, err = model.ReadCoordinateList(des, "inputs"); err != nil {
		return err
	}
	if len(n.values) != len(n.inputs) {
		return errors.Wrapf(serialization.ErrMalformedStream,
			"coordinatewise node has %d values for %d input coordinates", len(n.values), len(n.inputs))
	}
	return nil
}

func init() {
	serialization.Register(func() *Coordinatewise { return &Coordinatewise{} })
}
