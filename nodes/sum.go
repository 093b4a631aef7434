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

package nodes

import (
	"github.com/emberml/ember/model"
	"github.com/emberml/ember/serialization"
	"github.com/emberml/ember/types/xslices"
)

// SumTypeName is Sum's registered type name.
const SumTypeName = "Sum"

// Sum reduces all its input elements to their sum: a single output port.
type Sum struct {
	inputs model.CoordinateList
}

// NewSum returns a Sum node over the given input coordinates.
func NewSum(inputs model.CoordinateList) *Sum {
	return &Sum{inputs: xslices.Copy(inputs)}
}

// Inputs implements model.Node.
func (n *Sum) Inputs() model.CoordinateList { return n.inputs }

// OutputSize implements model.Node.
func (n *Sum) OutputSize() int { return 1 }

// Compute implements model.Node.
func (n *Sum) Compute(inputs []float64) []float64 {
	var sum float64
	for _, v := range inputs {
		sum += v
	}
	return []float64{sum}
}

// TypeName implements serialization.Serializable.
func (n *Sum) TypeName() string { return SumTypeName }

// Serialize implements serialization.Serializable.
func (n *Sum) Serialize(ser *serialization.Serializer) error {
	n.inputs.Serialize(ser, "inputs")
	return ser.Error()
}

// Deserialize implements serialization.Serializable.
func (n *Sum) Deserialize(des *serialization.Deserializer) (err error) {
	n.inputs, err = model.ReadCoordinateList(des, "inputs")
	return err
}

func init() {
	serialization.Register(func() *Sum { return &Sum{} })
}
