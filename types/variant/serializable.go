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

package variant

import (
	"reflect"
	"sync"
)

// The serializable-type set backing Variant.IsSerializable. This package
// cannot name the serialization package's Serializable interface (the
// dependency runs the other way), so the registry tells us which concrete
// types carry the capability, once, when each kind is registered.

var (
	serializableMu    sync.RWMutex
	serializableTypes = make(map[reflect.Type]bool)
)

// MarkSerializable records t as a serializable concrete kind. Called by the
// serialization type registry during registration; callers elsewhere should
// not need it.
func MarkSerializable(t reflect.Type) {
	if t == nil {
		return
	}
	serializableMu.Lock()
	defer serializableMu.Unlock()
	serializableTypes[t] = true
}
