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

package serialization

import (
	"reflect"
	"sort"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/emberml/ember/types/variant"
)

// The process-wide type registry: type name to constructor of a
// default-constructed instance of that kind. Read-mostly: populate it from
// init functions (or otherwise before any deserialization of the kind) and
// never after.

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Serializable)
)

// Register records the constructor for a concrete Serializable kind, keyed
// by the type name the constructor's instances report. Usually called from
// the kind's package init function.
//
// Registering the same type name twice panics: two kinds claiming one name
// is a programming error that would silently corrupt reconstruction, and it
// is detected here rather than at some later Load.
func Register[T Serializable](constructor func() T) {
	instance := constructor()
	name := instance.TypeName()
	if name == "" {
		exceptions.Panicf("serialization.Register: %T reports an empty type name", instance)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, found := registry[name]; found {
		exceptions.Panicf("serialization.Register: type name %q registered twice", name)
	}
	registry[name] = func() Serializable { return constructor() }

	// Registration is also the point where the variant package learns that
	// this concrete type carries the Serializable capability.
	variant.MarkSerializable(reflect.TypeOf(instance))
}

// New constructs a default instance of the kind registered under the given
// type name, ready to be populated by Deserialize. An unknown name returns
// ErrUnregisteredType.
func New(typeName string) (Serializable, error) {
	registryMu.RLock()
	constructor, found := registry[typeName]
	registryMu.RUnlock()
	if !found {
		return nil, errors.Wrapf(ErrUnregisteredType, "type name %q", typeName)
	}
	return constructor(), nil
}

// IsRegistered reports whether a constructor is registered for the type name.
func IsRegistered(typeName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, found := registry[typeName]
	return found
}

// RegisteredTypeNames returns the sorted names of all registered kinds.
// Diagnostic helper, e.g. for error messages in drivers.
func RegisteredTypeNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
