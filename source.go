// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package props

import (
	"context"
	"slices"
)

// PropertySource is a named, read-only key/value lookup unit. It is the
// atomic unit of configuration: a parsed file, a set of command-line
// arguments, an environment snapshot, or an in-memory map.
//
// Identity within a [Sources] chain is by name: two sources with the same
// name occupy the same chain slot.
type PropertySource interface {
	// Name returns the source name, fixed at construction and unique
	// within a chain.
	Name() string

	// Property returns the raw stored value for key. The second return
	// reports presence; a missing key is never an error. A present key
	// may map to a nil value.
	Property(key string) (any, bool)
}

// EnumerableSource is a PropertySource that can enumerate the full set of
// keys it holds, enabling presence checks that distinguish a key with a nil
// value from an absent key.
type EnumerableSource interface {
	PropertySource

	// PropertyNames returns all keys held by the source in a stable order.
	PropertyNames() []string
}

// ContainsProperty reports whether the source holds key. For enumerable
// sources the key set is consulted, so a key present with a nil value still
// counts. Other sources fall back to a lookup.
func ContainsProperty(s PropertySource, key string) bool {
	if es, ok := s.(EnumerableSource); ok {
		return slices.Contains(es.PropertyNames(), key)
	}
	_, ok := s.Property(key)
	return ok
}

// Loader materializes configuration data from an external location, such as
// a file, the process environment, or a remote key-value store. Loaders are
// registered on an [Environment] and turned into [MapSource] instances by
// [Environment.Load].
//
// Load must be safe to call concurrently.
type Loader interface {
	// Name returns the name under which the loaded data is registered in
	// the source chain.
	Name() string

	// Load loads configuration data from the external location. Nested
	// maps are allowed; the environment flattens them to dotted keys.
	Load(ctx context.Context) (map[string]any, error)
}
