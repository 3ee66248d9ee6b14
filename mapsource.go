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
	"slices"
	"sort"
)

// MapSource is an in-memory, map-backed [EnumerableSource]. Lookup is by
// exact key; there is no prefix matching. MapSource is the materialized
// form of every loader-produced source (files, environment, Consul).
//
// MapSource is not internally synchronized. The intended lifecycle is
// populate-at-bootstrap, read-only thereafter; callers mutating a source
// concurrently with reads must synchronize externally.
type MapSource struct {
	name   string
	values map[string]any
	order  []string
}

// NewMapSource creates a MapSource with the given name and initial values.
// The values map is copied. Since Go maps carry no insertion order, initial
// keys are enumerated in sorted order; keys added later via [MapSource.Set]
// follow in call order.
func NewMapSource(name string, values map[string]any) *MapSource {
	s := &MapSource{
		name:   name,
		values: make(map[string]any, len(values)),
		order:  make([]string, 0, len(values)),
	}
	for k, v := range values {
		s.values[k] = v
		s.order = append(s.order, k)
	}
	sort.Strings(s.order)
	return s
}

// Name returns the source name.
func (s *MapSource) Name() string {
	return s.name
}

// Property returns the value stored under key. A key explicitly set to nil
// is reported as present.
func (s *MapSource) Property(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// PropertyNames returns all keys held by the source. The returned slice is
// a copy.
func (s *MapSource) PropertyNames() []string {
	return slices.Clone(s.order)
}

// Set stores value under key, appending new keys to the enumeration order.
func (s *MapSource) Set(key string, value any) {
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Delete removes key from the source.
func (s *MapSource) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.order = slices.DeleteFunc(s.order, func(k string) bool { return k == key })
}

// Len returns the number of keys held by the source.
func (s *MapSource) Len() int {
	return len(s.values)
}
