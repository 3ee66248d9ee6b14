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
	"errors"
	"fmt"
	"slices"
)

// Sources is a precedence-ordered chain of property sources. Index 0 has
// the highest precedence: the first source containing a key wins and later
// sources are never consulted for it. Source names are unique within the
// chain; every mutation preserves that invariant and fails with
// [KindDuplicateSource] or [KindSourceNotFound] on violation.
//
// Sources is not internally synchronized. The intended lifecycle is
// mutate-at-bootstrap, read-only thereafter; concurrent writers must
// synchronize externally.
type Sources struct {
	list []PropertySource
}

// NewSources creates a chain from the given sources, highest precedence
// first. It fails with [KindDuplicateSource] if two sources share a name.
func NewSources(sources ...PropertySource) (*Sources, error) {
	s := &Sources{}
	for _, src := range sources {
		if err := s.AddLast(src); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNewSources creates a chain or panics on duplicate names. Use in
// bootstrap code where the source set is static.
func MustNewSources(sources ...PropertySource) *Sources {
	s, err := NewSources(sources...)
	if err != nil {
		panic(fmt.Sprintf("props: failed to create source chain: %v", err))
	}
	return s
}

// Len returns the number of sources in the chain.
func (s *Sources) Len() int {
	return len(s.list)
}

// Names returns the source names in precedence order.
func (s *Sources) Names() []string {
	names := make([]string, len(s.list))
	for i, src := range s.list {
		names[i] = src.Name()
	}
	return names
}

// Get returns the source registered under name.
func (s *Sources) Get(name string) (PropertySource, bool) {
	if i := s.indexOf(name); i >= 0 {
		return s.list[i], true
	}
	return nil, false
}

// Contains reports whether a source with the given name is registered.
func (s *Sources) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

// Slice returns the sources in precedence order. The returned slice is a
// copy; the sources themselves are shared.
func (s *Sources) Slice() []PropertySource {
	return slices.Clone(s.list)
}

// AddFirst adds a source with the highest precedence.
func (s *Sources) AddFirst(src PropertySource) error {
	if err := s.checkAddable(src); err != nil {
		return err
	}
	s.list = slices.Insert(s.list, 0, src)
	return nil
}

// AddLast adds a source with the lowest precedence.
func (s *Sources) AddLast(src PropertySource) error {
	if err := s.checkAddable(src); err != nil {
		return err
	}
	s.list = append(s.list, src)
	return nil
}

// AddBefore adds a source immediately above the named source in
// precedence. It fails with [KindSourceNotFound] if relativeTo is not
// registered.
func (s *Sources) AddBefore(relativeTo string, src PropertySource) error {
	return s.addRelative(relativeTo, src, 0)
}

// AddAfter adds a source immediately below the named source in precedence.
// It fails with [KindSourceNotFound] if relativeTo is not registered.
func (s *Sources) AddAfter(relativeTo string, src PropertySource) error {
	return s.addRelative(relativeTo, src, 1)
}

// Replace substitutes the source registered under name, preserving its
// chain position. The replacement may carry a different name, as long as
// that name does not collide with another slot.
func (s *Sources) Replace(name string, src PropertySource) error {
	if src == nil {
		return NewError(KindInvalidArgument, errors.New("source cannot be nil"))
	}
	i := s.indexOf(name)
	if i < 0 {
		return NewKeyError(KindSourceNotFound, name,
			errors.New("no source registered under this name"))
	}
	if src.Name() != name && s.Contains(src.Name()) {
		return NewKeyError(KindDuplicateSource, src.Name(),
			errors.New("a source with this name is already registered"))
	}
	s.list[i] = src
	return nil
}

// Remove deletes the source registered under name and returns it. It fails
// with [KindSourceNotFound] if no such source exists.
func (s *Sources) Remove(name string) (PropertySource, error) {
	i := s.indexOf(name)
	if i < 0 {
		return nil, NewKeyError(KindSourceNotFound, name,
			errors.New("no source registered under this name"))
	}
	src := s.list[i]
	s.list = slices.Delete(s.list, i, i+1)
	return src, nil
}

func (s *Sources) addRelative(relativeTo string, src PropertySource, offset int) error {
	if err := s.checkAddable(src); err != nil {
		return err
	}
	if src.Name() == relativeTo {
		return NewKeyError(KindDuplicateSource, relativeTo,
			errors.New("source cannot be added relative to itself"))
	}
	i := s.indexOf(relativeTo)
	if i < 0 {
		return NewKeyError(KindSourceNotFound, relativeTo,
			errors.New("no source registered under this name"))
	}
	s.list = slices.Insert(s.list, i+offset, src)
	return nil
}

func (s *Sources) checkAddable(src PropertySource) error {
	if src == nil {
		return NewError(KindInvalidArgument, errors.New("source cannot be nil"))
	}
	if s.Contains(src.Name()) {
		return NewKeyError(KindDuplicateSource, src.Name(),
			errors.New("a source with this name is already registered"))
	}
	return nil
}

func (s *Sources) indexOf(name string) int {
	return slices.IndexFunc(s.list, func(src PropertySource) bool {
		return src.Name() == name
	})
}
