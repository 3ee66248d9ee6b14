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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedSource(name string) *MapSource {
	return NewMapSource(name, nil)
}

func TestNewSources(t *testing.T) {
	t.Parallel()

	t.Run("empty chain", func(t *testing.T) {
		t.Parallel()
		s, err := NewSources()
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()
		s, err := NewSources(namedSource("a"), namedSource("b"), namedSource("c"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, s.Names())
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		t.Parallel()
		_, err := NewSources(namedSource("a"), namedSource("a"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindDuplicateSource))
	})
}

func TestSourcesMutation(t *testing.T) {
	t.Parallel()

	newChain := func(t *testing.T) *Sources {
		t.Helper()
		s, err := NewSources(namedSource("a"), namedSource("b"), namedSource("c"))
		require.NoError(t, err)
		return s
	}

	t.Run("add first", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		require.NoError(t, s.AddFirst(namedSource("x")))
		assert.Equal(t, []string{"x", "a", "b", "c"}, s.Names())
	})

	t.Run("add last", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		require.NoError(t, s.AddLast(namedSource("x")))
		assert.Equal(t, []string{"a", "b", "c", "x"}, s.Names())
	})

	t.Run("add before", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		require.NoError(t, s.AddBefore("b", namedSource("x")))
		assert.Equal(t, []string{"a", "x", "b", "c"}, s.Names())
	})

	t.Run("add after", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		require.NoError(t, s.AddAfter("b", namedSource("x")))
		assert.Equal(t, []string{"a", "b", "x", "c"}, s.Names())
	})

	t.Run("add relative to unknown name fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		err := s.AddBefore("missing", namedSource("x"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindSourceNotFound))
	})

	t.Run("add relative to itself fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		err := s.AddAfter("x", namedSource("x"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindDuplicateSource))
	})

	t.Run("add duplicate fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		for _, add := range []func(PropertySource) error{s.AddFirst, s.AddLast} {
			err := add(namedSource("b"))
			require.Error(t, err)
			assert.True(t, IsKind(err, KindDuplicateSource))
		}
		assert.Equal(t, []string{"a", "b", "c"}, s.Names())
	})

	t.Run("add nil fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		err := s.AddLast(nil)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindInvalidArgument))
	})

	t.Run("replace preserves position", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		replacement := NewMapSource("b", map[string]any{"k": "v"})
		require.NoError(t, s.Replace("b", replacement))
		assert.Equal(t, []string{"a", "b", "c"}, s.Names())

		got, ok := s.Get("b")
		require.True(t, ok)
		v, present := got.Property("k")
		require.True(t, present)
		assert.Equal(t, "v", v)
	})

	t.Run("replace under new name preserves position", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		require.NoError(t, s.Replace("b", namedSource("renamed")))
		assert.Equal(t, []string{"a", "renamed", "c"}, s.Names())
	})

	t.Run("replace with colliding name fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		err := s.Replace("b", namedSource("c"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindDuplicateSource))
	})

	t.Run("replace unknown fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		err := s.Replace("missing", namedSource("x"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindSourceNotFound))
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		removed, err := s.Remove("b")
		require.NoError(t, err)
		assert.Equal(t, "b", removed.Name())
		assert.Equal(t, []string{"a", "c"}, s.Names())
	})

	t.Run("remove unknown fails", func(t *testing.T) {
		t.Parallel()
		s := newChain(t)
		_, err := s.Remove("missing")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindSourceNotFound))
	})
}

func TestSourcesAccessors(t *testing.T) {
	t.Parallel()

	s := MustNewSources(namedSource("a"), namedSource("b"))

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("z"))

	src, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", src.Name())

	_, ok = s.Get("z")
	assert.False(t, ok)

	// Slice returns a copy; mutating it leaves the chain intact.
	cp := s.Slice()
	cp[0] = namedSource("mutated")
	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func TestMustNewSourcesPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		MustNewSources(namedSource("a"), namedSource("a"))
	})
}
