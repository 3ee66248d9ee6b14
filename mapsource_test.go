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

func TestMapSource(t *testing.T) {
	t.Parallel()

	t.Run("exact key lookup", func(t *testing.T) {
		t.Parallel()
		s := NewMapSource("test", map[string]any{
			"app.name":    "demo",
			"app.version": "1.0",
		})

		v, ok := s.Property("app.name")
		require.True(t, ok)
		assert.Equal(t, "demo", v)

		// No prefix matching.
		_, ok = s.Property("app")
		assert.False(t, ok)

		_, ok = s.Property("missing")
		assert.False(t, ok)
	})

	t.Run("initial keys enumerate sorted", func(t *testing.T) {
		t.Parallel()
		s := NewMapSource("test", map[string]any{"b": 2, "a": 1, "c": 3})
		assert.Equal(t, []string{"a", "b", "c"}, s.PropertyNames())
	})

	t.Run("set appends in call order", func(t *testing.T) {
		t.Parallel()
		s := NewMapSource("test", nil)
		s.Set("z", 1)
		s.Set("a", 2)
		s.Set("z", 3) // update keeps position
		assert.Equal(t, []string{"z", "a"}, s.PropertyNames())

		v, ok := s.Property("z")
		require.True(t, ok)
		assert.Equal(t, 3, v)
	})

	t.Run("nil value is present", func(t *testing.T) {
		t.Parallel()
		s := NewMapSource("test", map[string]any{"empty": nil})

		v, ok := s.Property("empty")
		require.True(t, ok)
		assert.Nil(t, v)

		// Containment consults the key set, so nil still counts.
		assert.True(t, ContainsProperty(s, "empty"))
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		s := NewMapSource("test", map[string]any{"a": 1, "b": 2})
		s.Delete("a")
		s.Delete("missing")
		assert.Equal(t, []string{"b"}, s.PropertyNames())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("source map is copied", func(t *testing.T) {
		t.Parallel()
		backing := map[string]any{"a": 1}
		s := NewMapSource("test", backing)
		backing["a"] = 99
		v, _ := s.Property("a")
		assert.Equal(t, 1, v)
	})
}

func TestContainsPropertyFallback(t *testing.T) {
	t.Parallel()

	// A non-enumerable source falls back to lookup.
	s := &lookupOnlySource{name: "plain", values: map[string]any{"k": "v"}}
	assert.True(t, ContainsProperty(s, "k"))
	assert.False(t, ContainsProperty(s, "missing"))
}

// lookupOnlySource implements PropertySource without enumeration.
type lookupOnlySource struct {
	name   string
	values map[string]any
}

func (s *lookupOnlySource) Name() string { return s.name }

func (s *lookupOnlySource) Property(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}
