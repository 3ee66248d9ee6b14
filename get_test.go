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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	t.Parallel()

	r := newResolver(t, NewMapSource("m", map[string]any{
		"port":    "8080",
		"rate":    "0.75",
		"flag":    "true",
		"wait":    "250ms",
		"numbers": []any{1, 2, 3},
		"labels":  map[string]any{"env": "dev"},
	}))

	t.Run("scalar conversions", func(t *testing.T) {
		t.Parallel()

		port, ok := As[int](r, "port")
		require.True(t, ok)
		assert.Equal(t, 8080, port)

		rate, ok := As[float64](r, "rate")
		require.True(t, ok)
		assert.Equal(t, 0.75, rate)

		flag, ok := As[bool](r, "flag")
		require.True(t, ok)
		assert.True(t, flag)

		wait, ok := As[time.Duration](r, "wait")
		require.True(t, ok)
		assert.Equal(t, 250*time.Millisecond, wait)
	})

	t.Run("slice and map conversions", func(t *testing.T) {
		t.Parallel()

		nums, ok := As[[]int](r, "numbers")
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 3}, nums)

		labels, ok := As[map[string]string](r, "labels")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"env": "dev"}, labels)
	})

	t.Run("absence reported via flag", func(t *testing.T) {
		t.Parallel()
		_, ok := As[int](r, "missing")
		assert.False(t, ok)
	})
}

func TestAsOr(t *testing.T) {
	t.Parallel()

	r := newResolver(t, NewMapSource("m", map[string]any{"port": "9090"}))

	assert.Equal(t, 9090, AsOr(r, "port", 8080))
	assert.Equal(t, 8080, AsOr(r, "missing", 8080))
	assert.Equal(t, "fallback", AsOr(r, "missing", "fallback"))
	assert.Equal(t, time.Minute, AsOr(r, "missing", time.Minute))
}

func TestAsE(t *testing.T) {
	t.Parallel()

	r := newResolver(t, NewMapSource("m", map[string]any{
		"port":   "8080",
		"broken": "not-a-number",
		"cyclic": "${cyclic}",
	}))

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		port, err := AsE[int](r, "port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := AsE[int](r, "missing")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("conversion failure", func(t *testing.T) {
		t.Parallel()
		_, err := AsE[int](r, "broken")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindConversion))

		var pe *Error
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "broken", pe.Key)
	})

	t.Run("placeholder failure propagates", func(t *testing.T) {
		t.Parallel()
		_, err := AsE[string](r, "cyclic")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindCircularReference))
	})

	t.Run("nil resolver-free conversion of matching type", func(t *testing.T) {
		t.Parallel()
		r2 := newResolver(t, NewMapSource("m", map[string]any{"n": 42}))
		n, err := AsE[int](r2, "n")
		require.NoError(t, err)
		assert.Equal(t, 42, n)
	})
}
