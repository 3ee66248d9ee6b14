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

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		options    map[string][]string
		nonOptions []string
	}{
		{
			name:    "empty vector",
			args:    nil,
			options: map[string][]string{},
		},
		{
			name:    "single option",
			args:    []string{"--app.name=demo"},
			options: map[string][]string{"app.name": {"demo"}},
		},
		{
			name:    "repeated option accumulates in order",
			args:    []string{"--tag=a", "--tag=b", "--tag=c"},
			options: map[string][]string{"tag": {"a", "b", "c"}},
		},
		{
			name:    "flag without value",
			args:    []string{"--verbose"},
			options: map[string][]string{"verbose": {}},
		},
		{
			name:    "empty value kept",
			args:    []string{"--name="},
			options: map[string][]string{"name": {""}},
		},
		{
			name:    "value containing equals",
			args:    []string{"--query=a=b"},
			options: map[string][]string{"query": {"a=b"}},
		},
		{
			name:       "non-option args collected in order",
			args:       []string{"one", "--opt=v", "two"},
			options:    map[string][]string{"opt": {"v"}},
			nonOptions: []string{"one", "two"},
		},
		{
			name:       "single dash is a non-option",
			args:       []string{"-x"},
			options:    map[string][]string{},
			nonOptions: []string{"-x"},
		},
		{
			name:    "bare double dash fails",
			args:    []string{"--"},
			wantErr: true,
		},
		{
			name:    "empty option name fails",
			args:    []string{"--=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := ParseArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindInvalidArgument))
				return
			}
			require.NoError(t, err)

			for name, want := range tt.options {
				got, ok := parsed.OptionValues(name)
				require.True(t, ok, "option %q should be present", name)
				assert.Equal(t, want, got)
			}
			assert.Len(t, parsed.OptionNames(), len(tt.options))
			assert.Equal(t, tt.nonOptions, parsed.NonOptionArgs())
		})
	}
}

func TestCommandLineArgs(t *testing.T) {
	t.Parallel()

	t.Run("flag set vs flag not set", func(t *testing.T) {
		t.Parallel()
		args, err := ParseArgs([]string{"--verbose"})
		require.NoError(t, err)

		values, ok := args.OptionValues("verbose")
		require.True(t, ok)
		assert.Empty(t, values)

		_, ok = args.OptionValues("quiet")
		assert.False(t, ok)
		assert.True(t, args.ContainsOption("verbose"))
		assert.False(t, args.ContainsOption("quiet"))
	})

	t.Run("option names keep first-seen order", func(t *testing.T) {
		t.Parallel()
		args, err := ParseArgs([]string{"--b=1", "--a=2", "--b=3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, args.OptionNames())
	})

	t.Run("manual population", func(t *testing.T) {
		t.Parallel()
		args := NewCommandLineArgs()
		args.AddOptionArg("opt", "v1")
		args.AddOptionArg("opt", "v2")
		args.AddOptionArg("flag")
		args.AddNonOptionArg("pos")

		values, ok := args.OptionValues("opt")
		require.True(t, ok)
		assert.Equal(t, []string{"v1", "v2"}, values)
		assert.Equal(t, []string{"pos"}, args.NonOptionArgs())
	})
}

func TestCommandLineSource(t *testing.T) {
	t.Parallel()

	newSource := func(t *testing.T, argv ...string) *CommandLineSource {
		t.Helper()
		args, err := ParseArgs(argv)
		require.NoError(t, err)
		return NewCommandLineSource(args)
	}

	t.Run("default name", func(t *testing.T) {
		t.Parallel()
		s := newSource(t)
		assert.Equal(t, DefaultCommandLineSourceName, s.Name())
	})

	t.Run("option values join with commas", func(t *testing.T) {
		t.Parallel()
		s := newSource(t, "--tag=a", "--tag=b")
		v, ok := s.Property("tag")
		require.True(t, ok)
		assert.Equal(t, "a,b", v)
	})

	t.Run("flag yields empty string not absence", func(t *testing.T) {
		t.Parallel()
		s := newSource(t, "--verbose")
		v, ok := s.Property("verbose")
		require.True(t, ok)
		assert.Equal(t, "", v)

		_, ok = s.Property("quiet")
		assert.False(t, ok)
	})

	t.Run("non-option args under reserved key", func(t *testing.T) {
		t.Parallel()
		s := newSource(t, "one", "two", "--opt=v")
		v, ok := s.Property(DefaultNonOptionArgsKey)
		require.True(t, ok)
		assert.Equal(t, "one,two", v)
		assert.Equal(t, []string{"opt", DefaultNonOptionArgsKey}, s.PropertyNames())
	})

	t.Run("reserved key absent without non-option args", func(t *testing.T) {
		t.Parallel()
		s := newSource(t, "--opt=v")
		_, ok := s.Property(DefaultNonOptionArgsKey)
		assert.False(t, ok)
		assert.Equal(t, []string{"opt"}, s.PropertyNames())
	})

	t.Run("reserved key can be renamed", func(t *testing.T) {
		t.Parallel()
		s := newSource(t, "positional")
		s.SetNonOptionArgsKey("args.rest")

		v, ok := s.Property("args.rest")
		require.True(t, ok)
		assert.Equal(t, "positional", v)

		_, ok = s.Property(DefaultNonOptionArgsKey)
		assert.False(t, ok)
	})

	t.Run("named source", func(t *testing.T) {
		t.Parallel()
		args, err := ParseArgs(nil)
		require.NoError(t, err)
		s := NewNamedCommandLineSource("extraArgs", args)
		assert.Equal(t, "extraArgs", s.Name())
	})
}
