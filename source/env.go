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

package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/props/codec"
)

// OSEnv loads configuration from the process environment. Variables are
// filtered by prefix, the prefix is stripped, names are lowercased, and
// underscores create nesting: with prefix "APP_", APP_SERVER_PORT becomes
// server.port once flattened.
type OSEnv struct {
	prefix  string
	decoder codec.Decoder
}

// NewOSEnv creates an OSEnv loader for variables carrying the given
// prefix. The loader registers its data under the chain name
// "env:<prefix>".
func NewOSEnv(prefix string) *OSEnv {
	return &OSEnv{
		prefix:  prefix,
		decoder: codec.EnvVarCodec{},
	}
}

// Name returns the chain name the loaded data registers under.
func (e *OSEnv) Name() string {
	return "env:" + e.prefix
}

// Load snapshots the matching environment variables and decodes them into
// a nested map.
//
// Errors:
//   - Returns error if decoding fails
func (e *OSEnv) Load(_ context.Context) (map[string]any, error) {
	matching := make([]string, 0, len(os.Environ()))
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, e.prefix) {
			matching = append(matching, strings.TrimPrefix(env, e.prefix))
		}
	}

	var conf map[string]any
	if err := e.decoder.Decode([]byte(strings.Join(matching, "\n")), &conf); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}

	return conf, nil
}
