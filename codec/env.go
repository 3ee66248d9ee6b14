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

package codec

import (
	"bytes"
	"fmt"
	"strings"
)

// TypeEnvVar is a constant representing the environment variable codec.
const TypeEnvVar Type = "env_var"

func init() {
	RegisterDecoder(TypeEnvVar, EnvVarCodec{})
}

// EnvVarCodec decodes KEY=value lines, one per line, into a nested
// configuration map. Keys are lowercased and underscores create nesting:
// SERVER_PORT=8080 becomes {"server": {"port": "8080"}}.
type EnvVarCodec struct{}

// Decode decodes the provided lines into the map pointed to by v, which
// must be a *map[string]any. Lines without an equals sign and empty keys
// are skipped.
func (EnvVarCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("EnvVarCodec.Decode: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for _, line := range bytes.Split(data, []byte("\n")) {
		key, value, found := strings.Cut(string(line), "=")
		if !found {
			continue
		}

		segments := splitEnvKey(key)
		if len(segments) == 0 {
			continue
		}

		current := conf
		for _, segment := range segments[:len(segments)-1] {
			next, isMap := current[segment].(map[string]any)
			if !isMap {
				// A scalar in the way is shadowed by the nested map.
				next = make(map[string]any)
				current[segment] = next
			}
			current = next
		}
		current[segments[len(segments)-1]] = strings.TrimSpace(value)
	}

	*ptr = conf
	return nil
}

// splitEnvKey lowercases an environment variable name and splits it on
// underscores, dropping empty segments from doubled or leading
// underscores.
func splitEnvKey(key string) []string {
	key = strings.TrimSpace(strings.ToLower(key))
	segments := make([]string, 0, 4)
	for _, segment := range strings.Split(key, "_") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
