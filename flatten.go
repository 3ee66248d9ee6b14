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
	"fmt"
	"strings"
)

// Flatten converts a nested configuration map into a flat map with
// dot-separated keys, the key shape property sources store. Nested maps
// recurse; slices and scalars are kept whole as leaf values.
//
// Example:
//
//	{"server": {"port": 8080}}  ->  {"server.port": 8080}
func Flatten(nested map[string]any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", nested)
	return flat
}

func flattenInto(flat map[string]any, prefix string, nested map[string]any) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch m := v.(type) {
		case map[string]any:
			flattenInto(flat, key, m)
		case map[any]any:
			// Some decoders produce interface-keyed maps for nested
			// mappings; stringify the keys on the way through.
			converted := make(map[string]any, len(m))
			for mk, mv := range m {
				converted[fmt.Sprintf("%v", mk)] = mv
			}
			flattenInto(flat, key, converted)
		default:
			flat[key] = v
		}
	}
}

// Unflatten converts a flat dotted-key map back into a nested map, the
// shape struct binding and schema validation consume. A scalar already
// occupying an intermediate path segment is overwritten by the nested map.
func Unflatten(flat map[string]any) map[string]any {
	nested := make(map[string]any)
	for key, v := range flat {
		segments := strings.Split(key, ".")
		current := nested
		for _, segment := range segments[:len(segments)-1] {
			next, ok := current[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[segment] = next
			}
			current = next
		}
		current[segments[len(segments)-1]] = v
	}
	return nested
}
