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

import "fmt"

var decoders = make(map[Type]Decoder)

// RegisterDecoder registers a decoder for the given type. Built-in decoders
// register themselves during package init; callers may register additional
// formats before building an environment.
func RegisterDecoder(name Type, decoder Decoder) {
	decoders[name] = decoder
}

// GetDecoder retrieves the registered decoder for the given type. If no
// decoder is registered for the given type, an error is returned.
func GetDecoder(name Type) (Decoder, error) {
	decoder, exists := decoders[name]
	if !exists {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return decoder, nil
}
