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

// Package codec decodes configuration file formats into maps.
//
// Built-in decoders cover YAML, JSON, TOML, and KEY=value environment
// variable lines. Decoders register themselves under a [Type] during
// package init and are retrieved with [GetDecoder]; additional formats can
// be added with [RegisterDecoder].
//
// Example:
//
//	decoder, err := codec.GetDecoder(codec.TypeYAML)
//	if err != nil {
//	    return err
//	}
//	var conf map[string]any
//	err = decoder.Decode(data, &conf)
package codec
