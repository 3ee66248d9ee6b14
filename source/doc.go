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

// Package source provides loaders that materialize external configuration
// into maps for the property source chain.
//
// Loaders implement the Loader interface of the parent props package:
// a chain name plus a Load method producing a (possibly nested) map.
// The environment flattens loaded maps to dotted keys and registers them
// as map-backed property sources.
//
// # Available loaders
//
//   - File: files on disk or in-memory content, any registered codec
//   - OSEnv: prefix-filtered environment variables
//   - Consul: values from Consul's key-value store
//
// # Example
//
//	decoder, _ := codec.GetDecoder(codec.TypeYAML)
//	loader := source.NewFile("config.yaml", decoder)
//	conf, err := loader.Load(context.Background())
package source
