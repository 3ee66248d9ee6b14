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

	"rivaas.dev/props/codec"
)

// File loads configuration from a file on disk or from an in-memory byte
// slice. The decoder determines how the content is parsed.
type File struct {
	name    string
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a File loader reading from the given path. The loader
// registers its data under the chain name "file:<path>".
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		name:    "file:" + path,
		path:    path,
		decoder: decoder,
	}
}

// NewContent creates a File loader over the provided byte slice, useful
// for embedded or generated configuration. The name parameter becomes the
// chain name of the resulting source.
func NewContent(name string, data []byte, decoder codec.Decoder) *File {
	return &File{
		name:    name,
		data:    data,
		decoder: decoder,
	}
}

// Name returns the chain name the loaded data registers under.
func (f *File) Name() string {
	return f.name
}

// Load reads and decodes the configuration into a map. Loaders created
// with NewFile read from disk on every call; content loaders decode their
// byte slice.
//
// Errors:
//   - Returns error if the file cannot be read (NewFile only)
//   - Returns error if decoding fails
func (f *File) Load(context.Context) (map[string]any, error) {
	data := f.data
	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	var conf map[string]any
	if err := f.decoder.Decode(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}

	return conf, nil
}
