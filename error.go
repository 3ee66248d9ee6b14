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
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a property resolution error. Callers can branch on the
// kind with [IsKind] or errors.Is against a kind-only *Error.
type Kind string

// revive:disable:exported
const (
	KindNotFound                Kind = "not-found"
	KindUnresolvablePlaceholder Kind = "unresolvable-placeholder"
	KindCircularReference       Kind = "circular-reference"
	KindConversion              Kind = "conversion"
	KindMissingRequired         Kind = "missing-required"
	KindDuplicateSource         Kind = "duplicate-source"
	KindSourceNotFound          Kind = "source-not-found"
	KindInvalidProfile          Kind = "invalid-profile"
	KindInvalidArgument         Kind = "invalid-argument"
)

// revive:enable:exported

// Error represents a property resolution error with detailed context.
// It carries the error kind, the offending key or source name when one
// applies, and the underlying error.
type Error struct {
	Kind Kind     // The classification of the error
	Key  string   // The property key or source name involved (optional)
	Keys []string // All offending keys for aggregated failures (optional)
	Err  error    // The underlying error (optional)
}

// Error returns a formatted error message with context information.
// If Key or Keys are set, they are included in the message.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("props: ")
	b.WriteString(string(e.Kind))
	switch {
	case len(e.Keys) > 0:
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Keys, ", "))
	case e.Key != "":
		fmt.Fprintf(&b, " %q", e.Key)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error, allowing for error chain inspection.
// This enables the use of errors.Is() and errors.As() with Error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. Key and Keys are
// ignored so that sentinel comparisons like
// errors.Is(err, &Error{Kind: KindNotFound}) succeed.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError creates a new Error with the provided kind and cause.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// NewKeyError creates a new Error carrying the offending key or source name.
func NewKeyError(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
