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
	"strings"
)

// Placeholder syntax defaults. The literal ${key:default} grammar is part
// of the observable contract and must stay bit-exact.
const (
	DefaultPlaceholderPrefix = "${"
	DefaultPlaceholderSuffix = "}"
	DefaultValueSeparator    = ":"
)

// simpleSuffixes maps a closing rune to the opening rune used for nesting
// detection when the configured prefix ends with the matching opener.
var simpleSuffixes = map[string]string{
	"}": "{",
	"]": "[",
	")": "(",
}

// placeholderHelper expands placeholder expressions embedded in strings.
// Expansion is recursive: a placeholder may appear inside another
// placeholder's key or default, and resolved values are themselves
// expanded. A per-call in-flight key set closes the cycle case.
type placeholderHelper struct {
	prefix             string
	suffix             string
	separator          string // empty when default literals are disabled
	simplePrefix       string
	ignoreUnresolvable bool
}

// resolveFunc looks up the raw string value for a placeholder key. The
// second return reports presence.
type resolveFunc func(key string) (string, bool)

func newPlaceholderHelper(prefix, suffix, separator string, ignoreUnresolvable bool) *placeholderHelper {
	h := &placeholderHelper{
		prefix:             prefix,
		suffix:             suffix,
		separator:          separator,
		simplePrefix:       prefix,
		ignoreUnresolvable: ignoreUnresolvable,
	}
	if open, ok := simpleSuffixes[suffix]; ok && strings.HasSuffix(prefix, open) {
		h.simplePrefix = open
	}
	return h
}

// replace expands every placeholder in value, resolving keys via resolve.
// Unresolvable placeholders without a default either fail with
// [KindUnresolvablePlaceholder] or, when configured to be ignored, stay in
// the result verbatim including prefix and suffix.
func (h *placeholderHelper) replace(value string, resolve resolveFunc) (string, error) {
	if !strings.Contains(value, h.prefix) {
		return value, nil
	}
	return h.parse(value, resolve, make(map[string]struct{}))
}

func (h *placeholderHelper) parse(value string, resolve resolveFunc, inFlight map[string]struct{}) (string, error) {
	start := strings.Index(value, h.prefix)
	if start < 0 {
		return value, nil
	}

	buf := []byte(value)
	for start >= 0 {
		end := h.findEndIndex(buf, start)
		if end < 0 {
			// Unbalanced prefix; leave the remainder untouched.
			break
		}

		placeholder := string(buf[start+len(h.prefix) : end])
		original := placeholder
		if _, active := inFlight[original]; active {
			return "", NewKeyError(KindCircularReference, original,
				errors.New("circular placeholder reference in property definitions"))
		}
		inFlight[original] = struct{}{}

		// The key may itself contain placeholders; resolve innermost first.
		placeholder, err := h.parse(placeholder, resolve, inFlight)
		if err != nil {
			return "", err
		}

		propVal, found := resolve(placeholder)
		if !found && h.separator != "" {
			if sep := strings.Index(placeholder, h.separator); sep >= 0 {
				actualKey := placeholder[:sep]
				defaultVal := placeholder[sep+len(h.separator):]
				propVal, found = resolve(actualKey)
				if !found {
					propVal, found = defaultVal, true
				}
			}
		}

		switch {
		case found:
			// The resolved value may in turn contain placeholders.
			propVal, err = h.parse(propVal, resolve, inFlight)
			if err != nil {
				return "", err
			}
			next := make([]byte, 0, len(buf)-(end-start)+len(propVal))
			next = append(next, buf[:start]...)
			next = append(next, propVal...)
			next = append(next, buf[end+len(h.suffix):]...)
			buf = next
			start = indexFrom(buf, h.prefix, start+len(propVal))
		case h.ignoreUnresolvable:
			// Keep the unresolved span verbatim and continue after it.
			start = indexFrom(buf, h.prefix, end+len(h.suffix))
		default:
			return "", NewKeyError(KindUnresolvablePlaceholder, placeholder,
				errors.New("could not resolve placeholder"))
		}

		delete(inFlight, original)
	}

	return string(buf), nil
}

// findEndIndex locates the suffix matching the prefix at start, skipping
// suffixes that close nested placeholders opened after it.
func (h *placeholderHelper) findEndIndex(buf []byte, start int) int {
	i := start + len(h.prefix)
	nested := 0
	for i < len(buf) {
		switch {
		case matchAt(buf, i, h.suffix):
			if nested == 0 {
				return i
			}
			nested--
			i += len(h.suffix)
		case matchAt(buf, i, h.simplePrefix):
			nested++
			i += len(h.simplePrefix)
		default:
			i++
		}
	}
	return -1
}

func matchAt(buf []byte, i int, sub string) bool {
	if i+len(sub) > len(buf) {
		return false
	}
	return string(buf[i:i+len(sub)]) == sub
}

func indexFrom(buf []byte, sub string, from int) int {
	if from > len(buf) {
		return -1
	}
	i := strings.Index(string(buf[from:]), sub)
	if i < 0 {
		return -1
	}
	return from + i
}
