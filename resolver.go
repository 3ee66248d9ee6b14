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
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// ConvertFunc converts a resolved value to the target type. It is consulted
// as a fallback when the built-in cast-based coercion does not cover the
// target.
type ConvertFunc func(value any, target reflect.Type) (any, error)

// Resolver resolves property keys against a [Sources] chain: the first
// source containing a key supplies its value, placeholder expressions in
// string values are expanded recursively, and values are coerced to the
// requested type on demand.
//
// Lookup-only methods never fail on absence; absence is reported as a
// boolean or covered by a default. Placeholder and coercion failures
// surface as errors and are never silently swallowed unless unresolvable
// placeholders are explicitly ignored via [Resolver.SetIgnoreUnresolvable].
//
// Resolver is not internally synchronized; configure it during bootstrap
// and treat it as read-only afterwards. Each top-level resolution carries
// its own cycle-detection state, so independent concurrent reads do not
// interfere.
type Resolver struct {
	sources            *Sources
	prefix             string
	suffix             string
	separator          string
	separatorDisabled  bool
	ignoreUnresolvable bool
	required           []string
	convert            ConvertFunc
	helper             *placeholderHelper
}

// NewResolver creates a Resolver over the given chain with the default
// ${key:default} placeholder syntax.
func NewResolver(sources *Sources) *Resolver {
	r := &Resolver{
		sources:   sources,
		prefix:    DefaultPlaceholderPrefix,
		suffix:    DefaultPlaceholderSuffix,
		separator: DefaultValueSeparator,
	}
	r.rebuildHelper()
	return r
}

// Sources returns the underlying chain.
func (r *Resolver) Sources() *Sources {
	return r.sources
}

// SetPlaceholder configures the placeholder prefix and suffix. Both must be
// non-empty.
func (r *Resolver) SetPlaceholder(prefix, suffix string) error {
	if prefix == "" || suffix == "" {
		return NewError(KindInvalidArgument,
			errors.New("placeholder prefix and suffix cannot be empty"))
	}
	r.prefix, r.suffix = prefix, suffix
	r.rebuildHelper()
	return nil
}

// SetValueSeparator configures the separator between a placeholder key and
// its inline default literal.
func (r *Resolver) SetValueSeparator(sep string) error {
	if sep == "" {
		return NewError(KindInvalidArgument,
			errors.New("value separator cannot be empty; use DisableValueSeparator"))
	}
	r.separator = sep
	r.separatorDisabled = false
	r.rebuildHelper()
	return nil
}

// DisableValueSeparator turns off inline default literals entirely; the
// separator character loses its meaning inside placeholders.
func (r *Resolver) DisableValueSeparator() {
	r.separatorDisabled = true
	r.rebuildHelper()
}

// SetIgnoreUnresolvable controls whether an unresolvable placeholder with
// no default is left verbatim in the result instead of failing.
func (r *Resolver) SetIgnoreUnresolvable(ignore bool) {
	r.ignoreUnresolvable = ignore
	r.rebuildHelper()
}

// SetConverter installs a fallback conversion function consulted when the
// built-in coercion does not cover a target type.
func (r *Resolver) SetConverter(fn ConvertFunc) {
	r.convert = fn
}

// SetRequired declares the keys that [Resolver.ValidateRequired] checks.
func (r *Resolver) SetRequired(keys ...string) {
	r.required = append([]string(nil), keys...)
}

func (r *Resolver) rebuildHelper() {
	sep := r.separator
	if r.separatorDisabled {
		sep = ""
	}
	r.helper = newPlaceholderHelper(r.prefix, r.suffix, sep, r.ignoreUnresolvable)
}

// lookupRaw walks the chain in precedence order and returns the first
// value found for key. Later sources are never consulted once a source
// contains the key.
func (r *Resolver) lookupRaw(key string) (any, bool) {
	for _, src := range r.sources.list {
		if v, ok := src.Property(key); ok {
			return v, true
		}
	}
	return nil, false
}

// resolveRaw is the lookup seam handed to the placeholder engine: raw
// chain lookup, stringified, with no recursive expansion (the engine
// recurses itself).
func (r *Resolver) resolveRaw(key string) (string, bool) {
	v, ok := r.lookupRaw(key)
	if !ok || v == nil {
		return "", false
	}
	return cast.ToString(v), true
}

// Property returns the fully resolved value for key. String values have
// their placeholder expressions expanded before being returned; other
// values pass through untouched. Absence is reported via the boolean, not
// an error; the error return covers placeholder failures only.
func (r *Resolver) Property(key string) (any, bool, error) {
	v, ok := r.lookupRaw(key)
	if !ok {
		return nil, false, nil
	}
	if s, isString := v.(string); isString {
		expanded, err := r.helper.replace(s, r.resolveRaw)
		if err != nil {
			return nil, true, err
		}
		return expanded, true, nil
	}
	return v, true, nil
}

// Required returns the fully resolved value for key, failing with
// [KindNotFound] when no source contains it.
func (r *Resolver) Required(key string) (any, error) {
	v, ok, err := r.Property(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewKeyError(KindNotFound, key,
			errors.New("no source in the chain contains this key"))
	}
	return v, nil
}

// Expand substitutes every placeholder expression in text using the chain.
// Behavior for unresolvable placeholders follows the configured
// ignore-unresolvable setting.
func (r *Resolver) Expand(text string) (string, error) {
	return r.helper.replace(text, r.resolveRaw)
}

// ValidateRequired resolves every key declared via [Resolver.SetRequired]
// and reports all keys whose resolution is absent or empty in one
// aggregated [KindMissingRequired] error. Nil when nothing is missing.
func (r *Resolver) ValidateRequired() error {
	var missing []string
	for _, key := range r.required {
		v, ok, err := r.Property(key)
		if err != nil || !ok || cast.ToString(v) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &Error{
		Kind: KindMissingRequired,
		Keys: missing,
		Err:  errors.New("required properties could not be resolved"),
	}
}

// String returns the resolved value for key as a string, or "" when the
// key is absent or resolution fails. Use [AsE] for explicit errors.
func (r *Resolver) String(key string) string {
	return AsOr(r, key, "")
}

// Int returns the resolved value for key as an int, or 0 on absence or
// failure.
func (r *Resolver) Int(key string) int {
	return AsOr(r, key, 0)
}

// Int64 returns the resolved value for key as an int64, or 0 on absence or
// failure.
func (r *Resolver) Int64(key string) int64 {
	return AsOr[int64](r, key, 0)
}

// Float64 returns the resolved value for key as a float64, or 0 on absence
// or failure.
func (r *Resolver) Float64(key string) float64 {
	return AsOr(r, key, 0.0)
}

// Bool returns the resolved value for key as a bool, or false on absence
// or failure.
func (r *Resolver) Bool(key string) bool {
	return AsOr(r, key, false)
}

// Duration returns the resolved value for key as a time.Duration, or 0 on
// absence or failure.
func (r *Resolver) Duration(key string) time.Duration {
	return AsOr[time.Duration](r, key, 0)
}

// Time returns the resolved value for key as a time.Time, or the zero time
// on absence or failure.
func (r *Resolver) Time(key string) time.Time {
	return AsOr(r, key, time.Time{})
}

// StringSlice returns the resolved value for key as a string slice, or an
// empty slice on absence or failure.
func (r *Resolver) StringSlice(key string) []string {
	return AsOr(r, key, []string{})
}

// StringOr returns the resolved value for key as a string, or the default
// when the key is absent or resolution fails.
func (r *Resolver) StringOr(key, defaultVal string) string {
	return AsOr(r, key, defaultVal)
}

// IntOr returns the resolved value for key as an int, or the default.
func (r *Resolver) IntOr(key string, defaultVal int) int {
	return AsOr(r, key, defaultVal)
}

// BoolOr returns the resolved value for key as a bool, or the default.
func (r *Resolver) BoolOr(key string, defaultVal bool) bool {
	return AsOr(r, key, defaultVal)
}

// DurationOr returns the resolved value for key as a time.Duration, or the
// default.
func (r *Resolver) DurationOr(key string, defaultVal time.Duration) time.Duration {
	return AsOr(r, key, defaultVal)
}
