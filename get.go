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
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// As returns the resolved value for key coerced to type T, along with a
// presence flag. Coercion or placeholder failures are reported as absence;
// use [AsE] when the distinction matters.
//
// Example:
//
//	port, ok := props.As[int](resolver, "server.port")
func As[T any](r *Resolver, key string) (T, bool) {
	v, err := AsE[T](r, key)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// AsOr returns the resolved value for key coerced to type T, or the
// default value when the key is absent or cannot be coerced.
//
// Example:
//
//	timeout := props.AsOr(resolver, "timeout", 30*time.Second)
func AsOr[T any](r *Resolver, key string, defaultVal T) T {
	v, err := AsE[T](r, key)
	if err != nil {
		return defaultVal
	}
	return v
}

// AsE returns the resolved value for key coerced to type T, with explicit
// errors: [KindNotFound] when no source contains the key, placeholder
// errors from expansion, and [KindConversion] when the value cannot be
// coerced to T.
func AsE[T any](r *Resolver, key string) (T, error) {
	var zero T

	v, ok, err := r.Property(key)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, NewKeyError(KindNotFound, key,
			fmt.Errorf("no source in the chain contains this key"))
	}

	return convertValue[T](r, key, v)
}

func convertValue[T any](r *Resolver, key string, v any) (T, error) {
	var zero T

	// Direct assertion covers values already of the requested type.
	if result, ok := v.(T); ok {
		return result, nil
	}

	if result, ok := coerce[T](v); ok {
		return result, nil
	}

	// Fallback conversion seam for targets cast does not know about.
	if r.convert != nil {
		converted, err := r.convert(v, reflect.TypeOf(zero))
		if err == nil {
			if result, ok := converted.(T); ok {
				return result, nil
			}
		}
	}

	return zero, NewKeyError(KindConversion, key,
		fmt.Errorf("cannot convert %q (%T) to %T", cast.ToString(v), v, zero))
}

// coerce attempts a cast-based conversion for the common scalar, slice,
// map, and time types. Custom types fall through to the resolver's
// ConvertFunc.
func coerce[T any](v any) (T, bool) {
	var zero T
	var result any
	var err error

	switch any(zero).(type) {
	case string:
		result, err = cast.ToStringE(v)
	case int:
		result, err = cast.ToIntE(v)
	case int64:
		result, err = cast.ToInt64E(v)
	case int32:
		result, err = cast.ToInt32E(v)
	case uint:
		result, err = cast.ToUintE(v)
	case uint64:
		result, err = cast.ToUint64E(v)
	case float64:
		result, err = cast.ToFloat64E(v)
	case float32:
		result, err = cast.ToFloat32E(v)
	case bool:
		result, err = cast.ToBoolE(v)
	case []string:
		result, err = cast.ToStringSliceE(v)
	case []int:
		result, err = cast.ToIntSliceE(v)
	case map[string]string:
		result, err = cast.ToStringMapStringE(v)
	case map[string]any:
		result, err = cast.ToStringMapE(v)
	case time.Duration:
		result, err = cast.ToDurationE(v)
	case time.Time:
		result, err = cast.ToTimeE(v)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}

	typed, ok := result.(T)
	return typed, ok
}
