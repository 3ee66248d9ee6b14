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
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/props/codec"
	"rivaas.dev/props/source"
)

// Option is a functional option that can be used to configure an
// Environment instance.
type Option func(e *Environment) error

// Environment ties a property source chain, a resolver, and a profile set
// together behind a single handle. It is the object bootstrap code
// constructs once and hands out read-only to the rest of the application.
//
// Sources registered via options take precedence in registration order:
// the first registered source wins for any key it contains. Loader-backed
// options (files, environment variables, Consul) reserve their chain slot
// at registration and are materialized in place by [Environment.Load], so
// mixing loader-backed and immediate sources keeps registration order.
//
// Environment provides no internal locking; mutate it only during
// bootstrap and treat it as a read-many snapshot afterwards.
type Environment struct {
	sources  *Sources
	resolver *Resolver
	profiles *Profiles
	loaders  []Loader
	binding  any
	tagName  string
	schema   *jsonschema.Schema
}

// New creates a new Environment with the provided options. Option errors
// are collected and returned joined, alongside the partially configured
// Environment.
func New(options ...Option) (*Environment, error) {
	sources, _ := NewSources()
	e := &Environment{
		sources:  sources,
		profiles: NewProfiles(),
		tagName:  "props",
	}
	e.resolver = NewResolver(e.sources)

	var errs error
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(e); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return e, errs
}

// MustNew creates a new Environment with the provided options, panicking
// if any option fails. Use in main() or initialization code where panic is
// acceptable; use New for error handling.
func MustNew(options ...Option) *Environment {
	e, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("props: failed to create environment: %v", err))
	}
	return e
}

// WithSource registers an already-materialized property source at the end
// of the chain (lowest precedence so far).
func WithSource(src PropertySource) Option {
	return func(e *Environment) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		return e.sources.AddLast(src)
	}
}

// WithMap registers an in-memory map as a named property source. Keys are
// expected in dotted form ("server.port").
func WithMap(name string, values map[string]any) Option {
	return func(e *Environment) error {
		return e.sources.AddLast(NewMapSource(name, values))
	}
}

// WithCommandLine parses the given raw argument vector and registers the
// result as a command-line property source. Register it first to give
// command-line arguments the highest precedence.
func WithCommandLine(args []string) Option {
	return func(e *Environment) error {
		parsed, err := ParseArgs(args)
		if err != nil {
			return err
		}
		return e.sources.AddLast(NewCommandLineSource(parsed))
	}
}

// WithFile registers a file loader. The format is detected from the file
// extension (.yaml, .yml, .json, .toml); for other names use WithFileAs.
//
// Paths support environment variable expansion using ${VAR} or $VAR
// syntax, e.g. "${CONFIG_DIR}/app.yaml".
func WithFile(path string) Option {
	return func(e *Environment) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return err
		}
		return e.addFileLoader(path, format)
	}
}

// WithFileAs registers a file loader with an explicit format, for files
// without an extension or with a misleading one.
func WithFileAs(path string, codecType codec.Type) Option {
	return func(e *Environment) error {
		return e.addFileLoader(os.ExpandEnv(path), codecType)
	}
}

// WithContent registers a byte-slice loader under the given source name.
// Useful for embedded configuration.
func WithContent(name string, data []byte, codecType codec.Type) Option {
	return func(e *Environment) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return err
		}
		return e.addLoader(source.NewContent(name, data, decoder))
	}
}

// WithEnv registers an environment variable loader. Only variables with
// the given prefix are loaded; the prefix is stripped, names lowercased,
// and underscores become dots: APP_SERVER_PORT -> server.port.
func WithEnv(prefix string) Option {
	return func(e *Environment) error {
		return e.addLoader(source.NewOSEnv(prefix))
	}
}

// WithConsul registers a Consul key-value loader for the given path. The
// format is detected from the path extension.
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped,
// allowing development without Consul while requiring it in production.
func WithConsul(path string) Option {
	return func(e *Environment) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		path = os.ExpandEnv(path)
		format, err := detectFormat(path)
		if err != nil {
			return err
		}
		return e.addConsulLoader(path, format)
	}
}

// WithConsulAs registers a Consul key-value loader with an explicit
// format. Skipped without CONSUL_HTTP_ADDR, like WithConsul.
func WithConsulAs(path string, codecType codec.Type) Option {
	return func(e *Environment) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		return e.addConsulLoader(os.ExpandEnv(path), codecType)
	}
}

// WithPlaceholder configures the placeholder prefix and suffix (default
// "${" and "}").
func WithPlaceholder(prefix, suffix string) Option {
	return func(e *Environment) error {
		return e.resolver.SetPlaceholder(prefix, suffix)
	}
}

// WithValueSeparator configures the separator between a placeholder key
// and its inline default literal (default ":").
func WithValueSeparator(sep string) Option {
	return func(e *Environment) error {
		return e.resolver.SetValueSeparator(sep)
	}
}

// WithoutValueSeparator disables inline default literals in placeholders.
func WithoutValueSeparator() Option {
	return func(e *Environment) error {
		e.resolver.DisableValueSeparator()
		return nil
	}
}

// WithIgnoreUnresolvable leaves unresolvable placeholders verbatim in
// resolved values instead of failing.
func WithIgnoreUnresolvable() Option {
	return func(e *Environment) error {
		e.resolver.SetIgnoreUnresolvable(true)
		return nil
	}
}

// WithRequired declares keys that must resolve to non-empty values.
// [Environment.Validate] reports every missing key in one error.
func WithRequired(keys ...string) Option {
	return func(e *Environment) error {
		e.resolver.SetRequired(keys...)
		return nil
	}
}

// WithConverter installs a fallback conversion function for target types
// the built-in coercion does not cover.
func WithConverter(fn ConvertFunc) Option {
	return func(e *Environment) error {
		if fn == nil {
			return errors.New("converter cannot be nil")
		}
		e.resolver.SetConverter(fn)
		return nil
	}
}

// WithActiveProfiles activates the given profiles.
func WithActiveProfiles(names ...string) Option {
	return func(e *Environment) error {
		return e.profiles.SetActive(names...)
	}
}

// WithDefaultProfiles replaces the default profile set used while no
// profiles are explicitly active.
func WithDefaultProfiles(names ...string) Option {
	return func(e *Environment) error {
		return e.profiles.SetDefault(names...)
	}
}

// WithJSONSchema adds a JSON Schema that [Environment.Load] and
// [Environment.Validate] check the merged configuration against.
func WithJSONSchema(schema []byte) Option {
	return func(e *Environment) error {
		// Use a unique schema name to avoid caching issues
		//nolint:gosec // rand.Int() is used for a unique schema name, not security sensitive
		schemaName := fmt.Sprintf("inline_%d.json", rand.Int())
		compiler := jsonschema.NewCompiler()

		jsonSchema, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return err
		}
		if err = compiler.AddResource(schemaName, jsonSchema); err != nil {
			return err
		}
		compiled, err := compiler.Compile(schemaName)
		if err != nil {
			return err
		}
		e.schema = compiled
		return nil
	}
}

// WithBinding configures a struct pointer that [Environment.Load] decodes
// the merged configuration into.
func WithBinding(v any) Option {
	return func(e *Environment) error {
		if v == nil {
			return errors.New("binding target cannot be nil")
		}
		if reflect.TypeOf(v).Kind() != reflect.Ptr {
			return errors.New("binding target must be a pointer")
		}
		e.binding = v
		return nil
	}
}

// WithTag sets a custom struct tag name for binding (default: "props").
func WithTag(tagName string) Option {
	return func(e *Environment) error {
		if tagName == "" {
			return errors.New("tag name cannot be empty")
		}
		e.tagName = tagName
		return nil
	}
}

func (e *Environment) addFileLoader(path string, codecType codec.Type) error {
	decoder, err := codec.GetDecoder(codecType)
	if err != nil {
		return err
	}
	return e.addLoader(source.NewFile(path, decoder))
}

func (e *Environment) addConsulLoader(path string, codecType codec.Type) error {
	decoder, err := codec.GetDecoder(codecType)
	if err != nil {
		return err
	}
	l, err := source.NewConsul(path, decoder, nil)
	if err != nil {
		return err
	}
	return e.addLoader(l)
}

// detectFormat picks a codec type from the path's extension. Paths whose
// extension is unknown need WithFileAs or WithConsulAs instead.
func detectFormat(path string) (codec.Type, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return codec.TypeYAML, nil
	case ".json":
		return codec.TypeJSON, nil
	case ".toml":
		return codec.TypeTOML, nil
	}
	return "", fmt.Errorf("cannot detect format of %q from its extension; specify the format explicitly", path)
}

// addLoader queues a loader and reserves its chain slot with an empty
// source, so that loader-backed sources keep registration-order precedence
// relative to immediately-registered ones. Load fills the slot in place.
func (e *Environment) addLoader(l Loader) error {
	if err := e.sources.AddLast(NewMapSource(l.Name(), nil)); err != nil {
		return err
	}
	e.loaders = append(e.loaders, l)
	return nil
}

// Load materializes every registered loader into a map-backed property
// source, flattening nested maps to dotted keys. Each loader's reserved
// slot is replaced in place, so repeated calls refresh loader data without
// disturbing chain order. After materializing, Load validates the
// configuration and decodes it into the binding struct if one is
// configured.
//
// Errors:
//   - Returns error if ctx is nil
//   - Returns error if any loader fails to load or decode
//   - Returns the aggregated validation error from [Environment.Validate]
//   - Returns error if binding fails
func (e *Environment) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	for i, l := range e.loaders {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conf, err := l.Load(ctx)
		if err != nil {
			return fmt.Errorf("loader[%d] %s: %w", i, l.Name(), err)
		}

		src := NewMapSource(l.Name(), Flatten(conf))
		if e.sources.Contains(l.Name()) {
			err = e.sources.Replace(l.Name(), src)
		} else {
			err = e.sources.AddLast(src)
		}
		if err != nil {
			return err
		}
	}

	if err := e.Validate(); err != nil {
		return err
	}

	if e.binding != nil {
		if err := e.Bind(e.binding); err != nil {
			return err
		}
	}

	return nil
}

// MustLoad loads the environment or panics on error. For error handling,
// use Load instead.
func (e *Environment) MustLoad(ctx context.Context) {
	if err := e.Load(ctx); err != nil {
		panic(err)
	}
}

// Snapshot merges every enumerable source into one nested map, lowest
// precedence first so that higher-precedence sources override. Sources
// that cannot enumerate their keys are skipped. The result feeds struct
// binding and schema validation, and is useful for debugging the
// effective configuration.
func (e *Environment) Snapshot() map[string]any {
	merged := make(map[string]any)
	chain := e.sources.Slice()
	for i := len(chain) - 1; i >= 0; i-- {
		es, ok := chain[i].(EnumerableSource)
		if !ok {
			continue
		}
		flat := make(map[string]any)
		for _, key := range es.PropertyNames() {
			if v, present := es.Property(key); present {
				flat[key] = v
			}
		}
		// Merge errors only occur for invalid destination types, which a
		// fresh map rules out.
		_ = mergo.Map(&merged, Unflatten(flat), mergo.WithOverride)
	}
	return merged
}

// Validate checks the merged configuration against the configured JSON
// schema, then verifies the required keys. Missing required keys are
// aggregated into a single [KindMissingRequired] error rather than failing
// one by one.
func (e *Environment) Validate() error {
	if e.schema != nil {
		if err := e.schema.Validate(e.Snapshot()); err != nil {
			return fmt.Errorf("schema validation: %w", err)
		}
	}
	return e.resolver.ValidateRequired()
}

// Sources returns the underlying source chain for direct manipulation,
// e.g. layering a profile-specific source above the defaults.
func (e *Environment) Sources() *Sources {
	return e.sources
}

// Resolver returns the underlying resolver.
func (e *Environment) Resolver() *Resolver {
	return e.resolver
}

// Profiles returns the profile state.
func (e *Environment) Profiles() *Profiles {
	return e.profiles
}

// AcceptsProfiles evaluates profile expressions against the profiles in
// effect; see [Profiles.Accepts].
func (e *Environment) AcceptsProfiles(expressions ...string) (bool, error) {
	return e.profiles.Accepts(expressions...)
}

// Property returns the fully resolved value for key; see
// [Resolver.Property].
func (e *Environment) Property(key string) (any, bool, error) {
	return e.resolver.Property(key)
}

// Required returns the resolved value for key, failing with [KindNotFound]
// on absence.
func (e *Environment) Required(key string) (any, error) {
	return e.resolver.Required(key)
}

// Expand substitutes placeholder expressions in text using the chain.
func (e *Environment) Expand(text string) (string, error) {
	return e.resolver.Expand(text)
}

// String returns the resolved value for key as a string, or "".
func (e *Environment) String(key string) string {
	return e.resolver.String(key)
}

// StringOr returns the resolved value for key as a string, or the default.
func (e *Environment) StringOr(key, defaultVal string) string {
	return e.resolver.StringOr(key, defaultVal)
}

// Int returns the resolved value for key as an int, or 0.
func (e *Environment) Int(key string) int {
	return e.resolver.Int(key)
}

// IntOr returns the resolved value for key as an int, or the default.
func (e *Environment) IntOr(key string, defaultVal int) int {
	return e.resolver.IntOr(key, defaultVal)
}

// Bool returns the resolved value for key as a bool, or false.
func (e *Environment) Bool(key string) bool {
	return e.resolver.Bool(key)
}

// BoolOr returns the resolved value for key as a bool, or the default.
func (e *Environment) BoolOr(key string, defaultVal bool) bool {
	return e.resolver.BoolOr(key, defaultVal)
}

// Duration returns the resolved value for key as a time.Duration, or 0.
func (e *Environment) Duration(key string) time.Duration {
	return e.resolver.Duration(key)
}
