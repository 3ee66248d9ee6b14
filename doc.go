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

// Package props resolves named configuration properties through an ordered
// chain of property sources, with recursive ${key:default} placeholder
// substitution, type coercion, and profile gating.
//
// Application bootstrap code builds one [Environment] from whatever the
// configuration comes from (command-line arguments, files, environment
// variables, Consul, plain maps) and the rest of the application asks it
// uniform questions: what is the value of key K, as what type, and is
// profile P in effect.
//
// # Precedence
//
// Sources form a chain; the first source containing a key supplies its
// value and later sources are never consulted for it. Sources registered
// earlier take precedence:
//
//	env := props.MustNew(
//	    props.WithCommandLine(os.Args[1:]),  // highest precedence
//	    props.WithEnv("APP_"),
//	    props.WithFile("config.yaml"),       // lowest precedence
//	)
//	env.MustLoad(context.Background())
//
//	port := env.IntOr("server.port", 8080)
//
// The chain can also be shaped directly, for example to layer a
// profile-specific source above the defaults:
//
//	env.Sources().AddBefore("file:config.yaml", overrides)
//
// # Placeholders
//
// String values may embed placeholder expressions, expanded recursively
// through the same chain before the value is returned:
//
//	db.url: "postgres://${db.host:localhost}:${db.port:5432}/app"
//
// A placeholder may nest another placeholder in its key or default, and a
// value obtained for a placeholder is itself expanded. Unresolvable
// placeholders without a default fail, unless configured to be left
// verbatim with [WithIgnoreUnresolvable]. Cyclic references fail with
// [KindCircularReference] instead of recursing forever.
//
// # Typed access
//
// Typed getters coerce resolved values with the spf13/cast conventions and
// swallow absence ([Environment.Int], [Environment.StringOr]); the generic
// [AsE] reports absence, placeholder failures, and coercion failures as
// distinct error kinds. Whole configurations decode into structs via
// [Environment.Bind].
//
// # Profiles
//
// Profiles gate configuration sets by named mode:
//
//	ok, err := env.AcceptsProfiles("dev", "!prod")
//
// Each expression is a profile name or its "!" negation; the call is true
// when at least one expression is satisfied by the active set. While no
// profiles are active, the configured default set (initially "default")
// stands in at evaluation time.
//
// # Concurrency
//
// An Environment is a write-once-then-read-many snapshot: configure and
// load during bootstrap, then share read-only. Reads are pure in-memory
// computations; the package adds no internal locking, and concurrent
// mutation must be synchronized by the caller. Placeholder cycle-detection
// state is scoped to each top-level resolution, so concurrent reads never
// interfere.
package props
