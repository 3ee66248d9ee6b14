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
	"slices"
	"strings"
)

const (
	// DefaultCommandLineSourceName is the chain name under which a
	// [CommandLineSource] registers unless renamed.
	DefaultCommandLineSourceName = "commandLineArgs"

	// DefaultNonOptionArgsKey is the reserved property key exposing the
	// non-option arguments of a [CommandLineSource].
	DefaultNonOptionArgsKey = "nonOptionArgs"
)

// CommandLineArgs holds the result of parsing a raw argument vector into
// option arguments and non-option arguments. Options are multi-valued: a
// repeated option accumulates its values in order. An option supplied
// without a value is recorded with an empty value, distinguishing
// "flag set, no value" from "flag not set".
type CommandLineArgs struct {
	optionNames   []string
	optionValues  map[string][]string
	nonOptionArgs []string
}

// NewCommandLineArgs returns an empty CommandLineArgs, ready to be
// populated via [CommandLineArgs.AddOptionArg] and
// [CommandLineArgs.AddNonOptionArg].
func NewCommandLineArgs() *CommandLineArgs {
	return &CommandLineArgs{optionValues: make(map[string][]string)}
}

// ParseArgs tokenizes a raw argument vector. Two option shapes are
// recognized:
//
//	--name=value   option argument, repeatable, values accumulate in order
//	--name         option argument with no value (flag marker)
//
// Every other token is collected, in order, as a non-option argument.
// A bare "--" or an empty option name ("--=value") fails with
// [KindInvalidArgument].
func ParseArgs(args []string) (*CommandLineArgs, error) {
	parsed := NewCommandLineArgs()
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			parsed.AddNonOptionArg(arg)
			continue
		}

		opt := arg[2:]
		name, value := opt, ""
		hasValue := false
		if i := strings.Index(opt, "="); i >= 0 {
			name, value = opt[:i], opt[i+1:]
			hasValue = true
		}
		if name == "" {
			return nil, NewKeyError(KindInvalidArgument, arg,
				fmt.Errorf("invalid argument syntax"))
		}

		if hasValue {
			parsed.AddOptionArg(name, value)
		} else {
			parsed.AddOptionArg(name)
		}
	}
	return parsed, nil
}

// AddOptionArg records an option. With values, each value is appended to
// the option's ordered value list; without values, the option is recorded
// as present with an empty value list.
func (a *CommandLineArgs) AddOptionArg(name string, values ...string) {
	if _, seen := a.optionValues[name]; !seen {
		a.optionNames = append(a.optionNames, name)
		a.optionValues[name] = []string{}
	}
	a.optionValues[name] = append(a.optionValues[name], values...)
}

// AddNonOptionArg appends a non-option argument.
func (a *CommandLineArgs) AddNonOptionArg(value string) {
	a.nonOptionArgs = append(a.nonOptionArgs, value)
}

// OptionNames returns all supplied option names in first-seen order.
func (a *CommandLineArgs) OptionNames() []string {
	return slices.Clone(a.optionNames)
}

// OptionValues returns the ordered values supplied for the named option.
// The second return reports whether the option was supplied at all; a
// supplied flag with no value yields an empty, non-nil slice.
func (a *CommandLineArgs) OptionValues(name string) ([]string, bool) {
	values, ok := a.optionValues[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// ContainsOption reports whether the named option was supplied.
func (a *CommandLineArgs) ContainsOption(name string) bool {
	_, ok := a.optionValues[name]
	return ok
}

// NonOptionArgs returns the non-option arguments in supplied order.
func (a *CommandLineArgs) NonOptionArgs() []string {
	return slices.Clone(a.nonOptionArgs)
}

// CommandLineSource exposes parsed command-line arguments as an
// [EnumerableSource]. Option lookups return the option's values joined
// with commas; the reserved non-option key (default
// [DefaultNonOptionArgsKey]) returns the non-option arguments joined with
// commas, and is absent when there are none.
type CommandLineSource struct {
	name         string
	args         *CommandLineArgs
	nonOptionKey string
}

// NewCommandLineSource creates a CommandLineSource named
// [DefaultCommandLineSourceName] over the given parsed arguments.
func NewCommandLineSource(args *CommandLineArgs) *CommandLineSource {
	return NewNamedCommandLineSource(DefaultCommandLineSourceName, args)
}

// NewNamedCommandLineSource creates a CommandLineSource with an explicit
// chain name, for chains holding more than one argument source.
func NewNamedCommandLineSource(name string, args *CommandLineArgs) *CommandLineSource {
	if args == nil {
		args = NewCommandLineArgs()
	}
	return &CommandLineSource{
		name:         name,
		args:         args,
		nonOptionKey: DefaultNonOptionArgsKey,
	}
}

// SetNonOptionArgsKey changes the reserved property key under which
// non-option arguments are exposed.
func (s *CommandLineSource) SetNonOptionArgsKey(key string) {
	s.nonOptionKey = key
}

// Name returns the source name.
func (s *CommandLineSource) Name() string {
	return s.name
}

// Property returns the comma-joined values for an option, or the
// comma-joined non-option arguments for the reserved key. An option
// supplied with no value yields an empty string, not absence.
func (s *CommandLineSource) Property(key string) (any, bool) {
	if key == s.nonOptionKey {
		nonOpts := s.args.NonOptionArgs()
		if len(nonOpts) == 0 {
			return nil, false
		}
		return strings.Join(nonOpts, ","), true
	}

	values, ok := s.args.OptionValues(key)
	if !ok {
		return nil, false
	}
	return strings.Join(values, ","), true
}

// PropertyNames returns all supplied option names, plus the reserved
// non-option key when non-option arguments are present.
func (s *CommandLineSource) PropertyNames() []string {
	names := s.args.OptionNames()
	if len(s.args.NonOptionArgs()) > 0 {
		names = append(names, s.nonOptionKey)
	}
	return names
}
