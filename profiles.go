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
	"slices"
	"strings"
)

// DefaultProfileName is the profile implicitly in effect when no profiles
// have been activated.
const DefaultProfileName = "default"

// Profiles tracks the set of active profile names and the default set that
// stands in for it while nothing has been activated. Insertion order is
// preserved for enumeration; evaluation ignores order.
//
// Profiles is not internally synchronized; activate during bootstrap and
// treat as read-only afterwards.
type Profiles struct {
	active   []string
	defaults []string
}

// NewProfiles returns a Profiles with no active profiles and the default
// set ["default"].
func NewProfiles() *Profiles {
	return &Profiles{defaults: []string{DefaultProfileName}}
}

// Active returns the explicitly activated profiles in activation order.
func (p *Profiles) Active() []string {
	return slices.Clone(p.active)
}

// Default returns the default profile set.
func (p *Profiles) Default() []string {
	return slices.Clone(p.defaults)
}

// SetActive replaces the active profile set. Every name is validated
// before any state changes; an invalid name fails with
// [KindInvalidProfile].
func (p *Profiles) SetActive(names ...string) error {
	for _, name := range names {
		if err := checkProfileName(name); err != nil {
			return err
		}
	}
	p.active = p.active[:0]
	for _, name := range names {
		if !slices.Contains(p.active, name) {
			p.active = append(p.active, name)
		}
	}
	return nil
}

// AddActive activates a profile, keeping already-active profiles.
func (p *Profiles) AddActive(name string) error {
	if err := checkProfileName(name); err != nil {
		return err
	}
	if !slices.Contains(p.active, name) {
		p.active = append(p.active, name)
	}
	return nil
}

// SetDefault replaces the default profile set, applied at evaluation time
// whenever no profiles have been explicitly activated.
func (p *Profiles) SetDefault(names ...string) error {
	for _, name := range names {
		if err := checkProfileName(name); err != nil {
			return err
		}
	}
	p.defaults = slices.Clone(names)
	return nil
}

// IsActive reports whether the named profile is in effect, counting the
// default set when nothing has been activated.
func (p *Profiles) IsActive(name string) bool {
	return slices.Contains(p.effective(), name)
}

// Accepts evaluates profile expressions against the profiles currently in
// effect. Each expression is a bare profile name, satisfied when that
// profile is in effect, or a name prefixed with "!", satisfied when it is
// not. The call returns true when at least one expression is satisfied.
//
// When no profiles have been explicitly activated, the default set is
// used for evaluation; it is never materialized into the active set.
func (p *Profiles) Accepts(expressions ...string) (bool, error) {
	if len(expressions) == 0 {
		return false, NewError(KindInvalidProfile,
			errors.New("at least one profile expression is required"))
	}

	effective := p.effective()
	matched := false
	for _, expr := range expressions {
		name, negated := strings.CutPrefix(expr, "!")
		if err := checkProfileName(name); err != nil {
			return false, err
		}
		if slices.Contains(effective, name) != negated {
			matched = true
		}
	}
	return matched, nil
}

// effective returns the profile set evaluation runs against: the active
// set, or the default set while nothing has been activated.
func (p *Profiles) effective() []string {
	if len(p.active) > 0 {
		return p.active
	}
	return p.defaults
}

// checkProfileName rejects blank names and names carrying a "!" anywhere,
// the negation marker being valid only as an expression prefix.
func checkProfileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewKeyError(KindInvalidProfile, name,
			errors.New("profile name cannot be blank"))
	}
	if strings.Contains(name, "!") {
		return NewKeyError(KindInvalidProfile, name,
			fmt.Errorf("profile name cannot contain %q", "!"))
	}
	return nil
}
