// Copyright 2025 walteh LLC
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

package rule

import (
	"gitlab.com/tozd/go/errors"
)

// ErrKindMismatch is returned when params of another kind are set on a spec
var ErrKindMismatch = errors.New("params kind does not match spec kind")

// ValidityListener is called with the new validity after every transition
type ValidityListener func(valid bool)

// 📋 Spec is the configuration of one rule in a pipeline. It validates
// params on every change and lazily (re)builds its Rule.
type Spec struct {
	params  Params
	enabled bool

	valid bool
	err   *InvalidParamsError

	changed bool  // params changed since cached was built
	cached  *Rule // last built rule

	listeners map[int]ValidityListener
	nextID    int
}

// 🏭 NewSpec creates an enabled spec for params
func NewSpec(p Params) *Spec {
	s := &Spec{
		params:    p,
		enabled:   true,
		changed:   true,
		listeners: map[int]ValidityListener{},
	}
	s.err = check(p)
	s.valid = s.err == nil
	return s
}

func check(p Params) *InvalidParamsError {
	is := &issues{kind: p.Kind()}
	p.validate(is)
	return is.err
}

// Kind returns the kind of the spec
func (s *Spec) Kind() Kind {
	return s.params.Kind()
}

// Params returns a copy of the current params
func (s *Spec) Params() Params {
	return s.params
}

// Enabled reports whether the pipeline should run this rule
func (s *Spec) Enabled() bool {
	return s.enabled
}

// SetEnabled toggles the rule without touching its params
func (s *Spec) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Valid reports whether the current params make a usable rule
func (s *Spec) Valid() bool {
	return s.valid
}

// Validate returns the InvalidParamsError of the current params, or nil
func (s *Spec) Validate() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// ✏️ SetParams replaces the params of the spec. Invalid params are kept
// (the spec becomes invalid) and their InvalidParamsError is returned.
func (s *Spec) SetParams(p Params) error {
	if p == nil || p.Kind() != s.Kind() {
		return errors.Errorf("%w: want %s", ErrKindMismatch, s.Kind())
	}

	s.params = p
	s.changed = true

	s.err = check(p)
	valid := s.err == nil
	if valid != s.valid {
		s.valid = valid
		s.notify()
	}
	return s.Validate()
}

// 🏗️ Build returns the rule for the current params, nil when invalid.
// The rule is cached until the params change.
func (s *Spec) Build() *Rule {
	if !s.valid {
		return nil
	}
	if !s.changed && s.cached != nil {
		return s.cached
	}

	r, err := build(s.params)
	if err != nil {
		return nil
	}
	s.cached = r
	s.changed = false
	return r
}

// 📢 Subscribe registers a validity listener; the returned func removes it
func (s *Spec) Subscribe(l ValidityListener) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

func (s *Spec) notify() {
	for _, l := range s.listeners {
		l(s.valid)
	}
}

// Clone returns an independent spec with the same params and enabled flag
func (s *Spec) Clone() *Spec {
	c := NewSpec(s.params)
	c.enabled = s.enabled
	return c
}
