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

package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/rule"
)

// ErrIndexOutOfRange is returned for positions outside the pipeline
var ErrIndexOutOfRange = errors.New("rule index out of range")

// 🔗 Pipeline is the ordered list of rule specs. Order is execution order;
// disabled specs keep their position.
type Pipeline struct {
	specs []*rule.Spec

	listeners map[int]Listener
	nextID    int
}

// 🏭 New creates an empty pipeline
func New() *Pipeline {
	return &Pipeline{listeners: map[int]Listener{}}
}

// Len returns the number of specs
func (p *Pipeline) Len() int {
	return len(p.specs)
}

// At returns the spec at index
func (p *Pipeline) At(index int) (*rule.Spec, error) {
	if err := p.check(index); err != nil {
		return nil, err
	}
	return p.specs[index], nil
}

// Specs returns a copy of the spec list. The specs themselves are shared.
func (p *Pipeline) Specs() []*rule.Spec {
	out := make([]*rule.Spec, len(p.specs))
	copy(out, p.specs)
	return out
}

// ➕ Add appends a spec and returns its index
func (p *Pipeline) Add(s *rule.Spec) int {
	p.specs = append(p.specs, s)
	index := len(p.specs) - 1
	p.notify(Event{Type: EventAdded, Index: index})
	return index
}

// RemoveAt removes the spec at index
func (p *Pipeline) RemoveAt(index int) error {
	if err := p.check(index); err != nil {
		return err
	}
	p.remove(index)
	return nil
}

// 🗑️ RemoveEnabled removes every enabled spec, highest index first, and
// returns how many were removed
func (p *Pipeline) RemoveEnabled() int {
	removed := 0
	for i := len(p.specs) - 1; i >= 0; i-- {
		if p.specs[i].Enabled() {
			p.remove(i)
			removed++
		}
	}
	return removed
}

func (p *Pipeline) remove(index int) {
	p.specs = append(p.specs[:index], p.specs[index+1:]...)
	p.notify(Event{Type: EventRemoved, Index: index})
}

// ↕️ Move repositions the spec at from so that it ends up at to
func (p *Pipeline) Move(from, to int) error {
	if err := p.check(from); err != nil {
		return err
	}
	if err := p.check(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	s := p.specs[from]
	p.specs = append(p.specs[:from], p.specs[from+1:]...)
	p.specs = append(p.specs[:to], append([]*rule.Spec{s}, p.specs[to:]...)...)

	p.notify(Event{Type: EventMoved, From: from, To: to})
	return nil
}

// SetEnabled toggles the spec at index
func (p *Pipeline) SetEnabled(index int, enabled bool) error {
	if err := p.check(index); err != nil {
		return err
	}
	if p.specs[index].Enabled() == enabled {
		return nil
	}
	p.specs[index].SetEnabled(enabled)
	p.notify(Event{Type: EventToggled, Index: index})
	return nil
}

// Clear empties the pipeline with a single EventRulesChanged
func (p *Pipeline) Clear() {
	p.specs = nil
	p.notify(Event{Type: EventRulesChanged})
}

// replace swaps the whole list at once, used by script loading
func (p *Pipeline) replace(specs []*rule.Spec) {
	p.specs = specs
	p.notify(Event{Type: EventRulesChanged})
}

// 🏗️ Rules builds the rules of every enabled and valid spec, in order.
// Invalid specs are skipped with a warning.
func (p *Pipeline) Rules(ctx context.Context) []*rule.Rule {
	logger := zerolog.Ctx(ctx)

	rules := make([]*rule.Rule, 0, len(p.specs))
	for i, s := range p.specs {
		if !s.Enabled() {
			continue
		}
		r := s.Build()
		if r == nil {
			logger.Warn().
				Int("index", i).
				Str("kind", s.Kind().String()).
				Err(s.Validate()).
				Msg("skipping invalid rule")
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

func (p *Pipeline) check(index int) error {
	if index < 0 || index >= len(p.specs) {
		return errors.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(p.specs))
	}
	return nil
}
