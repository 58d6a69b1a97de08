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
	"regexp"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// applyFunc edits the working name/extension of an entry
type applyFunc func(r *Rule, e *file.Entry)

// kindDef is one row of the dispatch table
type kindDef struct {
	name   string
	fields []string // script field names after the header
	decode func(r *fieldReader) Params
	apply  applyFunc
}

// 🗺️ kinds is the dispatch table, indexed by Kind
var kinds = [kindCount]kindDef{
	KindChangeCase: {
		name:   "ChangeCase",
		fields: []string{"target", "operation", "separator", "separator_is_regex"},
		decode: decodeChangeCase,
		apply:  applyChangeCase,
	},
	KindCounterAtPosition: {
		name:   "InsertCounterAtPosition",
		fields: []string{"start", "padding", "offset", "from_end", "target"},
		decode: decodeCounterAtPosition,
		apply:  applyCounterAtPosition,
	},
	KindCounterAtPattern: {
		name:   "InsertCounterBeforeAfterPattern",
		fields: []string{"start", "padding", "pattern", "is_regex", "case_sensitive", "after"},
		decode: decodeCounterAtPattern,
		apply:  applyCounterAtPattern,
	},
	KindCounterOnCollision: {
		name:   "InsertCounterOnCollision",
		fields: []string{"start", "padding"},
		decode: decodeCounterOnCollision,
		apply:  applyCounterOnCollision,
	},
	KindTextAtPosition: {
		name:   "InsertTextAtPosition",
		fields: []string{"text", "offset", "from_end", "target"},
		decode: decodeTextAtPosition,
		apply:  applyTextAtPosition,
	},
	KindTextAtPattern: {
		name:   "InsertTextBeforeAfterPattern",
		fields: []string{"text", "pattern", "is_regex", "case_sensitive", "placement"},
		decode: decodeTextAtPattern,
		apply:  applyTextAtPattern,
	},
	KindRemove: {
		name:   "Remove",
		fields: []string{"pattern", "is_regex", "case_sensitive", "occurrence", "target", "window_start", "window_end"},
		decode: decodeRemove,
		apply:  applyRemove,
	},
	KindReplace: {
		name:   "Replace",
		fields: []string{"pattern", "replacement", "is_regex", "case_sensitive", "occurrence", "target", "window_start", "window_end"},
		decode: decodeReplace,
		apply:  applyReplace,
	},
	KindMove: {
		name:   "Move",
		fields: []string{"text", "text_is_regex", "to", "search", "search_is_regex", "case_sensitive"},
		decode: decodeMove,
		apply:  applyMove,
	},
}

// ⚙️ Rule is the runnable form of a Spec. It keeps per-pass state that
// persists across the files of one pass and is cleared by Reset.
type Rule struct {
	params Params
	apply  applyFunc
	res    []*regexp.Regexp

	counter int
	seen    map[string]struct{}
}

// build compiles params into a rule
func build(p Params) (*Rule, error) {
	kind := p.Kind()
	if !kind.Valid() {
		return nil, errors.Errorf("%w: id %d", ErrUnknownKind, int(kind))
	}

	r := &Rule{
		params: p,
		apply:  kinds[kind].apply,
	}
	for i, pat := range p.patterns() {
		re, err := pat.Compile()
		if err != nil {
			return nil, errors.Errorf("compiling pattern %d of %s: %w", i, kind, err)
		}
		r.res = append(r.res, re)
	}
	r.Reset()
	return r, nil
}

// Kind returns the kind of the rule
func (r *Rule) Kind() Kind {
	return r.params.Kind()
}

// 🔄 Reset clears counters and seen names before a new pass
func (r *Rule) Reset() {
	r.counter = 0
	switch p := r.params.(type) {
	case CounterAtPosition:
		r.counter = p.Counter.Start
	case CounterAtPattern:
		r.counter = p.Counter.Start
	case CounterOnCollision:
		r.counter = p.Counter.Start
	}
	r.seen = map[string]struct{}{}
}

// 🏃 Apply edits the working name/extension of e and returns it
func (r *Rule) Apply(e *file.Entry) *file.Entry {
	r.apply(r, e)
	return e
}

// next returns the current counter value and advances it
func (r *Rule) next() int {
	v := r.counter
	r.counter++
	return v
}
