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

import "fmt"

// 🔧 Params is the configuration of one rule kind. The set of
// implementations is closed to this package.
type Params interface {
	Kind() Kind

	validate(is *issues)
	encode(w *fieldWriter)
	// patterns returns the patterns the built rule compiles, in the order
	// the apply function expects them
	patterns() []Pattern
}

// MaxPadding is the widest counter a name can hold
const MaxPadding = 255

// Counter is the numbering shared by the counter rules
type Counter struct {
	Start   int // first value of a pass
	Padding int // zero-padded width, 0 for none
}

func (c Counter) format(n int) string {
	return fmt.Sprintf("%0*d", c.Padding, n)
}

func (c Counter) validate(is *issues) {
	is.nonNegative(ParamPadding, c.Padding)
	if c.Padding > MaxPadding {
		is.add(ParamPadding, fmt.Sprintf("must not exceed %d", MaxPadding))
	}
}

// ChangeCase changes the case of the name or extension
type ChangeCase struct {
	Target           Target
	Operation        CaseOp
	Separator        string // sentence separator, defaults to `\.+`
	SeparatorIsRegex bool
}

// CounterAtPosition inserts a running counter at a fixed offset
type CounterAtPosition struct {
	Counter Counter
	Offset  int
	FromEnd bool
	Target  Target
}

// CounterAtPattern inserts a running counter before or after the first match of Pattern in the name
type CounterAtPattern struct {
	Counter Counter
	Pattern Pattern
	After   bool
}

// CounterOnCollision appends " <counter>" to names already produced in the pass
type CounterOnCollision struct {
	Counter Counter
}

// TextAtPosition inserts Text at a fixed offset
type TextAtPosition struct {
	Text    string
	Offset  int
	FromEnd bool
	Target  Target
}

// TextAtPattern inserts Text around the matches of Pattern in the name
type TextAtPattern struct {
	Text      string
	Pattern   Pattern
	Placement Placement
}

// Window bounds the characters a Replace or Remove rule may touch.
// End <= Start, or End past the string, means "to the end".
type Window struct {
	Start int
	End   int
}

func (w Window) validate(is *issues) {
	is.nonNegative(ParamWindowStart, w.Start)
	is.nonNegative(ParamWindowEnd, w.End)
}

// Remove deletes matches of Pattern
type Remove struct {
	Pattern    Pattern
	Occurrence Occurrence
	Target     Target
	Window     Window
}

// Replace substitutes matches of Pattern with Replacement. Regex
// replacements may reference groups ($1, ${name}).
type Replace struct {
	Pattern     Pattern
	Replacement string
	Occurrence  Occurrence
	Target      Target
	Window      Window
}

// Move relocates the first match of Text in the name
type Move struct {
	Text          string
	TextIsRegex   bool
	To            MoveTo
	Search        string // anchor for MoveBefore and MoveAfter
	SearchIsRegex bool
	CaseSensitive bool
}

func (Move) Kind() Kind               { return KindMove }
func (ChangeCase) Kind() Kind         { return KindChangeCase }
func (CounterAtPosition) Kind() Kind  { return KindCounterAtPosition }
func (CounterAtPattern) Kind() Kind   { return KindCounterAtPattern }
func (CounterOnCollision) Kind() Kind { return KindCounterOnCollision }
func (TextAtPosition) Kind() Kind     { return KindTextAtPosition }
func (TextAtPattern) Kind() Kind      { return KindTextAtPattern }
func (Remove) Kind() Kind             { return KindRemove }
func (Replace) Kind() Kind            { return KindReplace }

// validation

func (p ChangeCase) validate(is *issues) {
	is.target(p.Target)
	if !p.Operation.valid() {
		is.add(ParamOperation, "unknown case operation")
	}
	if p.Operation == CaseSentences {
		if _, err := separatorPattern(p.Separator, p.SeparatorIsRegex).Compile(); err != nil {
			is.add(ParamSeparator, err.Error())
		}
	}
}

func (p CounterAtPosition) validate(is *issues) {
	p.Counter.validate(is)
	is.nonNegative(ParamOffset, p.Offset)
	is.target(p.Target)
}

func (p CounterAtPattern) validate(is *issues) {
	p.Counter.validate(is)
	is.pattern(ParamPattern, p.Pattern)
}

func (p CounterOnCollision) validate(is *issues) {
	p.Counter.validate(is)
}

func (p TextAtPosition) validate(is *issues) {
	is.required(ParamText, p.Text)
	is.nonNegative(ParamOffset, p.Offset)
	is.target(p.Target)
}

func (p TextAtPattern) validate(is *issues) {
	is.required(ParamText, p.Text)
	is.pattern(ParamPattern, p.Pattern)
	if !p.Placement.valid() {
		is.add(ParamPlacement, "unknown placement")
	}
}

func (p Remove) validate(is *issues) {
	is.pattern(ParamPattern, p.Pattern)
	if !p.Occurrence.valid() {
		is.add(ParamOccurrence, "unknown occurrence")
	}
	is.target(p.Target)
	p.Window.validate(is)
}

func (p Replace) validate(is *issues) {
	is.pattern(ParamPattern, p.Pattern)
	if !p.Occurrence.valid() {
		is.add(ParamOccurrence, "unknown occurrence")
	}
	is.target(p.Target)
	p.Window.validate(is)
}

func (p Move) validate(is *issues) {
	is.pattern(ParamText, p.textPattern())
	if !p.To.valid() {
		is.add(ParamMoveTo, "unknown destination")
		return
	}
	if p.To.needsSearch() {
		is.pattern(ParamSearch, p.searchPattern())
	}
}

// compiled patterns

func (p ChangeCase) patterns() []Pattern {
	if p.Operation != CaseSentences {
		return nil
	}
	return []Pattern{separatorPattern(p.Separator, p.SeparatorIsRegex)}
}

func (CounterAtPosition) patterns() []Pattern  { return nil }
func (CounterOnCollision) patterns() []Pattern { return nil }
func (TextAtPosition) patterns() []Pattern     { return nil }
func (p CounterAtPattern) patterns() []Pattern { return []Pattern{p.Pattern} }
func (p TextAtPattern) patterns() []Pattern    { return []Pattern{p.Pattern} }
func (p Remove) patterns() []Pattern           { return []Pattern{p.Pattern} }
func (p Replace) patterns() []Pattern          { return []Pattern{p.Pattern} }

func (p Move) patterns() []Pattern {
	if p.To.needsSearch() {
		return []Pattern{p.textPattern(), p.searchPattern()}
	}
	return []Pattern{p.textPattern()}
}

func (p Move) textPattern() Pattern {
	return Pattern{Text: p.Text, IsRegex: p.TextIsRegex, CaseSensitive: p.CaseSensitive}
}

func (p Move) searchPattern() Pattern {
	return Pattern{Text: p.Search, IsRegex: p.SearchIsRegex, CaseSensitive: p.CaseSensitive}
}

// Validate checks params without building a Spec
func Validate(p Params) error {
	is := &issues{kind: p.Kind()}
	p.validate(is)
	if is.err == nil {
		return nil
	}
	return is.err
}
