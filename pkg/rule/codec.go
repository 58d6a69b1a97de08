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
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrFieldCount is returned when a script record has the wrong number of fields
var ErrFieldCount = errors.New("wrong number of fields")

// headerFields are the fields every record starts with: kind id and enabled flag
const headerFields = 2

// 📝 Encode flattens a spec into its script fields:
// <kind id>, <enabled>, <params...>
func Encode(s *Spec) []string {
	w := &fieldWriter{}
	w.int(int(s.Kind()))
	w.bool(s.Enabled())
	s.params.encode(w)
	return w.fields
}

// 📖 Decode rebuilds a spec from its script fields. Malformed records
// (unknown kind, wrong field count, bad integer or flag) are errors;
// well-formed but invalid params produce an invalid spec.
func Decode(fields []string) (*Spec, error) {
	if len(fields) < headerFields {
		return nil, errors.Errorf("%w: got %d, want at least %d", ErrFieldCount, len(fields), headerFields)
	}

	r := &fieldReader{fields: fields}
	kind := Kind(r.int())
	enabled := r.bool()
	if r.err != nil {
		return nil, r.err
	}
	if !kind.Serializable() {
		return nil, errors.Errorf("%w: id %d", ErrUnknownKind, int(kind))
	}

	def := kinds[kind]
	if want := headerFields + len(def.fields); len(fields) != want {
		return nil, errors.Errorf("%w: %s got %d, want %d", ErrFieldCount, kind, len(fields), want)
	}

	params := def.decode(r)
	if r.err != nil {
		return nil, errors.Errorf("decoding %s: %w", kind, r.err)
	}

	s := NewSpec(params)
	s.SetEnabled(enabled)
	return s, nil
}

// fieldWriter accumulates encoded fields
type fieldWriter struct {
	fields []string
}

func (w *fieldWriter) str(s string) { w.fields = append(w.fields, s) }
func (w *fieldWriter) int(i int)    { w.fields = append(w.fields, strconv.Itoa(i)) }

func (w *fieldWriter) bool(b bool) {
	if b {
		w.fields = append(w.fields, "1")
		return
	}
	w.fields = append(w.fields, "0")
}

func (w *fieldWriter) counter(c Counter) {
	w.int(c.Start)
	w.int(c.Padding)
}

func (w *fieldWriter) pattern(p Pattern) {
	w.str(p.Text)
	w.bool(p.IsRegex)
	w.bool(p.CaseSensitive)
}

// fieldReader consumes fields in order, keeping the first error
type fieldReader struct {
	fields []string
	pos    int
	err    error
}

func (r *fieldReader) next() string {
	if r.pos >= len(r.fields) {
		r.fail(errors.Errorf("%w: missing field %d", ErrFieldCount, r.pos))
		return ""
	}
	f := r.fields[r.pos]
	r.pos++
	return f
}

func (r *fieldReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *fieldReader) str() string { return r.next() }

func (r *fieldReader) int() int {
	pos := r.pos
	raw := strings.TrimSpace(r.next())
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(errors.Errorf("field %d: invalid integer %q", pos, raw))
		return 0
	}
	return v
}

func (r *fieldReader) bool() bool {
	pos := r.pos
	switch raw := strings.TrimSpace(r.next()); raw {
	case "1":
		return true
	case "0":
		return false
	default:
		r.fail(errors.Errorf("field %d: invalid flag %q", pos, raw))
		return false
	}
}

func (r *fieldReader) counter() Counter {
	return Counter{Start: r.int(), Padding: r.int()}
}

func (r *fieldReader) pattern() Pattern {
	return Pattern{Text: r.str(), IsRegex: r.bool(), CaseSensitive: r.bool()}
}

// encoders, one per kind; field order must match the kinds table

func (p ChangeCase) encode(w *fieldWriter) {
	w.int(int(p.Target))
	w.int(int(p.Operation))
	w.str(p.Separator)
	w.bool(p.SeparatorIsRegex)
}

func (p CounterAtPosition) encode(w *fieldWriter) {
	w.counter(p.Counter)
	w.int(p.Offset)
	w.bool(p.FromEnd)
	w.int(int(p.Target))
}

func (p CounterAtPattern) encode(w *fieldWriter) {
	w.counter(p.Counter)
	w.pattern(p.Pattern)
	w.bool(p.After)
}

func (p CounterOnCollision) encode(w *fieldWriter) {
	w.counter(p.Counter)
}

func (p TextAtPosition) encode(w *fieldWriter) {
	w.str(p.Text)
	w.int(p.Offset)
	w.bool(p.FromEnd)
	w.int(int(p.Target))
}

func (p TextAtPattern) encode(w *fieldWriter) {
	w.str(p.Text)
	w.pattern(p.Pattern)
	w.int(int(p.Placement))
}

func (p Remove) encode(w *fieldWriter) {
	w.pattern(p.Pattern)
	w.int(int(p.Occurrence))
	w.int(int(p.Target))
	w.int(p.Window.Start)
	w.int(p.Window.End)
}

func (p Replace) encode(w *fieldWriter) {
	w.str(p.Pattern.Text)
	w.str(p.Replacement)
	w.bool(p.Pattern.IsRegex)
	w.bool(p.Pattern.CaseSensitive)
	w.int(int(p.Occurrence))
	w.int(int(p.Target))
	w.int(p.Window.Start)
	w.int(p.Window.End)
}

func (p Move) encode(w *fieldWriter) {
	w.str(p.Text)
	w.bool(p.TextIsRegex)
	w.int(int(p.To))
	w.str(p.Search)
	w.bool(p.SearchIsRegex)
	w.bool(p.CaseSensitive)
}

// decoders

func decodeChangeCase(r *fieldReader) Params {
	return ChangeCase{
		Target:           Target(r.int()),
		Operation:        CaseOp(r.int()),
		Separator:        r.str(),
		SeparatorIsRegex: r.bool(),
	}
}

func decodeCounterAtPosition(r *fieldReader) Params {
	return CounterAtPosition{
		Counter: r.counter(),
		Offset:  r.int(),
		FromEnd: r.bool(),
		Target:  Target(r.int()),
	}
}

func decodeCounterAtPattern(r *fieldReader) Params {
	return CounterAtPattern{
		Counter: r.counter(),
		Pattern: r.pattern(),
		After:   r.bool(),
	}
}

func decodeCounterOnCollision(r *fieldReader) Params {
	return CounterOnCollision{Counter: r.counter()}
}

func decodeTextAtPosition(r *fieldReader) Params {
	return TextAtPosition{
		Text:    r.str(),
		Offset:  r.int(),
		FromEnd: r.bool(),
		Target:  Target(r.int()),
	}
}

func decodeTextAtPattern(r *fieldReader) Params {
	return TextAtPattern{
		Text:      r.str(),
		Pattern:   r.pattern(),
		Placement: Placement(r.int()),
	}
}

func decodeRemove(r *fieldReader) Params {
	return Remove{
		Pattern:    r.pattern(),
		Occurrence: Occurrence(r.int()),
		Target:     Target(r.int()),
		Window:     Window{Start: r.int(), End: r.int()},
	}
}

func decodeReplace(r *fieldReader) Params {
	p := Replace{}
	p.Pattern.Text = r.str()
	p.Replacement = r.str()
	p.Pattern.IsRegex = r.bool()
	p.Pattern.CaseSensitive = r.bool()
	p.Occurrence = Occurrence(r.int())
	p.Target = Target(r.int())
	p.Window = Window{Start: r.int(), End: r.int()}
	return p
}

func decodeMove(r *fieldReader) Params {
	return Move{
		Text:          r.str(),
		TextIsRegex:   r.bool(),
		To:            MoveTo(r.int()),
		Search:        r.str(),
		SearchIsRegex: r.bool(),
		CaseSensitive: r.bool(),
	}
}
