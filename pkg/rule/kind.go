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

// 🏷️ Kind identifies a rule variant. The numeric value is the script id.
type Kind int

const (
	KindChangeCase Kind = iota
	KindCounterAtPosition
	KindCounterAtPattern
	KindCounterOnCollision
	KindTextAtPosition
	KindTextAtPattern
	KindRemove
	KindReplace
	KindMove

	kindCount
)

// ErrUnknownKind is returned for ids outside the closed set of kinds
var ErrUnknownKind = errors.New("unknown rule kind")

// Kinds lists every rule kind in script id order
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kinds[k].name
}

// Fields returns the script field names of the kind, in encoding order
func (k Kind) Fields() []string {
	if !k.Valid() {
		return nil
	}
	return append([]string(nil), kinds[k].fields...)
}

// Serializable reports whether specs of this kind can be written to a script
func (k Kind) Serializable() bool {
	return k.Valid() && kinds[k].decode != nil
}

// ParseKind resolves a kind from its name (case-insensitive) or script id
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		if k := Kind(id); k.Valid() {
			return k, nil
		}
		return 0, errors.Errorf("%w: id %d", ErrUnknownKind, id)
	}
	for k := Kind(0); k < kindCount; k++ {
		if strings.EqualFold(kinds[k].name, s) {
			return k, nil
		}
	}
	return 0, errors.Errorf("%w: %q", ErrUnknownKind, s)
}

// 🎯 Target selects which part of the file name a rule edits
type Target int

const (
	TargetName Target = iota
	TargetExtension
)

func (t Target) valid() bool { return t == TargetName || t == TargetExtension }

// Occurrence selects which matches of a pattern are edited
type Occurrence int

const (
	OccurrenceAll Occurrence = iota
	OccurrenceFirst
	OccurrenceLast
)

func (o Occurrence) valid() bool { return o >= OccurrenceAll && o <= OccurrenceLast }

// CaseOp is the operation of a ChangeCase rule
type CaseOp int

const (
	CaseLower CaseOp = iota
	CaseUpper
	CaseWords
	CaseSentences
)

func (c CaseOp) valid() bool { return c >= CaseLower && c <= CaseSentences }

// Placement is where TextAtPattern inserts its text relative to the matches
type Placement int

const (
	BeforeAll Placement = iota
	BeforeFirst
	BeforeLast
	AfterAll
	AfterFirst
	AfterLast
)

func (p Placement) valid() bool { return p >= BeforeAll && p <= AfterLast }

func (p Placement) after() bool { return p >= AfterAll }

func (p Placement) occurrence() Occurrence {
	switch p {
	case BeforeFirst, AfterFirst:
		return OccurrenceFirst
	case BeforeLast, AfterLast:
		return OccurrenceLast
	default:
		return OccurrenceAll
	}
}

// MoveTo is the destination of a Move rule
type MoveTo int

const (
	MoveBefore MoveTo = iota
	MoveAfter
	MoveToBegin
	MoveToEnd
)

func (m MoveTo) valid() bool { return m >= MoveBefore && m <= MoveToEnd }

func (m MoveTo) needsSearch() bool { return m == MoveBefore || m == MoveAfter }
