package rule

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
)

// wordRe matches a run of word characters, letters and digits of any script included
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

func get(e *file.Entry, t Target) string {
	if t == TargetExtension {
		return e.Extension
	}
	return e.Name
}

func set(e *file.Entry, t Target, v string) {
	if t == TargetExtension {
		e.Extension = v
		return
	}
	e.Name = v
}

// ChangeCase

func applyChangeCase(r *Rule, e *file.Entry) {
	p := r.params.(ChangeCase)
	s := get(e, p.Target)

	op := p.Operation
	if op == CaseSentences && p.Target == TargetExtension {
		op = CaseWords
	}

	switch op {
	case CaseLower:
		s = strings.ToLower(s)
	case CaseUpper:
		s = strings.ToUpper(s)
	case CaseWords:
		s = capitalizeWords(s)
	case CaseSentences:
		s = capitalizeSentences(s, r.res[0])
	}
	set(e, p.Target, s)
}

func upperFirst(s string) string {
	c, size := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(c)) + s[size:]
}

func capitalizeWords(s string) string {
	return wordRe.ReplaceAllStringFunc(s, upperFirst)
}

// upperFirstWord upper-cases the first word character of s
func upperFirstWord(s string) string {
	loc := wordRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + upperFirst(s[loc[0]:])
}

func capitalizeSentences(s string, sep *regexp.Regexp) string {
	var b strings.Builder
	prev := 0
	for _, m := range sep.FindAllStringIndex(s, -1) {
		b.WriteString(upperFirstWord(s[prev:m[0]]))
		b.WriteString(s[m[0]:m[1]])
		prev = m[1]
	}
	b.WriteString(upperFirstWord(s[prev:]))
	return b.String()
}

// insertion helpers

// insertAt inserts text at offset characters from the start (or end) of s.
// Offsets past the string append (or prepend).
func insertAt(s string, offset int, fromEnd bool, text string) string {
	runes := []rune(s)
	n := len(runes)

	idx := offset
	switch {
	case offset >= n && fromEnd:
		idx = 0
	case offset >= n:
		idx = n
	case fromEnd:
		idx = n - offset
	}
	return string(runes[:idx]) + text + string(runes[idx:])
}

// selectMatches narrows matches to the requested occurrence
func selectMatches(matches [][]int, occ Occurrence) [][]int {
	if len(matches) == 0 {
		return nil
	}
	switch occ {
	case OccurrenceFirst:
		return matches[:1]
	case OccurrenceLast:
		return matches[len(matches)-1:]
	default:
		return matches
	}
}

// Counters

func applyCounterAtPosition(r *Rule, e *file.Entry) {
	p := r.params.(CounterAtPosition)
	set(e, p.Target, insertAt(get(e, p.Target), p.Offset, p.FromEnd, p.Counter.format(r.next())))
}

func applyCounterAtPattern(r *Rule, e *file.Entry) {
	p := r.params.(CounterAtPattern)
	loc := r.res[0].FindStringIndex(e.Name)
	if loc == nil {
		return
	}
	at := loc[0]
	if p.After {
		at = loc[1]
	}
	e.Name = e.Name[:at] + p.Counter.format(r.next()) + e.Name[at:]
}

func applyCounterOnCollision(r *Rule, e *file.Entry) {
	p := r.params.(CounterOnCollision)

	key := e.TargetPath()
	if _, dup := r.seen[key]; dup {
		base := e.Name
		for dup {
			e.Name = base + " " + p.Counter.format(r.next())
			key = e.TargetPath()
			_, dup = r.seen[key]
		}
	}
	r.seen[key] = struct{}{}
}

// Text insertion

func applyTextAtPosition(r *Rule, e *file.Entry) {
	p := r.params.(TextAtPosition)
	set(e, p.Target, insertAt(get(e, p.Target), p.Offset, p.FromEnd, p.Text))
}

// applyTextAtPattern scans the original name once, left to right, so that
// inserted text never shifts or creates matches.
func applyTextAtPattern(r *Rule, e *file.Entry) {
	p := r.params.(TextAtPattern)
	s := e.Name

	matches := selectMatches(r.res[0].FindAllStringIndex(s, -1), p.Placement.occurrence())
	if len(matches) == 0 {
		return
	}

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		at := m[0]
		if p.Placement.after() {
			at = m[1]
		}
		b.WriteString(s[prev:at])
		b.WriteString(p.Text)
		prev = at
	}
	b.WriteString(s[prev:])
	e.Name = b.String()
}

// Replace and Remove

func applyRemove(r *Rule, e *file.Entry) {
	p := r.params.(Remove)
	set(e, p.Target, replaceInWindow(get(e, p.Target), r.res[0], "", false, p.Occurrence, p.Window))
}

func applyReplace(r *Rule, e *file.Entry) {
	p := r.params.(Replace)
	set(e, p.Target, replaceInWindow(get(e, p.Target), r.res[0], p.Replacement, p.Pattern.IsRegex, p.Occurrence, p.Window))
}

// replaceInWindow replaces matches found inside the [start, end) character
// window of s; text outside the window is kept verbatim.
func replaceInWindow(s string, re *regexp.Regexp, repl string, expand bool, occ Occurrence, w Window) string {
	runes := []rune(s)
	n := len(runes)
	if w.Start >= n {
		return s
	}
	end := w.End
	if end <= w.Start || end > n {
		end = n
	}

	head := string(runes[:w.Start])
	mid := string(runes[w.Start:end])
	tail := string(runes[end:])
	return head + replaceMatches(mid, re, repl, expand, occ) + tail
}

func replaceMatches(s string, re *regexp.Regexp, repl string, expand bool, occ Occurrence) string {
	matches := selectMatches(re.FindAllStringSubmatchIndex(s, -1), occ)
	if len(matches) == 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	prev := 0
	for _, m := range matches {
		out = append(out, s[prev:m[0]]...)
		if expand {
			out = re.ExpandString(out, repl, s, m)
		} else {
			out = append(out, repl...)
		}
		prev = m[1]
	}
	out = append(out, s[prev:]...)
	return string(out)
}

// Move

func applyMove(r *Rule, e *file.Entry) {
	p := r.params.(Move)
	s := e.Name

	loc := r.res[0].FindStringIndex(s)
	if loc == nil {
		return
	}
	fragment := s[loc[0]:loc[1]]
	rest := s[:loc[0]] + s[loc[1]:]

	switch p.To {
	case MoveToBegin:
		e.Name = fragment + rest
	case MoveToEnd:
		e.Name = rest + fragment
	default:
		anchor := r.res[1].FindStringIndex(rest)
		if anchor == nil {
			return
		}
		at := anchor[0]
		if p.To == MoveAfter {
			at = anchor[1]
		}
		e.Name = rest[:at] + fragment + rest[at:]
	}
}
