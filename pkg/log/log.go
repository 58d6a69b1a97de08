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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// Status is what happened to one file
type Status int

const (
	StatusPreview Status = iota
	StatusRenamed
	StatusFailed
	StatusReverted
	StatusUnchanged
	StatusSkipped
	StatusDuplicate
)

func (s Status) String() string {
	switch s {
	case StatusPreview:
		return "preview"
	case StatusRenamed:
		return "renamed"
	case StatusFailed:
		return "failed"
	case StatusReverted:
		return "reverted"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// 🎯 Rename represents one file line
type Rename struct {
	From   string // current base name
	To     string // new base name
	Status Status
	Err    error
}

// 🎯 Logger writes one console line per file and mirrors it to zerolog
type Logger struct {
	console io.Writer
	mu      sync.Mutex
	counts  map[Status]int
}

// 🏭 New creates a new logger
func New(console io.Writer) *Logger {
	return &Logger{
		console: console,
		counts:  map[Status]int{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func symbol(s Status) (string, color.Attribute) {
	switch s {
	case StatusRenamed:
		return "✓", color.FgGreen
	case StatusFailed:
		return "✗", color.FgRed
	case StatusReverted:
		return "⟳", color.FgBlue
	case StatusPreview:
		return "•", color.FgCyan
	case StatusDuplicate:
		return "!", color.FgMagenta
	default:
		return "-", color.FgYellow
	}
}

// 📝 formatRename formats a file line for display
func formatRename(r Rename) string {
	sym, symColor := symbol(r.Status)

	line := fmt.Sprintf("%s%s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symColor).Sprint(sym),
		fmt.Sprintf("%-*s", nameWidth, r.From))

	switch r.Status {
	case StatusUnchanged, StatusSkipped:
		line += " " + fmt.Sprintf("%-*s", statusWidth, r.Status)
	default:
		line += " → " + Diff(r.From, r.To) + " " + color.New(color.Faint).Sprint(r.Status.String())
	}

	if r.Err != nil {
		line += " " + color.New(color.FgRed).Sprint(r.Err.Error())
	}
	return strings.TrimRight(line, " ")
}

// 🔀 Diff renders to with the characters added since from highlighted.
// Without color it returns to unchanged.
func Diff(from, to string) string {
	if color.NoColor {
		return to
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	var b strings.Builder
	added := color.New(color.FgGreen, color.Bold)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffInsert:
			b.WriteString(added.Sprint(d.Text))
		}
	}
	return b.String()
}

// 📝 LogRename logs one file line
func (l *Logger) LogRename(ctx context.Context, r Rename) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[r.Status]++
	fmt.Fprintln(l.console, formatRename(r))

	ev := zerolog.Ctx(ctx).Debug()
	if r.Err != nil {
		ev = zerolog.Ctx(ctx).Error().Err(r.Err)
	}
	ev.Str("from", r.From).
		Str("to", r.To).
		Str("status", r.Status.String()).
		Msg("file")
}

// Count returns how many lines were logged with status s
func (l *Logger) Count(s Status) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[s]
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("batchrename")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
}

// 📝 Directory prints the directory being worked on
func (l *Logger) Directory(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgMagenta).Sprint("◆"), color.New(color.Bold).Sprint(dir))
}
