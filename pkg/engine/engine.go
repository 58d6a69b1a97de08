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

package engine

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
	"github.com/pasdam/batchRegexRenamer/pkg/pipeline"
	"github.com/pasdam/batchRegexRenamer/pkg/rule"
)

// FailurePolicy decides what a commit does with already renamed files
// once a rename fails
type FailurePolicy int

const (
	// FailureRollback reverts the commit in reverse order
	FailureRollback FailurePolicy = iota
	// FailureContinue keeps going and keeps every successful rename
	FailureContinue
)

// ParseFailurePolicy maps "rollback" and "continue" to a policy
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "", "rollback":
		return FailureRollback, nil
	case "continue":
		return FailureContinue, nil
	default:
		return 0, errors.Errorf("unknown failure policy %q", s)
	}
}

func (p FailurePolicy) String() string {
	if p == FailureContinue {
		return "continue"
	}
	return "rollback"
}

// 🔧 Options configures an engine
type Options struct {
	// Pipeline provides the rules; required
	Pipeline *pipeline.Pipeline
	// FileSystem performs renames; defaults to OSFileSystem
	FileSystem FileSystem
	// OnFailure is applied when a rename fails mid-commit
	OnFailure FailurePolicy
	// AllowDuplicates lets a commit go ahead with colliding target names
	AllowDuplicates bool
}

// 📊 Result is the outcome of a pass
type Result struct {
	Entries       []file.Entry
	UndoAvailable bool
	// Duplicates groups the indexes of checked entries sharing a target
	Duplicates [][]int
	Renamed    int
	Failed     int
}

// 🚂 Engine applies a pipeline to a list of entries and renames them.
// Refresh, preview, commit and undo never overlap.
type Engine struct {
	opts Options
	fs   FileSystem

	phase   *semaphore.Weighted
	entries []*file.Entry
	batch   *Batch
	undo    atomic.Bool

	mu        sync.Mutex
	listeners map[int]NoticeListener
	nextID    int
}

// 🏭 New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Pipeline == nil {
		return nil, errors.Errorf("pipeline is required")
	}
	if opts.OnFailure != FailureRollback && opts.OnFailure != FailureContinue {
		return nil, errors.Errorf("unknown failure policy %d", opts.OnFailure)
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = OSFileSystem{}
	}

	return &Engine{
		opts:      opts,
		fs:        fs,
		phase:     semaphore.NewWeighted(1),
		listeners: map[int]NoticeListener{},
	}, nil
}

// acquire enters a phase, publishing engine_busy when ctx ends first
func (e *Engine) acquire(ctx context.Context, phase string) bool {
	if err := e.phase.Acquire(ctx, 1); err != nil {
		zerolog.Ctx(ctx).Debug().Str("phase", phase).Err(err).Msg("engine busy")
		e.publish(Notice{Key: NoticeEngineBusy, Err: errors.Errorf("waiting for %s: %w", phase, err)})
		return false
	}
	return true
}

func (e *Engine) release() {
	e.phase.Release(1)
}

// 📂 SetFileList replaces the entries. Any pending undo is dropped.
func (e *Engine) SetFileList(ctx context.Context, entries []*file.Entry) {
	if !e.acquire(ctx, "refresh") {
		return
	}
	defer e.release()

	e.entries = append([]*file.Entry(nil), entries...)
	e.setBatch(nil)

	zerolog.Ctx(ctx).Debug().Int("entries", len(entries)).Msg("file list set")
}

// SetChecked marks whether rules apply to the entry at index
func (e *Engine) SetChecked(ctx context.Context, index int, checked bool) {
	if !e.acquire(ctx, "set checked") {
		return
	}
	defer e.release()

	if index < 0 || index >= len(e.entries) {
		e.publish(Notice{
			Key: NoticeIndexOutOfRange,
			Err: errors.Errorf("entry %d not in [0,%d)", index, len(e.entries)),
		})
		return
	}
	e.entries[index].Checked = checked
}

// Entries returns copies of the current entries
func (e *Engine) Entries(ctx context.Context) []file.Entry {
	if !e.acquire(ctx, "entries") {
		return nil
	}
	defer e.release()

	return e.snapshot()
}

// UndoAvailable reports whether the last commit can be undone
func (e *Engine) UndoAvailable() bool {
	return e.undo.Load()
}

// Batch returns the transactions of the last commit
func (e *Engine) Batch(ctx context.Context) []Transaction {
	if !e.acquire(ctx, "batch") {
		return nil
	}
	defer e.release()

	return e.batch.Transactions()
}

func (e *Engine) setBatch(b *Batch) {
	e.batch = b
	e.undo.Store(b.UndoAvailable())
}

func (e *Engine) snapshot() []file.Entry {
	out := make([]file.Entry, len(e.entries))
	for i, en := range e.entries {
		out[i] = *en
	}
	return out
}

func (e *Engine) result(r Result) Result {
	r.Entries = e.snapshot()
	r.UndoAvailable = e.batch.UndoAvailable()
	return r
}

// ▶️ ApplyRules runs one pass of the pipeline over the entries. With commit
// set, every checked entry whose name changed is renamed on disk.
func (e *Engine) ApplyRules(ctx context.Context, commit bool) Result {
	phase := "preview"
	if commit {
		phase = "commit"
	}
	if !e.acquire(ctx, phase) {
		return Result{UndoAvailable: e.UndoAvailable()}
	}
	defer e.release()

	logger := zerolog.Ctx(ctx)

	rules := e.rules(ctx)
	for _, r := range rules {
		r.Reset()
	}

	for _, en := range e.entries {
		en.Reset()
		if !en.Checked {
			continue
		}
		for _, r := range rules {
			r.Apply(en)
		}
	}

	res := Result{Duplicates: e.duplicates()}
	for _, group := range res.Duplicates {
		e.publish(Notice{
			Key:    NoticeDuplicateNames,
			Path:   e.entries[group[0]].TargetPath(),
			Fields: e.paths(group),
		})
	}

	logger.Debug().
		Str("phase", phase).
		Int("rules", len(rules)).
		Int("entries", len(e.entries)).
		Int("duplicates", len(res.Duplicates)).
		Msg("rules applied")

	if !commit {
		e.invalidNames()
		return e.result(res)
	}

	if len(res.Duplicates) > 0 && !e.opts.AllowDuplicates {
		logger.Warn().Int("groups", len(res.Duplicates)).Msg("refusing to commit duplicate names")
		return e.result(res)
	}

	e.commit(ctx, &res)
	return e.result(res)
}

// rules publishes invalid_rule for every enabled invalid spec and returns
// the runnable rules in order
func (e *Engine) rules(ctx context.Context) []*rule.Rule {
	for _, s := range e.opts.Pipeline.Specs() {
		if !s.Enabled() || s.Valid() {
			continue
		}
		n := Notice{Key: NoticeInvalidRule, Path: s.Kind().String(), Err: s.Validate()}
		var invalid *rule.InvalidParamsError
		if errors.As(s.Validate(), &invalid) {
			n.Fields = invalid.Params
		}
		e.publish(n)
	}
	return e.opts.Pipeline.Rules(ctx)
}

// duplicates groups checked entries that end up at the same path
func (e *Engine) duplicates() [][]int {
	byTarget := map[string][]int{}
	for i, en := range e.entries {
		if !en.Checked {
			continue
		}
		t := en.TargetPath()
		byTarget[t] = append(byTarget[t], i)
	}

	var groups [][]int
	for _, idx := range byTarget {
		if len(idx) > 1 {
			groups = append(groups, idx)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// invalidNames publishes invalid_name for every changed checked entry whose
// new name would leave its folder
func (e *Engine) invalidNames() {
	for _, en := range e.entries {
		if !en.Checked || !en.Changed() {
			continue
		}
		if err := en.ValidateName(); err != nil {
			e.publish(Notice{Key: NoticeInvalidName, Path: en.Path(), Err: err})
		}
	}
}

func (e *Engine) paths(indexes []int) []string {
	out := make([]string, len(indexes))
	for i, idx := range indexes {
		out[i] = e.entries[idx].Path()
	}
	return out
}

// 💥 commit renames every changed checked entry. It always runs to the end
// of the list; ctx only carries the logger.
func (e *Engine) commit(ctx context.Context, res *Result) {
	logger := zerolog.Ctx(ctx)

	batch := &Batch{}
	previous := map[int]*file.Entry{}

	for i, en := range e.entries {
		if !en.Checked || !en.Changed() {
			continue
		}

		tx := NewTransaction(en.Path(), en.TargetPath())
		err := en.ValidateName()
		if err == nil {
			err = tx.Rename(e.fs)
		}
		if err != nil {
			res.Failed++
			logger.Error().Err(err).Str("path", tx.PreviousPath).Msg("rename failed")
			e.publish(Notice{Key: NoticeRenameFailed, Path: tx.PreviousPath, Err: err})
			if e.opts.OnFailure == FailureRollback {
				break
			}
			continue
		}

		batch.add(i, tx)
		previous[i] = en
		e.entries[i] = en.Moved(tx.NewPath)
		res.Renamed++
	}

	if res.Failed > 0 && e.opts.OnFailure == FailureRollback {
		e.rollback(ctx, batch, previous, res)
		return
	}

	e.setBatch(batch)
}

// rollback reverts a failed commit in reverse order
func (e *Engine) rollback(ctx context.Context, batch *Batch, previous map[int]*file.Entry, res *Result) {
	logger := zerolog.Ctx(ctx)

	kept := &Batch{}
	for i := len(batch.steps) - 1; i >= 0; i-- {
		s := batch.steps[i]
		if err := s.tx.Revert(e.fs); err != nil {
			logger.Error().Err(err).Str("path", s.tx.NewPath).Msg("rollback failed")
			e.publish(Notice{Key: NoticeRollbackFailed, Path: s.tx.NewPath, Err: err})
			kept.steps = append([]step{s}, kept.steps...)
			continue
		}
		e.entries[s.index] = previous[s.index]
		res.Renamed--
	}

	e.publish(Notice{Key: NoticeRolledBack, Err: errors.Errorf("%d renames reverted", batch.Len()-kept.Len())})

	// whatever could not be reverted stays undoable
	e.setBatch(kept)
}

// ↩️ Undo reverts the last commit in commit order
func (e *Engine) Undo(ctx context.Context) Result {
	if !e.acquire(ctx, "undo") {
		return Result{UndoAvailable: e.UndoAvailable()}
	}
	defer e.release()

	logger := zerolog.Ctx(ctx)

	if !e.batch.UndoAvailable() {
		e.publish(Notice{Key: NoticeUndoUnavailable})
		e.setBatch(nil)
		return e.result(Result{})
	}

	var res Result
	failed := &Batch{}
	index := e.indexByPath()

	for _, s := range e.batch.steps {
		if err := s.tx.Revert(e.fs); err != nil {
			res.Failed++
			logger.Error().Err(err).Str("path", s.tx.NewPath).Msg("undo failed")
			e.publish(Notice{Key: NoticeUndoFailed, Path: s.tx.NewPath, Err: err})
			failed.steps = append(failed.steps, s)
			continue
		}
		res.Renamed++

		if i, ok := index[s.tx.NewPath]; ok {
			e.entries[i] = e.entries[i].Moved(s.tx.PreviousPath)
		}
	}

	// failed reverts stay in place so undo can be retried
	e.setBatch(failed)

	logger.Debug().Int("reverted", res.Renamed).Int("failed", res.Failed).Msg("undo finished")
	return e.result(res)
}

func (e *Engine) indexByPath() map[string]int {
	index := make(map[string]int, len(e.entries))
	for i, en := range e.entries {
		index[en.Path()] = i
	}
	return index
}

// RestoreBatch installs transactions recorded by an earlier run (for example
// from a journal) as the last commit, so Undo can revert them
func (e *Engine) RestoreBatch(ctx context.Context, txs []Transaction) {
	if !e.acquire(ctx, "restore") {
		return
	}
	defer e.release()

	// undo matches entries by path, so no index is kept
	batch := &Batch{}
	for _, t := range txs {
		tx := NewTransaction(t.PreviousPath, t.NewPath)
		tx.renamed = true
		batch.add(-1, tx)
	}
	e.setBatch(batch)

	zerolog.Ctx(ctx).Debug().Int("transactions", len(txs)).Msg("batch restored")
}
