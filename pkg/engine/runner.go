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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
)

// 🎯 Operation is one engine phase
type Operation interface {
	Name() string
	Execute(ctx context.Context, e *Engine) Result
}

// Preview recomputes working names without touching the disk
type Preview struct{}

func (Preview) Name() string { return "preview" }

func (Preview) Execute(ctx context.Context, e *Engine) Result {
	return e.ApplyRules(ctx, false)
}

// Commit applies the rules and renames
type Commit struct{}

func (Commit) Name() string { return "commit" }

func (Commit) RunsToCompletion() bool { return true }

func (Commit) Execute(ctx context.Context, e *Engine) Result {
	return e.ApplyRules(ctx, true)
}

// Undo reverts the last commit
type Undo struct{}

func (Undo) Name() string { return "undo" }

func (Undo) RunsToCompletion() bool { return true }

func (Undo) Execute(ctx context.Context, e *Engine) Result {
	return e.Undo(ctx)
}

// ListFunc produces a fresh file list
type ListFunc func(ctx context.Context) ([]*file.Entry, error)

// completer is implemented by operations that touch the disk. Once started
// they are waited for even when ctx is cancelled.
type completer interface {
	RunsToCompletion() bool
}

func runsToCompletion(op Operation) bool {
	c, ok := op.(completer)
	return ok && c.RunsToCompletion()
}

// Refresh reloads the file list through List
type Refresh struct {
	List ListFunc
}

func (Refresh) Name() string { return "refresh" }

func (r Refresh) Execute(ctx context.Context, e *Engine) Result {
	entries, err := r.List(ctx)
	if err != nil {
		e.publish(Notice{Key: NoticeListingFailed, Err: err})
		return Result{UndoAvailable: e.UndoAvailable()}
	}
	e.SetFileList(ctx, entries)
	return Result{Entries: e.Entries(ctx), UndoAvailable: e.UndoAvailable()}
}

// 🏃 Runner executes operations on an engine
type Runner struct {
	engine *Engine
	async  bool
}

// 🏗️ NewRunner creates a runner. Async runners execute on a goroutine and
// stop waiting when ctx is cancelled, except for commit and undo.
func NewRunner(e *Engine, async bool) *Runner {
	return &Runner{engine: e, async: async}
}

// 🏃 Run executes op
func (r *Runner) Run(ctx context.Context, op Operation) (Result, error) {
	zerolog.Ctx(ctx).Debug().Str("operation", op.Name()).Bool("async", r.async).Msg("running operation")

	if r.async {
		return r.runAsync(ctx, op)
	}
	return op.Execute(ctx, r.engine), nil
}

// ⚡ runAsync runs op on a goroutine. A pass that already started keeps
// running to the end even when ctx is cancelled; the engine stays locked
// until it does. Commit and undo results are always delivered so the
// caller can record what was renamed.
func (r *Runner) runAsync(ctx context.Context, op Operation) (Result, error) {
	done := make(chan Result, 1)

	go func() {
		done <- op.Execute(ctx, r.engine)
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
	}

	if runsToCompletion(op) {
		zerolog.Ctx(ctx).Warn().Str("operation", op.Name()).Msg("cancelled, waiting for renames to finish")
		return <-done, nil
	}
	return Result{}, errors.Errorf("%s cancelled: %w", op.Name(), ctx.Err())
}
