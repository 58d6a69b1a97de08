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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
	"github.com/pasdam/batchRegexRenamer/pkg/pipeline"
	"github.com/pasdam/batchRegexRenamer/pkg/rule"
)

// 🔧 MockFileSystem is a mock implementation of FileSystem
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	return m.Called(oldPath, newPath).Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	return m.Called(path).Bool(0)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func newEngine(t *testing.T, fs FileSystem, opts Options, specs ...*rule.Spec) (*Engine, *[]Notice) {
	t.Helper()

	p := pipeline.New()
	for _, s := range specs {
		p.Add(s)
	}
	opts.Pipeline = p
	opts.FileSystem = fs

	e, err := New(opts)
	require.NoError(t, err, "creating engine should succeed")

	var notices []Notice
	e.Subscribe(func(n Notice) { notices = append(notices, n) })
	return e, &notices
}

func entries(paths ...string) []*file.Entry {
	out := make([]*file.Entry, len(paths))
	for i, p := range paths {
		out[i] = file.New(p, false)
	}
	return out
}

func fullNames(es []file.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.FullName()
	}
	return out
}

func paths(es []file.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Path()
	}
	return out
}

func keys(ns []Notice) []NoticeKey {
	var out []NoticeKey
	for _, n := range ns {
		out = append(out, n.Key)
	}
	return out
}

func touch(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(out[i], []byte(n), 0o644))
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err, "pipeline is required")

	_, err = New(Options{Pipeline: pipeline.New(), OnFailure: FailurePolicy(9)})
	assert.Error(t, err)

	e, err := New(Options{Pipeline: pipeline.New()})
	require.NoError(t, err)
	assert.IsType(t, OSFileSystem{}, e.fs, "the local disk is the default")
}

func TestApplyRules_Preview(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		specs   []*rule.Spec
		uncheck []int
		want    []string
	}{
		{
			name:  "counter_is_monotonic",
			paths: []string{"/d/a.txt", "/d/b.txt", "/d/c.txt"},
			specs: []*rule.Spec{rule.NewSpec(rule.CounterAtPosition{Counter: rule.Counter{Start: 5, Padding: 2}})},
			want:  []string{"05a.txt", "06b.txt", "07c.txt"},
		},
		{
			name:    "unchecked_entries_do_not_consume_counter",
			paths:   []string{"/d/a.txt", "/d/b.txt", "/d/c.txt", "/d/d.txt"},
			specs:   []*rule.Spec{rule.NewSpec(rule.CounterAtPosition{Counter: rule.Counter{Start: 5, Padding: 2}})},
			uncheck: []int{1},
			want:    []string{"05a.txt", "b.txt", "06c.txt", "07d.txt"},
		},
		{
			name:  "case_round_trip_touches_name_only",
			paths: []string{"/d/MixedCase.TXT"},
			specs: []*rule.Spec{
				rule.NewSpec(rule.ChangeCase{Target: rule.TargetName, Operation: rule.CaseLower}),
				rule.NewSpec(rule.ChangeCase{Target: rule.TargetName, Operation: rule.CaseUpper}),
			},
			want: []string{"MIXEDCASE.TXT"},
		},
		{
			name:  "move_before",
			paths: []string{"/d/xfooybarz.txt"},
			specs: []*rule.Spec{rule.NewSpec(rule.Move{Text: "foo", To: rule.MoveBefore, Search: "bar"})},
			want:  []string{"xyfoobarz.txt"},
		},
		{
			name:  "disabled_and_invalid_rules_are_skipped",
			paths: []string{"/d/a.txt"},
			specs: func() []*rule.Spec {
				disabled := rule.NewSpec(rule.TextAtPosition{Text: "no_"})
				disabled.SetEnabled(false)
				return []*rule.Spec{
					disabled,
					rule.NewSpec(rule.TextAtPosition{}),
					rule.NewSpec(rule.TextAtPosition{Text: "yes_"}),
				}
			}(),
			want: []string{"yes_a.txt"},
		},
		{
			name:  "collision_counter_spans_the_pass",
			paths: []string{"/d/a1.txt", "/d/a2.txt", "/d/b.txt"},
			specs: []*rule.Spec{
				rule.NewSpec(rule.Remove{Pattern: rule.Pattern{Text: `\d`, IsRegex: true}}),
				rule.NewSpec(rule.CounterOnCollision{Counter: rule.Counter{Start: 1}}),
			},
			want: []string{"a.txt", "a 1.txt", "b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			e, _ := newEngine(t, new(MockFileSystem), Options{}, tt.specs...)

			e.SetFileList(ctx, entries(tt.paths...))
			for _, i := range tt.uncheck {
				e.SetChecked(ctx, i, false)
			}

			first := e.ApplyRules(ctx, false)
			assert.Equal(t, tt.want, fullNames(first.Entries))
			assert.Equal(t, tt.paths, paths(first.Entries), "preview never renames")
			assert.False(t, first.UndoAvailable)

			second := e.ApplyRules(ctx, false)
			assert.Equal(t, first.Entries, second.Entries, "preview is idempotent")
		})
	}
}

func TestApplyRules_InvalidRuleNotice(t *testing.T) {
	ctx := testContext(t)
	e, notices := newEngine(t, new(MockFileSystem), Options{}, rule.NewSpec(rule.TextAtPattern{Text: "x"}))

	e.SetFileList(ctx, entries("/d/a.txt"))
	res := e.ApplyRules(ctx, false)

	assert.Equal(t, []string{"a.txt"}, fullNames(res.Entries))
	require.Len(t, *notices, 1)
	assert.Equal(t, NoticeInvalidRule, (*notices)[0].Key)
	assert.Equal(t, []string{rule.ParamPattern}, (*notices)[0].Fields)
}

func TestCommitAndUndo(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	original := touch(t, dir, "a.txt", "b.txt", "c.txt")

	e, notices := newEngine(t, OSFileSystem{}, Options{}, rule.NewSpec(rule.TextAtPosition{Text: "new_"}))
	e.SetFileList(ctx, entries(original...))

	res := e.ApplyRules(ctx, true)
	assert.Equal(t, 3, res.Renamed)
	assert.Equal(t, 0, res.Failed)
	assert.True(t, res.UndoAvailable)
	assert.True(t, e.UndoAvailable())
	assert.Empty(t, *notices)

	for _, en := range res.Entries {
		assert.Equal(t, "new_", en.BaseName()[:4], "entries point at the renamed files")
		assert.Equal(t, en.BaseName(), en.FullName(), "fresh entries carry the new on-disk name")
		assert.FileExists(t, en.Path())
	}
	require.Len(t, e.Batch(ctx), 3)

	res = e.Undo(ctx)
	assert.Equal(t, original, paths(res.Entries), "undo restores the exact original paths")
	assert.False(t, res.UndoAvailable)
	assert.False(t, e.UndoAvailable())
	for _, p := range original {
		assert.FileExists(t, p)
	}

	res = e.Undo(ctx)
	assert.False(t, res.UndoAvailable)
	assert.Equal(t, []NoticeKey{NoticeUndoUnavailable}, keys(*notices))
}

func TestCommit_UnchangedEntriesAreNotRenamed(t *testing.T) {
	ctx := testContext(t)
	fs := new(MockFileSystem)
	fs.On("Rename", "/d/a.txt", "/d/A.txt").Return(nil).Once()

	e, _ := newEngine(t, fs, Options{}, rule.NewSpec(rule.Replace{Pattern: rule.Pattern{Text: "a", CaseSensitive: true}, Replacement: "A"}))
	e.SetFileList(ctx, entries("/d/a.txt", "/d/b.txt"))

	res := e.ApplyRules(ctx, true)
	assert.Equal(t, 1, res.Renamed)
	assert.Equal(t, []string{"/d/A.txt", "/d/b.txt"}, paths(res.Entries))
	fs.AssertExpectations(t)
}

func TestCommit_TrailingDotIsKept(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	original := touch(t, dir, "weird.", "a..")

	e, _ := newEngine(t, OSFileSystem{}, Options{}, rule.NewSpec(rule.Replace{Pattern: rule.Pattern{Text: "zzz"}, Replacement: "y"}))
	e.SetFileList(ctx, entries(original...))

	res := e.ApplyRules(ctx, true)
	assert.Zero(t, res.Renamed, "no rule touched these names")
	assert.False(t, res.UndoAvailable)
	assert.Equal(t, original, paths(res.Entries))
	for _, p := range original {
		assert.FileExists(t, p)
	}
}

func TestCommit_InvalidName(t *testing.T) {
	escape := rule.NewSpec(rule.Replace{Pattern: rule.Pattern{Text: "a-"}, Replacement: "../"})

	t.Run("preview_flags_the_name", func(t *testing.T) {
		ctx := testContext(t)
		fs := new(MockFileSystem)
		e, notices := newEngine(t, fs, Options{}, escape)
		e.SetFileList(ctx, entries("/d/photos/a-b.txt"))

		res := e.ApplyRules(ctx, false)
		assert.Equal(t, []string{"../b.txt"}, fullNames(res.Entries))
		require.Equal(t, []NoticeKey{NoticeInvalidName}, keys(*notices))
		assert.ErrorIs(t, (*notices)[0].Err, file.ErrInvalidName)
		assert.Equal(t, "/d/photos/a-b.txt", (*notices)[0].Path)
	})

	t.Run("commit_refuses_to_leave_the_folder", func(t *testing.T) {
		ctx := testContext(t)
		fs := new(MockFileSystem)
		e, notices := newEngine(t, fs, Options{OnFailure: FailureContinue}, escape)
		e.SetFileList(ctx, entries("/d/photos/a-b.txt"))

		res := e.ApplyRules(ctx, true)
		assert.Equal(t, 0, res.Renamed)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, []string{"/d/photos/a-b.txt"}, paths(res.Entries))
		require.Equal(t, []NoticeKey{NoticeRenameFailed}, keys(*notices))
		assert.ErrorIs(t, (*notices)[0].Err, file.ErrInvalidName)
		fs.AssertNotCalled(t, "Rename", "/d/photos/a-b.txt", "/d/b.txt")
	})

	t.Run("rollback_reverts_earlier_renames", func(t *testing.T) {
		ctx := testContext(t)
		fs := new(MockFileSystem)
		fs.On("Rename", "/d/photos/a.txt", "/d/photos/A.txt").Return(nil).Once()
		fs.On("Rename", "/d/photos/A.txt", "/d/photos/a.txt").Return(nil).Once()

		upper := rule.NewSpec(rule.Replace{Pattern: rule.Pattern{Text: "a", CaseSensitive: true}, Replacement: "A"})
		e, notices := newEngine(t, fs, Options{}, escape, upper)
		e.SetFileList(ctx, entries("/d/photos/a.txt", "/d/photos/a-b.txt"))

		res := e.ApplyRules(ctx, true)
		assert.Equal(t, 0, res.Renamed)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, []string{"/d/photos/a.txt", "/d/photos/a-b.txt"}, paths(res.Entries))
		assert.Equal(t, []NoticeKey{NoticeRenameFailed, NoticeRolledBack}, keys(*notices))
		fs.AssertExpectations(t)
	})
}

func TestCommit_Failure(t *testing.T) {
	boom := errors.New("permission denied")

	tests := []struct {
		name       string
		policy     FailurePolicy
		setup      func(fs *MockFileSystem)
		wantPaths  []string
		wantRes    Result
		wantNotice []NoticeKey
	}{
		{
			name:   "rollback_reverts_in_reverse_order",
			policy: FailureRollback,
			setup: func(fs *MockFileSystem) {
				fs.On("Rename", "/d/a.txt", "/d/x_a.txt").Return(nil).Once()
				fs.On("Rename", "/d/b.txt", "/d/x_b.txt").Return(nil).Once()
				fs.On("Rename", "/d/c.txt", "/d/x_c.txt").Return(boom).Once()
				fs.On("Rename", "/d/x_b.txt", "/d/b.txt").Return(nil).Once()
				fs.On("Rename", "/d/x_a.txt", "/d/a.txt").Return(nil).Once()
			},
			wantPaths:  []string{"/d/a.txt", "/d/b.txt", "/d/c.txt", "/d/d.txt"},
			wantRes:    Result{Renamed: 0, Failed: 1},
			wantNotice: []NoticeKey{NoticeRenameFailed, NoticeRolledBack},
		},
		{
			name:   "rollback_failure_stays_undoable",
			policy: FailureRollback,
			setup: func(fs *MockFileSystem) {
				fs.On("Rename", "/d/a.txt", "/d/x_a.txt").Return(nil).Once()
				fs.On("Rename", "/d/b.txt", "/d/x_b.txt").Return(boom).Once()
				fs.On("Rename", "/d/x_a.txt", "/d/a.txt").Return(boom).Once()
			},
			wantPaths:  []string{"/d/x_a.txt", "/d/b.txt", "/d/c.txt", "/d/d.txt"},
			wantRes:    Result{Renamed: 1, Failed: 1, UndoAvailable: true},
			wantNotice: []NoticeKey{NoticeRenameFailed, NoticeRollbackFailed, NoticeRolledBack},
		},
		{
			name:   "continue_keeps_successful_renames",
			policy: FailureContinue,
			setup: func(fs *MockFileSystem) {
				fs.On("Rename", "/d/a.txt", "/d/x_a.txt").Return(nil).Once()
				fs.On("Rename", "/d/b.txt", "/d/x_b.txt").Return(boom).Once()
				fs.On("Rename", "/d/c.txt", "/d/x_c.txt").Return(nil).Once()
				fs.On("Rename", "/d/d.txt", "/d/x_d.txt").Return(nil).Once()
			},
			wantPaths:  []string{"/d/x_a.txt", "/d/b.txt", "/d/x_c.txt", "/d/x_d.txt"},
			wantRes:    Result{Renamed: 3, Failed: 1, UndoAvailable: true},
			wantNotice: []NoticeKey{NoticeRenameFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			fs := new(MockFileSystem)
			tt.setup(fs)

			e, notices := newEngine(t, fs, Options{OnFailure: tt.policy}, rule.NewSpec(rule.TextAtPosition{Text: "x_"}))
			e.SetFileList(ctx, entries("/d/a.txt", "/d/b.txt", "/d/c.txt", "/d/d.txt"))

			res := e.ApplyRules(ctx, true)
			assert.Equal(t, tt.wantPaths, paths(res.Entries))
			assert.Equal(t, tt.wantRes.Renamed, res.Renamed)
			assert.Equal(t, tt.wantRes.Failed, res.Failed)
			assert.Equal(t, tt.wantRes.UndoAvailable, res.UndoAvailable)
			assert.Equal(t, tt.wantNotice, keys(*notices))

			for _, n := range *notices {
				if n.Key == NoticeRenameFailed {
					assert.ErrorIs(t, n.Err, boom)
				}
			}
			fs.AssertExpectations(t)
		})
	}
}

func TestCommit_Duplicates(t *testing.T) {
	dup := rule.NewSpec(rule.Replace{Pattern: rule.Pattern{Text: `^[ab]$`, IsRegex: true}, Replacement: "x"})

	t.Run("refused_by_default", func(t *testing.T) {
		ctx := testContext(t)
		fs := new(MockFileSystem)
		e, notices := newEngine(t, fs, Options{}, dup)
		e.SetFileList(ctx, entries("/d/a.txt", "/d/c.txt", "/d/b.txt"))

		res := e.ApplyRules(ctx, true)
		assert.Equal(t, [][]int{{0, 2}}, res.Duplicates)
		assert.Equal(t, 0, res.Renamed)
		assert.Equal(t, []NoticeKey{NoticeDuplicateNames}, keys(*notices))
		assert.Equal(t, []string{"/d/a.txt", "/d/b.txt"}, (*notices)[0].Fields)
		fs.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything)
	})

	t.Run("unchecked_entries_do_not_collide", func(t *testing.T) {
		ctx := testContext(t)
		e, _ := newEngine(t, new(MockFileSystem), Options{}, dup)
		e.SetFileList(ctx, entries("/d/a.txt", "/d/c.txt", "/d/b.txt"))
		e.SetChecked(ctx, 2, false)

		res := e.ApplyRules(ctx, false)
		assert.Empty(t, res.Duplicates)
	})

	t.Run("allowed_when_configured", func(t *testing.T) {
		ctx := testContext(t)
		fs := new(MockFileSystem)
		fs.On("Rename", "/d/a.txt", "/d/x.txt").Return(nil).Once()
		fs.On("Rename", "/d/b.txt", "/d/x.txt").Return(ErrTargetExists).Once()
		fs.On("Rename", "/d/x.txt", "/d/a.txt").Return(nil).Once()

		e, notices := newEngine(t, fs, Options{AllowDuplicates: true}, dup)
		e.SetFileList(ctx, entries("/d/a.txt", "/d/b.txt"))

		res := e.ApplyRules(ctx, true)
		assert.Equal(t, 1, res.Failed)
		assert.Equal(t, []NoticeKey{NoticeDuplicateNames, NoticeRenameFailed, NoticeRolledBack}, keys(*notices))
		fs.AssertExpectations(t)
	})
}

func TestSetFileList_DropsUndo(t *testing.T) {
	ctx := testContext(t)
	fs := new(MockFileSystem)
	fs.On("Rename", "/d/a.txt", "/d/x_a.txt").Return(nil).Once()

	e, _ := newEngine(t, fs, Options{}, rule.NewSpec(rule.TextAtPosition{Text: "x_"}))
	e.SetFileList(ctx, entries("/d/a.txt"))
	require.True(t, e.ApplyRules(ctx, true).UndoAvailable)

	e.SetFileList(ctx, entries("/d/x_a.txt"))
	assert.False(t, e.UndoAvailable())
	assert.Empty(t, e.Batch(ctx))
}

func TestUndo_PartialFailureCanBeRetried(t *testing.T) {
	ctx := testContext(t)
	boom := errors.New("busy")

	fs := new(MockFileSystem)
	fs.On("Rename", "/d/a.txt", "/d/x_a.txt").Return(nil).Once()
	fs.On("Rename", "/d/b.txt", "/d/x_b.txt").Return(nil).Once()
	fs.On("Rename", "/d/x_a.txt", "/d/a.txt").Return(nil).Once()
	fs.On("Rename", "/d/x_b.txt", "/d/b.txt").Return(boom).Once()
	fs.On("Rename", "/d/x_b.txt", "/d/b.txt").Return(nil).Once()

	e, notices := newEngine(t, fs, Options{}, rule.NewSpec(rule.TextAtPosition{Text: "x_"}))
	e.SetFileList(ctx, entries("/d/a.txt", "/d/b.txt"))
	e.ApplyRules(ctx, true)

	res := e.Undo(ctx)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, res.UndoAvailable)
	assert.Equal(t, []string{"/d/a.txt", "/d/x_b.txt"}, paths(res.Entries))
	assert.Equal(t, []NoticeKey{NoticeUndoFailed}, keys(*notices))

	res = e.Undo(ctx)
	assert.Equal(t, 0, res.Failed)
	assert.False(t, res.UndoAvailable)
	assert.Equal(t, []string{"/d/a.txt", "/d/b.txt"}, paths(res.Entries))
	fs.AssertExpectations(t)
}

func TestRestoreBatch(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	renamed := touch(t, dir, "x_a.txt")

	e, _ := newEngine(t, OSFileSystem{}, Options{})
	e.SetFileList(ctx, entries(renamed...))
	require.False(t, e.UndoAvailable())

	e.RestoreBatch(ctx, []Transaction{{PreviousPath: filepath.Join(dir, "a.txt"), NewPath: renamed[0]}})
	require.True(t, e.UndoAvailable())

	res := e.Undo(ctx)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, paths(res.Entries))
	assert.FileExists(t, filepath.Join(dir, "a.txt"))
	assert.NoFileExists(t, renamed[0])
}

func TestSetChecked_OutOfRange(t *testing.T) {
	ctx := testContext(t)
	e, notices := newEngine(t, new(MockFileSystem), Options{})
	e.SetFileList(ctx, entries("/d/a.txt"))

	e.SetChecked(ctx, 3, false)
	assert.Equal(t, []NoticeKey{NoticeIndexOutOfRange}, keys(*notices))
}

func TestPhases_AreExclusive(t *testing.T) {
	ctx := testContext(t)
	e, notices := newEngine(t, new(MockFileSystem), Options{}, rule.NewSpec(rule.TextAtPosition{Text: "x_"}))
	e.SetFileList(ctx, entries("/d/a.txt"))

	// simulate a phase in progress
	require.NoError(t, e.phase.Acquire(ctx, 1))

	cctx, cancel := context.WithCancel(ctx)
	cancel()

	res := e.ApplyRules(cctx, false)
	assert.Nil(t, res.Entries)
	assert.Equal(t, []NoticeKey{NoticeEngineBusy}, keys(*notices))
	assert.ErrorIs(t, (*notices)[0].Err, context.Canceled)

	e.release()
	res = e.ApplyRules(ctx, false)
	assert.Equal(t, []string{"x_a.txt"}, fullNames(res.Entries))
}

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	files := touch(t, dir, "a.txt", "b.txt")
	fs := OSFileSystem{}

	err := fs.Rename(files[0], files[1])
	assert.ErrorIs(t, err, ErrTargetExists, "existing files are never overwritten")
	assert.FileExists(t, files[0])

	target := filepath.Join(dir, "c.txt")
	require.NoError(t, fs.Rename(files[0], target))
	assert.True(t, fs.Exists(target))
	assert.False(t, fs.Exists(files[0]))

	err = fs.Rename(files[0], filepath.Join(dir, "d.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTransaction(t *testing.T) {
	fs := new(MockFileSystem)
	fs.On("Rename", "/d/a", "/d/b").Return(nil).Once()
	fs.On("Rename", "/d/b", "/d/a").Return(nil).Once()

	tx := NewTransaction("/d/a", "/d/b")
	assert.False(t, tx.UndoAvailable())
	assert.Error(t, tx.Revert(fs), "nothing to revert yet")

	require.NoError(t, tx.Rename(fs))
	assert.True(t, tx.UndoAvailable())
	assert.Error(t, tx.Rename(fs), "renames happen once")

	require.NoError(t, tx.Revert(fs))
	assert.False(t, tx.UndoAvailable())
	fs.AssertExpectations(t)

	var empty *Batch
	assert.False(t, empty.UndoAvailable(), "an empty batch has nothing to undo")
	assert.Empty(t, empty.Transactions())
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, FailureContinue, p)

	p, err = ParseFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailureRollback, p)
	assert.Equal(t, "rollback", p.String())

	_, err = ParseFailurePolicy("retry")
	assert.Error(t, err)
}
