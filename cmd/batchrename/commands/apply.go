package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/engine"
	"github.com/pasdam/batchRegexRenamer/pkg/log"
)

var (
	// ErrNotConfirmed is returned when the user declines the rename
	ErrNotConfirmed = errors.New("rename not confirmed")
	// ErrDuplicateNames is returned when a commit would give two files one name
	ErrDuplicateNames = errors.New("duplicate target names, set allow_duplicates to rename anyway")
)

// NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	var skip []string

	cmd := &cobra.Command{
		Use:   "apply DIR",
		Short: "Rename the files of DIR and record the batch for undo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), o, args[0], skip)
		},
	}

	cmd.Flags().StringSliceVar(&skip, "skip", nil, "leave files matching these globs untouched")
	return cmd
}

func runApply(ctx context.Context, o *opts.RootOpts, dir string, skip []string) error {
	s, err := openSession(ctx, o, dir, true)
	if err != nil {
		return err
	}

	store, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer s.unlock(ctx, store)

	listed, err := s.refresh(ctx, o.Config.Listing())
	if err != nil {
		return err
	}
	if err := s.skip(ctx, listed.Entries, skip); err != nil {
		return err
	}

	preview, err := s.runner.Run(ctx, engine.Preview{})
	if err != nil {
		return err
	}

	o.Console.Header("apply")
	o.Console.Directory(s.dir)
	logPreview(ctx, o.Console, preview)
	o.Console.LogNewline()

	n := pending(preview)
	if n == 0 {
		o.UserLogger.LogSummary(preview, false)
		return nil
	}
	if len(preview.Duplicates) > 0 && !o.Config.AllowDuplicates {
		o.UserLogger.LogSummary(preview, false)
		return ErrDuplicateNames
	}

	if !o.Yes {
		if err := confirm(o, fmt.Sprintf("Rename %d files?", n)); err != nil {
			return err
		}
	}

	res, err := s.runner.Run(ctx, engine.Commit{})
	if err != nil {
		return err
	}
	// renames are on disk now; journal them even when the run was interrupted
	ctx = context.WithoutCancel(ctx)

	logCommit(ctx, o.Console, preview, res, s.failures(engine.NoticeRenameFailed), o.Config.FailurePolicy() == engine.FailureRollback)
	o.Console.LogNewline()

	if res.UndoAvailable {
		if err := store.Write(ctx, s.engine.Batch(ctx)); err != nil {
			return errors.Errorf("recording undo journal: %w", err)
		}
	}

	o.UserLogger.LogSummary(res, true)
	if res.Failed > 0 {
		return errors.Errorf("%d of %d renames failed", res.Failed, n)
	}
	return nil
}

// confirm asks a yes/no question on o.In
func confirm(o *opts.RootOpts, question string) error {
	if !o.Interactive {
		return errors.Errorf("%w: pass --yes when not running in a terminal", ErrNotConfirmed)
	}

	fmt.Fprintf(o.Out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(o.In).ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		return ErrNotConfirmed
	}
	return nil
}

// logCommit writes one console line per entry the commit touched. before is
// the preview of the same pass, so indexes line up.
func logCommit(ctx context.Context, console *log.Logger, before, after engine.Result, failed map[string]error, rollback bool) {
	seenFailure := false
	for i, en := range before.Entries {
		if !en.Checked || !en.Changed() || i >= len(after.Entries) {
			continue
		}

		r := log.Rename{From: en.BaseName(), To: en.FullName()}
		if err, ok := failed[en.Path()]; ok {
			r.Status = log.StatusFailed
			r.Err = err
			seenFailure = true
		} else {
			switch {
			case after.Entries[i].Path() == en.TargetPath():
				r.Status = log.StatusRenamed
			case rollback && after.Failed > 0 && !seenFailure:
				// renamed before the failure, then rolled back
				r.Status = log.StatusReverted
			default:
				r.Status = log.StatusSkipped
			}
		}
		console.LogRename(ctx, r)
	}
}
