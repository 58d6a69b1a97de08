package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/engine"
	"github.com/pasdam/batchRegexRenamer/pkg/journal"
	"github.com/pasdam/batchRegexRenamer/pkg/log"
)

// NewUndoCmd creates the undo command
func NewUndoCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "undo DIR",
		Short: "Revert the last apply on DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(cmd.Context(), o, args[0])
		},
	}
}

func runUndo(ctx context.Context, o *opts.RootOpts, dir string) error {
	s, err := openSession(ctx, o, dir, false)
	if err != nil {
		return err
	}

	store, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer s.unlock(ctx, store)

	j, err := store.Read(ctx)
	if errors.Is(err, journal.ErrNoJournal) {
		o.UserLogger.LogNotice(engine.Notice{Key: engine.NoticeUndoUnavailable})
		return nil
	}
	if err != nil {
		return err
	}

	// renamed files may no longer match the include globs
	listOpts := o.Config.Listing()
	listOpts.Include = nil
	if _, err := s.refresh(ctx, listOpts); err != nil {
		return err
	}

	s.engine.RestoreBatch(ctx, j.Transactions)

	res, err := s.runner.Run(ctx, engine.Undo{})
	if err != nil {
		return err
	}
	// renames are on disk now; journal them even when the run was interrupted
	ctx = context.WithoutCancel(ctx)

	o.Console.Header("undo")
	o.Console.Directory(s.dir)
	failed := s.failures(engine.NoticeUndoFailed)
	for _, tx := range j.Transactions {
		r := log.Rename{
			From:   filepath.Base(tx.NewPath),
			To:     filepath.Base(tx.PreviousPath),
			Status: log.StatusReverted,
		}
		if err, ok := failed[tx.NewPath]; ok {
			r.Status = log.StatusFailed
			r.Err = err
		}
		o.Console.LogRename(ctx, r)
	}
	o.Console.LogNewline()

	if res.UndoAvailable {
		// keep what could not be reverted so undo can be retried
		if err := store.Write(ctx, s.engine.Batch(ctx)); err != nil {
			return errors.Errorf("recording undo journal: %w", err)
		}
	} else if err := store.Remove(ctx); err != nil {
		return errors.Errorf("removing undo journal: %w", err)
	}

	o.UserLogger.LogSummary(res, true)
	if res.Failed > 0 {
		return errors.Errorf("%d of %d reverts failed", res.Failed, len(j.Transactions))
	}
	return nil
}
