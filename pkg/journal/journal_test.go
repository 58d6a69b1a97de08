package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasdam/batchRegexRenamer/pkg/engine"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestStore_WriteReadRemove(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	s, err := Open(ctx, dir, "")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, filepath.Join(dir, DefaultName), s.Path())

	_, err = s.Read(ctx)
	assert.ErrorIs(t, err, ErrNoJournal)

	txs := []engine.Transaction{
		{PreviousPath: filepath.Join(dir, "a.txt"), NewPath: filepath.Join(dir, "x_a.txt")},
		{PreviousPath: filepath.Join(dir, "b.txt"), NewPath: filepath.Join(dir, "x_b.txt")},
	}
	require.NoError(t, s.Write(ctx, txs))

	j, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, j.Version)
	assert.WithinDuration(t, time.Now(), j.Created, time.Minute)
	require.Len(t, j.Transactions, 2)
	assert.Equal(t, txs[1].PreviousPath, j.Transactions[1].PreviousPath)
	assert.Equal(t, txs[1].NewPath, j.Transactions[1].NewPath)

	require.NoError(t, s.Remove(ctx))
	require.NoError(t, s.Remove(ctx), "removing twice is fine")
	_, err = s.Read(ctx)
	assert.ErrorIs(t, err, ErrNoJournal)
}

func TestStore_Lock(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	first, err := Open(ctx, dir, "j.json")
	require.NoError(t, err)

	tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = Open(tctx, dir, "j.json")
	assert.ErrorIs(t, err, ErrLocked, "a second run waits and gives up")

	require.NoError(t, first.Close())
	assert.FileExists(t, filepath.Join(dir, "j.json"+LockSuffix), "lock file outlives the lock")

	second, err := Open(ctx, dir, "j.json")
	require.NoError(t, err, "the kept lock file can be locked again")

	tctx2, cancel2 := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel2()
	_, err = Open(tctx2, dir, "j.json")
	assert.ErrorIs(t, err, ErrLocked, "reopening the same lock file still excludes others")
	require.NoError(t, second.Close())
}

func TestStore_ReadRejectsBadJournal(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	s, err := Open(ctx, dir, "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version": 7, "transactions": [{"previous":"a","new":"b"}]}`), 0o644))
	_, err = s.Read(ctx)
	assert.ErrorContains(t, err, "unsupported journal version")

	require.NoError(t, os.WriteFile(s.Path(), []byte(`{`), 0o644))
	_, err = s.Read(ctx)
	assert.ErrorContains(t, err, "decoding journal")

	require.NoError(t, os.WriteFile(s.Path(), []byte("\n"), 0o644))
	_, err = s.Read(ctx)
	assert.ErrorIs(t, err, ErrNoJournal, "an empty journal has nothing to undo")
}
