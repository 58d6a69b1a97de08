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

// Package journal keeps the last committed batch on disk so it can be undone
// by a later run.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/atomicfile"
	"github.com/pasdam/batchRegexRenamer/pkg/engine"
)

const (
	// DefaultName is the journal file name inside the renamed directory
	DefaultName = ".batchrename.journal.json"

	// LockSuffix is appended to the journal path for its lock file
	LockSuffix = ".lock"

	version      = 1
	pollInterval = 10 * time.Millisecond
)

var (
	// ErrNoJournal is returned when there is nothing to undo
	ErrNoJournal = errors.New("no journal found")
	// ErrLocked is returned when another run holds the journal
	ErrLocked = errors.New("journal is locked by another run")
)

// 📓 Journal is the on-disk record of one commit
type Journal struct {
	Version      int                  `json:"version"`
	Created      time.Time            `json:"created"`
	Transactions []engine.Transaction `json:"transactions"`
}

// 🔒 Store owns the journal of one directory while its lock is held
type Store struct {
	path string
	lock *flock.Flock
}

// Open locks the journal at dir/name, waiting until ctx ends
func Open(ctx context.Context, dir, name string) (*Store, error) {
	if name == "" {
		name = DefaultName
	}
	path := filepath.Join(dir, name)

	lock := flock.New(path + LockSuffix)
	locked, err := lock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, errors.Errorf("%w: %s", ErrLocked, path)
		}
		return nil, errors.Errorf("locking journal %s: %w", path, err)
	}
	if !locked {
		return nil, errors.Errorf("%w: %s", ErrLocked, path)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("journal locked")
	return &Store{path: path, lock: lock}, nil
}

// Path returns the journal file path
func (s *Store) Path() string {
	return s.path
}

// 💾 Write records txs, replacing any previous journal
func (s *Store) Write(ctx context.Context, txs []engine.Transaction) error {
	j := Journal{
		Version:      version,
		Created:      time.Now().UTC(),
		Transactions: txs,
	}

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return errors.Errorf("encoding journal: %w", err)
	}

	if err := atomicfile.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Errorf("writing journal: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("transactions", len(txs)).Msg("journal written")
	return nil
}

// 📖 Read loads the journal, ErrNoJournal when there is none
func (s *Store) Read(ctx context.Context) (*Journal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoJournal
		}
		return nil, errors.Errorf("reading journal: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoJournal
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.Errorf("decoding journal %s: %w", s.path, err)
	}
	if j.Version != version {
		return nil, errors.Errorf("unsupported journal version %d", j.Version)
	}
	if len(j.Transactions) == 0 {
		return nil, ErrNoJournal
	}

	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("transactions", len(j.Transactions)).Msg("journal read")
	return &j, nil
}

// Remove deletes the journal; a missing journal is not an error
func (s *Store) Remove(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("removing journal: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("journal removed")
	return nil
}

// Close releases the lock. The lock file stays on disk: removing it would
// let a waiter hold a lock on an unlinked inode.
func (s *Store) Close() error {
	if err := s.lock.Unlock(); err != nil {
		return errors.Errorf("unlocking journal: %w", err)
	}
	return nil
}
