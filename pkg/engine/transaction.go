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
	"gitlab.com/tozd/go/errors"
)

// 🔁 Transaction is one physical rename together with its undo record
type Transaction struct {
	PreviousPath string `json:"previous"`
	NewPath      string `json:"new"`

	renamed bool
}

// NewTransaction records a pending rename from previous to next
func NewTransaction(previous, next string) *Transaction {
	return &Transaction{PreviousPath: previous, NewPath: next}
}

// Rename performs the rename. A transaction renames at most once.
func (t *Transaction) Rename(fs FileSystem) error {
	if t.renamed {
		return errors.Errorf("%s already renamed", t.PreviousPath)
	}
	if err := fs.Rename(t.PreviousPath, t.NewPath); err != nil {
		return err
	}
	t.renamed = true
	return nil
}

// Revert moves the file back to PreviousPath
func (t *Transaction) Revert(fs FileSystem) error {
	if !t.renamed {
		return errors.Errorf("%s was never renamed", t.PreviousPath)
	}
	if err := fs.Rename(t.NewPath, t.PreviousPath); err != nil {
		return err
	}
	t.renamed = false
	return nil
}

// UndoAvailable reports whether the rename happened and was not reverted
func (t *Transaction) UndoAvailable() bool {
	return t.renamed
}

// step ties a transaction to the entry it renamed
type step struct {
	index int
	tx    *Transaction
}

// 📦 Batch holds the transactions of the last commit, in commit order
type Batch struct {
	steps []step
}

func (b *Batch) add(index int, tx *Transaction) {
	b.steps = append(b.steps, step{index: index, tx: tx})
}

// Len returns the number of transactions
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.steps)
}

// UndoAvailable is true iff the batch is not empty and every transaction
// still has its rename in place
func (b *Batch) UndoAvailable() bool {
	if b.Len() == 0 {
		return false
	}
	for _, s := range b.steps {
		if !s.tx.UndoAvailable() {
			return false
		}
	}
	return true
}

// Transactions returns copies of the recorded transactions
func (b *Batch) Transactions() []Transaction {
	out := make([]Transaction, 0, b.Len())
	if b == nil {
		return out
	}
	for _, s := range b.steps {
		out = append(out, *s.tx)
	}
	return out
}
