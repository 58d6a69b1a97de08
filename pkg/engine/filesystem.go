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
	"os"

	"gitlab.com/tozd/go/errors"
)

// ErrTargetExists is returned when a rename would replace another file
var ErrTargetExists = errors.New("target already exists")

// 💾 FileSystem is the only way the engine touches the disk
type FileSystem interface {
	// Rename moves oldPath to newPath
	Rename(oldPath, newPath string) error
	// Exists reports whether path exists
	Exists(path string) bool
}

// OSFileSystem renames on the local disk and never overwrites
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// Rename refuses to replace an existing file unless it is the same file
// under another case (case-insensitive filesystems)
func (OSFileSystem) Rename(oldPath, newPath string) error {
	if dst, err := os.Lstat(newPath); err == nil {
		src, err := os.Lstat(oldPath)
		if err != nil {
			return errors.Errorf("stat %s: %w", oldPath, err)
		}
		if !os.SameFile(src, dst) {
			return errors.Errorf("renaming %s: %w: %s", oldPath, ErrTargetExists, newPath)
		}
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return errors.Errorf("renaming %s: %w", oldPath, err)
	}
	return nil
}

// Exists reports whether path exists
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
