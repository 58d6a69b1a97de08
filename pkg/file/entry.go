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

// Package file holds the value object the rename engine works on: one file
// or folder on disk plus the working name/extension rules accumulate into.
package file

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 Entry is one file (or folder) of a batch
type Entry struct {
	path  string // on-disk identity, never changes for the lifetime of the entry
	isDir bool
	// dotted is set when the base name ends in a dot, which Split drops
	dotted bool

	// Name is the working name (without extension) for the current pass
	Name string
	// Extension is the working extension (without the dot) for the current pass
	Extension string
	// Checked marks whether rules are applied to this entry
	Checked bool
}

// 🏭 New creates an entry for path with its working fields split from the base name
func New(path string, isDir bool) *Entry {
	e := &Entry{
		path:    filepath.Clean(path),
		isDir:   isDir,
		Checked: true,
	}
	e.Reset()
	return e
}

// Path returns the on-disk path of the entry
func (e *Entry) Path() string {
	return e.path
}

// IsDir reports whether the entry is a folder
func (e *Entry) IsDir() bool {
	return e.isDir
}

// Dir returns the parent directory of the entry
func (e *Entry) Dir() string {
	return filepath.Dir(e.path)
}

// BaseName returns the on-disk file name
func (e *Entry) BaseName() string {
	return filepath.Base(e.path)
}

// 🔄 Reset restores the working name and extension from the on-disk name
func (e *Entry) Reset() {
	if e.isDir {
		e.Name, e.Extension = e.BaseName(), ""
		return
	}
	base := e.BaseName()
	e.Name, e.Extension = Split(base)
	e.dotted = strings.HasSuffix(base, ".")
}

// FullName joins the working name and extension. A trailing dot of the
// on-disk name is kept while the extension stays empty.
func (e *Entry) FullName() string {
	if e.dotted && e.Extension == "" {
		return e.Name + "."
	}
	return Join(e.Name, e.Extension)
}

// TargetPath is where the entry would live once renamed to its working name
func (e *Entry) TargetPath() string {
	return filepath.Join(e.Dir(), e.FullName())
}

// Changed reports whether the working name differs from the on-disk name
func (e *Entry) Changed() bool {
	return e.FullName() != e.BaseName()
}

// ValidateName checks that the working name stays a single path element
// inside the entry's folder
func (e *Entry) ValidateName() error {
	return ValidateName(e.FullName())
}

// Moved returns a fresh entry for path keeping the checked flag
func (e *Entry) Moved(path string) *Entry {
	n := New(path, e.isDir)
	n.Checked = e.Checked
	return n
}

// ErrInvalidName is returned for names that would leave the entry's folder
var ErrInvalidName = errors.New("invalid file name")

// ValidateName rejects empty names, "." and "..", and names holding a path
// separator
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, filepath.Separator), strings.ContainsRune(name, '/'):
		return errors.Errorf("%w: %q holds a path separator", ErrInvalidName, name)
	}
	return nil
}

// ✂️ Split separates a file name on its last dot. The extension is empty
// when the name has no dot.
func Split(base string) (name, ext string) {
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return base, ""
	}
	return base[:i], base[i+1:]
}

// Join is the inverse of Split
func Join(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}
