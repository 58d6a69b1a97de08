package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_TrailingDot(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		edit     func(e *Entry)
		wantFull string
		changed  bool
	}{
		{name: "untouched", base: "weird.", edit: func(*Entry) {}, wantFull: "weird.", changed: false},
		{name: "double_dot", base: "a..", edit: func(*Entry) {}, wantFull: "a..", changed: false},
		{name: "renamed_keeps_dot", base: "weird.", edit: func(e *Entry) { e.Name = "odd" }, wantFull: "odd.", changed: true},
		{name: "new_extension", base: "weird.", edit: func(e *Entry) { e.Extension = "txt" }, wantFull: "weird.txt", changed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(filepath.Join("/d", tt.base), false)
			tt.edit(e)
			assert.Equal(t, tt.wantFull, e.FullName())
			assert.Equal(t, tt.changed, e.Changed())
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain", value: "b.txt"},
		{name: "dots_inside", value: "a..b"},
		{name: "empty", value: "", wantErr: true},
		{name: "dot", value: ".", wantErr: true},
		{name: "dot_dot", value: "..", wantErr: true},
		{name: "parent", value: "../b.txt", wantErr: true},
		{name: "subfolder", value: "sub/b.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		wantName string
		wantExt  string
	}{
		{name: "simple", base: "photo.jpg", wantName: "photo", wantExt: "jpg"},
		{name: "last_dot_wins", base: "archive.tar.gz", wantName: "archive.tar", wantExt: "gz"},
		{name: "no_dot", base: "README", wantName: "README", wantExt: ""},
		{name: "leading_dot", base: ".bashrc", wantName: "", wantExt: "bashrc"},
		{name: "trailing_dot", base: "weird.", wantName: "weird", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ext := Split(tt.base)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestEntry(t *testing.T) {
	dir := t.TempDir()

	e := New(filepath.Join(dir, "MixedCase.TXT"), false)
	assert.Equal(t, "MixedCase", e.Name)
	assert.Equal(t, "TXT", e.Extension)
	assert.True(t, e.Checked, "entries start checked")
	assert.False(t, e.Changed())

	e.Name = "other"
	assert.Equal(t, "other.TXT", e.FullName())
	assert.Equal(t, filepath.Join(dir, "other.TXT"), e.TargetPath())
	assert.True(t, e.Changed())

	e.Reset()
	assert.Equal(t, "MixedCase", e.Name, "reset restores the on-disk split")

	e.Checked = false
	moved := e.Moved(filepath.Join(dir, "b.txt"))
	assert.Equal(t, "b", moved.Name)
	assert.False(t, moved.Checked, "checked flag survives a move")
}

func TestEntry_Dir(t *testing.T) {
	e := New("/tmp/some.folder", true)
	assert.Equal(t, "some.folder", e.Name, "folders keep their dots")
	assert.Empty(t, e.Extension)
	assert.Equal(t, "some.folder", e.FullName())
}
