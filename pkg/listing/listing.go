// Package listing turns a directory into the entries the engine renames.
package listing

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/file"
)

// 🔍 Options filters a listing. Globs are matched against base names.
type Options struct {
	// Include keeps only names matching one of the globs; empty keeps all
	Include []string
	// Exclude drops names matching any of the globs
	Exclude []string
	// IncludeDirs lists folders too
	IncludeDirs bool
	// IncludeHidden lists dot files
	IncludeHidden bool
}

// Validate checks every glob
func (o Options) Validate() error {
	for _, p := range append(append([]string{}, o.Include...), o.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob %q", p)
		}
	}
	return nil
}

// 📂 List reads dir (not recursively) and returns its entries in name order
func List(ctx context.Context, dir string, opts Options) ([]*file.Entry, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}

	var out []*file.Entry
	for _, de := range des {
		name := de.Name()
		isDir := de.IsDir()

		if isDir && !opts.IncludeDirs {
			continue
		}
		if !opts.keep(name) {
			logger.Debug().Str("name", name).Msg("filtered out")
			continue
		}
		out = append(out, file.New(filepath.Join(dir, name), isDir))
	}

	logger.Debug().Str("dir", dir).Int("entries", len(out)).Msg("directory listed")
	return out, nil
}

func (o Options) keep(name string) bool {
	if !o.IncludeHidden && strings.HasPrefix(name, ".") {
		return false
	}
	if len(o.Include) > 0 && !matchAny(o.Include, name) {
		return false
	}
	return !matchAny(o.Exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// patterns were validated up front
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Lister binds dir and opts into a function usable as an engine refresh
func Lister(dir string, opts Options) func(ctx context.Context) ([]*file.Entry, error) {
	return func(ctx context.Context) ([]*file.Entry, error) {
		return List(ctx, dir, opts)
	}
}
