package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/engine"
	"github.com/pasdam/batchRegexRenamer/pkg/file"
	"github.com/pasdam/batchRegexRenamer/pkg/journal"
	"github.com/pasdam/batchRegexRenamer/pkg/listing"
	"github.com/pasdam/batchRegexRenamer/pkg/log"
	"github.com/pasdam/batchRegexRenamer/pkg/pipeline"
)

// lockTimeout bounds how long a command waits for another run on the same
// directory
var lockTimeout = 5 * time.Second

// ErrNoRules is returned when neither a script nor inline rules are set
var ErrNoRules = errors.New("no rules: pass --script or set script/rules in the config")

// session is one engine bound to one directory
type session struct {
	opts   *opts.RootOpts
	dir    string
	engine *engine.Engine
	runner *engine.Runner

	mu      sync.Mutex
	notices []engine.Notice
}

// openSession builds the pipeline and the engine for dir. Rules are only
// loaded when withRules is set; undo does not need them.
func openSession(ctx context.Context, o *opts.RootOpts, dir string, withRules bool) (*session, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}

	p := pipeline.New()
	if withRules {
		if err := loadRules(ctx, o, p); err != nil {
			return nil, err
		}
	}

	e, err := engine.New(engine.Options{
		Pipeline:        p,
		OnFailure:       o.Config.FailurePolicy(),
		AllowDuplicates: o.Config.AllowDuplicates,
	})
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}

	s := &session{
		opts:   o,
		dir:    abs,
		engine: e,
		runner: engine.NewRunner(e, o.Async),
	}
	e.Subscribe(s.onNotice)

	zerolog.Ctx(ctx).Debug().Str("dir", abs).Int("rules", p.Len()).Msg("session opened")
	return s, nil
}

// loadRules fills p from the script, then appends the inline config rules
func loadRules(ctx context.Context, o *opts.RootOpts, p *pipeline.Pipeline) error {
	if path := o.ScriptPath(); path != "" {
		if err := p.LoadScript(ctx, path); err != nil {
			return errors.Errorf("loading script: %w", err)
		}
	}

	if len(o.Config.Rules) > 0 {
		inline := pipeline.New()
		if err := inline.Load(ctx, strings.NewReader(strings.Join(o.Config.Rules, "\n"))); err != nil {
			return errors.Errorf("loading inline rules: %w", err)
		}
		for _, spec := range inline.Specs() {
			p.Add(spec)
		}
	}

	if p.Len() == 0 {
		return ErrNoRules
	}
	return nil
}

func (s *session) onNotice(n engine.Notice) {
	s.mu.Lock()
	s.notices = append(s.notices, n)
	s.mu.Unlock()
	s.opts.UserLogger.LogNotice(n)
}

// failures returns the errors of notices with key, by path
func (s *session) failures(key engine.NoticeKey) map[string]error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]error{}
	for _, n := range s.notices {
		if n.Key == key {
			out[n.Path] = n.Err
		}
	}
	return out
}

// refresh lists the directory into the engine
func (s *session) refresh(ctx context.Context, filter listing.Options) (engine.Result, error) {
	res, err := s.runner.Run(ctx, engine.Refresh{List: listing.Lister(s.dir, filter)})
	if err != nil {
		return res, err
	}
	if errs := s.failures(engine.NoticeListingFailed); len(errs) > 0 {
		return res, errors.Errorf("listing %s: %w", s.dir, errs[""])
	}
	return res, nil
}

// skip unchecks every entry whose base name matches one of patterns
func (s *session) skip(ctx context.Context, entries []file.Entry, patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid --skip pattern %q", p)
		}
	}
	for i, en := range entries {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, en.BaseName()); ok {
				s.engine.SetChecked(ctx, i, false)
				break
			}
		}
	}
	return nil
}

// lock opens the journal of the session directory
func (s *session) lock(ctx context.Context) (*journal.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	store, err := journal.Open(ctx, s.dir, s.opts.Config.Journal)
	if err != nil {
		s.opts.UserLogger.LogLockOperation(false, filepath.Join(s.dir, s.opts.Config.Journal), err)
		return nil, err
	}
	s.opts.UserLogger.LogLockOperation(true, store.Path(), nil)
	return store, nil
}

func (s *session) unlock(ctx context.Context, store *journal.Store) {
	if err := store.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", store.Path()).Msg("releasing journal lock")
		return
	}
	s.opts.UserLogger.LogLockOperation(false, store.Path(), nil)
}

// logPreview writes one console line per entry
func logPreview(ctx context.Context, console *log.Logger, res engine.Result) {
	dup := duplicateSet(res)
	for i, en := range res.Entries {
		r := log.Rename{From: en.BaseName(), To: en.FullName()}
		switch {
		case !en.Checked:
			r.Status = log.StatusSkipped
		case dup[i]:
			r.Status = log.StatusDuplicate
		case en.Changed():
			r.Status = log.StatusPreview
		default:
			r.Status = log.StatusUnchanged
		}
		console.LogRename(ctx, r)
	}
}

func duplicateSet(res engine.Result) map[int]bool {
	dup := map[int]bool{}
	for _, group := range res.Duplicates {
		for _, i := range group {
			dup[i] = true
		}
	}
	return dup
}

// pending counts the entries a commit would rename
func pending(res engine.Result) int {
	n := 0
	for _, en := range res.Entries {
		if en.Checked && en.Changed() {
			n++
		}
	}
	return n
}
