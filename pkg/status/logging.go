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

package status

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/pasdam/batchRegexRenamer/pkg/engine"
)

// 📢 UserLogger provides user-friendly feedback about passes and notices
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📣 LogNotice tells the user about one engine notice
func (u *UserLogger) LogNotice(n engine.Notice) {
	name := filepath.Base(n.Path)

	var msg string
	printer := u.printer(pterm.Error, "❌")

	switch n.Key {
	case engine.NoticeInvalidRule:
		printer = u.printer(pterm.Warning, "⚠️")
		msg = fmt.Sprintf("Skipping %s rule, invalid %s", n.Path, strings.Join(n.Fields, ", "))
	case engine.NoticeRenameFailed:
		msg = fmt.Sprintf("Could not rename %s", name)
	case engine.NoticeRollbackFailed:
		msg = fmt.Sprintf("Could not restore %s", name)
	case engine.NoticeRolledBack:
		printer = u.printer(pterm.Warning, "⟲")
		msg = "Rolled back the commit"
	case engine.NoticeUndoFailed:
		msg = fmt.Sprintf("Could not undo %s", name)
	case engine.NoticeUndoUnavailable:
		printer = u.printer(pterm.Warning, "⚠️")
		msg = "Nothing to undo"
	case engine.NoticeDuplicateNames:
		printer = u.printer(pterm.Warning, "👯")
		msg = fmt.Sprintf("%d files would be named %s", len(n.Fields), name)
	case engine.NoticeInvalidName:
		printer = u.printer(pterm.Warning, "⚠️")
		msg = fmt.Sprintf("Cannot rename %s", name)
	case engine.NoticeIndexOutOfRange:
		msg = "No such file"
	case engine.NoticeEngineBusy:
		msg = "Another operation is still running"
	case engine.NoticeListingFailed:
		msg = "Could not list the directory"
	default:
		msg = string(n.Key)
	}

	if n.Err != nil {
		msg += ": " + n.Err.Error()
		u.log.Debug().Err(n.Err).Str("key", string(n.Key)).Str("path", n.Path).Msg("notice")
	} else {
		u.log.Debug().Str("key", string(n.Key)).Str("path", n.Path).Msg("notice")
	}
	printer.Println(msg)
}

// 📊 LogSummary prints the outcome of a pass
func (u *UserLogger) LogSummary(res engine.Result, commit bool) {
	changed := 0
	for _, e := range res.Entries {
		if e.Checked && e.Changed() {
			changed++
		}
	}

	switch {
	case !commit:
		u.printer(pterm.Info, "📋").Printf("%d of %d files would be renamed\n", changed, len(res.Entries))
	case res.Failed > 0:
		u.printer(pterm.Error, "❌").Printf("%d renamed, %d failed\n", res.Renamed, res.Failed)
	default:
		u.printer(pterm.Success, "✅").Printf("%d files renamed\n", res.Renamed)
	}

	if len(res.Duplicates) > 0 {
		u.printer(pterm.Warning, "⚠️").Printf("%d groups of duplicate names\n", len(res.Duplicates))
	}
	if res.UndoAvailable {
		u.printer(pterm.Info, "↩️").Println("Run undo to revert")
	}

	u.log.Info().
		Bool("commit", commit).
		Int("entries", len(res.Entries)).
		Int("renamed", res.Renamed).
		Int("failed", res.Failed).
		Int("duplicates", len(res.Duplicates)).
		Msg("pass finished")
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description + ": " + err.Error())
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

// 🔒 LogLockOperation logs journal locking
func (u *UserLogger) LogLockOperation(acquired bool, path string, err error) {
	switch {
	case acquired:
		u.log.Debug().Msgf("Acquired lock on %s", path)
	case err != nil:
		u.printer(pterm.Error, "🔓").Printf("Failed to acquire lock on %s: %v\n", path, err)
		u.log.Error().Err(err).Msgf("Failed to acquire lock on %s", path)
	default:
		u.log.Debug().Msgf("Released lock on %s", path)
	}
}
