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

package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/atomicfile"
	"github.com/pasdam/batchRegexRenamer/pkg/rule"
)

// ScriptError reports the first line of a script that could not be loaded
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("reading script: %v", e.Err)
	}
	return fmt.Sprintf("script line %d: %v", e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// 📜 Load replaces the pipeline with the rules read from r, one per line.
// Any bad line rejects the whole script and leaves the pipeline untouched.
func (p *Pipeline) Load(ctx context.Context, r io.Reader) error {
	specs, err := parseScript(r)
	if err != nil {
		return err
	}

	p.replace(specs)

	zerolog.Ctx(ctx).Debug().Int("rules", len(specs)).Msg("script loaded")
	return nil
}

func parseScript(r io.Reader) ([]*rule.Spec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var specs []*rule.Spec
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return specs, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &ScriptError{Line: perr.Line, Err: perr.Err}
			}
			return nil, &ScriptError{Err: err}
		}

		line, _ := cr.FieldPos(0)

		s, err := rule.Decode(record)
		if err != nil {
			return nil, &ScriptError{Line: line, Err: err}
		}
		specs = append(specs, s)
	}
}

// 💾 Save writes every serializable rule to w in pipeline order
func (p *Pipeline) Save(ctx context.Context, w io.Writer) error {
	logger := zerolog.Ctx(ctx)

	cw := csv.NewWriter(w)
	for i, s := range p.specs {
		if !s.Kind().Serializable() {
			logger.Warn().Int("index", i).Str("kind", s.Kind().String()).Msg("rule kind cannot be saved, skipping")
			continue
		}
		if err := cw.Write(rule.Encode(s)); err != nil {
			return errors.Errorf("writing rule %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Errorf("flushing script: %w", err)
	}
	return nil
}

// LoadScript loads the script file at path
func (p *Pipeline) LoadScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening script: %w", err)
	}
	defer f.Close()

	if err := p.Load(ctx, f); err != nil {
		return errors.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// SaveScript writes the pipeline to path through a temp file
func (p *Pipeline) SaveScript(ctx context.Context, path string) error {
	var buf bytes.Buffer
	if err := p.Save(ctx, &buf); err != nil {
		return err
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0); err != nil {
		return errors.Errorf("saving %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("rules", len(p.specs)).Msg("script saved")
	return nil
}
