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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/engine"
	"github.com/pasdam/batchRegexRenamer/pkg/journal"
	"github.com/pasdam/batchRegexRenamer/pkg/listing"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFiles are looked up in the working directory, in order
var DefaultFiles = []string{
	".batchrename.yaml",
	".batchrename.yml",
	".batchrename.json",
	".batchrename.hcl",
	".batchrename.toml",
}

// 📚 Config represents the complete configuration
type Config struct {
	// Script is the rule script to load; relative paths start at the config file
	Script string `json:"script,omitempty" yaml:"script,omitempty" hcl:"script,optional" toml:"script,omitempty"`
	// Rules are inline script lines, run after the script
	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rules,optional" toml:"rules,omitempty"`

	Include       []string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional" toml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional" toml:"exclude,omitempty"`
	IncludeDirs   bool     `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty" hcl:"include_dirs,optional" toml:"include_dirs,omitempty"`
	IncludeHidden bool     `json:"include_hidden,omitempty" yaml:"include_hidden,omitempty" hcl:"include_hidden,optional" toml:"include_hidden,omitempty"`

	// OnFailure is "rollback" or "continue"
	OnFailure       string `json:"on_failure,omitempty" yaml:"on_failure,omitempty" hcl:"on_failure,optional" toml:"on_failure,omitempty"`
	AllowDuplicates bool   `json:"allow_duplicates,omitempty" yaml:"allow_duplicates,omitempty" hcl:"allow_duplicates,optional" toml:"allow_duplicates,omitempty"`

	// Journal is the undo journal file name inside the renamed directory
	Journal  string `json:"journal,omitempty" yaml:"journal,omitempty" hcl:"journal,optional" toml:"journal,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" hcl:"log_level,optional" toml:"log_level,omitempty"`

	location string
}

// 🏭 Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔎 Find loads path when set, else the first default file in dir, else
// the defaults
func Find(ctx context.Context, dir, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file, using defaults")
	return Default(), nil
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.OnFailure == "" {
		cfg.OnFailure = engine.FailureRollback.String()
	}
	if _, err := engine.ParseFailurePolicy(cfg.OnFailure); err != nil {
		return errors.Errorf("on_failure: %w", err)
	}

	if cfg.Journal == "" {
		cfg.Journal = journal.DefaultName
	}
	if strings.ContainsRune(cfg.Journal, filepath.Separator) {
		return errors.Errorf("journal must be a file name, got %q", cfg.Journal)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("log_level: %w", err)
	}

	if err := cfg.Listing().Validate(); err != nil {
		return errors.Errorf("include/exclude: %w", err)
	}

	return nil
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// ScriptPath resolves Script against the config file directory
func (cfg *Config) ScriptPath() string {
	if cfg.Script == "" || filepath.IsAbs(cfg.Script) || cfg.location == "" {
		return cfg.Script
	}
	return filepath.Join(filepath.Dir(cfg.location), cfg.Script)
}

// FailurePolicy returns the parsed on_failure value
func (cfg *Config) FailurePolicy() engine.FailurePolicy {
	p, _ := engine.ParseFailurePolicy(cfg.OnFailure)
	return p
}

// Level returns the parsed log_level value
func (cfg *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Listing returns the listing options. The journal and its lock file are
// always excluded.
func (cfg *Config) Listing() listing.Options {
	exclude := append([]string{}, cfg.Exclude...)
	if cfg.Journal != "" {
		exclude = append(exclude, cfg.Journal, cfg.Journal+journal.LockSuffix)
	}
	return listing.Options{
		Include:       cfg.Include,
		Exclude:       exclude,
		IncludeDirs:   cfg.IncludeDirs,
		IncludeHidden: cfg.IncludeHidden,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	script := cfg.Script
	if script == "" {
		script = "-"
	}
	return fmt.Sprintf("script=%s rules=%d on_failure=%s allow_duplicates=%t", script, len(cfg.Rules), cfg.OnFailure, cfg.AllowDuplicates)
}
