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

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/repairrc/pkg/migration"
	"github.com/walteh/repairrc/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// ErrNoParser is returned when no registered parser handles a file name.
var ErrNoParser = errors.New("no parser found")

// DefaultFiles are the names LoadOrDefault looks for, in order.
var DefaultFiles = []string{".repairrc.hcl", ".repairrc.yaml", ".repairrc.yml", ".repairrc.json"}

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

// 🏷️ Role names a group of files so rules can be scoped to it
type Role struct {
	Name  string   `json:"name" yaml:"name" hcl:"name,label"`
	Globs []string `json:"globs" yaml:"globs" hcl:"globs"`
}

// 📏 RuleDef is a user defined rule
type RuleDef struct {
	ID          string   `json:"id" yaml:"id" hcl:"id,label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Pattern     string   `json:"pattern,omitempty" yaml:"pattern,omitempty" hcl:"pattern,optional"` // RE2 regular expression
	Literal     string   `json:"literal,omitempty" yaml:"literal,omitempty" hcl:"literal,optional"` // Matched verbatim
	Replace     string   `json:"replace" yaml:"replace" hcl:"replace,optional"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty" hcl:"files,optional"` // Base names
	Globs       []string `json:"globs,omitempty" yaml:"globs,omitempty" hcl:"globs,optional"` // Root relative doublestar globs
	Roles       []string `json:"roles,omitempty" yaml:"roles,omitempty" hcl:"roles,optional"`
	Once        bool     `json:"once,omitempty" yaml:"once,omitempty" hcl:"once,optional"`
}

// 📦 PassDef is a user defined pass, appended after the built-in passes
type PassDef struct {
	Name        string    `json:"name" yaml:"name" hcl:"name,label"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Rules       []RuleDef `json:"rules" yaml:"rules" hcl:"rule,block"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root       string    `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Extensions []string  `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`
	Ignore     []string  `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Passes     []string  `json:"passes,omitempty" yaml:"passes,omitempty" hcl:"passes,optional"` // Built-in passes to run, all when empty
	Jobs       int       `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`
	Converge   int       `json:"converge,omitempty" yaml:"converge,omitempty" hcl:"converge,optional"`
	Roles      []Role    `json:"roles,omitempty" yaml:"roles,omitempty" hcl:"role,block"`
	Custom     []PassDef `json:"custom_passes,omitempty" yaml:"custom_passes,omitempty" hcl:"pass,block"`
}

// 🏭 Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

func (cfg *Config) setDefaults() {
	if cfg.Root == "" {
		cfg.Root = "lib"
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".dart"}
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = 1
	}
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
		return nil, errors.Errorf("%w: %s", ErrNoParser, path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 LoadOrDefault loads path, or the first of DefaultFiles found in dir when
// path is empty. Without any file the defaults are returned.
func LoadOrDefault(ctx context.Context, dir, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return Load(ctx, candidate)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file found, using defaults")
	return Default(), nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	if cfg.Converge < 0 {
		return errors.Errorf("converge must not be negative, got %d", cfg.Converge)
	}

	cfg.setDefaults()
	cfg.Root = filepath.Clean(cfg.Root)

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.Errorf("extension %q must start with a dot", ext)
		}
	}

	builtin := migration.Builtin()
	for _, name := range cfg.Passes {
		if _, ok := builtin.Lookup(name); !ok {
			return errors.Errorf("%w: %s", rule.ErrUnknownPass, name)
		}
	}

	for _, g := range cfg.Ignore {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid ignore glob %q", g)
		}
	}

	roles := make(map[string]bool, len(cfg.Roles))
	for _, r := range cfg.Roles {
		if r.Name == "" {
			return errors.Errorf("role name is required")
		}
		if roles[r.Name] {
			return errors.Errorf("duplicate role %q", r.Name)
		}
		roles[r.Name] = true
		for _, g := range r.Globs {
			if !doublestar.ValidatePattern(g) {
				return errors.Errorf("role %s: invalid glob %q", r.Name, g)
			}
		}
	}

	for _, p := range cfg.Custom {
		for _, rd := range p.Rules {
			for _, name := range rd.Roles {
				if !roles[name] {
					return errors.Errorf("pass %s: rule %s: unknown role %q", p.Name, rd.ID, name)
				}
			}
		}
		if _, err := p.Pass(); err != nil {
			return err
		}
	}

	return nil
}

// 🗺️ RoleMap returns the declared roles for scope resolution
func (cfg *Config) RoleMap() rule.RoleMap {
	m := make(rule.RoleMap, len(cfg.Roles))
	for _, r := range cfg.Roles {
		m[r.Name] = append(m[r.Name], r.Globs...)
	}
	return m
}

// 🔗 Pipeline selects the configured passes from builtin, in builtin order,
// and appends the custom passes.
func (cfg *Config) Pipeline(builtin rule.Pipeline) (rule.Pipeline, error) {
	selected, err := builtin.Select(cfg.Passes...)
	if err != nil {
		return nil, errors.Errorf("selecting passes: %w", err)
	}

	pl := append(rule.Pipeline(nil), selected...)
	for _, def := range cfg.Custom {
		p, err := def.Pass()
		if err != nil {
			return nil, err
		}
		pl = append(pl, p)
	}

	if err := pl.Validate(); err != nil {
		return nil, errors.Errorf("validating pipeline: %w", err)
	}
	return pl, nil
}

// 🏗️ Pass builds the pass the definition describes
func (def PassDef) Pass() (*rule.Pass, error) {
	if def.Name == "" {
		return nil, errors.Errorf("pass name is required")
	}

	p := &rule.Pass{Name: def.Name, Description: def.Description}
	for _, rd := range def.Rules {
		r, err := rd.Rule()
		if err != nil {
			return nil, errors.Errorf("pass %s: %w", def.Name, err)
		}
		p.Rules = append(p.Rules, r)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// 🏗️ Rule builds the rule the definition describes. A rule with several
// scope kinds applies to files matching any of them.
func (rd RuleDef) Rule() (*rule.Rule, error) {
	switch {
	case rd.Pattern != "" && rd.Literal != "":
		return nil, errors.Errorf("rule %s: pattern and literal are mutually exclusive", rd.ID)
	case rd.Pattern == "" && rd.Literal == "":
		return nil, errors.Errorf("rule %s: one of pattern or literal is required", rd.ID)
	}

	for _, g := range rd.Globs {
		if !doublestar.ValidatePattern(g) {
			return nil, errors.Errorf("rule %s: invalid glob %q", rd.ID, g)
		}
	}

	var (
		r   *rule.Rule
		err error
	)
	if rd.Literal != "" {
		r, err = rule.Compile(rd.ID, rd.Literal, rd.Replace, true)
	} else {
		r, err = rule.Compile(rd.ID, rd.Pattern, rd.Replace, false)
	}
	if err != nil {
		return nil, err
	}

	var scopes []rule.Scope
	if len(rd.Files) > 0 {
		scopes = append(scopes, rule.Named(rd.Files...))
	}
	if len(rd.Globs) > 0 {
		scopes = append(scopes, rule.Glob(rd.Globs...))
	}
	if len(rd.Roles) > 0 {
		scopes = append(scopes, rule.Role(rd.Roles...))
	}
	switch len(scopes) {
	case 0:
	case 1:
		r = r.In(scopes[0])
	default:
		r = r.In(rule.AnyOf(scopes...))
	}

	if rd.Description != "" {
		r = r.Describe(rd.Description)
	}
	if rd.Once {
		r = r.Once()
	}
	return r, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	passes := "all"
	if len(cfg.Passes) > 0 {
		passes = strings.Join(cfg.Passes, ",")
	}
	return fmt.Sprintf("%s [%s] passes=%s custom=%d jobs=%d converge=%d",
		cfg.Root, strings.Join(cfg.Extensions, ","), passes, len(cfg.Custom), cfg.Jobs, cfg.Converge)
}
