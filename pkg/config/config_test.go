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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/repairrc/pkg/migration"
	"github.com/walteh/repairrc/pkg/rule"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const hclConfig = `
root       = "app/lib"
extensions = [".dart"]
ignore     = ["**/*.g.dart"]
passes     = ["restore-ui-text", "repair-comments"]
jobs       = 4
converge   = 3

role "views" {
  globs = ["views/**"]
}

pass "local-fixes" {
  description = "project specific"

  rule "drop-foo" {
    pattern = "foo\\(\\)"
    replace = "bar()"
    roles   = ["views"]
  }

  rule "first-a" {
    literal = "a"
    replace = "b"
    files   = ["home_screen.dart"]
    once    = true
  }
}
`

const yamlConfig = `
root: app/lib
extensions: [".dart"]
ignore: ["**/*.g.dart"]
passes: [restore-ui-text, repair-comments]
jobs: 4
converge: 3
roles:
  - name: views
    globs: ["views/**"]
custom_passes:
  - name: local-fixes
    description: project specific
    rules:
      - id: drop-foo
        pattern: 'foo\(\)'
        replace: bar()
        roles: [views]
      - id: first-a
        literal: a
        replace: b
        files: [home_screen.dart]
        once: true
`

const jsonConfig = `{
  "root": "app/lib",
  "extensions": [".dart"],
  "ignore": ["**/*.g.dart"],
  "passes": ["restore-ui-text", "repair-comments"],
  "jobs": 4,
  "converge": 3,
  "roles": [{"name": "views", "globs": ["views/**"]}],
  "custom_passes": [{
    "name": "local-fixes",
    "description": "project specific",
    "rules": [
      {"id": "drop-foo", "pattern": "foo\\(\\)", "replace": "bar()", "roles": ["views"]},
      {"id": "first-a", "literal": "a", "replace": "b", "files": ["home_screen.dart"], "once": true}
    ]
  }]
}`

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		config string
	}{
		{name: "hcl", file: ".repairrc.hcl", config: hclConfig},
		{name: "yaml", file: ".repairrc.yaml", config: yamlConfig},
		{name: "json", file: ".repairrc.json", config: jsonConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(testContext(t), writeConfig(t, tt.file, tt.config))
			require.NoError(t, err)

			assert.Equal(t, filepath.Clean("app/lib"), cfg.Root)
			assert.Equal(t, []string{".dart"}, cfg.Extensions)
			assert.Equal(t, []string{"**/*.g.dart"}, cfg.Ignore)
			assert.Equal(t, []string{"restore-ui-text", "repair-comments"}, cfg.Passes)
			assert.Equal(t, 4, cfg.Jobs)
			assert.Equal(t, 3, cfg.Converge)

			require.Len(t, cfg.Roles, 1)
			assert.Equal(t, Role{Name: "views", Globs: []string{"views/**"}}, cfg.Roles[0])

			require.Len(t, cfg.Custom, 1)
			custom := cfg.Custom[0]
			assert.Equal(t, "local-fixes", custom.Name)
			assert.Equal(t, "project specific", custom.Description)
			require.Len(t, custom.Rules, 2)
			assert.Equal(t, `foo\(\)`, custom.Rules[0].Pattern)
			assert.Equal(t, "bar()", custom.Rules[0].Replace)
			assert.Equal(t, []string{"views"}, custom.Rules[0].Roles)
			assert.Equal(t, "a", custom.Rules[1].Literal)
			assert.Equal(t, []string{"home_screen.dart"}, custom.Rules[1].Files)
			assert.True(t, custom.Rules[1].Once)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
	}{
		{
			name:        "unknown_extension",
			file:        "repairrc.toml",
			config:      `root = "lib"`,
			errContains: "no parser found",
		},
		{
			name:        "unknown_yaml_field",
			file:        "c.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "c.json",
			config:      `{"destination": "/tmp"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_pass",
			file:        "c.yaml",
			config:      "passes: [inline-translations, translate-everything]\n",
			errContains: "unknown pass: translate-everything",
		},
		{
			name:        "invalid_hcl",
			file:        "c.hcl",
			config:      `root = `,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_hcl_attribute",
			file:        "c.hcl",
			config:      `destination = "/tmp"`,
			errContains: "decoding HCL",
		},
		{
			name:        "bad_extension",
			file:        "c.yaml",
			config:      "extensions: [dart]\n",
			errContains: "must start with a dot",
		},
		{
			name:        "bad_regex",
			file:        "c.yaml",
			config:      "custom_passes:\n  - name: x\n    rules:\n      - id: r\n        pattern: '('\n        replace: ''\n",
			errContains: "compiling pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(testContext(t), writeConfig(t, tt.file, tt.config))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(testContext(t), filepath.Join(t.TempDir(), ".repairrc.hcl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("no_parser_sentinel", func(t *testing.T) {
		_, err := Load(testContext(t), writeConfig(t, "repairrc.ini", ""))
		assert.ErrorIs(t, err, ErrNoParser)
	})
}

func TestLoadOrDefault(t *testing.T) {
	ctx := testContext(t)

	t.Run("no_file_uses_defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(ctx, t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.Equal(t, "lib", cfg.Root)
		assert.Equal(t, []string{".dart"}, cfg.Extensions)
		assert.Equal(t, 1, cfg.Jobs)
		assert.Zero(t, cfg.Converge)
		assert.Empty(t, cfg.Passes)
	})

	t.Run("finds_default_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".repairrc.yml"), []byte("jobs: 2\n"), 0644))

		cfg, err := LoadOrDefault(ctx, dir, "")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Jobs)
		assert.Equal(t, "lib", cfg.Root)
	})

	t.Run("explicit_path_must_exist", func(t *testing.T) {
		_, err := LoadOrDefault(ctx, t.TempDir(), filepath.Join(t.TempDir(), "missing.hcl"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{
			name: "defaults",
			cfg:  Config{},
		},
		{
			name:        "negative_jobs",
			cfg:         Config{Jobs: -1},
			errContains: "jobs must not be negative",
		},
		{
			name:        "negative_converge",
			cfg:         Config{Converge: -1},
			errContains: "converge must not be negative",
		},
		{
			name: "known_passes",
			cfg:  Config{Passes: []string{"repair-comments", "restore-ui-text"}},
		},
		{
			name:        "unknown_pass",
			cfg:         Config{Passes: []string{"repair-comments", "remove-everything"}},
			errContains: "unknown pass: remove-everything",
		},
		{
			name:        "invalid_ignore_glob",
			cfg:         Config{Ignore: []string{"views/[a"}},
			errContains: "invalid ignore glob",
		},
		{
			name:        "duplicate_role",
			cfg:         Config{Roles: []Role{{Name: "v"}, {Name: "v"}}},
			errContains: "duplicate role",
		},
		{
			name: "unknown_role",
			cfg: Config{Custom: []PassDef{{
				Name:  "p",
				Rules: []RuleDef{{ID: "r", Literal: "a", Roles: []string{"views"}}},
			}}},
			errContains: `unknown role "views"`,
		},
		{
			name: "pattern_and_literal",
			cfg: Config{Custom: []PassDef{{
				Name:  "p",
				Rules: []RuleDef{{ID: "r", Literal: "a", Pattern: "a"}},
			}}},
			errContains: "mutually exclusive",
		},
		{
			name: "missing_pattern",
			cfg: Config{Custom: []PassDef{{
				Name:  "p",
				Rules: []RuleDef{{ID: "r"}},
			}}},
			errContains: "one of pattern or literal is required",
		},
		{
			name: "bad_template_group",
			cfg: Config{Custom: []PassDef{{
				Name:  "p",
				Rules: []RuleDef{{ID: "r", Pattern: "(a)", Replace: "${2}"}},
			}}},
			errContains: "references group 2",
		},
		{
			name: "duplicate_rule",
			cfg: Config{Custom: []PassDef{{
				Name:  "p",
				Rules: []RuleDef{{ID: "r", Literal: "a"}, {ID: "r", Literal: "b"}},
			}}},
			errContains: "duplicate rule id",
		},
		{
			name:        "unnamed_pass",
			cfg:         Config{Custom: []PassDef{{}}},
			errContains: "pass name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestConfig_Pipeline(t *testing.T) {
	cfg, err := Load(testContext(t), writeConfig(t, ".repairrc.hcl", hclConfig))
	require.NoError(t, err)

	pl, err := cfg.Pipeline(migration.Builtin())
	require.NoError(t, err)
	assert.Equal(t, []string{migration.RepairComments, migration.RestoreUIText, "local-fixes"}, pl.Names())

	roles := cfg.RoleMap()
	view := roles.NewFile("views/home/home_screen.dart")
	assert.Equal(t, []string{"views"}, view.Roles)

	custom, ok := pl.Lookup("local-fixes")
	require.True(t, ok)

	got, _ := custom.Apply(view, "a a foo()")
	assert.Equal(t, "b a bar()", got, "role scope applies and the literal rule replaces once")

	got, _ = custom.Apply(roles.NewFile("services/api.dart"), "foo() a")
	assert.Equal(t, "foo() a", got, "neither the role nor the file name match")
}

func TestConfig_PipelineErrors(t *testing.T) {
	t.Run("unknown_pass", func(t *testing.T) {
		cfg := Default()
		cfg.Passes = []string{"remove-everything"}
		_, err := cfg.Pipeline(migration.Builtin())
		assert.ErrorIs(t, err, rule.ErrUnknownPass)
	})

	t.Run("custom_pass_shadows_builtin", func(t *testing.T) {
		cfg := Default()
		cfg.Custom = []PassDef{{Name: migration.RepairComments, Rules: []RuleDef{{ID: "r", Literal: "a"}}}}
		_, err := cfg.Pipeline(migration.Builtin())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate pass")
	})

	t.Run("all_builtin_by_default", func(t *testing.T) {
		pl, err := Default().Pipeline(migration.Builtin())
		require.NoError(t, err)
		assert.Equal(t, migration.Builtin().Names(), pl.Names())
	})
}

func TestHCLParser_BuiltinPasses(t *testing.T) {
	cfg, err := Load(testContext(t), writeConfig(t, "c.hcl", `passes = builtin_passes`))
	require.NoError(t, err)
	assert.Equal(t, migration.Builtin().Names(), cfg.Passes)
}

func TestConfig_String(t *testing.T) {
	assert.Equal(t, "lib [.dart] passes=all custom=0 jobs=1 converge=0", Default().String())
}
