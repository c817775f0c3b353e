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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	parsers = nil

	mockParser := &struct {
		Parser
	}{}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{
			name:     "yaml_file",
			filename: ".repairrc.yaml",
			want:     &YAMLParser{},
		},
		{
			name:     "yml_file",
			filename: ".repairrc.yml",
			want:     &YAMLParser{},
		},
		{
			name:     "hcl_file",
			filename: "configs/.repairrc.hcl",
			want:     &HCLParser{},
		},
		{
			name:     "json_file",
			filename: ".repairrc.json",
			want:     &JSONParser{},
		},
		{
			name:     "unknown_extension",
			filename: ".repairrc.toml",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_hcl",
			config: `
root       = "app/lib"
extensions = [".dart", ".arb"]
ignore     = ["**/*.g.dart"]
jobs       = 4

role "screens" {
  globs = ["views/**"]
}

pass "cleanup" {
  description = "drop debug prints"

  rule "drop-print" {
    pattern = "print\\([^)]*\\);\\n?"
    roles   = ["screens"]
    once    = true
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "app/lib", cfg.Root)
				assert.Equal(t, []string{".dart", ".arb"}, cfg.Extensions)
				assert.Equal(t, []string{"**/*.g.dart"}, cfg.Ignore)
				assert.Equal(t, 4, cfg.Jobs)
				require.Len(t, cfg.Roles, 1)
				assert.Equal(t, "screens", cfg.Roles[0].Name)
				require.Len(t, cfg.Custom, 1)
				assert.Equal(t, "cleanup", cfg.Custom[0].Name)
				require.Len(t, cfg.Custom[0].Rules, 1)
				r := cfg.Custom[0].Rules[0]
				assert.Equal(t, "drop-print", r.ID)
				assert.Equal(t, `print\([^)]*\);\n?`, r.Pattern)
				assert.Equal(t, []string{"screens"}, r.Roles)
				assert.True(t, r.Once)
			},
		},
		{
			name: "builtin_passes_variable",
			config: `
passes = builtin_passes
`,
			check: func(t *testing.T, cfg *Config) {
				assert.NotEmpty(t, cfg.Passes)
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
root = 
`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// 🧪 TestYAMLParsing_UnknownField tests that typos are rejected
func TestYAMLParsing_UnknownField(t *testing.T) {
	_, err := (&YAMLParser{}).Parse(context.Background(), []byte("root: lib\nextension: [.dart]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")

	_, err = (&JSONParser{}).Parse(context.Background(), []byte(`{"root": "lib", "extension": [".dart"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}
