package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/repairrc/pkg/config"
	"github.com/walteh/repairrc/pkg/migration"
)

func ExampleLoad_hcl() {
	ctx := context.Background()
	configHCL := `
root     = "lib"
passes   = ["remove-language-provider", "repair-comments"]
converge = 3

pass "local-fixes" {
  rule "drop-foo" {
    literal = "foo()"
    replace = "bar()"
    globs   = ["views/**"]
  }
}
`

	tmpDir, err := os.MkdirTemp("", "repairrc-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, ".repairrc.hcl")
	if err := os.WriteFile(configPath, []byte(configHCL), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	pl, err := cfg.Pipeline(migration.Builtin())
	if err != nil {
		fmt.Printf("Error building pipeline: %v\n", err)
		return
	}

	fmt.Println(cfg)
	fmt.Println(strings.Join(pl.Names(), " -> "))

	// Output:
	// lib [.dart] passes=remove-language-provider,repair-comments custom=1 jobs=1 converge=3
	// remove-language-provider -> repair-comments -> local-fixes
}

func ExampleLoadOrDefault() {
	ctx := context.Background()

	tmpDir, err := os.MkdirTemp("", "repairrc-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	cfg, err := config.LoadOrDefault(ctx, tmpDir, "")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)

	configYAML := `
root: app/lib
extensions: [.dart]
jobs: 4
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".repairrc.yaml"), []byte(configYAML), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err = config.LoadOrDefault(ctx, tmpDir, "")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Println(cfg)

	// Output:
	// lib [.dart] passes=all custom=0 jobs=1 converge=0
	// app/lib [.dart] passes=all custom=0 jobs=4 converge=0
}
