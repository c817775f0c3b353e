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
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/repairrc/cmd/repairrc/opts"
	"github.com/walteh/repairrc/pkg/config"
	"github.com/walteh/repairrc/pkg/corpus"
	"github.com/walteh/repairrc/pkg/engine"
	"github.com/walteh/repairrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrWouldChange is returned by check when the tree is not at a fixed point.
var ErrWouldChange = errors.New("files would change")

// corpusFlags override the corpus and engine settings of the config file
type corpusFlags struct {
	root     string
	exts     []string
	jobs     int
	converge int
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.root, "root", "", "directory to repair (overrides config root)")
	cmd.Flags().StringSliceVar(&f.exts, "ext", nil, "file extension to include, repeatable (overrides config extensions)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 0, "files processed at once (overrides config jobs)")
	cmd.Flags().IntVar(&f.converge, "converge", 0, "re-apply the pipeline up to this many times until nothing changes")
}

// apply returns a copy of cfg with the flags that were set on cmd applied
func (f *corpusFlags) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	if cmd.Flags().Changed("root") {
		out.Root = f.root
	}
	if cmd.Flags().Changed("ext") {
		out.Extensions = f.exts
	}
	if cmd.Flags().Changed("jobs") {
		out.Jobs = f.jobs
	}
	if cmd.Flags().Changed("converge") {
		out.Converge = f.converge
	}

	if err := out.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}
	return &out, nil
}

// repairMode selects how repair treats the files that change
type repairMode struct {
	dryRun   bool
	showDiff bool
}

// 🏃 repair runs the engine over the configured corpus, logs one line per
// modified or failed file and ends the run with a summary.
func repair(ctx context.Context, o *opts.RootOpts, cfg *config.Config, passes []string, mode repairMode) (*engine.Report, error) {
	logger := log.FromContext(ctx)

	pl, err := o.Pipeline(passes...)
	if err != nil {
		return nil, errors.Errorf("building pipeline: %w", err)
	}

	walker := corpus.New(cfg.Root,
		corpus.WithExtensions(cfg.Extensions...),
		corpus.WithIgnore(cfg.Ignore...),
	)

	eng, err := engine.New(engine.Options{
		Corpus:   walker,
		Pipeline: pl,
		Roles:    cfg.RoleMap(),
		Jobs:     cfg.Jobs,
		Converge: cfg.Converge,
		DryRun:   mode.dryRun,
	})
	if err != nil {
		return nil, errors.Errorf("creating engine: %w", err)
	}

	logger.StartRun(ctx, log.RunReport{
		Root:   cfg.Root,
		Passes: pl.Names(),
		DryRun: mode.dryRun,
	})

	report, runErr := eng.Run(ctx)
	for _, res := range report.Modified {
		logger.LogFile(ctx, fileReport(res, mode.dryRun))
	}
	for _, res := range report.Failed {
		logger.LogFile(ctx, fileReport(res, mode.dryRun))
	}

	if mode.showDiff {
		for _, res := range report.Modified {
			logger.LogDiff(res.Diff)
		}
	}

	logger.LogNewline()
	logger.EndRun(ctx, report.Total())

	return report, runErr
}

func fileReport(res *engine.FileResult, dryRun bool) log.FileReport {
	status := log.StatusModified
	switch {
	case res.Status == engine.StatusFailed:
		status = log.StatusFailed
	case dryRun:
		status = log.StatusWouldFix
	}

	return log.FileReport{
		Path:         res.Rel,
		Status:       status,
		Passes:       res.Passes(),
		Replacements: res.Replacements(),
		Iterations:   res.Iterations,
		Err:          res.Err,
	}
}
