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

package engine

import (
	"context"
	"iter"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/repairrc/pkg/rule"
	"github.com/walteh/repairrc/pkg/store"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidEncoding marks a file that is not valid UTF-8. Such files are
// skipped, rules never see them.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// 📂 Corpus yields the files to process. corpus.Walker implements it.
type Corpus interface {
	Files(ctx context.Context) iter.Seq2[string, error]
	Rel(path string) string
}

// 🔧 Options contains configuration for the engine
type Options struct {
	// Corpus lists the files to process.
	Corpus Corpus
	// Store reads and writes files, defaults to store.Local.
	Store store.FileStore
	// Pipeline is applied to every file in order.
	Pipeline rule.Pipeline
	// Roles assigns declared roles to files for role scopes.
	Roles rule.RoleMap
	// Jobs is the number of files processed at once, defaults to 1.
	Jobs int
	// Converge re-applies the pipeline until a fixed point, allowing at most
	// this many changing applications. Zero applies the pipeline once.
	Converge int
	// DryRun computes results and diffs without writing.
	DryRun bool
}

// ⚙️ Engine runs the read, transform, compare, write cycle over a corpus.
type Engine struct {
	corpus   Corpus
	store    store.FileStore
	pipeline rule.Pipeline
	roles    rule.RoleMap
	jobs     int
	converge int
	dryRun   bool
}

// 🏭 New creates an engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Corpus == nil {
		return nil, errors.Errorf("corpus is required")
	}
	if err := opts.Pipeline.Validate(); err != nil {
		return nil, errors.Errorf("validating pipeline: %w", err)
	}
	if opts.Converge < 0 {
		return nil, errors.Errorf("converge must not be negative, got %d", opts.Converge)
	}
	if opts.Store == nil {
		opts.Store = store.NewLocal()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	return &Engine{
		corpus:   opts.Corpus,
		store:    opts.Store,
		pipeline: opts.Pipeline,
		roles:    opts.Roles,
		jobs:     opts.Jobs,
		converge: opts.Converge,
		dryRun:   opts.DryRun,
	}, nil
}

// 🏃 Run processes every file of the corpus. A file that cannot be read,
// converged or written is recorded as failed and the run moves on. Run only
// returns an error when ctx is cancelled, and still returns the report for
// the files processed so far.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Strs("passes", e.pipeline.Names()).
		Int("jobs", e.jobs).
		Int("converge", e.converge).
		Bool("dry_run", e.dryRun).
		Msg("starting run")

	var g errgroup.Group
	g.SetLimit(e.jobs)

	var results []*FileResult
	for path, err := range e.corpus.Files(ctx) {
		if ctx.Err() != nil {
			break
		}

		res := &FileResult{Path: path, Rel: e.corpus.Rel(path)}
		results = append(results, res)

		if err != nil {
			res.Status = StatusFailed
			res.Err = err
			continue
		}

		g.Go(func() error {
			e.processFile(ctx, res)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{DryRun: e.dryRun}
	for _, res := range results {
		if res.Status == StatusFailed {
			logger.Warn().Err(res.Err).Str("path", res.Path).Msg("file skipped")
		}
		report.add(res)
	}

	logger.Debug().
		Int("modified", len(report.Modified)).
		Int("unchanged", report.Unchanged).
		Int("failed", len(report.Failed)).
		Msg("run complete")

	if err := ctx.Err(); err != nil {
		return report, errors.Errorf("run cancelled: %w", err)
	}
	return report, nil
}

// 📄 processFile runs one file's full cycle and records the outcome in res.
func (e *Engine) processFile(ctx context.Context, res *FileResult) {
	fail := func(err error) {
		res.Status = StatusFailed
		res.Err = err
	}

	if err := ctx.Err(); err != nil {
		fail(errors.Errorf("not started: %w", err))
		return
	}

	content, err := e.store.ReadFile(ctx, res.Path)
	if err != nil {
		fail(err)
		return
	}
	if !utf8.Valid(content) {
		fail(errors.Errorf("decoding file: %w", ErrInvalidEncoding))
		return
	}

	src := &SourceFile{Path: res.Path, Original: string(content)}
	res.ChecksumBefore = store.Checksum(content)

	file := e.roles.NewFile(res.Rel)
	if e.converge > 0 {
		src.Current, res.Changes, res.Iterations, err = e.pipeline.Converge(file, src.Original, e.converge)
		if err != nil {
			fail(errors.Errorf("converging: %w", err))
			return
		}
	} else {
		src.Current, res.Changes = e.pipeline.Apply(file, src.Original)
		if len(res.Changes) > 0 {
			res.Iterations = 1
		}
	}

	if !src.Changed() {
		res.Status = StatusUnchanged
		res.ChecksumAfter = res.ChecksumBefore
		return
	}

	res.Content = src.Current
	res.ChecksumAfter = store.Checksum([]byte(src.Current))

	if e.dryRun {
		res.Diff = lineDiff(res.Rel, src.Original, src.Current)
		res.Status = StatusModified
		return
	}

	// never start a write after cancellation
	if err := ctx.Err(); err != nil {
		fail(errors.Errorf("not written: %w", err))
		return
	}

	if err := e.store.WriteFileAtomic(ctx, res.Path, []byte(src.Current)); err != nil {
		fail(errors.Errorf("writing file: %w", err))
		return
	}

	res.Status = StatusModified
	zerolog.Ctx(ctx).Debug().
		Str("path", res.Rel).
		Strs("passes", res.Passes()).
		Int("replacements", res.Replacements()).
		Msg("file rewritten")
}
