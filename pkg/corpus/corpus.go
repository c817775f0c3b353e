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

// Package corpus enumerates the source files a repair run operates on.
package corpus

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚶 Walker lists files under a root by extension. It never modifies anything.
type Walker struct {
	root       string
	extensions []string
	ignore     []string
	hidden     bool
}

// Option configures a Walker.
type Option func(*Walker)

// WithExtensions keeps only files ending in one of exts (".dart"). No
// extensions means every regular file is kept.
func WithExtensions(exts ...string) Option {
	return func(w *Walker) {
		w.extensions = append(w.extensions, exts...)
	}
}

// WithIgnore skips files and directories whose root relative path matches one
// of the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(w *Walker) {
		w.ignore = append(w.ignore, patterns...)
	}
}

// WithHidden includes dot directories and dot files, which are skipped by default.
func WithHidden(include bool) Option {
	return func(w *Walker) {
		w.hidden = include
	}
}

// 🏭 New creates a walker rooted at root.
func New(root string, opts ...Option) *Walker {
	w := &Walker{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the cleaned root directory.
func (w *Walker) Root() string {
	return w.root
}

// Rel returns path relative to the root in slash form. Paths outside the
// root are returned in slash form unchanged.
func (w *Walker) Rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	if rel == "." {
		return filepath.ToSlash(filepath.Base(path))
	}
	return filepath.ToSlash(rel)
}

// 📂 Files yields candidate file paths in lexical order. Every call starts a
// fresh traversal. A missing root yields nothing. Errors reading a directory
// are yielded with the offending path and the walk continues.
func (w *Walker) Files(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(w.root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				zerolog.Ctx(ctx).Debug().Str("root", w.root).Msg("corpus root does not exist")
				return
			}
			yield(w.root, errors.Errorf("reading corpus root: %w", err))
			return
		}

		if !info.IsDir() {
			if w.match(w.root) {
				yield(w.root, nil)
			}
			return
		}

		_ = filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return filepath.SkipAll
			}

			if err != nil {
				if !yield(path, errors.Errorf("walking %s: %w", path, err)) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if path == w.root {
				return nil
			}

			if w.skip(path, d) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() || !w.match(path) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Collect drains Files into a slice, dropping paths that failed.
func (w *Walker) Collect(ctx context.Context) []string {
	var paths []string
	for path, err := range w.Files(ctx) {
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (w *Walker) skip(path string, d fs.DirEntry) bool {
	if !w.hidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	rel := w.Rel(path)
	for _, pattern := range w.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Walker) match(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	for _, ext := range w.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
