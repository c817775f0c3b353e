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
	"github.com/walteh/repairrc/pkg/rule"
)

// 📊 FileStatus is the outcome of one file's cycle.
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // no rule matched, nothing written
	StatusModified             // content changed and was written (or would be, in dry run)
	StatusFailed               // reading, converging or writing failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusModified:
		return "modified"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 SourceFile is one file's content for the duration of a cycle.
type SourceFile struct {
	Path     string
	Original string
	Current  string
}

// Changed reports whether the rules produced different text.
func (f *SourceFile) Changed() bool {
	return f.Current != f.Original
}

// 🧾 FileResult is the outcome of processing one file.
type FileResult struct {
	Path   string
	Rel    string
	Status FileStatus

	// Changes lists the passes that changed the file and their rule counts.
	Changes []rule.PassChange
	// Iterations is the number of changing pipeline applications (converge mode).
	Iterations int

	Content        string
	ChecksumBefore string
	ChecksumAfter  string

	// Diff is set in dry run mode.
	Diff string
	Err  error
}

// Passes returns the distinct passes that changed the file.
func (r *FileResult) Passes() []string {
	return rule.PassNames(r.Changes)
}

// Replacements returns the total number of replacements made.
func (r *FileResult) Replacements() int {
	return rule.Replacements(r.Changes)
}

// 📋 Report aggregates a run. Entries appear in walk order.
type Report struct {
	Modified  []*FileResult
	Failed    []*FileResult
	Unchanged int
	DryRun    bool
}

// ModifiedPaths returns the paths of modified files.
func (r *Report) ModifiedPaths() []string {
	paths := make([]string, len(r.Modified))
	for i, res := range r.Modified {
		paths[i] = res.Path
	}
	return paths
}

// Total is the number of files considered.
func (r *Report) Total() int {
	return len(r.Modified) + len(r.Failed) + r.Unchanged
}

func (r *Report) add(res *FileResult) {
	switch res.Status {
	case StatusModified:
		r.Modified = append(r.Modified, res)
	case StatusFailed:
		r.Failed = append(r.Failed, res)
	default:
		r.Unchanged++
	}
}
