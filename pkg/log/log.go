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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 🎯 FileStatus is how a file came out of a run, as far as the report cares
type FileStatus string

const (
	StatusModified  FileStatus = "modified"
	StatusWouldFix  FileStatus = "would fix"
	StatusUnchanged FileStatus = "unchanged"
	StatusFailed    FileStatus = "failed"
)

// 🎯 FileReport represents one file's outcome for logging
type FileReport struct {
	Path         string     // File path relative to the root
	Status       FileStatus // Outcome
	Passes       []string   // Passes that changed the file
	Replacements int        // Number of replacements made
	Iterations   int        // Changing pipeline applications
	Err          error      // Set when Status is StatusFailed
}

// 📦 RunReport represents a run for logging
type RunReport struct {
	Root   string   // Corpus root
	Passes []string // Passes in pipeline order
	DryRun bool     // Whether files are written
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	run     *RunReport
	files   []FileReport
}

// 🏭 New creates a logger that prints to console and mirrors into zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFile formats a file report for display
func (l *Logger) formatFile(f FileReport) string {
	var symbol rune
	var symbolColor color.Attribute
	switch f.Status {
	case StatusModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case StatusWouldFix:
		symbol = '~'
		symbolColor = color.FgYellow
	case StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	detail := strings.Join(f.Passes, ", ")
	if f.Status == StatusFailed && f.Err != nil {
		detail = f.Err.Error()
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, f.Path),
		fmt.Sprintf("%-*s", statusWidth, f.Status))

	if detail != "" {
		line += " " + color.New(color.Faint).Sprint(detail)
	}
	return strings.TrimRight(line, " ")
}

// 📝 LogFile logs one file's outcome
func (l *Logger) LogFile(ctx context.Context, f FileReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.files = append(l.files, f)

	fmt.Fprintln(l.console, l.formatFile(f))

	ev := l.zlog.Info()
	if f.Status == StatusFailed {
		ev = l.zlog.Warn().Err(f.Err)
	}
	ev.Str("path", f.Path).
		Str("status", string(f.Status)).
		Strs("passes", f.Passes).
		Int("replacements", f.Replacements).
		Int("iterations", f.Iterations).
		Msg("file processed")
}

// 📝 StartRun starts a new run
func (l *Logger) StartRun(ctx context.Context, run RunReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.run = &run
	l.files = nil

	mode := "write"
	if run.DryRun {
		mode = "dry run"
	}

	fmt.Fprintf(l.console, "[repairing %s]\n",
		color.New(color.FgCyan).Sprint(run.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(strings.Join(run.Passes, " → ")),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(mode))

	l.zlog.Info().
		Str("root", run.Root).
		Strs("passes", run.Passes).
		Bool("dry_run", run.DryRun).
		Msg("starting run")
}

// 📝 EndRun ends the current run and prints its summary. total is the number
// of files considered, including the unchanged ones that were never logged.
func (l *Logger) EndRun(ctx context.Context, total int) {
	l.mu.Lock()
	run, files := l.run, l.files
	l.run, l.files = nil, nil
	l.mu.Unlock()

	if run == nil {
		return
	}

	changed, failed := 0, 0
	for _, f := range files {
		switch f.Status {
		case StatusModified, StatusWouldFix:
			changed++
		case StatusFailed:
			failed++
		}
	}

	l.zlog.Info().
		Str("root", run.Root).
		Int("files", total).
		Int("changed", changed).
		Int("failed", failed).
		Msg("run complete")

	verb := "modified"
	if run.DryRun {
		verb = "would change"
	}
	if failed > 0 {
		l.Warningf("%d of %d files %s, %d failed", changed, total, verb, failed)
		return
	}
	l.Successf("%d of %d files %s", changed, total, verb)
}

// 📝 LogDiff prints a unified diff, removed lines red and added lines green
func (l *Logger) LogDiff(diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console)
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprint(l.console, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(l.console, color.New(color.FgCyan).Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(l.console, color.New(color.FgRed).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(l.console, color.New(color.FgGreen).Sprint(line))
		default:
			fmt.Fprint(l.console, line)
		}
	}
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("repairrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
