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
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines around each hunk
const contextLines = 3

type diffLine struct {
	op   byte // ' ', '-' or '+'
	text string
}

// lineDiff renders a unified diff of before and after with contextLines of
// context. Hunks whose context would touch are merged.
func lineDiff(name, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	var changes []int
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, l := range splitLines(d.Text) {
			if op != ' ' {
				changes = append(changes, len(all))
			}
			all = append(all, diffLine{op: op, text: l})
		}
	}

	// oldAt[i] and newAt[i] count the lines of each side before all[i]
	oldAt := make([]int, len(all)+1)
	newAt := make([]int, len(all)+1)
	for i, l := range all {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.op != '+' {
			oldAt[i+1]++
		}
		if l.op != '-' {
			newAt[i+1]++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name, name)

	for k := 0; k < len(changes); {
		start := max(changes[k]-contextLines, 0)
		end := changes[k]
		k++
		for k < len(changes) && changes[k]-end-1 <= 2*contextLines {
			end = changes[k]
			k++
		}
		stop := min(end+contextLines+1, len(all))

		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			hunkRange(oldAt[start], oldAt[stop]-oldAt[start]),
			hunkRange(newAt[start], newAt[stop]-newAt[start]))
		for _, l := range all[start:stop] {
			sb.WriteByte(l.op)
			sb.WriteString(l.text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// hunkRange formats a hunk side in unified form. before is the number of
// lines preceding the hunk.
func hunkRange(before, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", before)
	case 1:
		return fmt.Sprintf("%d", before+1)
	default:
		return fmt.Sprintf("%d,%d", before+1, count)
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
