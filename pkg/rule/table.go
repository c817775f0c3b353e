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

package rule

// Entry is one literal replacement.
type Entry struct {
	Old string
	New string
}

// 📋 LiteralTable is an ordered replacement table. Order is preserved when
// the table is turned into rules, so earlier entries apply first.
type LiteralTable []Entry

// TableOptions controls how a table is turned into rules.
type TableOptions struct {
	// Prefix is prepended to every rule id ("prefix:old").
	Prefix string
	// SwapQuotes adds, after all primary entries, a variant of every quoted
	// entry with the other quote character.
	SwapQuotes bool
	// Scope restricts every generated rule.
	Scope Scope
}

// Rules converts the table into literal rules. An entry whose Old text is
// already covered by an earlier entry or variant is skipped, so rule ids stay
// unique and no rule is a guaranteed no-op.
func (t LiteralTable) Rules(opts TableOptions) []*Rule {
	seen := make(map[string]bool, len(t))
	var out []*Rule

	add := func(old, replacement string) {
		if old == "" || seen[old] {
			return
		}
		seen[old] = true
		r := Literal(opts.Prefix+":"+old, old, replacement)
		if opts.Scope != nil {
			r = r.In(opts.Scope)
		}
		out = append(out, r)
	}

	for _, e := range t {
		add(e.Old, e.New)
	}

	if opts.SwapQuotes {
		for _, e := range t {
			old, ok := swapQuotes(e.Old)
			if !ok {
				continue
			}
			replacement, ok := swapQuotes(e.New)
			if !ok {
				replacement = e.New
			}
			add(old, replacement)
		}
	}

	return out
}

// swapQuotes turns 'x' into "x" and back. Text that is not wrapped in a
// matching pair of quotes is reported as not swappable.
func swapQuotes(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return s, false
	}
	switch first {
	case '\'':
		return `"` + s[1:len(s)-1] + `"`, true
	case '"':
		return `'` + s[1:len(s)-1] + `'`, true
	default:
		return s, false
	}
}
