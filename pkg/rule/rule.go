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

import (
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single match-and-replace transformation over the whole text of a file.
//
// A Rule is immutable once built. The builder methods (Describe, In, Once)
// return modified copies, so a Rule can be shared between passes and goroutines.
type Rule struct {
	id          string
	description string

	// exactly one of re or literal is set
	re      *regexp.Regexp
	literal string

	template string
	fn       func(groups []string) string

	scope Scope
	once  bool
}

// 🏭 Regex creates a global rule replacing every match of pattern with the
// expansion of template ($1, ${1}, ${name}). It panics if pattern does not
// compile, use Compile for patterns that come from user input.
func Regex(id, pattern, template string) *Rule {
	return &Rule{
		id:       id,
		re:       regexp.MustCompile(pattern),
		template: template,
	}
}

// 🏭 Literal creates a global rule replacing every occurrence of old with replacement.
func Literal(id, old, replacement string) *Rule {
	return &Rule{
		id:       id,
		literal:  old,
		template: replacement,
	}
}

// 🏭 Func creates a global rule whose replacement is computed from the matched
// groups. groups[0] is the whole match, unmatched optional groups are empty.
func Func(id, pattern string, fn func(groups []string) string) *Rule {
	return &Rule{
		id: id,
		re: regexp.MustCompile(pattern),
		fn: fn,
	}
}

// 🔧 Compile builds a rule from user supplied definitions. When literal is true
// pattern is matched verbatim and replacement is inserted verbatim.
func Compile(id, pattern, replacement string, literal bool) (*Rule, error) {
	if literal {
		r := Literal(id, pattern, replacement)
		if err := r.Validate(); err != nil {
			return nil, err
		}
		return r, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("rule %s: compiling pattern: %w", id, err)
	}

	r := &Rule{id: id, re: re, template: replacement}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Describe returns a copy of the rule with a human readable description.
func (r *Rule) Describe(description string) *Rule {
	c := *r
	c.description = description
	return &c
}

// In returns a copy of the rule restricted to files allowed by scope.
func (r *Rule) In(scope Scope) *Rule {
	c := *r
	c.scope = scope
	return &c
}

// Once returns a copy of the rule that only replaces the leftmost match.
func (r *Rule) Once() *Rule {
	c := *r
	c.once = true
	return &c
}

func (r *Rule) ID() string          { return r.id }
func (r *Rule) Description() string { return r.description }
func (r *Rule) Scope() Scope        { return r.scope }
func (r *Rule) Global() bool        { return !r.once }

// Pattern returns the textual form of the matcher.
func (r *Rule) Pattern() string {
	if r.re != nil {
		return r.re.String()
	}
	return r.literal
}

// Applies reports whether the rule's scope admits f.
func (r *Rule) Applies(f File) bool {
	return r.scope == nil || r.scope.Allows(f)
}

// 🎯 Apply rewrites text and returns the result together with the number of
// replacements made. Matches are found leftmost first and never overlap. Empty
// matches are skipped. A rule whose scope rejects f returns text unchanged.
func (r *Rule) Apply(f File, text string) (string, int) {
	if !r.Applies(f) {
		return text, 0
	}

	matches := r.find(text)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	last, count := 0, 0
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(r.expand(text, m))
		last = m[1]
		count++
		if r.once {
			break
		}
	}

	if count == 0 {
		return text, 0
	}

	b.WriteString(text[last:])
	return b.String(), count
}

func (r *Rule) find(text string) [][]int {
	if r.re != nil {
		return r.re.FindAllStringSubmatchIndex(text, -1)
	}
	if r.literal == "" {
		return nil
	}

	var out [][]int
	for off := 0; off <= len(text); {
		i := strings.Index(text[off:], r.literal)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(r.literal)
		out = append(out, []int{start, end})
		off = end
	}
	return out
}

func (r *Rule) expand(text string, m []int) string {
	switch {
	case r.fn != nil:
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = text[m[2*i]:m[2*i+1]]
			}
		}
		return r.fn(groups)
	case r.re != nil:
		return string(r.re.ExpandString(nil, r.template, text, m))
	default:
		return r.template
	}
}

// ✅ Validate checks that the rule is well formed.
func (r *Rule) Validate() error {
	if r.id == "" {
		return errors.New("rule id is required")
	}
	if r.re == nil && r.literal == "" {
		return errors.Errorf("rule %s: pattern is required", r.id)
	}
	if r.re == nil || r.fn != nil {
		return nil
	}

	names := make(map[string]bool)
	for _, n := range r.re.SubexpNames() {
		if n != "" {
			names[n] = true
		}
	}
	for _, ref := range templateRefs(r.template) {
		if n, err := strconv.Atoi(ref); err == nil {
			if n > r.re.NumSubexp() {
				return errors.Errorf("rule %s: template references group %d, pattern has %d", r.id, n, r.re.NumSubexp())
			}
			continue
		}
		if !names[ref] {
			return errors.Errorf("rule %s: template references unknown group %q", r.id, ref)
		}
	}
	return nil
}

// templateRefs lists the group references of a regexp.Expand template.
func templateRefs(tmpl string) []string {
	var refs []string
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			continue
		}
		rest := tmpl[i+1:]
		switch {
		case rest[0] == '$':
			i++
		case rest[0] == '{':
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				continue
			}
			refs = append(refs, rest[1:end])
			i += end + 1
		default:
			j := 0
			for j < len(rest) && isNameByte(rest[j]) {
				j++
			}
			if j > 0 {
				refs = append(refs, rest[:j])
				i += j
			}
		}
	}
	return refs
}

func isNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
