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
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotConverged is returned when a pipeline keeps changing text past its iteration bound.
	ErrNotConverged = errors.New("pipeline did not converge")
	// ErrUnknownPass is returned when a pass is selected by a name the pipeline lacks.
	ErrUnknownPass = errors.New("unknown pass")
)

// 📦 Pass is an ordered list of rules serving one migration concern.
//
// Rule order matters: rule i+1 sees the output of rule i, so a narrow rule
// must come before a generic rule that would otherwise consume its input.
type Pass struct {
	Name        string
	Description string
	Rules       []*Rule
	// Idempotent marks passes expected to be a no-op on their own output.
	Idempotent bool
}

// Change is the number of replacements one rule made.
type Change struct {
	Rule  string
	Count int
}

// Changes lists the rules that fired, in application order.
type Changes []Change

// Total sums the replacement counts.
func (c Changes) Total() int {
	n := 0
	for _, ch := range c {
		n += ch.Count
	}
	return n
}

// 🎯 Apply composes the pass's rules left to right.
func (p *Pass) Apply(f File, text string) (string, Changes) {
	var changes Changes
	for _, r := range p.Rules {
		var n int
		text, n = r.Apply(f, text)
		if n > 0 {
			changes = append(changes, Change{Rule: r.ID(), Count: n})
		}
	}
	return text, changes
}

// Validate checks that the pass is named and its rules are valid with unique ids.
func (p *Pass) Validate() error {
	if p.Name == "" {
		return errors.New("pass name is required")
	}
	seen := make(map[string]bool, len(p.Rules))
	for _, r := range p.Rules {
		if err := r.Validate(); err != nil {
			return errors.Errorf("pass %s: %w", p.Name, err)
		}
		if seen[r.ID()] {
			return errors.Errorf("pass %s: duplicate rule id %q", p.Name, r.ID())
		}
		seen[r.ID()] = true
	}
	return nil
}

// PassChange records what one pass changed during a pipeline application.
type PassChange struct {
	Pass    string
	Changes Changes
}

// 🔗 Pipeline is an ordered list of passes applied in sequence.
type Pipeline []*Pass

// Apply runs every pass in order and reports the passes that changed the text.
func (pl Pipeline) Apply(f File, text string) (string, []PassChange) {
	var out []PassChange
	for _, p := range pl {
		var changes Changes
		text, changes = p.Apply(f, text)
		if len(changes) > 0 {
			out = append(out, PassChange{Pass: p.Name, Changes: changes})
		}
	}
	return text, out
}

// 🔁 Converge re-applies the pipeline until it stops changing the text. max
// bounds the number of applications allowed to change it, so the pipeline
// runs at most max+1 times. It returns the number of changing applications.
// When the bound is exhausted the last text is returned with ErrNotConverged.
func (pl Pipeline) Converge(f File, text string, max int) (string, []PassChange, int, error) {
	var all []PassChange
	for i := 0; i <= max; i++ {
		next, changes := pl.Apply(f, text)
		if next == text {
			return text, all, i, nil
		}
		all = append(all, changes...)
		text = next
	}
	return text, all, max, errors.Errorf("%w: %s still changing after %d iterations", ErrNotConverged, f.Path, max)
}

// Names returns the pass names in order.
func (pl Pipeline) Names() []string {
	names := make([]string, len(pl))
	for i, p := range pl {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a pass by name.
func (pl Pipeline) Lookup(name string) (*Pass, bool) {
	for _, p := range pl {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Select returns the named passes in pipeline order, not argument order.
// Without names the whole pipeline is returned.
func (pl Pipeline) Select(names ...string) (Pipeline, error) {
	if len(names) == 0 {
		return pl, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := pl.Lookup(n); !ok {
			return nil, errors.Errorf("%w: %s", ErrUnknownPass, n)
		}
		want[n] = true
	}

	var out Pipeline
	for _, p := range pl {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

// Validate checks every pass and that pass names are unique.
func (pl Pipeline) Validate() error {
	seen := make(map[string]bool, len(pl))
	for _, p := range pl {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.Name] {
			return errors.Errorf("duplicate pass %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// PassNames flattens changes into the distinct pass names, first occurrence first.
func PassNames(changes []PassChange) []string {
	var names []string
	seen := make(map[string]bool)
	for _, c := range changes {
		if !seen[c.Pass] {
			seen[c.Pass] = true
			names = append(names, c.Pass)
		}
	}
	return names
}

// Replacements sums the replacement counts across changes.
func Replacements(changes []PassChange) int {
	n := 0
	for _, c := range changes {
		n += c.Changes.Total()
	}
	return n
}
