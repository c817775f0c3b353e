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
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// 📄 File is the identity a scope is evaluated against.
type File struct {
	// Path is slash separated and relative to the corpus root.
	Path string
	// Roles are the declared roles the file was assigned (see RoleMap).
	Roles []string
}

// Name returns the base name of the file.
func (f File) Name() string {
	return path.Base(f.Path)
}

// HasRole reports whether the file carries role.
func (f File) HasRole(role string) bool {
	return slices.Contains(f.Roles, role)
}

// 🏷️ RoleMap assigns roles to files by doublestar glob.
type RoleMap map[string][]string

// NewFile builds the identity for rel, resolving its roles from m.
func (m RoleMap) NewFile(rel string) File {
	return File{Path: rel, Roles: m.Resolve(rel)}
}

// Resolve returns the sorted roles whose globs match rel.
func (m RoleMap) Resolve(rel string) []string {
	var roles []string
	for role, globs := range m {
		for _, g := range globs {
			if ok, _ := doublestar.Match(g, rel); ok {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}

// 🔍 Scope is a capability check over a file's identity.
type Scope interface {
	Allows(f File) bool
	String() string
}

// ScopeFunc adapts a predicate to Scope.
type ScopeFunc func(f File) bool

func (fn ScopeFunc) Allows(f File) bool { return fn(f) }
func (fn ScopeFunc) String() string     { return "func" }

type named []string

// Named admits files whose base name is one of names.
func Named(names ...string) Scope {
	return named(names)
}

func (s named) Allows(f File) bool { return slices.Contains(s, f.Name()) }
func (s named) String() string     { return "name:" + strings.Join(s, ",") }

type glob []string

// Glob admits files whose root relative path matches one of the doublestar patterns.
func Glob(patterns ...string) Scope {
	return glob(patterns)
}

func (s glob) Allows(f File) bool {
	for _, p := range s {
		if ok, err := doublestar.Match(p, f.Path); err == nil && ok {
			return true
		}
	}
	return false
}

func (s glob) String() string { return "glob:" + strings.Join(s, ",") }

type role []string

// Role admits files carrying any of roles.
func Role(roles ...string) Scope {
	return role(roles)
}

func (s role) Allows(f File) bool {
	for _, r := range s {
		if f.HasRole(r) {
			return true
		}
	}
	return false
}

func (s role) String() string { return "role:" + strings.Join(s, ",") }

type anyOf []Scope

// AnyOf admits a file if any of scopes does.
func AnyOf(scopes ...Scope) Scope {
	return anyOf(scopes)
}

func (s anyOf) Allows(f File) bool {
	for _, sc := range s {
		if sc.Allows(f) {
			return true
		}
	}
	return false
}

func (s anyOf) String() string {
	parts := make([]string, len(s))
	for i, sc := range s {
		parts[i] = sc.String()
	}
	return strings.Join(parts, " | ")
}

type not struct{ Scope }

// Not inverts scope.
func Not(scope Scope) Scope {
	return not{scope}
}

func (s not) Allows(f File) bool { return !s.Scope.Allows(f) }
func (s not) String() string     { return "!" + s.Scope.String() }
