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

// Package migration holds the built-in passes that remove the LanguageProvider
// localization layer from a Flutter tree and repair the damage earlier
// automated edits left behind.
//
// Every pass is plain data: an ordered list of rules built from the tables in
// this package. Scopes are expressed against paths relative to the corpus
// root, which is "lib" by default.
package migration

import (
	"github.com/walteh/repairrc/pkg/rule"
)

// Pass names in pipeline order.
const (
	RemoveLanguageProvider = "remove-language-provider"
	InlineTranslations     = "inline-translations"
	RepairComments         = "repair-comments"
	RepairFinalSyntax      = "repair-final-syntax"
	RepairCallChains       = "repair-call-chains"
	RestoreUIText          = "restore-ui-text"
)

// MaxIterations is the number of changing pipeline applications the built-in
// pipeline needs at most to reach a fixed point on a damaged tree.
const MaxIterations = 3

// quoted matches a single line string literal in either quote style.
const quoted = `(?:'[^'\n]*'|"[^"\n]*")`

// 📦 Builtin returns the built-in pipeline. Each call builds fresh passes, so
// callers may reorder or extend the result freely.
func Builtin() rule.Pipeline {
	return rule.Pipeline{
		removeLanguageProvider(),
		inlineTranslations(),
		repairComments(),
		repairFinalSyntax(),
		repairCallChains(),
		restoreUIText(),
	}
}
