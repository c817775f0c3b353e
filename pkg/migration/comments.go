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

package migration

import (
	"github.com/walteh/repairrc/pkg/rule"
)

// 💬 repairComments undoes the line comments an earlier sed pass put in front
// of translate calls, which commented out the literal next to them too.
//
// Rule order matters: the labeled call rule must run before the generic
// Text rule, otherwise the generic rule consumes the comment and leaves the
// space before the method call behind.
func repairComments() *rule.Pass {
	home := rule.Named("home_screen.dart")

	return &rule.Pass{
		Name:        RepairComments,
		Description: "uncomment literals and widget labels hidden by an earlier comment-out pass",
		Idempotent:  true,
		Rules: []*rule.Rule{
			rule.Regex("home-translated-option",
				`final translatedOption =\s*//\s*Provider\.of<LanguageProvider>[^;]*?\)\s*\.translate\(cityKey\);`,
				"final translatedOption = cityKey;").
				In(home).
				Describe("restore the translatedOption assignment"),
			rule.Regex("home-translated-option-any",
				`final translatedOption =\s*[\r\n]+//\s*Provider\.of[^;]*?\)\s*[\r\n]+\s*\.translate\(cityKey\);`,
				"final translatedOption = cityKey;").
				In(home).
				Describe("restore the translatedOption assignment for any provider"),
			rule.Regex("home-lp-local",
				`final lp =\s*//\s*Provider\.of<LanguageProvider>[^;]*;`,
				"// final lp removed").
				In(home).
				Describe("replace the half commented lp local with a marker"),
			rule.Regex("uncomment-labeled-call", `Text\(\s*//\s*(`+quoted+`)\s*(\.\w+\(\),?)`, "Text(${1}${2}").
				Describe("Text( // 'k' .m() becomes Text('k'.m()"),
			rule.Regex("uncomment-text-literal", `Text\(\s*//\s*(`+quoted+`)(,)?`, "Text(${1}${2}").
				Describe("Text( // 'k', becomes Text('k',"),
			rule.Regex("uncomment-kpi-card", `_kpiCard\(\s*//\s*(`+quoted+`)(,)?`, "_kpiCard(${1}${2}").
				Describe("_kpiCard( // 'k', becomes _kpiCard('k',"),
			rule.Regex("uncomment-widget-label", `//\s*((?:child|hint|label):\s*Text\()`, "${1}").
				Describe("uncomment labeled Text widgets"),
			rule.Regex("uncomment-ternary-branch", `//\s*(:\s*`+quoted+`,?)`, "${1}").
				Describe("uncomment the else branch of a ternary"),
		},
	}
}
