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

// 🧹 removeLanguageProvider strips the provider itself: imports, locals,
// single line translate calls and the type in signatures.
func removeLanguageProvider() *rule.Pass {
	return &rule.Pass{
		Name:        RemoveLanguageProvider,
		Description: "remove LanguageProvider imports, locals and single line translate calls",
		Idempotent:  true,
		Rules: []*rule.Rule{
			rule.Regex("drop-language-provider-import", `import\s+['"].*?language_provider\.dart['"];\n?`, "").
				Describe("drop the language_provider.dart import"),
			rule.Regex("drop-localizations-import", `import\s+['"].*?app_localizations\.dart['"];\n?`, "").
				Describe("drop the app_localizations.dart import"),
			rule.Regex("drop-provider-local", `(?:final|var)\s+\w+\s*=\s*Provider\.of<LanguageProvider>.*?;`, "").
				Describe("drop locals holding the provider"),
			rule.Regex("inline-translate-literal", `\w+\.translate\((`+quoted+`)\)`, "${1}").
				Describe("x.translate('key') becomes 'key'"),
			rule.Regex("inline-translate-expr", `\w+\.translate\(([^'"]+?)\)`, "${1}").
				Describe("x.translate(expr) becomes expr"),
			rule.Regex("inline-provider-translate", `Provider\.of<LanguageProvider>\([^()\n]*\)\.translate\((`+quoted+`)\)`, "${1}").
				Describe("Provider.of<LanguageProvider>(..).translate('key') becomes 'key'"),
			rule.Regex("current-language", `Provider\.of<LanguageProvider>\([^()\n]*\)\.currentLanguage`, "'en'").
				Describe("the current language is always english"),
			rule.Regex("provider-param", `LanguageProvider\s+(\w+)`, "dynamic ${1}").
				Describe("LanguageProvider parameters become dynamic"),
			rule.Literal("consumer-type", "Consumer<LanguageProvider>", "Consumer<Object>").
				Describe("Consumer<LanguageProvider> becomes Consumer<Object>"),
			rule.Regex("provider-type", `:\s*LanguageProvider\b`, ": dynamic").
				Describe("LanguageProvider type annotations become dynamic"),
		},
	}
}

// 🔤 inlineTranslations replaces translate calls the first pass could not see
// because earlier edits split them across lines or commented them out.
func inlineTranslations() *rule.Pass {
	return &rule.Pass{
		Name:        InlineTranslations,
		Description: "inline multi line and commented translate calls and the Translations helper",
		Idempotent:  true,
		Rules: []*rule.Rule{
			// the split child rules must run before the generic provider call
			// rule, which would otherwise leave the comment and parens behind
			rule.Regex("uncomment-provider-child",
				`//\s*child:\s*Text\(Provider\.of<LanguageProvider>\(context\)\s*[\r\n]+\s*\.translate\((?:'([^'\n]*)'|"([^"\n]*)")\)\)\),?`,
				"child: Text('${1}${2}'),").
				Describe("restore a commented child Text whose translate call was split"),
			rule.Regex("split-provider-child",
				`child:\s*Text\(Provider\.of<LanguageProvider>\(context\)\s*[\r\n]+\s*\.translate\((?:'([^'\n]*)'|"([^"\n]*)")\)\)`,
				"child: Text('${1}${2}')").
				Describe("inline a child Text whose translate call was split"),
			rule.Regex("inline-translation-call", `languageProvider\s*\.translate\s*\(\s*(`+quoted+`)\s*\)`, "${1}").
				Describe("languageProvider.translate('key') across lines becomes 'key'"),
			rule.Regex("inline-provider-call", `Provider\.of<LanguageProvider>\s*\([^()]*\)\s*\.translate\s*\(\s*(`+quoted+`)\s*\)`, "${1}").
				Describe("Provider.of<LanguageProvider>(..).translate('key') across lines becomes 'key'"),
			rule.Regex("inline-lp-call", `\blp\s*\.translate\s*\(\s*(`+quoted+`)\s*\)`, "${1}").
				Describe("lp.translate('key') across lines becomes 'key'"),
			rule.Regex("drop-translations-import", `import\s+['"].*?utils/translations\.dart['"];`, "").
				Describe("drop the Translations helper import"),
			rule.Regex("inline-translations-helper", `Translations\.translate\(\s*(`+quoted+`)\s*,(?:[^()]|\([^()]*\))*\)`, "${1}").
				Describe("Translations.translate('key', ..) becomes 'key'"),
		},
	}
}
