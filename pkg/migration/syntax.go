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

// files still importing provider after the LanguageProvider removal
var staleProviderImports = []string{
	"app_footer.dart",
	"mobile_navbar.dart",
	"location_permission_helper.dart",
	"admin_analytics_dashboard.dart",
	"revenue_analytics_screen.dart",
	"admin_booking_list.dart",
	"booking_details_screen.dart",
	"admin_refund_details.dart",
	"admin_refund_list.dart",
	"my_trips_stats_widget.dart",
	"track_bus_screen.dart",
	"conductor_dashboard.dart",
}

// 🩹 repairFinalSyntax holds the per-file repairs. The patterns are loose, so
// each rule is confined to the one file it was written for.
func repairFinalSyntax() *rule.Pass {
	var (
		analytics      = rule.Named("admin_analytics_dashboard.dart")
		bookingDetails = rule.Named("booking_details_screen.dart")
		refundDetails  = rule.Named("admin_refund_details.dart")
		refundList     = rule.Named("admin_refund_list.dart")
		stats          = rule.Named("my_trips_stats_widget.dart")
		conductor      = rule.Named("conductor_dashboard.dart")
		busList        = rule.Named("bus_list_screen.dart")
	)

	return &rule.Pass{
		Name:        RepairFinalSyntax,
		Description: "per file syntax repairs for commented arguments and null safety",
		Idempotent:  true,
		Rules: []*rule.Rule{
			rule.Regex("analytics-tab-label", `Tab\(\s*//\s*text:\s*(`+quoted+`)\),`, "Tab(text: ${1}),").
				In(analytics),

			rule.Regex("booking-details-label",
				`//\s*Provider\.of<LanguageProvider>[^;]*?\.translate\(([^;\n]*?)\),`,
				"${1},").
				In(bookingDetails).
				Describe("unwrap the translated label expression"),

			rule.Regex("refund-app-bar-title", `appBar: AppBar\(\s*//\s*(title: Text\([^\n]*?\)\),)`, "appBar: AppBar(${1}").
				In(refundDetails),
			rule.Regex("refund-content-text", `//\s*(content: Text\(.*?\),?)`, "${1}").
				In(refundDetails),
			rule.Regex("refund-row-label", `_row\(\s*//\s*(`+quoted+`,?)`, "_row(${1}").
				In(refundDetails),

			rule.Regex("refund-filter-status", `//\s*((?:'status_[^'\n]*'|"status_[^"\n]*")\)),`, "${1},").
				In(refundList),
			rule.Regex("refund-filter-label", `//\s*(`+quoted+`\))`, "${1}").
				In(refundList),
			rule.Regex("refund-list-child", `//\s*(child:\s*Text\(.*?\))`, "${1}").
				In(refundList),

			rule.Regex("stats-box-label", `//\s*((?:'stat_[^'\n]*'|"stat_[^"\n]*"),?)`, "${1}").
				In(stats),

			rule.Regex("conductor-trip-id", `ConductorTripManagementScreen\(\s*tripId:\s*t\.tripId\)`, "ConductorTripManagementScreen(trip: t.trip)").
				In(conductor).
				Describe("the screen takes the trip, not its id"),

			// the full broken interpolations first, the generic null-safe
			// rewrite would otherwise hide them
			rule.Literal("bus-list-from-city-interpolation",
				`controller.fromCity?.toLowerCase().replaceAll(' ', '_') ?? "")}`,
				`(controller.fromCity ?? '').toLowerCase().replaceAll(' ', '_')}`).
				In(busList),
			rule.Literal("bus-list-to-city-interpolation",
				`controller.toCity?.toLowerCase().replaceAll(' ', '_') ?? "")}`,
				`(controller.toCity ?? '').toLowerCase().replaceAll(' ', '_')}`).
				In(busList),
			rule.Literal("bus-list-from-city", "controller.fromCity?.toLowerCase()", "(controller.fromCity ?? '').toLowerCase()").
				In(busList),
			rule.Literal("bus-list-to-city", "controller.toCity?.toLowerCase()", "(controller.toCity ?? '').toLowerCase()").
				In(busList),
		},
	}
}

// 🔗 repairCallChains closes call chains an earlier pass broke and clears the
// leftovers of the provider removal.
func repairCallChains() *rule.Pass {
	busList := rule.Named("bus_list_screen.dart")

	return &rule.Pass{
		Name:        RepairCallChains,
		Description: "close broken call chains and drop leftover provider imports",
		Idempotent:  true,
		Rules: []*rule.Rule{
			rule.Regex("close-to-lower-case", `\.toLowerCase\(\s*\.replaceAll`, ".toLowerCase().replaceAll").
				Describe(".toLowerCase( .replaceAll becomes .toLowerCase().replaceAll"),
			rule.Regex("bus-list-orphaned-style",
				`\.replaceAll\(' ', '_'\)\),(\s*\n\s*style: const TextStyle\()`,
				".replaceAll(' ', '_'),${1}").
				In(busList).
				Describe("move an orphaned style back into its Text"),
			rule.Literal("bus-list-bare-text", `child: Text("Bus",`, `Text("Bus",`).
				In(busList).
				Describe("a Text inside a children list takes no child label"),
			rule.Literal("conductor-trip", "ConductorTripManagementScreen(trip: t.trip)", "ConductorTripManagementScreen(trip: t)").
				In(rule.Named("conductor_dashboard.dart")),
			rule.Regex("drop-provider-import", `import 'package:provider/provider\.dart';\n?`, "").
				In(rule.Named(staleProviderImports...)).
				Describe("drop provider imports no longer used"),
		},
	}
}
