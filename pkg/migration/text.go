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

// UIText maps the translation keys left in the views back to english. Keys
// keep their quotes so only string literals are replaced.
var UIText = rule.LiteralTable{
	// admin dashboard
	{Old: `'route_management'`, New: `'Route Management'`},
	{Old: `'route_management_desc'`, New: `'Manage your routes, trips, and bookings.'`},
	{Old: `'add_new_trip'`, New: `'Add New Trip'`},
	{Old: `'add_route'`, New: `'Add Route'`},
	{Old: `'manage_routes'`, New: `'Manage Routes'`},
	{Old: `'bookings'`, New: `'Bookings'`},
	{Old: `'refunds'`, New: `'Refunds'`},
	{Old: `'analytics'`, New: `'Analytics'`},
	{Old: `'app_feedback'`, New: `'App Feedback'`},
	{Old: `'find_routes'`, New: `'Find Routes'`},
	{Old: `'select_date'`, New: `'Select Date'`},
	{Old: `'search_action'`, New: `'Search'`},
	{Old: `'no_routes_found'`, New: `'No Routes Found'`},
	{Old: `'adjust_filters'`, New: `'Adjust filters to see results'`},

	// ticket screen
	{Old: `"bulk_booking"`, New: `"Bulk Booking"`},
	{Old: `"route"`, New: `"Route"`},
	{Old: `"bundle"`, New: `"Bundle"`},
	{Old: `"e_ticket"`, New: `"E-Ticket"`},
	{Old: `"download_consolidated_pdf"`, New: `"Download Consolidated PDF"`},
	{Old: `"download_pdf"`, New: `"Download PDF"`},
	{Old: `"boarding_pass"`, New: `"Boarding Pass"`},
	{Old: `"confirmed"`, New: `"Confirmed"`},
	{Old: `"from"`, New: `"FROM"`},
	{Old: `"to"`, New: `"TO"`},
	{Old: `"travel_dates"`, New: `"TRAVEL DATES"`},
	{Old: `"time"`, New: `"TIME"`},
	{Old: `"seats"`, New: `"SEATS"`},
	{Old: `"show_qr_code"`, New: `"Show QR Code"`},
	{Old: `"track_bus_live"`, New: `"Track Bus Live"`},
	{Old: `"passenger"`, New: `"PASSENGER"`},
	{Old: `"total_price"`, New: `"TOTAL PRICE"`},
	{Old: `"saved_to_downloads"`, New: `"Saved to Downloads"`},
	{Old: `"permission_denied"`, New: `"Permission Denied"`},
	{Old: `"error_saving_pdf"`, New: `"Error saving PDF"`},

	// refund list
	{Old: `'status_pending'`, New: `'Pending'`},
	{Old: `'status_approved'`, New: `'Approved'`},
	{Old: `'status_rejected'`, New: `'Rejected'`},
	{Old: `'refund_management_title'`, New: `'Refund Management'`},
	{Old: `'no_refunds_status'`, New: `'No refunds found'`},
	{Old: `'no_refunds_search'`, New: `'No refunds match your search'`},

	// refund details
	{Old: `'refund_details_title'`, New: `'Refund Details'`},
	{Old: `'refund_status_banner'`, New: `'Refund Status:'`},
	{Old: `'ref_prefix'`, New: `'Ref'`},
	{Old: `'booking_ref_copied'`, New: `'Booking Reference Copied'`},
	{Old: `'trip_price'`, New: `'Trip Price'`},
	{Old: `'cancellation_rule'`, New: `'Cancellation Rule'`},
	{Old: `'refund_amount_prefix'`, New: `'Refund Amount'`},
	{Old: `'reason_prefix'`, New: `'Reason'`},
	{Old: `'comment_label'`, New: `'Comment'`},
	{Old: `'reject_button'`, New: `'Reject'`},
	{Old: `'approve_refund_button'`, New: `'Approve Refund'`},
	{Old: `'reject_dialog_title'`, New: `'Reject Refund'`},
	{Old: `'reject_dialog_desc'`, New: `'Are you sure you want to reject this refund?'`},
	{Old: `'reason_policy'`, New: `'Policy Violation'`},
	{Old: `'reason_used'`, New: `'Ticket Used'`},
	{Old: `'reason_other'`, New: `'Other'`},
	{Old: `'select_reason_hint'`, New: `'Select Reason'`},
	{Old: `'cancel_button'`, New: `'Cancel'`},
	{Old: `'confirm_reject_button'`, New: `'Confirm Reject'`},
	{Old: `'refund_processed_success'`, New: `'Refund Processed Successfully'`},

	// analytics
	{Old: `'analytics_hub'`, New: `'Analytics Hub'`},
	{Old: `'tab_revenue'`, New: `'Revenue'`},
	{Old: `'tab_late_departures'`, New: `'Late Departures'`},

	// trip stats widget
	{Old: `'stat_delayed'`, New: `'Delayed'`},
	{Old: `'stat_arrived'`, New: `'Arrived'`},
	{Old: `'stat_cancelled'`, New: `'Cancelled'`},
	{Old: `"upcoming"`, New: `"Upcoming"`},
	{Old: `"stat_delayed"`, New: `"Delayed"`},
	{Old: `"stat_arrived"`, New: `"Arrived"`},
	{Old: `"stat_cancelled"`, New: `"Cancelled"`},

	// booking list
	{Old: `'booking_management_title'`, New: `'Booking Management'`},
	{Old: `'booking_details'`, New: `'Booking Details'`},

	// common
	{Old: `"app_feedback"`, New: `"App Feedback"`},
	{Old: `'unknown'`, New: `'Unknown'`},
	{Old: `"unknown"`, New: `"Unknown"`},

	// a display value compared in view logic
	{Old: `status == 'refund_requested'`, New: `status == 'Refund Requested'`},
}

// HomeText maps the home screen keys back to english.
var HomeText = rule.LiteralTable{
	// hero and search
	{Old: `"good_morning"`, New: `"Good Morning"`},
	{Old: `"good_afternoon"`, New: `"Good Afternoon"`},
	{Old: `"good_evening"`, New: `"Good Evening"`},
	{Old: `"welcome"`, New: `"Welcome"`},
	{Old: `"brand_tagline"`, New: `"Book your journey in seconds."`},
	{Old: `"where_from"`, New: `"Where from?"`},
	{Old: `"where_to"`, New: `"Where to?"`},
	{Old: `"departure_date"`, New: `"Departure Date"`},
	{Old: `"search"`, New: `"Search"`},
	{Old: `"origin"`, New: `"Origin"`},
	{Old: `"destination"`, New: `"Destination"`},
	{Old: `"bulk_booking"`, New: `"Bulk Booking"`},

	// live journey card
	{Old: `'journey_live'`, New: `'Live Journey'`},
	{Old: `'your_bus_is_here'`, New: `'Your bus is here'`},
	{Old: `'track_now'`, New: `'TRACK NOW'`},
}

// 🏷️ restoreUIText puts english literals back where translation keys were
// left behind by the inlining passes.
func restoreUIText() *rule.Pass {
	var rules []*rule.Rule
	rules = append(rules, UIText.Rules(rule.TableOptions{
		Prefix:     "ui-text",
		SwapQuotes: true,
		Scope:      rule.Glob("views/**"),
	})...)
	rules = append(rules, HomeText.Rules(rule.TableOptions{
		Prefix:     "home-text",
		SwapQuotes: true,
		Scope:      rule.Named("home_screen.dart"),
	})...)

	return &rule.Pass{
		Name:        RestoreUIText,
		Description: "restore english UI text in place of translation keys",
		Idempotent:  true,
		Rules:       rules,
	}
}
