// Package domain models farmers'-market event listings and the scheduling
// and cost metrics derived from them.
//
// # Data Source
//
// Listings come from a single hand-curated CSV (one row per market per
// day-of-week time slot), compiled from county extension-office pages and
// market vendor applications. The file carries a fixed header; the loader
// only prunes empty rows and columns, and this package does all per-field
// parsing.
//
// # CSV Conventions
//
// Time columns:
//
//	"Start Time" and "End Time" are 24-hour times of day, "HH:MM:SS",
//	with no date component: "09:00:00", "13:30:00".
//
// Period columns:
//
//	"Start of Period" and "End of Period" are day-month values with no
//	year, "DD-Mon": "01-Jan", "15-Oct". The current calendar year is
//	assumed at analysis time. A period spanning a year boundary
//	(December into January) therefore produces a reversed date pair;
//	the week count uses the absolute difference, so it stays correct in
//	magnitude. See [AnalyzeRecord].
//
// Currency columns:
//
//	"Weekly Fee" and the booth columns are dollar strings: "$123.45",
//	"$1,200". Symbols and thousands separators are stripped before
//	conversion to decimal.
//
// Booth sentinel:
//
//	The literal "Not an Option" in a booth column means the market does
//	not offer that stall size. It maps to an absent price, never zero:
//	a $0 booth and an unavailable booth are different things, and the
//	per-square-foot metric must stay undefined for the latter.
//
// Coordinates:
//
//	"Latitude" and "Longitude" are decimal degrees. Rows scraped from
//	pages without map links may leave them blank; blank or junk
//	coordinates parse to zero and can be filled in by geocoding
//	enrichment when a geocoder is configured. See [EnrichWithGeocoding].
//
// # Derived Metrics
//
// Duration is (end − start) in hours. A zero duration makes price-per-hour
// a division by zero; the metric is carried as an explicit null rather than
// Inf so aggregate sums stay finite. A negative duration (end before start
// in the source data) is propagated as-is; it flags a bad listing and is
// deliberately not "fixed" here.
//
// Booth areas are fixed: 25 sq ft for the 5x5 stall, 100 sq ft for the
// 10x10.
//
// # Event ID
//
// Calendar building assigns each record its position in the input slice as
// a transient event ID. The ID only exists to keep otherwise-identical rows
// (same start, end, day, different names) from collapsing into one pivot
// row; it has no meaning outside a single [BuildCalendar] call and is
// dropped from the rendered view.
package domain
