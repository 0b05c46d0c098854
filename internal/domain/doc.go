// Package domain models station commuter-count exports for an urban rail
// network and the pure logic that shapes them into chart series.
//
// # Data Source
//
// The export is a comma-delimited file produced by the network operator's
// counting programme. After normalization (see package csvfile) it looks like:
//
//	(C) Transport for London 2017            <- preamble row 1 (copyright marker)
//	Total entries: 3456789                   <- preamble row 2
//	nlc,Station,Borough,Note,0500-0515,...   <- preamble row 3 = header row
//	500,Acton Town,Ealing,,12,18,...,4210    <- one data row per station
//	...
//	Total,All Stations,,,...                 <- footer row, never a station
//
// # Column Layout
//
// Fields are addressed by fixed offsets described by [Columns]:
//
//	name:          1        station name, trailing whitespace trimmed
//	slices:        [4,100)  96 quarter-hour commuter counts
//	total:         101      daily total
//
// Header labels for the slice block are cut to 4 characters, so "0500-0515"
// becomes "0500". A different export can be read by supplying another
// [Layout] instead of changing code.
//
// # Station Names
//
// Names are compared in canonical form: whitespace trimmed and title-cased
// with [Canonical]. "kings cross" and "KINGS CROSS" both match "Kings Cross".
package domain
