// Package cardcrawl extracts structured directory records (member listings,
// registrant cards) from paginated, JavaScript-driven listing pages rendered
// in a controlled browser session, and produces a deduplicated tabular
// dataset.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, xlsx/, sqlite/).
package cardcrawl
