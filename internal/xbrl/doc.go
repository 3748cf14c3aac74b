// Package xbrl extracts normalized financial facts from XBRL-tagged
// financial statements.
//
// Filing software and taxonomy versions disagree on tag spellings and
// namespace prefixes for the same financial concept. This package resolves
// each concept through an ordered list of alias tags, anchored to the most
// recent reporting period found in the document, and derives the standard
// performance ratios (ROE, ROA, debt-to-equity) from the resolved values.
//
// The package is stateless: Extract fully consumes one input buffer and
// produces one FactSheet with no shared mutable state, so concurrent
// extractions on independent inputs need no coordination.
package xbrl
