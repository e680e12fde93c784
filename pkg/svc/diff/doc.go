// Package diff computes the differences between two manifest hierarchies,
// the observed cluster side and the desired local side, as a lazy stream of
// typed change events.
//
// Events follow discovery order: namespaces interleave fairly between the
// two sides, and within a namespace present on both sides the record keys
// interleave the same way. The stream performs record comparisons only as it
// is consumed, so a caller may stop at the first event without paying for
// the rest.
package diff
