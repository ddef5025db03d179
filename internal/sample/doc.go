// Package sample models the plant extract registry as an ordered, read-only
// table of records.
//
// A Dataset keeps the header exactly as it was loaded. Column lookups are
// accent- and case-insensitive so that a configured "Família" resolves a header
// that was exported as "Familia" or "FAMÍLIA". Records are never mutated once a
// Dataset is built; filtering and reordering produce new Datasets that share the
// underlying value slices.
package sample
