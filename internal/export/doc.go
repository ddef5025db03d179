// Package export writes allocation results as delimited text: one table per
// batch named <batch_id>.csv and one composition summary for the whole run.
//
// Files are written to a temporary file in the destination directory and
// renamed into place, so a failed run never leaves a truncated table behind.
package export
