// Package batch assembles registry samples into fixed-size instrument batches.
//
// Assembly has two stages:
//   - Compose lays out one batch: QC placeholder cycles before every sample
//     segment and one trailing QC cycle.
//   - Allocator partitions a Dataset through a cascade of grouping tiers
//     (Family+Genus, Family, global). Each tier cuts as many full batches as
//     its groups allow and forwards the remainder to the next tier. What is
//     left after the global tier becomes the single partial batch.
//
// Batch ids (batch_1, batch_2, ...) follow production order across all tiers.
// Summarize derives the per-batch Family/Genus composition from finished batches.
//
// Allocation is sequential and deterministic: the same input in the same order
// always yields the same batches.
package batch
