// Package logging builds the zerolog loggers used across batchplan and carries
// them, together with the per-invocation run id, through context.Context.
package logging
