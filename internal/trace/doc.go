// Package trace records what the front-end is doing while it runs.
//
// A Tracer receives span begin/end events for driver commands, files,
// phases (partition, lex, parse) and individual verus blocks. Tracers
// travel through a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", parent)
//	defer span.End("")
//
// Verbosity is a Level:
//
//   - LevelOff: nothing
//   - LevelError: keep events only for a dump after a failure (ring mode)
//   - LevelPhase: commands and files
//   - LevelDetail: plus partition/lex/parse phases
//   - LevelDebug: plus every verus block
//
// StreamTracer writes events as they happen, as text or NDJSON.
// RingTracer keeps the most recent events in memory.
package trace
