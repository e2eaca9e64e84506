// Package trace records the compile phases of rcc.
//
// The driver opens a span per phase (lex, parse, resolve, lower, cfg) and the
// resolver and lowering emit node-level point events per function. Tracers
// travel through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
//
// Enable from the command line with
//
//	rcc cfg --trace=- --trace-level=detail main.rs
//
// Stream tracers write each event as it happens (text or NDJSON). Ring
// tracers keep the last events in memory so the driver can dump them when
// compilation fails.
package trace
