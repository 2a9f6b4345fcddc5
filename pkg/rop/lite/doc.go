// Package lite provides lightweight channel-lifted stages for concurrent
// pipelines: simple fan-out/fan-in flows without custom cancellation routing.
//
// Common usage:
// - Run: execute an engine over an input channel with a fixed number of lines
// - Turnout: the same, changing the unit type between stages
// - Validate/Try/Map/Tee: lift solo operations over channels
// - Finally: map Result[In] to Out on completion
package lite
