// Package solo contains single-value, synchronous primitives over Result[T].
// They are the building blocks the channel packages lift onto worker lines.
//
// Highlights:
// - Succeed/Fail/Cancel: construct Result[T]
// - Validate/AndValidate: derail a unit whose value is rejected
// - Map/Try: move a unit to the next stage, keeping its id
// - Tee: side effects on success only
// - Finally: reduce to a concrete value via success/error/cancel handlers
package solo
