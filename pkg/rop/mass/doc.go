// Package mass lifts solo primitives onto channels: every call computes one
// unit in its own goroutine and hands the outcome over a channel that is safe
// to abandon once ctx is done. Finalizing collapses a whole stream.
package mass
