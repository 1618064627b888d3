// Package aggregator drives an ordered list of sources through a resumable
// run.
//
// A run moves Idle -> Running -> Completed, or Running -> Paused when the
// caller's context is cancelled between two sources. Each step fetches one
// source, merges its records into the accumulator (the first record seen for
// an id wins), hands the ranked accumulator and the resume cursor to the
// partial callback, then sleeps before the next source. Persisting the
// cursor is left to the caller.
package aggregator
