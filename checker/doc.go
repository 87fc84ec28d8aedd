// Package checker implements the incremental linearizability decision
// procedure for a single CAS-chained register.
//
// A State is created once with a genesis (write-id, value) pair and fed a
// normalized, time-ordered sequence of history.Events via Check. It
// maintains an accepted write-chain, the set of writes still in flight
// (pending_writes), and at most one pending read per process, and detects
// violations (an unknown write, a branching CAS chain, a stale read, or a
// value mismatch) as soon as evidence for one is complete.
//
// State is not safe for concurrent use; it is a plain mutable struct,
// since the decision procedure is inherently sequential. Running
// independent checks concurrently is fine -- just give each its own State.
//
// Harness bugs (out-of-order time, a duplicate write-id, a duplicate
// pending read, or an ok with no matching invoke) are returned as a Go
// error from Check, distinct from the verdict.Result it also returns:
// a non-nil error means the input itself was malformed, not that the
// system under test is non-linearizable.
package checker
