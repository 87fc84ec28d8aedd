// Package verdict holds the two error taxonomies a check can produce
// (linearizability Violations and harness-bug HistoryErrors) plus the
// Result type a completed check returns. Both taxonomies are shared,
// non-generic vocabulary: the write-ids and values they name are opaque
// to the checker, so they are formatted with %v rather than threaded
// through as type parameters.
package verdict

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Result is the outcome of a completed check. Details is empty when Valid.
type Result struct {
	Valid   bool
	Details string
}

// HistoryError indicates the input history itself is malformed: a harness
// bug, not a linearizability finding. Check returns these as a plain Go
// error, distinct from Result.
type HistoryError struct {
	msg   string
	cause error
}

func (e *HistoryError) Error() string { return e.msg }
func (e *HistoryError) Unwrap() error { return e.cause }

func newHistoryError(msg string) *HistoryError {
	return &HistoryError{msg: msg, cause: errors.New(msg)}
}

// NonMonotonicTime reports an emitted event whose time regressed.
func NonMonotonicTime(last, current int64) *HistoryError {
	return newHistoryError(fmt.Sprintf(
		"invalid history: non-monotonic time: last=%d current=%d", last, current))
}

// DuplicateWriteID reports a write-id reused by a second invoke :write.
func DuplicateWriteID(wid any) *HistoryError {
	return newHistoryError(fmt.Sprintf("invalid history: duplicate write id %v", wid))
}

// DuplicatePendingRead reports a second invoke :read on a process with an
// outstanding pending read.
func DuplicatePendingRead(process int) *HistoryError {
	return newHistoryError(fmt.Sprintf(
		"invalid history: duplicate pending read on process %d", process))
}

// MissingInvoke reports an ok event with no matching pending invoke on its
// process (most commonly an ok :read with no prior invoke :read).
func MissingInvoke(process int) *HistoryError {
	return newHistoryError(fmt.Sprintf(
		"invalid history: ok event with no pending invoke on process %d", process))
}

// Kind names the class of linearizability violation a Violation carries,
// for callers that want to branch on it without matching the message text.
type Kind string

const (
	KindUnknownWrite   Kind = "unknown_write"
	KindBranchingChain Kind = "branching_chain"
	KindStaleRead      Kind = "stale_read"
	KindValueMismatch  Kind = "value_mismatch"
)

// Violation is a terminal linearizability finding.
type Violation struct {
	Kind Kind
	msg  string
}

func (v *Violation) Error() string { return v.msg }

// UnknownWrite reports a write-id referenced by a read or ok :write that was
// never proposed via invoke :write.
func UnknownWrite(wid any) *Violation {
	return &Violation{
		Kind: KindUnknownWrite,
		msg:  fmt.Sprintf("unknown write: %v was never proposed via invoke :write", wid),
	}
}

// BranchingChain reports a pending write whose predecessor is an interior,
// already-succeeded accepted node: two writes descending from the same CAS
// predecessor. chain is the candidate's unaccepted tail, predecessor is the
// shared accepted node both chains claim as predecessor, and opponent is
// the write-id predecessor already has as its accepted successor.
func BranchingChain(chain []any, predecessor, opponent any) *Violation {
	return &Violation{
		Kind: KindBranchingChain,
		msg: fmt.Sprintf(
			"branching chain: %s -> %v conflicts with already-accepted successor %v -> %v",
			renderChain(chain), predecessor, predecessor, opponent),
	}
}

// StaleRead reports a read that returned a write already superseded before
// the read began. fresherChain runs from the returned write to the write
// snapshotted at read start, oldest to newest.
func StaleRead(wid any, fresherChain []any, observedAt, readStartedAt int64) *Violation {
	return &Violation{
		Kind: KindStaleRead,
		msg: fmt.Sprintf(
			"stale read: returned %v, superseded at t=%d before read started at t=%d (chain %s)",
			wid, observedAt, readStartedAt, renderChain(fresherChain)),
	}
}

// ValueMismatch reports a read whose value disagrees with the value
// proposed for the write-id it claims to have observed.
func ValueMismatch(wid, expected, got any) *Violation {
	return &Violation{
		Kind: KindValueMismatch,
		msg: fmt.Sprintf(
			"value mismatch: write %v expected value %v, got %v", wid, expected, got),
	}
}

func renderChain(tokens []any) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprintf("%v", t)
	}
	return strings.Join(parts, " -> ")
}
