// Package casreg wires the history normaliser and the checker state
// machine into the single-call pipeline described by the design: filter
// and merge, then decide.
package casreg

import (
	"github.com/linzero/casreg/checker"
	"github.com/linzero/casreg/history"
	"github.com/linzero/casreg/verdict"
)

// Seed is the genesis (write-id, value) pair a check is rooted at.
type Seed[W comparable, V comparable] struct {
	WriteID W
	Value   V
}

// Check normalizes events under the given concurrency bound and runs the
// checker state machine to a verdict. The returned error is non-nil only
// for a malformed history (a *verdict.HistoryError) or a non-positive
// concurrency (a plain error from history.Normalize); a linearizability
// violation is instead reported through Result.
func Check[W comparable, V comparable](events []history.Event[W, V], concurrency int, seed Seed[W, V]) (verdict.Result, error) {
	res, _, err := CheckVerbose(events, concurrency, seed)
	return res, err
}

// CheckVerbose is Check, but also returns the terminal checker state so a
// caller can inspect the accepted chain (e.g. for --explain output) even
// when the verdict is valid.
func CheckVerbose[W comparable, V comparable](events []history.Event[W, V], concurrency int, seed Seed[W, V]) (verdict.Result, *checker.State[W, V], error) {
	normalized, err := history.Normalize(events, concurrency)
	if err != nil {
		return verdict.Result{}, nil, err
	}
	state := checker.New(seed.WriteID, seed.Value)
	res, err := state.Check(normalized)
	if err != nil {
		return verdict.Result{}, nil, err
	}
	return res, state, nil
}
