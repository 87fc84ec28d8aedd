package history

import (
	"fmt"

	"github.com/linzero/casreg/verdict"
)

// Normalize filters events to read/write operations of kind invoke/ok,
// buckets them by thread = process mod concurrency, and merges the
// per-thread buckets (each assumed already time-sorted) into one
// time-sorted sequence. Ties are broken in favour of the smaller thread
// id, which also, transitively, favours that thread's own arrival order —
// an explicit, deterministic resolution of the open tie-breaking question
// in the design notes.
//
// It fails with a *verdict.HistoryError wrapping NonMonotonicTime if the
// merged sequence it is about to emit ever regresses in time; this is a
// harness bug, since per-thread inputs are assumed pre-sorted.
func Normalize[W comparable, V comparable](events []Event[W, V], concurrency int) ([]Event[W, V], error) {
	if concurrency <= 0 {
		return nil, fmt.Errorf("history: concurrency must be positive, got %d", concurrency)
	}

	buckets := make([][]Event[W, V], concurrency)
	total := 0
	for _, e := range events {
		if !admissible(e) {
			continue
		}
		t := e.Process % concurrency
		buckets[t] = append(buckets[t], e)
		total++
	}

	heads := make([]int, concurrency)
	out := make([]Event[W, V], 0, total)
	for len(out) < total {
		best := -1
		for t := 0; t < concurrency; t++ {
			if heads[t] >= len(buckets[t]) {
				continue
			}
			if best == -1 || buckets[t][heads[t]].Time < buckets[best][heads[best]].Time {
				best = t
			}
		}
		next := buckets[best][heads[best]]
		heads[best]++

		if len(out) > 0 && next.Time < out[len(out)-1].Time {
			return nil, verdict.NonMonotonicTime(out[len(out)-1].Time, next.Time)
		}
		out = append(out, next)
	}

	return out, nil
}

func admissible[W comparable, V comparable](e Event[W, V]) bool {
	switch e.F {
	case Read, Write:
	default:
		return false
	}
	switch e.Type {
	case Invoke, Ok:
	default:
		return false
	}
	return true
}
